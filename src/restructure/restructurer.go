// Package restructure rebuilds the wide-form table from the current
// long-form table: one row per product/currency/purchase-year with one
// (rate, status) column pair per dividend category.
package restructure

import (
	"database/sql"
	"fmt"
	"sort"
	"strconv"

	"github.com/crisrui7/hk-insurance-dividend/src/loader"
	"github.com/crisrui7/hk-insurance-dividend/src/logger"
	"github.com/crisrui7/hk-insurance-dividend/src/models"
	"github.com/crisrui7/hk-insurance-dividend/src/normalize"
)

// WideTable is the wide-form table name; the rebuild happens in a staging
// table that replaces it only once fully populated, so readers never observe
// a half-built wide table.
const (
	WideTable    = "product_fulfillment_rates"
	stagingTable = "product_fulfillment_rates_new"
)

// Options controls one restructure run.
type Options struct {
	// Backup renames the long-form table to fulfillment_ratios_backup
	// after a successful rebuild. Non-reversible; off unless asked for.
	Backup bool
}

type Restructurer struct {
	db *sql.DB
}

func NewRestructurer(db *sql.DB) *Restructurer {
	return &Restructurer{db: db}
}

// groupKey is the wide-form natural key.
type groupKey struct {
	Company      string
	ProductName  string
	Currency     string
	DataYear     int
	PurchaseYear int
}

// longRow is one long-form row as read for pivoting. PolicyYearRaw keeps the
// stored value undecoded: legacy loads stored text like "10+ (2014 之前)" in
// the policy_year column, and that text may be the only place the purchase
// year survives.
type longRow struct {
	Company         string
	ProductName     string
	ProductType     string
	Category        models.Category
	Currency        string
	PolicyYear      *int
	PolicyYearRaw   string
	PurchaseYear    *int
	FulfillmentRate *int
	Status          models.Status
	DataYear        int
	LastUpdated     string
	DataSource      string
}

// Run rebuilds the wide table from the current long table. The wide table is
// fully regenerated each run, never incrementally patched.
func (r *Restructurer) Run(opts Options) (*models.RestructureSummary, error) {
	rows, err := r.readLongRows()
	if err != nil {
		return nil, err
	}

	summary := &models.RestructureSummary{RowsRead: len(rows)}
	groups := make(map[groupKey]*models.WideRecord)
	var order []groupKey

	for _, row := range rows {
		purchaseYear := row.PurchaseYear
		if purchaseYear == nil {
			purchaseYear = normalize.ParenthesizedYear(row.PolicyYearRaw)
		}
		if purchaseYear == nil {
			// No representation in the wide table. Counted so the
			// loss is visible to the operator.
			summary.RowsDropped++
			continue
		}

		key := groupKey{
			Company:      row.Company,
			ProductName:  row.ProductName,
			Currency:     row.Currency,
			DataYear:     row.DataYear,
			PurchaseYear: *purchaseYear,
		}

		wide, ok := groups[key]
		if !ok {
			wide = &models.WideRecord{
				Company:      key.Company,
				ProductName:  key.ProductName,
				Currency:     models.Currency(key.Currency),
				DataYear:     key.DataYear,
				PurchaseYear: key.PurchaseYear,
			}
			groups[key] = wide
			order = append(order, key)
		}

		mergeRow(wide, row)
	}

	if err := r.writeWideTable(groups, order); err != nil {
		return nil, err
	}
	summary.GroupsWritten = len(groups)

	if summary.RowsDropped > 0 {
		logger.L.Warn("Long-form rows without a resolvable purchase year were excluded from the wide table",
			"dropped", summary.RowsDropped)
	}

	if opts.Backup {
		if err := r.backupLongTable(); err != nil {
			return nil, err
		}
		summary.BackedUp = true
	}

	logger.L.Info("Restructure complete",
		"rowsRead", summary.RowsRead, "rowsDropped", summary.RowsDropped,
		"groupsWritten", summary.GroupsWritten, "backedUp", summary.BackedUp)
	return summary, nil
}

func (r *Restructurer) readLongRows() ([]longRow, error) {
	rows, err := r.db.Query(`SELECT company, product_name, product_type, category,
		currency, policy_year, purchase_year, fulfillment_rate, status,
		data_year, last_updated, data_source
		FROM fulfillment_ratios`)
	if err != nil {
		return nil, fmt.Errorf("failed to read long-form table: %w", err)
	}
	defer rows.Close()

	var result []longRow
	for rows.Next() {
		var row longRow
		var productType, dataSource sql.NullString
		var policyYearRaw, purchaseYearRaw any
		var rate sql.NullInt64
		var category, status string

		if err := rows.Scan(&row.Company, &row.ProductName, &productType,
			&category, &row.Currency, &policyYearRaw, &purchaseYearRaw,
			&rate, &status, &row.DataYear, &row.LastUpdated, &dataSource); err != nil {
			return nil, fmt.Errorf("failed to scan long-form row: %w", err)
		}

		row.ProductType = productType.String
		row.DataSource = dataSource.String
		// Legacy labels still map to canonical categories on read.
		row.Category = normalize.CategoryLabel(category)
		row.Status = models.Status(status)
		if rate.Valid {
			v := int(rate.Int64)
			row.FulfillmentRate = &v
		}
		row.PolicyYear, row.PolicyYearRaw = decodeYearColumn(policyYearRaw)
		row.PurchaseYear, _ = decodeYearColumn(purchaseYearRaw)

		result = append(result, row)
	}
	return result, rows.Err()
}

// decodeYearColumn copes with SQLite's dynamic typing: year columns hold
// integers in current loads but free text in legacy ones.
func decodeYearColumn(v any) (*int, string) {
	switch t := v.(type) {
	case nil:
		return nil, ""
	case int64:
		n := int(t)
		return &n, strconv.Itoa(n)
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return &n, t
		}
		return nil, t
	case []byte:
		return decodeYearColumn(string(t))
	}
	return nil, ""
}

func mergeRow(wide *models.WideRecord, row longRow) {
	if row.ProductType > wide.ProductType {
		wide.ProductType = row.ProductType
	}
	if row.PolicyYear != nil && (wide.PolicyYear == nil || *row.PolicyYear < *wide.PolicyYear) {
		y := *row.PolicyYear
		wide.PolicyYear = &y
	}
	if row.LastUpdated > wide.LastUpdated {
		wide.LastUpdated = row.LastUpdated
	}
	if row.DataSource > wide.DataSource {
		wide.DataSource = row.DataSource
	}

	cell := wide.Cell(row.Category)
	if cell == nil {
		// Unmapped category label: nothing to pivot it into.
		logger.L.Debug("Ignoring row with unmapped category during pivot",
			"category", row.Category, "productName", row.ProductName)
		return
	}

	// At most one row per category by construction of the natural key;
	// legacy duplicates resolve by maximum, matching the SQL pivot.
	if row.FulfillmentRate != nil && (cell.Rate == nil || *row.FulfillmentRate > *cell.Rate) {
		v := *row.FulfillmentRate
		cell.Rate = &v
	}
	if cell.Status == nil || string(row.Status) > string(*cell.Status) {
		s := row.Status
		cell.Status = &s
	}
}

func (r *Restructurer) writeWideTable(groups map[groupKey]*models.WideRecord, order []groupKey) error {
	// Deterministic write order keeps reruns byte-comparable.
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.Company != b.Company {
			return a.Company < b.Company
		}
		if a.ProductName != b.ProductName {
			return a.ProductName < b.ProductName
		}
		if a.Currency != b.Currency {
			return a.Currency < b.Currency
		}
		if a.DataYear != b.DataYear {
			return a.DataYear < b.DataYear
		}
		return a.PurchaseYear < b.PurchaseYear
	})

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("error beginning restructure transaction: %w", err)
	}
	defer tx.Rollback()

	// A stale staging table from a crashed run is discarded.
	if _, err := tx.Exec(`DROP TABLE IF EXISTS ` + stagingTable); err != nil {
		return fmt.Errorf("failed to drop stale staging table: %w", err)
	}

	if _, err := tx.Exec(`CREATE TABLE ` + stagingTable + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		company TEXT NOT NULL,
		product_name TEXT NOT NULL,
		product_type TEXT,
		currency TEXT NOT NULL,
		data_year INTEGER NOT NULL,
		purchase_year INTEGER NOT NULL,
		policy_year INTEGER,
		reversionary_bonus_rate INTEGER,
		reversionary_bonus_status TEXT,
		special_bonus_rate INTEGER,
		special_bonus_status TEXT,
		annual_bonus_rate INTEGER,
		annual_bonus_status TEXT,
		terminal_bonus_rate INTEGER,
		terminal_bonus_status TEXT,
		total_cash_value_rate INTEGER,
		total_cash_value_status TEXT,
		last_updated TEXT NOT NULL,
		data_source TEXT,
		UNIQUE(company, product_name, currency, data_year, purchase_year)
	)`); err != nil {
		return fmt.Errorf("failed to create staging table: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO ` + stagingTable + ` (
		company, product_name, product_type, currency, data_year,
		purchase_year, policy_year,
		reversionary_bonus_rate, reversionary_bonus_status,
		special_bonus_rate, special_bonus_status,
		annual_bonus_rate, annual_bonus_status,
		terminal_bonus_rate, terminal_bonus_status,
		total_cash_value_rate, total_cash_value_status,
		last_updated, data_source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing wide insert statement: %w", err)
	}
	defer stmt.Close()

	for _, key := range order {
		w := groups[key]
		if _, err := stmt.Exec(
			w.Company, w.ProductName, nullableString(w.ProductType),
			string(w.Currency), w.DataYear, w.PurchaseYear, w.PolicyYear,
			w.ReversionaryBonus.Rate, statusArg(w.ReversionaryBonus.Status),
			w.SpecialBonus.Rate, statusArg(w.SpecialBonus.Status),
			w.AnnualBonus.Rate, statusArg(w.AnnualBonus.Status),
			w.TerminalBonus.Rate, statusArg(w.TerminalBonus.Status),
			w.TotalCashValue.Rate, statusArg(w.TotalCashValue.Status),
			w.LastUpdated, nullableString(w.DataSource),
		); err != nil {
			return fmt.Errorf("failed to insert wide row for %s/%s: %w", w.Company, w.ProductName, err)
		}
	}

	// Swap-on-completion: the old wide table disappears and the fully
	// populated staging table takes its name in the same transaction.
	if _, err := tx.Exec(`DROP TABLE IF EXISTS ` + WideTable); err != nil {
		return fmt.Errorf("failed to drop previous wide table: %w", err)
	}
	if _, err := tx.Exec(`ALTER TABLE ` + stagingTable + ` RENAME TO ` + WideTable); err != nil {
		return fmt.Errorf("failed to publish wide table: %w", err)
	}

	wideIndexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_product_lookup ON ` + WideTable + `(company, product_name, currency, data_year)`,
		`CREATE INDEX IF NOT EXISTS idx_purchase_year ON ` + WideTable + `(purchase_year)`,
		`CREATE INDEX IF NOT EXISTS idx_policy_year ON ` + WideTable + `(policy_year)`,
		`CREATE INDEX IF NOT EXISTS idx_company_product ON ` + WideTable + `(company, product_name)`,
	}
	for _, indexSQL := range wideIndexes {
		if _, err := tx.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create wide index: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing restructure: %w", err)
	}
	return nil
}

// backupLongTable renames the long-form table out of the way. Its indexes
// are dropped first so a later InitSchema can recreate them on a fresh
// table under the same names.
func (r *Restructurer) backupLongTable() error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("error beginning backup transaction: %w", err)
	}
	defer tx.Rollback()

	statements := []string{
		`DROP TABLE IF EXISTS ` + loader.BackupTable,
		`DROP INDEX IF EXISTS uq_natural_key`,
		`DROP INDEX IF EXISTS idx_company`,
		`DROP INDEX IF EXISTS idx_product`,
		`DROP INDEX IF EXISTS idx_currency`,
		`DROP INDEX IF EXISTS idx_year`,
		`DROP INDEX IF EXISTS idx_status`,
		`ALTER TABLE ` + loader.LongTable + ` RENAME TO ` + loader.BackupTable,
	}
	for _, s := range statements {
		if _, err := tx.Exec(s); err != nil {
			return fmt.Errorf("failed to back up long table: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing backup: %w", err)
	}

	logger.L.Info("Long-form table renamed", "backup", loader.BackupTable)
	return nil
}

func statusArg(s *models.Status) any {
	if s == nil {
		return nil
	}
	return string(*s)
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
