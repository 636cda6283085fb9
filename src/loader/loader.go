// Package loader applies validated canonical records to the long-form table
// with at-most-one row per natural key.
package loader

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/crisrui7/hk-insurance-dividend/src/logger"
	"github.com/crisrui7/hk-insurance-dividend/src/models"
)

// LongTable is the long-form table name; BackupTable is what the
// restructurer renames it to when asked to back it up.
const (
	LongTable   = "fulfillment_ratios"
	BackupTable = "fulfillment_ratios_backup"
)

const DefaultBatchSize = 100

// Loader owns write access to the long-form table.
type Loader struct {
	db *sql.DB
}

func NewLoader(db *sql.DB) *Loader {
	return &Loader{db: db}
}

// InitSchema idempotently ensures the long-form table and its indexes exist.
//
// The natural-key uniqueness lives in an expression index rather than an
// inline constraint: SQLite treats NULLs as distinct in UNIQUE, so a plain
// seven-column constraint would never fire for rows missing one year axis
// and re-ingestion would duplicate them. IFNULL(-1) makes absent years
// compare equal.
func (l *Loader) InitSchema() error {
	createTableStatement := `
	CREATE TABLE IF NOT EXISTS fulfillment_ratios (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		company TEXT NOT NULL,
		product_name TEXT NOT NULL,
		product_type TEXT,
		category TEXT NOT NULL,
		currency TEXT NOT NULL,
		policy_year INTEGER,
		purchase_year INTEGER,
		fulfillment_rate INTEGER,
		status TEXT NOT NULL,
		data_year INTEGER NOT NULL,
		last_updated TEXT NOT NULL,
		data_source TEXT
	);
	`

	if _, err := l.db.Exec(createTableStatement); err != nil {
		return fmt.Errorf("failed to create table %s: %w", LongTable, err)
	}

	indexes := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_natural_key ON fulfillment_ratios(
			company, product_name, category, currency,
			IFNULL(policy_year, -1), IFNULL(purchase_year, -1), data_year)`,
		`CREATE INDEX IF NOT EXISTS idx_company ON fulfillment_ratios(company)`,
		`CREATE INDEX IF NOT EXISTS idx_product ON fulfillment_ratios(product_name)`,
		`CREATE INDEX IF NOT EXISTS idx_currency ON fulfillment_ratios(currency)`,
		`CREATE INDEX IF NOT EXISTS idx_year ON fulfillment_ratios(policy_year)`,
		`CREATE INDEX IF NOT EXISTS idx_status ON fulfillment_ratios(status)`,
	}
	for _, indexSQL := range indexes {
		if _, err := l.db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	logger.L.Info("Long-form schema ensured", "table", LongTable)
	return nil
}

// UpsertBatch applies records in fixed-size batches, committing once per
// batch. A record whose insert hits the natural-key uniqueness constraint
// updates the mutable fields of the existing row instead; any other
// per-record failure is logged and counted as skipped without aborting the
// batch.
func (l *Loader) UpsertBatch(records []models.CanonicalRecord, batchSize int) (models.LoadResult, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	result := models.LoadResult{Total: len(records)}

	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}

		if err := l.upsertChunk(records[start:end], &result); err != nil {
			return result, err
		}
	}

	logger.L.Info("Upsert batch complete",
		"inserted", result.Inserted, "updated", result.Updated,
		"skipped", result.Skipped, "total", result.Total)
	return result, nil
}

func (l *Loader) upsertChunk(records []models.CanonicalRecord, result *models.LoadResult) error {
	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer tx.Rollback()

	insertStmt, err := tx.Prepare(`INSERT INTO fulfillment_ratios
		(company, product_name, product_type, category, currency,
		 policy_year, purchase_year, fulfillment_rate, status, data_year,
		 last_updated, data_source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing insert statement: %w", err)
	}
	defer insertStmt.Close()

	// The year columns are matched with IS so NULL keys compare equal.
	updateStmt, err := tx.Prepare(`UPDATE fulfillment_ratios
		SET fulfillment_rate = ?, status = ?, last_updated = ?, data_source = ?
		WHERE company = ? AND product_name = ? AND category = ? AND currency = ?
		  AND policy_year IS ? AND purchase_year IS ? AND data_year = ?`)
	if err != nil {
		return fmt.Errorf("error preparing update statement: %w", err)
	}
	defer updateStmt.Close()

	for _, rec := range records {
		_, err := insertStmt.Exec(
			rec.Company, rec.ProductName, nullableString(rec.ProductType),
			string(rec.Category), string(rec.Currency),
			rec.PolicyYear, rec.PurchaseYear, rec.FulfillmentRate,
			string(rec.Status), rec.DataYear, rec.LastUpdated,
			nullableString(rec.DataSource),
		)
		if err == nil {
			result.Inserted++
			continue
		}

		if !strings.Contains(strings.ToLower(err.Error()), "unique constraint failed") {
			logger.L.Error("Skipping record on insert failure",
				"productName", rec.ProductName, "error", err)
			result.Skipped++
			continue
		}

		res, err := updateStmt.Exec(
			rec.FulfillmentRate, string(rec.Status), rec.LastUpdated,
			nullableString(rec.DataSource),
			rec.Company, rec.ProductName, string(rec.Category),
			string(rec.Currency), rec.PolicyYear, rec.PurchaseYear, rec.DataYear,
		)
		if err != nil {
			logger.L.Error("Skipping record on update failure",
				"productName", rec.ProductName, "error", err)
			result.Skipped++
			continue
		}

		if n, _ := res.RowsAffected(); n > 0 {
			result.Updated++
		} else {
			result.Skipped++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing batch: %w", err)
	}
	return nil
}

// Clear deletes all rows, or all rows for one company.
func (l *Loader) Clear(company string) error {
	var err error
	if company != "" {
		_, err = l.db.Exec(`DELETE FROM fulfillment_ratios WHERE company = ?`, company)
	} else {
		_, err = l.db.Exec(`DELETE FROM fulfillment_ratios`)
	}
	if err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}

	logger.L.Info("Cleared long-form records", "company", company)
	return nil
}

// Statistics reports totals and group-by counts over the long-form table.
// It is a read-only reporting query, not part of the pipeline's control flow.
func (l *Loader) Statistics() (*models.Statistics, error) {
	stats := &models.Statistics{}

	if err := l.db.QueryRow(`SELECT COUNT(*) FROM fulfillment_ratios`).Scan(&stats.TotalRecords); err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}
	if err := l.db.QueryRow(`SELECT COUNT(DISTINCT product_name) FROM fulfillment_ratios`).Scan(&stats.TotalProducts); err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	var err error
	if stats.ByCompany, err = l.groupCount("company"); err != nil {
		return nil, err
	}
	if stats.ByStatus, err = l.groupCount("status"); err != nil {
		return nil, err
	}
	if stats.ByCurrency, err = l.groupCount("currency"); err != nil {
		return nil, err
	}

	return stats, nil
}

func (l *Loader) groupCount(column string) (map[string]int, error) {
	rows, err := l.db.Query(fmt.Sprintf(
		`SELECT %s, COUNT(*) FROM fulfillment_ratios GROUP BY %s`, column, column))
	if err != nil {
		return nil, fmt.Errorf("failed to group by %s: %w", column, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("failed to scan %s count: %w", column, err)
		}
		counts[key] = n
	}
	return counts, rows.Err()
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
