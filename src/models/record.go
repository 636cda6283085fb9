package models

// Status classifies a disclosure data point. A record is either a measured
// fulfillment rate (StatusNormal) or an explanation of why no rate exists.
type Status string

const (
	StatusNormal        Status = "normal"
	StatusDiscontinued  Status = "discontinued"
	StatusNotLaunched   Status = "not_launched"
	StatusNoDividend    Status = "no_dividend"
	StatusNoTermination Status = "no_termination"
	StatusNotReachedYet Status = "not_reached_yet"
	StatusNoPolicy      Status = "no_policy"
	StatusNoData        Status = "no_data"
)

// Currency is the canonical currency code of a disclosure. Unknown spellings
// are carried through upper-cased rather than rejected, so values outside the
// constants below are possible by design.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyHKD Currency = "HKD"
	CurrencyRMB Currency = "RMB"
	CurrencyAll Currency = "ALL"
)

// Category is the dividend category of a disclosure. Labels the normalizer
// cannot map are carried through verbatim.
type Category string

const (
	CategoryAnnualBonus       Category = "annual_bonus"
	CategoryTerminalBonus     Category = "terminal_bonus"
	CategoryReversionaryBonus Category = "reversionary_bonus"
	CategorySpecialBonus      Category = "special_bonus"
	CategoryTotalCashValue    Category = "total_cash_value"
)

// CanonicalRecord is the unified long-form representation of one disclosed
// data point. Each insurer adapter is responsible for populating as many of
// these fields as possible directly from its source document.
//
// At least one of PolicyYear / PurchaseYear is set: some insurers disclose by
// policy duration, others by calendar purchase year, a few by both.
type CanonicalRecord struct {
	Company         string   `json:"company"`
	ProductName     string   `json:"product_name"`
	ProductType     string   `json:"product_type,omitempty"`
	Category        Category `json:"category"`
	Currency        Currency `json:"currency"`
	PolicyYear      *int     `json:"policy_year"`
	PurchaseYear    *int     `json:"purchase_year"`
	FulfillmentRate *int     `json:"fulfillment_rate"`
	Status          Status   `json:"status"`
	DataYear        int      `json:"data_year"`
	LastUpdated     string   `json:"last_updated"`
	DataSource      string   `json:"data_source,omitempty"`
}
