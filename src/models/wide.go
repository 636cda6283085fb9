package models

// CategoryCell is one (rate, status) column pair of a wide row. Both fields
// are nil when the group has no row for that category.
type CategoryCell struct {
	Rate   *int    `json:"rate"`
	Status *Status `json:"status"`
}

// WideRecord is one product/currency/purchase-year's full dividend profile,
// derived by pivoting the long-form rows that share the grouping key.
type WideRecord struct {
	Company      string   `json:"company"`
	ProductName  string   `json:"product_name"`
	ProductType  string   `json:"product_type,omitempty"`
	Currency     Currency `json:"currency"`
	DataYear     int      `json:"data_year"`
	PurchaseYear int      `json:"purchase_year"`

	// PolicyYear is the minimum policy year observed in the group; a
	// purchase-year group may contain several policy-year observations
	// when the source mixes both axes.
	PolicyYear *int `json:"policy_year"`

	ReversionaryBonus CategoryCell `json:"reversionary_bonus"`
	SpecialBonus      CategoryCell `json:"special_bonus"`
	AnnualBonus       CategoryCell `json:"annual_bonus"`
	TerminalBonus     CategoryCell `json:"terminal_bonus"`
	TotalCashValue    CategoryCell `json:"total_cash_value"`

	LastUpdated string `json:"last_updated"`
	DataSource  string `json:"data_source,omitempty"`
}

// Cell returns the column pair for a known category, or nil for an
// unmapped category label.
func (w *WideRecord) Cell(c Category) *CategoryCell {
	switch c {
	case CategoryReversionaryBonus:
		return &w.ReversionaryBonus
	case CategorySpecialBonus:
		return &w.SpecialBonus
	case CategoryAnnualBonus:
		return &w.AnnualBonus
	case CategoryTerminalBonus:
		return &w.TerminalBonus
	case CategoryTotalCashValue:
		return &w.TotalCashValue
	}
	return nil
}
