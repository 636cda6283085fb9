package models

// LoadResult reports the outcome of one upsert batch run.
type LoadResult struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}

// InvalidSample is one failing record captured for operator reporting.
type InvalidSample struct {
	RecordIndex int      `json:"record_index"`
	ProductName string   `json:"product_name"`
	Errors      []string `json:"errors"`
}

// BatchValidation aggregates a validation pass over a record batch. Samples
// holds at most the first ten failing records.
type BatchValidation struct {
	Total   int             `json:"total"`
	Valid   int             `json:"valid"`
	Invalid int             `json:"invalid"`
	Samples []InvalidSample `json:"errors,omitempty"`
}

// RestructureSummary reports one long-to-wide rebuild.
type RestructureSummary struct {
	RowsRead      int  `json:"rows_read"`
	RowsDropped   int  `json:"rows_dropped"` // no resolvable purchase year
	GroupsWritten int  `json:"groups_written"`
	BackedUp      bool `json:"backed_up"`
}

// Statistics is a read-only snapshot of the long-form table.
type Statistics struct {
	TotalRecords  int            `json:"total_records"`
	TotalProducts int            `json:"total_products"`
	ByCompany     map[string]int `json:"by_company"`
	ByStatus      map[string]int `json:"by_status"`
	ByCurrency    map[string]int `json:"by_currency"`
}

// IngestResult is the combined outcome of one source document ingestion.
type IngestResult struct {
	Source     string          `json:"source"`
	Parsed     int             `json:"parsed"`
	Validation BatchValidation `json:"validation"`
	Load       LoadResult      `json:"load"`
}
