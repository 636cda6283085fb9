package parsers

import (
	"io"

	"github.com/crisrui7/hk-insurance-dividend/src/models"
)

// Parser turns one insurer's raw JSON document into canonical long-form
// records. Implementations drop records they cannot minimally construct
// instead of failing the whole document.
type Parser interface {
	Parse(r io.Reader) ([]models.CanonicalRecord, error)
}

// Options carries the per-run metadata every adapter stamps onto its
// records.
type Options struct {
	DataYear    int    // the disclosure's reporting year
	LastUpdated string // ISO date of this ingestion run
}
