// Package validation checks structural and logical invariants on canonical
// records before they reach the load engine.
package validation

import (
	"fmt"

	"github.com/crisrui7/hk-insurance-dividend/src/models"
)

const maxSamples = 10

// ValidateRecord checks one record and collects every violation rather than
// stopping at the first.
func ValidateRecord(rec models.CanonicalRecord) (bool, []string) {
	var errs []string

	if rec.Company == "" {
		errs = append(errs, "missing required field: company")
	}
	if rec.ProductName == "" {
		errs = append(errs, "missing required field: product_name")
	}
	if rec.Category == "" {
		errs = append(errs, "missing required field: category")
	}
	if rec.Currency == "" {
		errs = append(errs, "missing required field: currency")
	}
	if rec.Status == "" {
		errs = append(errs, "missing required field: status")
	}
	if rec.DataYear == 0 {
		errs = append(errs, "missing required field: data_year")
	}

	if rec.PolicyYear == nil && rec.PurchaseYear == nil {
		errs = append(errs, "at least one of policy_year / purchase_year is required")
	}

	if rec.PolicyYear != nil && *rec.PolicyYear < 0 {
		errs = append(errs, fmt.Sprintf("policy_year must be non-negative: %d", *rec.PolicyYear))
	}
	if rec.PurchaseYear != nil && (*rec.PurchaseYear < 1000 || *rec.PurchaseYear > 9999) {
		errs = append(errs, fmt.Sprintf("purchase_year must be a 4-digit year: %d", *rec.PurchaseYear))
	}

	if rec.FulfillmentRate != nil && (*rec.FulfillmentRate < 0 || *rec.FulfillmentRate > 500) {
		errs = append(errs, fmt.Sprintf("fulfillment_rate out of range [0,500]: %d", *rec.FulfillmentRate))
	}

	// A normal record must carry a rate. The converse (a stray rate on a
	// non-normal record) is not independently enforced.
	if rec.Status == models.StatusNormal && rec.FulfillmentRate == nil {
		errs = append(errs, "status is normal but fulfillment_rate is null")
	}

	return len(errs) == 0, errs
}

// ValidateBatch aggregates valid/invalid counts over a batch and captures up
// to the first ten failing records for operator reporting.
func ValidateBatch(records []models.CanonicalRecord) models.BatchValidation {
	result := models.BatchValidation{Total: len(records)}

	for i, rec := range records {
		ok, errs := ValidateRecord(rec)
		if ok {
			result.Valid++
			continue
		}
		result.Invalid++
		if len(result.Samples) < maxSamples {
			result.Samples = append(result.Samples, models.InvalidSample{
				RecordIndex: i,
				ProductName: rec.ProductName,
				Errors:      errs,
			})
		}
	}

	return result
}

// Filter returns only the records that pass validation.
func Filter(records []models.CanonicalRecord) []models.CanonicalRecord {
	valid := make([]models.CanonicalRecord, 0, len(records))
	for _, rec := range records {
		if ok, _ := ValidateRecord(rec); ok {
			valid = append(valid, rec)
		}
	}
	return valid
}
