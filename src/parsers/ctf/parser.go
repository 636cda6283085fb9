// Package ctf parses CTF Life (周大福人寿) fulfillment-ratio documents.
//
// This insurer's year axis is calendar-based: the feed's policy_year field
// is really the purchase year, and its ratios arrive as numbers in [0,1].
package ctf

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/crisrui7/hk-insurance-dividend/src/logger"
	"github.com/crisrui7/hk-insurance-dividend/src/models"
	"github.com/crisrui7/hk-insurance-dividend/src/normalize"
)

const companyName = "周大福人寿"

type rawDocument struct {
	FulfillmentRatios []rawItem `json:"fulfillment_ratios"`
}

type rawItem struct {
	ProductName         string   `json:"product_name"`
	ProductNameCitation string   `json:"product_name_citation"`
	Currency            string   `json:"currency"`
	PolicyYear          *int     `json:"policy_year"`
	Ratio               *float64 `json:"ratio"`
	Type                string   `json:"type"`
}

type CTFParser struct {
	dataYear    int
	lastUpdated string
}

func NewParser(dataYear int, lastUpdated string) *CTFParser {
	return &CTFParser{dataYear: dataYear, lastUpdated: lastUpdated}
}

func (p *CTFParser) Parse(r io.Reader) ([]models.CanonicalRecord, error) {
	var doc rawDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode ctf document: %w", err)
	}

	var records []models.CanonicalRecord
	for _, item := range doc.FulfillmentRatios {
		productName := normalize.StripClosedToSales(item.ProductName)
		if productName == "" {
			logger.L.Debug("Skipping ctf entry without product name")
			continue
		}

		categoryLabel := item.Type
		if categoryLabel == "" {
			categoryLabel = "Dividend"
		}

		var rate *int
		status := models.StatusNoData
		if item.Ratio != nil {
			v := normalize.PercentFromRatio(*item.Ratio)
			rate = &v
			status = models.StatusNormal
		}

		records = append(records, models.CanonicalRecord{
			Company:         companyName,
			ProductName:     productName,
			Category:        normalize.CategoryLabel(categoryLabel),
			Currency:        normalize.CurrencyCode(item.Currency),
			PolicyYear:      nil, // this feed has no policy-duration axis
			PurchaseYear:    item.PolicyYear,
			FulfillmentRate: rate,
			Status:          status,
			DataYear:        p.dataYear,
			LastUpdated:     p.lastUpdated,
			DataSource:      item.ProductNameCitation,
		})
	}

	return records, nil
}
