// Package aia parses AIA (友邦保险) fulfillment-ratio documents.
//
// The feed splits into two sub-feeds without per-record categories: dividend
// bonus ratios and total-cash-value ratios. Year cells mix Chinese ordinals
// with parenthesized purchase years ("第一個保單年度 (2023)").
package aia

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/crisrui7/hk-insurance-dividend/src/logger"
	"github.com/crisrui7/hk-insurance-dividend/src/models"
	"github.com/crisrui7/hk-insurance-dividend/src/normalize"
)

const companyName = "友邦保险"

type rawDocument struct {
	DividendBonus []rawItem `json:"fulfillment_ratio_for_dividend_bonus"`
	TotalValue    []rawItem `json:"fulfillment_ratio_for_total_value"`
}

type rawItem struct {
	ProductName         string `json:"product_name"`
	ProductNameCitation string `json:"product_name_citation"`
	Currency            string `json:"currency"`
	PolicyYear          string `json:"policy_year"`
	FulfillmentRatio    string `json:"fulfillment_ratio"`
}

type AIAParser struct {
	dataYear    int
	lastUpdated string
}

func NewParser(dataYear int, lastUpdated string) *AIAParser {
	return &AIAParser{dataYear: dataYear, lastUpdated: lastUpdated}
}

func (p *AIAParser) Parse(r io.Reader) ([]models.CanonicalRecord, error) {
	var doc rawDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode aia document: %w", err)
	}

	var records []models.CanonicalRecord
	records = append(records, p.parseFeed(doc.DividendBonus, models.CategoryAnnualBonus)...)
	records = append(records, p.parseFeed(doc.TotalValue, models.CategoryTotalCashValue)...)
	return records, nil
}

func (p *AIAParser) parseFeed(items []rawItem, category models.Category) []models.CanonicalRecord {
	var records []models.CanonicalRecord
	for _, item := range items {
		productName := strings.TrimSpace(item.ProductName)
		if productName == "" {
			logger.L.Debug("Skipping aia entry without product name")
			continue
		}

		currencyRaw := item.Currency
		if currencyRaw == "" {
			currencyRaw = "所有"
		}

		ordinal, purchaseYear, ok := normalize.OrdinalPolicyYear(item.PolicyYear)
		var policyYear *int
		if ok {
			policyYear = &ordinal
		} else if purchaseYear == nil {
			logger.L.Warn("Skipping aia entry with unparseable policy year",
				"productName", productName, "policyYear", item.PolicyYear)
			continue
		}

		rate, status := normalize.RatioOrStatus(item.FulfillmentRatio)

		records = append(records, models.CanonicalRecord{
			Company:         companyName,
			ProductName:     productName,
			Category:        category,
			Currency:        normalize.CurrencyCode(currencyRaw),
			PolicyYear:      policyYear,
			PurchaseYear:    purchaseYear,
			FulfillmentRate: rate,
			Status:          status,
			DataYear:        p.dataYear,
			LastUpdated:     p.lastUpdated,
			DataSource:      item.ProductNameCitation,
		})
	}
	return records
}
