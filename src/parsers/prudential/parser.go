// Package prudential parses Prudential (保诚保险) fulfillment-ratio documents.
//
// This insurer embeds currency, dividend category and payment mode in the
// product-name string itself, e.g.
//
//	「理想人生」保障系列 II - 分期繳費 (美元) [2024 報告年度的歸原紅利現金價值分紅實現率]
//
// so the adapter first dissects the name, then walks the nested per-year
// ratio entries.
package prudential

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/crisrui7/hk-insurance-dividend/src/logger"
	"github.com/crisrui7/hk-insurance-dividend/src/models"
	"github.com/crisrui7/hk-insurance-dividend/src/normalize"
)

const companyName = "保诚保险"

type rawDocument struct {
	Products []rawProduct `json:"prudential_products"`
}

type rawProduct struct {
	ProductName         string     `json:"product_name"`
	ProductNameCitation string     `json:"product_name_citation"`
	FulfillmentRatios   []rawRatio `json:"fulfillment_ratios"`
}

type rawRatio struct {
	PolicyYear string `json:"policy_year"`
	Percentage string `json:"percentage"`
}

var (
	currencyParenRe = regexp.MustCompile(`\((美元|港元|港幣|人民币|人民幣)\)`)
	parenRe         = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	bracketRe       = regexp.MustCompile(`\s*\[[^\]]*\]\s*`)
	installmentRe   = regexp.MustCompile(`\s*-\s*分期繳費\s*`)
	singlePremiumRe = regexp.MustCompile(`\s*-\s*整付保費\s*`)
)

type PrudentialParser struct {
	dataYear    int
	lastUpdated string
}

func NewParser(dataYear int, lastUpdated string) *PrudentialParser {
	return &PrudentialParser{dataYear: dataYear, lastUpdated: lastUpdated}
}

func (p *PrudentialParser) Parse(r io.Reader) ([]models.CanonicalRecord, error) {
	var doc rawDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode prudential document: %w", err)
	}

	var records []models.CanonicalRecord
	for _, product := range doc.Products {
		productName, currency, category := dissectProductName(product.ProductName)
		if productName == "" {
			logger.L.Debug("Skipping prudential product without name")
			continue
		}

		for _, ratio := range product.FulfillmentRatios {
			ordinal, purchaseYear, ok := normalize.ArabicPolicyYear(ratio.PolicyYear)
			var policyYear *int
			if ok {
				policyYear = &ordinal
			} else if purchaseYear == nil {
				logger.L.Warn("Skipping prudential entry with unparseable policy year",
					"productName", productName, "policyYear", ratio.PolicyYear)
				continue
			}

			rate, status := normalize.RatioOrStatus(ratio.Percentage)

			records = append(records, models.CanonicalRecord{
				Company:         companyName,
				ProductName:     productName,
				Category:        category,
				Currency:        currency,
				PolicyYear:      policyYear,
				PurchaseYear:    purchaseYear,
				FulfillmentRate: rate,
				Status:          status,
				DataYear:        p.dataYear,
				LastUpdated:     p.lastUpdated,
				DataSource:      product.ProductNameCitation,
			})
		}
	}

	return records, nil
}

// dissectProductName extracts currency and category from the raw name, then
// strips the currency parenthetical, the bracketed citation and payment-mode
// suffixes to recover the bare product name.
func dissectProductName(raw string) (name string, currency models.Currency, category models.Category) {
	currency = models.CurrencyUSD
	if m := currencyParenRe.FindStringSubmatch(raw); m != nil {
		currency = normalize.CurrencyCode(m[1])
	}

	category = models.CategoryAnnualBonus
	switch {
	case strings.Contains(raw, "歸原紅利") || strings.Contains(raw, "归原红利"):
		category = models.CategoryReversionaryBonus
	case strings.Contains(raw, "特別紅利") || strings.Contains(raw, "特别红利"):
		category = models.CategorySpecialBonus
	case strings.Contains(raw, "終期紅利") || strings.Contains(raw, "终期红利"):
		category = models.CategoryTerminalBonus
	}

	name = parenRe.ReplaceAllString(raw, " ")
	name = bracketRe.ReplaceAllString(name, "")
	name = installmentRe.ReplaceAllString(name, "")
	name = singlePremiumRe.ReplaceAllString(name, "")
	return strings.TrimSpace(name), currency, category
}
