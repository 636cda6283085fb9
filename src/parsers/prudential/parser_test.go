package prudential

import (
	"strings"
	"testing"

	"github.com/crisrui7/hk-insurance-dividend/src/models"
)

const sampleDocument = `{
	"prudential_products": [
		{
			"product_name": "「理想人生」保障系列 II - 分期繳費 (美元) [2024 報告年度的歸原紅利現金價值分紅實現率]",
			"product_name_citation": "prudential.com.hk",
			"fulfillment_ratios": [
				{"policy_year": "1 (2023)", "percentage": "105%"},
				{"policy_year": "10+ (2014 之前)", "percentage": "不適用"}
			]
		},
		{
			"product_name": "「特級雋升」儲蓄保障計劃 - 整付保費 (港元) [2024 報告年度的特別紅利分紅實現率]",
			"fulfillment_ratios": [
				{"policy_year": "3 (2021)", "percentage": "97.4"}
			]
		}
	]
}`

func TestParse(t *testing.T) {
	p := NewParser(2024, "2024-06-01")
	records, err := p.Parse(strings.NewReader(sampleDocument))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	first := records[0]
	if first.Company != "保诚保险" {
		t.Errorf("Expected company 保诚保险, got %q", first.Company)
	}
	if first.ProductName != "「理想人生」保障系列 II" {
		t.Errorf("Name not stripped to bare product: %q", first.ProductName)
	}
	if first.Currency != models.CurrencyUSD {
		t.Errorf("Expected USD from (美元), got %q", first.Currency)
	}
	if first.Category != models.CategoryReversionaryBonus {
		t.Errorf("Expected reversionary_bonus from 歸原紅利, got %q", first.Category)
	}
	if first.PolicyYear == nil || *first.PolicyYear != 1 {
		t.Errorf("Expected policy_year 1, got %v", first.PolicyYear)
	}
	if first.PurchaseYear == nil || *first.PurchaseYear != 2023 {
		t.Errorf("Expected purchase_year 2023, got %v", first.PurchaseYear)
	}
	if first.FulfillmentRate == nil || *first.FulfillmentRate != 105 {
		t.Errorf("Expected rate 105, got %v", first.FulfillmentRate)
	}

	second := records[1]
	if second.PolicyYear == nil || *second.PolicyYear != 10 {
		t.Errorf("Expected policy_year 10, got %v", second.PolicyYear)
	}
	if second.PurchaseYear == nil || *second.PurchaseYear != 2014 {
		t.Errorf("Expected purchase_year 2014, got %v", second.PurchaseYear)
	}
	if second.FulfillmentRate != nil || second.Status != models.StatusNoData {
		t.Errorf("Unrecognized percentage text must yield (nil, no_data), got (%v, %q)",
			second.FulfillmentRate, second.Status)
	}

	third := records[2]
	if third.ProductName != "「特級雋升」儲蓄保障計劃" {
		t.Errorf("Single-premium suffix not stripped: %q", third.ProductName)
	}
	if third.Currency != models.CurrencyHKD {
		t.Errorf("Expected HKD from (港元), got %q", third.Currency)
	}
	if third.Category != models.CategorySpecialBonus {
		t.Errorf("Expected special_bonus from 特別紅利, got %q", third.Category)
	}
	if third.FulfillmentRate == nil || *third.FulfillmentRate != 97 {
		t.Errorf("Expected 97.4 truncated to 97, got %v", third.FulfillmentRate)
	}
}

func TestDissectProductName(t *testing.T) {
	tests := []struct {
		raw          string
		wantName     string
		wantCurrency models.Currency
		wantCategory models.Category
	}{
		{
			"「理想人生」保障系列 II - 分期繳費 (美元) [2024 報告年度的歸原紅利現金價值分紅實現率]",
			"「理想人生」保障系列 II",
			models.CurrencyUSD,
			models.CategoryReversionaryBonus,
		},
		{
			"計劃A (人民幣) [2024 終期紅利]",
			"計劃A",
			models.CurrencyRMB,
			models.CategoryTerminalBonus,
		},
		// No currency parenthetical and no category label: defaults.
		{"計劃B", "計劃B", models.CurrencyUSD, models.CategoryAnnualBonus},
	}

	for _, tt := range tests {
		name, currency, category := dissectProductName(tt.raw)
		if name != tt.wantName || currency != tt.wantCurrency || category != tt.wantCategory {
			t.Errorf("dissectProductName(%q) = (%q, %q, %q), want (%q, %q, %q)",
				tt.raw, name, currency, category, tt.wantName, tt.wantCurrency, tt.wantCategory)
		}
	}
}
