package ctf

import (
	"strings"
	"testing"

	"github.com/crisrui7/hk-insurance-dividend/src/models"
)

const sampleDocument = `{
	"fulfillment_ratios": [
		{
			"product_name": "「传承宝」壽險計劃 (Closed to sales)",
			"product_name_citation": "ctflife.com.hk",
			"currency": "美元",
			"policy_year": 2020,
			"ratio": 0.85,
			"type": "Dividend"
		},
		{
			"product_name": "「财富100」壽險計劃",
			"currency": "USD",
			"policy_year": 2021,
			"ratio": null,
			"type": "Terminal Bonus"
		},
		{
			"product_name": "",
			"currency": "USD",
			"policy_year": 2022,
			"ratio": 1.0
		}
	]
}`

func TestParse(t *testing.T) {
	p := NewParser(2024, "2024-06-01")
	records, err := p.Parse(strings.NewReader(sampleDocument))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// The nameless entry is dropped, not emitted.
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Company != "周大福人寿" {
		t.Errorf("Expected company 周大福人寿, got %q", first.Company)
	}
	if first.ProductName != "「传承宝」壽險計劃" {
		t.Errorf("Status suffix not stripped: %q", first.ProductName)
	}
	if first.Currency != models.CurrencyUSD {
		t.Errorf("Expected USD, got %q", first.Currency)
	}
	if first.PolicyYear != nil {
		t.Error("This feed's year axis is calendar-based; policy_year must stay null")
	}
	if first.PurchaseYear == nil || *first.PurchaseYear != 2020 {
		t.Errorf("Expected purchase_year 2020, got %v", first.PurchaseYear)
	}
	if first.FulfillmentRate == nil || *first.FulfillmentRate != 85 {
		t.Errorf("Expected rate 85 from ratio 0.85, got %v", first.FulfillmentRate)
	}
	if first.Status != models.StatusNormal {
		t.Errorf("Expected status normal, got %q", first.Status)
	}
	if first.Category != models.CategoryAnnualBonus {
		t.Errorf("Expected annual_bonus from type Dividend, got %q", first.Category)
	}
	if first.DataYear != 2024 || first.LastUpdated != "2024-06-01" {
		t.Errorf("Run metadata not stamped: %d %q", first.DataYear, first.LastUpdated)
	}
	if first.DataSource != "ctflife.com.hk" {
		t.Errorf("Expected citation carried through, got %q", first.DataSource)
	}

	second := records[1]
	if second.FulfillmentRate != nil {
		t.Errorf("Null ratio must yield null rate, got %v", *second.FulfillmentRate)
	}
	if second.Status != models.StatusNoData {
		t.Errorf("Null ratio must yield no_data, got %q", second.Status)
	}
	if second.Category != models.CategoryTerminalBonus {
		t.Errorf("Expected terminal_bonus, got %q", second.Category)
	}
}

func TestParseMalformedDocument(t *testing.T) {
	p := NewParser(2024, "2024-06-01")
	if _, err := p.Parse(strings.NewReader("not json")); err == nil {
		t.Error("Expected error for malformed document")
	}
}

func TestParseEmptyDocument(t *testing.T) {
	p := NewParser(2024, "2024-06-01")
	records, err := p.Parse(strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}
