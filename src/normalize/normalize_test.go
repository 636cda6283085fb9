package normalize

import (
	"testing"

	"github.com/crisrui7/hk-insurance-dividend/src/models"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		text string
		want models.Status
	}{
		{"Closed to sales", models.StatusDiscontinued},
		{"已停售", models.StatusDiscontinued},
		{"n/a(1)", models.StatusNotLaunched},
		{"N/A", models.StatusNoData},
		{"no dividend", models.StatusNoDividend},
		{"No Termination", models.StatusNoTermination},
		{"not reached yet", models.StatusNotReachedYet},
		{"no policy", models.StatusNoPolicy},
		{"something unexpected", models.StatusNoData},
		{"", models.StatusNoData},
	}

	for _, tt := range tests {
		if got := Status(tt.text); got != tt.want {
			t.Errorf("Status(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestStatusRuleOrder(t *testing.T) {
	// "n/a(1)" contains "n/a"; declaration order must pick not_launched.
	if got := Status("N/A(1)"); got != models.StatusNotLaunched {
		t.Errorf("Status(\"N/A(1)\") = %q, want not_launched", got)
	}
}

func TestCurrencyCode(t *testing.T) {
	tests := []struct {
		text string
		want models.Currency
	}{
		{"美元", models.CurrencyUSD},
		{"港元", models.CurrencyHKD},
		{"港幣", models.CurrencyHKD},
		{"人民币", models.CurrencyRMB},
		{"人民幣", models.CurrencyRMB},
		{"USD", models.CurrencyUSD},
		{"hkd", models.CurrencyHKD},
		{"cny", models.CurrencyRMB},
		{"所有", models.CurrencyAll},
		// Unmapped spellings carry through upper-cased, not rejected.
		{"gbp", models.Currency("GBP")},
		{" eur ", models.Currency("EUR")},
	}

	for _, tt := range tests {
		if got := CurrencyCode(tt.text); got != tt.want {
			t.Errorf("CurrencyCode(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestCategoryLabel(t *testing.T) {
	tests := []struct {
		text string
		want models.Category
	}{
		{"Dividend", models.CategoryAnnualBonus},
		{"Terminal Bonus", models.CategoryTerminalBonus},
		{"reversionary bonus", models.CategoryReversionaryBonus},
		{"special bonus", models.CategorySpecialBonus},
		{"Total Value", models.CategoryTotalCashValue},
		{"週年紅利", models.CategoryAnnualBonus},
		{"终期红利", models.CategoryTerminalBonus},
		{"終期分紅", models.CategoryTerminalBonus},
		{"归原红利", models.CategoryReversionaryBonus},
		{"復歸紅利", models.CategoryReversionaryBonus},
		{"特別紅利", models.CategorySpecialBonus},
		{"總現金價值", models.CategoryTotalCashValue},
		// Unmapped labels pass through unchanged.
		{"神秘紅利", models.Category("神秘紅利")},
	}

	for _, tt := range tests {
		if got := CategoryLabel(tt.text); got != tt.want {
			t.Errorf("CategoryLabel(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestRatioOrStatus(t *testing.T) {
	tests := []struct {
		text       string
		wantRate   *int
		wantStatus models.Status
	}{
		{"", nil, models.StatusNoData},
		{"   ", nil, models.StatusNoData},
		{"已停售", nil, models.StatusDiscontinued},
		{"Closed to sales", nil, models.StatusDiscontinued},
		{"100%", intPtr(100), models.StatusNormal},
		{"85", intPtr(85), models.StatusNormal},
		{"102.5%", intPtr(102), models.StatusNormal},
		{"no dividend", nil, models.StatusNoDividend},
		{"n/a(1)", nil, models.StatusNotLaunched},
		{"---", nil, models.StatusNoData},
	}

	for _, tt := range tests {
		rate, status := RatioOrStatus(tt.text)
		if status != tt.wantStatus {
			t.Errorf("RatioOrStatus(%q) status = %q, want %q", tt.text, status, tt.wantStatus)
		}
		if !intPtrEqual(rate, tt.wantRate) {
			t.Errorf("RatioOrStatus(%q) rate = %v, want %v", tt.text, fmtPtr(rate), fmtPtr(tt.wantRate))
		}
	}
}

func TestPercentFromRatio(t *testing.T) {
	tests := []struct {
		ratio float64
		want  int
	}{
		{1.0, 100},
		{0.85, 85}, // float 0.85*100 is 84.999…; decimal must not truncate it
		{0.07, 7},
		{1.23, 123},
		{0, 0},
	}

	for _, tt := range tests {
		if got := PercentFromRatio(tt.ratio); got != tt.want {
			t.Errorf("PercentFromRatio(%v) = %d, want %d", tt.ratio, got, tt.want)
		}
	}
}

func TestStripClosedToSales(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"「传承宝」壽險計劃 (Closed to sales)", "「传承宝」壽險計劃"},
		{"「财富100」壽險計劃", "「财富100」壽險計劃"},
		{"  Plan X (closed to sales)  ", "Plan X"},
	}

	for _, tt := range tests {
		if got := StripClosedToSales(tt.name); got != tt.want {
			t.Errorf("StripClosedToSales(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func intPtr(v int) *int { return &v }

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func fmtPtr(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
