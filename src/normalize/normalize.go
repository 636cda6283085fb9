// Package normalize maps insurer-specific vocabulary (status phrases,
// currency spellings, category labels, policy-year text) to the canonical
// tokens used by the long-form record.
package normalize

import (
	"regexp"
	"strings"

	"github.com/crisrui7/hk-insurance-dividend/src/models"
	"github.com/shopspring/decimal"
)

// statusRule maps a substring of a ratio cell to a status. Rules are checked
// in declaration order: "n/a(1)" must win over "n/a".
type statusRule struct {
	substr string
	status models.Status
}

var statusRules = []statusRule{
	{"closed to sales", models.StatusDiscontinued},
	{"已停售", models.StatusDiscontinued},
	{"n/a(1)", models.StatusNotLaunched},
	{"n/a", models.StatusNoData},
	{"no dividend", models.StatusNoDividend},
	{"no termination", models.StatusNoTermination},
	{"not reached yet", models.StatusNotReachedYet},
	{"no policy", models.StatusNoPolicy},
}

var currencyTable = map[string]models.Currency{
	"美元":  models.CurrencyUSD,
	"港元":  models.CurrencyHKD,
	"港幣":  models.CurrencyHKD,
	"人民币": models.CurrencyRMB,
	"人民幣": models.CurrencyRMB,
	"usd": models.CurrencyUSD,
	"hkd": models.CurrencyHKD,
	"rmb": models.CurrencyRMB,
	"cny": models.CurrencyRMB,
	"所有":  models.CurrencyAll,
}

var categoryTable = map[string]models.Category{
	"dividend":           models.CategoryAnnualBonus,
	"terminal bonus":     models.CategoryTerminalBonus,
	"reversionary bonus": models.CategoryReversionaryBonus,
	"special bonus":      models.CategorySpecialBonus,
	"total value":        models.CategoryTotalCashValue,
	"週年紅利":               models.CategoryAnnualBonus,
	"周年红利":               models.CategoryAnnualBonus,
	"終期紅利":               models.CategoryTerminalBonus,
	"终期红利":               models.CategoryTerminalBonus,
	"終期分紅":               models.CategoryTerminalBonus,
	"歸原紅利":               models.CategoryReversionaryBonus,
	"归原红利":               models.CategoryReversionaryBonus,
	"復歸紅利":               models.CategoryReversionaryBonus,
	"特別紅利":               models.CategorySpecialBonus,
	"特别红利":               models.CategorySpecialBonus,
	"總現金價值":              models.CategoryTotalCashValue,
	"总现金价值":              models.CategoryTotalCashValue,
}

var (
	numericTokenRe  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%?`)
	closedToSalesRe = regexp.MustCompile(`(?i)\s*\(closed to sales\)\s*`)
)

// Status scans text case-insensitively against the status-phrase table.
// The first matching rule wins; unmatched text means no_data.
func Status(text string) models.Status {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, rule := range statusRules {
		if strings.Contains(lower, rule.substr) {
			return rule.status
		}
	}
	return models.StatusNoData
}

// CurrencyCode maps Chinese, English and ISO spellings to a canonical
// currency. Unmapped input is carried through upper-cased, not rejected.
func CurrencyCode(text string) models.Currency {
	key := strings.ToLower(strings.TrimSpace(text))
	if c, ok := currencyTable[key]; ok {
		return c
	}
	return models.Currency(strings.ToUpper(strings.TrimSpace(text)))
}

// CategoryLabel maps English and Traditional/Simplified Chinese category
// labels to a canonical category. Unmapped labels pass through unchanged.
func CategoryLabel(text string) models.Category {
	trimmed := strings.TrimSpace(text)
	if c, ok := categoryTable[strings.ToLower(trimmed)]; ok {
		return c
	}
	return models.Category(trimmed)
}

// RatioOrStatus interprets one ratio cell. Empty text means no data; a
// status phrase yields that status with no rate; otherwise the first numeric
// token is truncated to an integer percentage with status normal.
func RatioOrStatus(text string) (*int, models.Status) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, models.StatusNoData
	}

	lower := strings.ToLower(trimmed)
	for _, rule := range statusRules {
		if strings.Contains(lower, rule.substr) {
			return nil, rule.status
		}
	}

	if m := numericTokenRe.FindStringSubmatch(lower); m != nil {
		d, err := decimal.NewFromString(m[1])
		if err == nil {
			v := int(d.IntPart())
			return &v, models.StatusNormal
		}
	}

	return nil, models.StatusNoData
}

// PercentFromRatio converts a 0–1 ratio into an integer percentage, rounding
// half away from zero. Going through decimal avoids float artifacts such as
// 0.85*100 = 84.999999.
func PercentFromRatio(ratio float64) int {
	return int(decimal.NewFromFloat(ratio).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}

// StripClosedToSales removes the "(Closed to sales)" status suffix from a
// product name.
func StripClosedToSales(name string) string {
	return strings.TrimSpace(closedToSalesRe.ReplaceAllString(name, ""))
}
