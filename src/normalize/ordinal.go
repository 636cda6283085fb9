package normalize

import (
	"regexp"
	"strconv"
)

// chineseDigits drives ordinal parsing; 第X個/第X十Y個 phrases compose from
// this table, so any ordinal up to 99 parses without hand-enumeration.
var chineseDigits = map[rune]int{
	'一': 1, '二': 2, '三': 3, '四': 4, '五': 5,
	'六': 6, '七': 7, '八': 8, '九': 9,
}

var (
	parenYearRe = regexp.MustCompile(`\((\d{4})`)
	ordinalRe   = regexp.MustCompile(`第([一二三四五六七八九十]+)個`)
	digitRunRe  = regexp.MustCompile(`(\d+)`)
)

// ParenthesizedYear extracts a parenthesized 4-digit year such as the 2014
// in "10+ (2014 之前)". Nil when the text carries none.
func ParenthesizedYear(text string) *int {
	m := parenYearRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	y, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &y
}

// chineseNumeral evaluates a numeral composed of the digit table and 十.
func chineseNumeral(s string) (int, bool) {
	runes := []rune(s)
	tens := -1
	for i, r := range runes {
		if r == '十' {
			tens = i
			break
		}
	}

	if tens < 0 {
		if len(runes) != 1 {
			return 0, false
		}
		d, ok := chineseDigits[runes[0]]
		return d, ok
	}

	value := 10
	if tens > 0 {
		d, ok := chineseDigits[runes[tens-1]]
		if !ok || tens != 1 {
			return 0, false
		}
		value = d * 10
	}
	if tens < len(runes)-1 {
		if tens != len(runes)-2 {
			return 0, false
		}
		d, ok := chineseDigits[runes[len(runes)-1]]
		if !ok {
			return 0, false
		}
		value += d
	}
	return value, true
}

// OrdinalPolicyYear extracts a policy-year ordinal and an optional
// parenthesized purchase year from mixed Chinese-ordinal or Arabic text:
//
//	"第一個保單年度 (2023)"       -> 1, 2023, true
//	"第十個保單年度+ (2014之前)"  -> 10, 2014, true
//	"10+ (2014 之前)"            -> 10, 2014, true
//
// ok is false when the text carries neither a Chinese ordinal nor any digit
// run, so "no ordinal present" is a typed outcome rather than a default zero.
func OrdinalPolicyYear(text string) (year int, purchaseYear *int, ok bool) {
	purchaseYear = ParenthesizedYear(text)

	if m := ordinalRe.FindStringSubmatch(text); m != nil {
		if n, valid := chineseNumeral(m[1]); valid {
			return n, purchaseYear, true
		}
	}

	if m := digitRunRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, purchaseYear, true
		}
	}

	return 0, purchaseYear, false
}

// ArabicPolicyYear is the year extractor for sources without Chinese
// ordinals: the first digit run is the policy year, a parenthesized 4-digit
// year is the purchase year.
func ArabicPolicyYear(text string) (year int, purchaseYear *int, ok bool) {
	purchaseYear = ParenthesizedYear(text)

	if m := digitRunRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, purchaseYear, true
		}
	}
	return 0, purchaseYear, false
}
