// Package parser turns raw document text into normalized grids: it extracts
// tables from markdown or xlsx sources and converts every raw cell string
// into a typed Cell under a per-document numeric locale.
package parser

import "strings"

// Locale is the thousands/decimal separator convention used to parse
// numerals. It is not a language or region setting.
type Locale int

const (
	// LocaleDotDecimal reads "1,234.56" as 1234.56.
	LocaleDotDecimal Locale = iota
	// LocaleCommaDecimal reads "1.234,56" as 1234.56.
	LocaleCommaDecimal
)

// String returns a short name for the locale.
func (l Locale) String() string {
	if l == LocaleCommaDecimal {
		return "comma-decimal"
	}
	return "dot-decimal"
}

func (l Locale) thousandsSep() string {
	if l == LocaleCommaDecimal {
		return "."
	}
	return ","
}

func (l Locale) decimalSep() string {
	if l == LocaleCommaDecimal {
		return ","
	}
	return "."
}

// DetectLocale resolves one numeric locale for a document from every raw
// string containing a digit, pooled across all tables and columns. Each
// sample votes: when both separators appear, the one occurring last is the
// decimal separator (2 points); a lone separator splitting the string into
// three or more groups is a thousands separator (2 points for the opposite
// convention); a lone separator with exactly two groups and a trailing group
// of length other than three is a decimal point (1 point). Exactly-three-
// digit trailing groups are ambiguous and score nothing. Ties, including an
// empty sample set, resolve to the dot-decimal convention.
func DetectLocale(samples []string) Locale {
	dotScore, commaScore := 0, 0
	for _, s := range samples {
		if !containsDigit(s) {
			continue
		}
		r := stripToSeparators(s)
		hasDot := strings.Contains(r, ".")
		hasComma := strings.Contains(r, ",")
		switch {
		case hasDot && hasComma:
			if strings.LastIndex(r, ".") > strings.LastIndex(r, ",") {
				dotScore += 2
			} else {
				commaScore += 2
			}
		case hasDot:
			groups := strings.Split(r, ".")
			if len(groups) >= 3 {
				commaScore += 2
			} else if len(groups) == 2 && len(groups[1]) != 3 {
				dotScore++
			}
		case hasComma:
			groups := strings.Split(r, ",")
			if len(groups) >= 3 {
				dotScore += 2
			} else if len(groups) == 2 && len(groups[1]) != 3 {
				commaScore++
			}
		}
	}
	if commaScore > dotScore {
		return LocaleCommaDecimal
	}
	return LocaleDotDecimal
}

// stripToSeparators keeps only digits, '.', ',' and '-'.
func stripToSeparators(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' || r == '.' || r == ',' || r == '-' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func containsDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}
