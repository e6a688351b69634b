package parser

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/ogasimli/veritas/pkg/veritas/models"
)

// currencySymbols is the small fixed set stripped during numeric parsing.
var currencySymbols = []string{"$", "€", "£", "¥", "₹", "US$", "C$", "A$"}

// RawTable is one extracted table before normalization: rectangular rows of
// raw cell strings.
type RawTable struct {
	Rows [][]string
}

// Normalize converts raw tables into grids of typed cells, resolving one
// numeric locale for the whole document. A non-nil override skips detection.
// The returned grids carry 0-based table indices in order of appearance.
func Normalize(tables []RawTable, override *Locale) ([]models.Grid, Locale) {
	loc := LocaleDotDecimal
	if override != nil {
		loc = *override
	} else {
		var samples []string
		for _, t := range tables {
			for _, row := range t.Rows {
				for _, raw := range row {
					if containsDigit(raw) {
						samples = append(samples, raw)
					}
				}
			}
		}
		loc = DetectLocale(samples)
	}

	grids := make([]models.Grid, 0, len(tables))
	for i, t := range tables {
		rows := make([][]models.Cell, len(t.Rows))
		for r, rawRow := range t.Rows {
			cells := make([]models.Cell, len(rawRow))
			for c, raw := range rawRow {
				cells[c] = ParseCell(raw, loc)
			}
			rows[r] = cells
		}
		grids = append(grids, models.Grid{Index: i, Rows: rows})
	}
	return grids, loc
}

// ParseCell converts one raw cell string into a Cell under the resolved
// locale. Parsing is deterministic and idempotent for a given locale; any
// string the rules cannot read as a numeral becomes a Label holding the
// whitespace-normalized original text, never an error.
//
// The order of the steps is load-bearing. A trailing percent sign is only
// recognized before parentheses are stripped, so "(50%)" stays a Label: its
// outermost character is ')', not '%'. Real documents do not combine the
// two markers.
func ParseCell(raw string, loc Locale) models.Cell {
	trimmed := collapseWhitespace(raw)
	s := strings.Trim(trimmed, "*_")
	s = strings.TrimSpace(s)
	if !containsDigit(s) {
		return models.LabelCell(trimmed)
	}

	percent := false
	if strings.HasSuffix(s, "%") {
		percent = true
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	}
	s = stripCurrency(s)

	negative := false
	if len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
		s = stripCurrency(s)
	}

	if !containsDigit(s) {
		return models.LabelCell(trimmed)
	}

	s = strings.ReplaceAll(s, loc.thousandsSep(), "")
	s = strings.ReplaceAll(s, loc.decimalSep(), ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return models.LabelCell(trimmed)
	}
	if negative {
		v = -v
	}
	if percent {
		v /= 100
	}
	return models.NumberCell(v)
}

// collapseWhitespace trims the string and folds internal whitespace runs,
// non-breaking space included, into single spaces.
func collapseWhitespace(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}

func stripCurrency(s string) string {
	for _, sym := range currencySymbols {
		if strings.HasPrefix(s, sym) {
			s = strings.TrimSpace(strings.TrimPrefix(s, sym))
			break
		}
	}
	for _, sym := range currencySymbols {
		if strings.HasSuffix(s, sym) {
			s = strings.TrimSpace(strings.TrimSuffix(s, sym))
			break
		}
	}
	return s
}
