package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLocale(t *testing.T) {
	tests := []struct {
		name    string
		samples []string
		want    Locale
	}{
		{"both separators, dot last", []string{"1,234.56", "2,000.00"}, LocaleDotDecimal},
		{"both separators, comma last", []string{"1.234,56", "2.000,00"}, LocaleCommaDecimal},
		{"lone dot three groups is thousands", []string{"1.234.567"}, LocaleCommaDecimal},
		{"lone comma three groups is thousands", []string{"1,234,567"}, LocaleDotDecimal},
		{"lone dot short trailing group is decimal", []string{"12.5"}, LocaleDotDecimal},
		{"lone comma short trailing group is decimal", []string{"12,5"}, LocaleCommaDecimal},
		{"exactly three trailing digits is ambiguous", []string{"1.234"}, LocaleDotDecimal},
		{"no samples resolves to dot decimal", nil, LocaleDotDecimal},
		{"no digits resolves to dot decimal", []string{"total", "---"}, LocaleDotDecimal},
		{"majority wins", []string{"1.234,56", "2.000,00", "3.5"}, LocaleCommaDecimal},
		{"symbols are ignored", []string{"$1,234.56"}, LocaleDotDecimal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLocale(tt.samples))
		})
	}
}

func TestLocaleString(t *testing.T) {
	assert.Equal(t, "dot-decimal", LocaleDotDecimal.String())
	assert.Equal(t, "comma-decimal", LocaleCommaDecimal.String())
}
