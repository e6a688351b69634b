// Package veritas audits financial-statement documents by cross-checking the
// numbers in their tables against the arithmetic relationships proposed for
// them: it extracts tables, normalizes every cell under one detected numeric
// locale, replicates anchor formulas across structurally similar rows and
// columns, and evaluates every resulting formula to surface discrepancies.
package veritas

import (
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ogasimli/veritas/pkg/veritas/audit"
	"github.com/ogasimli/veritas/pkg/veritas/parser"
)

// LocaleSetting selects the numeric separator convention.
type LocaleSetting string

const (
	// LocaleAuto detects the locale from the document (the default).
	LocaleAuto LocaleSetting = "auto"
	// LocaleDot forces the dot-decimal, comma-thousands convention.
	LocaleDot LocaleSetting = "dot"
	// LocaleComma forces the comma-decimal, dot-thousands convention.
	LocaleComma LocaleSetting = "comma"
)

// Options configures an audit run. The zero value is usable; nil pointer
// fields fall back to defaults through the accessor methods.
type Options struct {
	// Threshold is the materiality threshold for flagging a discrepancy.
	// If nil, audit.DefaultThreshold applies.
	Threshold *float64 `yaml:"threshold"`
	// Locale overrides locale detection. Empty means auto.
	Locale LocaleSetting `yaml:"locale"`
	// Replicate controls anchor replication. If nil, defaults to true.
	Replicate *bool `yaml:"replicate"`
	// Logger receives non-fatal warnings. If nil, logging is disabled.
	Logger *zap.Logger `yaml:"-"`
}

// DefaultOptions returns the default audit options.
func DefaultOptions() Options {
	return Options{Locale: LocaleAuto}
}

// LoadOptions reads Options from a YAML file.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, err
	}
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// EffectiveThreshold returns the configured threshold or the default.
func (o Options) EffectiveThreshold() float64 {
	if o.Threshold != nil && *o.Threshold > 0 {
		return *o.Threshold
	}
	return audit.DefaultThreshold
}

// ShouldReplicate returns whether anchors are replicated before evaluation.
func (o Options) ShouldReplicate() bool {
	if o.Replicate != nil {
		return *o.Replicate
	}
	return true
}

// localeOverride maps the setting onto a parser locale, nil meaning auto.
func (o Options) localeOverride() *parser.Locale {
	switch o.Locale {
	case LocaleDot:
		l := parser.LocaleDotDecimal
		return &l
	case LocaleComma:
		l := parser.LocaleCommaDecimal
		return &l
	default:
		return nil
	}
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}
