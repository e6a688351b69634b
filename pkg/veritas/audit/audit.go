// Package audit evaluates replicated formulas against normalized grids and
// collects the checks whose computed value disagrees with the document.
package audit

import (
	"math"

	"go.uber.org/zap"

	"github.com/ogasimli/veritas/pkg/veritas/formula"
	"github.com/ogasimli/veritas/pkg/veritas/models"
)

// DefaultThreshold is the materiality threshold: a check is flagged when its
// delta is at least this value. It is configuration, not engine structure.
const DefaultThreshold = 1.0

// Run evaluates every formula against grids and returns one CheckResult per
// formula plus the flagged subset as discrepancies.
//
// Value checks read the observed value from the formula's target cell; a
// target that is out of bounds or a label is logged and recorded with an
// absent observed value so callers can tell "not found" from "zero", and is
// never flagged. Identity checks expect the formula itself to evaluate to
// zero and carry no observed value.
func Run(formulas []models.Formula, grids map[int]models.Grid, threshold float64, logger *zap.Logger) ([]models.CheckResult, []models.Discrepancy) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	checks := make([]models.CheckResult, 0, len(formulas))
	var discrepancies []models.Discrepancy
	for _, f := range formulas {
		computed := formula.Evaluate(f.Text, grids)
		result := models.CheckResult{Formula: f, Computed: computed}

		switch f.EffectiveKind() {
		case models.CheckIdentity:
			result.Delta = math.Abs(computed)
			result.Flagged = result.Delta >= threshold
		default:
			observed, ok := observedValue(grids, f.Target)
			if !ok {
				logger.Warn("observed value not found for target cell",
					zap.String("formula", f.Text),
					zap.Int("table", f.Target.Table),
					zap.Int("row", f.Target.Row),
					zap.Int("col", f.Target.Col))
				checks = append(checks, result)
				continue
			}
			result.Observed = &observed
			result.Delta = math.Abs(computed - observed)
			result.Flagged = result.Delta >= threshold
		}

		checks = append(checks, result)
		if result.Flagged {
			discrepancies = append(discrepancies, models.Discrepancy{
				Target:   f.Target,
				Formula:  f.Text,
				Kind:     f.EffectiveKind(),
				Computed: computed,
				Observed: result.Observed,
				Delta:    result.Delta,
			})
		}
	}
	return checks, discrepancies
}

// observedValue looks up the numeric value at target. The boolean is false
// when the table is unknown, the coordinate is out of bounds, or the cell is
// a label; absence is distinct from zero.
func observedValue(grids map[int]models.Grid, target models.TargetCell) (float64, bool) {
	g, ok := grids[target.Table]
	if !ok {
		return 0, false
	}
	cell, ok := g.At(target.Row, target.Col)
	if !ok {
		return 0, false
	}
	return cell.Number()
}
