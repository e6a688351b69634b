// Package replicate expands anchor formulas across structurally similar
// rows and columns of a grid. It is a pure function of its inputs: no state
// survives between calls.
package replicate

import (
	"go.uber.org/zap"

	"github.com/ogasimli/veritas/pkg/veritas/formula"
	"github.com/ogasimli/veritas/pkg/veritas/models"
)

// Direction derives the structural axis of a parsed anchor formula from the
// layout of its cell references relative to the target cell.
//
// With two or more references: all in one column means vertical, all in one
// row means horizontal, anything else is unknown. With a single reference, a
// same-column relation to the target replicates across columns (vertical)
// and a same-row relation across rows (horizontal).
func Direction(node formula.Node, target models.TargetCell) models.Direction {
	refs := formula.References(node)
	switch {
	case len(refs) == 0:
		return models.DirectionUnknown
	case len(refs) == 1:
		if refs[0].Col == target.Col {
			return models.DirectionVertical
		}
		if refs[0].Row == target.Row {
			return models.DirectionHorizontal
		}
		return models.DirectionUnknown
	}
	sameCol, sameRow := true, true
	first := refs[0]
	for _, r := range refs[1:] {
		if r.Col != first.Col {
			sameCol = false
		}
		if r.Row != first.Row {
			sameRow = false
		}
	}
	if sameCol {
		return models.DirectionVertical
	}
	if sameRow {
		return models.DirectionHorizontal
	}
	return models.DirectionUnknown
}

// Expand returns the anchor plus every derived formula for rows or columns
// structurally similar to the anchor's target, deduplicated by (target cell,
// formula text). The anchor itself is always first in the result, even when
// it cannot be parsed or replicated; such skips are logged as warnings,
// never surfaced as errors.
func Expand(anchor models.Formula, grids map[int]models.Grid, logger *zap.Logger) []models.Formula {
	if logger == nil {
		logger = zap.NewNop()
	}
	out := []models.Formula{anchor}
	seen := map[models.Key]struct{}{anchor.DedupKey(): {}}

	node, err := formula.Parse(anchor.Text)
	if err != nil {
		logger.Warn("anchor formula does not parse; replication skipped",
			zap.String("formula", anchor.Text),
			zap.Error(err))
		return out
	}
	dir := Direction(node, anchor.Target)
	if dir == models.DirectionUnknown {
		logger.Warn("replication direction unknown; anchor kept without replication",
			zap.String("formula", anchor.Text),
			zap.Int("table", anchor.Target.Table),
			zap.Int("row", anchor.Target.Row),
			zap.Int("col", anchor.Target.Col))
		return out
	}
	grid, ok := grids[anchor.Target.Table]
	if !ok {
		logger.Warn("anchor references unknown table; replication skipped",
			zap.String("formula", anchor.Text),
			zap.Int("table", anchor.Target.Table))
		return out
	}

	anchorPos, extent := anchor.Target.Col, grid.ColCount()
	if dir == models.DirectionHorizontal {
		anchorPos, extent = anchor.Target.Row, grid.RowCount()
	}
	// Walk strictly past the anchor's own axis position.
	for pos := anchorPos + 1; pos < extent; pos++ {
		offset := pos - anchorPos
		shifted := formula.Shift(node, dir, offset)
		if !formula.HasNumericReference(shifted, grids) {
			continue
		}
		target := anchor.Target
		if dir == models.DirectionVertical {
			target.Col = pos
		} else {
			target.Row = pos
		}
		derived := models.Formula{
			Target:  target,
			Text:    formula.Render(shifted),
			Kind:    anchor.Kind,
			Derived: true,
		}
		key := derived.DedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, derived)
	}
	return out
}

// ExpandAll replicates every anchor and merges the results, deduplicating
// across anchors by (target cell, formula text). Anchors are processed in
// input order so the output order is deterministic.
func ExpandAll(anchors []models.Formula, grids map[int]models.Grid, logger *zap.Logger) []models.Formula {
	var out []models.Formula
	seen := make(map[models.Key]struct{})
	for _, anchor := range anchors {
		for _, f := range Expand(anchor, grids, logger) {
			key := f.DedupKey()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, f)
		}
	}
	return out
}
