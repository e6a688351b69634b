package models

// CheckResult is the outcome of evaluating one formula against the grids.
type CheckResult struct {
	Formula Formula `json:"formula"`
	// Computed is the evaluator's result for the formula.
	Computed float64 `json:"computed"`
	// Observed is the numeric value found in the target cell. It is nil for
	// identity checks and when the target cell is out of bounds or a label,
	// so callers can distinguish "not found" from "zero".
	Observed *float64 `json:"observed,omitempty"`
	// Delta is |computed − observed| for value checks and |computed| for
	// identity checks. It is zero when Observed is absent on a value check.
	Delta float64 `json:"delta"`
	// Flagged reports whether Delta met the materiality threshold.
	Flagged bool `json:"flagged"`
}

// Discrepancy is a flagged check: a formula whose computed value disagrees
// with the document by at least the materiality threshold.
type Discrepancy struct {
	Target   TargetCell `json:"target"`
	Formula  string     `json:"formula"`
	Kind     CheckKind  `json:"kind"`
	Computed float64    `json:"computed"`
	Observed *float64   `json:"observed,omitempty"`
	Delta    float64    `json:"delta"`
}

// Report is the full result of auditing one document.
type Report struct {
	// Document is the source file name (no path), or empty for in-memory input.
	Document string `json:"document,omitempty"`
	// Locale names the numeric separator convention resolved for the document.
	Locale string `json:"locale"`
	// Tables holds the normalized grids in order of appearance.
	Tables []Grid `json:"tables,omitempty"`
	// Formulas is the replicated formula list, anchors included.
	Formulas []Formula `json:"formulas,omitempty"`
	// Checks holds one result per formula, in formula order.
	Checks []CheckResult `json:"checks,omitempty"`
	// Discrepancies is the flagged subset of Checks.
	Discrepancies []Discrepancy `json:"discrepancies,omitempty"`
	// Warnings records non-fatal degradations encountered during the run.
	Warnings []string `json:"warnings,omitempty"`
}
