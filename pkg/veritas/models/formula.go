package models

// TargetCell addresses one cell of one table. Coordinates are 0-based and
// never validated at construction time; bounds are checked lazily at lookup.
type TargetCell struct {
	Table int `json:"table"`
	Row   int `json:"row"`
	Col   int `json:"col"`
}

// CheckKind distinguishes how a formula's result is judged.
type CheckKind string

const (
	// CheckValue compares the computed value against the value observed in
	// the target cell.
	CheckValue CheckKind = "value"
	// CheckIdentity expects the formula itself to evaluate to zero, as in
	// cross-table reconciliations expressed as a difference.
	CheckIdentity CheckKind = "identity"
)

// Formula is one candidate check: a formula string bound to the target cell
// it is meant to validate. A target may carry more than one candidate when
// several structural interpretations are valid. Formulas are immutable;
// replication only appends derived copies.
type Formula struct {
	Target  TargetCell `json:"target"`
	Text    string     `json:"formula"`
	Kind    CheckKind  `json:"kind,omitempty"`
	Derived bool       `json:"derived,omitempty"`
}

// EffectiveKind returns the check kind, defaulting to CheckValue.
func (f Formula) EffectiveKind() CheckKind {
	if f.Kind == CheckIdentity {
		return CheckIdentity
	}
	return CheckValue
}

// Key identifies a formula for deduplication.
type Key struct {
	Target TargetCell
	Text   string
}

// DedupKey returns the (target cell, formula text) identity of the formula.
func (f Formula) DedupKey() Key {
	return Key{Target: f.Target, Text: f.Text}
}

// Direction is the structural axis along which an anchor formula replicates.
// It is derived per formula from the layout of its cell references relative
// to the target cell, never stored as input.
type Direction int

const (
	// DirectionUnknown means the references fit no single axis; the anchor
	// is kept but not replicated.
	DirectionUnknown Direction = iota
	// DirectionVertical replicates across columns (references share a column).
	DirectionVertical
	// DirectionHorizontal replicates across rows (references share a row).
	DirectionHorizontal
)

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionVertical:
		return "vertical"
	case DirectionHorizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}
