package formula

import "github.com/ogasimli/veritas/pkg/veritas/models"

// References collects every cell reference a formula contains, with ranges
// represented by their inclusive endpoints. Endpoints are enough for
// structural-axis detection: every cell of a sum_col range shares the range's
// column, and every cell of a sum_row range shares its row.
func References(node Node) []CellRef {
	var refs []CellRef
	walkRefs(node, false, &refs)
	return refs
}

// MaterializedReferences collects every individual cell a formula reads,
// ranges fully expanded, in index order.
func MaterializedReferences(node Node) []CellRef {
	var refs []CellRef
	walkRefs(node, true, &refs)
	return refs
}

func walkRefs(node Node, expand bool, refs *[]CellRef) {
	switch n := node.(type) {
	case BinaryOp:
		walkRefs(n.Left, expand, refs)
		walkRefs(n.Right, expand, refs)
	case CellRef:
		*refs = append(*refs, n)
	case SumCol:
		if expand {
			for r := n.FromRow; r <= n.ToRow; r++ {
				*refs = append(*refs, CellRef{Table: n.Table, Row: r, Col: n.Col})
			}
		} else {
			*refs = append(*refs,
				CellRef{Table: n.Table, Row: n.FromRow, Col: n.Col},
				CellRef{Table: n.Table, Row: n.ToRow, Col: n.Col})
		}
	case SumRow:
		if expand {
			for c := n.FromCol; c <= n.ToCol; c++ {
				*refs = append(*refs, CellRef{Table: n.Table, Row: n.Row, Col: c})
			}
		} else {
			*refs = append(*refs,
				CellRef{Table: n.Table, Row: n.Row, Col: n.FromCol},
				CellRef{Table: n.Table, Row: n.Row, Col: n.ToCol})
		}
	case SumCells:
		*refs = append(*refs, n.Refs...)
	case Builtin:
		for _, a := range n.Args {
			walkRefs(a, expand, refs)
		}
	}
}

// Shift returns a copy of the formula with every index on the replication
// axis moved by offset: column indices for a vertical axis, row indices for
// a horizontal one. All other indices, literals and operators are untouched.
// An unknown direction returns the node unchanged.
func Shift(node Node, dir models.Direction, offset int) Node {
	switch n := node.(type) {
	case BinaryOp:
		return BinaryOp{Op: n.Op, Left: Shift(n.Left, dir, offset), Right: Shift(n.Right, dir, offset)}
	case CellRef:
		return shiftRef(n, dir, offset)
	case SumCol:
		if dir == models.DirectionVertical {
			n.Col += offset
		} else if dir == models.DirectionHorizontal {
			n.FromRow += offset
			n.ToRow += offset
		}
		return n
	case SumRow:
		if dir == models.DirectionVertical {
			n.FromCol += offset
			n.ToCol += offset
		} else if dir == models.DirectionHorizontal {
			n.Row += offset
		}
		return n
	case SumCells:
		refs := make([]CellRef, len(n.Refs))
		for i, r := range n.Refs {
			refs[i] = shiftRef(r, dir, offset)
		}
		return SumCells{Refs: refs}
	case Builtin:
		args := make([]Node, len(n.Args))
		for i, a := range n.Args {
			args[i] = Shift(a, dir, offset)
		}
		return Builtin{Name: n.Name, Args: args}
	default:
		return node
	}
}

func shiftRef(r CellRef, dir models.Direction, offset int) CellRef {
	switch dir {
	case models.DirectionVertical:
		r.Col += offset
	case models.DirectionHorizontal:
		r.Row += offset
	}
	return r
}

// HasNumericReference reports whether at least one cell referenced by the
// formula resolves to a Number in grids. Replication uses it to reject
// candidate positions whose referenced range is purely labels.
func HasNumericReference(node Node, grids map[int]models.Grid) bool {
	for _, ref := range MaterializedReferences(node) {
		g, ok := grids[ref.Table]
		if !ok {
			continue
		}
		cell, ok := g.At(ref.Row, ref.Col)
		if ok && cell.IsNumber() {
			return true
		}
	}
	return false
}
