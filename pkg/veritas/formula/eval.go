package formula

import (
	"math"

	"github.com/ogasimli/veritas/pkg/veritas/models"
)

// Evaluate parses text and evaluates it against grids. It is total: for any
// input string, including empty and malformed ones, it returns a finite
// float64 and never panics. Malformed input, unknown references, label cells
// and division by zero all contribute 0.0, so one bad formula can never
// abort a batch of checks.
func Evaluate(text string, grids map[int]models.Grid) float64 {
	node, err := Parse(text)
	if err != nil {
		return 0
	}
	return EvalNode(node, grids)
}

// EvalNode evaluates an already parsed formula against grids with the same
// totality guarantees as Evaluate.
func EvalNode(node Node, grids map[int]models.Grid) float64 {
	v := eval(node, grids)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func eval(node Node, grids map[int]models.Grid) float64 {
	switch n := node.(type) {
	case NumberLit:
		return n.Value
	case BinaryOp:
		left := eval(n.Left, grids)
		right := eval(n.Right, grids)
		switch n.Op {
		case '+':
			return left + right
		case '-':
			return left - right
		case '*':
			return left * right
		default:
			if right == 0 {
				return 0
			}
			return left / right
		}
	case CellRef:
		return cellValue(grids, n.Table, n.Row, n.Col)
	case SumCol:
		// Summed in index order so results are bit-identical across calls.
		total := 0.0
		for r := n.FromRow; r <= n.ToRow; r++ {
			total += cellValue(grids, n.Table, r, n.Col)
		}
		return total
	case SumRow:
		total := 0.0
		for c := n.FromCol; c <= n.ToCol; c++ {
			total += cellValue(grids, n.Table, n.Row, c)
		}
		return total
	case SumCells:
		total := 0.0
		for _, ref := range n.Refs {
			total += cellValue(grids, ref.Table, ref.Row, ref.Col)
		}
		return total
	case Builtin:
		return evalBuiltin(n, grids)
	default:
		return 0
	}
}

func evalBuiltin(n Builtin, grids map[int]models.Grid) float64 {
	switch n.Name {
	case "abs":
		return math.Abs(eval(n.Args[0], grids))
	case "round":
		return math.Round(eval(n.Args[0], grids))
	case "min":
		best := eval(n.Args[0], grids)
		for _, a := range n.Args[1:] {
			best = math.Min(best, eval(a, grids))
		}
		return best
	case "max":
		best := eval(n.Args[0], grids)
		for _, a := range n.Args[1:] {
			best = math.Max(best, eval(a, grids))
		}
		return best
	default:
		return 0
	}
}

// cellValue resolves one coordinate to a numeric value. Unknown tables,
// out-of-bounds coordinates and label cells (the empty string included) all
// resolve to 0.0; a label is never an error.
func cellValue(grids map[int]models.Grid, table, row, col int) float64 {
	g, ok := grids[table]
	if !ok {
		return 0
	}
	cell, ok := g.At(row, col)
	if !ok {
		return 0
	}
	v, _ := cell.Number()
	return v
}
