// Package formula implements the formula mini-language used to express
// arithmetic checks over normalized table grids: a parser producing a small
// closed AST, a deterministic renderer, and a sandboxed total evaluator.
//
// The language consists of ordinary arithmetic over four reference
// constructors (cell, sum_col, sum_row, sum_cells) and four pure helpers
// (abs, min, max, round). There is no path from a formula to host state.
package formula

import (
	"strconv"
	"strings"
)

// Node is one node of the formula AST. The set of implementations is closed:
// NumberLit, BinaryOp, CellRef, SumCol, SumRow, SumCells and Builtin.
type Node interface {
	isNode()
}

// NumberLit is a non-negative numeric literal.
type NumberLit struct {
	Value float64
}

// BinaryOp applies one of '+', '-', '*', '/' to two operands.
type BinaryOp struct {
	Op    byte
	Left  Node
	Right Node
}

// CellRef references a single cell as (table, row, col).
type CellRef struct {
	Table int
	Row   int
	Col   int
}

// SumCol sums an inclusive row range of one column: sum_col(t, col, r1, r2).
type SumCol struct {
	Table   int
	Col     int
	FromRow int
	ToRow   int
}

// SumRow sums an inclusive column range of one row: sum_row(t, row, c1, c2).
type SumRow struct {
	Table   int
	Row     int
	FromCol int
	ToCol   int
}

// SumCells sums an explicit, possibly cross-table list of cell references.
type SumCells struct {
	Refs []CellRef
}

// Builtin applies one of the allow-listed helpers: abs, min, max, round.
type Builtin struct {
	Name string
	Args []Node
}

func (NumberLit) isNode() {}
func (BinaryOp) isNode()  {}
func (CellRef) isNode()   {}
func (SumCol) isNode()    {}
func (SumRow) isNode()    {}
func (SumCells) isNode()  {}
func (Builtin) isNode()   {}

// Render produces the canonical text of a node. Rendering then re-parsing
// yields a structurally identical tree, so derived formulas evaluate exactly
// like the trees they were rendered from.
func Render(n Node) string {
	var sb strings.Builder
	render(&sb, n, 0, false)
	return sb.String()
}

func precedence(n Node) int {
	b, ok := n.(BinaryOp)
	if !ok {
		return 3
	}
	if b.Op == '*' || b.Op == '/' {
		return 2
	}
	return 1
}

func render(sb *strings.Builder, n Node, contextPrec int, rightOperand bool) {
	switch v := n.(type) {
	case NumberLit:
		sb.WriteString(strconv.FormatFloat(v.Value, 'f', -1, 64))
	case BinaryOp:
		p := precedence(v)
		paren := p < contextPrec || (p == contextPrec && rightOperand)
		if paren {
			sb.WriteByte('(')
		}
		render(sb, v.Left, p, false)
		sb.WriteByte(' ')
		sb.WriteByte(v.Op)
		sb.WriteByte(' ')
		render(sb, v.Right, p, true)
		if paren {
			sb.WriteByte(')')
		}
	case CellRef:
		sb.WriteString("cell(")
		writeInts(sb, v.Table, v.Row, v.Col)
		sb.WriteByte(')')
	case SumCol:
		sb.WriteString("sum_col(")
		writeInts(sb, v.Table, v.Col, v.FromRow, v.ToRow)
		sb.WriteByte(')')
	case SumRow:
		sb.WriteString("sum_row(")
		writeInts(sb, v.Table, v.Row, v.FromCol, v.ToCol)
		sb.WriteByte(')')
	case SumCells:
		sb.WriteString("sum_cells(")
		for i, r := range v.Refs {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte('(')
			writeInts(sb, r.Table, r.Row, r.Col)
			sb.WriteByte(')')
		}
		sb.WriteByte(')')
	case Builtin:
		sb.WriteString(v.Name)
		sb.WriteByte('(')
		for i, a := range v.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			render(sb, a, 0, false)
		}
		sb.WriteByte(')')
	}
}

func writeInts(sb *strings.Builder, vals ...int) {
	for i, v := range vals {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
}
