package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWellFormed(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Node
	}{
		{"number", "42", NumberLit{Value: 42}},
		{"decimal", "3.5", NumberLit{Value: 3.5}},
		{"cell", "cell(0,1,2)", CellRef{Table: 0, Row: 1, Col: 2}},
		{"sum_col", "sum_col(0,1,2,4)", SumCol{Table: 0, Col: 1, FromRow: 2, ToRow: 4}},
		{"sum_row", "sum_row(1,3,0,5)", SumRow{Table: 1, Row: 3, FromCol: 0, ToCol: 5}},
		{
			"sum_cells",
			"sum_cells((0,1,2),(3,4,5))",
			SumCells{Refs: []CellRef{{Table: 0, Row: 1, Col: 2}, {Table: 3, Row: 4, Col: 5}}},
		},
		{
			"whitespace insensitive",
			"  cell( 0 , 1 , 2 )  ",
			CellRef{Table: 0, Row: 1, Col: 2},
		},
		{
			"subtraction",
			"cell(0,2,1) - cell(2,20,1)",
			BinaryOp{Op: '-', Left: CellRef{Table: 0, Row: 2, Col: 1}, Right: CellRef{Table: 2, Row: 20, Col: 1}},
		},
		{
			"precedence",
			"1 + 2 * 3",
			BinaryOp{Op: '+', Left: NumberLit{Value: 1}, Right: BinaryOp{Op: '*', Left: NumberLit{Value: 2}, Right: NumberLit{Value: 3}}},
		},
		{
			"parentheses",
			"(1 + 2) * 3",
			BinaryOp{Op: '*', Left: BinaryOp{Op: '+', Left: NumberLit{Value: 1}, Right: NumberLit{Value: 2}}, Right: NumberLit{Value: 3}},
		},
		{
			"abs",
			"abs(cell(0,0,0))",
			Builtin{Name: "abs", Args: []Node{CellRef{}}},
		},
		{
			"min with expressions",
			"min(1, cell(0,0,0) + 2)",
			Builtin{Name: "min", Args: []Node{
				NumberLit{Value: 1},
				BinaryOp{Op: '+', Left: CellRef{}, Right: NumberLit{Value: 2}},
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, node)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"unknown function", "total(1,2)"},
		{"case sensitive names", "Cell(0,0,0)"},
		{"wrong arity cell", "cell(0,0)"},
		{"wrong arity sum_col", "sum_col(0,1,2)"},
		{"min needs two arguments", "min(1)"},
		{"unbalanced parens", "(1 + 2"},
		{"trailing input", "1 + 2 extra"},
		{"unary minus not in grammar", "-5"},
		{"fractional index", "cell(0.5,0,0)"},
		{"host state is unreachable", "__import__(1)"},
		{"bad character", "1 $ 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			assert.Error(t, err)
		})
	}
}

// Rendering a parsed tree and re-parsing the rendering yields the same tree.
func TestRenderRoundTrip(t *testing.T) {
	texts := []string{
		"cell(0,1,2)",
		"sum_col(0,1,2,4)",
		"sum_row(1,3,0,5)",
		"sum_cells((0,1,2),(3,4,5))",
		"1 + 2 * 3",
		"(1 + 2) * 3",
		"1 - (2 - 3)",
		"cell(0,2,1) - cell(2,20,1)",
		"abs(min(cell(0,0,0), 5))",
		"max(1, 2, 3) / round(7.5)",
	}
	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			node, err := Parse(text)
			require.NoError(t, err)
			rendered := Render(node)
			again, err := Parse(rendered)
			require.NoError(t, err)
			assert.Equal(t, node, again)
			// Rendering is a fixed point from the first rendering on.
			assert.Equal(t, rendered, Render(again))
		})
	}
}
