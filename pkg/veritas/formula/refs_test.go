package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogasimli/veritas/pkg/veritas/models"
)

func mustParse(t *testing.T, text string) Node {
	t.Helper()
	node, err := Parse(text)
	require.NoError(t, err)
	return node
}

func TestReferencesEndpoints(t *testing.T) {
	node := mustParse(t, "sum_col(0,1,2,4) + cell(3,5,6)")
	assert.Equal(t, []CellRef{
		{Table: 0, Row: 2, Col: 1},
		{Table: 0, Row: 4, Col: 1},
		{Table: 3, Row: 5, Col: 6},
	}, References(node))
}

func TestMaterializedReferencesExpandRanges(t *testing.T) {
	node := mustParse(t, "sum_row(1,2,0,2)")
	assert.Equal(t, []CellRef{
		{Table: 1, Row: 2, Col: 0},
		{Table: 1, Row: 2, Col: 1},
		{Table: 1, Row: 2, Col: 2},
	}, MaterializedReferences(node))
}

func TestShiftVertical(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"sum_col(0,1,2,4)", "sum_col(0,3,2,4)"},
		{"cell(0,1,2) + cell(0,5,2)", "cell(0,1,4) + cell(0,5,4)"},
		{"sum_cells((0,1,2),(1,9,2))", "sum_cells((0,1,4),(1,9,4))"},
		{"abs(cell(0,7,0))", "abs(cell(0,7,2))"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			shifted := Shift(mustParse(t, tt.text), models.DirectionVertical, 2)
			assert.Equal(t, tt.want, Render(shifted))
		})
	}
}

func TestShiftHorizontal(t *testing.T) {
	shifted := Shift(mustParse(t, "sum_row(0,3,1,5)"), models.DirectionHorizontal, 1)
	assert.Equal(t, "sum_row(0,4,1,5)", Render(shifted))

	shifted = Shift(mustParse(t, "cell(0,3,1) - cell(0,3,5)"), models.DirectionHorizontal, 3)
	assert.Equal(t, "cell(0,6,1) - cell(0,6,5)", Render(shifted))
}

func TestShiftUnknownDirectionIsIdentity(t *testing.T) {
	node := mustParse(t, "sum_col(0,1,2,4)")
	assert.Equal(t, node, Shift(node, models.DirectionUnknown, 5))
}

func TestHasNumericReference(t *testing.T) {
	grids := models.GridMap([]models.Grid{
		grid(0,
			row(lbl("Item"), lbl("Q1"), lbl("Note")),
			row(lbl("Revenue"), num(1000), lbl("n/a")),
			row(lbl("Cost"), num(250), lbl("n/a")),
		),
	})
	assert.True(t, HasNumericReference(mustParse(t, "sum_col(0,1,1,2)"), grids))
	assert.False(t, HasNumericReference(mustParse(t, "sum_col(0,2,1,2)"), grids))
	assert.False(t, HasNumericReference(mustParse(t, "sum_col(0,1,99,100)"), grids))
	assert.False(t, HasNumericReference(mustParse(t, "cell(9,0,0)"), grids))
	assert.False(t, HasNumericReference(mustParse(t, "1 + 2"), grids))
}
