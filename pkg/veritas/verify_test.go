package veritas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogasimli/veritas/pkg/veritas/models"
)

// statement has column sums for 2022 and 2023; the 2023 total is overstated
// by 60.
const statement = `# Income statement

| Item     | 2022  | 2023  |
|----------|-------|-------|
| Revenue  | 1,000 | 1,100 |
| Services | 500   | 550   |
| Other    | 100   | 110   |
| Total    | 1,600 | 1,820 |
`

func anchorProposal() models.Formula {
	return models.Formula{
		Target: models.TargetCell{Table: 0, Row: 4, Col: 1},
		Text:   "sum_col(0,1,1,3)",
	}
}

func TestAuditMarkdown(t *testing.T) {
	report := AuditMarkdown([]byte(statement), []models.Formula{anchorProposal()}, DefaultOptions())

	assert.Equal(t, "dot-decimal", report.Locale)
	require.Len(t, report.Tables, 1)

	// The anchor replicated to the 2023 column.
	require.Len(t, report.Formulas, 2)
	assert.Equal(t, "sum_col(0,1,1,3)", report.Formulas[0].Text)
	assert.Equal(t, "sum_col(0,2,1,3)", report.Formulas[1].Text)
	assert.Equal(t, models.TargetCell{Table: 0, Row: 4, Col: 2}, report.Formulas[1].Target)

	// Only the overstated 2023 total is flagged.
	require.Len(t, report.Discrepancies, 1)
	d := report.Discrepancies[0]
	assert.Equal(t, models.TargetCell{Table: 0, Row: 4, Col: 2}, d.Target)
	assert.InDelta(t, 1760, d.Computed, 1e-9)
	require.NotNil(t, d.Observed)
	assert.InDelta(t, 1820, *d.Observed, 1e-9)
	assert.InDelta(t, 60, d.Delta, 1e-9)
}

func TestAuditMarkdownNoTables(t *testing.T) {
	report := AuditMarkdown([]byte("No tables here.\n"), []models.Formula{anchorProposal()}, DefaultOptions())
	assert.Empty(t, report.Tables)
	assert.Empty(t, report.Discrepancies)
	// The anchor survives even though nothing could be evaluated against it.
	require.Len(t, report.Formulas, 1)
	assert.NotEmpty(t, report.Warnings)
}

func TestAuditMarkdownReplicationDisabled(t *testing.T) {
	opts := DefaultOptions()
	off := false
	opts.Replicate = &off

	report := AuditMarkdown([]byte(statement), []models.Formula{anchorProposal()}, opts)
	require.Len(t, report.Formulas, 1)
	assert.Empty(t, report.Discrepancies)
}

func TestAuditFileMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.md")
	require.NoError(t, os.WriteFile(path, []byte(statement), 0644))

	report, err := AuditFile(path, []models.Formula{anchorProposal()}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "statement.md", report.Document)
	assert.Len(t, report.Discrepancies, 1)
}

func TestAuditFileNotFound(t *testing.T) {
	_, err := AuditFile(filepath.Join(t.TempDir(), "missing.md"), nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestAuditFileUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))

	_, err := AuditFile(path, nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	assert.Equal(t, 1.0, opts.EffectiveThreshold())
	assert.True(t, opts.ShouldReplicate())

	th := 5.0
	off := false
	opts = Options{Threshold: &th, Replicate: &off}
	assert.Equal(t, 5.0, opts.EffectiveThreshold())
	assert.False(t, opts.ShouldReplicate())
}

func TestLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("threshold: 2.5\nlocale: comma\nreplicate: false\n"), 0644))

	opts, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, 2.5, opts.EffectiveThreshold())
	assert.Equal(t, LocaleComma, opts.Locale)
	assert.False(t, opts.ShouldReplicate())
}
