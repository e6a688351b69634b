package veritas

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ogasimli/veritas/pkg/veritas/audit"
	"github.com/ogasimli/veritas/pkg/veritas/models"
	"github.com/ogasimli/veritas/pkg/veritas/parser"
	"github.com/ogasimli/veritas/pkg/veritas/replicate"
)

// AuditFile audits a document on disk. Markdown documents (.md, .markdown,
// .txt) and xlsx workbooks (.xlsx, .xlsm) are supported; the set of candidate
// formulas comes from an external proposer. Only ingestion can fail; once
// tables are in memory every later stage degrades instead of erroring.
func AuditFile(path string, proposals []models.Formula, opts Options) (*models.Report, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	var (
		raw []parser.RawTable
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".txt":
		source, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, NewStageError("extract", readErr)
		}
		raw = parser.ExtractMarkdownTables(source)
	case ".xlsx", ".xlsm":
		raw, err = parser.ExtractWorkbookTables(path)
		if err != nil {
			return nil, NewStageError("extract", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	report := auditTables(raw, proposals, opts)
	report.Document = filepath.Base(path)
	return report, nil
}

// AuditMarkdown audits an in-memory markdown document. A document with no
// tables produces a report with no tables and no checks, not an error.
func AuditMarkdown(source []byte, proposals []models.Formula, opts Options) *models.Report {
	return auditTables(parser.ExtractMarkdownTables(source), proposals, opts)
}

// auditTables runs the normalize, replicate and aggregate stages over
// already-extracted raw tables.
func auditTables(raw []parser.RawTable, proposals []models.Formula, opts Options) *models.Report {
	logger := opts.logger()

	grids, locale := parser.Normalize(raw, opts.localeOverride())
	gridMap := models.GridMap(grids)

	formulas := proposals
	if opts.ShouldReplicate() {
		formulas = replicate.ExpandAll(proposals, gridMap, logger)
	}

	checks, discrepancies := audit.Run(formulas, gridMap, opts.EffectiveThreshold(), logger)

	report := &models.Report{
		Locale:        locale.String(),
		Tables:        grids,
		Formulas:      formulas,
		Checks:        checks,
		Discrepancies: discrepancies,
	}
	for _, c := range checks {
		if c.Observed == nil && c.Formula.EffectiveKind() == models.CheckValue {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("no observed value at table %d row %d col %d for %q",
					c.Formula.Target.Table, c.Formula.Target.Row, c.Formula.Target.Col, c.Formula.Text))
		}
	}
	return report
}
