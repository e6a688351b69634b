package parser

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// ExtractMarkdownTables parses pipe tables out of a markdown document and
// returns them as raw string grids in order of appearance. Non-table content
// is ignored. Header-only tables are dropped rather than emitted empty; two
// tables separated only by blank lines stay distinct. A document with no
// tables yields an empty slice, not an error.
func ExtractMarkdownTables(source []byte) []RawTable {
	doc := markdown.Parser().Parse(text.NewReader(source))

	var tables []RawTable
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		tbl, ok := n.(*east.Table)
		if !ok {
			return ast.WalkContinue, nil
		}
		rows := tableRows(tbl, source)
		// Row 0 is the header; a table needs at least one data row.
		if len(rows) >= 2 {
			tables = append(tables, RawTable{Rows: padRectangular(rows)})
		}
		return ast.WalkSkipChildren, nil
	})
	return tables
}

func tableRows(tbl *east.Table, source []byte) [][]string {
	var rows [][]string
	for row := tbl.FirstChild(); row != nil; row = row.NextSibling() {
		switch row.(type) {
		case *east.TableHeader, *east.TableRow:
		default:
			continue
		}
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, cellText(cell, source))
		}
		rows = append(rows, cells)
	}
	return rows
}

// cellText recovers the raw source text of a table cell, markup included, so
// the normalizer sees emphasis markers and can strip them itself.
func cellText(n ast.Node, source []byte) string {
	if lines := n.Lines(); lines != nil && lines.Len() > 0 {
		var sb strings.Builder
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			sb.Write(seg.Value(source))
		}
		return strings.TrimSpace(sb.String())
	}
	// Fallback for cells whose raw segments were consumed by inline parsing.
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

// padRectangular pads ragged rows with empty cells to the widest row so
// column extent is well defined for replication.
func padRectangular(rows [][]string) [][]string {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	for i, r := range rows {
		for len(r) < width {
			r = append(r, "")
		}
		rows[i] = r
	}
	return rows
}
