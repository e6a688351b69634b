package parser

import (
	"github.com/xuri/excelize/v2"
)

// ExtractWorkbookTables reads an xlsx workbook and returns one raw grid per
// sheet that holds tabular data, in workbook sheet order. Each grid is the
// sheet's non-empty bounding region, trimmed of fully empty border rows and
// columns and padded rectangular. Sheets that are empty, unreadable, or hold
// a header row only are dropped, matching the header-only rule for markdown
// tables.
func ExtractWorkbookTables(path string) ([]RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tables []RawTable
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			// A broken sheet degrades to no table, never a failed document.
			continue
		}
		region := dataRegion(rows)
		if len(region) >= 2 {
			tables = append(tables, RawTable{Rows: padRectangular(region)})
		}
	}
	return tables, nil
}

// dataRegion trims rows to the bounding box of non-empty cells.
func dataRegion(rows [][]string) [][]string {
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return nil
	}
	region := make([][]string, 0, maxRow-minRow+1)
	for r := minRow; r <= maxRow; r++ {
		row := rows[r]
		cells := make([]string, 0, maxCol-minCol+1)
		for c := minCol; c <= maxCol; c++ {
			if c < len(row) {
				cells = append(cells, row[c])
			} else {
				cells = append(cells, "")
			}
		}
		region = append(region, cells)
	}
	return region
}

// findDataBounds finds the bounding box of non-empty cells. It returns -1
// for every bound when the sheet has no data.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1
	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}
	return minRow, maxRow, minCol, maxCol
}
