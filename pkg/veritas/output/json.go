// Package output serializes audit reports to JSON.
package output

import (
	"encoding/json"

	"github.com/ogasimli/veritas/pkg/veritas/models"
)

// ReportToJSON serializes a full report, optionally pretty-printed.
func ReportToJSON(report *models.Report, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}

// TableToJSON serializes one normalized grid.
func TableToJSON(grid models.Grid, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(grid, "", "  ")
	}
	return json.Marshal(grid)
}

// DiscrepanciesToJSON serializes the flagged checks alone, for consumers
// that only want the findings.
func DiscrepanciesToJSON(discrepancies []models.Discrepancy, pretty bool) ([]byte, error) {
	if discrepancies == nil {
		discrepancies = []models.Discrepancy{}
	}
	if pretty {
		return json.MarshalIndent(discrepancies, "", "  ")
	}
	return json.Marshal(discrepancies)
}
