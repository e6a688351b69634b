// Package main provides the CLI entry point for veritas.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ogasimli/veritas/pkg/veritas"
	"github.com/ogasimli/veritas/pkg/veritas/models"
	"github.com/ogasimli/veritas/pkg/veritas/output"
)

var (
	proposalsPath string
	configPath    string
	outputPath    string
	tablesDir     string
	pretty        bool
	findingsOnly  bool
	verbose       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "veritas [document]",
		Short: "Audit the numbers in a financial document's tables",
		Long: `veritas extracts the tables of a markdown or xlsx document, normalizes
every cell, replicates the given anchor formulas across structurally similar
rows and columns, and reports the cells whose computed value disagrees with
the value found in the document.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&proposalsPath, "proposals", "p", "", "JSON file with candidate formula proposals (required)")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file (threshold, locale, replication)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().StringVar(&tablesDir, "tables-dir", "", "Directory for per-table JSON files")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().BoolVar(&findingsOnly, "findings-only", false, "Emit only the discrepancy list")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log pipeline warnings to stderr")
	_ = rootCmd.MarkFlagRequired("proposals")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	documentPath := args[0]

	proposals, err := loadProposals(proposalsPath)
	if err != nil {
		return fmt.Errorf("loading proposals: %w", err)
	}

	opts := veritas.DefaultOptions()
	if configPath != "" {
		opts, err = veritas.LoadOptions(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer logger.Sync()
		opts.Logger = logger
	}

	report, err := veritas.AuditFile(documentPath, proposals, opts)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	var jsonData []byte
	if findingsOnly {
		jsonData, err = output.DiscrepanciesToJSON(report.Discrepancies, pretty)
	} else {
		jsonData, err = output.ReportToJSON(report, pretty)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		fmt.Println(string(jsonData))
	}

	if tablesDir != "" {
		if err := writeTableFiles(report, tablesDir); err != nil {
			return fmt.Errorf("failed to write table files: %w", err)
		}
	}

	return nil
}

// loadProposals reads the external proposer's candidate formulas: a JSON
// array of {target:{table,row,col}, formula, kind} objects.
func loadProposals(path string) ([]models.Formula, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var proposals []models.Formula
	if err := json.Unmarshal(data, &proposals); err != nil {
		return nil, err
	}
	return proposals, nil
}

func writeTableFiles(report *models.Report, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, grid := range report.Tables {
		jsonData, err := output.TableToJSON(grid, pretty)
		if err != nil {
			return err
		}
		filename := filepath.Join(dir, fmt.Sprintf("table%d.json", grid.Index))
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}
	return nil
}
