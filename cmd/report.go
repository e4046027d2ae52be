package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kjourdan1/egressctl/internal/assess"
	"github.com/kjourdan1/egressctl/internal/exitcode"
	"github.com/kjourdan1/egressctl/internal/output"
)

var reportCmd = &cobra.Command{
	Use:   "report <export.json>",
	Short: "Re-render reports from a previous JSON export",
	Long: `Reads a JSON export produced by a previous scan and re-renders it
without touching Azure. By default the terminal summary is printed;
--html and --csv write report files from the same data.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

var (
	reportHTML     string
	reportCSV      string
	reportTemplate string
)

func init() {
	reportCmd.Flags().StringVar(&reportHTML, "html", "", "write an HTML report to this path")
	reportCmd.Flags().StringVar(&reportCSV, "csv", "", "write a CSV export to this path")
	reportCmd.Flags().StringVar(&reportTemplate, "template", "", "custom HTML report template path")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	output.Init(verbosity > 0, jsonOutput)

	data, err := os.ReadFile(args[0])
	if err != nil {
		return exitcode.Wrap(exitcode.Validation, fmt.Errorf("reading export: %w", err))
	}

	export, err := assess.ParseExport(data)
	if err != nil {
		return exitcode.Wrap(exitcode.Validation, fmt.Errorf("parsing export %s: %w", args[0], err))
	}
	if export.Assessment == nil {
		return exitcode.Wrap(exitcode.Validation, fmt.Errorf("export %s holds no assessment", args[0]))
	}
	a := export.Assessment
	toolVersion := export.Metadata.ToolVersion
	if toolVersion == "" {
		toolVersion = Version
	}

	if reportHTML != "" {
		// Render into memory first; a bad template must not leave a
		// truncated report file behind.
		var buf bytes.Buffer
		if reportTemplate != "" {
			text, err := os.ReadFile(reportTemplate)
			if err != nil {
				return exitcode.Wrap(exitcode.Validation,
					fmt.Errorf("reading custom report template %s: %w", reportTemplate, err))
			}
			if err := assess.RenderHTMLTemplate(&buf, a, toolVersion, string(text)); err != nil {
				return exitcode.Wrap(exitcode.Validation, err)
			}
		} else if err := assess.RenderHTML(&buf, a, toolVersion); err != nil {
			return err
		}
		if err := os.WriteFile(reportHTML, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("writing HTML report: %w", err)
		}
		output.Info("HTML report written", "path", reportHTML)
	}

	if reportCSV != "" {
		if err := writeCSVReport(a, reportCSV); err != nil {
			return fmt.Errorf("writing CSV export: %w", err)
		}
		output.Info("CSV export written", "path", reportCSV)
	}

	if jsonOutput {
		output.JSON(export)
		return nil
	}
	if reportHTML == "" && reportCSV == "" {
		assess.RenderTerminal(cmd.OutOrStdout(), a)
	}
	return nil
}
