package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kjourdan1/egressctl/internal/assess"
	"github.com/kjourdan1/egressctl/internal/azauth"
	"github.com/kjourdan1/egressctl/internal/azure"
	"github.com/kjourdan1/egressctl/internal/config"
	"github.com/kjourdan1/egressctl/internal/exitcode"
	"github.com/kjourdan1/egressctl/internal/output"
	"github.com/kjourdan1/egressctl/internal/wizard"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Assess default outbound access across subscriptions",
	Long: `Walks every visible subscription (or the ones selected with
--subscription), classifies each subnet's egress posture, and writes an
HTML report plus optional JSON/CSV exports.

The scan is read-only: it needs only Reader on the assessed subscriptions.
A scan that completes exits 0 even when individual subscriptions could not
be enumerated; those are reported as warnings.`,
	RunE: runScan,
}

var (
	scanTenant      string
	scanInteractive bool
	scanConcurrency int
	scanTemplate    string
	exportJSON      bool
	exportCSV       bool
	skipHTML        bool
)

func init() {
	scanCmd.Flags().StringVar(&scanTenant, "tenant", "", "Azure AD tenant ID hint for authentication")
	scanCmd.Flags().BoolVarP(&scanInteractive, "interactive", "i", false, "pick subscriptions from a checklist")
	scanCmd.Flags().IntVar(&scanConcurrency, "concurrency", 0, "parallel subscription walks (default 5)")
	scanCmd.Flags().StringVar(&scanTemplate, "template", "", "custom HTML report template path")
	scanCmd.Flags().BoolVar(&exportJSON, "export-json", false, "also write a JSON export")
	scanCmd.Flags().BoolVar(&exportCSV, "export-csv", false, "also write a per-subnet CSV export")
	scanCmd.Flags().BoolVar(&skipHTML, "no-html", false, "skip the HTML report")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	_ = args
	output.Init(verbosity > 0, jsonOutput)
	azauth.SetLogf(func(format string, a ...interface{}) {
		output.Debug(fmt.Sprintf(format, a...))
	})

	cfg, err := loadConfig()
	if err != nil {
		return exitcode.Wrap(exitcode.Validation, err)
	}
	applyScanOverrides(cfg)

	ctx := cmd.Context()

	output.Step("Authenticating to Azure")
	cred, err := azauth.Resolve(ctx, azauth.Options{TenantID: scanTenant, Verbose: verbosity > 0})
	if err != nil {
		return exitcode.Wrap(exitcode.Auth, err)
	}
	output.Debug("credential resolved", "method", cred.Method)

	api := azure.NewClients(cred.TokenCredential, nil)

	if scanInteractive {
		subs, err := api.ListSubscriptions(ctx)
		if err != nil {
			return exitcode.Wrap(exitcode.Azure, err)
		}
		picked, err := wizard.PickSubscriptions(wizard.NewSurveyPrompter(), subs, cfg.Scan.Subscriptions)
		if err != nil {
			return err
		}
		cfg.Scan.Subscriptions = picked
	}

	output.Step("Walking virtual networks")
	progress := output.NewProgress("Assessing virtual networks")
	walker := azure.NewWalker(api, azure.Options{
		Subscriptions: cfg.Scan.Subscriptions,
		Concurrency:   cfg.Scan.Concurrency,
		Progress:      progress,
		Retry:         azure.RetryConfig{MaxAttempts: cfg.Scan.MaxRetries},
	})

	a, err := walker.Walk(ctx)
	progress.Done()
	if err != nil {
		return exitcode.Wrap(exitcode.Azure, err)
	}

	if jsonOutput {
		output.JSON(assess.NewExport(a, Version))
	} else {
		assess.RenderTerminal(os.Stdout, a)
	}

	if err := writeReports(cfg, a); err != nil {
		return err
	}

	output.Success("Assessment complete")
	return nil
}

// applyScanOverrides layers scan-specific flags over the config.
func applyScanOverrides(cfg *config.Config) {
	if scanTenant == "" {
		scanTenant = cfg.Scan.TenantID
	}
	if scanConcurrency > 0 {
		cfg.Scan.Concurrency = scanConcurrency
	}
	if scanTemplate != "" {
		cfg.Output.ReportTemplate = scanTemplate
	}
	if exportJSON && !cfg.Output.WantsFormat("json") {
		cfg.Output.Formats = append(cfg.Output.Formats, "json")
	}
	if exportCSV && !cfg.Output.WantsFormat("csv") {
		cfg.Output.Formats = append(cfg.Output.Formats, "csv")
	}
	if skipHTML {
		formats := cfg.Output.Formats[:0]
		for _, f := range cfg.Output.Formats {
			if f != "html" {
				formats = append(formats, f)
			}
		}
		cfg.Output.Formats = formats
	}
}

// writeReports renders the enabled report formats into the output directory.
// A missing custom template is a hard error; individual write failures are
// warnings so a finished scan still reaches the terminal summary.
func writeReports(cfg *config.Config, a *assess.Assessment) error {
	if len(cfg.Output.Formats) == 0 {
		return nil
	}
	if err := os.MkdirAll(cfg.Output.Directory, 0o755); err != nil {
		output.Warn("creating output directory", "error", err)
		return nil
	}

	base := filepath.Join(cfg.Output.Directory, "egress-assessment-"+a.GeneratedAt.Format("20060102-150405"))

	if cfg.Output.WantsFormat("html") {
		if err := writeHTMLReport(cfg, a, base+".html"); err != nil {
			return err
		}
	}

	if cfg.Output.WantsFormat("json") {
		data, err := assess.RenderJSON(a, Version)
		if err != nil {
			output.Warn("rendering JSON export", "error", err)
		} else if err := os.WriteFile(base+".json", data, 0o644); err != nil {
			output.Warn("writing JSON export", "error", err)
		} else {
			output.Info("JSON export written", "path", base+".json")
		}
	}

	if cfg.Output.WantsFormat("csv") {
		if err := writeCSVReport(a, base+".csv"); err != nil {
			output.Warn("writing CSV export", "error", err)
		} else {
			output.Info("CSV export written", "path", base+".csv")
		}
	}

	return nil
}

// writeHTMLReport renders into memory first so a bad custom template never
// leaves a truncated report file behind.
func writeHTMLReport(cfg *config.Config, a *assess.Assessment, path string) error {
	var buf bytes.Buffer
	if cfg.Output.ReportTemplate != "" {
		text, err := os.ReadFile(cfg.Output.ReportTemplate)
		if err != nil {
			return exitcode.Wrap(exitcode.Validation,
				fmt.Errorf("reading custom report template %s: %w", cfg.Output.ReportTemplate, err))
		}
		if err := assess.RenderHTMLTemplate(&buf, a, Version, string(text)); err != nil {
			return exitcode.Wrap(exitcode.Validation, err)
		}
	} else if err := assess.RenderHTML(&buf, a, Version); err != nil {
		output.Warn("rendering HTML report", "error", err)
		return nil
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		output.Warn("writing HTML report", "error", err)
		return nil
	}

	output.Info("HTML report written", "path", path)
	return nil
}

func writeCSVReport(a *assess.Assessment, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return assess.RenderCSV(f, a)
}
