package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjourdan1/egressctl/internal/assess"
	"github.com/kjourdan1/egressctl/internal/config"
	"github.com/kjourdan1/egressctl/internal/exitcode"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// fixtureAssessment builds a minimal classified assessment.
func fixtureAssessment() *assess.Assessment {
	verdict := assess.ClassifySubnet(assess.SubnetFacts{NICCount: 2})
	a := &assess.Assessment{
		GeneratedAt: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
		Subscriptions: []*assess.Subscription{
			{
				ID: "sub-1", DisplayName: "Production", State: "Enabled",
				VNets: []*assess.VNet{
					{
						ID: "/vnets/hub", Name: "hub", ResourceGroup: "rg-net",
						AddressSpace: []string{"10.0.0.0/16"},
						Subnets: []*assess.Subnet{
							{
								Name:              "app",
								NICCount:          2,
								Classification:    verdict.Classification,
								ReasonCode:        verdict.ReasonCode,
								Reason:            verdict.Reason,
								EgressMechanism:   verdict.Mechanism,
								UsesDefaultEgress: verdict.UsesDefaultEgress,
							},
						},
					},
				},
			},
		},
	}
	assess.Finalize(a)
	return a
}

// fixtureExport writes a small JSON export to a temp file.
func fixtureExport(t *testing.T) string {
	t.Helper()

	data, err := assess.RenderJSON(fixtureAssessment(), "test")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "egressctl version dev")
}

func TestReportCommand_Terminal(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	out, err := executeCommand(t, "report", fixtureExport(t))
	require.NoError(t, err)

	assert.Contains(t, out, "OVERALL SUMMARY")
	assert.Contains(t, out, "Subscription: Production (sub-1)")
	assert.Contains(t, out, "Default Egress: 1")
}

func TestReportCommand_WritesFiles(t *testing.T) {
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "report.html")
	csvPath := filepath.Join(dir, "report.csv")
	defer func() { reportHTML, reportCSV = "", "" }()

	_, err := executeCommand(t, "report", fixtureExport(t),
		"--html", htmlPath, "--csv", csvPath)
	require.NoError(t, err)

	html, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Azure Default Egress Assessment")
	assert.Contains(t, string(html), "egressctl test")

	csv, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(csv), "Affected: Default Egress")
}

func TestReportCommand_CustomTemplate(t *testing.T) {
	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "custom.tmpl")
	htmlPath := filepath.Join(dir, "report.html")
	require.NoError(t, os.WriteFile(tmplPath, []byte(`subnets: {{.Totals.Subnets}}`), 0o644))
	defer func() { reportHTML, reportCSV, reportTemplate = "", "", "" }()

	_, err := executeCommand(t, "report", fixtureExport(t),
		"--html", htmlPath, "--template", tmplPath)
	require.NoError(t, err)

	html, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Equal(t, "subnets: 1", string(html))
}

func TestReportCommand_MissingTemplateIsFatal(t *testing.T) {
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "report.html")
	defer func() { reportHTML, reportCSV, reportTemplate = "", "", "" }()

	_, err := executeCommand(t, "report", fixtureExport(t),
		"--html", htmlPath,
		"--template", filepath.Join(dir, "missing.tmpl"))
	require.Error(t, err)
	assert.Equal(t, exitcode.Validation, exitcode.Of(err))

	// No truncated report file may be left behind.
	_, statErr := os.Stat(htmlPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteHTMLReport_MissingTemplate(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	cfg.Output.ReportTemplate = filepath.Join(dir, "missing.tmpl")

	path := filepath.Join(dir, "report.html")
	err = writeHTMLReport(cfg, fixtureAssessment(), path)
	require.Error(t, err)
	assert.Equal(t, exitcode.Validation, exitcode.Of(err))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestReportCommand_InvalidExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := executeCommand(t, "report", path)
	require.Error(t, err)
	assert.Equal(t, exitcode.Validation, exitcode.Of(err))
}

func TestReportCommand_MissingFile(t *testing.T) {
	_, err := executeCommand(t, "report", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Equal(t, exitcode.Validation, exitcode.Of(err))
}

func TestApplyScanOverrides(t *testing.T) {
	defer func() {
		scanConcurrency, scanTemplate, scanTenant = 0, "", ""
		exportJSON, exportCSV, skipHTML = false, false, false
	}()

	cfg, err := config.Parse(nil)
	require.NoError(t, err)

	scanConcurrency = 8
	scanTemplate = "custom.tmpl"
	exportJSON = true
	exportCSV = true
	applyScanOverrides(cfg)

	assert.Equal(t, 8, cfg.Scan.Concurrency)
	assert.Equal(t, "custom.tmpl", cfg.Output.ReportTemplate)
	assert.ElementsMatch(t, []string{"html", "json", "csv"}, cfg.Output.Formats)

	// --no-html strips the default format but keeps exports.
	skipHTML = true
	applyScanOverrides(cfg)
	assert.ElementsMatch(t, []string{"json", "csv"}, cfg.Output.Formats)
}

func TestApplyScanOverrides_Tenant(t *testing.T) {
	defer func() { scanTenant = "" }()

	cfg, err := config.Parse([]byte("scan:\n  tenantId: 11111111-2222-3333-4444-555555555555\n"))
	require.NoError(t, err)

	applyScanOverrides(cfg)
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", scanTenant)

	// An explicit --tenant wins over the config file.
	scanTenant = "99999999-8888-7777-6666-555555555555"
	applyScanOverrides(cfg)
	assert.Equal(t, "99999999-8888-7777-6666-555555555555", scanTenant)
}

func TestApplyFlagOverrides(t *testing.T) {
	defer func() { subscriptions, outputDir = nil, "" }()

	cfg, err := config.Parse([]byte("scan:\n  subscriptions: [from-file]\noutput:\n  directory: /tmp/file\n"))
	require.NoError(t, err)

	subscriptions = []string{"from-flag"}
	outputDir = "/tmp/flag"
	applyFlagOverrides(cfg)

	assert.Equal(t, []string{"from-flag"}, cfg.Scan.Subscriptions)
	assert.Equal(t, "/tmp/flag", cfg.Output.Directory)
}
