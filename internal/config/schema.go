// Package config provides the configuration schema, loader, validator, and
// default values for egressctl.yaml — optional persistent settings for
// egress assessments.
package config

// Config is the root struct matching egressctl.yaml.
type Config struct {
	APIVersion string `yaml:"apiVersion" json:"apiVersion"` // "egressctl/v1"
	Kind       string `yaml:"kind" json:"kind"`             // "EgressAssessment"
	Scan       Scan   `yaml:"scan" json:"scan"`
	Output     Output `yaml:"output" json:"output"`
}

// Scan holds inventory walk settings.
type Scan struct {
	// Subscriptions is an allow-list of subscription IDs or display names.
	// Empty means every subscription visible to the credential.
	Subscriptions []string `yaml:"subscriptions,omitempty" json:"subscriptions,omitempty"`
	TenantID      string   `yaml:"tenantId,omitempty" json:"tenantId,omitempty"`
	Concurrency   int      `yaml:"concurrency,omitempty" json:"concurrency,omitempty"`
	MaxRetries    int      `yaml:"maxRetries,omitempty" json:"maxRetries,omitempty"`
}

// Output holds report generation settings.
type Output struct {
	Directory string `yaml:"directory,omitempty" json:"directory,omitempty"`
	// Formats selects which report files to write: html, json, csv.
	Formats []string `yaml:"formats,omitempty" json:"formats,omitempty"`
	// ReportTemplate points at a custom HTML template. When set, it must
	// exist; there is no fallback rendering path.
	ReportTemplate string `yaml:"reportTemplate,omitempty" json:"reportTemplate,omitempty"`
}

// WantsFormat reports whether the given report format is enabled.
func (o Output) WantsFormat(format string) bool {
	for _, f := range o.Formats {
		if f == format {
			return true
		}
	}
	return false
}
