package config

const (
	DefaultConcurrency = 5
	DefaultMaxRetries  = 3
	DefaultDirectory   = "."
)

// ApplyDefaults fills in default values for optional fields that were not
// specified in the YAML. It is called after parsing and before validation.
func ApplyDefaults(cfg *Config) {
	if cfg.APIVersion == "" {
		cfg.APIVersion = "egressctl/v1"
	}
	if cfg.Kind == "" {
		cfg.Kind = "EgressAssessment"
	}
	if cfg.Scan.Concurrency == 0 {
		cfg.Scan.Concurrency = DefaultConcurrency
	}
	if cfg.Scan.MaxRetries == 0 {
		cfg.Scan.MaxRetries = DefaultMaxRetries
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = DefaultDirectory
	}
	if len(cfg.Output.Formats) == 0 {
		cfg.Output.Formats = []string{"html"}
	}
}
