// Package cmd implements the Cobra-based CLI for egressctl.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kjourdan1/egressctl/internal/config"
)

var (
	cfgFile       string
	subscriptions []string
	outputDir     string
	verbosity     int
	jsonOutput    bool
)

// rootCmd is the top-level command for egressctl.
var rootCmd = &cobra.Command{
	Use:   "egressctl",
	Short: "Azure default outbound access assessment CLI",
	Long: `egressctl inventories the virtual networks of an Azure tenant and reports
which subnets still rely on default outbound access — the implicit egress
path Azure is retiring — versus an explicit mechanism (NAT Gateway or a
user-defined route for 0.0.0.0/0).

The scan is read-only. It classifies every subnet, rolls verdicts up to
VNet level, flags overlapping VNet address spaces that complicate NAT
consolidation, and renders HTML/JSON/CSV reports.

Settings can live in egressctl.yaml; flags override the file.

Workflow: scan → report → history`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: egressctl.yaml)")
	rootCmd.PersistentFlags().StringSliceVarP(&subscriptions, "subscription", "s", nil, "subscription ID or display name to assess (repeatable; default: all)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "directory for report files (default: current directory)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase verbosity (-v, -vv)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output results as JSON (machine-readable)")

	_ = viper.BindPFlag("scan.subscriptions", rootCmd.PersistentFlags().Lookup("subscription"))
	_ = viper.BindPFlag("output.directory", rootCmd.PersistentFlags().Lookup("output"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("egressctl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}
	viper.SetEnvPrefix("EGRESSCTL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbosity > 0 {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the effective configuration: the config file when one
// was found, defaults otherwise, with command-line flags layered on top.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	switch {
	case cfgFile != "":
		cfg, err = config.Load(cfgFile)
	case viper.ConfigFileUsed() != "":
		cfg, err = config.Load(viper.ConfigFileUsed())
	default:
		cfg, err = config.Parse(nil)
	}
	if err != nil {
		return nil, err
	}

	if viper.ConfigFileUsed() != "" || cfgFile != "" {
		result, err := config.Validate(cfg)
		if err != nil {
			return nil, err
		}
		if !result.Valid {
			for _, e := range result.Errors {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", e.Field, e.Description)
			}
			return nil, fmt.Errorf("config validation failed with %d error(s)", len(result.Errors))
		}
	}

	applyFlagOverrides(cfg)
	return cfg, nil
}

// applyFlagOverrides layers command-line flags over the file-based config.
func applyFlagOverrides(cfg *config.Config) {
	if len(subscriptions) > 0 {
		cfg.Scan.Subscriptions = subscriptions
	}
	if outputDir != "" {
		cfg.Output.Directory = outputDir
	}
}
