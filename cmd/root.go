// =============================================================================
// POS Billing - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (pos)
//   ├── runCmd (pos run)
//   ├── verifyCmd (pos verify <tax-report>)
//   └── versionCmd (pos version)
//
// CONFIGURATION:
//   The root command owns the global flags (--config, --verbose). Commands
//   that need configuration or logging call loadConfig and newLogger.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/pos-billing/internal/config"
	"github.com/ginjaninja78/pos-billing/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose mirrors debug logging to stderr when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pos",
	Short: "POS Billing - point-of-sale basket, billing and tax export",
	Long: `POS Billing is a console point-of-sale tool. An operator builds a basket
of items, issues immutable bills from it, searches issued bills and exports
a checksummed tax report.

Key Features:
  - Validated item entry with re-prompting
  - Bills frozen at checkout with date-prefixed ids
  - Tax report export to CSV and XLSX with per-row checksums
  - Optional JSON bill journal and PDF receipts
  - Offline verification of exported tax reports

Example Usage:
  pos run                               # Start an operator session
  pos run --config ./my.yaml            # Use a custom configuration file
  pos verify data/tax_report_20251231_235959.csv`,

	SilenceErrors: true,
	SilenceUsage:  true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// loadConfig loads the configuration named by --config.
func loadConfig() (*config.MainConfig, error) {
	cfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the application logger from the configuration and
// --verbose.
func newLogger(cfg *config.MainConfig) (zerolog.Logger, func() error, error) {
	logger, closeLog, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Verbose: verbose,
		Stderr:  os.Stderr,
	})
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	return logger, closeLog, nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Mirror debug logs to stderr",
	)
}
