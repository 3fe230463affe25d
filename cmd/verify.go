// =============================================================================
// POS Billing - Verify Command
// =============================================================================
//
// This file defines the 'verify' command, which audits an exported tax
// report. Every row is rebuilt as an item, its line total is recomputed and
// its checksum is recomputed over the cells as written.
//
// COMMAND USAGE:
//   pos verify <tax-report.csv|tax-report.xlsx>
//
// EXIT STATUS:
//   0 when every row verifies, 1 on any mismatch or read error.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/pos-billing/internal/csvstore"
	"github.com/ginjaninja78/pos-billing/internal/taxexport"
)

// verifyCmd represents the 'verify' command.
var verifyCmd = &cobra.Command{
	Use:   "verify <tax-report>",
	Short: "Verify the checksums and line totals of a tax report",
	Args:  cobra.ExactArgs(1),
	RunE:  verifyReport,
}

func verifyReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	report, err := taxexport.VerifyFile(args[0], csvstore.New(cfg.CSVSettings))
	if err != nil {
		logger.Error().Err(err).Str("path", args[0]).Msg("Tax report could not be read")
		return err
	}

	out := cmd.OutOrStdout()
	for _, m := range report.Mismatches {
		fmt.Fprintln(out, m.String())
	}

	logger.Info().
		Str("path", report.Path).
		Int("rows", report.Rows).
		Int("mismatches", len(report.Mismatches)).
		Msg("Tax report verified")

	if !report.OK() {
		return fmt.Errorf("%d of %d rows failed verification", len(report.Mismatches), report.Rows)
	}
	fmt.Fprintf(out, "%s: %d rows verified.\n", report.Path, report.Rows)
	return nil
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
