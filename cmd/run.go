// =============================================================================
// POS Billing - Run Command
// =============================================================================
//
// This file defines the 'run' command, which starts an interactive operator
// session on stdin/stdout.
//
// COMMAND USAGE:
//   pos run [flags]
//
// STARTUP:
//   1. Load configuration (file, then environment)
//   2. Set up logging to the log file
//   3. Create the data and receipts directories
//   4. Wire the tax exporter, bill journal and receipt writer
//   5. Run the session until the operator exits or input ends
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/pos-billing/internal/csvstore"
	"github.com/ginjaninja78/pos-billing/internal/receipt"
	"github.com/ginjaninja78/pos-billing/internal/session"
	"github.com/ginjaninja78/pos-billing/internal/taxexport"
	"github.com/ginjaninja78/pos-billing/pkg/utils"
)

// runCmd represents the 'run' command.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive POS session",
	Long: `The run command starts a console session. Choose menu options by number:

  1 add item, 2 show basket, 3 delete item, 4 update item,
  5 generate bill, 6 search bill, 7 generate tax file, 0 exit

Bills exist only for the lifetime of the session. Tax reports are written
to the data directory with a timestamped name.`,
	Args: cobra.NoArgs,
	RunE: runSession,
}

// runSession wires the session's dependencies from configuration and runs it.
func runSession(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	files := utils.NewFileManager(cfg.DataDir, cfg.Receipts.Dir)
	if err := files.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to prepare directories: %w", err)
	}

	store := csvstore.New(cfg.CSVSettings)
	opts := session.Options{
		In:               cmd.InOrStdin(),
		Out:              cmd.OutOrStdout(),
		Logger:           logger,
		Exporter:         taxexport.NewExporter(cfg.TaxExport, files, store),
		BillIDDateLayout: cfg.BillIDDateLayout,
	}
	if cfg.Journal.Enabled {
		opts.JournalPath = files.DataPath(cfg.Journal.FileName)
	}
	if cfg.Receipts.Enabled {
		opts.Receipts = receipt.NewWriter(files)
	}

	logger.Info().
		Str("config", cfgFile).
		Str("data_dir", cfg.DataDir).
		Strs("tax_formats", cfg.TaxExport.Formats).
		Bool("journal", cfg.Journal.Enabled).
		Bool("receipts", cfg.Receipts.Enabled).
		Msg("Starting POS session")

	return session.New(opts).Run(cmd.Context())
}

func init() {
	rootCmd.AddCommand(runCmd)
}
