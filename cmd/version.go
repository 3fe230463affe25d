// =============================================================================
// POS Billing - Build Identification
// =============================================================================
//
// 'pos version' reports which build of the till produced a set of receipts
// and tax reports. Attach its output to audit requests.
//
//   pos version           human readable block
//   pos version --short   bare version string, for scripts that tag exports
//
// Release builds stamp Version and BuildDate through the linker:
//   go build -ldflags "-X 'github.com/ginjaninja78/pos-billing/cmd.Version=1.2.0' \
//     -X 'github.com/ginjaninja78/pos-billing/cmd.BuildDate=2025-01-02'"
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version and BuildDate are overwritten by -ldflags in release builds.
var (
	Version   = "1.0.0"
	BuildDate = "unknown"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show which build of the till is running",
	Long: `Show the till version, its build date and the Go runtime it was built with.
Use --short to print only the version string.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if versionShort {
			fmt.Fprintln(out, Version)
			return
		}
		fmt.Fprintln(out, "POS Billing")
		fmt.Fprintf(out, "Version:    %s\n", Version)
		fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
		fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the version string")
	rootCmd.AddCommand(versionCmd)
}
