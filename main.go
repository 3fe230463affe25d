// =============================================================================
// POS Billing - Main Entry Point
// =============================================================================
//
// USAGE:
//   pos run       - Start an interactive operator session
//   pos verify    - Verify an exported tax report
//   pos version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Basket, bill and export logic plus their stores
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/pos-billing/cmd"
)

func main() {
	cmd.Execute()
}
