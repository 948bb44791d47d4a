// =============================================================================
// Order Line Cleaner - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Order Line Cleaner CLI application.
// It delegates command execution to the cmd package.
//
// USAGE:
//   ordclean <input-file>   - Clean an order line export
//   ordclean version        - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Readers, validation, partitioning, aggregation, output
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/order-line-cleaner/cmd"
)

func main() {
	cmd.Execute()
}
