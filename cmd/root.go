// =============================================================================
// Order Line Cleaner - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command takes
// the input file as its only argument and runs the cleaning pipeline.
//
// COBRA CLI STRUCTURE:
//   rootCmd (ordclean <input-file>)
//   └── versionCmd (ordclean version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (e.g., --config, --verbose)
//   2. Loading the configuration and applying flag overrides
//   3. Setting up logging
//
// FAILURE:
//   Any error is printed as a single "Error: <description>" line on standard
//   output and the process exits with status 1.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/order-line-cleaner/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// outputDir overrides the configured output directory when not empty.
var outputDir string

// xlsxReport enables the XLSX workbook regardless of configuration.
var xlsxReport bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "ordclean <input-file>",
	Short: "Order Line Cleaner - Clean and summarize e-commerce order line exports",
	Long: `Order Line Cleaner reads an order line export (CSV or XLSX), removes empty
and duplicate rows, validates every remaining row against fixed field rules and
writes the results to the output directory.

Artifacts:
  discarded_rows.csv      Empty rows followed by duplicate rows
  processing_stats.json   Row counters for the run
  monthly_metrics.csv     Promotion and net price totals per purchase date
  usable_rows.csv         Rows that passed every rule (artifacts.write_usable_rows)
  cleaning_report.xlsx    Summary workbook (--xlsx-report)

Example Usage:
  ordclean input/test.csv
  ordclean orders.xlsx --xlsx-report
  ordclean input/test.csv --config ./ordclean.yaml -v`,

	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd, args[0])
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command and exits with its status. This is called by
// main.main().
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the root command with args and returns the exit status. A
// failure is reported as one "Error:" line on stdout.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return 1
	}
	return 0
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	// --config flag: YAML configuration file. The default file may be absent;
	// a file named explicitly must exist.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the configuration file",
	)

	// --verbose flag: Enables debug logging, including every rejected row.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	// ==========================================================================
	// LOCAL FLAGS
	// ==========================================================================

	rootCmd.Flags().StringVar(
		&outputDir,
		"output-dir",
		"",
		"Directory for the artifacts (default from config, \"output\")",
	)

	rootCmd.Flags().BoolVar(
		&xlsxReport,
		"xlsx-report",
		false,
		"Also write the XLSX summary workbook",
	)
}
