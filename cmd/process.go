// =============================================================================
// Order Line Cleaner - Process
// =============================================================================
//
// This file runs one cleaning pass for the root command.
//
// PROCESSING PIPELINE:
//   1. Load configuration (file, environment, flags)
//   2. Build the logger
//   3. Run the pipeline over the input file
//   4. Print the summary
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/order-line-cleaner/internal/config"
	"github.com/ginjaninja78/order-line-cleaner/internal/logging"
	"github.com/ginjaninja78/order-line-cleaner/internal/output"
	"github.com/ginjaninja78/order-line-cleaner/internal/pipeline"
)

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess cleans the file at inputPath.
func runProcess(cmd *cobra.Command, inputPath string) error {
	out := cmd.OutOrStdout()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 2: SET UP LOGGING
	// =========================================================================

	logger := logging.New(cfg.Logging, cmd.ErrOrStderr())

	fmt.Fprintln(out, "=== Order Line Cleaner ===")
	fmt.Fprintf(out, "Input:  %s\n", inputPath)
	fmt.Fprintf(out, "Output: %s\n", cfg.OutputDir)

	// =========================================================================
	// STEP 3: RUN THE PIPELINE
	// =========================================================================

	p := pipeline.New(
		pipeline.FileReader{Path: inputPath, Input: cfg.Input},
		output.NewWriter(cfg, logger),
		pipeline.Options{
			WriteUsable: cfg.Artifacts.WriteUsableRows,
			Report:      cfg.Report.XLSX,
			Progress:    out,
		},
		logger,
	)

	result, err := p.Run()
	if err != nil {
		// The caller prints the error; keep the structured record for -v.
		logger.Debug("Cleaning failed",
			slog.String("input", inputPath),
			slog.String("error", err.Error()))
		return err
	}

	// =========================================================================
	// STEP 4: PRINT SUMMARY
	// =========================================================================

	fmt.Fprintln(out, "\n=== Processing Complete ===")
	fmt.Fprintf(out, "Rows read:       %d\n", result.Stats.TotalRows)
	fmt.Fprintf(out, "Rows removed:    %d\n", result.Split.Removed())
	fmt.Fprintf(out, "Rows rejected:   %d\n", len(result.Split.Candidates)-result.Stats.TotalUsableRows)
	fmt.Fprintf(out, "Usable rows:     %d\n", result.Stats.TotalUsableRows)
	fmt.Fprintf(out, "Days aggregated: %d\n", len(result.Metrics))
	for _, path := range result.Artifacts {
		fmt.Fprintf(out, "  ✓ %s\n", filepath.Base(path))
	}
	fmt.Fprintf(out, "Time elapsed:    %s\n", result.ProcessingTime)

	return nil
}

// loadConfig reads the configuration file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	// Only an explicitly named config file has to exist.
	required := cmd.Flags().Changed("config")

	cfg, err := config.Load(cfgFile, required)
	if err != nil {
		return nil, err
	}

	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if xlsxReport {
		cfg.Report.XLSX = true
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	return cfg, nil
}
