// =============================================================================
// Order Line Cleaner - Pipeline Module
// =============================================================================
//
// This module contains the core cleaning logic. It orchestrates one run over
// one input file, from loading to the last artifact.
//
// CLEANING PIPELINE:
//   1. Load the input file
//   2. Split off empty and duplicate rows
//   3. Write the discarded rows
//   4. Apply the field rules to the remaining rows
//   5. Count the run
//   6. Write the stats
//   7. Roll usable rows up per purchase date
//   8. Write the metrics
//   9. Write the optional usable rows and report workbook
//
// Stages run in order. An artifact written by an earlier stage stays in place
// when a later stage fails.
//
// =============================================================================

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ginjaninja78/order-line-cleaner/internal/aggregate"
	"github.com/ginjaninja78/order-line-cleaner/internal/output"
	"github.com/ginjaninja78/order-line-cleaner/internal/partition"
	"github.com/ginjaninja78/order-line-cleaner/internal/types"
	"github.com/ginjaninja78/order-line-cleaner/internal/validation"
)

// =============================================================================
// ERROR KINDS
// =============================================================================

// Errors returned by Run wrap one of these kinds.
var (
	// ErrLoad means the input could not be opened or parsed.
	ErrLoad = errors.New("failed to load input")

	// ErrSchema means required columns are missing. The wrapped
	// *types.SchemaError lists them.
	ErrSchema = errors.New("input does not match the order line schema")

	// ErrWrite means an artifact could not be written.
	ErrWrite = errors.New("failed to write output")
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// Reader loads the full input dataset.
type Reader interface {
	Read() (*types.Dataset, error)
}

// Sink receives the artifacts of a run.
type Sink interface {
	WriteDiscarded(header []string, rows []types.Record) (string, error)
	WriteStats(stats types.Stats) (string, error)
	WriteMetrics(table aggregate.Table) (string, error)
	WriteUsable(header []string, rows []types.Record) (string, error)
	WriteReport(report output.Report) (string, error)
}

// Options selects the optional artifacts and the progress destination.
type Options struct {
	// WriteUsable also hands the usable rows to the sink.
	WriteUsable bool

	// Report also writes the XLSX workbook.
	Report bool

	// Progress receives one human readable line per counter. Nil discards.
	Progress io.Writer
}

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one run.
type Result struct {
	// Source is the path the dataset was read from.
	Source string

	// Stats contains the run counters.
	Stats types.Stats

	// Split holds the empty, duplicate and candidate views.
	Split partition.Outcome

	// Usable holds the candidates that passed every field rule, in source
	// order.
	Usable []types.Record

	// Metrics is the per-day roll-up of Usable.
	Metrics aggregate.Table

	// Artifacts lists the paths written, in write order.
	Artifacts []string

	// ProcessingTime is the time taken by the run.
	ProcessingTime time.Duration
}

// =============================================================================
// PIPELINE STRUCTURE
// =============================================================================

// Pipeline runs the cleaning stages over one input.
type Pipeline struct {
	reader     Reader
	sink       Sink
	classifier *validation.Classifier
	opts       Options
	logger     *slog.Logger
}

// New creates a Pipeline reading from reader and writing to sink.
//
// PARAMETERS:
//   - reader: Loads the dataset.
//   - sink: Receives the artifacts.
//   - opts: Optional artifacts and progress output.
//   - logger: Structured logger; nil uses slog.Default().
func New(reader Reader, sink Sink, opts Options, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Progress == nil {
		opts.Progress = io.Discard
	}
	return &Pipeline{
		reader:     reader,
		sink:       sink,
		classifier: validation.NewClassifier(nil),
		opts:       opts,
		logger:     logger,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the cleaning stages.
//
// RETURNS:
//   - The result of the run. On error it holds whatever was computed before
//     the failing stage.
//   - An error wrapping ErrLoad, ErrSchema or ErrWrite.
func (p *Pipeline) Run() (*Result, error) {
	startTime := time.Now()
	result := &Result{}

	// =========================================================================
	// STEP 1: LOAD INPUT
	// =========================================================================

	ds, err := p.reader.Read()
	if err != nil {
		var schemaErr *types.SchemaError
		if errors.As(err, &schemaErr) {
			return result, fmt.Errorf("%w: %w", ErrSchema, err)
		}
		return result, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	result.Source = ds.Source
	result.Stats.TotalRows = ds.Len()
	p.logger.Info("Loaded input",
		slog.String("source", ds.Source),
		slog.Int("rows", ds.Len()),
		slog.Int("columns", len(ds.Header)))
	fmt.Fprintf(p.opts.Progress, "Total rows: %d\n", result.Stats.TotalRows)

	// =========================================================================
	// STEP 2: SPLIT EMPTY AND DUPLICATE ROWS
	// =========================================================================

	split := partition.Split(ds)
	result.Split = split
	result.Stats.TotalEmptyRowsRemoved = len(split.Empty)
	result.Stats.TotalDuplicateRowsRemoved = len(split.Duplicates)
	result.Stats.TotalInvalidRowsRemoved = len(split.Empty) + len(split.Duplicates)

	p.logger.Debug("Split dataset",
		slog.Int("empty", len(split.Empty)),
		slog.Int("duplicates", len(split.Duplicates)),
		slog.Int("candidates", len(split.Candidates)))
	fmt.Fprintf(p.opts.Progress, "Total empty rows: %d\n", result.Stats.TotalEmptyRowsRemoved)
	fmt.Fprintf(p.opts.Progress, "Total duplicates rows: %d\n", result.Stats.TotalDuplicateRowsRemoved)

	// =========================================================================
	// STEP 3: WRITE DISCARDED ROWS
	// =========================================================================

	if err := p.write(result, func() (string, error) {
		return p.sink.WriteDiscarded(ds.Header, split.Discarded)
	}); err != nil {
		return result, err
	}

	// =========================================================================
	// STEP 4: APPLY FIELD RULES
	// =========================================================================
	// Candidates that fail any verdict rule are dropped. Each failure is logged
	// with its source row so the operator can find it.

	result.Usable = make([]types.Record, 0, len(split.Candidates))
	for i, rec := range split.Candidates {
		verdict := p.classifier.Classify(rec)
		if verdict.ValidRow {
			result.Usable = append(result.Usable, rec)
			continue
		}

		if p.logger.Enabled(context.Background(), slog.LevelDebug) {
			reasons := make([]string, len(verdict.Failures))
			for j, f := range verdict.Failures {
				reasons[j] = f.String()
			}
			p.logger.Debug("Row rejected",
				slog.Int("row", ds.RowNumber(split.CandidateIndex[i])),
				slog.Any("failures", reasons))
		}
	}

	// =========================================================================
	// STEP 5: COUNT THE RUN
	// =========================================================================

	result.Stats.TotalUsableRows = len(result.Usable)
	fmt.Fprintf(p.opts.Progress, "Usable rows: %d\n", result.Stats.TotalUsableRows)

	// =========================================================================
	// STEP 6: WRITE STATS
	// =========================================================================

	if err := p.write(result, func() (string, error) {
		return p.sink.WriteStats(result.Stats)
	}); err != nil {
		return result, err
	}

	// =========================================================================
	// STEP 7: AGGREGATE
	// =========================================================================

	result.Metrics = aggregate.Daily(result.Usable)
	p.logger.Debug("Aggregated usable rows", slog.Int("days", len(result.Metrics)))

	// =========================================================================
	// STEP 8: WRITE METRICS
	// =========================================================================

	if err := p.write(result, func() (string, error) {
		return p.sink.WriteMetrics(result.Metrics)
	}); err != nil {
		return result, err
	}

	// =========================================================================
	// STEP 9: OPTIONAL ARTIFACTS
	// =========================================================================

	if p.opts.WriteUsable {
		if err := p.write(result, func() (string, error) {
			return p.sink.WriteUsable(ds.Header, result.Usable)
		}); err != nil {
			return result, err
		}
	}

	if p.opts.Report {
		report := output.Report{
			Source:    ds.Source,
			Stats:     result.Stats,
			Metrics:   result.Metrics,
			Header:    ds.Header,
			Discarded: split.Discarded,
		}
		if err := p.write(result, func() (string, error) {
			return p.sink.WriteReport(report)
		}); err != nil {
			return result, err
		}
	}

	// =========================================================================
	// COMPLETE
	// =========================================================================

	result.ProcessingTime = time.Since(startTime)
	p.logger.Info("Run complete",
		slog.Int("usable", result.Stats.TotalUsableRows),
		slog.Int("artifacts", len(result.Artifacts)),
		slog.Duration("elapsed", result.ProcessingTime))

	return result, nil
}

// write runs one sink call and records the artifact path.
func (p *Pipeline) write(result *Result, fn func() (string, error)) error {
	path, err := fn()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	result.Artifacts = append(result.Artifacts, path)
	fmt.Fprintf(p.opts.Progress, "Created %s\n", path)
	return nil
}
