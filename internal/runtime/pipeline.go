// Package runtime provides the record-processing loop.
// It streams records from a reader through the merged composite filter and
// writes passing records to a writer. Composition has already finished by
// the time an Executor runs: the filter set is fixed and total, so the loop
// never sees a configuration error.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/maxmaronna/ReadTools/internal/logger"
	"github.com/maxmaronna/ReadTools/internal/sam"
	"github.com/maxmaronna/ReadTools/pkg/readfilter"
)

// Error codes for run failures.
const (
	ErrCodeReadFailed  = "READ_FAILED"
	ErrCodeWriteFailed = "WRITE_FAILED"
	ErrCodeCanceled    = "CANCELED"
)

// Execution status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// cancelCheckInterval is how many records are processed between context
// cancellation checks.
const cancelCheckInterval = 1024

// ErrNilFilter is returned when the executor has no filter to apply.
var ErrNilFilter = errors.New("filter is nil")

// RunError wraps a run failure with its stage code.
type RunError struct {
	// Code classifies the failing stage
	Code string
	// Err is the underlying error
	Err error
}

// Error implements the error interface.
func (e *RunError) Error() string {
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

// Unwrap returns the underlying error.
func (e *RunError) Unwrap() error {
	return e.Err
}

// RunResult summarizes one processing run.
type RunResult struct {
	// Status is "success" or "error"
	Status string
	// RecordsProcessed is the number of records read from the input
	RecordsProcessed int
	// RecordsPassed is the number of records that passed the filter chain
	RecordsPassed int
	// RecordsRejected is the number of records rejected by the filter chain
	RecordsRejected int
	// StartedAt is when the run began
	StartedAt time.Time
	// CompletedAt is when the run finished
	CompletedAt time.Time
}

// Executor streams records through a merged filter. The filter must be
// fully composed before the executor runs; the executor only calls Test.
type Executor struct {
	filter readfilter.Filter
	dryRun bool
}

// NewExecutor creates an executor for the given merged filter.
// In dry-run mode passing records are counted but not written.
func NewExecutor(filter readfilter.Filter, dryRun bool) *Executor {
	return &Executor{filter: filter, dryRun: dryRun}
}

// Execute reads every record from in, applies the filter, and writes
// passing records to out. It returns the run summary; a read or write
// failure aborts the run with a RunError.
func (e *Executor) Execute(ctx context.Context, in io.Reader, out io.Writer) (*RunResult, error) {
	if e.filter == nil {
		return nil, ErrNilFilter
	}

	result := &RunResult{
		Status:    StatusError,
		StartedAt: time.Now(),
	}

	reader := sam.NewReader(in)
	writer := sam.NewWriter(out)

	logger.Info("run started",
		slog.String("filter", e.filter.Name()),
		slog.Bool("dry_run", e.dryRun),
	)

	for {
		if result.RecordsProcessed%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				result.CompletedAt = time.Now()
				return result, &RunError{Code: ErrCodeCanceled, Err: err}
			}
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.CompletedAt = time.Now()
			return result, &RunError{Code: ErrCodeReadFailed, Err: err}
		}

		result.RecordsProcessed++
		if !e.filter.Test(record) {
			result.RecordsRejected++
			continue
		}
		result.RecordsPassed++

		if e.dryRun {
			continue
		}
		if err := writer.Write(record); err != nil {
			result.CompletedAt = time.Now()
			return result, &RunError{Code: ErrCodeWriteFailed, Err: err}
		}
	}

	if !e.dryRun {
		if err := writer.Flush(); err != nil {
			result.CompletedAt = time.Now()
			return result, &RunError{Code: ErrCodeWriteFailed, Err: err}
		}
	}

	result.Status = StatusSuccess
	result.CompletedAt = time.Now()

	duration := result.CompletedAt.Sub(result.StartedAt)
	rps := 0.0
	if seconds := duration.Seconds(); seconds > 0 {
		rps = float64(result.RecordsProcessed) / seconds
	}
	logger.LogRunMetrics(logger.RunMetrics{
		RecordsProcessed: result.RecordsProcessed,
		RecordsPassed:    result.RecordsPassed,
		RecordsRejected:  result.RecordsRejected,
		Duration:         duration,
		RecordsPerSecond: rps,
	})

	return result, nil
}
