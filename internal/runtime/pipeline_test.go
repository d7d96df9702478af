package runtime

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/maxmaronna/ReadTools/internal/compose"
	"github.com/maxmaronna/ReadTools/internal/filters"
	"github.com/maxmaronna/ReadTools/pkg/readfilter"
)

const sampleReads = `# three reads, one unmapped, one with a bad start
read1	chr1	100	chr1	250	50M	ACGTACGT	RG=lane1
read2	*	0	*	0	*	ACGT	*
read3	chr1	0	*	0	50M	ACGTACGT	*
`

func TestExecuteAppliesMergedFilter(t *testing.T) {
	// tool defaults require mapped reads with a usable start; the user
	// disables the mapped requirement, leaving only the start check
	engine, err := compose.NewEngine([]readfilter.Filter{
		filters.NewMapped(),
		filters.NewValidStart(),
	})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	merged, err := engine.Merge(compose.Directives{
		Disable: []string{filters.MappedFilterName},
	})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if names := merged.Names(); len(names) != 1 || names[0] != filters.ValidStartFilterName {
		t.Fatalf("active filters = %v, want [%s]", names, filters.ValidStartFilterName)
	}

	var out bytes.Buffer
	result, err := NewExecutor(merged, false).Execute(context.Background(),
		strings.NewReader(sampleReads), &out)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Status != StatusSuccess {
		t.Errorf("Status = %q, want %q", result.Status, StatusSuccess)
	}
	if result.RecordsProcessed != 3 {
		t.Errorf("RecordsProcessed = %d, want 3", result.RecordsProcessed)
	}
	// read1 passes (mapped with start), read2 passes (unmapped has no start
	// to validate), read3 fails (mapped without a start)
	if result.RecordsPassed != 2 || result.RecordsRejected != 1 {
		t.Errorf("passed/rejected = %d/%d, want 2/1", result.RecordsPassed, result.RecordsRejected)
	}

	output := out.String()
	if !strings.Contains(output, "read1") || !strings.Contains(output, "read2") {
		t.Errorf("output %q missing passing reads", output)
	}
	if strings.Contains(output, "read3") {
		t.Errorf("output %q contains a rejected read", output)
	}
}

func TestExecuteDryRun(t *testing.T) {
	var out bytes.Buffer
	result, err := NewExecutor(compose.NewAllowAll(), true).Execute(context.Background(),
		strings.NewReader(sampleReads), &out)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.RecordsPassed != 3 {
		t.Errorf("RecordsPassed = %d, want 3", result.RecordsPassed)
	}
	if out.Len() != 0 {
		t.Errorf("dry run wrote %q, want no output", out.String())
	}
}

func TestExecuteCountingDecorator(t *testing.T) {
	engine, err := compose.NewEngine([]readfilter.Filter{filters.NewMapped()})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	counted, err := engine.MergeCounting(compose.Directives{})
	if err != nil {
		t.Fatalf("MergeCounting() error = %v", err)
	}

	var out bytes.Buffer
	result, err := NewExecutor(counted, false).Execute(context.Background(),
		strings.NewReader(sampleReads), &out)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.RecordsPassed != 2 {
		t.Errorf("RecordsPassed = %d, want 2", result.RecordsPassed)
	}

	stats := counted.Stats()
	if len(stats) != 1 {
		t.Fatalf("Stats() = %v, want one entry", stats)
	}
	if stats[0].Seen != 3 || stats[0].Rejected != 1 {
		t.Errorf("stats = %+v, want Seen=3 Rejected=1", stats[0])
	}
}

func TestExecuteNilFilter(t *testing.T) {
	_, err := NewExecutor(nil, false).Execute(context.Background(),
		strings.NewReader(""), &bytes.Buffer{})
	if !errors.Is(err, ErrNilFilter) {
		t.Errorf("Execute() error = %v, want ErrNilFilter", err)
	}
}

func TestExecuteReadFailure(t *testing.T) {
	var out bytes.Buffer
	result, err := NewExecutor(compose.NewAllowAll(), false).Execute(context.Background(),
		strings.NewReader("not a valid read line"), &out)

	var runErr *RunError
	if !errors.As(err, &runErr) {
		t.Fatalf("Execute() error type = %T, want *RunError", err)
	}
	if runErr.Code != ErrCodeReadFailed {
		t.Errorf("error code = %q, want %q", runErr.Code, ErrCodeReadFailed)
	}
	if result.Status != StatusError {
		t.Errorf("Status = %q, want %q", result.Status, StatusError)
	}
}

func TestExecuteCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExecutor(compose.NewAllowAll(), false).Execute(ctx,
		strings.NewReader(sampleReads), &bytes.Buffer{})

	var runErr *RunError
	if !errors.As(err, &runErr) {
		t.Fatalf("Execute() error type = %T, want *RunError", err)
	}
	if runErr.Code != ErrCodeCanceled {
		t.Errorf("error code = %q, want %q", runErr.Code, ErrCodeCanceled)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Execute() error = %v, want wrapped context.Canceled", err)
	}
}
