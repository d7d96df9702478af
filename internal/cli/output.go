// Package cli provides CLI output formatting and display functions.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/maxmaronna/ReadTools/internal/compose"
	"github.com/maxmaronna/ReadTools/internal/config"
	"github.com/maxmaronna/ReadTools/internal/runtime"
)

// OutputOptions configures CLI output behavior.
type OutputOptions struct {
	Verbose bool
	Quiet   bool
	DryRun  bool
}

// PrintParseErrors prints parse errors to stderr.
func PrintParseErrors(errors []config.ParseError, verbose bool) {
	fmt.Fprintln(os.Stderr, "✗ Parse errors:")
	for _, err := range errors {
		location := formatErrorLocation(err.Path, err.Line)
		if location != "" {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", location, err.Message)
		} else {
			fmt.Fprintf(os.Stderr, "  %s\n", err.Message)
		}
		if verbose && err.Type != "" {
			fmt.Fprintf(os.Stderr, "    Type: %s\n", err.Type)
		}
	}
}

// formatErrorLocation formats the error location string (path:line).
func formatErrorLocation(path string, line int) string {
	if path == "" {
		return ""
	}
	if line > 0 {
		return fmt.Sprintf("%s:%d", path, line)
	}
	return path
}

// PrintValidationErrors prints schema validation errors to stderr.
func PrintValidationErrors(errors []config.ValidationError, verbose bool) {
	fmt.Fprintln(os.Stderr, "✗ Validation errors:")
	for _, err := range errors {
		if err.Path != "" && err.Path != "/" {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", err.Path, err.Message)
		} else {
			fmt.Fprintf(os.Stderr, "  %s\n", err.Message)
		}
		if verbose && err.Type != "" {
			fmt.Fprintf(os.Stderr, "    Type: %s\n", err.Type)
		}
	}
}

// PrintConfigError prints a fatal composition error to stderr.
func PrintConfigError(err error) {
	fmt.Fprintf(os.Stderr, "✗ Filter configuration error: %v\n", err)
}

// PrintWarnings prints composition warnings to stderr unless quiet.
func PrintWarnings(warnings []compose.Warning, quiet bool) {
	if quiet {
		return
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "⚠ %s\n", w.Message)
	}
}

// PrintRunResult displays the processing run result.
func PrintRunResult(result *runtime.RunResult, opts OutputOptions) {
	if result == nil {
		fmt.Fprintln(os.Stderr, "✗ No run result available")
		return
	}
	if opts.Quiet {
		return
	}

	if opts.DryRun {
		fmt.Println("✓ Dry run completed (no records written)")
	} else {
		fmt.Println("✓ Run completed")
	}
	fmt.Printf("  Records processed: %d\n", result.RecordsProcessed)
	fmt.Printf("  Records passed: %d\n", result.RecordsPassed)
	fmt.Printf("  Records rejected: %d\n", result.RecordsRejected)
	if opts.Verbose {
		fmt.Printf("  Duration: %v\n", result.CompletedAt.Sub(result.StartedAt))
	}
}

// PrintCountReport displays the per-filter counting summary.
func PrintCountReport(counting *compose.Counting, quiet bool) {
	if counting == nil || quiet {
		return
	}
	fmt.Println()
	fmt.Println("Filter summary:")
	for _, st := range counting.Stats() {
		pct := 0.0
		if st.Seen > 0 {
			pct = float64(st.Rejected) / float64(st.Seen) * 100
		}
		fmt.Printf("  %s: %d read(s) evaluated, %d rejected (%.2f%%)\n",
			st.Name, st.Seen, st.Rejected, pct)
	}
}

// PrintFilterList writes the registered filter names, one per line.
func PrintFilterList(w io.Writer, names []string) {
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
}
