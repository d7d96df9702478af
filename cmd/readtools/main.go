// Package main provides the CLI entry point for the ReadTools runtime.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maxmaronna/ReadTools/internal/cli"
	"github.com/maxmaronna/ReadTools/internal/compose"
	"github.com/maxmaronna/ReadTools/internal/config"
	"github.com/maxmaronna/ReadTools/internal/logger"
	"github.com/maxmaronna/ReadTools/internal/registry"
	"github.com/maxmaronna/ReadTools/internal/runtime"
	"github.com/maxmaronna/ReadTools/pkg/readfilter"
)

// Exit codes
const (
	ExitSuccess         = 0
	ExitValidationError = 1
	ExitParseError      = 2
	ExitRuntimeError    = 3
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	humanLog bool

	// Run command flags
	dryRun             bool
	counting           bool
	readFilters        []string
	disableReadFilters []string
	disableToolDefault bool
	filterOptions      []string

	// Build information (set via ldflags during build)
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitRuntimeError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "readtools",
	Short: "ReadTools - read filtering runtime",
	Long: `ReadTools streams sequencing reads through a composable chain of named
filters. The active chain is assembled at startup from the tool defaults
declared in the run configuration and the enable/disable directives given
on the command line, then applied to every read in the input.

Examples:
  # Validate a run configuration
  readtools validate run.yaml

  # Run with the configured defaults
  readtools run run.yaml

  # Disable a default and enable an extra filter
  readtools run run.yaml --disable-read-filter MappedFilter --read-filter NoIndelFilter

  # List the available filter kinds
  readtools filters`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		} else if quiet {
			level = slog.LevelError
		}
		format := logger.FormatJSON
		if humanLog {
			format = logger.FormatHuman
		}
		logger.SetLevelAndFormat(level, format)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <config-file>",
	Short: "Validate a run configuration file",
	Long: `Validate a run configuration file against the schema and check that its
filter directives compose cleanly.

Supports both JSON and YAML formats, auto-detected by file extension
(.json, .yaml, .yml) or content.

Exit codes:
  0 - Configuration is valid
  1 - Validation errors (schema violations or directive conflicts)
  2 - Parse errors (invalid JSON/YAML syntax)`,
	Args: cobra.ExactArgs(1),
	Run:  runValidate,
}

var runCmd = &cobra.Command{
	Use:   "run <config-file>",
	Short: "Filter reads according to a run configuration",
	Long: `Run a read filtering pass defined by the configuration file.

The configuration is first validated against the schema. The tool default
filters it declares are merged with the command line directives; the merged
chain is then applied to every read in the input, and passing reads are
written to the output.

Exit codes:
  0 - Run completed successfully
  1 - Validation or filter configuration errors
  2 - Parse errors
  3 - Runtime errors`,
	Args: cobra.ExactArgs(1),
	Run:  runFilters,
}

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "List the available filter kinds",
	Long:  "Print the names of all registered filter kinds, one per line.",
	Run: func(_ *cobra.Command, _ []string) {
		cli.PrintFilterList(os.Stdout, registry.List())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print version, commit hash, and build date information.",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", buildDate)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&humanLog, "human-log", false, "Human-readable log output instead of JSON")

	// Run command flags
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Apply filters and report counts without writing output")
	runCmd.Flags().BoolVar(&counting, "counting", false, "Collect and print per-filter pass/fail counts")
	runCmd.Flags().StringArrayVar(&readFilters, "read-filter", nil,
		"Read filter to enable, in addition to the configured defaults (repeatable, order preserved)")
	runCmd.Flags().StringArrayVar(&disableReadFilters, "disable-read-filter", nil,
		"Default read filter to disable (repeatable)")
	runCmd.Flags().BoolVar(&disableToolDefault, "disable-tool-default-read-filters", false,
		"Disable all tool default read filters")
	runCmd.Flags().StringArrayVar(&filterOptions, "filter-option", nil,
		"Configuration value for an enabled or default filter, as Name:key=value (repeatable)")
	runCmd.MarkFlagsMutuallyExclusive("disable-read-filter", "disable-tool-default-read-filters")

	_ = runCmd.RegisterFlagCompletionFunc("read-filter",
		func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return registry.List(), cobra.ShellCompDirectiveNoFileComp
		})

	// Add commands
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(filtersCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig parses and schema-validates the configuration file, exiting
// with the appropriate code on failure.
func loadConfig(configPath string) *config.Result {
	result := config.ParseConfig(configPath)

	if len(result.ParseErrors) > 0 {
		cli.PrintParseErrors(result.ParseErrors, verbose)
		os.Exit(ExitParseError)
	}
	if len(result.ValidationErrors) > 0 {
		cli.PrintValidationErrors(result.ValidationErrors, verbose)
		os.Exit(ExitValidationError)
	}
	return result
}

// buildEngine creates the composition engine from the configured defaults.
func buildEngine(cfg *config.RunConfig) *compose.Engine {
	defaults, err := config.BuildDefaults(cfg)
	if err != nil {
		cli.PrintConfigError(err)
		os.Exit(ExitValidationError)
	}
	engine, err := compose.NewEngine(defaults)
	if err != nil {
		cli.PrintConfigError(err)
		os.Exit(ExitValidationError)
	}
	return engine
}

// buildDirectives merges the configured directives with the command line
// flags: flag enables/disables are appended after the configured ones, and
// either source may suppress all defaults.
func buildDirectives(cfg *config.RunConfig) compose.Directives {
	d := config.BuildDirectives(cfg)
	d.Enable = append(d.Enable, readFilters...)
	d.Disable = append(d.Disable, disableReadFilters...)
	d.DisableAllDefaults = d.DisableAllDefaults || disableToolDefault
	return d
}

// supplyFilterOptions parses --filter-option values and records them on the
// engine. An option for a filter that is neither enabled nor a tool default
// is rejected.
func supplyFilterOptions(engine *compose.Engine, d compose.Directives) error {
	for _, opt := range filterOptions {
		name, key, value, err := parseFilterOption(opt)
		if err != nil {
			return err
		}
		if !engine.SupplyValues(d, name, map[string]interface{}{key: value}) {
			return fmt.Errorf("values were supplied for (%s) that is neither enabled nor a tool default", name)
		}
	}
	return nil
}

// parseFilterOption splits a Name:key=value option string.
func parseFilterOption(opt string) (name, key string, value interface{}, err error) {
	name, rest, ok := strings.Cut(opt, ":")
	if !ok || name == "" {
		return "", "", nil, fmt.Errorf("invalid filter option %q: expected Name:key=value", opt)
	}
	key, raw, ok := strings.Cut(rest, "=")
	if !ok || key == "" {
		return "", "", nil, fmt.Errorf("invalid filter option %q: expected Name:key=value", opt)
	}
	// numeric values are passed through as integers so thresholds work
	var n int
	if _, convErr := fmt.Sscanf(raw, "%d", &n); convErr == nil && fmt.Sprintf("%d", n) == raw {
		return name, key, n, nil
	}
	return name, key, raw, nil
}

func runValidate(_ *cobra.Command, args []string) {
	configPath := args[0]

	if !quiet {
		fmt.Printf("Validating configuration: %s\n", configPath)
	}

	result := loadConfig(configPath)
	engine := buildEngine(result.Config)

	if err := engine.Validate(config.BuildDirectives(result.Config)); err != nil {
		cli.PrintConfigError(err)
		os.Exit(ExitValidationError)
	}
	cli.PrintWarnings(engine.Warnings(), quiet)

	if !quiet {
		fmt.Printf("✓ Configuration is valid (format: %s)\n", result.Format)
		if verbose {
			fmt.Printf("  Default filters: %s\n", readfilter.JoinNames(engine.DefaultNames()))
		}
	}
	os.Exit(ExitSuccess)
}

func runFilters(_ *cobra.Command, args []string) {
	configPath := args[0]

	result := loadConfig(configPath)
	cfg := result.Config
	engine := buildEngine(cfg)
	directives := buildDirectives(cfg)

	if err := supplyFilterOptions(engine, directives); err != nil {
		cli.PrintConfigError(err)
		os.Exit(ExitValidationError)
	}

	merged, err := engine.Merge(directives)
	if err != nil {
		cli.PrintConfigError(err)
		os.Exit(ExitValidationError)
	}
	cli.PrintWarnings(engine.Warnings(), quiet)

	var filter readfilter.Filter = merged
	var counter *compose.Counting
	if counting || cfg.Counting {
		counter = compose.NewCounting(merged)
		filter = counter
	}

	in, err := os.Open(cfg.Input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Failed to open input: %v\n", err)
		os.Exit(ExitRuntimeError)
	}
	defer in.Close()

	var outWriter io.Writer = io.Discard
	if !dryRun {
		out, err := os.Create(cfg.Output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ Failed to create output: %v\n", err)
			os.Exit(ExitRuntimeError)
		}
		defer out.Close()
		outWriter = out
	}

	executor := runtime.NewExecutor(filter, dryRun)
	runResult, err := executor.Execute(context.Background(), in, outWriter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Run failed: %v\n", err)
		os.Exit(ExitRuntimeError)
	}

	cli.PrintRunResult(runResult, cli.OutputOptions{Verbose: verbose, Quiet: quiet, DryRun: dryRun})
	cli.PrintCountReport(counter, quiet)
	os.Exit(ExitSuccess)
}
