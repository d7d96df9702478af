// Package config provides functionality for parsing and validating
// run configuration files (JSON/YAML).
package config

import (
	"fmt"
	"strings"

	"github.com/maxmaronna/ReadTools/pkg/readfilter"
)

// Parse error types.
const (
	ErrorTypeSyntax = "syntax"
	ErrorTypeIO     = "io"
	ErrorTypeFormat = "format"
)

// RunConfig is a parsed run configuration: the record I/O endpoints, the
// tool's ordered default filters, and the user's directives.
type RunConfig struct {
	// Name is an optional human-readable run name
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Input is the path of the tabular read file to process
	Input string `json:"input" yaml:"input"`

	// Output is the path passing records are written to
	Output string `json:"output" yaml:"output"`

	// Counting enables the per-filter counting decorator for the run
	Counting bool `json:"counting,omitempty" yaml:"counting,omitempty"`

	// DefaultFilters is the tool's ordered default filter list
	DefaultFilters []readfilter.FilterConfig `json:"defaultFilters,omitempty" yaml:"defaultFilters,omitempty"`

	// Directives holds the user's enable/disable intent
	Directives DirectivesConfig `json:"directives,omitempty" yaml:"directives,omitempty"`
}

// DirectivesConfig is the configuration form of the enable/disable
// directives.
type DirectivesConfig struct {
	// Enable lists filter names to activate, in order
	Enable []string `json:"enable,omitempty" yaml:"enable,omitempty"`

	// Disable lists filter names whose default activation is suppressed
	Disable []string `json:"disable,omitempty" yaml:"disable,omitempty"`

	// DisableToolDefaults suppresses all tool default filters
	DisableToolDefaults bool `json:"disableToolDefaults,omitempty" yaml:"disableToolDefaults,omitempty"`
}

// ParseResult contains the result of parsing a configuration file.
type ParseResult struct {
	// Data contains the parsed configuration as a map
	Data map[string]interface{}
	// Errors contains any parsing errors encountered
	Errors []ParseError
	// FilePath is the path to the parsed file (empty if parsed from string)
	FilePath string
	// Format indicates the detected format (json, yaml)
	Format string
}

// IsValid returns true if no parsing errors occurred.
func (r *ParseResult) IsValid() bool {
	return len(r.Errors) == 0
}

// ParseError represents a parsing error with location information.
type ParseError struct {
	// Path is the file path where the error occurred
	Path string
	// Line is the line number (1-based, 0 if unknown)
	Line int
	// Message is the error message
	Message string
	// Type categorizes the error (syntax, io, format)
	Type string
}

// Error implements the error interface.
func (e ParseError) Error() string {
	var sb strings.Builder
	if e.Path != "" {
		sb.WriteString(e.Path)
		sb.WriteString(": ")
	}
	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf("line %d: ", e.Line))
	}
	sb.WriteString(e.Message)
	return sb.String()
}

// ValidationResult contains the result of validating a configuration.
type ValidationResult struct {
	// Valid indicates whether the configuration is valid
	Valid bool
	// Errors contains validation errors
	Errors []ValidationError
}

// ValidationError represents a schema validation error.
type ValidationError struct {
	// Path is the JSON path where the error occurred (e.g., "/defaultFilters/0/type")
	Path string
	// Type is the error type (required, type, format, enum, etc.)
	Type string
	// Message is the error message
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// Result contains the combined result of parsing and validation.
type Result struct {
	// Config is the typed configuration (nil when parsing or validation failed)
	Config *RunConfig
	// Data contains the parsed configuration as a generic map
	Data map[string]interface{}
	// ParseErrors contains parsing errors
	ParseErrors []ParseError
	// ValidationErrors contains validation errors
	ValidationErrors []ValidationError
	// FilePath is the path to the configuration file
	FilePath string
	// Format indicates the detected format (json, yaml)
	Format string
}

// IsValid returns true if parsing and validation both succeeded.
func (r *Result) IsValid() bool {
	return len(r.ParseErrors) == 0 && len(r.ValidationErrors) == 0
}
