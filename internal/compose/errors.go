// Package compose provides the filter composition engine.
// This file defines the error and warning taxonomy for composition.
package compose

import (
	"fmt"

	"github.com/maxmaronna/ReadTools/pkg/readfilter"
)

// Codes classifying configuration errors and warnings. Errors are fatal and
// abort composition before any record is read; warnings are logged and
// composition proceeds.
const (
	// ErrCodeDuplicateEnable - a filter name appears more than once in the enable list
	ErrCodeDuplicateEnable = "DUPLICATE_ENABLE"

	// ErrCodeEnableDisableConflict - a filter name is both enabled and disabled
	ErrCodeEnableDisableConflict = "ENABLE_DISABLE_CONFLICT"

	// ErrCodeDisabledWithValues - values were supplied for a non-default filter that is disabled
	ErrCodeDisabledWithValues = "DISABLED_WITH_VALUES"

	// ErrCodeUnknownFilter - an enabled name matches neither the registry nor a tool default
	ErrCodeUnknownFilter = "UNKNOWN_FILTER"

	// ErrCodeDuplicateDefault - two tool defaults resolve to the same name
	ErrCodeDuplicateDefault = "DUPLICATE_DEFAULT"

	// WarnCodeDisableUnknown - a disabled name is not among the tool defaults
	WarnCodeDisableUnknown = "DISABLE_UNKNOWN"

	// WarnCodeRedundantEnable - an enabled name is already active by default
	WarnCodeRedundantEnable = "REDUNDANT_ENABLE"

	// WarnCodeDisabledDefaultWithValues - values were supplied for a disabled tool default
	WarnCodeDisabledDefaultWithValues = "DISABLED_DEFAULT_WITH_VALUES"
)

// ConfigError is a fatal configuration error detected during validation.
// Nothing is partially applied: a ConfigError aborts composition before any
// record is processed.
type ConfigError struct {
	// Code classifies the violated rule
	Code string

	// Names are the offending filter names
	Names []string

	// Message is the user-facing description naming the filters and the rule
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return e.Message
}

// newConfigError creates a ConfigError with a formatted message.
func newConfigError(code string, names []string, format string, args ...interface{}) *ConfigError {
	return &ConfigError{
		Code:    code,
		Names:   names,
		Message: fmt.Sprintf(format, args...),
	}
}

// Warning is a non-fatal configuration finding. Warnings are logged during
// validation and composition proceeds using the documented resolution rules.
type Warning struct {
	// Code classifies the finding
	Code string

	// Name is the filter the finding concerns
	Name string

	// Message is the user-facing description
	Message string
}

// String returns the user-facing warning text.
func (w Warning) String() string {
	return w.Message
}

// InstantiationError is returned when the registry fails to construct a
// requested filter kind. It is fatal and surfaces synchronously from merge.
type InstantiationError struct {
	// Kind is the filter kind that failed to construct
	Kind string

	// Err is the underlying constructor error
	Err error
}

// Error implements the error interface.
func (e *InstantiationError) Error() string {
	return fmt.Sprintf("failed to instantiate filter %s: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying constructor error.
func (e *InstantiationError) Unwrap() error {
	return e.Err
}

// joinNames formats filter names for error messages.
func joinNames(names []string) string {
	return readfilter.JoinNames(names)
}
