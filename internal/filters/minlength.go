// Package filters provides the built-in filter kinds.
// MinLength filters reads below a configured length threshold.
package filters

import (
	"fmt"

	"github.com/maxmaronna/ReadTools/pkg/readfilter"
)

// DefaultMinLength is the threshold used when none is configured.
const DefaultMinLength = 1

// MinLength passes reads whose length is at least Min bases.
// The threshold may be set by the host tool before the filter is registered
// as a default; the composition engine reuses that configured instance when
// the user re-enables the filter by name.
type MinLength struct {
	// Min is the minimum read length in bases (inclusive)
	Min int
}

// NewMinLength creates a MinLength filter with the given threshold.
func NewMinLength(min int) *MinLength {
	return &MinLength{Min: min}
}

// NewMinLengthFromConfig creates a MinLength filter from a configuration map.
// The "min" key must hold a positive number.
func NewMinLengthFromConfig(cfg map[string]interface{}) (*MinLength, error) {
	if cfg == nil {
		return NewMinLength(DefaultMinLength), nil
	}

	raw, ok := cfg["min"]
	if !ok {
		return NewMinLength(DefaultMinLength), nil
	}

	min, err := toInt(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid 'min' value for %s: %w", MinLengthFilterName, err)
	}
	if min < 1 {
		return nil, fmt.Errorf("'min' value for %s must be positive, got %d", MinLengthFilterName, min)
	}
	return NewMinLength(min), nil
}

// Name returns the filter name.
func (*MinLength) Name() string { return MinLengthFilterName }

// Configure applies user-supplied values to an existing instance. This lets
// the composition engine set the threshold on a tool default without
// discarding the tool's instance.
func (f *MinLength) Configure(cfg map[string]interface{}) error {
	configured, err := NewMinLengthFromConfig(cfg)
	if err != nil {
		return err
	}
	f.Min = configured.Min
	return nil
}

// Test reports whether the record meets the length threshold.
func (f *MinLength) Test(r *readfilter.Record) bool {
	return r.Length() >= f.Min
}

// toInt converts the numeric types produced by JSON and YAML decoding.
func toInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("expected integer, got %v", n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}
