// Package compose provides the filter composition engine.
// This file defines the composite filter: the logical AND of the active
// filter instances in merge-determined order.
package compose

import (
	"github.com/maxmaronna/ReadTools/pkg/readfilter"
)

// Filter names used by the composite layer.
const (
	// AllowAllFilterName is the designated identity element: the filter a
	// merge yields when the active list is empty. It passes every record.
	AllowAllFilterName = "AllowAllFilter"

	// CompositeFilterName is the name of a non-empty composite.
	CompositeFilterName = "CompositeFilter"
)

// AllowAll is the no-op filter that passes every record. An empty merge
// result returns this explicitly documented identity element rather than an
// empty conjunction that happens to reject nothing.
type AllowAll struct{}

// NewAllowAll creates the allow-all filter.
func NewAllowAll() *AllowAll { return &AllowAll{} }

// Name returns the filter name.
func (*AllowAll) Name() string { return AllowAllFilterName }

// Test always passes.
func (*AllowAll) Test(_ *readfilter.Record) bool { return true }

// Composite is an ordered conjunction of active filter instances. A record
// passes iff every instance passes; evaluation short-circuits on the first
// failure, in order.
//
// A Composite is immutable after construction and safe for concurrent Test
// calls by multiple workers, provided the individual filter instances hold
// no unsynchronized per-record state.
type Composite struct {
	filters []readfilter.Filter
}

// FromList builds a Composite from the given active filters in order.
// Passing an empty or nil list yields the allow-all identity: the composite
// reports IsAllowAll and passes every record.
func FromList(active []readfilter.Filter) *Composite {
	filters := make([]readfilter.Filter, len(active))
	copy(filters, active)
	return &Composite{filters: filters}
}

// Name returns AllowAllFilterName for the identity composite and
// CompositeFilterName otherwise.
func (c *Composite) Name() string {
	if c.IsAllowAll() {
		return AllowAllFilterName
	}
	return CompositeFilterName
}

// Test evaluates each active filter in order with short-circuit AND
// semantics. It always returns a boolean and never fails.
func (c *Composite) Test(r *readfilter.Record) bool {
	for _, f := range c.filters {
		if !f.Test(r) {
			return false
		}
	}
	return true
}

// IsAllowAll reports whether this composite is the designated identity
// element (no active filters).
func (c *Composite) IsAllowAll() bool {
	return len(c.filters) == 0
}

// Filters returns the active filter instances in evaluation order.
func (c *Composite) Filters() []readfilter.Filter {
	out := make([]readfilter.Filter, len(c.filters))
	copy(out, c.filters)
	return out
}

// Names returns the active filter names in evaluation order.
func (c *Composite) Names() []string {
	names := make([]string, len(c.filters))
	for i, f := range c.filters {
		names[i] = f.Name()
	}
	return names
}
