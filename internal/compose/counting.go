// Package compose provides the filter composition engine.
// This file defines the counting decorator for composite filters.
package compose

import (
	"fmt"
	"strings"
	"sync"

	"github.com/maxmaronna/ReadTools/pkg/readfilter"
)

// FilterStats holds per-filter pass/fail counts for one named filter.
type FilterStats struct {
	// Name is the filter name
	Name string

	// Seen is the number of records the filter evaluated
	Seen int64

	// Rejected is the number of records the filter rejected
	Rejected int64
}

// Counting decorates a Composite with per-filter observability counters.
// For each record it records how many records each filter saw and how many
// it rejected, without affecting evaluation order, short-circuiting, or the
// pass/fail outcome.
//
// Counters are synchronized internally, so a Counting filter is safe for
// concurrent Test calls.
type Counting struct {
	composite *Composite

	mu    sync.Mutex
	order []string
	stats map[string]*FilterStats
}

// NewCounting wraps an already-built composite with counting. The decorator
// is purely diagnostic; the wrapped composite decides pass/fail.
func NewCounting(c *Composite) *Counting {
	order := c.Names()
	stats := make(map[string]*FilterStats, len(order))
	for _, name := range order {
		if _, ok := stats[name]; !ok {
			stats[name] = &FilterStats{Name: name}
		}
	}
	return &Counting{
		composite: c,
		order:     order,
		stats:     stats,
	}
}

// Name returns the name of the wrapped composite.
func (c *Counting) Name() string {
	return c.composite.Name()
}

// Test evaluates the wrapped filters in order with short-circuit AND
// semantics, recording per-filter seen and rejected counts.
func (c *Counting) Test(r *readfilter.Record) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, f := range c.composite.filters {
		st := c.stats[f.Name()]
		st.Seen++
		if !f.Test(r) {
			st.Rejected++
			return false
		}
	}
	return true
}

// IsAllowAll reports whether the wrapped composite is the identity element.
func (c *Counting) IsAllowAll() bool {
	return c.composite.IsAllowAll()
}

// Stats returns a snapshot of per-filter counts in evaluation order.
func (c *Counting) Stats() []FilterStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]FilterStats, 0, len(c.order))
	seen := make(map[string]struct{}, len(c.order))
	for _, name := range c.order {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, *c.stats[name])
	}
	return out
}

// Report formats the per-filter counts as a human-readable summary, one
// line per filter.
func (c *Counting) Report() string {
	stats := c.Stats()
	if len(stats) == 0 {
		return "no filters applied"
	}

	var sb strings.Builder
	for i, st := range stats {
		if i > 0 {
			sb.WriteString("\n")
		}
		pct := 0.0
		if st.Seen > 0 {
			pct = float64(st.Rejected) / float64(st.Seen) * 100
		}
		sb.WriteString(fmt.Sprintf("%s: %d read(s) evaluated, %d rejected (%.2f%%)",
			st.Name, st.Seen, st.Rejected, pct))
	}
	return sb.String()
}
