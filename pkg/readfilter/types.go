// Package readfilter provides public types and interfaces for read filtering.
// This package is intended to be importable by external projects that need
// to interact with the ReadTools runtime.
package readfilter

import "strings"

// Record represents a single sequencing read in a mapped or unmapped state.
// It is the unit of data flowing through a filter chain. Fields mirror the
// tabular read format used by the runtime; accessors derive the common
// predicates (mapping status, clipping, indels) that leaf filters test.
type Record struct {
	// Name is the read name (query name)
	Name string `json:"name"`

	// Contig is the reference the read is mapped to, or "*" if unmapped
	Contig string `json:"contig"`

	// Position is the 1-based alignment start (0 if unknown/unmapped)
	Position int `json:"position"`

	// MateContig is the reference the mate is mapped to ("*" if unmapped)
	MateContig string `json:"mateContig,omitempty"`

	// MatePosition is the 1-based alignment start of the mate (0 if unknown)
	MatePosition int `json:"matePosition,omitempty"`

	// Cigar is the alignment CIGAR string ("*" if unavailable)
	Cigar string `json:"cigar,omitempty"`

	// Sequence is the read bases
	Sequence string `json:"sequence,omitempty"`

	// Tags holds optional key/value attributes attached to the read
	Tags map[string]string `json:"tags,omitempty"`
}

// IsMapped reports whether the read is aligned to a reference.
func (r *Record) IsMapped() bool {
	return r.Contig != "" && r.Contig != "*"
}

// MateIsMapped reports whether the mate is aligned to a reference.
func (r *Record) MateIsMapped() bool {
	return r.MateContig != "" && r.MateContig != "*"
}

// Length returns the read length in bases.
func (r *Record) Length() int {
	return len(r.Sequence)
}

// HasValidStart reports whether the alignment start is usable.
// Unmapped reads have no start to validate and are considered valid.
func (r *Record) HasValidStart() bool {
	if !r.IsMapped() {
		return true
	}
	return r.Position > 0
}

// IsProper reports whether the mate is mapped to the same reference at a
// different start, i.e. the pair looks like a real pair rather than an
// artifact of duplicated coordinates.
func (r *Record) IsProper() bool {
	return r.IsMapped() && r.MateIsMapped() &&
		r.Contig == r.MateContig && r.Position != r.MatePosition
}

// IsMateDownstream reports whether the pair is proper and the mate starts
// after this read.
func (r *Record) IsMateDownstream() bool {
	return r.IsProper() && r.MatePosition > r.Position
}

// HasCigarOp reports whether the CIGAR contains any of the given operators.
// Operators are single upper-case letters (e.g. 'S', 'I', 'D').
func (r *Record) HasCigarOp(ops ...byte) bool {
	if r.Cigar == "" || r.Cigar == "*" {
		return false
	}
	for i := 0; i < len(r.Cigar); i++ {
		c := r.Cigar[i]
		if c >= '0' && c <= '9' {
			continue
		}
		for _, op := range ops {
			if c == op {
				return true
			}
		}
	}
	return false
}

// HasSoftClip reports whether the read alignment contains a soft clip.
func (r *Record) HasSoftClip() bool {
	return r.HasCigarOp('S')
}

// HasIndel reports whether the read alignment contains an insertion or deletion.
func (r *Record) HasIndel() bool {
	return r.HasCigarOp('I', 'D')
}

// Tag returns the value of the named tag and whether it is present.
func (r *Record) Tag(key string) (string, bool) {
	if r.Tags == nil {
		return "", false
	}
	v, ok := r.Tags[key]
	return v, ok
}

// Env returns the record as a flat map suitable for expression evaluation.
// Field keys are lower camel case; tags are exposed under "tags".
func (r *Record) Env() map[string]interface{} {
	return map[string]interface{}{
		"name":         r.Name,
		"contig":       r.Contig,
		"position":     r.Position,
		"mateContig":   r.MateContig,
		"matePosition": r.MatePosition,
		"cigar":        r.Cigar,
		"sequence":     r.Sequence,
		"length":       r.Length(),
		"mapped":       r.IsMapped(),
		"tags":         r.Tags,
	}
}

// Filter is a named, stateful predicate over records.
//
// Name identifies the filter within one composition; enable/disable
// directives reference filters by this name. Test reports whether the record
// passes the filter. Test must always return a boolean and never fail; a
// filter that cannot evaluate a record should choose a pass/reject policy
// at construction time.
//
// A Filter used in concurrent record processing must either hold no mutable
// per-record state or synchronize it internally.
type Filter interface {
	Name() string
	Test(r *Record) bool
}

// Configurable is implemented by filter instances that accept configuration
// values after construction. The composition engine uses it to apply
// user-supplied values to a tool default instance, preserving the instance
// identity instead of replacing it.
type Configurable interface {
	Configure(cfg map[string]interface{}) error
}

// FilterConfig describes one filter in a run configuration: the registered
// kind and its optional kind-specific settings.
type FilterConfig struct {
	// Type is the registered filter kind (e.g. "MappedFilter", "MinLengthFilter")
	Type string `json:"type" yaml:"type"`

	// Config contains the kind-specific configuration
	Config map[string]interface{} `json:"config,omitempty" yaml:"config,omitempty"`
}

// JoinNames formats a list of filter names for user-facing messages.
func JoinNames(names []string) string {
	return strings.Join(names, ", ")
}
