// Package filters provides the built-in filter kinds.
// Each filter is a boolean test on a single read record; the interesting
// work of assembling filters into an active chain lives in internal/compose.
package filters

import (
	"github.com/maxmaronna/ReadTools/pkg/readfilter"
)

// Names of the built-in filter kinds. These are the tokens users pass to
// enable/disable directives and the keys under which constructors are
// registered.
const (
	MappedFilterName         = "MappedFilter"
	ValidStartFilterName     = "ValidStartFilter"
	ProperPairFilterName     = "ProperPairFilter"
	MateDownstreamFilterName = "MateDownstreamFilter"
	NoSoftClipFilterName     = "NoSoftClipFilter"
	NoIndelFilterName        = "NoIndelFilter"
	MinLengthFilterName      = "MinLengthFilter"
	ExpressionFilterName     = "ExpressionFilter"
	ScriptFilterName         = "ScriptFilter"
)

// Mapped passes reads that are aligned to a reference.
type Mapped struct{}

// NewMapped creates a Mapped filter.
func NewMapped() *Mapped { return &Mapped{} }

// Name returns the filter name.
func (*Mapped) Name() string { return MappedFilterName }

// Test reports whether the record is mapped.
func (*Mapped) Test(r *readfilter.Record) bool { return r.IsMapped() }

// ValidStart passes reads whose alignment start is usable.
// Unmapped reads pass since they have no start to validate.
type ValidStart struct{}

// NewValidStart creates a ValidStart filter.
func NewValidStart() *ValidStart { return &ValidStart{} }

// Name returns the filter name.
func (*ValidStart) Name() string { return ValidStartFilterName }

// Test reports whether the record has a valid alignment start.
func (*ValidStart) Test(r *readfilter.Record) bool { return r.HasValidStart() }

// ProperPair passes reads whose mate is mapped to the same reference at a
// different start.
type ProperPair struct{}

// NewProperPair creates a ProperPair filter.
func NewProperPair() *ProperPair { return &ProperPair{} }

// Name returns the filter name.
func (*ProperPair) Name() string { return ProperPairFilterName }

// Test reports whether the record forms a proper pair.
func (*ProperPair) Test(r *readfilter.Record) bool { return r.IsProper() }

// MateDownstream passes properly paired reads whose mate starts after them.
type MateDownstream struct{}

// NewMateDownstream creates a MateDownstream filter.
func NewMateDownstream() *MateDownstream { return &MateDownstream{} }

// Name returns the filter name.
func (*MateDownstream) Name() string { return MateDownstreamFilterName }

// Test reports whether the mate is downstream of the record.
func (*MateDownstream) Test(r *readfilter.Record) bool { return r.IsMateDownstream() }

// NoSoftClip rejects reads whose alignment contains a soft clip.
type NoSoftClip struct{}

// NewNoSoftClip creates a NoSoftClip filter.
func NewNoSoftClip() *NoSoftClip { return &NoSoftClip{} }

// Name returns the filter name.
func (*NoSoftClip) Name() string { return NoSoftClipFilterName }

// Test reports whether the record is free of soft clips.
func (*NoSoftClip) Test(r *readfilter.Record) bool { return !r.HasSoftClip() }

// NoIndel rejects reads whose alignment contains insertions or deletions.
type NoIndel struct{}

// NewNoIndel creates a NoIndel filter.
func NewNoIndel() *NoIndel { return &NoIndel{} }

// Name returns the filter name.
func (*NoIndel) Name() string { return NoIndelFilterName }

// Test reports whether the record is free of indels.
func (*NoIndel) Test(r *readfilter.Record) bool { return !r.HasIndel() }
