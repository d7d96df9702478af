// Package registry provides the catalog of discoverable filter kinds.
// This file registers all built-in filter kinds during initialization.
package registry

import (
	"github.com/maxmaronna/ReadTools/internal/filters"
	"github.com/maxmaronna/ReadTools/pkg/readfilter"
)

func init() {
	registerBuiltinFilters()
}

// registerBuiltinFilters registers all built-in filter kinds.
func registerBuiltinFilters() {
	// MappedFilter - read is aligned to a reference
	MustRegister(filters.MappedFilterName, func(_ map[string]interface{}) (readfilter.Filter, error) {
		return filters.NewMapped(), nil
	})

	// ValidStartFilter - alignment start is usable
	MustRegister(filters.ValidStartFilterName, func(_ map[string]interface{}) (readfilter.Filter, error) {
		return filters.NewValidStart(), nil
	})

	// ProperPairFilter - mate mapped to the same reference at a different start
	MustRegister(filters.ProperPairFilterName, func(_ map[string]interface{}) (readfilter.Filter, error) {
		return filters.NewProperPair(), nil
	})

	// MateDownstreamFilter - proper pair with the mate starting after the read
	MustRegister(filters.MateDownstreamFilterName, func(_ map[string]interface{}) (readfilter.Filter, error) {
		return filters.NewMateDownstream(), nil
	})

	// NoSoftClipFilter - alignment is free of soft clips
	MustRegister(filters.NoSoftClipFilterName, func(_ map[string]interface{}) (readfilter.Filter, error) {
		return filters.NewNoSoftClip(), nil
	})

	// NoIndelFilter - alignment is free of insertions and deletions
	MustRegister(filters.NoIndelFilterName, func(_ map[string]interface{}) (readfilter.Filter, error) {
		return filters.NewNoIndel(), nil
	})

	// MinLengthFilter - read length meets a configurable threshold
	MustRegister(filters.MinLengthFilterName, func(cfg map[string]interface{}) (readfilter.Filter, error) {
		return filters.NewMinLengthFromConfig(cfg)
	})

	// ExpressionFilter - user-supplied boolean expression over record fields
	MustRegister(filters.ExpressionFilterName, func(cfg map[string]interface{}) (readfilter.Filter, error) {
		return filters.NewExpressionFromConfig(cfg)
	})

	// ScriptFilter - JavaScript accept(record) predicate via Goja
	MustRegister(filters.ScriptFilterName, func(cfg map[string]interface{}) (readfilter.Filter, error) {
		return filters.NewScriptFromConfig(cfg)
	})
}
