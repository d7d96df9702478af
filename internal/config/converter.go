// Package config provides functionality for parsing and validating
// run configuration files (JSON/YAML).
// This file converts a typed configuration into composition inputs.
package config

import (
	"fmt"

	"github.com/maxmaronna/ReadTools/internal/compose"
	"github.com/maxmaronna/ReadTools/internal/registry"
	"github.com/maxmaronna/ReadTools/pkg/readfilter"
)

// BuildDefaults instantiates the tool default filter list declared in the
// configuration, in declared order. Each entry is constructed through the
// registry with its kind-specific configuration, so defaults carry any
// state (thresholds, expressions) the configuration supplies.
func BuildDefaults(cfg *RunConfig) ([]readfilter.Filter, error) {
	if cfg == nil || len(cfg.DefaultFilters) == 0 {
		return nil, nil
	}

	defaults := make([]readfilter.Filter, 0, len(cfg.DefaultFilters))
	for i, fc := range cfg.DefaultFilters {
		ctor := registry.Get(fc.Type)
		if ctor == nil {
			return nil, fmt.Errorf("unknown default filter type %q at index %d (known types: %s)",
				fc.Type, i, readfilter.JoinNames(registry.List()))
		}
		inst, err := ctor(fc.Config)
		if err != nil {
			return nil, &compose.InstantiationError{Kind: fc.Type, Err: err}
		}
		defaults = append(defaults, inst)
	}
	return defaults, nil
}

// BuildDirectives converts the configured directives into the composition
// engine's input form.
func BuildDirectives(cfg *RunConfig) compose.Directives {
	if cfg == nil {
		return compose.Directives{}
	}
	return compose.Directives{
		Enable:             cfg.Directives.Enable,
		Disable:            cfg.Directives.Disable,
		DisableAllDefaults: cfg.Directives.DisableToolDefaults,
	}
}
