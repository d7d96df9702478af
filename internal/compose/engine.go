// Package compose provides the filter composition engine.
//
// # Overview
//
// The engine merges two sources of filter activation into one ordered,
// logical-AND composite: the host tool's ordered default filter instances
// and the user's enable/disable directives. Composition is a one-shot build
// step: it runs to completion, single-threaded, before any record is
// processed, and performs no I/O beyond in-memory registry lookups.
//
// # Resolution Rules
//
// Defaults survive in tool-declared order unless disabled; user-enabled
// filters are appended in user-specified order. Enabling a name that
// matches a tool default reuses the default's instance, so configuration
// the tool placed on it is preserved rather than discarded - including when
// all defaults are suppressed and the user re-activates one of them by
// name. An empty merge result yields the designated allow-all filter.
package compose

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/maxmaronna/ReadTools/internal/logger"
	"github.com/maxmaronna/ReadTools/internal/registry"
	"github.com/maxmaronna/ReadTools/pkg/readfilter"
)

// Engine resolves enable/disable directives against the registry and the
// tool's default filter list, validates them, and produces the merged
// composite. An Engine is a one-shot build step and must not be used
// concurrently.
type Engine struct {
	// defaultOrder holds default filter names in tool-declared order
	defaultOrder []string

	// defaults maps default filter names to the tool-supplied instances
	defaults map[string]readfilter.Filter

	// resolved caches freshly constructed non-default instances so repeated
	// resolution of the same name returns the same object
	resolved map[string]readfilter.Filter

	// required holds names whose dependent argument values were accepted,
	// i.e. some other directive's validity depended on the filter being active
	required map[string]struct{}

	// values holds user-supplied configuration values keyed by filter name,
	// applied during merge
	values map[string]map[string]interface{}

	// warnings collected by the last Validate call
	warnings []Warning
}

// NewEngine creates an engine for the given ordered tool default filters.
//
// Each default's name is taken from its Name method; an instance declaring
// an empty name (an anonymous or ad-hoc kind) falls back to its
// fully-qualified Go type so that distinct defaults never silently collapse
// into one map entry. Two defaults resolving to the same name is an error.
func NewEngine(defaults []readfilter.Filter) (*Engine, error) {
	e := &Engine{
		defaults: make(map[string]readfilter.Filter, len(defaults)),
		resolved: make(map[string]readfilter.Filter),
		required: make(map[string]struct{}),
	}

	for _, f := range defaults {
		if f == nil {
			continue
		}
		name := filterName(f)
		if _, exists := e.defaults[name]; exists {
			return nil, newConfigError(ErrCodeDuplicateDefault, []string{name},
				"The tool declares the default filter (%s) more than once", name)
		}
		e.defaultOrder = append(e.defaultOrder, name)
		e.defaults[name] = f
	}
	return e, nil
}

// filterName derives the lookup name for a filter instance, falling back to
// the fully-qualified type when the declared short name is empty.
func filterName(f readfilter.Filter) string {
	if name := f.Name(); name != "" {
		return name
	}
	return fmt.Sprintf("%T", f)
}

// AllowedEnableNames returns the names users may pass as enable directives:
// every kind known to the registry. Intended for shell completion and
// allowed-value listings.
func (e *Engine) AllowedEnableNames() []string {
	return registry.List()
}

// AllowedDisableNames returns the names users may pass as disable
// directives: the tool defaults in declared order.
func (e *Engine) AllowedDisableNames() []string {
	out := make([]string, len(e.defaultOrder))
	copy(out, e.defaultOrder)
	return out
}

// DefaultNames returns the tool default filter names in declared order.
func (e *Engine) DefaultNames() []string {
	out := make([]string, len(e.defaultOrder))
	copy(out, e.defaultOrder)
	return out
}

// AllowDependentValue reports whether a directive that supplies values for
// the named filter is acceptable: the filter must either appear in the
// enable list or be a tool default. Accepted names are recorded so that
// Validate can reject the case where such a filter is subsequently disabled.
func (e *Engine) AllowDependentValue(d Directives, name string) bool {
	_, isDefault := e.defaults[name]
	allowed := isDefault || d.enabledContains(name)
	if allowed {
		e.required[name] = struct{}{}
	}
	return allowed
}

// SupplyValues records user-supplied configuration values for the named
// filter. Values are only acceptable when AllowDependentValue holds: the
// filter must appear in the enable list or be a tool default. Accepted
// values are applied during Merge - to the tool default's existing instance
// when the name matches a default (preserving its identity), or to the
// registry constructor otherwise.
func (e *Engine) SupplyValues(d Directives, name string, cfg map[string]interface{}) bool {
	if !e.AllowDependentValue(d, name) {
		return false
	}
	if e.values == nil {
		e.values = make(map[string]map[string]interface{})
	}
	existing, ok := e.values[name]
	if !ok {
		existing = make(map[string]interface{}, len(cfg))
		e.values[name] = existing
	}
	for k, v := range cfg {
		existing[k] = v
	}
	return true
}

// Validate checks the directives against the tool defaults and the
// registry. The first failing hard rule is returned as a ConfigError; soft
// findings are logged and retrievable via Warnings. Validation performs the
// checks in a fixed priority:
//
//  1. duplicate enable (error, with multiplicity)
//  2. enable/disable conflict (error)
//  3. disable of a name the tool never enabled (warning)
//  4. redundant enable of an already-active default (warning)
//  5. values supplied for a disabled filter (error unless a tool default,
//     in which case it degrades to a warning)
//  6. enabled name known to neither registry nor defaults (error)
func (e *Engine) Validate(d Directives) error {
	e.warnings = nil

	// rule 1: a filter specified more than once is an error naming the
	// name and its multiplicity
	counts := make(map[string]int, len(d.Enable))
	var dupOrder []string
	for _, name := range d.Enable {
		counts[name]++
		if counts[name] == 2 {
			dupOrder = append(dupOrder, name)
		}
	}
	if len(dupOrder) > 0 {
		parts := make([]string, len(dupOrder))
		for i, name := range dupOrder {
			parts[i] = fmt.Sprintf("%s (%d)", name, counts[name])
		}
		return newConfigError(ErrCodeDuplicateEnable, dupOrder,
			"The read filter(s) are specified more than once: %s", joinNames(parts))
	}

	// rule 2: a filter both enabled and disabled is an error
	disabled := d.disabledSet()
	var conflicting []string
	for _, name := range d.Enable {
		if _, ok := disabled[name]; ok {
			conflicting = append(conflicting, name)
		}
	}
	if len(conflicting) > 0 {
		return newConfigError(ErrCodeEnableDisableConflict, conflicting,
			"The read filter(s): %s are both enabled and disabled", joinNames(conflicting))
	}

	// rule 3: disabling a filter the tool never enabled has no effect
	for _, name := range d.Disable {
		if _, ok := e.defaults[name]; !ok {
			e.warn(WarnCodeDisableUnknown, name,
				"Disabled filter (%s) is not enabled by this tool", name)
		}
	}

	// rule 4: enabling a filter already active by default is redundant
	for _, name := range d.Enable {
		if _, ok := e.defaults[name]; ok {
			e.warn(WarnCodeRedundantEnable, name,
				"Redundant enabled filter (%s) is enabled for this tool by default", name)
		}
	}

	// rule 5: values supplied for a filter that is also disabled; fatal
	// only when the filter is not a tool default (a default may supply the
	// value instead)
	for _, name := range d.Disable {
		if _, ok := e.required[name]; !ok {
			continue
		}
		if _, isDefault := e.defaults[name]; !isDefault {
			return newConfigError(ErrCodeDisabledWithValues, []string{name},
				"Values were supplied for (%s) that is also disabled", name)
		}
		e.warn(WarnCodeDisabledDefaultWithValues, name,
			"Values were supplied for (%s) that is also disabled", name)
	}

	// rule 6: an enabled name must resolve to a registry entry or a default
	for _, name := range d.Enable {
		if _, isDefault := e.defaults[name]; isDefault {
			continue
		}
		if registry.Get(name) == nil {
			return newConfigError(ErrCodeUnknownFilter, []string{name},
				"Unrecognized read filter name: %s", name)
		}
	}

	return nil
}

// Warnings returns the soft findings collected by the last Validate call.
func (e *Engine) Warnings() []Warning {
	out := make([]Warning, len(e.warnings))
	copy(out, e.warnings)
	return out
}

// warn records and logs a soft validation finding.
func (e *Engine) warn(code, name, format string, args ...interface{}) {
	w := Warning{
		Code:    code,
		Name:    name,
		Message: fmt.Sprintf(format, args...),
	}
	e.warnings = append(e.warnings, w)
	logger.Warn(w.Message,
		slog.String("warning_code", code),
		slog.String("filter", name),
	)
}

// Merge validates the directives and produces the merged composite:
// surviving defaults in tool-declared order, then user-enabled filters in
// user-specified order, deduplicated by name. An empty result yields the
// allow-all identity composite.
func (e *Engine) Merge(d Directives) (*Composite, error) {
	if err := e.Validate(d); err != nil {
		return nil, err
	}
	if err := e.applyDefaultValues(); err != nil {
		return nil, err
	}

	disabled := d.disabledSet()
	var active []readfilter.Filter
	activeNames := make(map[string]struct{})

	if !d.DisableAllDefaults {
		for _, name := range e.defaultOrder {
			if _, ok := disabled[name]; ok {
				continue
			}
			active = append(active, e.defaults[name])
			activeNames[name] = struct{}{}
		}
	}

	for _, name := range d.Enable {
		if _, ok := activeNames[name]; ok {
			continue
		}
		inst, err := e.resolve(name)
		if err != nil {
			return nil, err
		}
		active = append(active, inst)
		activeNames[name] = struct{}{}
	}

	merged := FromList(active)
	logger.Debug("filters merged",
		slog.Int("active_filters", len(active)),
		slog.Bool("allow_all", merged.IsAllowAll()),
		slog.Any("filter_names", merged.Names()),
	)
	return merged, nil
}

// MergeCounting is Merge with the counting decorator applied to the result.
func (e *Engine) MergeCounting(d Directives) (*Counting, error) {
	merged, err := e.Merge(d)
	if err != nil {
		return nil, err
	}
	return NewCounting(merged), nil
}

// applyDefaultValues applies user-supplied values to the tool default
// instances they name. The default keeps its identity; only its
// configuration changes. A default that does not accept values is an
// instantiation error.
func (e *Engine) applyDefaultValues() error {
	if len(e.values) == 0 {
		return nil
	}
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		if _, isDefault := e.defaults[name]; isDefault {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		inst := e.defaults[name]
		configurable, ok := inst.(readfilter.Configurable)
		if !ok {
			return &InstantiationError{
				Kind: name,
				Err:  fmt.Errorf("filter does not accept configuration values"),
			}
		}
		if err := configurable.Configure(e.values[name]); err != nil {
			return &InstantiationError{Kind: name, Err: err}
		}
	}
	return nil
}

// resolve returns the instance for an enabled filter name. A name matching
// a tool default reuses the default's instance so tool-supplied state is
// preserved - even when all defaults were suppressed and the default itself
// will not otherwise appear. Any other name is constructed through the
// registry exactly once per engine; repeated resolution returns the cached
// instance.
func (e *Engine) resolve(name string) (readfilter.Filter, error) {
	if inst, ok := e.defaults[name]; ok {
		return inst, nil
	}
	if inst, ok := e.resolved[name]; ok {
		return inst, nil
	}

	ctor := registry.Get(name)
	if ctor == nil {
		return nil, newConfigError(ErrCodeUnknownFilter, []string{name},
			"Unrecognized read filter name: %s", name)
	}
	inst, err := ctor(e.values[name])
	if err != nil {
		return nil, &InstantiationError{Kind: name, Err: err}
	}
	if inst == nil {
		return nil, &InstantiationError{Kind: name, Err: fmt.Errorf("constructor returned no instance")}
	}
	e.resolved[name] = inst
	return inst, nil
}
