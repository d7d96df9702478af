// Package compose provides the filter composition engine.
// This file defines the parsed user intent: enable/disable directives.
package compose

// Directives is the parsed user intent for one composition: which filters
// to enable (in user-specified order), which to disable, and whether all
// tool defaults are suppressed. It is pure data; validation happens as a
// unit in Engine.Validate.
type Directives struct {
	// Enable lists filter names to activate, in user-specified order
	Enable []string

	// Disable lists filter names whose default activation is suppressed
	Disable []string

	// DisableAllDefaults suppresses every tool default not explicitly re-enabled
	DisableAllDefaults bool
}

// disabledSet returns the disable list as a set for membership tests.
func (d Directives) disabledSet() map[string]struct{} {
	set := make(map[string]struct{}, len(d.Disable))
	for _, name := range d.Disable {
		set[name] = struct{}{}
	}
	return set
}

// enabledContains reports whether name appears in the enable list.
func (d Directives) enabledContains(name string) bool {
	for _, n := range d.Enable {
		if n == name {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the directives request no change to the defaults.
func (d Directives) IsEmpty() bool {
	return len(d.Enable) == 0 && len(d.Disable) == 0 && !d.DisableAllDefaults
}
