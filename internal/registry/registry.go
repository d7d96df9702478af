// Package registry provides the catalog of discoverable filter kinds.
//
// # Overview
//
// The registry maps filter names to constructor functions. Instead of
// runtime type scanning, filter kinds register their constructors in a
// static table at program start. This allows contributors to add new filter
// kinds without modifying the composition engine.
//
// # Adding a New Filter Kind
//
// To add a new filter kind:
//
//  1. Implement readfilter.Filter
//  2. Create a constructor function matching the registry signature
//  3. Register the constructor in an init() function
//
// Example:
//
//	func init() {
//	    registry.MustRegister("DuplicateFilter", func(cfg map[string]interface{}) (readfilter.Filter, error) {
//	        return filters.NewDuplicate(), nil
//	    })
//	}
//
// # Built-in Filter Kinds
//
// Built-in kinds (MappedFilter, ValidStartFilter, MinLengthFilter, ...) are
// registered automatically at startup via init() functions in builtins.go.
//
// Discovery happens once, before records begin flowing: the composition
// engine looks kinds up during its one-shot build step and never afterward.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/maxmaronna/ReadTools/pkg/readfilter"
)

// Constructor is a function that creates a filter instance from its
// kind-specific configuration. The configuration map may be nil when the
// filter is enabled by name without any settings.
type Constructor func(cfg map[string]interface{}) (readfilter.Filter, error)

// filterRegistry holds registered filter constructors keyed by name.
var (
	mu             sync.RWMutex
	filterRegistry = make(map[string]Constructor)
)

// Register registers a filter constructor under the given name.
// Registering a name that is already taken is an error: filter names must
// be unique across the whole catalog since they form the token namespace
// for enable/disable directives.
//
// This function is safe for concurrent use.
func Register(name string, constructor Constructor) error {
	if name == "" {
		return fmt.Errorf("filter registration requires a non-empty name")
	}
	if constructor == nil {
		return fmt.Errorf("filter registration for %q requires a constructor", name)
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := filterRegistry[name]; exists {
		return fmt.Errorf("a filter name collision was detected (%s): filter names must be unique", name)
	}
	filterRegistry[name] = constructor
	return nil
}

// MustRegister registers a filter constructor and panics on collision.
// Intended for init() functions where a collision is a programming error.
func MustRegister(name string, constructor Constructor) {
	if err := Register(name, constructor); err != nil {
		panic(err)
	}
}

// Get returns the registered constructor for a filter name.
// Returns nil if no constructor is registered under that name.
func Get(name string) Constructor {
	mu.RLock()
	defer mu.RUnlock()
	return filterRegistry[name]
}

// List returns all registered filter names in sorted order.
// Useful for user-facing listings and shell completion.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(filterRegistry))
	for name := range filterRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear removes all registered constructors.
// This is intended for testing purposes only.
func Clear() {
	mu.Lock()
	defer mu.Unlock()
	filterRegistry = make(map[string]Constructor)
}
