package registry

import (
	"sort"
	"strings"
	"testing"

	"github.com/maxmaronna/ReadTools/internal/filters"
	"github.com/maxmaronna/ReadTools/pkg/readfilter"
)

func testConstructor(_ map[string]interface{}) (readfilter.Filter, error) {
	return filters.NewMapped(), nil
}

func TestRegisterValidation(t *testing.T) {
	if err := Register("", testConstructor); err == nil {
		t.Error("Register() accepted an empty name")
	}
	if err := Register("NilCtorFilter", nil); err == nil {
		t.Error("Register() accepted a nil constructor")
	}
}

func TestRegisterCollision(t *testing.T) {
	const name = "CollisionProbeFilter"

	if err := Register(name, testConstructor); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	err := Register(name, testConstructor)
	if err == nil {
		t.Fatal("Register() accepted a duplicate name")
	}
	if !strings.Contains(err.Error(), name) {
		t.Errorf("collision error %q does not name the filter", err)
	}
}

func TestGet(t *testing.T) {
	ctor := Get(filters.MappedFilterName)
	if ctor == nil {
		t.Fatalf("Get(%q) = nil, want builtin constructor", filters.MappedFilterName)
	}
	f, err := ctor(nil)
	if err != nil {
		t.Fatalf("constructor error = %v", err)
	}
	if f.Name() != filters.MappedFilterName {
		t.Errorf("constructed filter name = %q, want %q", f.Name(), filters.MappedFilterName)
	}

	if Get("NoSuchFilter") != nil {
		t.Error("Get() returned a constructor for an unknown name")
	}
}

func TestListSortedWithBuiltins(t *testing.T) {
	names := List()
	if !sort.StringsAreSorted(names) {
		t.Errorf("List() = %v, want sorted order", names)
	}

	want := []string{
		filters.MappedFilterName,
		filters.ValidStartFilterName,
		filters.MinLengthFilterName,
		filters.ExpressionFilterName,
		filters.ScriptFilterName,
	}
	have := make(map[string]struct{}, len(names))
	for _, name := range names {
		have[name] = struct{}{}
	}
	for _, name := range want {
		if _, ok := have[name]; !ok {
			t.Errorf("List() missing builtin %q", name)
		}
	}
}
