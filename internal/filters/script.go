// Package filters provides the built-in filter kinds.
// Script filters reads with a user-defined JavaScript predicate executed by
// the Goja engine.
package filters

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/dop251/goja"

	"github.com/maxmaronna/ReadTools/internal/logger"
	"github.com/maxmaronna/ReadTools/pkg/readfilter"
)

// MaxScriptLength is the maximum allowed script length in bytes (100KB).
const MaxScriptLength = 100 * 1024

// Common errors for the script filter.
var (
	// ErrScriptEmpty is returned when the script is empty or whitespace-only
	ErrScriptEmpty = errors.New("script cannot be empty")
	// ErrScriptTooLong is returned when the script exceeds MaxScriptLength
	ErrScriptTooLong = errors.New("script exceeds maximum length")
	// ErrMissingAcceptFunc is returned when the script does not define accept
	ErrMissingAcceptFunc = errors.New("accept function not found in script")
	// ErrAcceptNotFunction is returned when accept is defined but not callable
	ErrAcceptNotFunction = errors.New("accept is not a function")
)

// Script passes reads for which a user-defined accept(record) JavaScript
// function returns a truthy value. The record is exposed as a plain object
// with the same fields as the expression environment.
//
// Goja runtime instances are not goroutine-safe, so Test serializes
// evaluation behind a mutex. Goja provides sandboxed execution: scripts have
// no file system or network access.
type Script struct {
	source   string
	onError  string
	mu       sync.Mutex
	runtime  *goja.Runtime
	acceptFn goja.Callable
}

// NewScriptFromConfig creates a Script filter from a configuration map.
// The "script" key must hold JavaScript source defining accept(record);
// "onError" selects the outcome of a failing evaluation ("reject" by
// default, or "pass").
func NewScriptFromConfig(cfg map[string]interface{}) (*Script, error) {
	source, _ := cfg["script"].(string)
	if strings.TrimSpace(source) == "" {
		return nil, ErrScriptEmpty
	}
	if len(source) > MaxScriptLength {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrScriptTooLong, len(source), MaxScriptLength)
	}

	onError := OnErrorReject
	if v, ok := cfg["onError"].(string); ok && v != "" {
		if v != OnErrorReject && v != OnErrorPass {
			return nil, fmt.Errorf("invalid 'onError' value %q: expected %q or %q",
				v, OnErrorReject, OnErrorPass)
		}
		onError = v
	}

	rt := goja.New()
	if _, err := rt.RunString(source); err != nil {
		return nil, fmt.Errorf("script compilation failed: %w", err)
	}

	acceptVal := rt.Get("accept")
	if acceptVal == nil || goja.IsUndefined(acceptVal) || goja.IsNull(acceptVal) {
		return nil, ErrMissingAcceptFunc
	}
	acceptFn, ok := goja.AssertFunction(acceptVal)
	if !ok {
		return nil, ErrAcceptNotFunction
	}

	return &Script{
		source:   source,
		onError:  onError,
		runtime:  rt,
		acceptFn: acceptFn,
	}, nil
}

// Name returns the filter name.
func (*Script) Name() string { return ScriptFilterName }

// Test calls accept(record) and converts the result to a boolean.
func (f *Script) Test(r *readfilter.Record) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	arg := f.runtime.ToValue(r.Env())
	result, err := f.acceptFn(goja.Undefined(), arg)
	if err != nil {
		logger.Debug("script evaluation failed",
			slog.String("filter", ScriptFilterName),
			slog.String("error", err.Error()),
		)
		return f.onError == OnErrorPass
	}
	return result.ToBoolean()
}
