// Package filters provides the built-in filter kinds.
// Expression filters reads with a user-supplied boolean expression.
package filters

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/maxmaronna/ReadTools/internal/logger"
	"github.com/maxmaronna/ReadTools/pkg/readfilter"
)

// Error handling modes for expression evaluation failures.
// Test must always return a boolean, so a failing evaluation maps to a
// configured outcome instead of an error.
const (
	OnErrorReject = "reject"
	OnErrorPass   = "pass"
)

// Common errors for the expression filter.
var (
	// ErrEmptyExpression is returned when no expression is configured
	ErrEmptyExpression = errors.New("expression cannot be empty")
	// ErrInvalidExpression is returned when the expression does not compile
	ErrInvalidExpression = errors.New("invalid expression syntax")
)

// Expression passes reads for which a compiled boolean expression evaluates
// to true. Expressions see the record fields by name (contig, position,
// cigar, length, mapped, tags, ...), e.g.:
//
//	mapped && length >= 30
//	contig == "chr1" && tags["RG"] == "lane1"
//
// The expression is compiled once at construction; evaluation is per record
// and performs no I/O.
type Expression struct {
	source  string
	onError string
	program *vm.Program
}

// NewExpressionFromConfig creates an Expression filter from a configuration
// map. The "expression" key is required; "onError" selects the outcome of a
// failing evaluation ("reject" by default, or "pass").
func NewExpressionFromConfig(cfg map[string]interface{}) (*Expression, error) {
	source, _ := cfg["expression"].(string)
	if source == "" {
		return nil, ErrEmptyExpression
	}

	onError := OnErrorReject
	if v, ok := cfg["onError"].(string); ok && v != "" {
		if v != OnErrorReject && v != OnErrorPass {
			return nil, fmt.Errorf("invalid 'onError' value %q: expected %q or %q",
				v, OnErrorReject, OnErrorPass)
		}
		onError = v
	}

	program, err := expr.Compile(source,
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}

	return &Expression{
		source:  source,
		onError: onError,
		program: program,
	}, nil
}

// Name returns the filter name.
func (*Expression) Name() string { return ExpressionFilterName }

// Test evaluates the expression against the record.
func (f *Expression) Test(r *readfilter.Record) bool {
	result, err := expr.Run(f.program, r.Env())
	if err != nil {
		logger.Debug("expression evaluation failed",
			slog.String("filter", ExpressionFilterName),
			slog.String("expression", f.source),
			slog.String("error", err.Error()),
		)
		return f.onError == OnErrorPass
	}

	pass, ok := result.(bool)
	if !ok {
		return f.onError == OnErrorPass
	}
	return pass
}
