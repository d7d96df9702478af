package filters

import (
	"errors"
	"strings"
	"testing"

	"github.com/maxmaronna/ReadTools/pkg/readfilter"
)

func TestScriptFromConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantErr error
	}{
		{name: "empty", script: "", wantErr: ErrScriptEmpty},
		{name: "whitespace only", script: "   \n\t", wantErr: ErrScriptEmpty},
		{name: "no accept function", script: "var x = 1;", wantErr: ErrMissingAcceptFunc},
		{name: "accept not callable", script: "var accept = 42;", wantErr: ErrAcceptNotFunction},
		{
			name:    "too long",
			script:  "function accept(r) { return true; } // " + strings.Repeat("x", MaxScriptLength),
			wantErr: ErrScriptTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScriptFromConfig(map[string]interface{}{"script": tt.script})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewScriptFromConfig() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestScriptFromConfigSyntaxError(t *testing.T) {
	_, err := NewScriptFromConfig(map[string]interface{}{"script": "function accept(r { return true; }"})
	if err == nil {
		t.Error("NewScriptFromConfig() expected error for invalid JavaScript")
	}
}

func TestScriptTest(t *testing.T) {
	tests := []struct {
		name   string
		script string
		record *readfilter.Record
		want   bool
	}{
		{
			name:   "field access",
			script: "function accept(r) { return r.mapped && r.length >= 5; }",
			record: &readfilter.Record{Contig: "chr1", Position: 10, Sequence: "ACGTACGT"},
			want:   true,
		},
		{
			name:   "rejecting predicate",
			script: "function accept(r) { return r.contig === 'chr2'; }",
			record: &readfilter.Record{Contig: "chr1", Position: 10},
			want:   false,
		},
		{
			name:   "truthy result converts",
			script: "function accept(r) { return r.length; }",
			record: &readfilter.Record{Sequence: "ACGT"},
			want:   true,
		},
		{
			name:   "falsy result converts",
			script: "function accept(r) { return r.length; }",
			record: &readfilter.Record{},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewScriptFromConfig(map[string]interface{}{"script": tt.script})
			if err != nil {
				t.Fatalf("NewScriptFromConfig() error = %v", err)
			}
			if got := f.Test(tt.record); got != tt.want {
				t.Errorf("Test() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScriptOnErrorPolicy(t *testing.T) {
	// accept throws; the configured policy decides the outcome
	script := "function accept(r) { throw new Error('boom'); }"

	tests := []struct {
		name    string
		onError string
		want    bool
	}{
		{name: "reject by default", onError: "", want: false},
		{name: "pass on error", onError: OnErrorPass, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := map[string]interface{}{"script": script}
			if tt.onError != "" {
				cfg["onError"] = tt.onError
			}
			f, err := NewScriptFromConfig(cfg)
			if err != nil {
				t.Fatalf("NewScriptFromConfig() error = %v", err)
			}
			if got := f.Test(&readfilter.Record{}); got != tt.want {
				t.Errorf("Test() = %v, want %v", got, tt.want)
			}
		})
	}
}
