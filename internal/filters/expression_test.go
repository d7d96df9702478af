package filters

import (
	"errors"
	"testing"

	"github.com/maxmaronna/ReadTools/pkg/readfilter"
)

func TestExpressionFromConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     map[string]interface{}
		wantErr error
	}{
		{
			name:    "missing expression",
			cfg:     map[string]interface{}{},
			wantErr: ErrEmptyExpression,
		},
		{
			name:    "empty expression",
			cfg:     map[string]interface{}{"expression": ""},
			wantErr: ErrEmptyExpression,
		},
		{
			name:    "syntax error",
			cfg:     map[string]interface{}{"expression": "length >= "},
			wantErr: ErrInvalidExpression,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExpressionFromConfig(tt.cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewExpressionFromConfig() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpressionFromConfigInvalidOnError(t *testing.T) {
	_, err := NewExpressionFromConfig(map[string]interface{}{
		"expression": "mapped",
		"onError":    "explode",
	})
	if err == nil {
		t.Error("NewExpressionFromConfig() expected error for invalid onError value")
	}
}

func TestExpressionTest(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		record     *readfilter.Record
		want       bool
	}{
		{
			name:       "mapped and long enough",
			expression: "mapped && length >= 5",
			record:     &readfilter.Record{Contig: "chr1", Position: 10, Sequence: "ACGTACGT"},
			want:       true,
		},
		{
			name:       "too short",
			expression: "mapped && length >= 5",
			record:     &readfilter.Record{Contig: "chr1", Position: 10, Sequence: "ACG"},
			want:       false,
		},
		{
			name:       "contig match",
			expression: `contig == "chr2"`,
			record:     &readfilter.Record{Contig: "chr1", Position: 10},
			want:       false,
		},
		{
			name:       "tag lookup",
			expression: `tags["RG"] == "lane1"`,
			record: &readfilter.Record{
				Contig: "chr1", Position: 10,
				Tags: map[string]string{"RG": "lane1"},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewExpressionFromConfig(map[string]interface{}{"expression": tt.expression})
			if err != nil {
				t.Fatalf("NewExpressionFromConfig() error = %v", err)
			}
			if got := f.Test(tt.record); got != tt.want {
				t.Errorf("Test() = %v, want %v", got, tt.want)
			}
		})
	}
}
