package sam

import (
	"bytes"
	"strings"
	"testing"

	"github.com/maxmaronna/ReadTools/pkg/readfilter"
)

func TestWriterWrite(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.WriteHeader("passing reads"); err != nil {
		t.Fatalf("WriteHeader() error = %v", err)
	}
	rec := &readfilter.Record{
		Name:         "read1",
		Contig:       "chr1",
		Position:     100,
		MateContig:   "chr1",
		MatePosition: 250,
		Cigar:        "50M",
		Sequence:     "ACGT",
		Tags:         map[string]string{"RG": "lane1", "MQ": "60"},
	}
	if err := w.Write(rec); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("output = %q, want 2 lines", buf.String())
	}
	if lines[0] != "# passing reads" {
		t.Errorf("header line = %q, want %q", lines[0], "# passing reads")
	}
	// tags render sorted by key
	want := "read1\tchr1\t100\tchr1\t250\t50M\tACGT\tMQ=60;RG=lane1"
	if lines[1] != want {
		t.Errorf("record line = %q, want %q", lines[1], want)
	}
}

func TestWriterMissingFields(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.Write(&readfilter.Record{Name: "read2"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	want := "read2\t*\t0\t*\t0\t*\t*\t*\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestWriterRoundTrip(t *testing.T) {
	original := &readfilter.Record{
		Name:     "read3",
		Contig:   "chr2",
		Position: 42,
		Cigar:    "10M2I8M",
		Sequence: "ACGTACGTACGTACGTACGT",
		Tags:     map[string]string{"NM": "2"},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.Write(original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	parsed, err := NewReader(&buf).Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if parsed.Name != original.Name || parsed.Contig != original.Contig ||
		parsed.Position != original.Position || parsed.Cigar != original.Cigar ||
		parsed.Sequence != original.Sequence {
		t.Errorf("round trip = %+v, want %+v", parsed, original)
	}
	if got, _ := parsed.Tag("NM"); got != "2" {
		t.Errorf("Tag(NM) = %q, want 2", got)
	}
}
