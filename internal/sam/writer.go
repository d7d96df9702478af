// Package sam provides reading and writing of the tabular read format.
package sam

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/maxmaronna/ReadTools/pkg/readfilter"
)

// Writer writes records in the tabular read format.
type Writer struct {
	w *bufio.Writer
}

// NewWriter creates a Writer over the given output.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteHeader writes a comment header line.
func (w *Writer) WriteHeader(comment string) error {
	_, err := fmt.Fprintf(w.w, "# %s\n", comment)
	return err
}

// Write writes one record as a tab-separated line.
func (w *Writer) Write(r *readfilter.Record) error {
	_, err := fmt.Fprintf(w.w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		orMissing(r.Name),
		orMissing(r.Contig),
		formatPosition(r.Position),
		orMissing(r.MateContig),
		formatPosition(r.MatePosition),
		orMissing(r.Cigar),
		orMissing(r.Sequence),
		formatTags(r.Tags),
	)
	return err
}

// Flush flushes buffered output.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// orMissing substitutes "*" for empty field values.
func orMissing(s string) string {
	if s == "" {
		return missing
	}
	return s
}

// formatPosition renders a position, using "0" for unknown.
func formatPosition(pos int) string {
	return fmt.Sprintf("%d", pos)
}

// formatTags renders tags as sorted key=value pairs joined by semicolons.
func formatTags(tags map[string]string) string {
	if len(tags) == 0 {
		return missing
	}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + tags[k]
	}
	return strings.Join(pairs, ";")
}
