// Package sam provides reading and writing of the tabular read format used
// by the runtime: one read per line, tab-separated fields
//
//	name  contig  position  mateContig  matePosition  cigar  sequence  tags
//
// where tags is a semicolon-separated list of key=value pairs or "*" when
// absent. Lines starting with '@' or '#' are header/comment lines and are
// skipped. The format is deliberately minimal I/O glue; it is not a BAM or
// FASTQ implementation.
package sam

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/maxmaronna/ReadTools/pkg/readfilter"
)

// fieldCount is the number of tab-separated columns per read line.
const fieldCount = 8

// missing is the placeholder for an absent field value.
const missing = "*"

// ParseError reports a malformed read line.
type ParseError struct {
	// Line is the 1-based line number in the input
	Line int
	// Message describes the problem
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Reader reads records from the tabular read format.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader creates a Reader over the given input.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Read returns the next record, or io.EOF when the input is exhausted.
// Header and comment lines are skipped; a malformed line yields a
// ParseError with its line number.
func (r *Reader) Read() (*readfilter.Record, error) {
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimRight(r.scanner.Text(), "\r")
		if line == "" || line[0] == '@' || line[0] == '#' {
			continue
		}
		return r.parseLine(line)
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// parseLine parses one tab-separated read line.
func (r *Reader) parseLine(line string) (*readfilter.Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != fieldCount {
		return nil, &ParseError{
			Line:    r.line,
			Message: fmt.Sprintf("expected %d tab-separated fields, got %d", fieldCount, len(fields)),
		}
	}

	pos, err := parsePosition(fields[2])
	if err != nil {
		return nil, &ParseError{Line: r.line, Message: fmt.Sprintf("invalid position: %v", err)}
	}
	matePos, err := parsePosition(fields[4])
	if err != nil {
		return nil, &ParseError{Line: r.line, Message: fmt.Sprintf("invalid mate position: %v", err)}
	}

	tags, err := parseTags(fields[7])
	if err != nil {
		return nil, &ParseError{Line: r.line, Message: err.Error()}
	}

	seq := fields[6]
	if seq == missing {
		seq = ""
	}

	return &readfilter.Record{
		Name:         fields[0],
		Contig:       fields[1],
		Position:     pos,
		MateContig:   fields[3],
		MatePosition: matePos,
		Cigar:        fields[5],
		Sequence:     seq,
		Tags:         tags,
	}, nil
}

// parsePosition parses a 1-based position, treating "*" as unknown (0).
func parsePosition(s string) (int, error) {
	if s == missing || s == "" || s == "0" {
		return 0, nil
	}
	pos, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if pos < 0 {
		return 0, fmt.Errorf("negative position %d", pos)
	}
	return pos, nil
}

// parseTags parses the semicolon-separated key=value tag field.
func parseTags(s string) (map[string]string, error) {
	if s == missing || s == "" {
		return nil, nil
	}
	tags := make(map[string]string)
	for _, pair := range strings.Split(s, ";") {
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid tag %q: expected key=value", pair)
		}
		tags[key] = value
	}
	return tags, nil
}
