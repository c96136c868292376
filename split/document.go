package split

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

// Document is the source stylesheet as an ordered sequence of text lines.
// Line terminators are preserved so concatenating slices reproduces the
// original bytes exactly. Immutable once read.
type Document struct {
	path  string
	lines []string
}

// ReadDocument reads the whole source file once. Missing or binary sources
// are reported as ErrSourceUnreadable before any output is touched.
func ReadDocument(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnreadable, path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)

	head, err := r.Peek(detectHeaderLen)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnreadable, path, err)
	}
	if err := checkTextSource(head); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnreadable, path, err)
	}

	var lines []string
	for {
		line, err := r.ReadString('\n')
		if len(line) > 0 {
			lines = append(lines, line)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnreadable, path, err)
		}
	}
	return &Document{path: path, lines: lines}, nil
}

// NewDocument builds a document from raw bytes, splitting on line feeds and
// keeping terminators. Used by tests and by callers which already hold the
// content.
func NewDocument(path string, data []byte) *Document {
	var lines []string
	for len(data) > 0 {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			lines = append(lines, string(data))
			break
		}
		lines = append(lines, string(data[:i+1]))
		data = data[i+1:]
	}
	return &Document{path: path, lines: lines}
}

// Path returns the file the document was read from.
func (d *Document) Path() string {
	return d.path
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Slice returns lines of the half-open range [start, end) in 1-based
// numbering, terminators included. Caller guarantees the range was validated
// against the document.
func (d *Document) Slice(start, end int) []string {
	return d.lines[start-1 : end-1]
}
