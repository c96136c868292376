package manifest

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"go.uber.org/multierr"
)

// Manifest defect classes. Callers match with errors.Is.
var (
	ErrBadPath          = errors.New("invalid module path")
	ErrDuplicatePath    = errors.New("duplicate module path")
	ErrBadRange         = errors.New("malformed section range")
	ErrRangeOutOfBounds = errors.New("section range out of bounds")
	ErrOverlap          = errors.New("section ranges overlap")
	ErrCoverageGap      = errors.New("source lines not covered by any section")
	ErrOrderParity      = errors.New("sections and aggregator order disagree")
)

// Span is a half-open run [Start, End) of 1-based source lines.
type Span struct {
	Start, End int
}

func (s Span) String() string {
	return fmt.Sprintf("[%d, %d)", s.Start, s.End)
}

// Validate performs all checks which do not need the source document: module
// path sanity, duplicates, range shape and parity between sections and the
// explicit emission order. It accumulates everything it finds so the operator
// fixes the manifest in one pass.
func (m *Manifest) Validate() (err error) {
	if m.Version != 1 {
		err = multierr.Append(err, fmt.Errorf("unsupported manifest version %d", m.Version))
	}
	if len(m.Entry) == 0 {
		err = multierr.Append(err, errors.New("aggregator entry name is not set"))
	}
	if len(m.Sections) == 0 {
		err = multierr.Append(err, errors.New("manifest has no sections"))
	}

	seen := make(map[string]bool, len(m.Sections))
	for _, s := range m.Sections {
		if er := checkPath(s.Path); er != nil {
			err = multierr.Append(err, er)
		}
		if seen[s.Path] {
			err = multierr.Append(err, fmt.Errorf("%w: %s", ErrDuplicatePath, s.Path))
		}
		seen[s.Path] = true

		if s.Start < 1 || s.End <= s.Start {
			err = multierr.Append(err, fmt.Errorf("%w: %s %s", ErrBadRange, s.Path, Span{s.Start, s.End}))
		}
	}

	if len(m.Order) > 0 {
		err = multierr.Append(err, m.checkParity(seen))
	}
	return err
}

// checkParity verifies that the explicit emission order references exactly
// the manifest path set, with no duplicates and no dangling imports.
func (m *Manifest) checkParity(sections map[string]bool) (err error) {
	ordered := make(map[string]bool, len(m.Order))
	for _, p := range m.Order {
		if ordered[p] {
			err = multierr.Append(err, fmt.Errorf("%w: %s imported twice", ErrOrderParity, p))
		}
		ordered[p] = true
		if !sections[p] {
			err = multierr.Append(err, fmt.Errorf("%w: %s has no section", ErrOrderParity, p))
		}
	}
	for p := range sections {
		if !ordered[p] {
			err = multierr.Append(err, fmt.Errorf("%w: %s is never imported", ErrOrderParity, p))
		}
	}
	return err
}

// ValidateRanges performs checks against the actual document: every range
// must fit into lineCount lines and no two ranges may share a line. Meant to
// run before any file is written.
func (m *Manifest) ValidateRanges(lineCount int) (err error) {
	for _, s := range m.Sections {
		if s.Start > lineCount || s.End > lineCount+1 {
			err = multierr.Append(err, fmt.Errorf("%w: %s %s, document has %d lines", ErrRangeOutOfBounds, s.Path, Span{s.Start, s.End}, lineCount))
		}
	}

	byStart := m.sortedByStart()
	for i := 1; i < len(byStart); i++ {
		if byStart[i].Start < byStart[i-1].End {
			err = multierr.Append(err, fmt.Errorf("%w: %s %s and %s %s",
				ErrOverlap,
				byStart[i-1].Path, Span{byStart[i-1].Start, byStart[i-1].End},
				byStart[i].Path, Span{byStart[i].Start, byStart[i].End}))
		}
	}
	return err
}

// Gaps returns source line spans not covered by any section. Assumes ranges
// already validated - overlapping sections may hide a gap behind them.
func (m *Manifest) Gaps(lineCount int) []Span {
	var gaps []Span

	next := 1
	for _, s := range m.sortedByStart() {
		if s.Start > next {
			gaps = append(gaps, Span{next, min(s.Start, lineCount+1)})
		}
		if s.End > next {
			next = s.End
		}
	}
	if next <= lineCount {
		gaps = append(gaps, Span{next, lineCount + 1})
	}
	return gaps
}

func (m *Manifest) sortedByStart() []Section {
	sorted := append([]Section(nil), m.Sections...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
	return sorted
}

// checkPath guards against manifest paths escaping the output tree.
func checkPath(p string) error {
	switch {
	case len(p) == 0:
		return fmt.Errorf("%w: empty", ErrBadPath)
	case strings.Contains(p, `\`):
		return fmt.Errorf("%w: %s uses backslashes, manifest paths are always slash separated", ErrBadPath, p)
	case path.IsAbs(p):
		return fmt.Errorf("%w: %s is absolute", ErrBadPath, p)
	case path.Clean(p) != p || p == ".." || strings.HasPrefix(p, "../"):
		return fmt.Errorf("%w: %s is not a clean relative path", ErrBadPath, p)
	}
	return nil
}
