package split

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// diffContextLines controls unified diff hunks in the mismatch diagnostic.
const diffContextLines = 3

// diffExcerptLines caps the diagnostic size - the full diff of a many
// thousand line stylesheet helps nobody on a console.
const diffExcerptLines = 40

// Outcome is the result of comparing the bundler-compiled candidate against
// the original source.
type Outcome struct {
	Status       Status
	Missing      string // which artifact is absent when Status is missing
	OriginalSize int64
	CompiledSize int64
	Diff         string // unified diff excerpt when Status is mismatch
}

// Verify reads both files as raw bytes and compares them. The bundler has to
// be run by the operator beforehand - Verify never invokes it. A missing file
// yields StatusMissing, not an error: "cannot verify" is a reported outcome,
// same as "differs".
func Verify(originalPath, compiledPath string) (Outcome, error) {
	original, err := os.ReadFile(originalPath)
	if os.IsNotExist(err) {
		return Outcome{Status: StatusMissing, Missing: originalPath}, nil
	} else if err != nil {
		return Outcome{}, fmt.Errorf("unable to read original: %w", err)
	}

	compiled, err := os.ReadFile(compiledPath)
	if os.IsNotExist(err) {
		return Outcome{Status: StatusMissing, Missing: compiledPath}, nil
	} else if err != nil {
		return Outcome{}, fmt.Errorf("unable to read compiled candidate: %w", err)
	}

	out := Outcome{
		OriginalSize: int64(len(original)),
		CompiledSize: int64(len(compiled)),
	}

	if bytes.Equal(original, compiled) {
		out.Status = StatusVerified
		return out, nil
	}

	out.Status = StatusMismatch
	out.Diff = diffExcerpt(originalPath, compiledPath, original, compiled)
	return out, nil
}

// diffExcerpt renders a truncated unified diff for mismatch diagnosis.
func diffExcerpt(aName, bName string, a, b []byte) string {
	u := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(a)),
		B:        difflib.SplitLines(string(b)),
		FromFile: aName,
		ToFile:   bName,
		Context:  diffContextLines,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil || len(s) == 0 {
		return ""
	}

	lines := strings.SplitAfter(s, "\n")
	if len(lines) > diffExcerptLines {
		s = strings.Join(lines[:diffExcerptLines], "") + fmt.Sprintf("... (%d more lines)\n", len(lines)-diffExcerptLines)
	}
	return s
}
