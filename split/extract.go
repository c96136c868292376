package split

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"cssmod/manifest"
)

// ModuleFile describes one written output module.
type ModuleFile struct {
	Module string // module path as named in the manifest
	File   string // path on disk
	Lines  int
}

// Result summarizes an extraction pass.
type Result struct {
	TotalLines int
	Files      []ModuleFile
}

// Extract writes one file per manifest section into outDir, creating category
// directories as needed and fully replacing existing files. Sections are
// processed in manifest declaration order. A failed write does not stop the
// pass: failures are collected and returned together, so one bad destination
// does not hide the state of the rest of the tree.
//
// Caller is responsible for validating the manifest against the document
// first - Extract assumes every range is in bounds.
func Extract(doc *Document, m *manifest.Manifest, outDir string, log *zap.Logger) (*Result, error) {
	res := &Result{TotalLines: doc.LineCount()}

	var err error
	for _, s := range m.Sections {
		content := strings.Join(doc.Slice(s.Start, s.End), "")

		dst := filepath.Join(outDir, filepath.FromSlash(s.Path))
		if er := os.MkdirAll(filepath.Dir(dst), 0755); er != nil {
			err = multierr.Append(err, fmt.Errorf("%w: %s: %w", ErrDestinationUnwritable, dst, er))
			continue
		}
		if er := os.WriteFile(dst, []byte(content), 0644); er != nil {
			err = multierr.Append(err, fmt.Errorf("%w: %s: %w", ErrDestinationUnwritable, dst, er))
			continue
		}

		res.Files = append(res.Files, ModuleFile{Module: s.Path, File: dst, Lines: s.Lines()})
		log.Info("Module written", zap.String("file", dst), zap.Int("lines", s.Lines()))
	}
	return res, err
}
