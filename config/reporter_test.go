package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func prepareReport(t *testing.T) (*Report, string) {
	t.Helper()

	dst := filepath.Join(t.TempDir(), "report.zip")
	conf := &ReporterConfig{Destination: dst}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	return r, dst
}

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("Report is not a valid zip archive: %v", err)
	}
	defer zr.Close()

	entries := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Unable to open archive entry %q: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("Unable to read archive entry %q: %v", f.Name, err)
		}
		entries[f.Name] = string(data)
	}
	return entries
}

func TestReportStoreAndClose(t *testing.T) {
	r, dst := prepareReport(t)

	srcFile := filepath.Join(t.TempDir(), "style.css")
	if err := os.WriteFile(srcFile, []byte("body { margin: 0; }\n"), 0644); err != nil {
		t.Fatalf("Failed to write source file: %v", err)
	}

	r.Store("source.css", srcFile)
	r.StoreData("verify.diff", []byte("--- a\n+++ b\n"))

	if len(r.Name()) == 0 {
		t.Error("Name() returned empty string for prepared report")
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	entries := readArchive(t, dst)

	if _, ok := entries["MANIFEST"]; !ok {
		t.Error("Report archive has no MANIFEST")
	}
	if got := entries["source.css"]; got != "body { margin: 0; }\n" {
		t.Errorf("source.css content = %q", got)
	}
	if got := entries["verify.diff"]; got != "--- a\n+++ b\n" {
		t.Errorf("verify.diff content = %q", got)
	}
}

func TestReportStoreAbsentFile(t *testing.T) {
	r, dst := prepareReport(t)

	// absent files are silently skipped on finalize
	r.Store("missing.css", filepath.Join(t.TempDir(), "no-such-file.css"))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	entries := readArchive(t, dst)
	if _, ok := entries["missing.css"]; ok {
		t.Error("Absent file should not be present in the archive")
	}
	if _, ok := entries["MANIFEST"]; !ok {
		t.Error("Report archive has no MANIFEST")
	}
}

func TestReportStoreDir(t *testing.T) {
	r, dst := prepareReport(t)

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "base"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "base", "reset.css"), []byte("* { box-sizing: border-box; }\n"), 0644); err != nil {
		t.Fatal(err)
	}

	r.Store("modules", dir)

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	entries := readArchive(t, dst)
	if _, ok := entries["modules/base/reset.css"]; !ok {
		t.Errorf("Directory content is missing from the archive, have %v", keys(entries))
	}
}

func TestReportNilTolerance(t *testing.T) {
	var r *Report

	// all methods must be safe on uninitialized report
	r.Store("name", "path")
	r.StoreData("name", []byte("data"))
	if n := r.Name(); n != "" {
		t.Errorf("Name() on nil report = %q, want empty", n)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() on nil report error = %v", err)
	}

	r = &Report{}
	if err := r.Close(); err != nil {
		t.Errorf("Close() on report without file error = %v", err)
	}
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
