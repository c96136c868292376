package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}

	if len(cfg.Document.Source) == 0 {
		t.Error("Default source path is empty")
	}
	if len(cfg.Document.OutputDir) == 0 {
		t.Error("Default output directory is empty")
	}
	if cfg.Document.AllowGaps {
		t.Error("Gaps should not be allowed by default")
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
document:
  source: web/app.css
  output_dir: web/modules
  manifest_path: web/sections.yaml
  compiled_path: web/app.css.new
  allow_gaps: true
logging:
  console:
    level: debug
  file:
    level: normal
    destination: /tmp/cssmod-test.log
    mode: append
reporting:
  destination: /tmp/cssmod-test-report.zip
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}

	if cfg.Document.Source != "web/app.css" {
		t.Errorf("Source = %q, want %q", cfg.Document.Source, "web/app.css")
	}

	if cfg.Document.ManifestPath != "web/sections.yaml" {
		t.Errorf("ManifestPath = %q, want %q", cfg.Document.ManifestPath, "web/sections.yaml")
	}

	if !cfg.Document.AllowGaps {
		t.Error("Expected AllowGaps to be true")
	}

	if cfg.Logging.ConsoleLogger.Level != "debug" {
		t.Errorf("Console level = %q, want %q", cfg.Logging.ConsoleLogger.Level, "debug")
	}

	if cfg.Logging.FileLogger.Mode != "append" {
		t.Errorf("File mode = %q, want %q", cfg.Logging.FileLogger.Mode, "append")
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	_, err := LoadConfiguration("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `version: 1
document:
  source: web/app.css
  invalid indent
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadConfiguration_UnknownFields(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "unknown.yaml")

	configWithUnknown := `version: 1
unknown_field: value
document:
  source: web/app.css
`

	if err := os.WriteFile(configPath, []byte(configWithUnknown), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Error("Expected error for unknown fields")
	}
}

func TestLoadConfiguration_ValidationError(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_values.yaml")

	// Invalid version number
	configWithInvalidVersion := `version: 2
document:
  source: web/app.css
`

	if err := os.WriteFile(configPath, []byte(configWithInvalidVersion), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Error("Expected validation error for invalid version")
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	if len(data) == 0 {
		t.Error("Prepare() returned empty data")
	}

	// Verify it's valid YAML by trying to unmarshal
	cfg := &Config{}
	_, err = unmarshalConfig(data, cfg, true)
	if err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Document.Source = "assets/site.css"

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	if !strings.Contains(string(data), "assets/site.css") {
		t.Error("Dumped configuration does not contain set values")
	}

	// Dump output must load back unchanged
	back, err := unmarshalConfig(data, &Config{}, true)
	if err != nil {
		t.Fatalf("Dumped configuration does not load back: %v", err)
	}
	if back.Document.Source != cfg.Document.Source {
		t.Errorf("Source after round-trip = %q, want %q", back.Document.Source, cfg.Document.Source)
	}
}

func TestDocumentConfig_Compiled(t *testing.T) {
	c := DocumentConfig{Source: "web/app.css"}
	if got := c.Compiled(); got != "web/app.css.compiled" {
		t.Errorf("Compiled() = %q, want %q", got, "web/app.css.compiled")
	}

	c.CompiledPath = "out/candidate.css"
	if got := c.Compiled(); got != "out/candidate.css" {
		t.Errorf("Compiled() = %q, want %q", got, "out/candidate.css")
	}
}
