// Package manifest defines the declarative map driving the stylesheet split:
// which source line ranges become which module files and in what order the
// aggregator re-imports them.
package manifest

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

//go:embed manifest.yaml
var defaultManifest []byte

type (
	// Section maps a module path to a half-open range [Start, End) of
	// 1-based source line numbers.
	Section struct {
		Path  string `yaml:"path"`
		Start int    `yaml:"start"`
		End   int    `yaml:"end"`
	}

	// Manifest is an ordered collection of sections plus the curated
	// aggregator emission order. It is immutable configuration - engine
	// receives it fully built and never changes it.
	Manifest struct {
		Version    int       `yaml:"version"`
		Title      string    `yaml:"title"`
		Entry      string    `yaml:"entry"`
		Categories []string  `yaml:"categories,omitempty"`
		Sections   []Section `yaml:"sections"`
		// Order, when present, is the explicit aggregator emission order.
		// When absent the order is derived: categories in Categories order,
		// sections within a category in declaration order.
		Order []string `yaml:"order,omitempty"`
	}
)

// Lines returns the number of source lines the section covers.
func (s Section) Lines() int {
	return s.End - s.Start
}

// Category returns path segment before the first separator, empty string for
// a bare file name.
func (s Section) Category() string {
	if i := strings.IndexByte(s.Path, '/'); i >= 0 {
		return s.Path[:i]
	}
	return ""
}

// Parse decodes manifest data. Unknown fields are rejected so a typo in the
// manifest file cannot silently drop a section.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest data: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads manifest from the file at the given path. Empty path selects the
// manifest embedded into the program.
func Load(path string) (*Manifest, error) {
	if len(path) == 0 {
		return Parse(defaultManifest)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest file '%s': %w", path, err)
	}
	return m, nil
}

// EmissionOrder returns module paths in curated aggregator order.
func (m *Manifest) EmissionOrder() []string {
	if len(m.Order) > 0 {
		return append([]string(nil), m.Order...)
	}

	order := make([]string, 0, len(m.Sections))
	for _, cat := range m.Categories {
		for _, s := range m.Sections {
			if s.Category() == cat {
				order = append(order, s.Path)
			}
		}
	}
	// sections outside of listed categories keep declaration order at the end
	listed := make(map[string]bool, len(m.Categories))
	for _, cat := range m.Categories {
		listed[cat] = true
	}
	for _, s := range m.Sections {
		if !listed[s.Category()] {
			order = append(order, s.Path)
		}
	}
	return order
}

// SourceOrdered reports whether emission order follows ascending source line
// order. Only then concatenating modules in aggregator order can reproduce
// the original document byte for byte.
func (m *Manifest) SourceOrdered() bool {
	starts := make(map[string]int, len(m.Sections))
	for _, s := range m.Sections {
		starts[s.Path] = s.Start
	}
	prev := 0
	for _, p := range m.EmissionOrder() {
		if starts[p] < prev {
			return false
		}
		prev = starts[p]
	}
	return true
}

// Section returns the section for the given module path.
func (m *Manifest) Section(path string) (Section, bool) {
	for _, s := range m.Sections {
		if s.Path == path {
			return s, true
		}
	}
	return Section{}, false
}
