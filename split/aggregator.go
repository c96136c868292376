package split

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"cssmod/manifest"
)

// renderAggregator produces the entry-point file content: a fixed banner
// followed by one import directive per module in curated emission order,
// category groups separated by a blank line.
func renderAggregator(m *manifest.Manifest) []byte {
	title := m.Title
	if len(title) == 0 {
		title = "Modular stylesheet"
	}

	var b strings.Builder
	b.WriteString("/* ==========================================\n")
	fmt.Fprintf(&b, "   %s\n", title)
	b.WriteString("   Compiled via PostCSS @import\n")
	b.WriteString("   ========================================== */\n")

	prevCat := ""
	for i, p := range m.EmissionOrder() {
		s, _ := m.Section(p)
		if i == 0 || s.Category() != prevCat {
			b.WriteByte('\n')
		}
		prevCat = s.Category()
		fmt.Fprintf(&b, "@import %q;\n", p)
	}
	return []byte(b.String())
}

// WriteAggregator emits the entry-point file at the root of the module tree
// and returns its path.
func WriteAggregator(m *manifest.Manifest, outDir string, log *zap.Logger) (string, error) {
	dst := filepath.Join(outDir, filepath.FromSlash(m.Entry))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrDestinationUnwritable, dst, err)
	}
	if err := os.WriteFile(dst, renderAggregator(m), 0644); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrDestinationUnwritable, dst, err)
	}
	log.Info("Aggregator written", zap.String("file", dst), zap.Int("modules", len(m.Sections)))
	return dst, nil
}
