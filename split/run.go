package split

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"cssmod/manifest"
	"cssmod/state"
	"cssmod/utils/debug"
)

// Run implements the "split" subcommand: extraction pass, aggregator
// generation and optionally verification against the bundler-compiled
// candidate.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("split")

	src, dst, err := resolvePaths(cmd, env)
	if err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	m, err := loadManifest(cmd, env)
	if err != nil {
		return err
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	doc, err := ReadDocument(src)
	if err != nil {
		return err
	}
	env.Rpt.Store("source.css", src)

	if err := validateAgainstDocument(m, doc, env.Cfg.Document.AllowGaps, log); err != nil {
		return err
	}

	res, err := Extract(doc, m, dst, log)
	if err != nil {
		return err
	}

	entry, err := WriteAggregator(m, dst, log)
	if err != nil {
		return err
	}
	env.Rpt.Store("index.css", entry)
	env.Rpt.Store("modules", dst)

	log.Info("Extraction completed", zap.Int("source_lines", res.TotalLines), zap.Int("files", len(res.Files)))
	logFileSummary(res, log)

	if !cmd.Bool("verify") {
		printNextSteps(entry, src)
		return nil
	}
	return runVerification(src, env.Cfg.Document.Compiled(), env, log)
}

// Check implements the "check" subcommand: full manifest validation against
// the source document without writing anything.
func Check(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("check")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		src = env.Cfg.Document.Source
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	m, err := loadManifest(cmd, env)
	if err != nil {
		return err
	}

	doc, err := ReadDocument(src)
	if err != nil {
		return err
	}

	if err := validateAgainstDocument(m, doc, env.Cfg.Document.AllowGaps, log); err != nil {
		return err
	}

	if !m.SourceOrdered() {
		log.Warn("Aggregator order does not follow source line order, compiled output cannot be byte-identical to original")
	}

	fmt.Fprint(os.Stdout, manifestTree(m, doc))
	log.Info("Manifest is valid", zap.String("source", src), zap.Int("lines", doc.LineCount()), zap.Int("sections", len(m.Sections)))
	return nil
}

func resolvePaths(cmd *cli.Command, env *state.LocalEnv) (src, dst string, err error) {
	src = cmd.Args().Get(0)
	if len(src) == 0 {
		src = env.Cfg.Document.Source
	}
	if len(src) == 0 {
		return "", "", errors.New("no input source has been specified")
	}

	dst = cmd.Args().Get(1)
	if len(dst) == 0 {
		dst = env.Cfg.Document.OutputDir
	}
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return "", "", fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	return src, dst, nil
}

func loadManifest(cmd *cli.Command, env *state.LocalEnv) (*manifest.Manifest, error) {
	path := cmd.String("manifest")
	if len(path) == 0 {
		path = env.Cfg.Document.ManifestPath
	}
	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	if len(path) > 0 {
		env.Rpt.Store("manifest.yaml", path)
	}
	return m, nil
}

// validateAgainstDocument runs range validation and the coverage check. Any
// defect is reported before a single file is written.
func validateAgainstDocument(m *manifest.Manifest, doc *Document, allowGaps bool, log *zap.Logger) error {
	if err := m.ValidateRanges(doc.LineCount()); err != nil {
		return fmt.Errorf("manifest does not fit document '%s': %w", doc.Path(), err)
	}

	gaps := m.Gaps(doc.LineCount())
	if len(gaps) == 0 {
		return nil
	}
	for _, g := range gaps {
		log.Warn("Source lines not covered by any section", zap.Stringer("lines", g))
	}
	if !allowGaps {
		return fmt.Errorf("%w: %d gap(s), see log for details", manifest.ErrCoverageGap, len(gaps))
	}
	return nil
}

// logFileSummary dumps written modules in natural order at debug level.
func logFileSummary(res *Result, log *zap.Logger) {
	if !log.Core().Enabled(zap.DebugLevel) {
		return
	}

	files := append([]ModuleFile(nil), res.Files...)
	sort.Slice(files, func(i, j int) bool { return natural.Less(files[i].Module, files[j].Module) })
	for _, f := range files {
		log.Debug("Created", zap.String("module", f.Module), zap.String("file", f.File), zap.Int("lines", f.Lines))
	}
}

// manifestTree renders sections grouped the way the aggregator will import
// them.
func manifestTree(m *manifest.Manifest, doc *Document) string {
	tw := debug.NewTreeWriter()

	tw.Line(0, "%s (%d lines, %d sections)", doc.Path(), doc.LineCount(), len(m.Sections))
	tw.TextBlock(1, "title", m.Title)
	tw.TextBlock(1, "entry", m.Entry)
	prevCat := ""
	for i, p := range m.EmissionOrder() {
		s, ok := m.Section(p)
		if !ok {
			// parity was validated, still do not panic on a stale order entry
			tw.Line(1, "%s <no section>", p)
			continue
		}
		if cat := s.Category(); i == 0 || cat != prevCat {
			prevCat = cat
			if len(cat) == 0 {
				cat = "(uncategorized)"
			}
			tw.Line(1, "%s", cat)
		}
		tw.Line(2, "%-40s %s (%d lines)", s.Path, manifest.Span{Start: s.Start, End: s.End}, s.Lines())
	}
	return tw.String()
}

func runVerification(src, compiled string, env *state.LocalEnv, log *zap.Logger) error {
	out, err := Verify(src, compiled)
	if err != nil {
		return err
	}
	env.Rpt.Store("compiled.css", compiled)

	switch out.Status {
	case StatusVerified:
		log.Info("Compiled stylesheet is byte-identical to original",
			zap.String("original", src), zap.String("compiled", compiled), zap.Int64("bytes", out.OriginalSize))
		return nil
	case StatusMissing:
		log.Error("Verification artifact is missing, run the bundler first", zap.String("missing", out.Missing))
		return fmt.Errorf("%w: %s", ErrVerificationMissing, out.Missing)
	case StatusMismatch:
		log.Error("Compiled stylesheet differs from original",
			zap.Int64("original_bytes", out.OriginalSize), zap.Int64("compiled_bytes", out.CompiledSize))
		if len(out.Diff) > 0 {
			fmt.Fprint(os.Stderr, out.Diff)
			env.Rpt.StoreData("verify.diff", []byte(out.Diff))
		}
		return fmt.Errorf("%w: original %d bytes, compiled %d bytes", ErrVerificationMismatch, out.OriginalSize, out.CompiledSize)
	default:
		// this should never happen
		panic("unexpected verification status")
	}
}

// printNextSteps tells the operator how to compile and verify the freshly
// generated tree. The bundler is never invoked by the program itself.
func printNextSteps(entry, src string) {
	compiled := src + ".compiled"
	fmt.Fprintf(os.Stdout, `
Next steps:
  1. Install PostCSS: npm install -D postcss postcss-cli postcss-import
  2. Compile: npx postcss %s -o %s
  3. Verify: %s
  4. Replace: mv %s %s
  5. Update HTML to link %s instead of %s
`,
		entry, compiled,
		"cssmod split --verify",
		compiled, src,
		filepath.ToSlash(entry), src)
}
