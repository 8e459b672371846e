// Package writer routes generated code to disk: separate files per
// module, split encoder/decoder files, or appended to the annotated
// source behind a marker line. Dry runs print what would be written
// instead of touching anything.
package writer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/abs0luty/gloss/codegen"
	"github.com/abs0luty/gloss/config"
	"github.com/abs0luty/gloss/errors"
)

// Marker separates handwritten source from the generated block when
// output is appended in place.
const Marker = "// ========== Generated by gloss =========="

const markerSeparator = "\n\n" + Marker + "\n\n"

// Writer writes generated units for a project.
type Writer struct {
	ProjectRoot string
	DryRun      bool
	Verbose     bool

	// Out receives dry-run listings and verbose progress lines.
	Out io.Writer

	Log *zap.SugaredLogger
}

// New returns a writer. Nil Out defaults to os.Stdout, nil Log to nop.
func New(projectRoot string, dryRun, verbose bool, out io.Writer, log *zap.SugaredLogger) *Writer {
	if out == nil {
		out = os.Stdout
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Writer{ProjectRoot: projectRoot, DryRun: dryRun, Verbose: verbose, Out: out, Log: log}
}

// WriteOutputs writes every generated unit, file by file in path
// order. Units whose output config keeps separate_files off are merged
// and appended to their source file.
func (w *Writer) WriteOutputs(outputs map[string][]*codegen.GeneratedUnit) error {
	paths := make([]string, 0, len(outputs))
	for p := range outputs {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, sourceFile := range paths {
		moduleName := strings.TrimSuffix(filepath.Base(sourceFile), ".gleam")

		var inline []*codegen.GeneratedUnit
		for _, unit := range outputs[sourceFile] {
			switch {
			case !unit.Output.SeparateFiles:
				inline = append(inline, unit)
			case unit.Output.SeparateEncoderDecoder:
				if err := w.writeSplit(sourceFile, moduleName, unit); err != nil {
					return err
				}
			default:
				if err := w.writeCombined(sourceFile, moduleName, unit); err != nil {
					return err
				}
			}
		}

		if len(inline) > 0 {
			if err := w.writeInline(sourceFile, inline); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Writer) writeCombined(sourceFile, moduleName string, unit *codegen.GeneratedUnit) error {
	code := unit.CombinedCode(true, true)
	filename := config.RenderFilePattern(unit.Output.FilePattern, moduleName)
	outputPath := ResolveOutputPath(w.ProjectRoot, sourceFile, unit.Output.Directory, unit.PathMode, filename)
	return w.writeFile(moduleName, sourceFile, outputPath, code)
}

func (w *Writer) writeSplit(sourceFile, moduleName string, unit *codegen.GeneratedUnit) error {
	decoderCode := unit.DecoderCode(true, true)
	if hasBody(decoderCode) {
		filename := config.RenderFilePattern(unit.Output.DecoderFilePattern, moduleName)
		outputPath := ResolveOutputPath(w.ProjectRoot, sourceFile, unit.Output.Directory, unit.PathMode, filename)
		if err := w.writeFile(moduleName+" (decoder)", sourceFile, outputPath, decoderCode); err != nil {
			return err
		}
	}

	encoderCode := unit.EncoderCode(true, true)
	if hasBody(encoderCode) {
		filename := config.RenderFilePattern(unit.Output.EncoderFilePattern, moduleName)
		outputPath := ResolveOutputPath(w.ProjectRoot, sourceFile, unit.Output.Directory, unit.PathMode, filename)
		if err := w.writeFile(moduleName+" (encoder)", sourceFile, outputPath, encoderCode); err != nil {
			return err
		}
	}
	return nil
}

// hasBody reports whether rendered code contains anything besides the
// header comment and imports, i.e. at least one definition.
func hasBody(code string) bool {
	return strings.Contains(code, "pub fn ")
}

func (w *Writer) writeFile(label, sourceFile, outputPath, code string) error {
	if w.Verbose || w.DryRun {
		fmt.Fprintf(w.Out, "Module: %s\n", label)
		fmt.Fprintf(w.Out, "Source: %s\n", sourceFile)
		fmt.Fprintf(w.Out, "Output: %s\n", outputPath)
		fmt.Fprintln(w.Out, strings.Repeat("=", 80))
	}

	if w.DryRun {
		fmt.Fprintf(w.Out, "%s\n", code)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", filepath.Dir(outputPath))
	}
	if err := os.WriteFile(outputPath, []byte(code), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", outputPath)
	}

	w.Log.Debugw("wrote generated file", "path", outputPath)
	if w.Verbose {
		fmt.Fprintf(w.Out, "✓ Written to: %s\n\n", outputPath)
	}
	return nil
}

// writeInline merges the inline units of one file and appends the
// combined code after the marker, replacing any previously generated
// block.
func (w *Writer) writeInline(sourceFile string, units []*codegen.GeneratedUnit) error {
	combined := units[0]
	for _, unit := range units[1:] {
		combined.Types = append(combined.Types, unit.Types...)
		mergeImports(combined.Imports, unit.Imports)
		for id, b := range unit.Backends {
			combined.Backends[id] = b
		}
		combined.DecoderUsesOptionHelpers = combined.DecoderUsesOptionHelpers || unit.DecoderUsesOptionHelpers
	}

	code := combined.CombinedCode(true, false)

	if w.Verbose || w.DryRun {
		fmt.Fprintf(w.Out, "File: %s\n", sourceFile)
		fmt.Fprintln(w.Out, strings.Repeat("=", 80))
	}
	if w.DryRun {
		fmt.Fprintf(w.Out, "%s\n", code)
		return nil
	}

	existing, err := os.ReadFile(sourceFile)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", sourceFile)
	}

	content := string(existing)
	if i := strings.Index(content, markerSeparator); i >= 0 {
		content = content[:i]
	}
	content += markerSeparator + code

	if err := os.WriteFile(sourceFile, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", sourceFile)
	}

	w.Log.Debugw("appended generated block", "path", sourceFile)
	if w.Verbose {
		fmt.Fprintf(w.Out, "✓ Appended to: %s\n\n", sourceFile)
	}
	return nil
}

func mergeImports(dst, src map[string]*codegen.ImportEntry) {
	for path, entry := range src {
		existing, ok := dst[path]
		if !ok {
			dst[path] = entry
			continue
		}
		for v := range entry.Values {
			existing.Values[v] = true
		}
		for t := range entry.Types {
			existing.Types[t] = true
		}
	}
}

// ResolveOutputPath turns a unit's directory setting and path mode
// into the absolute output path for one generated file. An empty
// directory places the file next to its source.
func ResolveOutputPath(projectRoot, sourceFile, outputDir string, pathMode config.PathMode, filename string) string {
	if outputDir == "" {
		return filepath.Join(filepath.Dir(sourceFile), filename)
	}

	mode := config.InferPathMode(outputDir, pathMode)
	clean := config.CleanDirectory(outputDir)

	base := filepath.Dir(sourceFile)
	if mode == config.ProjectRelative {
		base = projectRoot
	}
	if clean == "" {
		return filepath.Join(base, filename)
	}
	return filepath.Join(base, filepath.FromSlash(clean), filename)
}
