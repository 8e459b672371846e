package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abs0luty/gloss/errors"
)

// ImportEntry is one import the generated code needs, keyed by module
// path. Exposed types and values accumulate as generation discovers
// them.
type ImportEntry struct {
	ModulePath string
	Alias      string
	Values     map[string]bool
	Types      map[string]bool
}

// ModuleAlias derives the import alias generated code uses for a
// module path: every non-alphanumeric character becomes an underscore.
func ModuleAlias(modulePath string) string {
	var b strings.Builder
	for _, r := range modulePath {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "module"
	}
	return b.String()
}

type importMap map[string]*ImportEntry

func (m importMap) ensure(modulePath string) *ImportEntry {
	if e, ok := m[modulePath]; ok {
		return e
	}
	e := &ImportEntry{
		ModulePath: modulePath,
		Alias:      ModuleAlias(modulePath),
		Values:     map[string]bool{},
		Types:      map[string]bool{},
	}
	m[modulePath] = e
	return e
}

func (m importMap) merge(src importMap) {
	for path, entry := range src {
		existing, ok := m[path]
		if !ok {
			m[path] = entry
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

func (m importMap) addTypeImport(modulePath, typeName string, constructors []string) {
	e := m.ensure(modulePath)
	e.Types[typeName] = true
	for _, c := range constructors {
		e.Values[c] = true
	}
}

func (m importMap) clone() importMap {
	out := make(importMap, len(m))
	for path, e := range m {
		c := &ImportEntry{
			ModulePath: e.ModulePath,
			Alias:      e.Alias,
			Values:     make(map[string]bool, len(e.Values)),
			Types:      make(map[string]bool, len(e.Types)),
		}
		for v := range e.Values {
			c.Values[v] = true
		}
		for t := range e.Types {
			c.Types[t] = true
		}
		out[path] = c
	}
	return out
}

func (m importMap) sortedPaths() []string {
	paths := make([]string, 0, len(m))
	for p := range m {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// checkOptionAlias rejects generation when the alias "option" is taken
// by a module other than gleam/option while option helpers are in use.
func checkOptionAlias(m importMap) error {
	for _, path := range m.sortedPaths() {
		e := m[path]
		if e.Alias == "option" && e.ModulePath != "gleam/option" {
			return errors.WithHint(
				errors.Generationf("cannot generate code because import alias `option` is already used for `%s`", e.ModulePath),
				"rename the conflicting import or its alias before running gloss")
		}
	}
	return nil
}

// renderImports builds the import block for a generated unit: the
// decoder and backend imports first, sorted and deduplicated, then the
// accumulated custom imports in module-path order.
func renderImports(hasDecoder, decoderUsesOptionHelpers, hasEncoder bool, backendImports []string, custom importMap) string {
	var lines []string

	if hasDecoder {
		lines = append(lines, "import gleam/dynamic/decode")
		if decoderUsesOptionHelpers {
			lines = append(lines, "import gleam/option")
		}
	}
	if hasEncoder {
		lines = append(lines, backendImports...)
	}

	sort.Strings(lines)
	lines = dedupStrings(lines)

	for _, path := range custom.sortedPaths() {
		e := custom[path]
		line := "import " + e.ModulePath

		var exposures []string
		for _, t := range sortedKeys(e.Types) {
			exposures = append(exposures, "type "+t)
		}
		exposures = append(exposures, sortedKeys(e.Values)...)
		if len(exposures) > 0 {
			line += ".{" + strings.Join(exposures, ", ") + "}"
		}

		defaultAlias := e.ModulePath
		if i := strings.LastIndex(e.ModulePath, "/"); i >= 0 {
			defaultAlias = e.ModulePath[i+1:]
		}
		if e.Alias != defaultAlias {
			line += fmt.Sprintf(" as %s", e.Alias)
		}

		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

func dedupStrings(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
