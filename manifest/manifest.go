// Package manifest reads the gleam.toml project manifest, as far as
// gloss needs it: the project name and the dependency tables the
// backend precondition check consults.
package manifest

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/abs0luty/gloss/errors"
)

// Filename is the Gleam project manifest filename.
const Filename = "gleam.toml"

// Manifest is a parsed gleam.toml.
type Manifest struct {
	Name            string            `toml:"name"`
	Dependencies    map[string]string `toml:"dependencies"`
	DevDependencies map[string]string `toml:"dev-dependencies"`
}

// Load reads the manifest from the project root. A missing manifest is
// a config error: without one there is no Gleam project to generate
// into.
func Load(projectRoot string) (*Manifest, error) {
	path := filepath.Join(projectRoot, Filename)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "failed to read %s", path), errors.ErrConfig)
	}

	var m Manifest
	if err := toml.Unmarshal(content, &m); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "failed to parse %s", path), errors.ErrConfig)
	}
	return &m, nil
}

// HasDependency reports whether the package appears in either the
// dependencies or the dev-dependencies table.
func (m *Manifest) HasDependency(pkg string) bool {
	if _, ok := m.Dependencies[pkg]; ok {
		return true
	}
	_, ok := m.DevDependencies[pkg]
	return ok
}
