// Package gleamparser extracts type declarations, imports, and gloss
// directives from the .gleam sources of a project. It parses the
// subset of the language gloss needs (imports and custom types) and
// skips everything else.
package gleamparser

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/abs0luty/gloss/errors"
	"github.com/abs0luty/gloss/gleam"
)

// ParseProject walks projectRoot/src for .gleam files and parses each
// one. Files are returned in path order. Parse failures are collected
// per file and reported together.
func ParseProject(projectRoot string, log *zap.SugaredLogger) ([]*gleam.Module, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	srcDir := filepath.Join(projectRoot, "src")
	var paths []string
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".gleam" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "failed to scan %s", srcDir), errors.ErrParse)
	}
	sort.Strings(paths)

	var modules []*gleam.Module
	var fileErrs []error
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			fileErrs = append(fileErrs, errors.Mark(errors.Wrapf(err, "failed to read %s", path), errors.ErrParse))
			continue
		}

		importPath, err := moduleImportPath(srcDir, path)
		if err != nil {
			fileErrs = append(fileErrs, err)
			continue
		}

		m, err := ParseSource(path, importPath, string(content), log)
		if err != nil {
			fileErrs = append(fileErrs, err)
			continue
		}

		log.Debugw("parsed module", "path", path, "module", importPath, "types", len(m.Types))
		modules = append(modules, m)
	}

	return modules, errors.Join(fileErrs...)
}

// moduleImportPath converts a source file path to the Gleam module
// path: the path under src, slash separated, extension stripped.
func moduleImportPath(srcDir, path string) (string, error) {
	rel, err := filepath.Rel(srcDir, path)
	if err != nil {
		return "", errors.Mark(errors.Wrapf(err, "file %s is not under %s", path, srcDir), errors.ErrParse)
	}
	rel = strings.TrimSuffix(rel, ".gleam")
	return filepath.ToSlash(rel), nil
}
