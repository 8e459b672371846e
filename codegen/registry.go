package codegen

import (
	"strings"

	"github.com/abs0luty/gloss/gleam"
)

// Entry is one annotated type in the cross-module registry. Canonical
// function names are filled in during the naming pass, before any code
// is generated, so cross-file references always agree with the
// definitions they point at.
type Entry struct {
	ModulePath string
	TypeName   string
	Decl       *gleam.TypeDecl

	GeneratesDecoder bool
	DecoderName      string

	// EncoderNames maps backend id to the canonical encoder function
	// name for that backend.
	EncoderNames map[string]string
}

// Registry holds every annotated type across the project. Entries live
// in a dense slice; the index maps module path and type name to a slot.
type Registry struct {
	entries []*Entry
	index   map[string]map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: map[string]map[string]int{}}
}

// Add registers a type, replacing any previous entry for the same
// module path and name.
func (r *Registry) Add(e *Entry) {
	byName, ok := r.index[e.ModulePath]
	if !ok {
		byName = map[string]int{}
		r.index[e.ModulePath] = byName
	}
	if i, ok := byName[e.TypeName]; ok {
		r.entries[i] = e
		return
	}
	byName[e.TypeName] = len(r.entries)
	r.entries = append(r.entries, e)
}

// Get returns the entry for an exact module path and type name.
func (r *Registry) Get(modulePath, typeName string) *Entry {
	if byName, ok := r.index[modulePath]; ok {
		if i, ok := byName[typeName]; ok {
			return r.entries[i]
		}
	}
	return nil
}

// Entries returns all registered entries in registration order.
func (r *Registry) Entries() []*Entry {
	return r.entries
}

// Find resolves a type reference. A qualified reference carries the
// qualifier as written in source, which may be the full module path or
// just an alias; the hint is first tried as a full path, then retried
// against the last path segment of every registered module. An
// unqualified reference resolves against the current module only.
func (r *Registry) Find(moduleHint, typeName, currentModulePath string) *Entry {
	if moduleHint != "" {
		if e := r.Get(moduleHint, typeName); e != nil {
			return e
		}
		for modulePath, byName := range r.index {
			if lastSegment(modulePath) != moduleHint {
				continue
			}
			if i, ok := byName[typeName]; ok {
				return r.entries[i]
			}
		}
		return nil
	}
	return r.Get(currentModulePath, typeName)
}

func lastSegment(modulePath string) string {
	if i := strings.LastIndex(modulePath, "/"); i >= 0 {
		return modulePath[i+1:]
	}
	return modulePath
}
