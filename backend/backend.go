// Package backend defines the encoder backend seam: the strategy
// interface generated encoder bodies are rendered through, the
// built-in JSON backend, and the closed registry that maps directive
// backend ids to implementations.
package backend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abs0luty/gloss/errors"
	"github.com/abs0luty/gloss/manifest"
)

// ObjectField is one key/value pair in a rendered object literal. The
// value is already-rendered target code.
type ObjectField struct {
	Key   string
	Value string
}

// Backend renders the target-format pieces of an encoder body.
// Everything it returns is Gleam source text.
type Backend interface {
	// Name is the backend id used in encoder(...) directives.
	Name() string

	// ModuleImports are the import statements generated encoder code
	// needs, complete lines ("import gleam/json").
	ModuleImports() []string

	// ReturnType is the type emitted in encoder signatures.
	ReturnType() string

	// EncodeObject renders an object literal. indent applies to
	// entries, closingIndent to the opening call and closing bracket.
	EncodeObject(indent string, fields []ObjectField, closingIndent string) string

	// EncodeEmptyObject renders an empty object at the given indent.
	EncodeEmptyObject(indent string) string

	// EncodeStringLiteral renders a literal string value.
	EncodeStringLiteral(value string) string

	// Primitive encoders applied to a value expression.
	EncodeString(valueExpr string) string
	EncodeInt(valueExpr string) string
	EncodeFloat(valueExpr string) string
	EncodeBool(valueExpr string) string

	// Composite encoders: value expression plus a reference to the
	// inner encoder function.
	EncodeNullable(valueExpr, innerEncoder string) string
	EncodeArray(valueExpr, innerEncoder string) string

	// References to the primitive encoder functions, usable as inner
	// encoders for EncodeNullable / EncodeArray.
	StringEncoderRef() string
	IntEncoderRef() string
	FloatEncoderRef() string
	BoolEncoderRef() string

	// RequiredPackages are the Gleam packages that must appear in the
	// project's gleam.toml before generation runs.
	RequiredPackages() []string
}

// JSON is the built-in gleam/json backend.
type JSON struct{}

const jsonAlias = "json"

func jsonQualify(fn string) string { return jsonAlias + "." + fn }

func (JSON) Name() string            { return "json" }
func (JSON) ModuleImports() []string { return []string{"import gleam/json"} }
func (JSON) ReturnType() string      { return "json.Json" }

func (j JSON) EncodeObject(indent string, fields []ObjectField, closingIndent string) string {
	if len(fields) == 0 {
		return j.EncodeEmptyObject(closingIndent)
	}
	entries := make([]string, len(fields))
	for i, f := range fields {
		entries[i] = fmt.Sprintf("%s  #(%q, %s)", indent, f.Key, f.Value)
	}
	return fmt.Sprintf("%s%s([\n%s\n%s])",
		closingIndent, jsonQualify("object"), strings.Join(entries, ",\n"), closingIndent)
}

func (JSON) EncodeEmptyObject(indent string) string {
	return indent + jsonQualify("object") + "([])"
}

func (JSON) EncodeStringLiteral(value string) string {
	return fmt.Sprintf("%s.string(%q)", jsonAlias, value)
}

func (JSON) EncodeString(valueExpr string) string {
	return jsonQualify("string") + "(" + valueExpr + ")"
}

func (JSON) EncodeInt(valueExpr string) string {
	return jsonQualify("int") + "(" + valueExpr + ")"
}

func (JSON) EncodeFloat(valueExpr string) string {
	return jsonQualify("float") + "(" + valueExpr + ")"
}

func (JSON) EncodeBool(valueExpr string) string {
	return jsonQualify("bool") + "(" + valueExpr + ")"
}

func (JSON) EncodeNullable(valueExpr, innerEncoder string) string {
	return fmt.Sprintf("%s(%s, %s)", jsonQualify("nullable"), valueExpr, innerEncoder)
}

func (JSON) EncodeArray(valueExpr, innerEncoder string) string {
	return fmt.Sprintf("%s(%s, %s)", jsonQualify("array"), valueExpr, innerEncoder)
}

func (JSON) StringEncoderRef() string { return jsonQualify("string") }
func (JSON) IntEncoderRef() string    { return jsonQualify("int") }
func (JSON) FloatEncoderRef() string  { return jsonQualify("float") }
func (JSON) BoolEncoderRef() string   { return jsonQualify("bool") }

func (JSON) RequiredPackages() []string { return []string{"gleam/json"} }

// Registry maps backend ids to implementations. The set is closed at
// construction time.
type Registry struct {
	backends map[string]Backend
}

// NewRegistry returns a registry holding the built-in backends.
func NewRegistry() *Registry {
	return &Registry{backends: map[string]Backend{
		"json": JSON{},
	}}
}

// With returns the registry with an extra backend registered under its
// own name, replacing any previous one.
func (r *Registry) With(b Backend) *Registry {
	r.backends[b.Name()] = b
	return r
}

// Get looks a backend up by id.
func (r *Registry) Get(id string) (Backend, bool) {
	b, ok := r.backends[id]
	return b, ok
}

// IDs returns the registered backend ids, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.backends))
	for id := range r.backends {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CheckDependencies verifies that every package required by the used
// backends appears in the project manifest. It fails fast, before any
// code is generated.
func (r *Registry) CheckDependencies(m *manifest.Manifest, used []string) error {
	for _, id := range used {
		b, ok := r.backends[id]
		if !ok {
			return errors.Generationf("unknown encoder backend %q (registered: %s)", id, strings.Join(r.IDs(), ", "))
		}
		for _, pkg := range b.RequiredPackages() {
			if !m.HasDependency(pkg) {
				return errors.WithHintf(
					errors.Generationf("backend %q requires package %q which is not in gleam.toml", id, pkg),
					"add %q to [dependencies] in gleam.toml", pkg)
			}
		}
	}
	return nil
}
