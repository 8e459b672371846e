package gleam

import "github.com/abs0luty/gloss/config"

// Module is one parsed .gleam source file.
type Module struct {
	// Path is the filesystem path of the source file.
	Path string

	// ImportPath is the Gleam module path relative to src, slash
	// separated ("app/models/user").
	ImportPath string

	// Name is the last segment of ImportPath.
	Name string

	Imports []Import
	Types   []*TypeDecl

	// Aliases maps every qualifier usable in this file to the module
	// path it refers to ("option" -> "gleam/option").
	Aliases map[string]string

	// Unqualified maps type and constructor names exposed by
	// `.{...}` import lists to their source module path.
	Unqualified map[string]string

	// File-level directive settings from gloss-file!: lines. Nil
	// fields inherit from the config cascade.
	FileOutput                *config.OutputOverride
	FileFnNaming              *config.FnNamingOverride
	FileUnknownVariantMessage *string
}

// Import is one import statement.
type Import struct {
	// Module is the imported module path ("gleam/option").
	Module string

	// Alias is the `as` alias, or the module's last path segment when
	// no alias was written.
	Alias string

	// Exposed lists the `.{...}` items as written, "type " prefix
	// stripped.
	Exposed []string
}

// IsOption reports whether the expression is gleam/option's
// Option(inner). The parser normalizes qualified and exposed Option
// references to the full "gleam/option" module path, so a plain
// comparison suffices here.
func IsOption(t TypeExpr) bool {
	n := Named(t)
	return n != nil && n.Name == "Option" && n.Module == "gleam/option" && len(n.Args) > 0
}

// FieldMarker is the explicit presence marker on a field directive.
type FieldMarker int

const (
	// MarkerNone means no explicit marker; the absent-field mode and
	// the field's Option-ness decide.
	MarkerNone FieldMarker = iota
	// MarkerRequired forces decode.field.
	MarkerRequired
	// MarkerOptional forces decode.optional_field with a None default.
	MarkerOptional
)

// Field is one labeled constructor argument.
type Field struct {
	Label string
	Type  TypeExpr

	// Directive-sourced settings, zero when the field carries no
	// gloss!: line.
	Marker      FieldMarker
	Rename      string
	DecoderWith string
	EncoderWith string
}

// Constructor is one variant of a custom type.
type Constructor struct {
	Name   string
	Fields []*Field
}

// TypeDecl is one custom type declaration together with the settings
// its gloss!: directive contributed. Types without a directive are
// still collected so that references to them resolve.
type TypeDecl struct {
	Name         string
	Params       []string
	Constructors []*Constructor
	Opaque       bool

	// Annotated is set when the declaration carries a gloss!: line.
	Annotated bool

	// Encoders lists the requested backend ids, in directive order.
	Encoders []string

	// GenerateDecoder is set by the decoder keyword.
	GenerateDecoder bool

	// Per-type overrides; nil fields inherit from the file and the
	// config cascade.
	FieldNaming           *config.FieldNaming
	TypeTagField          string
	DisableTypeTag        bool
	UnknownVariantMessage *string
	Output                *config.OutputOverride
	FnNaming              *config.FnNamingOverride
}

// WantsBackend reports whether the directive asked for an encoder
// targeting the given backend.
func (t *TypeDecl) WantsBackend(id string) bool {
	for _, e := range t.Encoders {
		if e == id {
			return true
		}
	}
	return false
}

// FieldCount returns the total number of fields across constructors.
func (t *TypeDecl) FieldCount() int {
	n := 0
	for _, c := range t.Constructors {
		n += len(c.Fields)
	}
	return n
}
