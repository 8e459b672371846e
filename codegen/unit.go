package codegen

import (
	"sort"
	"strings"

	"github.com/abs0luty/gloss/backend"
	"github.com/abs0luty/gloss/config"
)

// HeaderComment is prepended to every generated file.
const HeaderComment = "// This file was generated by gloss\n" +
	"// https://github.com/abs0luty/gloss\n" +
	"//\n" +
	"// Do not modify this file directly.\n" +
	"// Any changes will be overwritten when gloss regenerates this file."

// TypeCode is the generated code for one type. Empty strings mean the
// corresponding piece was not requested.
type TypeCode struct {
	TypeName     string
	ModulePath   string
	Constructors []string
	Decoder      string
	Encoder      string
}

// GeneratedUnit groups the generated types of one source file that
// share an output destination: same path mode, same effective output
// configuration.
type GeneratedUnit struct {
	Types    []TypeCode
	Output   config.OutputConfig
	PathMode config.PathMode

	// Imports accumulated while resolving cross-module references.
	Imports map[string]*ImportEntry

	// Backends used by encoders in this unit, keyed by backend id.
	Backends map[string]backend.Backend

	// DecoderUsesOptionHelpers is set when any decoder in the unit
	// needs gleam/option.
	DecoderUsesOptionHelpers bool
}

func (u *GeneratedUnit) hasDecoder() bool {
	for _, t := range u.Types {
		if t.Decoder != "" {
			return true
		}
	}
	return false
}

func (u *GeneratedUnit) hasEncoder() bool {
	for _, t := range u.Types {
		if t.Encoder != "" {
			return true
		}
	}
	return false
}

func (u *GeneratedUnit) backendImports() []string {
	ids := make([]string, 0, len(u.Backends))
	for id := range u.Backends {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var imports []string
	for _, id := range ids {
		imports = append(imports, u.Backends[id].ModuleImports()...)
	}
	return imports
}

// importMapFor returns the unit's import map, optionally extended with
// imports exposing each generated type and its constructors. Type
// imports are what split output files need to refer back to the source
// module's types.
func (u *GeneratedUnit) importMapFor(includeTypeImports bool) importMap {
	m := importMap(u.Imports).clone()
	if includeTypeImports {
		for _, t := range u.Types {
			m.addTypeImport(t.ModulePath, t.TypeName, t.Constructors)
		}
	}
	return m
}

// DecoderCode renders the decoder-only file content.
func (u *GeneratedUnit) DecoderCode(hasImports, includeTypeImports bool) string {
	var b strings.Builder
	b.WriteString(HeaderComment)
	b.WriteString("\n\n")

	if hasImports {
		block := renderImports(true, u.DecoderUsesOptionHelpers, false, nil, u.importMapFor(includeTypeImports))
		if block != "" {
			b.WriteString(block)
			b.WriteString("\n\n")
		}
	}

	for _, t := range u.Types {
		if t.Decoder != "" {
			b.WriteString(t.Decoder)
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// EncoderCode renders the encoder-only file content.
func (u *GeneratedUnit) EncoderCode(hasImports, includeTypeImports bool) string {
	var b strings.Builder
	b.WriteString(HeaderComment)
	b.WriteString("\n\n")

	if hasImports {
		block := renderImports(false, false, true, u.backendImports(), u.importMapFor(includeTypeImports))
		if block != "" {
			b.WriteString(block)
			b.WriteString("\n\n")
		}
	}

	for _, t := range u.Types {
		if t.Encoder != "" {
			b.WriteString(t.Encoder)
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// CombinedCode renders decoders and encoders together, decoder first
// per type, in generation order.
func (u *GeneratedUnit) CombinedCode(hasImports, includeTypeImports bool) string {
	var b strings.Builder
	b.WriteString(HeaderComment)
	b.WriteString("\n\n")

	hasDecoder := u.hasDecoder()
	hasEncoder := u.hasEncoder()

	if hasImports && (hasDecoder || hasEncoder) {
		var backendImports []string
		if hasEncoder {
			backendImports = u.backendImports()
		}
		block := renderImports(hasDecoder, u.DecoderUsesOptionHelpers, hasEncoder, backendImports, u.importMapFor(includeTypeImports))
		if block != "" {
			b.WriteString(block)
			b.WriteString("\n\n")
		}
	}

	for _, t := range u.Types {
		if t.Decoder != "" {
			b.WriteString(t.Decoder)
			b.WriteString("\n\n")
		}
		if t.Encoder != "" {
			b.WriteString(t.Encoder)
			b.WriteString("\n\n")
		}
	}
	return b.String()
}
