package codegen

import (
	"fmt"
	"strings"

	"github.com/abs0luty/gloss/backend"
	"github.com/abs0luty/gloss/config"
	"github.com/abs0luty/gloss/errors"
	"github.com/abs0luty/gloss/gleam"
	"github.com/abs0luty/gloss/internal/casing"
)

// generateEncoder renders the full encoder function for a type and one
// backend. When a type targets several backends and the naming pattern
// carries no {backend} placeholder, the backend id is appended to keep
// the names distinct.
func (g *genContext) generateEncoder(decl *gleam.TypeDecl, backendID string, b backend.Backend) (string, error) {
	encoderName := g.cfg.FnNaming.RenderEncoderName(decl.Name, backendID)
	if len(uniqueBackends(decl.Encoders)) > 1 && !g.cfg.FnNaming.EncoderPatternHasBackend() {
		encoderName += "_" + backendID
	}

	argName := casing.Snake(decl.Name)
	mode := DetermineMode(decl)
	naming := fieldNamingFor(decl, g.cfg)
	tagField := decl.TypeTagField
	if tagField == "" {
		tagField = "type"
	}

	var body string
	var err error
	if len(decl.Constructors) == 1 {
		body, err = g.singleConstructorEncoder(decl.Constructors[0], argName, mode, naming, tagField, backendID, b, 2)
	} else {
		body, err = g.multiConstructorEncoder(decl.Constructors, argName, mode, naming, tagField, backendID, b)
	}
	if err != nil {
		return "", errors.Wrapf(err, "type %s", decl.Name)
	}

	return fmt.Sprintf("pub fn %s(%s: %s) -> %s {\n%s\n}",
		encoderName, argName, decl.Name, b.ReturnType(), body), nil
}

func uniqueBackends(ids []string) []string {
	var unique []string
	for _, id := range ids {
		seen := false
		for _, u := range unique {
			if u == id {
				seen = true
				break
			}
		}
		if !seen {
			unique = append(unique, id)
		}
	}
	return unique
}

// singleConstructorEncoder unpacks the record with a let binding and
// renders the object expression.
func (g *genContext) singleConstructorEncoder(ctor *gleam.Constructor, argName string, mode EncodingMode, naming config.FieldNaming, tagField, backendID string, b backend.Backend, nesting int) (string, error) {
	indent := strings.Repeat(" ", nesting)

	if mode == PlainString {
		return indent + b.EncodeStringLiteral(casing.Snake(ctor.Name)), nil
	}
	if len(ctor.Fields) == 0 {
		return b.EncodeEmptyObject(indent), nil
	}

	labels := make([]string, len(ctor.Fields))
	for i, f := range ctor.Fields {
		labels[i] = f.Label + ":"
	}
	unpacking := fmt.Sprintf("%slet %s(%s) = %s\n", indent, ctor.Name, strings.Join(labels, ", "), argName)

	fields, err := g.constructorObjectFields(ctor, mode, naming, tagField, backendID, b)
	if err != nil {
		return "", err
	}
	return unpacking + b.EncodeObject(indent, fields, indent), nil
}

// multiConstructorEncoder pattern-matches on the argument, unpacking
// fields in each case pattern.
func (g *genContext) multiConstructorEncoder(constructors []*gleam.Constructor, argName string, mode EncodingMode, naming config.FieldNaming, tagField, backendID string, b backend.Backend) (string, error) {
	var cases []string
	for _, ctor := range constructors {
		pattern := ctor.Name
		if len(ctor.Fields) > 0 {
			labels := make([]string, len(ctor.Fields))
			for i, f := range ctor.Fields {
				labels[i] = f.Label + ":"
			}
			pattern = fmt.Sprintf("%s(%s)", ctor.Name, strings.Join(labels, ", "))
		}

		body, err := g.constructorEncoderBody(ctor, mode, naming, tagField, backendID, b, 4)
		if err != nil {
			return "", err
		}
		cases = append(cases, fmt.Sprintf("    %s -> %s", pattern, strings.TrimSpace(body)))
	}

	return fmt.Sprintf("  case %s {\n%s\n  }", argName, strings.Join(cases, "\n")), nil
}

func (g *genContext) constructorEncoderBody(ctor *gleam.Constructor, mode EncodingMode, naming config.FieldNaming, tagField, backendID string, b backend.Backend, nesting int) (string, error) {
	if mode == PlainString {
		return b.EncodeStringLiteral(casing.Snake(ctor.Name)), nil
	}

	indent := strings.Repeat(" ", nesting)
	if len(ctor.Fields) == 0 {
		return b.EncodeEmptyObject(indent), nil
	}

	fields, err := g.constructorObjectFields(ctor, mode, naming, tagField, backendID, b)
	if err != nil {
		return "", err
	}
	return b.EncodeObject(indent, fields, indent), nil
}

func (g *genContext) constructorObjectFields(ctor *gleam.Constructor, mode EncodingMode, naming config.FieldNaming, tagField, backendID string, b backend.Backend) ([]backend.ObjectField, error) {
	var fields []backend.ObjectField

	if mode == ObjectWithTypeTag {
		fields = append(fields, backend.ObjectField{
			Key:   tagField,
			Value: b.EncodeStringLiteral(casing.Snake(ctor.Name)),
		})
	}

	for _, f := range ctor.Fields {
		value, err := g.typeEncoder(f.Label, f.Type, f.EncoderWith, backendID, b)
		if err != nil {
			return nil, errors.Wrapf(err, "field %s", f.Label)
		}
		fields = append(fields, backend.ObjectField{Key: jsonFieldName(f, naming), Value: value})
	}
	return fields, nil
}
