package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abs0luty/gloss/config"
	"github.com/abs0luty/gloss/errors"
	"github.com/abs0luty/gloss/gleam"
	"github.com/abs0luty/gloss/internal/casing"
)

// decoderOutput carries one generated decoder plus whether it touched
// gleam/option helpers, which decides the option import.
type decoderOutput struct {
	code              string
	usesOptionHelpers bool
}

// generateDecoder renders the full decoder function for a type.
func (g *genContext) generateDecoder(decl *gleam.TypeDecl) (decoderOutput, error) {
	decoderName := g.cfg.FnNaming.RenderDecoderName(decl.Name)
	mode := DetermineMode(decl)
	naming := fieldNamingFor(decl, g.cfg)

	usesOption := false
	var body string
	var err error

	if len(decl.Constructors) == 1 {
		body, err = g.singleConstructorDecoder(decl.Constructors[0], mode, naming, 0, &usesOption)
	} else {
		tagField := decl.TypeTagField
		if tagField == "" {
			tagField = "type"
		}
		defaultValue := g.defaultValueForType(decl, &usesOption)
		message := unknownVariantMessage(decl, g.cfg.UnknownVariantMessage)
		body, err = g.multiConstructorDecoder(decl.Constructors, mode, naming, tagField, defaultValue, message, &usesOption)
	}
	if err != nil {
		return decoderOutput{}, errors.Wrapf(err, "type %s", decl.Name)
	}

	return decoderOutput{
		code:              fmt.Sprintf("pub fn %s() -> decode.Decoder(%s) %s", decoderName, decl.Name, body),
		usesOptionHelpers: usesOption,
	}, nil
}

func fieldNamingFor(decl *gleam.TypeDecl, cfg config.Config) config.FieldNaming {
	if decl.FieldNaming != nil {
		return *decl.FieldNaming
	}
	return cfg.FieldNaming
}

// unknownVariantMessage picks the decode.failure message: the override
// template with {type} substituted, or the expected-variants listing.
func unknownVariantMessage(decl *gleam.TypeDecl, override string) string {
	if override != "" {
		return strings.ReplaceAll(override, "{type}", decl.Name)
	}
	return expectedVariants(decl.Constructors)
}

func expectedVariants(constructors []*gleam.Constructor) string {
	var tags []string
	for _, c := range constructors {
		tags = append(tags, casing.Snake(c.Name))
	}
	sort.Strings(tags)
	tags = dedupStrings(tags)

	switch len(tags) {
	case 0:
		return "value"
	case 1:
		return tags[0]
	default:
		return "one of " + strings.Join(tags, ", ")
	}
}

func (g *genContext) singleConstructorDecoder(ctor *gleam.Constructor, mode EncodingMode, naming config.FieldNaming, nesting int, usesOption *bool) (string, error) {
	if mode == PlainString || len(ctor.Fields) == 0 {
		return fmt.Sprintf("{\n  decode.success(%s)\n}", ctor.Name), nil
	}

	var fieldDecoders []string
	for _, f := range ctor.Fields {
		line, err := g.fieldDecoder(f, naming, nesting+2, usesOption)
		if err != nil {
			return "", err
		}
		fieldDecoders = append(fieldDecoders, line)
	}

	labels := make([]string, len(ctor.Fields))
	for i, f := range ctor.Fields {
		labels[i] = f.Label + ":"
	}

	indent := strings.Repeat(" ", nesting)
	return fmt.Sprintf("{\n%s\n%s  decode.success(%s(%s))\n%s}",
		strings.Join(fieldDecoders, "\n"), indent, ctor.Name, strings.Join(labels, ", "), indent), nil
}

func (g *genContext) multiConstructorDecoder(constructors []*gleam.Constructor, mode EncodingMode, naming config.FieldNaming, tagField, defaultValue, message string, usesOption *bool) (string, error) {
	var discriminant string
	if mode == PlainString {
		discriminant = "use variant <- decode.then(decode.string)"
	} else {
		discriminant = fmt.Sprintf("use variant <- decode.field(%q, decode.string)", tagField)
	}

	var cases []string
	for _, ctor := range constructors {
		tag := casing.Snake(ctor.Name)
		body, err := g.singleConstructorDecoder(ctor, mode, naming, 4, usesOption)
		if err != nil {
			return "", err
		}
		cases = append(cases, fmt.Sprintf("    %q -> %s", tag, strings.TrimSpace(body)))
	}

	return fmt.Sprintf("{\n  %s\n  case variant {\n%s\n    _ -> decode.failure(%s, \"%s\")\n  }\n}",
		discriminant, strings.Join(cases, "\n"), defaultValue, escapeGleamString(message)), nil
}

func (g *genContext) fieldDecoder(f *gleam.Field, naming config.FieldNaming, nesting int, usesOption *bool) (string, error) {
	jsonName := jsonFieldName(f, naming)
	decoder, err := g.typeDecoder(f.Type, f.DecoderWith, 0)
	if err != nil {
		return "", errors.Wrapf(err, "field %s", f.Label)
	}
	indent := strings.Repeat(" ", nesting)

	if fieldIsOptional(f, g.cfg.AbsentMode) {
		*usesOption = true
		return fmt.Sprintf("%suse %s <- decode.optional_field(%q, option.None, %s)", indent, f.Label, jsonName, decoder), nil
	}
	return fmt.Sprintf("%suse %s <- decode.field(%q, %s)", indent, f.Label, jsonName, decoder), nil
}
