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

// genContext carries everything one type's generation needs: the fully
// resolved config, the cross-module registry, and the import map that
// accumulates as references are resolved.
type genContext struct {
	cfg        config.Config
	registry   *Registry
	imports    importMap
	modulePath string
}

func (g *genContext) ensureImport(modulePath string) string {
	return g.imports.ensure(modulePath).Alias
}

func jsonFieldName(f *gleam.Field, naming config.FieldNaming) string {
	if f.Rename != "" {
		return f.Rename
	}
	if naming == config.CamelCase {
		return casing.Camel(f.Label)
	}
	return f.Label
}

// fieldIsOptional applies the presence policy: an explicit marker
// always wins; otherwise maybe_absent mode makes literally
// Option-wrapped fields optional and nothing else.
func fieldIsOptional(f *gleam.Field, mode config.AbsentMode) bool {
	switch f.Marker {
	case gleam.MarkerOptional:
		return true
	case gleam.MarkerRequired:
		return false
	default:
		return mode == config.MaybeAbsent && gleam.IsOption(f.Type)
	}
}

// typeDecoder renders the decoder expression for a type annotation.
// depth counts List/Option wrappers already entered; only one level of
// wrapping is derived structurally.
func (g *genContext) typeDecoder(expr gleam.TypeExpr, overrideFn string, depth int) (string, error) {
	if overrideFn != "" {
		return g.resolveDecoderOverride(overrideFn)
	}

	named := gleam.Named(expr)
	if named == nil {
		switch expr.(type) {
		case *gleam.VarType:
			return "", errors.WithHint(
				errors.Generationf("cannot derive a decoder for generic type `%s`", expr),
				"provide a `decoder_with` override")
		default:
			return "", errors.WithHint(
				errors.Generationf("cannot derive a decoder for type expression `%s`", expr),
				"provide a `decoder_with` override")
		}
	}

	if gleam.IsOption(named) {
		if depth >= 1 {
			return "", nestedWrapError("decoder", expr)
		}
		inner, err := g.typeDecoder(named.Args[0], "", depth+1)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("decode.optional(%s)", inner), nil
	}

	if named.Name == "List" && len(named.Args) > 0 {
		if depth >= 1 {
			return "", nestedWrapError("decoder", expr)
		}
		inner, err := g.typeDecoder(named.Args[0], "", depth+1)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("decode.list(%s)", inner), nil
	}

	switch named.Name {
	case "String":
		return "decode.string", nil
	case "Int":
		return "decode.int", nil
	case "Float":
		return "decode.float", nil
	case "Bool":
		return "decode.bool", nil
	}

	entry := g.registry.Find(named.Module, named.Name, g.modulePath)
	if entry == nil {
		return "", errors.WithHint(
			errors.Generationf("unable to determine a decoder for type `%s`", named.Name),
			"add a gloss annotation for that type or specify `decoder_with`")
	}
	if !entry.GeneratesDecoder {
		return "", errors.WithHint(
			errors.Generationf("decoder requested for type `%s` but gloss is not generating one", named.Name),
			"provide a `decoder_with` override")
	}

	decoderName := entry.DecoderName
	if decoderName == "" {
		decoderName = casing.Snake(named.Name) + "_decoder"
	}
	if entry.ModulePath == g.modulePath {
		return decoderName + "()", nil
	}
	alias := g.ensureImport(entry.ModulePath)
	return fmt.Sprintf("%s.%s()", alias, decoderName), nil
}

// typeEncoder renders the encoder expression for a field's value.
func (g *genContext) typeEncoder(varName string, expr gleam.TypeExpr, overrideFn, backendID string, b backend.Backend) (string, error) {
	if overrideFn != "" {
		return g.resolveEncoderOverride(overrideFn, varName)
	}

	named := gleam.Named(expr)
	if named == nil {
		switch expr.(type) {
		case *gleam.VarType:
			return "", errors.WithHint(
				errors.Generationf("cannot derive an encoder for generic type `%s`", expr),
				"provide an `encoder_with` override")
		default:
			return "", errors.WithHint(
				errors.Generationf("cannot derive an encoder for type expression `%s`", expr),
				"provide an `encoder_with` override")
		}
	}

	if gleam.IsOption(named) {
		inner, err := g.encoderRef(named.Args[0], backendID, b)
		if err != nil {
			return "", err
		}
		return b.EncodeNullable(varName, inner), nil
	}

	if named.Name == "List" && len(named.Args) > 0 {
		inner, err := g.encoderRef(named.Args[0], backendID, b)
		if err != nil {
			return "", err
		}
		return b.EncodeArray(varName, inner), nil
	}

	switch named.Name {
	case "String":
		return b.EncodeString(varName), nil
	case "Int":
		return b.EncodeInt(varName), nil
	case "Float":
		return b.EncodeFloat(varName), nil
	case "Bool":
		return b.EncodeBool(varName), nil
	}

	ref, err := g.namedEncoderRef(named, backendID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s)", ref, varName), nil
}

// encoderRef renders a reference to the inner encoder function used by
// nullable and array combinators. Only one level of wrapping is
// derived, so a wrapper here is already too deep.
func (g *genContext) encoderRef(expr gleam.TypeExpr, backendID string, b backend.Backend) (string, error) {
	named := gleam.Named(expr)
	if named == nil {
		return "", errors.WithHint(
			errors.Generationf("cannot derive an encoder for type expression `%s`", expr),
			"provide an `encoder_with` override")
	}

	if gleam.IsOption(named) || (named.Name == "List" && len(named.Args) > 0) {
		return "", nestedWrapError("encoder", expr)
	}

	switch named.Name {
	case "String":
		return b.StringEncoderRef(), nil
	case "Int":
		return b.IntEncoderRef(), nil
	case "Float":
		return b.FloatEncoderRef(), nil
	case "Bool":
		return b.BoolEncoderRef(), nil
	}

	return g.namedEncoderRef(named, backendID)
}

func (g *genContext) namedEncoderRef(named *gleam.NamedType, backendID string) (string, error) {
	entry := g.registry.Find(named.Module, named.Name, g.modulePath)
	if entry == nil {
		return "", errors.WithHint(
			errors.Generationf("unable to determine an encoder for type `%s`", named.Name),
			"add a gloss annotation for that type or specify `encoder_with`")
	}
	encoderName, ok := entry.EncoderNames[backendID]
	if !ok {
		return "", errors.WithHint(
			errors.Generationf("encoder requested for type `%s` with backend `%s` but gloss is not generating one", named.Name, backendID),
			"provide an `encoder_with` override")
	}
	if entry.ModulePath == g.modulePath {
		return encoderName, nil
	}
	alias := g.ensureImport(entry.ModulePath)
	return alias + "." + encoderName, nil
}

func nestedWrapError(kind string, expr gleam.TypeExpr) error {
	return errors.WithHintf(
		errors.Generationf("cannot derive a %s for nested type `%s`: only one level of List or Option wrapping is supported", kind, expr),
		"provide a `%s_with` override for this field", kind)
}

type functionReference struct {
	modulePath string
	function   string
}

func parseFunctionReference(value string) (functionReference, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return functionReference{}, errors.Generationf("function reference cannot be empty")
	}

	ref := functionReference{function: trimmed}
	if i := strings.LastIndex(trimmed, "."); i >= 0 {
		ref.modulePath = strings.TrimSpace(trimmed[:i])
		ref.function = strings.TrimSpace(trimmed[i+1:])
	}
	if ref.function == "" {
		return functionReference{}, errors.Generationf("invalid function reference: `%s`", value)
	}
	return ref, nil
}

func (g *genContext) renderFunctionPath(ref functionReference) string {
	if ref.modulePath == "" || ref.modulePath == g.modulePath {
		return ref.function
	}
	alias := g.ensureImport(ref.modulePath)
	return alias + "." + ref.function
}

func (g *genContext) resolveDecoderOverride(value string) (string, error) {
	ref, err := parseFunctionReference(value)
	if err != nil {
		return "", err
	}
	return g.renderFunctionPath(ref) + "()", nil
}

func (g *genContext) resolveEncoderOverride(value, argument string) (string, error) {
	ref, err := parseFunctionReference(value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s)", g.renderFunctionPath(ref), argument), nil
}

func escapeGleamString(value string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return r.Replace(value)
}
