package config

import (
	"strings"

	"github.com/abs0luty/gloss/internal/casing"
)

// FnNamingConfig holds the patterns generated function names are
// rendered from. Placeholders: {type}, {type_snake}, {type_pascal},
// and (encoder side only) {backend}.
type FnNamingConfig struct {
	EncoderPattern string
	DecoderPattern string
}

// DefaultFnNaming returns the stock function naming patterns.
func DefaultFnNaming() FnNamingConfig {
	return FnNamingConfig{
		EncoderPattern: "{type_snake}_to_json",
		DecoderPattern: "{type_snake}_decoder",
	}
}

// FnNamingOverride carries fn-naming settings from a type-level or
// file-level directive. Nil fields inherit.
type FnNamingOverride struct {
	EncoderPattern *string
	DecoderPattern *string
}

// IsZero reports whether the override sets nothing.
func (o *FnNamingOverride) IsZero() bool {
	return o == nil || (o.EncoderPattern == nil && o.DecoderPattern == nil)
}

// ApplyFnNamingOverride layers a directive-level override onto the
// fn-naming config.
func (c *FnNamingConfig) ApplyFnNamingOverride(o *FnNamingOverride) {
	if o == nil {
		return
	}
	if o.EncoderPattern != nil {
		c.EncoderPattern = *o.EncoderPattern
	}
	if o.DecoderPattern != nil {
		c.DecoderPattern = *o.DecoderPattern
	}
}

func renderTypePattern(pattern, typeName string) string {
	r := strings.NewReplacer(
		"{type}", typeName,
		"{type_snake}", casing.Snake(typeName),
		"{type_pascal}", casing.Pascal(casing.Snake(typeName)),
	)
	return r.Replace(pattern)
}

// RenderDecoderName renders the decoder function name for a type.
func (c FnNamingConfig) RenderDecoderName(typeName string) string {
	return renderTypePattern(c.DecoderPattern, typeName)
}

// RenderEncoderName renders the encoder function name for a type and
// backend. The {backend} placeholder is substituted here; when a type
// targets several backends and the pattern carries no {backend}
// placeholder, the registry disambiguates by appending the backend id.
func (c FnNamingConfig) RenderEncoderName(typeName, backendID string) string {
	return strings.ReplaceAll(renderTypePattern(c.EncoderPattern, typeName), "{backend}", backendID)
}

// EncoderPatternHasBackend reports whether the encoder pattern
// distinguishes backends on its own.
func (c FnNamingConfig) EncoderPatternHasBackend() bool {
	return strings.Contains(c.EncoderPattern, "{backend")
}
