package directive

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abs0luty/gloss/config"
	"github.com/abs0luty/gloss/gleam"
)

var nop = zap.NewNop().Sugar()

func TestParseTypeBasics(t *testing.T) {
	t.Parallel()

	d := ParseType([]string{`encoder(json), decoder, camelCase`}, nop)

	require.Equal(t, []string{"json"}, d.Encoders)
	require.True(t, d.GenerateDecoder)
	require.NotNil(t, d.FieldNaming)
	require.Equal(t, config.CamelCase, *d.FieldNaming)
	require.False(t, d.DisableTypeTag)
	require.Nil(t, d.Output)
}

func TestParseTypeTagSettings(t *testing.T) {
	t.Parallel()

	d := ParseType([]string{`decoder, type_tag = "kind", unknown_variant_message = "Unknown {type} variant"`}, nop)

	require.Equal(t, "kind", d.TypeTagField)
	require.NotNil(t, d.UnknownVariantMessage)
	require.Equal(t, "Unknown {type} variant", *d.UnknownVariantMessage)

	d = ParseType([]string{`decoder, no_type_tag`}, nop)
	require.True(t, d.DisableTypeTag)
}

func TestParseTypeOutputOverride(t *testing.T) {
	t.Parallel()

	d := ParseType([]string{`encoder(json), output_dir = "@/api_gen", separate_encoder_decoder = true, generated_file_naming = "{module}_codec.gleam"`}, nop)

	require.NotNil(t, d.Output)
	require.Equal(t, "@/api_gen", *d.Output.Directory)
	require.True(t, *d.Output.SeparateEncoderDecoder)
	require.Equal(t, "{module}_codec.gleam", *d.Output.GeneratedFileNaming)
}

func TestParseTypeFnNaming(t *testing.T) {
	t.Parallel()

	d := ParseType([]string{`decoder, encoder_fn = "encode_{type_snake}", decoder_fn = "decode_{type_pascal}"`}, nop)

	require.NotNil(t, d.FnNaming)
	require.Equal(t, "encode_{type_snake}", *d.FnNaming.EncoderPattern)
	require.Equal(t, "decode_{type_pascal}", *d.FnNaming.DecoderPattern)
}

func TestParseTypeValueWithComma(t *testing.T) {
	t.Parallel()

	// Commas inside quoted values must not split tokens.
	d := ParseType([]string{`decoder, unknown_variant_message = "expected a, b, or c"`}, nop)

	require.NotNil(t, d.UnknownVariantMessage)
	require.Equal(t, "expected a, b, or c", *d.UnknownVariantMessage)
}

func TestParseTypeUnknownKeysSkipped(t *testing.T) {
	t.Parallel()

	d := ParseType([]string{`decoder, frobnicate, wat = "x"`}, nop)

	require.True(t, d.GenerateDecoder)
	require.Empty(t, d.Encoders)
}

func TestParseTypeMultipleLines(t *testing.T) {
	t.Parallel()

	d := ParseType([]string{`encoder(json)`, `decoder, snake_case`}, nop)

	require.Equal(t, []string{"json"}, d.Encoders)
	require.True(t, d.GenerateDecoder)
	require.Equal(t, config.SnakeCase, *d.FieldNaming)
}

func TestParseFieldMarkerPrecedence(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []string
		want gleam.FieldMarker
	}{
		{"optional", []string{`optional`}, gleam.MarkerOptional},
		{"maybe_absent", []string{`maybe_absent`}, gleam.MarkerOptional},
		{"required", []string{`required`}, gleam.MarkerRequired},
		{"must_exist", []string{`must_exist`}, gleam.MarkerRequired},
		{"error_if_absent", []string{`error_if_absent`}, gleam.MarkerRequired},
		{"optional beats required", []string{`required, optional`}, gleam.MarkerOptional},
		{"later line wins", []string{`optional`, `required`}, gleam.MarkerRequired},
		{"no marker", []string{`rename = "x"`}, gleam.MarkerNone},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			d := ParseField(tc.args, nop)
			require.Equal(t, tc.want, d.Marker)
		})
	}
}

func TestParseFieldOverrides(t *testing.T) {
	t.Parallel()

	d := ParseField([]string{`rename = "userName", decoder_with = "codecs.time_decoder", encoder_with = "codecs.time_to_json"`}, nop)

	require.Equal(t, "userName", d.Rename)
	require.Equal(t, "codecs.time_decoder", d.DecoderWith)
	require.Equal(t, "codecs.time_to_json", d.EncoderWith)
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	d := ParseFile([]string{`output_dir = "./gen", encoder_fn = "file_encode_{type}", unknown_variant_message = "bad {type}"`}, nop)

	require.NotNil(t, d.Output)
	require.Equal(t, "./gen", *d.Output.Directory)
	require.Equal(t, "file_encode_{type}", *d.FnNaming.EncoderPattern)
	require.Equal(t, "bad {type}", *d.UnknownVariantMessage)
}
