package backend

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abs0luty/gloss/errors"
	"github.com/abs0luty/gloss/manifest"
)

func TestJSONEncodeObject(t *testing.T) {
	t.Parallel()

	b := JSON{}
	got := b.EncodeObject("    ", []ObjectField{
		{Key: "name", Value: `json.string(name)`},
		{Key: "age", Value: `json.int(age)`},
	}, "  ")

	want := "  json.object([\n" +
		"      #(\"name\", json.string(name)),\n" +
		"      #(\"age\", json.int(age))\n" +
		"  ])"
	require.Equal(t, want, got)
}

func TestJSONEncodeObjectEmpty(t *testing.T) {
	t.Parallel()

	b := JSON{}
	require.Equal(t, "  json.object([])", b.EncodeObject("    ", nil, "  "))
	require.Equal(t, "json.object([])", b.EncodeEmptyObject(""))
}

func TestJSONPrimitives(t *testing.T) {
	t.Parallel()

	b := JSON{}
	require.Equal(t, "json.string(name)", b.EncodeString("name"))
	require.Equal(t, "json.int(age)", b.EncodeInt("age"))
	require.Equal(t, "json.float(score)", b.EncodeFloat("score"))
	require.Equal(t, "json.bool(active)", b.EncodeBool("active"))
	require.Equal(t, `json.string("active")`, b.EncodeStringLiteral("active"))
	require.Equal(t, "json.nullable(nickname, json.string)", b.EncodeNullable("nickname", b.StringEncoderRef()))
	require.Equal(t, "json.array(scores, json.float)", b.EncodeArray("scores", b.FloatEncoderRef()))
}

func TestRegistryLookup(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	b, ok := r.Get("json")
	require.True(t, ok)
	require.Equal(t, "json", b.Name())

	_, ok = r.Get("msgpack")
	require.False(t, ok)

	require.Equal(t, []string{"json"}, r.IDs())
}

func TestCheckDependencies(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	withJSON := &manifest.Manifest{Dependencies: map[string]string{"gleam/json": "~> 2.0"}}
	require.NoError(t, r.CheckDependencies(withJSON, []string{"json"}))

	err := r.CheckDependencies(&manifest.Manifest{}, []string{"json"})
	require.Error(t, err)
	require.True(t, errors.IsGeneration(err))
	require.Contains(t, err.Error(), "gleam/json")
	require.Contains(t, errors.FlattenHints(err), "gleam.toml")

	err = r.CheckDependencies(withJSON, []string{"msgpack"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown encoder backend")
}
