package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abs0luty/gloss/gleam"
)

func registryFixture() *Registry {
	r := NewRegistry()
	r.Add(&Entry{
		ModulePath:       "models/user",
		TypeName:         "User",
		Decl:             &gleam.TypeDecl{Name: "User"},
		GeneratesDecoder: true,
		DecoderName:      "user_decoder",
	})
	r.Add(&Entry{
		ModulePath:   "api/shapes",
		TypeName:     "Shape",
		Decl:         &gleam.TypeDecl{Name: "Shape"},
		EncoderNames: map[string]string{"json": "shape_to_json"},
	})
	return r
}

func TestRegistryFindExactPath(t *testing.T) {
	t.Parallel()

	r := registryFixture()
	e := r.Find("models/user", "User", "api/shapes")
	require.NotNil(t, e)
	require.Equal(t, "user_decoder", e.DecoderName)
}

func TestRegistryFindByLastSegment(t *testing.T) {
	t.Parallel()

	// A qualified reference written through an alias or a bare module
	// name resolves by retrying against the final path segment.
	r := registryFixture()
	e := r.Find("user", "User", "api/shapes")
	require.NotNil(t, e)
	require.Equal(t, "models/user", e.ModulePath)

	require.Nil(t, r.Find("user", "Account", "api/shapes"))
	require.Nil(t, r.Find("billing", "User", "api/shapes"))
}

func TestRegistryFindUnqualified(t *testing.T) {
	t.Parallel()

	r := registryFixture()
	require.NotNil(t, r.Find("", "Shape", "api/shapes"))
	require.Nil(t, r.Find("", "User", "api/shapes"))
}

func TestRegistryAddReplaces(t *testing.T) {
	t.Parallel()

	r := registryFixture()
	r.Add(&Entry{ModulePath: "models/user", TypeName: "User", DecoderName: "decode_user"})

	require.Len(t, r.Entries(), 2)
	require.Equal(t, "decode_user", r.Get("models/user", "User").DecoderName)
}
