package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModuleAlias(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"user":            "user",
		"models/user":     "models_user",
		"api/v2/shapes":   "api_v2_shapes",
		"gleam/option":    "gleam_option",
		"":                "module",
	}
	for in, want := range cases {
		if got := ModuleAlias(in); got != want {
			t.Errorf("ModuleAlias(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderImportsBuiltins(t *testing.T) {
	t.Parallel()

	got := renderImports(true, true, true, []string{"import gleam/json"}, importMap{})
	require.Equal(t, "import gleam/dynamic/decode\nimport gleam/json\nimport gleam/option", got)

	got = renderImports(true, false, false, nil, importMap{})
	require.Equal(t, "import gleam/dynamic/decode", got)

	got = renderImports(false, false, true, []string{"import gleam/json"}, importMap{})
	require.Equal(t, "import gleam/json", got)
}

func TestRenderImportsCustomExposure(t *testing.T) {
	t.Parallel()

	m := importMap{}
	m.addTypeImport("models/user", "User", []string{"User"})

	got := renderImports(true, false, false, nil, m)
	require.Equal(t, "import gleam/dynamic/decode\nimport models/user.{type User, User}", got)
}

func TestRenderImportsAliasWhenNotLastSegment(t *testing.T) {
	t.Parallel()

	// The generated alias flattens slashes, so any nested module path
	// needs an explicit "as" clause.
	m := importMap{}
	m.ensure("api/v2/shapes")

	got := renderImports(false, false, false, nil, m)
	require.Equal(t, "import api/v2/shapes as api_v2_shapes", got)

	m = importMap{}
	m.ensure("user")
	got = renderImports(false, false, false, nil, m)
	require.Equal(t, "import user", got)
}

func TestImportMapMerge(t *testing.T) {
	t.Parallel()

	a := importMap{}
	a.addTypeImport("models/user", "User", []string{"User"})

	b := importMap{}
	b.addTypeImport("models/user", "Account", []string{"Account"})
	b.ensure("codecs")

	a.merge(b)

	e := a["models/user"]
	require.True(t, e.Types["User"])
	require.True(t, e.Types["Account"])
	require.True(t, e.Values["Account"])
	require.Contains(t, a, "codecs")
}

func TestCheckOptionAlias(t *testing.T) {
	t.Parallel()

	m := importMap{}
	m.ensure("gleam/option")
	require.NoError(t, checkOptionAlias(m))

	// A project module literally named "option" claims the alias the
	// generated option helpers need.
	m = importMap{}
	m.ensure("option")
	err := checkOptionAlias(m)
	require.Error(t, err)
	require.Contains(t, err.Error(), "`option`")
}
