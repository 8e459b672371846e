package gleamparser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abs0luty/gloss/config"
	"github.com/abs0luty/gloss/gleam"
)

func parseSource(t *testing.T, source string) *gleam.Module {
	t.Helper()
	m, err := ParseSource("src/test.gleam", "test", source, nil)
	require.NoError(t, err)
	return m
}

func TestParseSourceFullFile(t *testing.T) {
	t.Parallel()

	source := `import gleam/option.{type Option}
import models/profile as prof
import gleam/json

// gloss-file!: output_dir = "./gen"

/// A user of the system.
// gloss!: encoder(json), decoder, camelCase
pub type User {
  User(
    name: String,
    // gloss!: maybe_absent, rename = "nick"
    nickname: Option(String),
    profile: prof.Profile,
  )
}

pub fn helper() -> Int {
  1
}

type Internal {
  Internal(count: Int)
}
`
	m := parseSource(t, source)

	require.Len(t, m.Imports, 3)
	require.Equal(t, "gleam/option", m.Aliases["option"])
	require.Equal(t, "models/profile", m.Aliases["prof"])
	require.Equal(t, "gleam/option", m.Unqualified["Option"])

	require.NotNil(t, m.FileOutput)
	require.Equal(t, "./gen", *m.FileOutput.Directory)

	require.Len(t, m.Types, 2)

	user := m.Types[0]
	require.Equal(t, "User", user.Name)
	require.True(t, user.Annotated)
	require.True(t, user.GenerateDecoder)
	require.Equal(t, []string{"json"}, user.Encoders)
	require.NotNil(t, user.FieldNaming)
	require.Equal(t, config.CamelCase, *user.FieldNaming)

	fields := user.Constructors[0].Fields
	require.Len(t, fields, 3)
	require.Equal(t, "name", fields[0].Label)

	nickname := fields[1]
	require.Equal(t, gleam.MarkerOptional, nickname.Marker)
	require.Equal(t, "nick", nickname.Rename)
	require.True(t, gleam.IsOption(nickname.Type))

	profile := gleam.Named(fields[2].Type)
	require.NotNil(t, profile)
	require.Equal(t, "prof", profile.Module)
	require.Equal(t, "Profile", profile.Name)

	internal := m.Types[1]
	require.Equal(t, "Internal", internal.Name)
	require.False(t, internal.Annotated)
}

func TestParseSourceSkipsAliasesAndExternals(t *testing.T) {
	t.Parallel()

	source := `pub type Ids = List(Int)

pub type Timestamp

pub opaque type Token {
  Token(value: String)
}
`
	m := parseSource(t, source)

	require.Len(t, m.Types, 1)
	require.Equal(t, "Token", m.Types[0].Name)
	require.True(t, m.Types[0].Opaque)
}

func TestParseSourceTypeParamsAndShapes(t *testing.T) {
	t.Parallel()

	source := `pub type Wrapper(a) {
  Wrapper(String)
  Complex(pos: #(Int, Float), callback: fn(Int) -> Bool, hole: _)
}
`
	m := parseSource(t, source)

	decl := m.Types[0]
	require.Equal(t, []string{"a"}, decl.Params)
	require.Len(t, decl.Constructors, 2)

	require.Equal(t, "_unlabeled", decl.Constructors[0].Fields[0].Label)

	complexFields := decl.Constructors[1].Fields
	require.IsType(t, &gleam.TupleType{}, complexFields[0].Type)
	require.IsType(t, &gleam.FunctionType{}, complexFields[1].Type)
	require.IsType(t, &gleam.HoleType{}, complexFields[2].Type)
}

func TestParseSourceOptionNormalization(t *testing.T) {
	t.Parallel()

	// Aliased qualifier.
	m := parseSource(t, `import gleam/option as opt

// gloss!: decoder
pub type A {
  A(x: opt.Option(String))
}
`)
	require.True(t, gleam.IsOption(m.Types[0].Constructors[0].Fields[0].Type))

	// No option import at all: a bare Option is assumed to be the
	// standard library's.
	m = parseSource(t, `// gloss!: decoder
pub type B {
  B(x: Option(Int))
}
`)
	require.True(t, gleam.IsOption(m.Types[0].Constructors[0].Fields[0].Type))

	// Option exposed from a different module stays foreign.
	m = parseSource(t, `import my/maybe.{type Option}

// gloss!: decoder
pub type C {
  C(x: Option(Int))
}
`)
	require.False(t, gleam.IsOption(m.Types[0].Constructors[0].Fields[0].Type))
}

func TestParseSourceConflictingOptionImports(t *testing.T) {
	t.Parallel()

	source := `import gleam/option.{type Option}
import my/maybe.{type Option}

pub type A {
  A(x: Option(Int))
}
`
	_, err := ParseSource("src/test.gleam", "test", source, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "conflicting imports for `Option`")
}

func TestParseSourceDirectiveAfterBlankLine(t *testing.T) {
	t.Parallel()

	// A blank line between the directive and the declaration must not
	// detach the directive.
	source := `// gloss!: decoder

pub type Gap {
  Gap(x: Int)
}
`
	m := parseSource(t, source)
	require.True(t, m.Types[0].GenerateDecoder)
}

func TestParseSourceMalformedType(t *testing.T) {
	t.Parallel()

	_, err := ParseSource("src/bad.gleam", "bad", "pub type {\n}\n", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "src/bad.gleam:1")
}

func TestParseProject(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(root, "src", filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	write("app.gleam", "// gloss!: decoder\npub type App {\n  App(name: String)\n}\n")
	write("models/user.gleam", "// gloss!: decoder\npub type User {\n  User(id: Int)\n}\n")
	write("README.md", "not gleam")

	modules, err := ParseProject(root, nil)
	require.NoError(t, err)
	require.Len(t, modules, 2)
	require.Equal(t, "app", modules[0].ImportPath)
	require.Equal(t, "models/user", modules[1].ImportPath)
}

func TestParseProjectCollectsFileErrors(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	srcDir := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(srcDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "bad.gleam"), []byte("pub type {\n}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "good.gleam"), []byte("pub type Ok {\n  Ok\n}\n"), 0o644))

	modules, err := ParseProject(root, nil)
	require.Error(t, err)
	require.Len(t, modules, 1)
	require.Equal(t, "good", modules[0].ImportPath)
}
