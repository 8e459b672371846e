package config

import (
	"strings"

	"github.com/abs0luty/gloss/internal/casing"
)

// PathMode says what a relative output directory is relative to.
type PathMode int

const (
	// FileRelative resolves the directory against the annotated source
	// file's own directory.
	FileRelative PathMode = iota
	// ProjectRelative resolves the directory against the project root.
	ProjectRelative
)

func (m PathMode) String() string {
	if m == ProjectRelative {
		return "project-relative"
	}
	return "file-relative"
}

// OutputConfig controls where generated code goes and how files split.
type OutputConfig struct {
	// Directory the generated files go to. The raw string as written,
	// prefix included; empty means append to the source file itself.
	Directory string

	// FilePattern names combined files. Placeholders: {module},
	// {module_snake}, {module_pascal}.
	FilePattern string

	// SeparateFiles emits one file per source module instead of
	// appending to the source.
	SeparateFiles bool

	// SeparateEncoderDecoder splits encoders and decoders into
	// EncoderFilePattern / DecoderFilePattern files.
	SeparateEncoderDecoder bool

	EncoderFilePattern string
	DecoderFilePattern string
}

// DefaultOutput returns the output configuration used when nothing is set.
func DefaultOutput() OutputConfig {
	return OutputConfig{
		FilePattern:        "{module}_gloss.gleam",
		SeparateFiles:      true,
		EncoderFilePattern: "encode_{module}.gleam",
		DecoderFilePattern: "decode_{module}.gleam",
	}
}

// InferPathMode reads the directory prefix: "@/", "@" and "/" force
// project-relative, "./" forces file-relative, anything else inherits
// the surrounding mode.
func InferPathMode(dir string, inherited PathMode) PathMode {
	switch {
	case strings.HasPrefix(dir, "@"), strings.HasPrefix(dir, "/"):
		return ProjectRelative
	case strings.HasPrefix(dir, "./"):
		return FileRelative
	default:
		return inherited
	}
}

// CleanDirectory strips the path-mode prefix, leaving the path to join
// onto the resolved base.
func CleanDirectory(dir string) string {
	switch {
	case strings.HasPrefix(dir, "@/"):
		return dir[2:]
	case strings.HasPrefix(dir, "@"):
		return dir[1:]
	case strings.HasPrefix(dir, "./"):
		return dir[2:]
	case strings.HasPrefix(dir, "/"):
		return dir[1:]
	default:
		return dir
	}
}

// RenderFilePattern substitutes the module placeholders into a file
// naming pattern. module is the source module's last path segment.
func RenderFilePattern(pattern, module string) string {
	r := strings.NewReplacer(
		"{module}", module,
		"{module_snake}", casing.Snake(module),
		"{module_pascal}", casing.Pascal(module),
	)
	return r.Replace(pattern)
}

// OutputOverride carries output settings from a type-level or
// file-level directive. Nil fields inherit.
type OutputOverride struct {
	Directory              *string
	GeneratedFileNaming    *string
	EncodeModuleNaming     *string
	DecodeModuleNaming     *string
	SeparateEncoderDecoder *bool
}

// IsZero reports whether the override sets nothing.
func (o *OutputOverride) IsZero() bool {
	return o == nil || (o.Directory == nil && o.GeneratedFileNaming == nil &&
		o.EncodeModuleNaming == nil && o.DecodeModuleNaming == nil &&
		o.SeparateEncoderDecoder == nil)
}

// ApplyOutputOverride layers a directive-level override onto an output
// config. SeparateFiles cannot be toggled per type.
func (c *OutputConfig) ApplyOutputOverride(o *OutputOverride) {
	if o == nil {
		return
	}
	if o.Directory != nil {
		c.Directory = *o.Directory
	}
	if o.GeneratedFileNaming != nil {
		c.FilePattern = *o.GeneratedFileNaming
	}
	if o.EncodeModuleNaming != nil {
		c.EncoderFilePattern = *o.EncodeModuleNaming
	}
	if o.DecodeModuleNaming != nil {
		c.DecoderFilePattern = *o.DecodeModuleNaming
	}
	if o.SeparateEncoderDecoder != nil {
		c.SeparateEncoderDecoder = *o.SeparateEncoderDecoder
	}
}
