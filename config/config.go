// Package config loads and resolves gloss configuration.
//
// Configuration lives in per-directory gloss.toml (or gloss.yaml)
// documents. The document at the project root supplies the base; every
// document between the root and a source file layers on top of it,
// closest directory winning. File-level and type-level directives are
// applied after that by the generator, using the same override rules.
//
// On-disk documents use pointer fields so that "left unset" and
// "explicitly set to the default value" are distinguishable; merging
// only consults whether a field was present.
package config

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/abs0luty/gloss/errors"
)

// FieldNaming selects the convention for derived JSON keys.
type FieldNaming int

const (
	SnakeCase FieldNaming = iota
	CamelCase
)

func (f FieldNaming) String() string {
	if f == CamelCase {
		return "camel_case"
	}
	return "snake_case"
}

// UnmarshalText implements encoding.TextUnmarshaler for both the TOML
// and the YAML document forms.
func (f *FieldNaming) UnmarshalText(text []byte) error {
	switch string(text) {
	case "snake_case":
		*f = SnakeCase
	case "camel_case":
		*f = CamelCase
	default:
		return errors.Configf("invalid field_naming_strategy %q (want \"snake_case\" or \"camel_case\")", string(text))
	}
	return nil
}

// AbsentMode controls how Option(t) fields without an explicit marker
// treat absent JSON keys.
type AbsentMode int

const (
	// ErrorIfAbsent requires the key to be present; null is still allowed.
	ErrorIfAbsent AbsentMode = iota
	// MaybeAbsent decodes a missing key as None.
	MaybeAbsent
)

func (m AbsentMode) String() string {
	if m == MaybeAbsent {
		return "maybe_absent"
	}
	return "error_if_absent"
}

func (m *AbsentMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "error_if_absent":
		*m = ErrorIfAbsent
	case "maybe_absent":
		*m = MaybeAbsent
	default:
		return errors.Configf("invalid absent_field_mode %q (want \"error_if_absent\" or \"maybe_absent\")", string(text))
	}
	return nil
}

// Config is a fully resolved configuration: cascade plus file-level
// plus type-level overrides, no unset fields remaining.
type Config struct {
	FieldNaming           FieldNaming
	AbsentMode            AbsentMode
	UnknownVariantMessage string
	Output                OutputConfig
	FnNaming              FnNamingConfig
}

// Default returns the configuration used when no document sets anything.
func Default() Config {
	return Config{
		FieldNaming: SnakeCase,
		AbsentMode:  ErrorIfAbsent,
		Output:      DefaultOutput(),
		FnNaming:    DefaultFnNaming(),
	}
}

// Document is the on-disk shape of a gloss.toml / gloss.yaml file.
// Every field is optional.
type Document struct {
	FieldNamingStrategy          *FieldNaming      `toml:"field_naming_strategy" yaml:"field_naming_strategy"`
	AbsentFieldMode              *AbsentMode       `toml:"absent_field_mode" yaml:"absent_field_mode"`
	DecoderUnknownVariantMessage *string           `toml:"decoder_unknown_variant_message" yaml:"decoder_unknown_variant_message"`
	Output                       *OutputDocument   `toml:"output" yaml:"output"`
	FnNaming                     *FnNamingDocument `toml:"fn_naming" yaml:"fn_naming"`
}

// OutputDocument is the on-disk [output] table.
type OutputDocument struct {
	Directory              *string `toml:"directory" yaml:"directory"`
	GeneratedFileNaming    *string `toml:"generated_file_naming" yaml:"generated_file_naming"`
	SeparateFiles          *bool   `toml:"separate_files" yaml:"separate_files"`
	SeparateEncoderDecoder *bool   `toml:"separate_encoder_decoder" yaml:"separate_encoder_decoder"`
	EncodeModuleNaming     *string `toml:"encode_module_naming" yaml:"encode_module_naming"`
	DecodeModuleNaming     *string `toml:"decode_module_naming" yaml:"decode_module_naming"`
}

// FnNamingDocument is the on-disk [fn_naming] table.
type FnNamingDocument struct {
	EncoderFunctionNaming *string `toml:"encoder_function_naming" yaml:"encoder_function_naming"`
	DecoderFunctionNaming *string `toml:"decoder_function_naming" yaml:"decoder_function_naming"`
}

// Apply layers a document onto the config. Only fields present in the
// document change.
func (c *Config) Apply(doc *Document) {
	if doc == nil {
		return
	}
	if doc.FieldNamingStrategy != nil {
		c.FieldNaming = *doc.FieldNamingStrategy
	}
	if doc.AbsentFieldMode != nil {
		c.AbsentMode = *doc.AbsentFieldMode
	}
	if doc.DecoderUnknownVariantMessage != nil {
		c.UnknownVariantMessage = *doc.DecoderUnknownVariantMessage
	}
	if out := doc.Output; out != nil {
		if out.Directory != nil {
			c.Output.Directory = *out.Directory
		}
		if out.GeneratedFileNaming != nil {
			c.Output.FilePattern = *out.GeneratedFileNaming
		}
		if out.SeparateFiles != nil {
			c.Output.SeparateFiles = *out.SeparateFiles
		}
		if out.SeparateEncoderDecoder != nil {
			c.Output.SeparateEncoderDecoder = *out.SeparateEncoderDecoder
		}
		if out.EncodeModuleNaming != nil {
			c.Output.EncoderFilePattern = *out.EncodeModuleNaming
		}
		if out.DecodeModuleNaming != nil {
			c.Output.DecoderFilePattern = *out.DecodeModuleNaming
		}
	}
	if fn := doc.FnNaming; fn != nil {
		if fn.EncoderFunctionNaming != nil {
			c.FnNaming.EncoderPattern = *fn.EncoderFunctionNaming
		}
		if fn.DecoderFunctionNaming != nil {
			c.FnNaming.DecoderPattern = *fn.DecoderFunctionNaming
		}
	}
}

// DocumentFilenames are the recognized per-directory config filenames,
// in preference order.
var DocumentFilenames = []string{"gloss.toml", "gloss.yaml"}

// LoadDocument reads the config document in dir, if any. A missing
// document is not an error; a malformed one is a ConfigError.
func LoadDocument(dir string) (*Document, error) {
	for _, name := range DocumentFilenames {
		path := filepath.Join(dir, name)
		content, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Mark(errors.Wrapf(err, "failed to read %s", path), errors.ErrConfig)
		}

		var doc Document
		if filepath.Ext(name) == ".yaml" {
			err = yaml.Unmarshal(content, &doc)
		} else {
			err = toml.Unmarshal(content, &doc)
		}
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "failed to parse %s", path), errors.ErrConfig)
		}
		return &doc, nil
	}
	return nil, nil
}

// LoadCascaded resolves the configuration for one source file: the
// project root document first, then every document between the root
// (exclusive) and the file's directory (inclusive), closest winning.
func LoadCascaded(projectRoot, filePath string) (Config, error) {
	cfg := Default()

	rootDoc, err := LoadDocument(projectRoot)
	if err != nil {
		return cfg, err
	}
	cfg.Apply(rootDoc)

	root := filepath.Clean(projectRoot)
	dir := filepath.Clean(filepath.Dir(filePath))

	var dirs []string
	for dir != root {
		dirs = append(dirs, dir)
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	// Furthest-from-file first, so the closest document wins.
	for i := len(dirs) - 1; i >= 0; i-- {
		doc, err := LoadDocument(dirs[i])
		if err != nil {
			return cfg, err
		}
		cfg.Apply(doc)
	}

	return cfg, nil
}
