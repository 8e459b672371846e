// Package errors provides error handling for gloss.
//
// It re-exports github.com/cockroachdb/errors and adds the three error
// kinds the pipeline distinguishes: parse errors (malformed Gleam
// source), config errors (malformed gloss.toml at any cascade level),
// and generation errors (everything the code generator itself raises).
// Remediation advice travels as hints so the CLI can surface it
// separately from the failure itself.
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

var (
	New   = crdb.New
	Newf  = crdb.Newf
	Wrap  = crdb.Wrap
	Wrapf = crdb.Wrapf

	WithHint  = crdb.WithHint
	WithHintf = crdb.WithHintf

	Is     = crdb.Is
	As     = crdb.As
	Unwrap = crdb.Unwrap
	Mark   = crdb.Mark
	Join   = crdb.Join

	FlattenHints = crdb.FlattenHints
)

// Error kinds. Wrapping preserves the mark, so errors.Is reports the
// kind through any number of Wrap calls.
var (
	// ErrParse marks failures while turning Gleam source into declarations.
	ErrParse = New("parse error")

	// ErrConfig marks malformed configuration documents.
	ErrConfig = New("config error")

	// ErrGeneration marks failures raised by the generator core:
	// unregistered backends, unsupported type shapes, missing
	// decoder/encoder capabilities, alias conflicts, missing manifest
	// dependencies.
	ErrGeneration = New("generation error")
)

// Parsef creates a new parse error with a formatted message.
func Parsef(format string, args ...any) error {
	return Mark(Newf(format, args...), ErrParse)
}

// Configf creates a new config error with a formatted message.
func Configf(format string, args ...any) error {
	return Mark(Newf(format, args...), ErrConfig)
}

// Generationf creates a new generation error with a formatted message.
func Generationf(format string, args ...any) error {
	return Mark(Newf(format, args...), ErrGeneration)
}

// IsParse reports whether err is or wraps a parse error.
func IsParse(err error) bool { return err != nil && Is(err, ErrParse) }

// IsConfig reports whether err is or wraps a config error.
func IsConfig(err error) bool { return err != nil && Is(err, ErrConfig) }

// IsGeneration reports whether err is or wraps a generation error.
func IsGeneration(err error) bool { return err != nil && Is(err, ErrGeneration) }
