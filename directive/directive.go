// Package directive parses gloss!: and gloss-file!: annotation lines.
//
// A directive line is a comma-separated list of tokens. Three token
// shapes exist: a bare keyword (decoder), a call (encoder(json)) and
// an assignment (type_tag = "kind", separate_encoder_decoder = true).
// The schema is closed; unknown keys are skipped and logged at debug
// level so typos stay discoverable without breaking builds.
package directive

import (
	"strings"

	"go.uber.org/zap"

	"github.com/abs0luty/gloss/config"
	"github.com/abs0luty/gloss/gleam"
)

// TypePrefix and FilePrefix introduce the two directive forms inside
// comments.
const (
	TypePrefix = "gloss!:"
	FilePrefix = "gloss-file!:"
)

// TypeDirectives is everything a type-level gloss!: line can set.
type TypeDirectives struct {
	Encoders              []string
	GenerateDecoder       bool
	FieldNaming           *config.FieldNaming
	TypeTagField          string
	DisableTypeTag        bool
	UnknownVariantMessage *string
	Output                *config.OutputOverride
	FnNaming              *config.FnNamingOverride
}

// FieldDirectives is everything a field-level gloss!: line can set.
type FieldDirectives struct {
	Marker      gleam.FieldMarker
	Rename      string
	DecoderWith string
	EncoderWith string
}

// FileDirectives is everything a gloss-file!: line can set.
type FileDirectives struct {
	Output                *config.OutputOverride
	UnknownVariantMessage *string
	FnNaming              *config.FnNamingOverride
}

type tokenKind int

const (
	bareToken tokenKind = iota
	callToken
	assignToken
)

type token struct {
	kind  tokenKind
	key   string
	value string
}

// splitTokens breaks an argument string at commas that sit outside
// quotes and parentheses.
func splitTokens(args string) []string {
	var parts []string
	var b strings.Builder
	depth := 0
	inString := false
	for _, r := range args {
		switch {
		case r == '"':
			inString = !inString
			b.WriteRune(r)
		case inString:
			b.WriteRune(r)
		case r == '(':
			depth++
			b.WriteRune(r)
		case r == ')':
			depth--
			b.WriteRune(r)
		case r == ',' && depth == 0:
			parts = append(parts, b.String())
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		parts = append(parts, s)
	}
	return parts
}

func parseToken(raw string) (token, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return token{}, false
	}

	if eq := strings.Index(raw, "="); eq >= 0 {
		key := strings.TrimSpace(raw[:eq])
		value := strings.TrimSpace(raw[eq+1:])
		value = strings.Trim(value, `"`)
		return token{kind: assignToken, key: key, value: value}, true
	}

	if open := strings.Index(raw, "("); open >= 0 && strings.HasSuffix(raw, ")") {
		key := strings.TrimSpace(raw[:open])
		value := strings.TrimSpace(raw[open+1 : len(raw)-1])
		return token{kind: callToken, key: key, value: value}, true
	}

	return token{kind: bareToken, key: raw}, true
}

func tokenize(args string) []token {
	var tokens []token
	for _, part := range splitTokens(args) {
		if t, ok := parseToken(part); ok {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// ParseType folds one or more gloss!: argument strings (one per
// directive line, in source order) into type directives.
func ParseType(argLines []string, log *zap.SugaredLogger) TypeDirectives {
	var d TypeDirectives
	for _, args := range argLines {
		for _, t := range tokenize(args) {
			applyTypeToken(&d, t, log)
		}
	}
	return d
}

func applyTypeToken(d *TypeDirectives, t token, log *zap.SugaredLogger) {
	switch t.key {
	case "encoder":
		if t.kind != callToken || t.value == "" {
			log.Debugw("encoder directive needs a backend argument", "token", t.key)
			return
		}
		d.Encoders = append(d.Encoders, strings.ToLower(t.value))
	case "decoder":
		d.GenerateDecoder = true
	case "snake_case":
		v := config.SnakeCase
		d.FieldNaming = &v
	case "camelCase":
		v := config.CamelCase
		d.FieldNaming = &v
	case "type_tag":
		d.TypeTagField = t.value
	case "no_type_tag":
		d.DisableTypeTag = true
	case "unknown_variant_message":
		v := t.value
		d.UnknownVariantMessage = &v
	case "output_dir":
		outputOf(&d.Output).Directory = strptr(t.value)
	case "generated_file_naming":
		outputOf(&d.Output).GeneratedFileNaming = strptr(t.value)
	case "encode_module_naming":
		outputOf(&d.Output).EncodeModuleNaming = strptr(t.value)
	case "decode_module_naming":
		outputOf(&d.Output).DecodeModuleNaming = strptr(t.value)
	case "separate_encoder_decoder":
		b := t.value == "true"
		outputOf(&d.Output).SeparateEncoderDecoder = &b
	case "encoder_fn":
		fnNamingOf(&d.FnNaming).EncoderPattern = strptr(t.value)
	case "decoder_fn":
		fnNamingOf(&d.FnNaming).DecoderPattern = strptr(t.value)
	default:
		log.Debugw("skipping unknown directive key", "key", t.key)
	}
}

// ParseField folds gloss!: argument strings attached to a field into
// field directives. Within one line the optional family wins over the
// required family; across lines the later line wins.
func ParseField(argLines []string, log *zap.SugaredLogger) FieldDirectives {
	var d FieldDirectives
	for _, args := range argLines {
		sawOptional, sawRequired := false, false
		for _, t := range tokenize(args) {
			switch t.key {
			case "optional", "maybe_absent":
				sawOptional = true
			case "required", "must_exist", "error_if_absent":
				sawRequired = true
			case "rename":
				d.Rename = t.value
			case "decoder_with":
				d.DecoderWith = t.value
			case "encoder_with":
				d.EncoderWith = t.value
			default:
				log.Debugw("skipping unknown field directive key", "key", t.key)
			}
		}
		switch {
		case sawOptional:
			d.Marker = gleam.MarkerOptional
		case sawRequired:
			d.Marker = gleam.MarkerRequired
		}
	}
	return d
}

// ParseFile folds gloss-file!: argument strings into file directives.
func ParseFile(argLines []string, log *zap.SugaredLogger) FileDirectives {
	var d FileDirectives
	for _, args := range argLines {
		for _, t := range tokenize(args) {
			switch t.key {
			case "output_dir":
				outputOf(&d.Output).Directory = strptr(t.value)
			case "generated_file_naming":
				outputOf(&d.Output).GeneratedFileNaming = strptr(t.value)
			case "encode_module_naming":
				outputOf(&d.Output).EncodeModuleNaming = strptr(t.value)
			case "decode_module_naming":
				outputOf(&d.Output).DecodeModuleNaming = strptr(t.value)
			case "separate_encoder_decoder":
				b := t.value == "true"
				outputOf(&d.Output).SeparateEncoderDecoder = &b
			case "unknown_variant_message":
				v := t.value
				d.UnknownVariantMessage = &v
			case "encoder_fn":
				fnNamingOf(&d.FnNaming).EncoderPattern = strptr(t.value)
			case "decoder_fn":
				fnNamingOf(&d.FnNaming).DecoderPattern = strptr(t.value)
			default:
				log.Debugw("skipping unknown file directive key", "key", t.key)
			}
		}
	}
	return d
}

func outputOf(p **config.OutputOverride) *config.OutputOverride {
	if *p == nil {
		*p = &config.OutputOverride{}
	}
	return *p
}

func fnNamingOf(p **config.FnNamingOverride) *config.FnNamingOverride {
	if *p == nil {
		*p = &config.FnNamingOverride{}
	}
	return *p
}

func strptr(s string) *string { return &s }
