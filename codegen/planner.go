package codegen

import "github.com/abs0luty/gloss/gleam"

// EncodingMode is the JSON shape a type serializes to.
type EncodingMode int

const (
	// PlainString serializes each constructor as its snake_case name.
	PlainString EncodingMode = iota
	// ObjectWithTypeTag serializes fields as an object carrying a
	// discriminant entry.
	ObjectWithTypeTag
	// ObjectWithNoTypeTag serializes fields as an object without a
	// discriminant. Decoders for multi-constructor types still read
	// the discriminant field even in this mode.
	ObjectWithNoTypeTag
)

// DetermineMode picks the encoding shape for a declaration: an enum
// shape (every constructor field-free) becomes a plain string, a single
// constructor with fields an untagged object, and anything else a
// tagged object. no_type_tag forces the untagged shape.
func DetermineMode(decl *gleam.TypeDecl) EncodingMode {
	if decl.DisableTypeTag {
		return ObjectWithNoTypeTag
	}

	if len(decl.Constructors) == 1 {
		if len(decl.Constructors[0].Fields) == 0 {
			return PlainString
		}
		return ObjectWithNoTypeTag
	}

	allEmpty := true
	for _, c := range decl.Constructors {
		if len(c.Fields) > 0 {
			allEmpty = false
			break
		}
	}
	if allEmpty {
		return PlainString
	}
	return ObjectWithTypeTag
}
