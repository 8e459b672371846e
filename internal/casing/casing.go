// Package casing converts identifiers between the naming conventions
// used by Gleam source and by generated JSON keys.
package casing

import (
	"strings"
	"unicode"
)

// Snake converts PascalCase or camelCase to snake_case.
// "UserProfile" becomes "user_profile".
func Snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Camel converts snake_case to camelCase: the first character is
// lowercased, underscores are dropped and the character following each
// dropped underscore is uppercased.
func Camel(s string) string {
	var b strings.Builder
	upperNext := false
	for i, r := range s {
		switch {
		case r == '_':
			upperNext = true
		case i == 0:
			b.WriteRune(unicode.ToLower(r))
		case upperNext:
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Pascal converts snake_case to PascalCase.
func Pascal(s string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range s {
		switch {
		case r == '_':
			upperNext = true
		case upperNext:
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
