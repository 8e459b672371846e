package gleamparser

import (
	"strings"

	"go.uber.org/zap"

	"github.com/abs0luty/gloss/directive"
	"github.com/abs0luty/gloss/gleam"
)

// directiveArgs extracts the argument text of every line in a comment
// block that carries the given directive prefix.
func directiveArgs(comments []string, prefix string) []string {
	var args []string
	for _, c := range comments {
		if i := strings.Index(c, prefix); i >= 0 {
			args = append(args, strings.TrimSpace(c[i+len(prefix):]))
		}
	}
	return args
}

func applyTypeDirective(decl *gleam.TypeDecl, comments []string, log *zap.SugaredLogger) {
	args := directiveArgs(comments, directive.TypePrefix)
	if len(args) == 0 {
		return
	}

	d := directive.ParseType(args, log)
	decl.Encoders = d.Encoders
	decl.GenerateDecoder = d.GenerateDecoder
	decl.FieldNaming = d.FieldNaming
	decl.TypeTagField = d.TypeTagField
	decl.DisableTypeTag = d.DisableTypeTag
	decl.UnknownVariantMessage = d.UnknownVariantMessage
	decl.Output = d.Output
	decl.FnNaming = d.FnNaming
	decl.Annotated = len(d.Encoders) > 0 || d.GenerateDecoder
}

func applyFieldDirective(field *gleam.Field, comments []string, log *zap.SugaredLogger) {
	args := directiveArgs(comments, directive.TypePrefix)
	if len(args) == 0 {
		return
	}

	d := directive.ParseField(args, log)
	field.Marker = d.Marker
	field.Rename = d.Rename
	field.DecoderWith = d.DecoderWith
	field.EncoderWith = d.EncoderWith
}

// applyFileDirectives scans the raw source for gloss-file!: lines.
// They live in ordinary comments anywhere in the file, so a plain line
// scan is enough.
func applyFileDirectives(m *gleam.Module, source string, log *zap.SugaredLogger) {
	var args []string
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "//") {
			continue
		}
		comment := strings.TrimSpace(strings.TrimLeft(trimmed, "/"))
		if i := strings.Index(comment, directive.FilePrefix); i >= 0 {
			args = append(args, strings.TrimSpace(comment[i+len(directive.FilePrefix):]))
		}
	}
	if len(args) == 0 {
		return
	}

	d := directive.ParseFile(args, log)
	m.FileOutput = d.Output
	m.FileUnknownVariantMessage = d.UnknownVariantMessage
	m.FileFnNaming = d.FnNaming
}
