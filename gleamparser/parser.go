package gleamparser

import (
	"strings"

	"go.uber.org/zap"

	"github.com/abs0luty/gloss/errors"
	"github.com/abs0luty/gloss/gleam"
)

// parser consumes the token stream of one source file. Only imports
// and custom type declarations are parsed; everything else is skipped
// with brace tracking so nested blocks never look like top-level
// definitions.
type parser struct {
	path string
	toks []token
	pos  int
	log  *zap.SugaredLogger
}

// ParseSource parses one Gleam source file into the module model,
// attaches directives, and resolves Option availability.
func ParseSource(path, importPath, source string, log *zap.SugaredLogger) (*gleam.Module, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	m := &gleam.Module{
		Path:        path,
		ImportPath:  importPath,
		Name:        lastSegment(importPath),
		Aliases:     map[string]string{},
		Unqualified: map[string]string{},
	}

	p := &parser{path: path, toks: lex(source), log: log}
	if err := p.parseModule(m); err != nil {
		return nil, err
	}

	applyFileDirectives(m, source, log)
	if err := resolveOptionReferences(m); err != nil {
		return nil, err
	}

	return m, nil
}

func lastSegment(importPath string) string {
	if i := strings.LastIndex(importPath, "/"); i >= 0 {
		return importPath[i+1:]
	}
	return importPath
}

func (p *parser) peek() token { return p.toks[p.pos] }
func (p *parser) next() token { t := p.toks[p.pos]; p.pos++; return t }
func (p *parser) atEOF() bool { return p.peek().kind == tokEOF }

func (p *parser) errorf(t token, format string, args ...any) error {
	prefixed := append([]any{p.path, t.line}, args...)
	return errors.Parsef("%s:%d: "+format, prefixed...)
}

func (p *parser) parseModule(m *gleam.Module) error {
	depth := 0
	for !p.atEOF() {
		t := p.peek()
		switch {
		case t.kind == tokLBrace:
			depth++
			p.next()
		case t.kind == tokRBrace:
			depth--
			p.next()
		case depth == 0 && t.kind == tokName && t.text == "import":
			imp, err := p.parseImport()
			if err != nil {
				return err
			}
			m.Imports = append(m.Imports, imp)
			m.Aliases[imp.Alias] = imp.Module
			for _, name := range imp.Exposed {
				m.Unqualified[name] = imp.Module
			}
		case depth == 0 && t.kind == tokName && (t.text == "pub" || t.text == "type"):
			decl, err := p.parseTypeDecl()
			if err != nil {
				return err
			}
			if decl != nil {
				m.Types = append(m.Types, decl)
			}
		default:
			p.next()
		}
	}
	return nil
}

func (p *parser) parseImport() (gleam.Import, error) {
	p.next() // import

	seg := p.next()
	if seg.kind != tokName {
		return gleam.Import{}, p.errorf(seg, "expected module path after import, got %q", seg.text)
	}
	segments := []string{seg.text}
	for p.peek().kind == tokSlash {
		p.next()
		seg = p.next()
		if seg.kind != tokName {
			return gleam.Import{}, p.errorf(seg, "expected module path segment, got %q", seg.text)
		}
		segments = append(segments, seg.text)
	}

	imp := gleam.Import{Module: strings.Join(segments, "/")}

	if p.peek().kind == tokDot {
		p.next()
		if open := p.next(); open.kind != tokLBrace {
			return gleam.Import{}, p.errorf(open, "expected { in import exposure list")
		}
		for p.peek().kind != tokRBrace && !p.atEOF() {
			item := p.next()
			if item.kind == tokName && item.text == "type" {
				item = p.next()
			}
			if item.kind != tokUpName && item.kind != tokName {
				return gleam.Import{}, p.errorf(item, "unexpected %q in import exposure list", item.text)
			}
			imp.Exposed = append(imp.Exposed, item.text)
			if p.peek().kind == tokComma {
				p.next()
			}
		}
		p.next() // }
	}

	if p.peek().kind == tokName && p.peek().text == "as" {
		p.next()
		alias := p.next()
		if alias.kind != tokName {
			return gleam.Import{}, p.errorf(alias, "expected alias after as, got %q", alias.text)
		}
		imp.Alias = alias.text
	} else {
		imp.Alias = lastSegment(imp.Module)
	}

	return imp, nil
}

// parseTypeDecl parses `[pub] [opaque] type Name(params) { ... }`.
// Type aliases and bodyless declarations are skipped. Returns nil when
// the tokens turned out not to start a type declaration at all.
func (p *parser) parseTypeDecl() (*gleam.TypeDecl, error) {
	lead := p.next() // pub or type
	opaque := false

	if lead.text == "pub" {
		t := p.peek()
		if t.kind == tokName && t.text == "opaque" {
			opaque = true
			p.next()
			t = p.peek()
		}
		if t.kind != tokName || t.text != "type" {
			// pub fn, pub const and friends.
			return nil, nil
		}
		p.next()
	}

	nameTok := p.next()
	if nameTok.kind != tokUpName {
		return nil, p.errorf(nameTok, "expected type name, got %q", nameTok.text)
	}

	decl := &gleam.TypeDecl{
		Name:   nameTok.text,
		Opaque: opaque,
	}
	leadComments := lead.comments

	if p.peek().kind == tokLParen {
		p.next()
		for p.peek().kind != tokRParen && !p.atEOF() {
			param := p.next()
			if param.kind == tokName {
				decl.Params = append(decl.Params, param.text)
			}
			if p.peek().kind == tokComma {
				p.next()
			}
		}
		p.next() // )
	}

	if p.peek().kind == tokEqual {
		// Type alias: skip the aliased expression.
		p.skipRestOfLine(nameTok.line)
		return nil, nil
	}
	if p.peek().kind != tokLBrace {
		// External type with no body.
		return nil, nil
	}
	p.next() // {

	for p.peek().kind != tokRBrace && !p.atEOF() {
		ctor, err := p.parseConstructor()
		if err != nil {
			return nil, err
		}
		decl.Constructors = append(decl.Constructors, ctor)
	}
	p.next() // }

	applyTypeDirective(decl, leadComments, p.log)
	return decl, nil
}

func (p *parser) parseConstructor() (*gleam.Constructor, error) {
	nameTok := p.next()
	if nameTok.kind != tokUpName {
		return nil, p.errorf(nameTok, "expected constructor name, got %q", nameTok.text)
	}

	ctor := &gleam.Constructor{Name: nameTok.text}
	if p.peek().kind != tokLParen {
		return ctor, nil
	}
	p.next() // (

	for p.peek().kind != tokRParen && !p.atEOF() {
		field, err := p.parseField()
		if err != nil {
			return nil, err
		}
		ctor.Fields = append(ctor.Fields, field)
		if p.peek().kind == tokComma {
			p.next()
		}
	}
	p.next() // )

	return ctor, nil
}

func (p *parser) parseField() (*gleam.Field, error) {
	first := p.peek()
	field := &gleam.Field{Label: "_unlabeled"}

	if first.kind == tokName && p.toks[p.pos+1].kind == tokColon {
		p.next()
		p.next()
		field.Label = first.text
	}

	expr, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}
	field.Type = expr

	applyFieldDirective(field, first.comments, p.log)
	return field, nil
}

func (p *parser) parseTypeExpr() (gleam.TypeExpr, error) {
	t := p.next()

	switch t.kind {
	case tokHash:
		if open := p.next(); open.kind != tokLParen {
			return nil, p.errorf(open, "expected ( after # in tuple type")
		}
		tuple := &gleam.TupleType{}
		for p.peek().kind != tokRParen && !p.atEOF() {
			elem, err := p.parseTypeExpr()
			if err != nil {
				return nil, err
			}
			tuple.Elems = append(tuple.Elems, elem)
			if p.peek().kind == tokComma {
				p.next()
			}
		}
		p.next() // )
		return tuple, nil

	case tokName:
		if t.text == "fn" {
			return p.parseFunctionType(t)
		}
		if p.peek().kind == tokDot {
			p.next()
			nameTok := p.next()
			if nameTok.kind != tokUpName {
				return nil, p.errorf(nameTok, "expected type name after %s., got %q", t.text, nameTok.text)
			}
			return p.parseNamedTail(t.text, nameTok.text)
		}
		return &gleam.VarType{Name: t.text}, nil

	case tokUpName:
		return p.parseNamedTail("", t.text)

	case tokDiscard:
		return &gleam.HoleType{Name: t.text}, nil

	default:
		return nil, p.errorf(t, "unexpected %q in type annotation", t.text)
	}
}

func (p *parser) parseFunctionType(fnTok token) (gleam.TypeExpr, error) {
	if open := p.next(); open.kind != tokLParen {
		return nil, p.errorf(open, "expected ( after fn in type annotation")
	}
	fn := &gleam.FunctionType{}
	for p.peek().kind != tokRParen && !p.atEOF() {
		param, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		fn.Params = append(fn.Params, param)
		if p.peek().kind == tokComma {
			p.next()
		}
	}
	p.next() // )

	if arrow := p.next(); arrow.kind != tokArrow {
		return nil, p.errorf(arrow, "expected -> in fn type annotation")
	}
	ret, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}
	fn.Return = ret
	return fn, nil
}

func (p *parser) parseNamedTail(module, name string) (gleam.TypeExpr, error) {
	named := &gleam.NamedType{Module: module, Name: name}
	if p.peek().kind != tokLParen {
		return named, nil
	}
	p.next() // (
	for p.peek().kind != tokRParen && !p.atEOF() {
		arg, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		named.Args = append(named.Args, arg)
		if p.peek().kind == tokComma {
			p.next()
		}
	}
	p.next() // )
	return named, nil
}

func (p *parser) skipRestOfLine(line int) {
	for !p.atEOF() && p.peek().line == line {
		p.next()
	}
}
