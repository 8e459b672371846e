package gleamparser

import (
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokName      // lowercase identifier or keyword
	tokUpName    // capitalized identifier
	tokDiscard   // _ or _name
	tokString    // "..." literal, quotes included
	tokLParen
	tokRParen
	tokLBrace
	tokRBrace
	tokComma
	tokColon
	tokDot
	tokHash
	tokSlash
	tokEqual
	tokArrow
	tokOther
)

// token is one lexical item. Comments holds the text of the comment
// lines immediately preceding the token, slashes stripped and trimmed,
// blank lines between comments and token ignored.
type token struct {
	kind     tokenKind
	text     string
	line     int
	comments []string
}

type lexer struct {
	src    []rune
	pos    int
	line   int
	tokens []token
}

func lex(source string) []token {
	l := &lexer{src: []rune(source), line: 1}
	l.run()
	return l.tokens
}

func (l *lexer) run() {
	var pending []string
	for l.pos < len(l.src) {
		r := l.src[l.pos]

		switch {
		case r == '\n':
			l.line++
			l.pos++
			continue
		case r == ' ' || r == '\t' || r == '\r':
			l.pos++
			continue
		case r == '/' && l.peek(1) == '/':
			pending = append(pending, l.readComment())
			continue
		case r == '"':
			l.emit(token{kind: tokString, text: l.readString(), line: l.line, comments: pending})
			pending = nil
			continue
		case unicode.IsLetter(r) || r == '_':
			text := l.readName()
			kind := tokName
			if strings.HasPrefix(text, "_") {
				kind = tokDiscard
			} else if unicode.IsUpper(rune(text[0])) {
				kind = tokUpName
			}
			l.emit(token{kind: kind, text: text, line: l.line, comments: pending})
			pending = nil
			continue
		}

		kind := tokOther
		text := string(r)
		advance := 1
		switch r {
		case '(':
			kind = tokLParen
		case ')':
			kind = tokRParen
		case '{':
			kind = tokLBrace
		case '}':
			kind = tokRBrace
		case ',':
			kind = tokComma
		case ':':
			kind = tokColon
		case '.':
			kind = tokDot
		case '#':
			kind = tokHash
		case '/':
			kind = tokSlash
		case '=':
			kind = tokEqual
		case '-':
			if l.peek(1) == '>' {
				kind = tokArrow
				text = "->"
				advance = 2
			}
		}
		l.emit(token{kind: kind, text: text, line: l.line, comments: pending})
		pending = nil
		l.pos += advance
	}
	l.emit(token{kind: tokEOF, line: l.line})
}

func (l *lexer) emit(t token) {
	l.tokens = append(l.tokens, t)
}

func (l *lexer) peek(ahead int) rune {
	if l.pos+ahead >= len(l.src) {
		return 0
	}
	return l.src[l.pos+ahead]
}

func (l *lexer) readComment() string {
	start := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
	text := string(l.src[start:l.pos])
	return strings.TrimSpace(strings.TrimLeft(text, "/"))
}

func (l *lexer) readString() string {
	start := l.pos
	l.pos++ // opening quote
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '\\':
			l.pos += 2
			continue
		case '"':
			l.pos++
			return string(l.src[start:l.pos])
		case '\n':
			l.line++
		}
		l.pos++
	}
	return string(l.src[start:l.pos])
}

func (l *lexer) readName() string {
	start := l.pos
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			l.pos++
			continue
		}
		break
	}
	return string(l.src[start:l.pos])
}
