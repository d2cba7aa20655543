// Package frontend turns SL source text into the carbono package's AST. It
// is a hand-rolled lexer and recursive-descent parser rather than a PEG
// grammar: the surface grammar is small and fixed, and a fixed grammar
// doesn't need a generator.
package frontend

import (
	"fmt"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokInt
	tokDouble
	tokFloat
	tokString
	tokSymbol // punctuation/operators, stored verbatim in Text
	tokKeyword
)

var keywords = map[string]bool{
	"programa": true, "biblioteca": true, "var": true, "estrutura": true,
	"funcao": true, "extern": true, "de": true,
	"if": true, "senao": true, "enquanto": true, "cada": true, "infinito": true,
	"parar": true, "continuar": true, "retorne": true, "afirme": true,
	"nova": true, "ler": true, "esperar": true, "embutir": true, "passo": true, "como": true,
	"verdadeiro": true, "falso": true, "nulo": true,
	"eu": true, "self": true,
}

type token struct {
	kind tokenKind
	text string
	ival int64
	fval float64
	line int
}

// Lexer scans SL source text into tokens one at a time.
type Lexer struct {
	src  string
	pos  int
	line int
}

func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekByteAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
	}
	return c
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}
func isIdentCont(c byte) bool { return isIdentStart(c) || isDigit(c) }

func (l *Lexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		c := l.peekByte()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '/' && l.peekByteAt(1) == '/':
			for l.pos < len(l.src) && l.peekByte() != '\n' {
				l.pos++
			}
		case c == '/' && l.peekByteAt(1) == '*':
			l.pos += 2
			for l.pos < len(l.src) && !(l.peekByte() == '*' && l.peekByteAt(1) == '/') {
				l.advance()
			}
			l.pos += 2
		default:
			return
		}
	}
}

// Next returns the next token in the stream.
func (l *Lexer) Next() (token, error) {
	l.skipSpaceAndComments()
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: l.line}, nil
	}
	startLine := l.line
	c := l.peekByte()

	switch {
	case isIdentStart(c):
		start := l.pos
		for l.pos < len(l.src) && isIdentCont(l.peekByte()) {
			l.pos++
		}
		text := l.src[start:l.pos]
		if keywords[text] {
			return token{kind: tokKeyword, text: text, line: startLine}, nil
		}
		return token{kind: tokIdent, text: text, line: startLine}, nil

	case isDigit(c):
		return l.lexNumber(startLine)

	case c == '"':
		return l.lexString(startLine)

	case c == '@':
		l.pos++
		return token{kind: tokSymbol, text: "@", line: startLine}, nil

	default:
		return l.lexSymbol(startLine)
	}
}

func (l *Lexer) lexNumber(startLine int) (token, error) {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.peekByte()) {
		l.pos++
	}
	isFloat := false
	if l.peekByte() == '.' && isDigit(l.peekByteAt(1)) {
		isFloat = true
		l.pos++
		for l.pos < len(l.src) && isDigit(l.peekByte()) {
			l.pos++
		}
	}
	text := l.src[start:l.pos]
	if l.peekByte() == 'f' || l.peekByte() == 'F' {
		l.pos++
		f, err := parseFloat(text)
		if err != nil {
			return token{}, err
		}
		return token{kind: tokFloat, fval: f, line: startLine}, nil
	}
	if isFloat {
		d, err := parseDouble(text)
		if err != nil {
			return token{}, err
		}
		return token{kind: tokDouble, fval: d, line: startLine}, nil
	}
	n, err := parseInt(text)
	if err != nil {
		return token{}, err
	}
	return token{kind: tokInt, ival: n, line: startLine}, nil
}

// lexString returns the raw contents between the quotes, including any
// `${...}` interpolation sites and backslash escapes verbatim: those are
// resolved later by carbono's interpolation engine, not here (spec.md §9:
// "tokenise the literal into Static | Interp, then lower each piece").
func (l *Lexer) lexString(startLine int) (token, error) {
	l.pos++ // opening quote
	start := l.pos
	for l.pos < len(l.src) {
		c := l.peekByte()
		if c == '\\' && l.pos+1 < len(l.src) {
			l.pos += 2
			continue
		}
		if c == '"' {
			text := l.src[start:l.pos]
			l.pos++
			return token{kind: tokString, text: text, line: startLine}, nil
		}
		l.advance()
	}
	return token{}, fmt.Errorf("line %d: unterminated string literal", startLine)
}

var threeCharSymbols = []string{"..="}
var twoCharSymbols = []string{"==", "!=", "<=", ">=", "&&", "||", "..", "->"}

func (l *Lexer) lexSymbol(startLine int) (token, error) {
	for _, s := range threeCharSymbols {
		if l.pos+3 <= len(l.src) && l.src[l.pos:l.pos+3] == s {
			l.pos += 3
			return token{kind: tokSymbol, text: s, line: startLine}, nil
		}
	}
	for _, s := range twoCharSymbols {
		if l.pos+2 <= len(l.src) && l.src[l.pos:l.pos+2] == s {
			l.pos += 2
			return token{kind: tokSymbol, text: s, line: startLine}, nil
		}
	}
	c := l.advance()
	switch c {
	case '(', ')', '{', '}', '[', ']', ',', ':', ';', '.', '=', '+', '-', '*', '/', '%', '<', '>', '!', '&', '|':
		return token{kind: tokSymbol, text: string(c), line: startLine}, nil
	default:
		return token{}, fmt.Errorf("line %d: unexpected character %q", startLine, c)
	}
}

func parseInt(s string) (int64, error) {
	var n int64
	for i := 0; i < len(s); i++ {
		n = n*10 + int64(s[i]-'0')
	}
	return n, nil
}

func parseDouble(s string) (float64, error) {
	var whole, frac int64
	var fracDigits int
	dot := -1
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			dot = i
			continue
		}
		if dot < 0 {
			whole = whole*10 + int64(s[i]-'0')
		} else {
			frac = frac*10 + int64(s[i]-'0')
			fracDigits++
		}
	}
	f := float64(whole)
	if fracDigits > 0 {
		div := 1.0
		for i := 0; i < fracDigits; i++ {
			div *= 10
		}
		f += float64(frac) / div
	}
	return f, nil
}

func parseFloat(s string) (float64, error) {
	return parseDouble(s)
}
