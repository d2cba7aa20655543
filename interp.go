package carbono

import (
	"fmt"
	"strconv"
	"strings"
)

// interpPiece is one tokenized fragment of a string literal: either a run
// of static bytes, or an interpolation site `${Expr[:Format]}`. Tokenizing
// first and lowering second (spec.md §9 DESIGN NOTES: "tokenise the literal
// into Static(bytes) | Interp(expr, fmt?), then lower each piece") replaces
// the source project's character-surgery scanner.
type interpPiece struct {
	static   string
	expr     string
	format   string
	isInterp bool
}

// tokenizeInterpString scans a raw string literal for `${...}` sites,
// honouring `\n \t \r \\ \"` escapes along the way (spec.md §4.4). `${` is
// the only escape trigger; nested braces inside an interpolation are not
// supported, matching spec.md's explicit statement of that limitation.
func tokenizeInterpString(raw string) []interpPiece {
	var (
		pieces []interpPiece
		buf    strings.Builder
	)
	i := 0
	for i < len(raw) {
		c := raw[i]
		if c == '\\' && i+1 < len(raw) {
			switch raw[i+1] {
			case 'n':
				buf.WriteByte('\n')
				i += 2
				continue
			case 't':
				buf.WriteByte('\t')
				i += 2
				continue
			case 'r':
				buf.WriteByte('\r')
				i += 2
				continue
			case '\\':
				buf.WriteByte('\\')
				i += 2
				continue
			case '"':
				buf.WriteByte('"')
				i += 2
				continue
			}
		}
		if c == '$' && i+1 < len(raw) && raw[i+1] == '{' {
			if buf.Len() > 0 {
				pieces = append(pieces, interpPiece{static: buf.String()})
				buf.Reset()
			}
			j := i + 2
			for j < len(raw) && raw[j] != '}' {
				j++
			}
			if j >= len(raw) {
				// Unterminated interpolation: keep the rest as literal text
				// rather than failing lowering over a malformed literal.
				buf.WriteString(raw[i:])
				i = len(raw)
				break
			}
			inner := raw[i+2 : j]
			exprText, format := inner, ""
			if idx := strings.IndexByte(inner, ':'); idx >= 0 {
				exprText, format = inner[:idx], inner[idx+1:]
			}
			pieces = append(pieces, interpPiece{expr: strings.TrimSpace(exprText), format: format, isInterp: true})
			i = j + 1
			continue
		}
		buf.WriteByte(c)
		i++
	}
	if buf.Len() > 0 {
		pieces = append(pieces, interpPiece{static: buf.String()})
	}
	return pieces
}

// interpExprParser parses the restricted expression grammar valid inside
// `${...}`: identifiers, `.` property access, and `[ ]` indexing, using the
// same node types the main AST uses (spec.md §9: "Expressions inside ${…}
// should be parsed with the same expression grammar as the main parser").
type interpExprParser struct {
	s   string
	pos int
	line int
}

func parseInterpExpr(s string, line int) (Expr, error) {
	p := &interpExprParser{s: s, line: line}
	p.skipSpace()
	if p.s == "" {
		return nil, fmt.Errorf("empty interpolation expression")
	}
	e, err := p.parseChain()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.s) {
		return nil, fmt.Errorf("unexpected trailing text in interpolation expression: %q", p.s[p.pos:])
	}
	return e, nil
}

func (p *interpExprParser) skipSpace() {
	for p.pos < len(p.s) && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t') {
		p.pos++
	}
}

func (p *interpExprParser) peek() byte {
	if p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func isIdentByte(c byte, first bool) bool {
	if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' {
		return true
	}
	if !first && c >= '0' && c <= '9' {
		return true
	}
	return false
}

func (p *interpExprParser) parseIdent() (string, error) {
	start := p.pos
	if !isIdentByte(p.peek(), true) {
		return "", fmt.Errorf("expected identifier at %q", p.s[p.pos:])
	}
	p.pos++
	for p.pos < len(p.s) && isIdentByte(p.peek(), false) {
		p.pos++
	}
	return p.s[start:p.pos], nil
}

// parseChain parses an identifier (or an integer literal, for index
// subexpressions) followed by any number of `.field` / `[index]` suffixes.
func (p *interpExprParser) parseChain() (Expr, error) {
	p.skipSpace()
	var base Expr
	if c := p.peek(); c >= '0' && c <= '9' {
		start := p.pos
		for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
			p.pos++
		}
		n, _ := strconv.ParseInt(p.s[start:p.pos], 10, 64)
		base = &LiteralInt{BaseExpr: BaseExpr{BaseNode{p.line}}, Value: n}
	} else {
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		if name == "nulo" {
			base = &LiteralNull{BaseExpr: BaseExpr{BaseNode{p.line}}}
		} else if name == "verdadeiro" || name == "falso" {
			base = &LiteralBool{BaseExpr: BaseExpr{BaseNode{p.line}}, Value: name == "verdadeiro"}
		} else {
			base = &VarRef{BaseExpr: BaseExpr{BaseNode{p.line}}, Name: name}
		}
	}

	for {
		p.skipSpace()
		switch p.peek() {
		case '.':
			p.pos++
			field, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			base = &PropAccess{BaseExpr: BaseExpr{BaseNode{p.line}}, Receiver: base, Field: field}
		case '[':
			p.pos++
			idx, err := p.parseChain()
			if err != nil {
				return nil, err
			}
			p.skipSpace()
			if p.peek() != ']' {
				return nil, fmt.Errorf("expected ']' in interpolation index")
			}
			p.pos++
			base = &ArrayAccess{BaseExpr: BaseExpr{BaseNode{p.line}}, Base: base, Index: idx}
		default:
			return base, nil
		}
	}
}

// interpCPiece is a lowered interpolation fragment ready to be rendered
// either into a carbono_string-building block expression or directly into
// print statements.
type interpCPiece struct {
	static   string // non-empty only when cExpr == ""
	cExpr    string // C fragment to format/print
	category exprCategory
	format   string // user-supplied FMT tail, empty => auto
}

// lowerInterpPieces tokenizes and lowers every fragment of a string
// literal, resolving each `${expr}` through the ordinary expression
// lowering path (so PROP_ACCESS inside an interpolation reuses the same
// `.`/`->` resolution logic as everywhere else, per spec.md §4.4).
func (l *Lowerer) lowerInterpPieces(raw string, line int) ([]interpCPiece, error) {
	tokens := tokenizeInterpString(raw)
	pieces := make([]interpCPiece, 0, len(tokens))
	for _, t := range tokens {
		if !t.isInterp {
			pieces = append(pieces, interpCPiece{static: t.static})
			continue
		}
		expr, err := parseInterpExpr(t.expr, line)
		if err != nil {
			l.warn(LowerWarning{Kind: WarnUnresolvedName, Line: line, Name: t.expr})
			pieces = append(pieces, interpCPiece{static: fmt.Sprintf("/* bad interpolation: %s */", t.expr)})
			continue
		}
		cExpr, cat := l.lowerExprTyped(expr)
		pieces = append(pieces, interpCPiece{cExpr: cExpr, category: cat, format: t.format})
	}
	return pieces, nil
}

// formatFor picks the printf conversion for a piece: the user-supplied FMT
// tail when present, otherwise the type-directed default (spec.md §4.4).
func formatFor(p interpCPiece) (conv string, cast string) {
	if p.format != "" {
		f := p.format
		if !strings.HasPrefix(f, "%") {
			f = "%" + f
		}
		return f, ""
	}
	switch p.category {
	case catUint:
		return "%llu", "(unsigned long long)"
	case catFloat:
		return "%g", "(double)"
	case catChar:
		return "%c", ""
	case catBool:
		return "%d", ""
	default: // catInt, catString-handled-separately, catUnknown
		return "%lld", "(long long)"
	}
}

// renderInterpAsStringExpr builds the `({ carbono_string ...; })` block
// expression form used whenever the literal's value is consumed as data
// (assigned to a `texto` variable, passed as an argument, etc.).
func (l *Lowerer) renderInterpAsStringExpr(pieces []interpCPiece) string {
	var b strings.Builder
	b.WriteString("({ carbono_string _cb_s = carbono_string_new(); ")
	for _, p := range pieces {
		if p.cExpr == "" {
			b.WriteString(fmt.Sprintf("carbono_string_append_cstr(&_cb_s, %s); ", strconv.Quote(p.static)))
			continue
		}
		if p.category == catString {
			b.WriteString(fmt.Sprintf("carbono_string_append(&_cb_s, (%s).data, (%s).len); ", p.cExpr, p.cExpr))
			continue
		}
		conv, cast := formatFor(p)
		b.WriteString(fmt.Sprintf("carbono_string_append_fmt(&_cb_s, \"%s\", %s(%s)); ", conv, cast, p.cExpr))
	}
	b.WriteString("_cb_s; })")
	return b.String()
}

// writePrintStatements emits pieces directly as printf/fputs calls into w,
// used by escreval/escreva on a literal-string argument so a throwaway
// carbono_string isn't built just to print it immediately.
func writePrintStatements(w *outputWriter, pieces []interpCPiece, newline bool) {
	for _, p := range pieces {
		if p.cExpr == "" {
			w.writeil(fmt.Sprintf("fputs(%s, stdout);", strconv.Quote(p.static)))
			continue
		}
		if p.category == catString {
			w.writeil(fmt.Sprintf("carbono_print_string(%s);", p.cExpr))
			continue
		}
		conv, cast := formatFor(p)
		w.writeil(fmt.Sprintf("printf(\"%s\", %s(%s));", conv, cast, p.cExpr))
	}
	if newline {
		w.writeil("fputs(\"\\n\", stdout);")
	}
}
