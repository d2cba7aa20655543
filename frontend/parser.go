package frontend

import (
	"fmt"

	"github.com/carbono-lang/carbono"
)

// Parser consumes the token stream from a Lexer and builds a carbono AST.
// It is a plain recursive-descent parser: one method per production, one
// token of lookahead, no backtracking. The grammar is small and fixed, so
// this is simpler to read and debug than a generated table-driven parser.
type Parser struct {
	lex  *Lexer
	cur  token
	peek token
}

// NewParser primes the parser with the first two tokens of src.
func NewParser(src string) (*Parser, error) {
	p := &Parser{lex: NewLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	p.cur = p.peek
	t, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.peek = t
	return nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s", p.cur.line, fmt.Sprintf(format, args...))
}

func (p *Parser) atKeyword(kw string) bool {
	return p.cur.kind == tokKeyword && p.cur.text == kw
}

func (p *Parser) atSymbol(sym string) bool {
	return p.cur.kind == tokSymbol && p.cur.text == sym
}

func (p *Parser) expectSymbol(sym string) error {
	if !p.atSymbol(sym) {
		return p.errorf("expected %q, got %q", sym, p.cur.text)
	}
	return p.advance()
}

func (p *Parser) expectKeyword(kw string) error {
	if !p.atKeyword(kw) {
		return p.errorf("expected %q, got %q", kw, p.cur.text)
	}
	return p.advance()
}

func (p *Parser) expectIdent() (string, error) {
	if p.cur.kind != tokIdent {
		return "", p.errorf("expected identifier, got %q", p.cur.text)
	}
	name := p.cur.text
	return name, p.advance()
}

// ParseUnit parses a whole source file into a *carbono.Program or
// *carbono.Library.
func ParseUnit(src string) (carbono.Node, error) {
	p, err := NewParser(src)
	if err != nil {
		return nil, err
	}
	return p.parseUnit()
}

func (p *Parser) parseUnit() (carbono.Node, error) {
	line := p.cur.line
	isLibrary := p.atKeyword("biblioteca")
	if !isLibrary && !p.atKeyword("programa") {
		return nil, p.errorf("expected 'programa' or 'biblioteca', got %q", p.cur.text)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.cur.kind != tokString {
		return nil, p.errorf("expected unit name string literal")
	}
	name := p.cur.text
	if err := p.advance(); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	if isLibrary {
		return &carbono.Library{BaseNode: carbono.BaseNode{Line: line}, Name: name, Root: body}, nil
	}
	return &carbono.Program{BaseNode: carbono.BaseNode{Line: line}, Name: name, Root: body}, nil
}

// parseBlock parses `{ item* }`, where each item may be a declaration or a
// statement (spec.md §4.1: "children are statements and declarations in
// source order").
func (p *Parser) parseBlock() (*carbono.Block, error) {
	if err := p.expectSymbol("{"); err != nil {
		return nil, err
	}
	var items []carbono.Stmt
	for !p.atSymbol("}") && p.cur.kind != tokEOF {
		item, err := p.parseTopItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := p.expectSymbol("}"); err != nil {
		return nil, err
	}
	return &carbono.Block{Items: items}, nil
}

func (p *Parser) parseTopItem() (carbono.Stmt, error) {
	switch {
	case p.atKeyword("estrutura"):
		return p.parseStructDef()
	case p.atKeyword("funcao"):
		return p.parseFuncDef()
	case p.atKeyword("extern"):
		return p.parseExternBlock()
	default:
		return p.parseStmt()
	}
}

func (p *Parser) parseType() (string, error) {
	if p.atSymbol("[") {
		if err := p.advance(); err != nil {
			return "", err
		}
		inner, err := p.parseType()
		if err != nil {
			return "", err
		}
		if err := p.expectSymbol("]"); err != nil {
			return "", err
		}
		return "[" + inner + "]", nil
	}
	name, err := p.expectIdent()
	if err != nil {
		return "", err
	}
	return name, nil
}

func (p *Parser) parseStructDef() (*carbono.StructDef, error) {
	line := p.cur.line
	if err := p.expectKeyword("estrutura"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("{"); err != nil {
		return nil, err
	}
	var fields []carbono.StructField
	for !p.atSymbol("}") {
		fname, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(":"); err != nil {
			return nil, err
		}
		ftype, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fields = append(fields, carbono.StructField{Name: fname, Type: ftype})
		if p.atSymbol(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.expectSymbol("}"); err != nil {
		return nil, err
	}
	return &carbono.StructDef{BaseStmt: carbono.BaseStmt{BaseNode: carbono.BaseNode{Line: line}}, Name: name, Fields: fields}, nil
}

func (p *Parser) parseParamList() ([]carbono.Param, error) {
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	var params []carbono.Param
	for !p.atSymbol(")") {
		pname, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(":"); err != nil {
			return nil, err
		}
		ptype, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, carbono.Param{Name: pname, Type: ptype})
		if p.atSymbol(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	return params, p.expectSymbol(")")
}

func (p *Parser) parseReturnType() (string, error) {
	if p.atSymbol(":") {
		if err := p.advance(); err != nil {
			return "", err
		}
		return p.parseType()
	}
	return "vazio", nil
}

func (p *Parser) parseFuncDef() (*carbono.FuncDef, error) {
	line := p.cur.line
	if err := p.expectKeyword("funcao"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	retType, err := p.parseReturnType()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &carbono.FuncDef{
		BaseStmt:   carbono.BaseStmt{BaseNode: carbono.BaseNode{Line: line}},
		Name:       name,
		ReturnType: retType,
		Params:     params,
		Body:       body,
	}, nil
}

// parseExternBlock parses `extern Name de "lib.so" { funcao ... ; ... }`
// (spec.md §4.1: extern-specific lib_name/func_alias fields).
func (p *Parser) parseExternBlock() (*carbono.ExternBlock, error) {
	line := p.cur.line
	if err := p.expectKeyword("extern"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("de"); err != nil {
		return nil, err
	}
	if p.cur.kind != tokString {
		return nil, p.errorf("expected library name string literal")
	}
	libName := p.cur.text
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expectSymbol("{"); err != nil {
		return nil, err
	}
	var funcs []carbono.ExternFunc
	for !p.atSymbol("}") {
		if err := p.expectKeyword("funcao"); err != nil {
			return nil, err
		}
		fname, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		params, err := p.parseParamList()
		if err != nil {
			return nil, err
		}
		retType, err := p.parseReturnType()
		if err != nil {
			return nil, err
		}
		alias := ""
		if p.atKeyword("como") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.cur.kind != tokString {
				return nil, p.errorf("expected alias string literal after 'como'")
			}
			alias = p.cur.text
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		if err := p.expectSymbol(";"); err != nil {
			return nil, err
		}
		funcs = append(funcs, carbono.ExternFunc{Name: fname, Alias: alias, ReturnType: retType, Params: params})
	}
	if err := p.expectSymbol("}"); err != nil {
		return nil, err
	}
	return &carbono.ExternBlock{
		BaseStmt: carbono.BaseStmt{BaseNode: carbono.BaseNode{Line: line}},
		Name:     name,
		LibName:  libName,
		Funcs:    funcs,
	}, nil
}
