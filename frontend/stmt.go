package frontend

import "github.com/carbono-lang/carbono"

func bn(line int) carbono.BaseNode { return carbono.BaseNode{Line: line} }
func bs(line int) carbono.BaseStmt { return carbono.BaseStmt{BaseNode: bn(line)} }
func be(line int) carbono.BaseExpr { return carbono.BaseExpr{BaseNode: bn(line)} }

func (p *Parser) parseStmt() (carbono.Stmt, error) {
	switch {
	case p.atKeyword("var"):
		return p.parseVarDecl()
	case p.atKeyword("if"):
		return p.parseIf()
	case p.atKeyword("enquanto"):
		return p.parseEnquanto()
	case p.atKeyword("cada"):
		return p.parseCada()
	case p.atKeyword("infinito"):
		return p.parseInfinito()
	case p.atKeyword("parar"):
		line := p.cur.line
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &carbono.Break{BaseStmt: bs(line)}, p.expectSymbol(";")
	case p.atKeyword("continuar"):
		line := p.cur.line
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &carbono.Continue{BaseStmt: bs(line)}, p.expectSymbol(";")
	case p.atKeyword("retorne"):
		return p.parseReturn()
	case p.atKeyword("afirme"):
		return p.parseAssert()
	case p.atKeyword("esperar"):
		return p.parseInputPause()
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *Parser) parseVarDecl() (*carbono.VarDecl, error) {
	line := p.cur.line
	if err := p.expectKeyword("var"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	typ := ""
	if p.atSymbol(":") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		typ, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	var init carbono.Expr
	if p.atSymbol("=") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		init, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if typ == "" {
		typ = inferredTypeOf(init)
	}
	return &carbono.VarDecl{BaseStmt: bs(line), Name: name, Type: typ, Init: init}, p.expectSymbol(";")
}

// inferredTypeOf fills in a VarDecl's type when the source omits it,
// looking only at the initializer's literal shape: this is a parser-level
// convenience, not a type checker (spec.md's non-goals exclude type
// inference).
func inferredTypeOf(init carbono.Expr) string {
	switch init.(type) {
	case *carbono.LiteralInt:
		return "inteiro32"
	case *carbono.LiteralDouble:
		return "real64"
	case *carbono.LiteralFloat:
		return "real32"
	case *carbono.LiteralBool:
		return "booleano"
	case *carbono.LiteralString, *carbono.Embed:
		return "texto"
	default:
		return "inteiro32"
	}
}

func (p *Parser) parseIf() (*carbono.If, error) {
	line := p.cur.line
	if err := p.expectKeyword("if"); err != nil {
		return nil, err
	}
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var els *carbono.Block
	if p.atKeyword("senao") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		els, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return &carbono.If{BaseStmt: bs(line), Cond: cond, Then: then, Else: els}, nil
}

func (p *Parser) parseEnquanto() (*carbono.Enquanto, error) {
	line := p.cur.line
	if err := p.expectKeyword("enquanto"); err != nil {
		return nil, err
	}
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &carbono.Enquanto{BaseStmt: bs(line), Cond: cond, Body: body}, nil
}

// parseCada parses `cada ( var [como Type] : start..end [, passo step] )
// Block` (spec.md §4.1 "cada_var, cada_type, start, end, step"; the
// surface `i: 0..3` shape comes straight from spec.md §8's example).
func (p *Parser) parseCada() (*carbono.Cada, error) {
	line := p.cur.line
	if err := p.expectKeyword("cada"); err != nil {
		return nil, err
	}
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	varName, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	cadaType := "inteiro32"
	if p.atKeyword("como") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		cadaType, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectSymbol(":"); err != nil {
		return nil, err
	}
	start, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol(".."); err != nil {
		return nil, err
	}
	end, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	var step carbono.Expr
	if p.atSymbol(",") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectKeyword("passo"); err != nil {
			return nil, err
		}
		step, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if step == nil {
		step = &carbono.LiteralInt{BaseExpr: be(line), Value: 1}
	}
	return &carbono.Cada{
		BaseStmt: bs(line), CadaVar: varName, CadaType: cadaType,
		Start: start, End: end, Step: step, Body: body,
	}, nil
}

func (p *Parser) parseInfinito() (*carbono.Infinito, error) {
	line := p.cur.line
	if err := p.expectKeyword("infinito"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &carbono.Infinito{BaseStmt: bs(line), Body: body}, nil
}

func (p *Parser) parseReturn() (*carbono.Return, error) {
	line := p.cur.line
	if err := p.expectKeyword("retorne"); err != nil {
		return nil, err
	}
	if p.atSymbol(";") {
		return &carbono.Return{BaseStmt: bs(line)}, p.advance()
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &carbono.Return{BaseStmt: bs(line), Value: val}, p.expectSymbol(";")
}

// parseAssert parses `afirme(cond)` or `afirme(cond, msg)` (spec.md §4.3:
// "ASSERT(cond, msg, line)").
func (p *Parser) parseAssert() (*carbono.Assert, error) {
	line := p.cur.line
	if err := p.expectKeyword("afirme"); err != nil {
		return nil, err
	}
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	var msg carbono.Expr
	if p.atSymbol(",") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		msg, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	return &carbono.Assert{BaseStmt: bs(line), Cond: cond, Message: msg}, p.expectSymbol(";")
}

// parseInputPause parses `esperar;` or `esperar("prompt");` (SPEC_FULL.md's
// supplemented "press enter to continue" feature).
func (p *Parser) parseInputPause() (*carbono.InputPause, error) {
	line := p.cur.line
	if err := p.expectKeyword("esperar"); err != nil {
		return nil, err
	}
	var prompt carbono.Expr
	if p.atSymbol("(") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		var err error
		prompt, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
	}
	return &carbono.InputPause{BaseStmt: bs(line), Prompt: prompt}, p.expectSymbol(";")
}

// parseExprOrAssignStmt parses either `lhs = rhs;` or a bare call
// expression statement (spec.md §4.1: AssignTarget in VarRef/PropAccess/
// ArrayAccess shaped lhs).
func (p *Parser) parseExprOrAssignStmt() (carbono.Stmt, error) {
	line := p.cur.line
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.atSymbol("=") {
		target, ok := expr.(carbono.AssignTarget)
		if !ok {
			return nil, p.errorf("invalid assignment target")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &carbono.Assign{BaseStmt: bs(line), LHS: target, RHS: rhs}, p.expectSymbol(";")
	}
	switch expr.(type) {
	case *carbono.FuncCall, *carbono.MethodCall:
	default:
		return nil, p.errorf("expression not valid as a statement")
	}
	return &carbono.ExprStmt{BaseStmt: bs(line), X: expr}, p.expectSymbol(";")
}
