package frontend

import "github.com/carbono-lang/carbono"

func (p *Parser) parseExpr() (carbono.Expr, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (carbono.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.atSymbol("||") {
		line := p.cur.line
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &carbono.BinaryOp{BaseExpr: be(line), Op: "||", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (carbono.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.atSymbol("&&") {
		line := p.cur.line
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &carbono.BinaryOp{BaseExpr: be(line), Op: "&&", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseEquality() (carbono.Expr, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for p.atSymbol("==") || p.atSymbol("!=") {
		op, line := p.cur.text, p.cur.line
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = &carbono.BinaryOp{BaseExpr: be(line), Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseRelational() (carbono.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.atSymbol("<") || p.atSymbol(">") || p.atSymbol("<=") || p.atSymbol(">=") {
		op, line := p.cur.text, p.cur.line
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &carbono.BinaryOp{BaseExpr: be(line), Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAdditive() (carbono.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.atSymbol("+") || p.atSymbol("-") {
		op, line := p.cur.text, p.cur.line
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &carbono.BinaryOp{BaseExpr: be(line), Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (carbono.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.atSymbol("*") || p.atSymbol("/") || p.atSymbol("%") {
		op, line := p.cur.text, p.cur.line
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &carbono.BinaryOp{BaseExpr: be(line), Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (carbono.Expr, error) {
	if p.atSymbol("-") || p.atSymbol("!") {
		op, line := p.cur.text, p.cur.line
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &carbono.UnaryOp{BaseExpr: be(line), Op: op, Operand: operand}, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses `.field`, `.method(args)`, and `[index]`/`[lo..hi]`
// suffix chains on a primary expression (spec.md §4.1: PROP_ACCESS,
// METHOD_CALL, ARRAY_ACCESS).
func (p *Parser) parsePostfix() (carbono.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.atSymbol("."):
			line := p.cur.line
			if err := p.advance(); err != nil {
				return nil, err
			}
			field, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			if p.atSymbol("(") {
				args, err := p.parseArgs()
				if err != nil {
					return nil, err
				}
				expr = &carbono.MethodCall{BaseExpr: be(line), Receiver: expr, Method: field, Args: args}
				continue
			}
			expr = &carbono.PropAccess{BaseExpr: be(line), Receiver: expr, Field: field}
		case p.atSymbol("["):
			line := p.cur.line
			if err := p.advance(); err != nil {
				return nil, err
			}
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			var end carbono.Expr
			if p.atSymbol("..") {
				if err := p.advance(); err != nil {
					return nil, err
				}
				end, err = p.parseExpr()
				if err != nil {
					return nil, err
				}
			}
			if err := p.expectSymbol("]"); err != nil {
				return nil, err
			}
			expr = &carbono.ArrayAccess{BaseExpr: be(line), Base: expr, Index: idx, End: end}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArgs() ([]carbono.Expr, error) {
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	var args []carbono.Expr
	for !p.atSymbol(")") {
		a, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.atSymbol(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	return args, p.expectSymbol(")")
}

func (p *Parser) parsePrimary() (carbono.Expr, error) {
	line := p.cur.line
	switch {
	case p.cur.kind == tokInt:
		v := p.cur.ival
		return &carbono.LiteralInt{BaseExpr: be(line), Value: v}, p.advance()
	case p.cur.kind == tokDouble:
		v := p.cur.fval
		return &carbono.LiteralDouble{BaseExpr: be(line), Value: v}, p.advance()
	case p.cur.kind == tokFloat:
		v := float32(p.cur.fval)
		return &carbono.LiteralFloat{BaseExpr: be(line), Value: v}, p.advance()
	case p.cur.kind == tokString:
		v := p.cur.text
		return &carbono.LiteralString{BaseExpr: be(line), Value: v}, p.advance()
	case p.atKeyword("verdadeiro"):
		return &carbono.LiteralBool{BaseExpr: be(line), Value: true}, p.advance()
	case p.atKeyword("falso"):
		return &carbono.LiteralBool{BaseExpr: be(line), Value: false}, p.advance()
	case p.atKeyword("nulo"):
		return &carbono.LiteralNull{BaseExpr: be(line)}, p.advance()
	case p.atKeyword("eu"):
		return &carbono.VarRef{BaseExpr: be(line), Name: "eu"}, p.advance()
	case p.atKeyword("self"):
		return &carbono.VarRef{BaseExpr: be(line), Name: "self"}, p.advance()
	case p.atKeyword("nova"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &carbono.New{BaseExpr: be(line), Type: typ}, nil
	case p.atKeyword("ler"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectSymbol("("); err != nil {
			return nil, err
		}
		return &carbono.InputValue{BaseExpr: be(line)}, p.expectSymbol(")")
	case p.atSymbol("@"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectKeyword("embutir"); err != nil {
			return nil, err
		}
		if err := p.expectSymbol("("); err != nil {
			return nil, err
		}
		if p.cur.kind != tokString {
			return nil, p.errorf("expected path string literal in @embutir(...)")
		}
		path := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &carbono.Embed{BaseExpr: be(line), Path: path}, p.expectSymbol(")")
	case p.atSymbol("("):
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return inner, p.expectSymbol(")")
	case p.atSymbol("["):
		return p.parseArrayLiteral()
	case p.cur.kind == tokIdent:
		name := p.cur.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.atSymbol("(") {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			return &carbono.FuncCall{BaseExpr: be(line), Name: name, Args: args}, nil
		}
		return &carbono.VarRef{BaseExpr: be(line), Name: name}, nil
	default:
		return nil, p.errorf("unexpected token %q in expression", p.cur.text)
	}
}

func (p *Parser) parseArrayLiteral() (carbono.Expr, error) {
	line := p.cur.line
	if err := p.expectSymbol("["); err != nil {
		return nil, err
	}
	var items []carbono.Expr
	for !p.atSymbol("]") {
		item, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if p.atSymbol(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.expectSymbol("]"); err != nil {
		return nil, err
	}
	elemType := "inteiro32"
	if len(items) > 0 {
		elemType = inferredTypeOf(items[0])
	}
	return &carbono.ArrayLiteral{BaseExpr: be(line), ElemType: elemType, Items: items}, nil
}
