package carbono

import "fmt"

// lowerStmt dispatches one statement to the C sink. Every statement kind in
// spec.md §3.3 (and SPEC_FULL.md's supplemented InputPause) has a case;
// anything else falls to the documented unknown-kind comment marker
// instead of panicking, matching the non-fatal-lowering policy in §7.
func (l *Lowerer) lowerStmt(s Stmt) {
	switch n := s.(type) {
	case *VarDecl:
		l.lowerVarDecl(n)
	case *Assign:
		l.lowerAssign(n)
	case *If:
		l.lowerIf(n)
	case *Enquanto:
		l.lowerEnquanto(n)
	case *Cada:
		l.lowerCada(n)
	case *Infinito:
		l.lowerInfinito(n)
	case *Break:
		l.out.writeil("break;")
	case *Continue:
		l.out.writeil("continue;")
	case *Return:
		l.lowerReturn(n)
	case *InputPause:
		l.lowerInputPause(n)
	case *Assert:
		l.lowerAssert(n)
	case *ExprStmt:
		l.lowerExprStmt(n)
	default:
		l.warn(LowerWarning{Kind: WarnUnknownKind, Line: s.SourceLine()})
		l.out.writeil(fmt.Sprintf("/* unknown statement kind %T */", s))
	}
}

func (l *Lowerer) lowerBlock(b *Block) {
	l.scope.Enter()
	for _, s := range b.Items {
		l.lowerStmt(s)
	}
	l.scope.Exit()
}

func (l *Lowerer) lowerVarDecl(n *VarDecl) {
	b := newBinding(n.Type, l.types, false)
	l.scope.Bind(n.Name, b)
	ct := cType(n.Type, l.types)

	if n.Init != nil {
		l.out.writeil(fmt.Sprintf("%s %s = %s;", ct, n.Name, l.lowerExpr(n.Init)))
		return
	}

	switch {
	case b.IsPointer():
		// Struct-typed with no initializer declares a null pointer
		// (spec.md §4.3 rule 1).
		l.out.writeil(fmt.Sprintf("%s %s = NULL;", ct, n.Name))
	case b.ArrayDepth > 0:
		l.out.writeil(fmt.Sprintf("%s %s = carbono_array_new(sizeof(%s));", ct, n.Name, l.elemCType(b)))
	case categoryOf(b) == catString:
		l.out.writeil(fmt.Sprintf("%s %s = carbono_string_new();", ct, n.Name))
	default:
		l.out.writeil(fmt.Sprintf("%s %s = 0;", ct, n.Name))
	}
}

// lowerAssign lowers `lhs = rhs`. The left-hand side reuses the ordinary
// expression lowering for PropAccess/ArrayAccess (both already resolve to
// valid C lvalues); VarRef assigns by name directly.
func (l *Lowerer) lowerAssign(n *Assign) {
	lhs := l.lowerAssignTarget(n.LHS)
	rhs := l.lowerExpr(n.RHS)
	l.out.writeil(fmt.Sprintf("%s = %s;", lhs, rhs))
}

func (l *Lowerer) lowerAssignTarget(t AssignTarget) string {
	switch n := t.(type) {
	case *VarRef:
		return n.Name
	case *PropAccess:
		return l.lowerPropAccess(n)
	case *ArrayAccess:
		return l.lowerArrayAccess(n)
	default:
		l.warn(LowerWarning{Kind: WarnUnknownKind, Line: t.SourceLine()})
		return "/* unknown assign target */"
	}
}

func (l *Lowerer) lowerIf(n *If) {
	l.out.writeil(fmt.Sprintf("if (%s) {", l.lowerExpr(n.Cond)))
	l.out.indent()
	l.lowerBlock(n.Then)
	l.out.unindent()
	if n.Else != nil {
		l.out.writeil("} else {")
		l.out.indent()
		l.lowerBlock(n.Else)
		l.out.unindent()
	}
	l.out.writeil("}")
}

func (l *Lowerer) lowerEnquanto(n *Enquanto) {
	l.out.writeil(fmt.Sprintf("while (%s) {", l.lowerExpr(n.Cond)))
	l.out.indent()
	l.lowerBlock(n.Body)
	l.out.unindent()
	l.out.writeil("}")
}

// lowerCada emits a half-open `[Start, End)` ranged loop (spec.md §4.3).
// CadaVar is bound in its own frame so it's visible to Body but not beyond.
func (l *Lowerer) lowerCada(n *Cada) {
	ct := cType(n.CadaType, l.types)
	step := "1"
	if n.Step != nil {
		step = l.lowerExpr(n.Step)
	}
	start, end := l.lowerExpr(n.Start), l.lowerExpr(n.End)

	l.scope.Enter()
	l.scope.Bind(n.CadaVar, newBinding(n.CadaType, l.types, false))
	l.out.writeil(fmt.Sprintf("for (%s %s = %s; %s < %s; %s += %s) {", ct, n.CadaVar, start, n.CadaVar, end, n.CadaVar, step))
	l.out.indent()
	for _, s := range n.Body.Items {
		l.lowerStmt(s)
	}
	l.out.unindent()
	l.out.writeil("}")
	l.scope.Exit()
}

func (l *Lowerer) lowerInfinito(n *Infinito) {
	l.out.writeil("for (;;) {")
	l.out.indent()
	l.lowerBlock(n.Body)
	l.out.unindent()
	l.out.writeil("}")
}

func (l *Lowerer) lowerReturn(n *Return) {
	if n.Value == nil {
		l.out.writeil("return;")
		return
	}
	l.out.writeil(fmt.Sprintf("return %s;", l.lowerExpr(n.Value)))
}

func (l *Lowerer) lowerInputPause(n *InputPause) {
	if n.Prompt != nil {
		if lit, ok := n.Prompt.(*LiteralString); ok {
			pieces, _ := l.lowerInterpPieces(lit.Value, n.Line)
			writePrintStatements(l.out, pieces, false)
		} else {
			v, cat := l.lowerExprTyped(n.Prompt)
			writePrintStatements(l.out, []interpCPiece{{cExpr: v, category: cat}}, false)
		}
	}
	l.out.writeil("carbono_input_pause();")
}

// lowerAssert emits `if (!(Cond)) { report; exit(1); }` (spec.md §4.3).
func (l *Lowerer) lowerAssert(n *Assert) {
	l.out.writeil(fmt.Sprintf("if (!(%s)) {", l.lowerExpr(n.Cond)))
	l.out.indent()
	if n.Message != nil {
		l.out.writeil(fmt.Sprintf("fprintf(stderr, \"assertion failed at line %d: %%s\\n\", (%s).data);", n.Line, l.lowerExpr(n.Message)))
	} else {
		l.out.writeil(fmt.Sprintf("fprintf(stderr, \"assertion failed at line %d\\n\");", n.Line))
	}
	l.out.writeil("exit(1);")
	l.out.unindent()
	l.out.writeil("}")
}

// lowerExprStmt discards an expression-statement's value, special-casing
// escreva/escreval calls.
func (l *Lowerer) lowerExprStmt(n *ExprStmt) {
	if fc, ok := n.X.(*FuncCall); ok {
		l.lowerCallStmt(fc)
		return
	}
	l.out.writeil(l.lowerExpr(n.X) + ";")
}

// lowerCallStmt special-cases escreva/escreval (spec.md's print builtins,
// named via original_source/'s codegen.c) so a literal-string argument
// prints directly instead of building a throwaway carbono_string first.
func (l *Lowerer) lowerCallStmt(n *FuncCall) {
	switch n.Name {
	case "escreva", "escreval":
		newline := n.Name == "escreval"
		if len(n.Args) == 1 {
			if lit, ok := n.Args[0].(*LiteralString); ok {
				pieces, _ := l.lowerInterpPieces(lit.Value, lit.Line)
				writePrintStatements(l.out, pieces, newline)
				return
			}
		}
		for _, a := range n.Args {
			v, cat := l.lowerExprTyped(a)
			piece := interpCPiece{cExpr: v, category: cat}
			writePrintStatements(l.out, []interpCPiece{piece}, false)
		}
		if newline {
			l.out.writeil("fputs(\"\\n\", stdout);")
		}
		return
	}
	l.out.writeil(l.lowerExpr(n) + ";")
}
