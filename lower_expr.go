package carbono

import (
	"fmt"
	"strconv"
)

// exprCategory is the coarse static type classification used to pick a
// printf conversion and to know whether `+`/`==` mean string concatenation/
// comparison instead of arithmetic (spec.md §4.3 BINARY_OP rules, §4.4
// type-directed format selection).
type exprCategory int

const (
	catUnknown exprCategory = iota
	catInt
	catUint
	catFloat
	catChar
	catBool
	catString
	catStruct
	catArray
)

// primitiveCategory classifies a primitive SL type name. Struct and array
// types are handled by the caller (inferBinding), since those need the type
// registry, not just the type map.
func primitiveCategory(base string) exprCategory {
	switch base {
	case "inteiro8", "i8", "inteiro16", "i16", "inteiro32", "i32", "inteiro64", "i64",
		"inteiro_arq", "inteiro":
		return catInt
	case "byte", "natural16", "n16", "natural32", "n32", "natural64", "n64",
		"natural_arq", "tamanho":
		return catUint
	case "real32", "r32", "real64", "r64", "real", "real_ext", "r_ext":
		return catFloat
	case "booleano", "bool":
		return catBool
	case "texto":
		return catString
	case "caractere":
		return catChar
	default:
		return catUnknown
	}
}

func categoryOf(b Binding) exprCategory {
	if b.ArrayDepth > 0 {
		return catArray
	}
	if b.IsStruct {
		return catStruct
	}
	return primitiveCategory(b.Base)
}

// inferBinding computes the structured type of an expression without a full
// type checker: literals carry their type, VarRef/PropAccess/ArrayAccess
// resolve through the scope stack and type registry, and anything whose
// type genuinely can't be known locally (a call's return type, a method's
// return type - tracking those is out of scope per spec.md's non-goals)
// reports ok=false so callers fall back to the documented integer default.
func (l *Lowerer) inferBinding(e Expr) (Binding, bool) {
	switch n := e.(type) {
	case *LiteralInt:
		return Binding{Base: "inteiro32"}, true
	case *LiteralDouble:
		return Binding{Base: "real64"}, true
	case *LiteralFloat:
		return Binding{Base: "real32"}, true
	case *LiteralBool:
		return Binding{Base: "booleano"}, true
	case *LiteralString:
		return Binding{Base: "texto"}, true
	case *LiteralNull:
		return Binding{}, false
	case *New:
		return Binding{Base: n.Type, IsStruct: l.types.IsStructType(n.Type), IsReference: true}, true
	case *Embed:
		return Binding{Base: "texto"}, true
	case *VarRef:
		return l.scope.Lookup(n.Name)
	case *PropAccess:
		if n.Field == "len" {
			return Binding{Base: "tamanho"}, true
		}
		recv, ok := l.inferBinding(n.Receiver)
		if !ok || recv.ArrayDepth > 0 || !recv.IsStruct {
			return Binding{}, false
		}
		ft, ok := l.types.LookupFieldType(recv.Base, n.Field)
		if !ok {
			return Binding{}, false
		}
		return newBinding(ft, l.types, false), true
	case *ArrayAccess:
		base, ok := l.inferBinding(n.Base)
		if !ok || base.ArrayDepth == 0 {
			return Binding{}, false
		}
		if n.End != nil {
			return base, true // slice: same element type, still an array
		}
		elem := base
		elem.ArrayDepth--
		elem.IsReference = elem.IsStruct && elem.ArrayDepth == 0
		return elem, true
	case *ArrayLiteral:
		elemBase := getBaseType(n.ElemType)
		return Binding{
			Base:       elemBase,
			ArrayDepth: getArrayDepth(n.ElemType) + 1,
			IsStruct:   l.types.IsStructType(elemBase),
		}, true
	case *BinaryOp:
		switch n.Op {
		case "==", "!=", "<", ">", "<=", ">=", "&&", "||":
			return Binding{Base: "booleano"}, true
		}
		if lb, ok := l.inferBinding(n.Left); ok && lb.ArrayDepth == 0 {
			if categoryOf(lb) != catUnknown {
				return lb, true
			}
		}
		if rb, ok := l.inferBinding(n.Right); ok && rb.ArrayDepth == 0 {
			return rb, true
		}
		return Binding{}, false
	case *UnaryOp:
		if n.Op == "!" {
			return Binding{Base: "booleano"}, true
		}
		return l.inferBinding(n.Operand)
	case *InputValue:
		if n.Type != "" {
			return newBinding(n.Type, l.types, false), true
		}
		return Binding{}, false
	default: // FuncCall, MethodCall: no return-type tracking (non-goal)
		return Binding{}, false
	}
}

// isPointerReceiver implements the single pointer-ness predicate called for
// by spec.md §9: true iff the expression's structured type says it's a
// reference. Because `self`/`eu` parameters are bound with IsReference
// forced true at bind time (spec.md §4.3 rule 4), and struct-returning
// forms (NEW, a struct field, a struct array element) infer IsReference
// through inferBinding, no call site needs to special-case the receiver's
// syntactic shape.
func (l *Lowerer) isPointerReceiver(e Expr) bool {
	b, ok := l.inferBinding(e)
	return ok && b.IsPointer()
}

// lowerExpr lowers an expression to a C fragment, discarding the inferred
// category. Most call sites don't need it.
func (l *Lowerer) lowerExpr(e Expr) string {
	c, _ := l.lowerExprTyped(e)
	return c
}

// lowerExprTyped lowers an expression and returns both its C fragment and
// its inferred category, used by the interpolation engine and by
// escreva/escreval's auto-format path.
func (l *Lowerer) lowerExprTyped(e Expr) (string, exprCategory) {
	b, ok := l.inferBinding(e)
	cat := catUnknown
	if ok {
		cat = categoryOf(b)
	}
	return l.lowerExprNode(e), cat
}

func (l *Lowerer) lowerExprNode(e Expr) string {
	switch n := e.(type) {
	case *LiteralInt:
		return strconv.FormatInt(n.Value, 10)
	case *LiteralDouble:
		return strconv.FormatFloat(n.Value, 'g', -1, 64)
	case *LiteralFloat:
		return strconv.FormatFloat(float64(n.Value), 'g', -1, 32) + "f"
	case *LiteralBool:
		if n.Value {
			return "1"
		}
		return "0"
	case *LiteralNull:
		return "NULL"
	case *LiteralString:
		pieces, _ := l.lowerInterpPieces(n.Value, n.Line)
		return l.renderInterpAsStringExpr(pieces)
	case *VarRef:
		return n.Name
	case *New:
		return fmt.Sprintf("(%s*)carbono_alloc(sizeof(%s))", n.Type, n.Type)
	case *Embed:
		return l.lowerEmbed(n)
	case *UnaryOp:
		return fmt.Sprintf("(%s%s)", n.Op, l.lowerExpr(n.Operand))
	case *BinaryOp:
		return l.lowerBinaryOp(n)
	case *PropAccess:
		return l.lowerPropAccess(n)
	case *ArrayAccess:
		return l.lowerArrayAccess(n)
	case *ArrayLiteral:
		return l.lowerArrayLiteral(n)
	case *FuncCall:
		return l.lowerFuncCall(n)
	case *MethodCall:
		return l.lowerMethodCall(n)
	case *InputValue:
		return l.lowerInputValue(n)
	default:
		l.warn(LowerWarning{Kind: WarnUnknownKind, Line: e.SourceLine()})
		return fmt.Sprintf("/* unknown expr kind %T */0", e)
	}
}

func (l *Lowerer) lowerBinaryOp(n *BinaryOp) string {
	lb, _ := l.inferBinding(n.Left)
	rb, _ := l.inferBinding(n.Right)
	isString := categoryOf(lb) == catString && categoryOf(rb) == catString

	left, right := l.lowerExpr(n.Left), l.lowerExpr(n.Right)

	if isString {
		switch n.Op {
		case "+":
			return fmt.Sprintf("carbono_string_concat(%s, %s)", left, right)
		case "==":
			return fmt.Sprintf("(carbono_string_cmp(%s, %s)==0)", left, right)
		case "!=":
			return fmt.Sprintf("(carbono_string_cmp(%s, %s)!=0)", left, right)
		}
	}
	return fmt.Sprintf("(%s %s %s)", left, n.Op, right)
}

// lowerPropAccess implements spec.md §4.3 rule 6 (`.`/`->` selection) and
// the SPEC_FULL.md `.len` extension.
func (l *Lowerer) lowerPropAccess(n *PropAccess) string {
	recv := l.lowerExpr(n.Receiver)
	if n.Field == "len" {
		if recvB, ok := l.inferBinding(n.Receiver); ok && recvB.ArrayDepth > 0 {
			return fmt.Sprintf("((%s).len)", recv)
		}
		if recvB, ok := l.inferBinding(n.Receiver); ok && categoryOf(recvB) == catString {
			return fmt.Sprintf("((%s).len)", recv)
		}
	}
	if l.isPointerReceiver(n.Receiver) {
		return fmt.Sprintf("(%s->%s)", recv, n.Field)
	}
	if v, ok := n.Receiver.(*VarRef); ok {
		if _, found := l.scope.Lookup(v.Name); !found {
			l.warn(LowerWarning{Kind: WarnUnresolvedName, Line: n.Line, Name: v.Name})
		}
	}
	return fmt.Sprintf("(%s.%s)", recv, n.Field)
}

// lowerArrayAccess implements spec.md §4.3's slice rule and rule 7 (`arr[i]`
// on a struct array yields `T*`).
func (l *Lowerer) lowerArrayAccess(n *ArrayAccess) string {
	base := l.lowerExpr(n.Base)
	if n.End != nil {
		lo, hi := l.lowerExpr(n.Index), l.lowerExpr(n.End)
		return fmt.Sprintf("carbono_array_slice(&(%s), (long)(%s), (long)(%s))", base, lo, hi)
	}
	idx := l.lowerExpr(n.Index)
	elemType := "void"
	if baseBinding, ok := l.inferBinding(n.Base); ok {
		elemType = l.elemCType(baseBinding)
	}
	return fmt.Sprintf("(*(%s*)carbono_array_at(&(%s), (size_t)(%s)))", elemType, base, idx)
}

// elemCType is the C type of one stored element of an array-typed binding
// (spec.md §4.3 rule 7: a struct element is itself a pointer, so a
// struct-array's element type carries one star, same as any other
// struct-typed binding).
func (l *Lowerer) elemCType(b Binding) string {
	if b.ArrayDepth == 0 {
		return cType(b.TypeString(), l.types)
	}
	elem := b
	elem.ArrayDepth--
	return cType(elem.TypeString(), l.types)
}

func (l *Lowerer) lowerArrayLiteral(n *ArrayLiteral) string {
	elemCType := cType(n.ElemType, l.types)
	out := fmt.Sprintf("({ carbono_array _cb_a = carbono_array_new(sizeof(%s)); ", elemCType)
	for _, item := range n.Items {
		v := l.lowerExpr(item)
		out += fmt.Sprintf("{ %s _cb_e = %s; carbono_array_append(&_cb_a, &_cb_e); } ", elemCType, v)
	}
	out += "_cb_a; })"
	return out
}

func (l *Lowerer) lowerFuncCall(n *FuncCall) string {
	switch n.Name {
	case "escreval", "escreva":
		// Statement-shaped; reached here only when used as a sub-expression
		// (e.g. nested inside another call), which SL doesn't really
		// support since print returns nothing. Fall through to a normal
		// call so codegen stays total instead of panicking.
	}
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = l.lowerExpr(a)
	}
	return fmt.Sprintf("%s(%s)", n.Name, joinArgs(args))
}

func (l *Lowerer) lowerMethodCall(n *MethodCall) string {
	var recvExpr Expr
	recvName := n.ReceiverName
	if n.Receiver != nil {
		recvExpr = n.Receiver
	} else {
		recvExpr = &VarRef{BaseExpr: BaseExpr{BaseNode{n.Line}}, Name: recvName}
	}

	if b, ok := l.scope.Lookup(receiverNameOf(recvExpr)); ok && b.IsModule {
		// Module-scoped call: dispatch through the dlsym'd function
		// pointer field instead of object method syntax.
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = l.lowerExpr(a)
		}
		return fmt.Sprintf("g_%s.%s(%s)", b.Base, n.Method, joinArgs(args))
	}

	recv := l.lowerExpr(recvExpr)
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = l.lowerExpr(a)
	}
	allArgs := append([]string{}, args...)
	var first string
	if l.isPointerReceiver(recvExpr) {
		first = recv
	} else {
		first = "&(" + recv + ")"
	}
	allArgs = append([]string{first}, allArgs...)
	return fmt.Sprintf("%s(%s)", n.Method, joinArgs(allArgs))
}

func receiverNameOf(e Expr) string {
	if v, ok := e.(*VarRef); ok {
		return v.Name
	}
	return ""
}

// lowerInputValue implements the documented fallback: when the variable's
// type can't be resolved, read an integer (spec.md §9 "Input-reading
// default").
func (l *Lowerer) lowerInputValue(n *InputValue) string {
	t := n.Type
	if t == "" {
		l.warn(LowerWarning{Kind: WarnUnresolvedName, Line: n.Line})
		return "carbono_read_int()"
	}
	switch primitiveCategory(getBaseType(t)) {
	case catFloat:
		return "carbono_read_double()"
	case catString:
		return "carbono_read_line()"
	case catBool:
		return "carbono_read_bool()"
	default:
		return "carbono_read_int()"
	}
}

func joinArgs(args []string) string {
	out := ""
	for i, a := range args {
		if i > 0 {
			out += ", "
		}
		out += a
	}
	return out
}
