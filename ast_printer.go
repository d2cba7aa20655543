package carbono

import (
	"fmt"
	"strings"
)

// DumpAST renders a tree for --debug/-d (spec.md §6.1). It walks the sum
// type with a single type switch rather than a full AstNodeVisitor,
// matching this package's lowering engine: the visitor pattern earns its
// keep when many independent passes need the same traversal, and here
// there's only this one.
func DumpAST(root Node) string {
	var b strings.Builder
	dumpNode(&b, root, 0)
	return b.String()
}

func dumpLine(b *strings.Builder, depth int, format string, args ...any) {
	b.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(b, format, args...)
	b.WriteString("\n")
}

func dumpNode(b *strings.Builder, n Node, depth int) {
	switch v := n.(type) {
	case *Program:
		dumpLine(b, depth, "Program %s", v.Name)
		dumpNode(b, v.Root, depth+1)
	case *Library:
		dumpLine(b, depth, "Library %s", v.Name)
		dumpNode(b, v.Root, depth+1)
	case *Block:
		dumpLine(b, depth, "Block")
		for _, s := range v.Items {
			dumpNode(b, s, depth+1)
		}
	case *VarDecl:
		dumpLine(b, depth, "VarDecl %s: %s", v.Name, v.Type)
		if v.Init != nil {
			dumpNode(b, v.Init, depth+1)
		}
	case *FuncDef:
		dumpLine(b, depth, "FuncDef %s(%s) %s", v.Name, dumpParams(v.Params), v.ReturnType)
		if v.Body != nil {
			dumpNode(b, v.Body, depth+1)
		}
	case *StructDef:
		dumpLine(b, depth, "StructDef %s", v.Name)
		for _, f := range v.Fields {
			dumpLine(b, depth+1, "Field %s: %s", f.Name, f.Type)
		}
	case *ExternBlock:
		dumpLine(b, depth, "ExternBlock %s from %q", v.Name, v.LibName)
		for _, f := range v.Funcs {
			dumpLine(b, depth+1, "ExternFunc %s(%s) %s", f.Name, dumpParams(f.Params), f.ReturnType)
		}
	case *Assign:
		dumpLine(b, depth, "Assign")
		dumpNode(b, v.LHS, depth+1)
		dumpNode(b, v.RHS, depth+1)
	case *If:
		dumpLine(b, depth, "If")
		dumpNode(b, v.Cond, depth+1)
		dumpNode(b, v.Then, depth+1)
		if v.Else != nil {
			dumpNode(b, v.Else, depth+1)
		}
	case *Enquanto:
		dumpLine(b, depth, "Enquanto")
		dumpNode(b, v.Cond, depth+1)
		dumpNode(b, v.Body, depth+1)
	case *Cada:
		dumpLine(b, depth, "Cada %s: %s", v.CadaVar, v.CadaType)
		dumpNode(b, v.Start, depth+1)
		dumpNode(b, v.End, depth+1)
		dumpNode(b, v.Body, depth+1)
	case *Infinito:
		dumpLine(b, depth, "Infinito")
		dumpNode(b, v.Body, depth+1)
	case *Break:
		dumpLine(b, depth, "Break")
	case *Continue:
		dumpLine(b, depth, "Continue")
	case *Return:
		dumpLine(b, depth, "Return")
		if v.Value != nil {
			dumpNode(b, v.Value, depth+1)
		}
	case *InputPause:
		dumpLine(b, depth, "InputPause")
	case *Assert:
		dumpLine(b, depth, "Assert")
		dumpNode(b, v.Cond, depth+1)
	case *ExprStmt:
		dumpLine(b, depth, "ExprStmt")
		dumpNode(b, v.X, depth+1)
	case *FuncCall:
		dumpLine(b, depth, "FuncCall %s", v.Name)
		for _, a := range v.Args {
			dumpNode(b, a, depth+1)
		}
	case *MethodCall:
		dumpLine(b, depth, "MethodCall .%s on %s", v.Method, v.ReceiverName)
		for _, a := range v.Args {
			dumpNode(b, a, depth+1)
		}
	case *PropAccess:
		dumpLine(b, depth, "PropAccess .%s", v.Field)
		dumpNode(b, v.Receiver, depth+1)
	case *ArrayAccess:
		dumpLine(b, depth, "ArrayAccess")
		dumpNode(b, v.Base, depth+1)
		dumpNode(b, v.Index, depth+1)
	case *ArrayLiteral:
		dumpLine(b, depth, "ArrayLiteral %s", v.ElemType)
		for _, it := range v.Items {
			dumpNode(b, it, depth+1)
		}
	case *VarRef:
		dumpLine(b, depth, "VarRef %s", v.Name)
	case *BinaryOp:
		dumpLine(b, depth, "BinaryOp %s", v.Op)
		dumpNode(b, v.Left, depth+1)
		dumpNode(b, v.Right, depth+1)
	case *UnaryOp:
		dumpLine(b, depth, "UnaryOp %s", v.Op)
		dumpNode(b, v.Operand, depth+1)
	case *InputValue:
		dumpLine(b, depth, "InputValue %s", v.Type)
	case *New:
		dumpLine(b, depth, "New %s", v.Type)
	case *Embed:
		dumpLine(b, depth, "Embed %q", v.Path)
	case *LiteralInt:
		dumpLine(b, depth, "LiteralInt %d", v.Value)
	case *LiteralDouble:
		dumpLine(b, depth, "LiteralDouble %g", v.Value)
	case *LiteralFloat:
		dumpLine(b, depth, "LiteralFloat %g", v.Value)
	case *LiteralString:
		dumpLine(b, depth, "LiteralString %q", v.Value)
	case *LiteralBool:
		dumpLine(b, depth, "LiteralBool %v", v.Value)
	case *LiteralNull:
		dumpLine(b, depth, "LiteralNull")
	default:
		dumpLine(b, depth, "<unknown %T>", n)
	}
}

func dumpParams(params []Param) string {
	var parts []string
	for _, p := range params {
		parts = append(parts, p.Name+": "+p.Type)
	}
	return strings.Join(parts, ", ")
}
