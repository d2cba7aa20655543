package carbono

// Node is the root of the AST's sum type. Every concrete node type below
// implements exactly one of Stmt or Expr (Program/Library/Block also embed
// Node directly, since they're neither statements nor expressions). The
// unexported node() method seals the interface to this package: the
// frontend builds these values directly rather than through an adapter, and
// nothing outside carbono can forge a node kind the lowering engine doesn't
// know about.
//
// This replaces the source project's single overloaded node record (one
// struct multiplexing `data_type` between "type" and "operator", and `name`
// between "identifier" and "receiver variable") with one Go type per kind,
// each carrying only the fields its kind actually uses.
type Node interface {
	// SourceLine is the 1-based line the node came from, used for
	// diagnostics (unresolved-name warnings, ASSERT failure reports).
	SourceLine() int
	node()
}

// Stmt is any node valid as a BLOCK child or FUNC_DEF body statement.
type Stmt interface {
	Node
	stmt()
}

// Expr is any node valid wherever a value is expected.
type Expr interface {
	Node
	expr()
}

type BaseNode struct{ Line int }

func (b BaseNode) SourceLine() int { return b.Line }
func (BaseNode) node()             {}

type BaseStmt struct{ BaseNode }

func (BaseStmt) stmt() {}

type BaseExpr struct{ BaseNode }

func (BaseExpr) expr() {}

// ---- Programs & scopes ----

// Program is the root of a PROGRAM compilation unit. It lowers to a
// generated `main`.
type Program struct {
	BaseNode
	Name string
	Root *Block
}

// Library is the root of a LIBRARY compilation unit. It lowers to a
// generated constructor function instead of `main` and never executes
// top-level statements in a `main`.
type Library struct {
	BaseNode
	Name string
	Root *Block
}

// Block is an ordered sequence of statements and declarations in source
// order (spec.md §4.1: "children are statements and declarations in source
// order").
type Block struct {
	BaseNode
	Items []Stmt
}

// ---- Declarations ----

// VarDecl declares a local or top-level variable. Init is nil when the
// declaration has no initializer (spec.md §4.3 rule 1: a struct-typed
// VarDecl with no initializer declares a null pointer).
type VarDecl struct {
	BaseStmt
	Name string
	Type string
	Init Expr
}

// Param is a FuncDef parameter. It is not a Node: it only ever appears
// inside a FuncDef's Params slice, never as a free-standing child.
type Param struct {
	Name string
	Type string
}

// FuncDef declares a function. Body is nil for an extern prototype (spec.md
// §4.1: "A FUNC_DEF with no body is an extern prototype").
type FuncDef struct {
	BaseStmt
	Name       string
	ReturnType string
	Params     []Param
	Body       *Block
}

// StructField is one STRUCT_DEF member; like Param it never appears as a
// free-standing AST child.
type StructField struct {
	Name string
	Type string
}

// StructDef declares a user struct type, registered into the type registry
// during lowering's struct pass.
type StructDef struct {
	BaseStmt
	Name   string
	Fields []StructField
}

// ExternFunc is one function prototype inside an EXTERN_BLOCK, aliased from
// a dynamically loaded library symbol.
type ExternFunc struct {
	Name       string
	Alias      string // FuncAlias: symbol name inside LibName, defaults to Name
	ReturnType string
	Params     []Param
}

// ExternBlock declares a foreign-function import namespace. It lowers to a
// generated module struct populated via dlopen/dlsym in main's prelude
// (spec.md §4.3's pre-pass 2, SPEC_FULL.md's "extern block module
// namespace struct").
type ExternBlock struct {
	BaseStmt
	Name    string // namespace alias bound in scope as a MODULE binding
	LibName string
	Funcs   []ExternFunc
}

// ---- Statements ----

// AssignTarget is the sum type of valid ASSIGN left-hand sides (spec.md
// §4.1: "lhs ∈ { VAR_REF-shaped, PROP_ACCESS, ARRAY_ACCESS }").
type AssignTarget interface {
	Node
	assignTarget()
}

// Assign is `lhs = rhs`.
type Assign struct {
	BaseStmt
	LHS AssignTarget
	RHS Expr
}

// If is a conditional with an optional else branch. The legacy
// name-based/data_type-as-operator IF form from spec.md §4.1 is not
// represented: the frontend always produces the cond-expr form, per the
// DESIGN NOTES instruction to collapse to the first form.
type If struct {
	BaseStmt
	Cond Expr
	Then *Block
	Else *Block // nil when there's no else branch
}

// Enquanto is a `while`-shaped loop (spec.md: "ENQUANTO: analogous to IF
// minus the else").
type Enquanto struct {
	BaseStmt
	Cond Expr
	Body *Block
}

// Cada is a half-open ranged for-loop: `for CadaVar in [Start, End) step
// Step`. Step defaults to a LiteralInt{Value: 1} and CadaType defaults to
// "inteiro32" when the frontend doesn't supply them.
type Cada struct {
	BaseStmt
	CadaVar  string
	CadaType string
	Start    Expr
	End      Expr
	Step     Expr
	Body     *Block
}

// Infinito is an unconditional loop, `for (;;)`.
type Infinito struct {
	BaseStmt
	Body *Block
}

// Break is `break`.
type Break struct{ BaseStmt }

// Continue is `continue`.
type Continue struct{ BaseStmt }

// Return is `return`/`return expr`. Value is nil for a bare return.
type Return struct {
	BaseStmt
	Value Expr
}

// InputPause is the "press enter to continue" statement (SPEC_FULL.md
// supplemented feature, present in original_source/src/codegen.c but only
// named, not specified, by spec.md §3.3).
type InputPause struct {
	BaseStmt
	Prompt Expr // nil when there's no prompt literal
}

// Assert lowers to `if (!(Cond)) { report(Message, line); exit(1); }`
// (spec.md §4.3).
type Assert struct {
	BaseStmt
	Cond    Expr
	Message Expr
}

// ExprStmt is an expression used in statement position: a bare FUNC_CALL
// or METHOD_CALL whose value is discarded (e.g. `escreval("Oi")` or
// `arr.push(x)` as a block item). spec.md's statement list doesn't name
// this kind separately since FUNC_CALL/METHOD_CALL are expressions there;
// ExprStmt is the thin wrapper that lets them sit in a Block's []Stmt.
type ExprStmt struct {
	BaseStmt
	X Expr
}

// ---- Expressions ----

// FuncCall is `Name(Args...)`.
type FuncCall struct {
	BaseExpr
	Name string
	Args []Expr
}

// MethodCall is `Receiver.Method(Args...)`. Receiver is nil when the
// receiver is implicit via Name (spec.md §4.1: "the receiver is `name` OR
// `children[0]`").
type MethodCall struct {
	BaseExpr
	Receiver     Expr // nil => implicit receiver named by ReceiverName
	ReceiverName string
	Method       string
	Args         []Expr
}

// PropAccess is `Receiver.Field`. It can appear as an expression or, via the
// AssignTarget embedding below, as an ASSIGN left-hand side.
type PropAccess struct {
	BaseExpr
	Receiver Expr
	Field    string
}

func (*PropAccess) assignTarget() {}

// ArrayAccess is `Base[Index]` or, when End is non-nil, the half-open slice
// `Base[Index:End]` (spec.md §4.3: "two index children encodes a slice").
type ArrayAccess struct {
	BaseExpr
	Base  Expr
	Index Expr
	End   Expr // nil for a plain index, non-nil for a slice
}

func (*ArrayAccess) assignTarget() {}

// ArrayLiteral is `[Items...]`.
type ArrayLiteral struct {
	BaseExpr
	ElemType string
	Items    []Expr
}

// VarRef is a bare identifier reference. It also serves as an ASSIGN
// left-hand side (spec.md §4.1: "VAR_REF-shaped (encoded via name)").
type VarRef struct {
	BaseExpr
	Name string
}

func (*VarRef) assignTarget() {}

// BinaryOp is `Left Op Right`.
type BinaryOp struct {
	BaseExpr
	Op    string
	Left  Expr
	Right Expr
}

// UnaryOp is `Op Operand` (e.g. `-x`, `!x`).
type UnaryOp struct {
	BaseExpr
	Op      string
	Operand Expr
}

// InputValue is an implicit typed-read expression (`leia`-style). Type is
// the statically expected type, when known; it is empty when the frontend
// couldn't resolve it syntactically, in which case lowering applies the
// documented integer-read fallback (spec.md §4.3, §9 "Input-reading
// default").
type InputValue struct {
	BaseExpr
	Type string
}

// New is `nova T`: allocates a zero-filled T (spec.md §4.3 rule 2).
type New struct {
	BaseExpr
	Type string
}

// Embed is `@embutir("path")` (spec.md §4.5).
type Embed struct {
	BaseExpr
	Path string
}

// ---- Literals ----

type LiteralInt struct {
	BaseExpr
	Value int64
}

type LiteralDouble struct {
	BaseExpr
	Value float64
}

type LiteralFloat struct {
	BaseExpr
	Value float32
}

// LiteralString carries the raw, unescaped-but-for-`${`-scanning source
// text; the interpolation engine (interp.go) tokenizes Value lazily during
// lowering rather than the frontend pre-splitting it.
type LiteralString struct {
	BaseExpr
	Value string
}

type LiteralBool struct {
	BaseExpr
	Value bool
}

type LiteralNull struct{ BaseExpr }
