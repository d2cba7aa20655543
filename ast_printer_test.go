package carbono

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDumpAST_NestedStructure(t *testing.T) {
	root := &Program{Name: "Demo", Root: &Block{Items: []Stmt{
		&StructDef{Name: "Pessoa", Fields: []StructField{{Name: "idade", Type: "inteiro32"}}},
		&VarDecl{Name: "p", Type: "Pessoa", Init: &New{Type: "Pessoa"}},
		&If{
			Cond: &BinaryOp{Op: ">", Left: &PropAccess{Receiver: &VarRef{Name: "p"}, Field: "idade"}, Right: &LiteralInt{Value: 17}},
			Then: &Block{Items: []Stmt{&ExprStmt{X: &FuncCall{Name: "escreval", Args: []Expr{&LiteralString{Value: "adulto"}}}}}},
		},
	}}}

	out := DumpAST(root)
	assert.Contains(t, out, "Program Demo")
	assert.Contains(t, out, "StructDef Pessoa")
	assert.Contains(t, out, "Field idade: inteiro32")
	assert.Contains(t, out, "VarDecl p: Pessoa")
	assert.Contains(t, out, "New Pessoa")
	assert.Contains(t, out, "If")
	assert.Contains(t, out, "BinaryOp >")
	assert.Contains(t, out, `PropAccess .idade`)
	assert.Contains(t, out, `FuncCall escreval`)
	assert.Contains(t, out, `LiteralString "adulto"`)
}

func TestDumpAST_EmptyLibraryHasNoUnknownMarker(t *testing.T) {
	out := DumpAST(&Library{Name: "Lib", Root: &Block{}})
	assert.Contains(t, out, "Library Lib")
	assert.NotContains(t, out, "<unknown")
}

func TestDumpAST_IndentationTracksDepth(t *testing.T) {
	root := &Block{Items: []Stmt{
		&Enquanto{
			Cond: &LiteralBool{Value: true},
			Body: &Block{Items: []Stmt{&Break{}}},
		},
	}}
	out := DumpAST(root)
	assert.Contains(t, out, "Block\n  Enquanto\n")
	assert.Contains(t, out, "      Break")
}
