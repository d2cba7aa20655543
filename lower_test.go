package carbono

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeStack_Discipline(t *testing.T) {
	s := NewScopeStack()
	assert.Equal(t, 0, s.Depth())

	s.Enter()
	s.Bind("x", Binding{Base: "inteiro32"})
	assert.Equal(t, 1, s.Depth())

	s.Enter()
	s.Bind("y", Binding{Base: "texto"})
	assert.Equal(t, 2, s.Depth())
	s.Exit()
	assert.Equal(t, 1, s.Depth())

	_, ok := s.Lookup("y")
	assert.False(t, ok, "y must not be visible after its frame exits")

	_, ok = s.Lookup("x")
	assert.True(t, ok, "x is still visible in the outer frame")

	s.Exit()
	assert.Equal(t, 0, s.Depth())
}

func TestScopeStack_ShadowingAndOverwrite(t *testing.T) {
	s := NewScopeStack()
	s.Enter()
	s.Bind("n", Binding{Base: "inteiro32"})
	s.Bind("n", Binding{Base: "real64"})
	b, ok := s.Lookup("n")
	require.True(t, ok)
	assert.Equal(t, "real64", b.Base, "duplicate name in one frame overwrites")

	s.Enter()
	s.Bind("n", Binding{Base: "texto"})
	inner, _ := s.Lookup("n")
	assert.Equal(t, "texto", inner.Base)
	s.Exit()

	outer, _ := s.Lookup("n")
	assert.Equal(t, "real64", outer.Base, "outer binding unaffected by inner shadow")
}

func TestBinding_IsPointer(t *testing.T) {
	reg := NewTypeRegistry()
	reg.RegisterStruct("Pessoa")

	tests := []struct {
		name string
		b    Binding
		want bool
	}{
		{"plain int", newBinding("inteiro32", reg, false), false},
		{"struct scalar", newBinding("Pessoa", reg, false), true},
		{"struct array binding", Binding{Base: "Pessoa", IsStruct: true, ArrayDepth: 1}, false},
		{"forced reference (eu/self)", newBinding("inteiro32", reg, true), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.b.IsPointer())
		})
	}
}

func TestSanitizeCIdent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"assets/hi.txt", "assets_hi_txt"},
		{"a/b.png", "a_b_png"},
		{"plain", "plain"},
		{"9start", "_9start"},
		{"", "_"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeCIdent(tt.in), "sanitizeCIdent(%q)", tt.in)
	}
}

func TestCType_ArraysAreRuntimeValues(t *testing.T) {
	reg := NewTypeRegistry()
	reg.RegisterStruct("Pessoa")

	assert.Equal(t, "Pessoa*", cType("Pessoa", reg))
	assert.Equal(t, "carbono_array", cType("[Pessoa]", reg))
	assert.Equal(t, "carbono_array", cType("[inteiro32]", reg))
	assert.Equal(t, "void", cType("nao_existe", reg))
}

func TestElemCType_StructArrayElementIsPointer(t *testing.T) {
	reg := NewTypeRegistry()
	reg.RegisterStruct("Pessoa")
	l := newLowerer(NewConfig(), ".")
	l.types = reg

	structArr := Binding{Base: "Pessoa", IsStruct: true, ArrayDepth: 1}
	assert.Equal(t, "Pessoa*", l.elemCType(structArr))

	intArr := Binding{Base: "inteiro32", ArrayDepth: 1}
	assert.Equal(t, "int", l.elemCType(intArr))
}

func TestLower_HelloWorld(t *testing.T) {
	root := &Program{Name: "H", Root: &Block{Items: []Stmt{
		&ExprStmt{X: &FuncCall{Name: "escreval", Args: []Expr{&LiteralString{Value: "Oi"}}}},
	}}}
	c, _, _, err := Lower(root, "test.sl", nil)
	require.NoError(t, err)
	assert.Contains(t, c, "int main(int argc, char **argv) {")
	assert.Contains(t, c, `"Oi"`)
	assert.Contains(t, c, "return 0;")
}

func TestLower_IndentWidthConfigurable(t *testing.T) {
	root := &Program{Name: "H", Root: &Block{Items: []Stmt{
		&ExprStmt{X: &FuncCall{Name: "escreval", Args: []Expr{&LiteralString{Value: "Oi"}}}},
	}}}

	cfg := NewConfig()
	cfg.SetInt("codegen.indent_width", 4)
	c, _, _, err := Lower(root, "test.sl", cfg)
	require.NoError(t, err)
	assert.Contains(t, c, "\n    fputs(\"Oi\", stdout);")
}

func TestLower_RangeLoop(t *testing.T) {
	root := &Program{Name: "H", Root: &Block{Items: []Stmt{
		&Cada{
			CadaVar: "i", CadaType: "inteiro32",
			Start: &LiteralInt{Value: 0}, End: &LiteralInt{Value: 3}, Step: &LiteralInt{Value: 1},
			Body: &Block{Items: []Stmt{
				&ExprStmt{X: &FuncCall{Name: "escreval", Args: []Expr{&VarRef{Name: "i"}}}},
			}},
		},
	}}}
	c, _, _, err := Lower(root, "test.sl", nil)
	require.NoError(t, err)
	assert.Contains(t, c, "for (int i = 0; i < 3; i += 1) {")
}

func TestLower_StructReferenceRoundTrip(t *testing.T) {
	root := &Program{Name: "H", Root: &Block{Items: []Stmt{
		&StructDef{Name: "N", Fields: []StructField{{Name: "v", Type: "inteiro32"}}},
		&VarDecl{Name: "n", Type: "N"},
		&Assign{LHS: &VarRef{Name: "n"}, RHS: &New{Type: "N"}},
		&Assign{LHS: &PropAccess{Receiver: &VarRef{Name: "n"}, Field: "v"}, RHS: &LiteralInt{Value: 10}},
		&ExprStmt{X: &FuncCall{Name: "escreval", Args: []Expr{&PropAccess{Receiver: &VarRef{Name: "n"}, Field: "v"}}}},
	}}}
	c, _, _, err := Lower(root, "test.sl", nil)
	require.NoError(t, err)
	assert.Contains(t, c, "N* n = NULL;")
	assert.Contains(t, c, "(n->v) = 10;")
}

func TestLower_ArraySliceBounds(t *testing.T) {
	root := &Program{Name: "H", Root: &Block{Items: []Stmt{
		&VarDecl{Name: "a", Type: "[inteiro32]", Init: &ArrayLiteral{
			ElemType: "inteiro32",
			Items:    []Expr{&LiteralInt{Value: 1}, &LiteralInt{Value: 2}, &LiteralInt{Value: 3}, &LiteralInt{Value: 4}},
		}},
		&VarDecl{Name: "b", Type: "[inteiro32]", Init: &ArrayAccess{
			Base: &VarRef{Name: "a"}, Index: &LiteralInt{Value: 1}, End: &LiteralInt{Value: 3},
		}},
	}}}
	c, _, _, err := Lower(root, "test.sl", nil)
	require.NoError(t, err)
	assert.Contains(t, c, "carbono_array_slice")
}

func TestLower_EmbedAddressability(t *testing.T) {
	root := &Program{Name: "H", Root: &Block{Items: []Stmt{
		&VarDecl{Name: "x", Type: "texto", Init: &Embed{Path: "assets/hi.txt"}},
	}}}
	c, asm, _, err := Lower(root, "test.sl", nil)
	require.NoError(t, err)
	assert.Contains(t, asm, "_binary_assets_hi_txt_start")
	assert.Contains(t, asm, "_binary_assets_hi_txt_end")
	assert.Contains(t, c, "extern const char _binary_assets_hi_txt_start[]")
	assert.Contains(t, c, "extern const char _binary_assets_hi_txt_end[]")
}

func TestLower_InterpolationWithFormat(t *testing.T) {
	root := &Program{Name: "H", Root: &Block{Items: []Stmt{
		&VarDecl{Name: "p", Type: "real64", Init: &LiteralDouble{Value: 3.14159}},
		&ExprStmt{X: &FuncCall{Name: "escreval", Args: []Expr{&LiteralString{Value: "pi=${p:.2f}"}}}},
	}}}
	c, _, _, err := Lower(root, "test.sl", nil)
	require.NoError(t, err)
	assert.Contains(t, c, "%.2f")
}
