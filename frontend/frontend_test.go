package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbono-lang/carbono"
)

func TestParseUnit_HelloWorld(t *testing.T) {
	root, err := ParseUnit(`programa "H" { escreval("Oi"); }`)
	require.NoError(t, err)

	prog, ok := root.(*carbono.Program)
	require.True(t, ok, "root must be a *carbono.Program")
	assert.Equal(t, "H", prog.Name)
	require.Len(t, prog.Root.Items, 1)

	stmt, ok := prog.Root.Items[0].(*carbono.ExprStmt)
	require.True(t, ok, "bare call must lower to ExprStmt")
	call, ok := stmt.X.(*carbono.FuncCall)
	require.True(t, ok)
	assert.Equal(t, "escreval", call.Name)
}

func TestParseUnit_Library(t *testing.T) {
	root, err := ParseUnit(`biblioteca "Lib" { }`)
	require.NoError(t, err)
	_, ok := root.(*carbono.Library)
	assert.True(t, ok)
}

func TestParseUnit_StructDefAndFieldAccess(t *testing.T) {
	src := `programa "P" {
		estrutura Pessoa {
			nome: texto,
			idade: inteiro32
		}
		var p: Pessoa = nova Pessoa;
		p.idade = 10;
	}`
	root, err := ParseUnit(src)
	require.NoError(t, err)
	prog := root.(*carbono.Program)
	require.Len(t, prog.Root.Items, 3)

	sd, ok := prog.Root.Items[0].(*carbono.StructDef)
	require.True(t, ok)
	assert.Equal(t, "Pessoa", sd.Name)
	require.Len(t, sd.Fields, 2)
	assert.Equal(t, "nome", sd.Fields[0].Name)
	assert.Equal(t, "texto", sd.Fields[0].Type)

	assign, ok := prog.Root.Items[2].(*carbono.Assign)
	require.True(t, ok)
	prop, ok := assign.LHS.(*carbono.PropAccess)
	require.True(t, ok)
	assert.Equal(t, "idade", prop.Field)
}

func TestParseUnit_RangeLoopWithStep(t *testing.T) {
	root, err := ParseUnit(`programa "P" { cada (i: 0..10, passo 2) { escreval(i); } }`)
	require.NoError(t, err)
	prog := root.(*carbono.Program)
	cada, ok := prog.Root.Items[0].(*carbono.Cada)
	require.True(t, ok)
	assert.Equal(t, "i", cada.CadaVar)
	assert.Equal(t, "inteiro32", cada.CadaType)
	step, ok := cada.Step.(*carbono.LiteralInt)
	require.True(t, ok)
	assert.Equal(t, int64(2), step.Value)
}

func TestParseUnit_RangeLoopDefaultStep(t *testing.T) {
	root, err := ParseUnit(`programa "P" { cada (i: 0..10) { } }`)
	require.NoError(t, err)
	prog := root.(*carbono.Program)
	cada := prog.Root.Items[0].(*carbono.Cada)
	step, ok := cada.Step.(*carbono.LiteralInt)
	require.True(t, ok)
	assert.Equal(t, int64(1), step.Value)
}

func TestParseUnit_ArrayLiteralAndSlice(t *testing.T) {
	src := `programa "P" {
		var a = [1, 2, 3, 4];
		var b = a[1..3];
	}`
	root, err := ParseUnit(src)
	require.NoError(t, err)
	prog := root.(*carbono.Program)

	a := prog.Root.Items[0].(*carbono.VarDecl)
	lit, ok := a.Init.(*carbono.ArrayLiteral)
	require.True(t, ok)
	assert.Equal(t, "inteiro32", lit.ElemType)
	assert.Len(t, lit.Items, 4)

	b := prog.Root.Items[1].(*carbono.VarDecl)
	access, ok := b.Init.(*carbono.ArrayAccess)
	require.True(t, ok)
	assert.NotNil(t, access.End, "a[1..3] must parse as a slice")
}

func TestParseUnit_ExternBlock(t *testing.T) {
	src := `programa "P" {
		extern matematica de "libm.so" {
			funcao raiz(x: real64): real64 como "sqrt";
		}
	}`
	root, err := ParseUnit(src)
	require.NoError(t, err)
	prog := root.(*carbono.Program)
	eb, ok := prog.Root.Items[0].(*carbono.ExternBlock)
	require.True(t, ok)
	assert.Equal(t, "matematica", eb.Name)
	assert.Equal(t, "libm.so", eb.LibName)
	require.Len(t, eb.Funcs, 1)
	assert.Equal(t, "sqrt", eb.Funcs[0].Alias)
}

func TestParseUnit_EmbedExpression(t *testing.T) {
	root, err := ParseUnit(`programa "P" { var x = @embutir("assets/hi.txt"); }`)
	require.NoError(t, err)
	prog := root.(*carbono.Program)
	decl := prog.Root.Items[0].(*carbono.VarDecl)
	embed, ok := decl.Init.(*carbono.Embed)
	require.True(t, ok)
	assert.Equal(t, "assets/hi.txt", embed.Path)
	assert.Equal(t, "texto", decl.Type, "inferredTypeOf must default an Embed initializer to texto")
}

func TestParseUnit_OperatorPrecedence(t *testing.T) {
	// 1 + 2 * 3 must parse as 1 + (2 * 3), not (1 + 2) * 3.
	root, err := ParseUnit(`programa "P" { var r = 1 + 2 * 3; }`)
	require.NoError(t, err)
	prog := root.(*carbono.Program)
	decl := prog.Root.Items[0].(*carbono.VarDecl)
	add, ok := decl.Init.(*carbono.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "+", add.Op)
	mul, ok := add.Right.(*carbono.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "*", mul.Op)
}

func TestParseUnit_MethodCallChain(t *testing.T) {
	root, err := ParseUnit(`programa "P" { arr.push(1); }`)
	require.NoError(t, err)
	prog := root.(*carbono.Program)
	stmt := prog.Root.Items[0].(*carbono.ExprStmt)
	call, ok := stmt.X.(*carbono.MethodCall)
	require.True(t, ok)
	assert.Equal(t, "push", call.Method)
	recv, ok := call.Receiver.(*carbono.VarRef)
	require.True(t, ok)
	assert.Equal(t, "arr", recv.Name)
}

func TestParseUnit_IfElse(t *testing.T) {
	root, err := ParseUnit(`programa "P" {
		if (verdadeiro) {
			escreval("sim");
		} senao {
			escreval("nao");
		}
	}`)
	require.NoError(t, err)
	prog := root.(*carbono.Program)
	ifStmt, ok := prog.Root.Items[0].(*carbono.If)
	require.True(t, ok)
	assert.NotNil(t, ifStmt.Else)
}

func TestParseUnit_AssertAndInputPause(t *testing.T) {
	root, err := ParseUnit(`programa "P" {
		afirme(verdadeiro, "deve ser verdadeiro");
		esperar("Pressione ENTER para continuar...");
	}`)
	require.NoError(t, err)
	prog := root.(*carbono.Program)
	assert.Len(t, prog.Root.Items, 2)
	_, ok := prog.Root.Items[0].(*carbono.Assert)
	assert.True(t, ok)
	_, ok = prog.Root.Items[1].(*carbono.InputPause)
	assert.True(t, ok)
}
