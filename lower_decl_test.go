package carbono

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLower_StructDefEmitsTypedef(t *testing.T) {
	root := &Program{Name: "H", Root: &Block{Items: []Stmt{
		&StructDef{Name: "Pessoa", Fields: []StructField{
			{Name: "nome", Type: "texto"},
			{Name: "idade", Type: "inteiro32"},
		}},
	}}}
	c, _, _, err := Lower(root, "test.sl", nil)
	require.NoError(t, err)
	assert.Contains(t, c, "typedef struct Pessoa {")
	assert.Contains(t, c, "carbono_string nome;")
	assert.Contains(t, c, "int idade;")
	assert.Contains(t, c, "} Pessoa;")
}

func TestLower_FuncProtoAndBody(t *testing.T) {
	root := &Program{Name: "H", Root: &Block{Items: []Stmt{
		&FuncDef{
			Name:       "dobro",
			Params:     []Param{{Name: "x", Type: "inteiro32"}},
			ReturnType: "inteiro32",
			Body: &Block{Items: []Stmt{
				&Return{Value: &BinaryOp{Op: "*", Left: &VarRef{Name: "x"}, Right: &LiteralInt{Value: 2}}},
			}},
		},
	}}}
	c, _, _, err := Lower(root, "test.sl", nil)
	require.NoError(t, err)
	assert.Contains(t, c, "static int dobro(int x);")
	assert.Contains(t, c, "static int dobro(int x) {")
	assert.Contains(t, c, "return (x * 2);")
}

func TestLower_ExternBlockEmitsModuleStructAndDlsym(t *testing.T) {
	root := &Program{Name: "H", Root: &Block{Items: []Stmt{
		&ExternBlock{
			Name: "matematica", LibName: "libm.so",
			Funcs: []ExternFunc{
				{Name: "raiz", Alias: "sqrt", Params: []Param{{Name: "x", Type: "real64"}}, ReturnType: "real64"},
			},
		},
	}}}
	c, _, _, err := Lower(root, "test.sl", nil)
	require.NoError(t, err)
	assert.Contains(t, c, "typedef struct matematica_Module {")
	assert.Contains(t, c, "double (*raiz)(double x);")
	assert.Contains(t, c, "static matematica_Module g_matematica;")
	assert.Contains(t, c, `g_matematica.handle = dlopen("libm.so", RTLD_NOW | RTLD_GLOBAL);`)
	assert.Contains(t, c, `g_matematica.raiz = (double (*)(double x))dlsym(g_matematica.handle, "sqrt");`)
}

func TestParamListC_SelfParamForcedToPointer(t *testing.T) {
	reg := NewTypeRegistry()
	out := paramListC([]Param{{Name: "self", Type: "inteiro32"}}, reg)
	assert.Equal(t, "int* self", out)
}

func TestParamListC_NoParamsYieldsVoid(t *testing.T) {
	reg := NewTypeRegistry()
	assert.Equal(t, "void", paramListC(nil, reg))
}

func TestParamListC_StructParamAlreadyPointer(t *testing.T) {
	reg := NewTypeRegistry()
	reg.RegisterStruct("Pessoa")
	out := paramListC([]Param{{Name: "p", Type: "Pessoa"}}, reg)
	assert.Equal(t, "Pessoa* p", out)
}
