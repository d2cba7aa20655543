package carbono

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeInterpString(t *testing.T) {
	pieces := tokenizeInterpString(`pi=${p:.2f}`)
	require.Len(t, pieces, 2)
	assert.Equal(t, "pi=", pieces[0].static)
	assert.True(t, pieces[1].isInterp)
	assert.Equal(t, "p", pieces[1].expr)
	assert.Equal(t, ".2f", pieces[1].format)
}

func TestTokenizeInterpString_Escapes(t *testing.T) {
	pieces := tokenizeInterpString(`a\tb\nc`)
	require.Len(t, pieces, 1)
	assert.Equal(t, "a\tb\nc", pieces[0].static)
}

func TestParseInterpExpr_Chain(t *testing.T) {
	e, err := parseInterpExpr("p.nome", 1)
	require.NoError(t, err)
	prop, ok := e.(*PropAccess)
	require.True(t, ok)
	assert.Equal(t, "nome", prop.Field)
	recv, ok := prop.Receiver.(*VarRef)
	require.True(t, ok)
	assert.Equal(t, "p", recv.Name)
}

func TestParseInterpExpr_IndexChain(t *testing.T) {
	e, err := parseInterpExpr("a[0]", 1)
	require.NoError(t, err)
	access, ok := e.(*ArrayAccess)
	require.True(t, ok)
	idx, ok := access.Index.(*LiteralInt)
	require.True(t, ok)
	assert.Equal(t, int64(0), idx.Value)
}

func TestFormatFor_Defaults(t *testing.T) {
	tests := []struct {
		cat  exprCategory
		conv string
	}{
		{catInt, "%lld"},
		{catUint, "%llu"},
		{catFloat, "%g"},
		{catChar, "%c"},
		{catBool, "%d"},
	}
	for _, tt := range tests {
		conv, _ := formatFor(interpCPiece{category: tt.cat})
		assert.Equal(t, tt.conv, conv)
	}
}

func TestFormatFor_UserSuppliedOverridesDefault(t *testing.T) {
	conv, _ := formatFor(interpCPiece{category: catFloat, format: ".2f"})
	assert.Equal(t, "%.2f", conv)
}
