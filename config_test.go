package carbono

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()
	assert.False(t, cfg.GetBool("codegen.library_mode"))
	assert.False(t, cfg.GetBool("codegen.debug_ast_dump"))
	assert.True(t, cfg.GetBool("codegen.embed_runtime_header"))
	assert.Equal(t, "", cfg.GetString("codegen.program_name"))
}

func TestConfig_SetOverwritesSameType(t *testing.T) {
	cfg := NewConfig()
	cfg.SetString("codegen.program_name", "meu_programa")
	assert.Equal(t, "meu_programa", cfg.GetString("codegen.program_name"))
	cfg.SetString("codegen.program_name", "outro")
	assert.Equal(t, "outro", cfg.GetString("codegen.program_name"))
}

func TestConfig_GetMissingKeyPanics(t *testing.T) {
	cfg := NewConfig()
	assert.Panics(t, func() { cfg.GetInt("does.not.exist") })
}

func TestConfig_TypeMismatchPanics(t *testing.T) {
	cfg := NewConfig()
	cfg.SetString("x", "y")
	assert.Panics(t, func() { cfg.GetBool("x") })
}

func TestConfig_SetIntRoundTrip(t *testing.T) {
	cfg := NewConfig()
	cfg.SetInt("codegen.opt_level", 2)
	got := cfg.GetInt("codegen.opt_level")
	require.Equal(t, 2, got)
}
