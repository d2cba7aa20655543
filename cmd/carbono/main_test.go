package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_EmitCStopsBeforeHostCompiler(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "ola.sl")
	require.NoError(t, os.WriteFile(srcPath, []byte(`programa "Ola" { escreval("oi"); }`), 0644))

	code, err := build(srcPath, buildOptions{emitC: true, compiler: "cc"})
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	assert.FileExists(t, filepath.Join(dir, "ola.c"))
	assert.FileExists(t, filepath.Join(dir, "ola.S"))
	assert.FileExists(t, filepath.Join(dir, "carbono_runtime.h"))

	bin := filepath.Join(dir, "ola")
	_, statErr := os.Stat(bin)
	assert.True(t, os.IsNotExist(statErr), "--emit-c must not invoke the host compiler or produce a binary")
}

func TestBuild_OutputNameOverride(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "prog.sl")
	require.NoError(t, os.WriteFile(srcPath, []byte(`programa "P" { }`), 0644))

	code, err := build(srcPath, buildOptions{emitC: true, outName: "custom", compiler: "cc"})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.FileExists(t, filepath.Join(dir, "custom.c"))
}

func TestBuild_MissingFileReturnsOpenError(t *testing.T) {
	code, err := build(filepath.Join(t.TempDir(), "missing.sl"), buildOptions{emitC: true, compiler: "cc"})
	assert.Equal(t, 1, code)
	assert.Error(t, err)
}

func TestBuild_ParseErrorIsReported(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "bad.sl")
	require.NoError(t, os.WriteFile(srcPath, []byte(`programa { `), 0644))

	code, err := build(srcPath, buildOptions{emitC: true, compiler: "cc"})
	assert.Equal(t, 1, code)
	assert.Error(t, err)
}
