package carbono

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEmbedPath_Relative(t *testing.T) {
	got := resolveEmbedPath("assets/hi.txt", "srcdir")
	want, _ := filepath.Abs(filepath.Join("srcdir", "assets/hi.txt"))
	assert.Equal(t, want, got)
}

func TestResolveEmbedPath_AlreadyAbsolute(t *testing.T) {
	abs := string(filepath.Separator) + filepath.Join("tmp", "x.bin")
	assert.Equal(t, abs, resolveEmbedPath(abs, "srcdir"))
}

func TestLowerEmbed_SymbolDerivedFromLiteralPath(t *testing.T) {
	l := newLowerer(NewConfig(), "srcdir")
	out := l.lowerEmbed(&Embed{Path: "a/b.png"})

	assert.Contains(t, out, "_binary_a_b_png_start")
	assert.Contains(t, out, "_binary_a_b_png_end")
	assert.Contains(t, l.asm.buffer.String(), ".global _binary_a_b_png_start")
	assert.Contains(t, l.asm.buffer.String(), ".incbin")
}

func TestLowerEmbed_DedupesRepeatedPath(t *testing.T) {
	l := newLowerer(NewConfig(), "srcdir")
	l.lowerEmbed(&Embed{Path: "a/b.png"})
	l.lowerEmbed(&Embed{Path: "a/b.png"})

	count := 0
	asm := l.asm.buffer.String()
	for i := 0; i+len(".incbin") <= len(asm); i++ {
		if asm[i:i+len(".incbin")] == ".incbin" {
			count++
		}
	}
	assert.Equal(t, 1, count, "repeated embed of the same path must not duplicate the asm record")
}
