package carbono

import (
	"fmt"
	"path/filepath"
)

// embedRecord is one @embutir site: the asm sink gets a `.incbin` triple
// under symbol sanitize(path), and the C sink gets a block expression that
// externs the two labels and wraps the byte range as a carbono_string
// (spec.md §4.5, §6.4).
type embedRecord struct {
	resolvedPath string
	symbol       string
}

// resolveEmbedPath implements spec.md §4.5 step 1: resolve relative to the
// importing source file's directory, preferring the absolute form.
func resolveEmbedPath(path, sourceDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	joined := filepath.Join(sourceDir, path)
	abs, err := filepath.Abs(joined)
	if err != nil {
		return joined
	}
	return abs
}

// lowerEmbed appends the asm record and returns the C block expression
// string for an Embed node (spec.md §4.5 steps 2-4).
func (l *Lowerer) lowerEmbed(n *Embed) string {
	resolved := resolveEmbedPath(n.Path, l.sourceDir)
	// The symbol is derived from the literal path, not the resolved one
	// (spec.md §4.5 step 2): "sanitise("a/b.png") == "a_b_png"", not a
	// symbol that varies with the compiling machine's absolute path.
	symbol := sanitizeCIdent(n.Path)
	// Repeated embeds of the same file share one asm record. A different
	// file whose literal path sanitizes to a symbol already in use (e.g.
	// "a/b.png" after "a_b.png") would collide in the asm sink, so it gets
	// a numeric suffix instead.
	already := false
	for i, base := 1, symbol; ; i++ {
		clash := false
		for _, e := range l.embeds {
			if e.symbol == symbol {
				already = e.resolvedPath == resolved
				clash = !already
				break
			}
		}
		if !clash {
			break
		}
		symbol = fmt.Sprintf("%s_%d", base, i)
	}
	if !already {
		l.embeds = append(l.embeds, embedRecord{resolvedPath: resolved, symbol: symbol})
		l.asm.writel(fmt.Sprintf(".global _binary_%s_start", symbol))
		l.asm.writel(fmt.Sprintf(".global _binary_%s_end", symbol))
		l.asm.writel(fmt.Sprintf("_binary_%s_start:", symbol))
		l.asm.writel(fmt.Sprintf("  .incbin \"%s\"", resolved))
		l.asm.writel(fmt.Sprintf("_binary_%s_end:", symbol))
		l.asm.writel("  .byte 0")
		l.asm.writel("")
	}

	return fmt.Sprintf(
		"({ extern const char _binary_%s_start[]; extern const char _binary_%s_end[]; "+
			"carbono_string_from_range(_binary_%s_start, (size_t)(_binary_%s_end - _binary_%s_start)); })",
		symbol, symbol, symbol, symbol, symbol,
	)
}
