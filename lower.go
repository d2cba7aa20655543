package carbono

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Lowerer holds all state threaded through one compilation unit: the two
// output sinks (generated C and generated assembly), the scope stack and
// type registry that back name/type resolution, and the embed/warning
// accumulators that the lower_*.go passes and embed.go/interp.go append to
// as they go.
//
// One Lowerer is used for exactly one Lower call; nothing here is safe to
// reuse or share across goroutines (spec.md §5: "single *Lowerer per
// compilation unit").
type Lowerer struct {
	out *outputWriter // generated .c body
	asm *outputWriter // generated .S body

	scope *ScopeStack
	types *TypeRegistry

	sourceDir string
	embeds    []embedRecord
	warnings  []LowerWarning

	cfg          *Config
	libraryMode  bool
	programName  string

	// externPrelude accumulates the dlopen/dlsym statements emitted by
	// each EXTERN_BLOCK's module-struct pass, run in main/the constructor
	// before any top-level statement (spec.md §4.3 pre-pass 2).
	externPrelude []string
}

func newLowerer(cfg *Config, sourceDir string) *Lowerer {
	indent := strings.Repeat(" ", indentWidth(cfg))
	return &Lowerer{
		out:       newOutputWriter(indent),
		asm:       newOutputWriter(indent),
		scope:     NewScopeStack(),
		types:     NewTypeRegistry(),
		sourceDir: sourceDir,
		cfg:       cfg,
	}
}

// indentWidth reads codegen.indent_width, falling back to a 2-space default
// for a Lowerer built directly (outside Lower) against a bare *Config that
// hasn't been through NewConfig and so never set that key.
func indentWidth(cfg *Config) (width int) {
	width = 2
	if cfg == nil {
		return
	}
	defer func() {
		if recover() != nil {
			width = 2
		}
	}()
	if w := cfg.GetInt("codegen.indent_width"); w > 0 {
		width = w
	}
	return
}

func (l *Lowerer) warn(w LowerWarning) {
	l.warnings = append(l.warnings, w)
}

// Lower compiles root (a *Program or *Library) to C and assembly source. It
// never fails over an ordinary malformed-but-well-typed program: per
// spec.md §7, irregularities become LowerWarning entries and a best-effort
// default is emitted instead. The returned error is non-nil only for an
// engine-level invariant violation (recovered from a panic) or an
// unrecognised root node kind.
func Lower(root Node, sourcePath string, cfg *Config) (cSource, asmSource string, warnings []LowerWarning, err error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	l := newLowerer(cfg, filepath.Dir(sourcePath))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("carbono: internal lowering error: %v", r)
		}
	}()

	var name string
	var items []Stmt
	switch n := root.(type) {
	case *Program:
		name = n.Name
		items = n.Root.Items
		l.libraryMode = false
	case *Library:
		name = n.Name
		items = n.Root.Items
		l.libraryMode = true
	default:
		return "", "", nil, fmt.Errorf("carbono: root must be PROGRAM or LIBRARY, got %T", root)
	}
	l.programName = name
	if cfg.GetString("codegen.program_name") != "" {
		l.programName = cfg.GetString("codegen.program_name")
	}

	l.emitPrologue(name)
	l.runPasses(items)

	return l.out.buffer.String(), l.asm.buffer.String(), l.warnings, nil
}

// emitPrologue writes the includes and the CARBONO_PROGRAM_NAME constant,
// which holds the unit's declared name.
func (l *Lowerer) emitPrologue(declaredName string) {
	l.out.writel(fmt.Sprintf("/* generated by carbono from %q; do not edit */", l.programName))
	if l.cfg.GetBool("codegen.embed_runtime_header") {
		l.out.writel(fmt.Sprintf("#include \"%s\"", RuntimeHeaderName))
	}
	l.out.writel("#include <dlfcn.h>")
	l.out.writel(fmt.Sprintf("static const char *CARBONO_PROGRAM_NAME = %s;", strconv.Quote(declaredName)))
	l.out.writel("")
}

// runPasses drives the mandatory 4-pass top-level emission order (spec.md
// §4.3): struct defs, then extern-block namespaces, then function
// prototypes, then function bodies plus main/the constructor. Any
// non-declaration top-level statement (a bare VarDecl, an Assign, a loop,
// ...) is collected in source order and replayed inside main/the
// constructor, after the extern prelude's dlopen/dlsym loads.
func (l *Lowerer) runPasses(items []Stmt) {
	l.scope.Enter()
	defer l.scope.Exit()

	// Pass 1: struct definitions.
	for _, it := range items {
		if sd, ok := it.(*StructDef); ok {
			l.lowerStructDef(sd)
		}
	}

	// Pass 2: extern-block namespaces.
	for _, it := range items {
		if eb, ok := it.(*ExternBlock); ok {
			l.lowerExternBlock(eb)
		}
	}

	// Pass 3: function prototypes, so mutually- and forward-referencing
	// calls always resolve against a declared signature.
	for _, it := range items {
		if fd, ok := it.(*FuncDef); ok {
			l.lowerFuncProto(fd)
		}
	}
	l.out.writel("")

	// Pass 4: function bodies, collecting plain top-level statements for
	// replay inside main/the constructor.
	var topLevel []Stmt
	for _, it := range items {
		switch n := it.(type) {
		case *StructDef, *ExternBlock:
			// already handled
		case *FuncDef:
			if n.Body != nil {
				l.lowerFuncBody(n)
			}
		default:
			topLevel = append(topLevel, it)
		}
	}

	l.lowerEntryPoint(topLevel)

	if len(l.asm.buffer.String()) == 0 {
		// Keep the assembly sink non-empty so cmd/carbono always has a
		// valid .S file to hand the assembler, even for a program with
		// no @embutir sites.
		l.asm.writel(".text")
	}
}

// lowerEntryPoint emits `main` for a PROGRAM or a constructor function for
// a LIBRARY (spec.md §4.3). Either
// way, the extern prelude's dlopen/dlsym loads run first, then the
// collected top-level statements in source order.
func (l *Lowerer) lowerEntryPoint(topLevel []Stmt) {
	if l.libraryMode {
		ctor := sanitizeCIdent(l.programName) + "_init"
		l.out.writel(fmt.Sprintf("__attribute__((constructor)) static void %s(void) {", ctor))
	} else {
		l.out.writel("int main(int argc, char **argv) {")
		l.out.indent()
		l.out.writeil("(void)argc; (void)argv;")
		l.out.unindent()
	}
	l.out.indent()

	for _, stmt := range l.externPrelude {
		l.out.writeil(stmt)
	}

	l.scope.Enter()
	for _, stmt := range topLevel {
		l.lowerStmt(stmt)
	}
	l.scope.Exit()

	if !l.libraryMode {
		l.out.writeil("carbono_arena_free_all();")
		l.out.writeil("return 0;")
	}
	l.out.unindent()
	l.out.writel("}")
}
