// Command carbono compiles SL source files to C and, by default, on to a
// native binary via the host toolchain (spec.md §6.1).
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/carbono-lang/carbono"
	"github.com/carbono-lang/carbono/frontend"
)

const defaultWritePermission = 0644

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		outName  string
		emitC    bool
		run      bool
		debug    bool
		compiler string
	)

	cmd := &cobra.Command{
		Use:           "carbono <input-file>",
		Short:         "Compile SL source to C and a native binary",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			exitCode, err := build(args[0], buildOptions{
				outName:  outName,
				emitC:    emitC,
				run:      run,
				debug:    debug,
				compiler: compiler,
			})
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			if exitCode != 0 {
				os.Exit(exitCode)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outName, "output", "o", "", "Override output base name")
	cmd.Flags().BoolVar(&emitC, "emit-c", false, "Stop after C emission; do not invoke host compiler")
	cmd.Flags().BoolVarP(&run, "run", "r", false, "Invoke the emitted binary after successful build; propagate its exit code")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "Emit AST dump and verbose progress")
	cmd.Flags().StringVar(&compiler, "cc", "cc", "Host C compiler to invoke")

	return cmd
}

type buildOptions struct {
	outName  string
	emitC    bool
	run      bool
	debug    bool
	compiler string
}

// build runs one compilation: read, parse, lower, stage the runtime, and
// (unless --emit-c) invoke the host compiler and optionally the resulting
// binary. It returns the process exit code instead of calling os.Exit
// directly so it stays testable.
func build(inputPath string, opts buildOptions) (int, error) {
	src, err := os.ReadFile(inputPath)
	if err != nil {
		return 1, carbono.OpenError{Path: inputPath, Err: err}
	}

	root, err := frontend.ParseUnit(string(src))
	if err != nil {
		return 1, fmt.Errorf("parse error: %w", err)
	}

	if opts.debug {
		fmt.Fprintln(os.Stderr, carbono.DumpAST(root))
	}

	base := opts.outName
	if base == "" {
		base = strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	}
	outDir := filepath.Dir(inputPath)

	cfg := carbono.NewConfig()
	cfg.SetString("codegen.program_name", base)

	cSource, asmSource, warnings, err := carbono.Lower(root, inputPath, cfg)
	if err != nil {
		return 1, fmt.Errorf("lowering error: %w", err)
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "carbono: warning: %s\n", w.Error())
	}

	cPath := filepath.Join(outDir, base+".c")
	asmPath := filepath.Join(outDir, base+".S")
	if err := os.WriteFile(cPath, []byte(cSource), defaultWritePermission); err != nil {
		return 1, carbono.OpenError{Path: cPath, Err: err}
	}
	if err := os.WriteFile(asmPath, []byte(asmSource), defaultWritePermission); err != nil {
		return 1, carbono.OpenError{Path: asmPath, Err: err}
	}

	headerPath := filepath.Join(outDir, carbono.RuntimeHeaderName)
	headerSrc, err := carbono.RuntimeHeaderSource()
	if err != nil {
		return 1, fmt.Errorf("carbono: internal error reading bundled runtime: %w", err)
	}
	if err := os.WriteFile(headerPath, headerSrc, defaultWritePermission); err != nil {
		return 1, carbono.OpenError{Path: headerPath, Err: err}
	}

	if opts.emitC {
		return 0, nil
	}

	_, isLibrary := root.(*carbono.Library)
	binPath := filepath.Join(outDir, base)
	if isLibrary {
		binPath += ".so"
	}

	ccArgs := []string{"-o", binPath, cPath, asmPath}
	if isLibrary {
		ccArgs = append(ccArgs, "-shared", "-fPIC")
	}
	ccArgs = append(ccArgs, "-ldl")

	ccCmd := exec.Command(opts.compiler, ccArgs...)
	ccCmd.Dir = outDir
	ccCmd.Stdout = os.Stdout
	ccCmd.Stderr = os.Stderr
	if err := ccCmd.Run(); err != nil {
		exitErr, ok := err.(*exec.ExitError)
		code := 1
		if ok {
			code = exitErr.ExitCode()
		}
		return 1, carbono.HostCompileError{Compiler: opts.compiler, ExitCode: code}
	}

	if !opts.run || isLibrary {
		return 0, nil
	}

	runCmd := exec.Command(binPath)
	runCmd.Stdout = os.Stdout
	runCmd.Stderr = os.Stderr
	runCmd.Stdin = os.Stdin
	if err := runCmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return 1, err
	}
	return 0, nil
}
