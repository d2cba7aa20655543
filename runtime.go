package carbono

import "embed"

// runtimeFS embeds the bundled C runtime header so cmd/carbono can stage it
// next to generated output without depending on a filesystem layout at run
// time (the same technique clarete-langlang/go/genc.go uses to embed its
// VM's c/vm.c alongside a generated parser).
//
//go:embed runtime/carbono_runtime.h
var runtimeFS embed.FS

// RuntimeHeaderName is the header the generated C includes.
const RuntimeHeaderName = "carbono_runtime.h"

// RuntimeHeaderSource returns the bundled runtime header's contents.
func RuntimeHeaderSource() ([]byte, error) {
	return runtimeFS.ReadFile("runtime/carbono_runtime.h")
}
