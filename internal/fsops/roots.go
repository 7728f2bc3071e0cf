// Package fsops provides sandboxed filesystem primitives for the tool layer.
package fsops

import (
	"os"
	"sync"

	"github.com/petasbytes/agentcli/internal/safety"
)

// Sandbox roots come from AGT_READ_ROOT / AGT_WRITE_ROOT and are resolved
// once; changing the env mid-process has no effect.
var (
	rootsOnce    sync.Once
	absReadRoot  string
	absWriteRoot string
	initRootsErr error
)

func getRoots() (string, string, error) {
	rootsOnce.Do(func() {
		read := os.Getenv("AGT_READ_ROOT")
		write := os.Getenv("AGT_WRITE_ROOT")
		absReadRoot, absWriteRoot, initRootsErr = safety.InitSandboxRoot(read, write)
	})
	return absReadRoot, absWriteRoot, initRootsErr
}
