package tools_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/petasbytes/agentcli/internal/config"
)

var sharedDir string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "tools-tests-")
	if err != nil {
		panic(err)
	}
	_ = os.Setenv("AGT_READ_ROOT", dir)
	_ = os.Setenv("AGT_WRITE_ROOT", dir)
	sharedDir = dir

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// Helper to create per-test relative paths
func rel(t *testing.T, elems ...string) string {
	return filepath.Join(append([]string{t.Name()}, elems...)...)
}

// noRestrictions is the default access policy for tests that don't exercise
// hidden/read-only matching.
func noRestrictions() *config.FilesystemAccess {
	return &config.FilesystemAccess{}
}
