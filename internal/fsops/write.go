package fsops

import (
	"os"
	"path/filepath"

	"github.com/petasbytes/agentcli/internal/safety"
)

// WriteFile writes content to a relative path under the sandbox write root,
// creating missing parent directories. Write-policy denials surface as
// safety.ToolError.
func WriteFile(relPath, content string) error {
	_, writeRoot, err := getRoots()
	if err != nil {
		return err
	}
	absPath, err := safety.ValidateWritePath(writeRoot, relPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(absPath, []byte(content), 0o644)
}
