package tools

import (
	"github.com/petasbytes/agentcli/internal/config"
	"github.com/petasbytes/agentcli/internal/safety"
)

// checkReadable rejects tool-supplied paths the config hides. Hidden paths
// are invisible in both directions, so the denial mirrors the sandbox's own
// read-deny code.
func checkReadable(fa *config.FilesystemAccess, relPath string) error {
	hidden, err := fa.IsHidden(relPath)
	if err != nil {
		return err
	}
	if hidden {
		return safety.ToolError{Code: "ERR_DENIED_READ", Message: "path is hidden by policy: " + relPath}
	}
	return nil
}

// checkWritable rejects writes to paths the config hides or marks read-only.
func checkWritable(fa *config.FilesystemAccess, relPath string) error {
	hidden, err := fa.IsHidden(relPath)
	if err != nil {
		return err
	}
	if hidden {
		return safety.ToolError{Code: "ERR_DENIED_WRITE", Message: "path is hidden by policy: " + relPath}
	}
	ro, err := fa.IsReadOnly(relPath)
	if err != nil {
		return err
	}
	if ro {
		return safety.ToolError{Code: "ERR_DENIED_WRITE", Message: "path is read-only by policy: " + relPath}
	}
	return nil
}
