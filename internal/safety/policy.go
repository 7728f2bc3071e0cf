package safety

import "path"

// Basenames that must never be written at any depth. Build metadata edits
// go through the operator, not the model.
var writeDenyBasenames = map[string]struct{}{
	"go.mod": {},
	"go.sum": {},
}

// ValidateWritePath resolves relPath against absRoot for a write, applying
// the write denylist on top of the shared containment checks:
//   - no writes under .git/ or .agent/
//   - no writes to go.mod / go.sum anywhere in the tree
//
// On violation it returns a ToolError.
func ValidateWritePath(absRoot, relPath string) (string, error) {
	candidate, rel, err := resolveWithinRoot(absRoot, relPath)
	if err != nil {
		return "", err
	}

	if underDir(rel, ".git") || underDir(rel, ".agent") {
		return "", ToolError{Code: "ERR_DENIED_WRITE", Message: "writes under .git/ or .agent/ are not allowed"}
	}
	base := path.Base(rel)
	if _, denied := writeDenyBasenames[base]; denied {
		return "", ToolError{Code: "ERR_DENIED_WRITE", Message: "writes to " + base + " are not allowed"}
	}

	return candidate, nil
}
