package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/petasbytes/agentcli/internal/config"
	"github.com/petasbytes/agentcli/internal/fsops"
)

type EditFileInput struct {
	Path   string `json:"path" jsonschema_description:"Target relative file path"`
	OldStr string `json:"old_str" jsonschema_description:"Exact text to replace; must be present once when editing an existing file."`
	NewStr string `json:"new_str" jsonschema_description:"New text to write or replace old_str with"`
}

var EditFileInputSchema = GenerateSchema[EditFileInput]()

// EditFileDefinition builds the edit_file tool; paths the config hides or
// marks read-only are denied before any file is touched.
func EditFileDefinition(fa *config.FilesystemAccess) ToolDefinition {
	return ToolDefinition{
		Name: "edit_file",
		Description: `Create or modify a text file addressed by a relative path within the workspace.

When old_str is empty and the file doesn’t exist, a new file is created.

When editing an existing file, all occurrences of old_str are replaced with new_str; old_str and new_str must be different.
`,
		InputSchema: EditFileInputSchema,
		Function: func(input json.RawMessage) (string, error) {
			return editFile(input, fa)
		},
	}
}

func editFile(input json.RawMessage, fa *config.FilesystemAccess) (string, error) {
	var in EditFileInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}
	if in.Path == "" || in.OldStr == in.NewStr {
		return "", fmt.Errorf("invalid edit parameters")
	}
	if err := checkWritable(fa, in.Path); err != nil {
		return "", err
	}

	oldContent, readErr := fsops.ReadFile(in.Path)
	if readErr != nil {
		// A missing file plus an empty old_str means create.
		if in.OldStr == "" {
			if err := fsops.WriteFile(in.Path, in.NewStr); err != nil {
				return "", err
			}
			return fmt.Sprintf("Successfully created file %s", in.Path), nil
		}
		return "", readErr
	}

	// Editing an existing file with an empty old_str would silently replace
	// nothing; refuse instead.
	if in.OldStr == "" {
		return "", fmt.Errorf("old_str must be provided when editing an existing file")
	}

	newContent := strings.ReplaceAll(oldContent, in.OldStr, in.NewStr)
	if newContent == oldContent {
		return "", fmt.Errorf("old_str not found in file")
	}

	if err := fsops.WriteFile(in.Path, newContent); err != nil {
		return "", err
	}
	return "OK", nil
}
