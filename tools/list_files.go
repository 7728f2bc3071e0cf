package tools

import (
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/petasbytes/agentcli/internal/config"
	"github.com/petasbytes/agentcli/internal/fsops"
)

type ListFilesInput struct {
	Path     string `json:"path,omitempty" jsonschema_description:"Optional relative path to list files from (defaults to current directory)."`
	Page     int    `json:"page,omitempty" jsonschema_description:"1-based page number (default 1)."`
	PageSize int    `json:"page_size,omitempty" jsonschema_description:"Page size (default 200)."`
}

var ListFilesInputSchema = GenerateSchema[ListFilesInput]()

const defaultListFilesPageSize = 200

// ListFilesDefinition builds the list_files tool; listing a hidden
// directory is denied, and hidden entries are dropped from the output.
func ListFilesDefinition(fa *config.FilesystemAccess) ToolDefinition {
	return ToolDefinition{
		Name:        "list_files",
		Description: "List names of files in a directory within the workspace (non-recursive).",
		InputSchema: ListFilesInputSchema,
		Function: func(input json.RawMessage) (string, error) {
			return listFiles(input, fa)
		},
	}
}

// listFiles lists one directory level through the sandbox layer, then sorts
// and pages at the tool layer so paging is stable across filesystems.
// Returns a JSON-encoded []string; an out-of-range page yields "[]".
func listFiles(input json.RawMessage, fa *config.FilesystemAccess) (string, error) {
	var in ListFilesInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}
	if err := checkReadable(fa, in.Path); err != nil {
		return "", err
	}
	page := in.Page
	if page <= 0 {
		page = 1
	}
	pageSize := in.PageSize
	if pageSize <= 0 {
		pageSize = defaultListFilesPageSize
	}

	namesJSON, err := fsops.ListFiles(in.Path)
	if err != nil {
		return "", err
	}
	var names []string
	if err := json.Unmarshal([]byte(namesJSON), &names); err != nil {
		return "", fmt.Errorf("invalid list_files payload: %w", err)
	}

	// Hidden entries never appear in listings, matched on the same
	// root-relative path the other tools would be handed.
	dirRel := filepath.ToSlash(in.Path)
	kept := names[:0]
	for _, name := range names {
		entryRel := path.Join(dirRel, strings.TrimSuffix(name, "/"))
		hidden, err := fa.IsHidden(entryRel)
		if err != nil {
			return "", err
		}
		if hidden {
			continue
		}
		kept = append(kept, name)
	}
	names = kept
	sort.Strings(names)

	start := (page - 1) * pageSize
	if start >= len(names) {
		return "[]", nil
	}
	end := start + pageSize
	if end > len(names) {
		end = len(names)
	}

	b, err := json.Marshal(names[start:end])
	if err != nil {
		return "", err
	}
	return string(b), nil
}
