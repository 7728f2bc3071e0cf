package tools

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/petasbytes/agentcli/internal/config"
	"github.com/petasbytes/agentcli/internal/fsops"
)

type SearchFilesInput struct {
	Pattern    string `json:"pattern" jsonschema_description:"Regular expression matched against each line of text files."`
	Path       string `json:"path,omitempty" jsonschema_description:"Optional relative directory to search under (defaults to the workspace root)."`
	Glob       string `json:"glob,omitempty" jsonschema_description:"Optional doublestar glob filtering which files are scanned, e.g. **/*.go."`
	MaxResults int    `json:"max_results,omitempty" jsonschema_description:"Maximum matches to return (default 50)."`
}

var SearchFilesInputSchema = GenerateSchema[SearchFilesInput]()

const defaultSearchMaxResults = 50
const maxSearchLineRunes = 500 // per-match line clamp

// SearchFilesDefinition builds the search_files tool; hits under paths the
// config marks hidden are filtered out before they reach the model.
func SearchFilesDefinition(fa *config.FilesystemAccess) ToolDefinition {
	return ToolDefinition{
		Name:        "search_files",
		Description: "Search text files in the workspace for a regular expression. Returns JSON objects with path, 1-based line number, and the matching line.",
		InputSchema: SearchFilesInputSchema,
		Function: func(input json.RawMessage) (string, error) {
			return searchFiles(input, fa)
		},
	}
}

func searchFiles(input json.RawMessage, fa *config.FilesystemAccess) (string, error) {
	var in SearchFilesInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}
	if in.Pattern == "" {
		return "", fmt.Errorf("pattern must not be empty")
	}
	re, err := regexp.Compile(in.Pattern)
	if err != nil {
		return "", fmt.Errorf("invalid pattern: %w", err)
	}
	limit := in.MaxResults
	if limit <= 0 {
		limit = defaultSearchMaxResults
	}

	matches, err := fsops.SearchFiles(in.Path, in.Glob, re, limit)
	if err != nil {
		return "", err
	}

	kept := make([]fsops.Match, 0, len(matches))
	for _, m := range matches {
		hidden, err := fa.IsHidden(m.Path)
		if err != nil {
			return "", err
		}
		if hidden {
			continue
		}
		if r := []rune(m.Text); len(r) > maxSearchLineRunes {
			m.Text = string(r[:maxSearchLineRunes])
		}
		kept = append(kept, m)
	}

	b, err := json.Marshal(kept)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
