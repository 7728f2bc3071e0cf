package tools_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/petasbytes/agentcli/internal/config"
	"github.com/petasbytes/agentcli/internal/fsops"
	"github.com/petasbytes/agentcli/tools"
)

func searchWith(t *testing.T, fa *config.FilesystemAccess, in tools.SearchFilesInput) []fsops.Match {
	t.Helper()
	def := tools.SearchFilesDefinition(fa)
	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal input: %v", err)
	}
	out, err := def.Function(raw)
	if err != nil {
		t.Fatalf("search_files: %v", err)
	}
	var matches []fsops.Match
	if err := json.Unmarshal([]byte(out), &matches); err != nil {
		t.Fatalf("unmarshal result %q: %v", out, err)
	}
	return matches
}

func TestSearchFiles_FindsMatchesWithGlob(t *testing.T) {
	dir := sharedDir
	if err := os.MkdirAll(filepath.Join(dir, rel(t)), 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	files := map[string]string{
		"a.go":  "package main\nfunc needle() {}\n",
		"b.txt": "needle in plain text\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, rel(t, name)), []byte(body), 0o644); err != nil {
			t.Fatalf("prepare: %v", err)
		}
	}

	fa := &config.FilesystemAccess{}
	matches := searchWith(t, fa, tools.SearchFilesInput{
		Pattern: "needle",
		Path:    rel(t),
		Glob:    "**/*.go",
	})
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d: %+v", len(matches), matches)
	}
	if matches[0].Line != 2 {
		t.Fatalf("expected line 2, got %d", matches[0].Line)
	}
	if filepath.Base(matches[0].Path) != "a.go" {
		t.Fatalf("unexpected path: %s", matches[0].Path)
	}
}

func TestSearchFiles_HiddenPathsFiltered(t *testing.T) {
	dir := sharedDir
	if err := os.MkdirAll(filepath.Join(dir, rel(t, "secrets")), 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, rel(t, "secrets", "key.txt")), []byte("needle\n"), 0o644); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	fa := &config.FilesystemAccess{Hidden: []string{"**/secrets/**"}}
	matches := searchWith(t, fa, tools.SearchFilesInput{Pattern: "needle", Path: rel(t)})
	if len(matches) != 0 {
		t.Fatalf("hidden matches leaked: %+v", matches)
	}
}

func TestSearchFiles_EmptyPatternRejected(t *testing.T) {
	def := tools.SearchFilesDefinition(&config.FilesystemAccess{})
	if _, err := def.Function(json.RawMessage(`{}`)); err == nil {
		t.Fatal("expected error for empty pattern")
	}
}

func TestSearchFiles_NoMatchesIsEmptyArray(t *testing.T) {
	dir := sharedDir
	if err := os.MkdirAll(filepath.Join(dir, rel(t)), 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	def := tools.SearchFilesDefinition(&config.FilesystemAccess{})
	raw, _ := json.Marshal(tools.SearchFilesInput{Pattern: "zzz_not_here", Path: rel(t)})
	out, err := def.Function(raw)
	if err != nil {
		t.Fatalf("search_files: %v", err)
	}
	if out != "[]" {
		t.Fatalf("expected empty JSON array, got %q", out)
	}
}
