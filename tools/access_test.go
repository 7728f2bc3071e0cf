package tools_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/petasbytes/agentcli/internal/config"
	"github.com/petasbytes/agentcli/tools"
)

func TestReadFile_HiddenByConfig_Denied(t *testing.T) {
	dir := filepath.Join(sharedDir, rel(t))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "locked.txt"), []byte("secret"), 0o644); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	fa := &config.FilesystemAccess{Hidden: []string{"**/locked.txt"}}

	in := tools.ReadFileInput{Path: rel(t, "locked.txt")}
	b, _ := json.Marshal(in)
	out, err := tools.ReadFileDefinition(fa).Function(b)
	if err == nil {
		t.Fatalf("expected deny for hidden path, got output %q", out)
	}
	if !strings.Contains(err.Error(), "ERR_DENIED_READ") {
		t.Fatalf("expected ERR_DENIED_READ, got: %v", err)
	}
}

func TestEditFile_HiddenByConfig_DeniedAndUnchanged(t *testing.T) {
	dir := filepath.Join(sharedDir, rel(t))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	p := filepath.Join(dir, "locked.txt")
	if err := os.WriteFile(p, []byte("original"), 0o644); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	fa := &config.FilesystemAccess{Hidden: []string{"**/locked.txt"}}

	in := tools.EditFileInput{Path: rel(t, "locked.txt"), OldStr: "original", NewStr: "tampered"}
	b, _ := json.Marshal(in)
	out, err := tools.EditFileDefinition(fa).Function(b)
	if err == nil {
		t.Fatalf("expected deny for hidden path, got output %q", out)
	}
	if !strings.Contains(err.Error(), "ERR_DENIED_WRITE") {
		t.Fatalf("expected ERR_DENIED_WRITE, got: %v", err)
	}
	data, _ := os.ReadFile(p)
	if string(data) != "original" {
		t.Fatalf("file was modified despite deny: %q", string(data))
	}
}

func TestEditFile_ReadOnlyByConfig_DeniedAndUnchanged(t *testing.T) {
	dir := filepath.Join(sharedDir, rel(t))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	p := filepath.Join(dir, "locked.txt")
	if err := os.WriteFile(p, []byte("original"), 0o644); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	fa := &config.FilesystemAccess{ReadOnly: []string{"**/locked.txt"}}

	in := tools.EditFileInput{Path: rel(t, "locked.txt"), OldStr: "original", NewStr: "tampered"}
	b, _ := json.Marshal(in)
	out, err := tools.EditFileDefinition(fa).Function(b)
	if err == nil {
		t.Fatalf("expected deny for read-only path, got output %q", out)
	}
	if !strings.Contains(err.Error(), "ERR_DENIED_WRITE") {
		t.Fatalf("expected ERR_DENIED_WRITE, got: %v", err)
	}
	data, _ := os.ReadFile(p)
	if string(data) != "original" {
		t.Fatalf("file was modified despite deny: %q", string(data))
	}
}

func TestReadFile_ReadOnlyByConfig_StillReadable(t *testing.T) {
	dir := filepath.Join(sharedDir, rel(t))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "locked.txt"), []byte("readable"), 0o644); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	fa := &config.FilesystemAccess{ReadOnly: []string{"**/locked.txt"}}

	in := tools.ReadFileInput{Path: rel(t, "locked.txt")}
	b, _ := json.Marshal(in)
	out, err := tools.ReadFileDefinition(fa).Function(b)
	if err != nil {
		t.Fatalf("read-only should not block reads: %v", err)
	}
	if out != "readable" {
		t.Fatalf("got %q", out)
	}
}

func TestEditFile_HiddenByConfig_CreateDenied(t *testing.T) {
	dir := filepath.Join(sharedDir, rel(t))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	fa := &config.FilesystemAccess{Hidden: []string{"**/locked.txt"}}

	in := tools.EditFileInput{Path: rel(t, "locked.txt"), OldStr: "", NewStr: "hello"}
	b, _ := json.Marshal(in)
	_, err := tools.EditFileDefinition(fa).Function(b)
	if err == nil {
		t.Fatal("expected deny for creating a hidden path")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "locked.txt")); statErr == nil {
		t.Fatal("file was created despite deny")
	}
}

func TestListFiles_HiddenDirectory_Denied(t *testing.T) {
	dir := filepath.Join(sharedDir, rel(t), "vault")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	fa := &config.FilesystemAccess{Hidden: []string{"**/vault", "**/vault/**"}}

	in := tools.ListFilesInput{Path: rel(t, "vault")}
	b, _ := json.Marshal(in)
	_, err := tools.ListFilesDefinition(fa).Function(b)
	if err == nil {
		t.Fatal("expected deny for listing a hidden directory")
	}
	if !strings.Contains(err.Error(), "ERR_DENIED_READ") {
		t.Fatalf("expected ERR_DENIED_READ, got: %v", err)
	}
}

func TestListFiles_HiddenEntries_Filtered(t *testing.T) {
	dir := filepath.Join(sharedDir, rel(t))
	if err := os.MkdirAll(filepath.Join(dir, "vault"), 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	for _, n := range []string{"visible.txt", "locked.txt"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte(""), 0o644); err != nil {
			t.Fatalf("prepare: %v", err)
		}
	}
	fa := &config.FilesystemAccess{Hidden: []string{"**/locked.txt", "**/vault", "**/vault/**"}}

	in := tools.ListFilesInput{Path: rel(t)}
	b, _ := json.Marshal(in)
	out, err := tools.ListFilesDefinition(fa).Function(b)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	var got []string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON output: %v; raw=%q", err, out)
	}
	if len(got) != 1 || got[0] != "visible.txt" {
		t.Fatalf("hidden entries leaked into listing: %v", got)
	}
}
