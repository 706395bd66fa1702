package proc

import (
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEditorCommand(t *testing.T) {
	t.Setenv("EDITOR", "nano")
	if got := EditorCommand("code -w"); got != "code -w" {
		t.Errorf("configured editor ignored, got %q", got)
	}
	if got := EditorCommand(""); got != "nano" {
		t.Errorf("EDITOR ignored, got %q", got)
	}

	t.Setenv("EDITOR", "")
	if got := EditorCommand("  "); got != defaultEditor {
		t.Errorf("fallback = %q, want %q", got, defaultEditor)
	}
}

func TestEditorArgs(t *testing.T) {
	e := &Editor{Command: "code -w -g"}
	name, args, err := e.Args("src/main.go", 42)
	if err != nil {
		t.Fatalf("Args error: %v", err)
	}
	if name != "code" {
		t.Errorf("name = %q, want code", name)
	}
	want := []string{"-w", "-g", "+42", "src/main.go"}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("args = %q, want %q", args, want)
	}

	if _, _, err := (&Editor{Command: ""}).Args("x", 1); err == nil {
		t.Error("expected an error for an empty editor command")
	}
}

func TestEditorOpen(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}

	file := filepath.Join(t.TempDir(), "x.txt")
	if err := os.WriteFile(file, []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := &Editor{Command: "true"}
	if err := e.Open(file, 1); err != nil {
		t.Errorf("Open error: %v", err)
	}

	if err := e.Open(filepath.Join(t.TempDir(), "missing"), 1); err == nil {
		t.Error("expected an error for a missing file")
	}

	failing := &Editor{Command: "false"}
	if err := failing.Open(file, 1); err == nil {
		t.Error("expected an error from a failing editor")
	}
}
