// internal/envfile/envfile_test.go
package envfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetThenGetRoundTrip(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), ".env"), "")

	for _, name := range []string{"codellama:7b", "deepseek-coder:6.7b", "phi:2.7b"} {
		if err := store.SetDefaultModel(name); err != nil {
			t.Fatalf("SetDefaultModel(%q): %v", name, err)
		}
		got, ok := store.DefaultModel()
		if !ok {
			t.Fatalf("DefaultModel after set %q: unset", name)
		}
		if got != name {
			t.Fatalf("DefaultModel = %q, want %q", got, name)
		}
	}
}

func TestDefaultModelMissingFile(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), ".env"), filepath.Join(t.TempDir(), ".env.example"))

	got, ok := store.DefaultModel()
	if ok {
		t.Fatalf("expected unset state on fresh environment, got %q", got)
	}
}

func TestSetPreservesUnrelatedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	initial := "# local settings\nFOO=bar\n\nOLLAMA_MODEL=tinyllama:1.1b\nMODELS_DIR=./models\n"
	if err := os.WriteFile(path, []byte(initial), 0o644); err != nil {
		t.Fatal(err)
	}

	store := New(path, "")
	if err := store.SetDefaultModel("mistral:7b"); err != nil {
		t.Fatalf("SetDefaultModel: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	for _, want := range []string{"# local settings\n", "FOO=bar\n", "MODELS_DIR=./models\n", "OLLAMA_MODEL=mistral:7b\n"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q preserved, file:\n%s", want, content)
		}
	}
	if strings.Contains(content, "tinyllama") {
		t.Fatalf("old value survived rewrite:\n%s", content)
	}
}

func TestSeedsFromTemplate(t *testing.T) {
	dir := t.TempDir()
	template := filepath.Join(dir, ".env.example")
	if err := os.WriteFile(template, []byte("# copy me to .env\nOLLAMA_MODEL=tinyllama:1.1b\nOLLAMA_TIMEOUT=120\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := New(filepath.Join(dir, ".env"), template)
	if err := store.SetDefaultModel("gemma:2b"); err != nil {
		t.Fatalf("SetDefaultModel: %v", err)
	}

	data, err := os.ReadFile(store.Path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "# copy me to .env\n") {
		t.Fatalf("template comment not seeded:\n%s", content)
	}
	if !strings.Contains(content, "OLLAMA_TIMEOUT=120\n") {
		t.Fatalf("template key not seeded:\n%s", content)
	}
	if !strings.Contains(content, "OLLAMA_MODEL=gemma:2b\n") {
		t.Fatalf("new value missing:\n%s", content)
	}
}

func TestReadFallsBackToTemplate(t *testing.T) {
	dir := t.TempDir()
	template := filepath.Join(dir, ".env.example")
	if err := os.WriteFile(template, []byte("OLLAMA_MODEL=qwen:7b\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := New(filepath.Join(dir, ".env"), template)
	got, ok := store.DefaultModel()
	if !ok || got != "qwen:7b" {
		t.Fatalf("expected template fallback qwen:7b, got %q ok=%v", got, ok)
	}
}

func TestSetDefaultModelInvalidValue(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), ".env"), "")

	for _, name := range []string{"", "   ", "bad\nname", "bad\rname"} {
		err := store.SetDefaultModel(name)
		if !errors.Is(err, ErrInvalidValue) {
			t.Fatalf("SetDefaultModel(%q) = %v, want ErrInvalidValue", name, err)
		}
	}
}

func TestDuplicateAssignmentsCollapse(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("OLLAMA_MODEL=old:1\nFOO=bar\nOLLAMA_MODEL=older:2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := New(path, "")
	if err := store.SetDefaultModel("codegemma:2b"); err != nil {
		t.Fatalf("SetDefaultModel: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "OLLAMA_MODEL="); n != 1 {
		t.Fatalf("expected one assignment, got %d in:\n%s", n, data)
	}
	got, ok := store.DefaultModel()
	if !ok || got != "codegemma:2b" {
		t.Fatalf("DefaultModel = %q ok=%v", got, ok)
	}
}

func TestAppendWhenKeyAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("FOO=bar\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := New(path, "")
	if err := store.SetDefaultModel("stablelm-zephyr:3b"); err != nil {
		t.Fatalf("SetDefaultModel: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.HasSuffix(content, "OLLAMA_MODEL=stablelm-zephyr:3b\n") {
		t.Fatalf("expected appended assignment with trailing newline:\n%q", content)
	}
	if !strings.HasPrefix(content, "FOO=bar\n") {
		t.Fatalf("existing key disturbed:\n%q", content)
	}
}

func TestSetDefaultModelWriteError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	// A regular file as a path component fails the read and the write
	// regardless of process privileges.
	store := New(filepath.Join(blocker, ".env"), "")
	err := store.SetDefaultModel("mistral:7b")
	var writeErr *WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected *WriteError, got %v", err)
	}
	if writeErr.Path != store.Path {
		t.Fatalf("WriteError path = %q, want %q", writeErr.Path, store.Path)
	}
	if writeErr.Unwrap() == nil {
		t.Fatal("expected wrapped cause")
	}
}

func TestOwnsKeyVariants(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"OLLAMA_MODEL=x", true},
		{"  OLLAMA_MODEL = x", true},
		{"export OLLAMA_MODEL=x", true},
		{"OLLAMA_MODEL_DIR=x", false},
		{"# OLLAMA_MODEL=x", false},
		{"FOO=bar", false},
	}
	for _, tc := range cases {
		if got := ownsKey(tc.line, DefaultModelKey); got != tc.want {
			t.Fatalf("ownsKey(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}
