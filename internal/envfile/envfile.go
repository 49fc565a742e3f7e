// internal/envfile/envfile.go
// Package envfile persists the default-model setting in a key=value env file.
//
// The store treats a missing file or key as the valid "unset" state rather
// than an error, seeding new files from a template when one exists. Writes
// rewrite only the line the store owns, so every other line in the file
// survives verbatim.
package envfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/getllm/getllm/internal/util"
	"github.com/subosito/gotenv"
)

// DefaultModelKey is the env key holding the default model name.
const DefaultModelKey = "OLLAMA_MODEL"

// ErrInvalidValue reports a model name that cannot be represented as an env
// file value, such as an empty string or one with embedded newlines.
var ErrInvalidValue = errors.New("invalid value for env file")

// WriteError reports a filesystem failure while persisting the env file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write env file %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Store reads and writes a single env file, optionally seeded from a template.
type Store struct {
	Path         string
	TemplatePath string
}

// New returns a Store over the given env file path. templatePath may be empty
// when no template seeding is wanted.
func New(path, templatePath string) *Store {
	return &Store{Path: path, TemplatePath: templatePath}
}

// DefaultModel returns the persisted default model name. The second return is
// false when neither the env file nor the template defines the key. Missing
// files are an unset state, never an error.
func (s *Store) DefaultModel() (string, bool) {
	if v, ok := s.lookup(s.Path); ok {
		return v, true
	}
	if s.TemplatePath != "" {
		if v, ok := s.lookup(s.TemplatePath); ok {
			return v, true
		}
	}
	return "", false
}

// SetDefaultModel persists name as the default model. When no env file exists
// yet it is seeded from the template, or started empty if the template is
// missing too. All lines other than the one owning the key are preserved
// byte-for-byte. The write is atomic: a temp file in the same directory is
// renamed over the target.
func (s *Store) SetDefaultModel(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, "\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidValue, name)
	}

	content, err := s.readOrSeed()
	if err != nil {
		return &WriteError{Path: s.Path, Err: err}
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(s.Path); err == nil {
		mode = info.Mode().Perm()
	}

	updated := rewriteKey(content, DefaultModelKey, name)
	if err := util.WriteFileAtomic(s.Path, updated, mode); err != nil {
		return &WriteError{Path: s.Path, Err: err}
	}
	return nil
}

// lookup parses one file and returns the key's value. Unreadable or absent
// files report an unset state.
func (s *Store) lookup(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	env := gotenv.Parse(bytes.NewReader(data))
	v, ok := env[DefaultModelKey]
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// readOrSeed returns the current env file contents, falling back to the
// template and then to empty when the file does not exist yet.
func (s *Store) readOrSeed() ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if s.TemplatePath != "" {
		seed, terr := os.ReadFile(s.TemplatePath)
		if terr == nil {
			return seed, nil
		}
		if !errors.Is(terr, os.ErrNotExist) {
			return nil, terr
		}
	}
	return nil, nil
}

// rewriteKey replaces the value of key in content, appending the assignment
// when no line owns the key yet. Duplicate assignments collapse into the one
// rewritten line; every other line passes through unchanged.
func rewriteKey(content []byte, key, value string) []byte {
	assignment := key + "=" + value

	var out []string
	replaced := false
	lines := strings.Split(string(content), "\n")

	// A trailing newline produces one empty trailing element; drop it here and
	// restore the newline on join so files stay newline-terminated.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	for _, line := range lines {
		if ownsKey(line, key) {
			if !replaced {
				out = append(out, assignment)
				replaced = true
			}
			continue
		}
		out = append(out, line)
	}
	if !replaced {
		out = append(out, assignment)
	}
	return []byte(strings.Join(out, "\n") + "\n")
}

// ownsKey reports whether a raw env line assigns the given key, allowing
// leading whitespace and an optional export prefix.
func ownsKey(line, key string) bool {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "export ")
	trimmed = strings.TrimLeft(trimmed, " \t")
	if !strings.HasPrefix(trimmed, key) {
		return false
	}
	rest := strings.TrimLeft(trimmed[len(key):], " \t")
	return strings.HasPrefix(rest, "=")
}
