// internal/runtime/runtime.go
// Package runtime drives the external model runtime binary (Ollama) through
// scoped subprocess invocations and probes its local HTTP API.
//
// The binary is an external collaborator: this package never reimplements it,
// it only shells out for install, list and run actions and checks the server
// over HTTP. A missing binary on PATH surfaces as ErrRuntimeNotFound so
// callers can tell "not installed" apart from "invocation failed".
package runtime

import (
	"context"
	"errors"
	"fmt"
)

// ErrRuntimeNotFound reports that the runtime binary is absent from PATH.
var ErrRuntimeNotFound = errors.New("runtime binary not found on PATH")

// InstallError reports a nonzero exit from the runtime's install action,
// carrying the captured output for diagnosis.
type InstallError struct {
	Model  string
	Output string
	Err    error
}

func (e *InstallError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("install %q: %v", e.Model, e.Err)
	}
	return fmt.Sprintf("install %q: %v: %s", e.Model, e.Err, e.Output)
}

func (e *InstallError) Unwrap() error { return e.Err }

// RunError reports a nonzero exit from the runtime's run action.
type RunError struct {
	Model  string
	Output string
	Err    error
}

func (e *RunError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("run %q: %v", e.Model, e.Err)
	}
	return fmt.Sprintf("run %q: %v: %s", e.Model, e.Err, e.Output)
}

func (e *RunError) Unwrap() error { return e.Err }

// InstalledModel is one row of the runtime's local model storage listing.
type InstalledModel struct {
	Name      string
	ID        string
	SizeBytes int64
}

// Invoker abstracts the runtime binary so callers can be exercised without a
// real install. Exec is the subprocess implementation; Fake serves tests.
type Invoker interface {
	// Install pulls a model into local storage. Nonzero exits surface as
	// *InstallError; a missing binary as ErrRuntimeNotFound.
	Install(ctx context.Context, model string) error

	// Installed lists the models present in local storage.
	Installed(ctx context.Context) ([]InstalledModel, error)

	// Run sends one prompt to a model and returns the captured completion.
	Run(ctx context.Context, model, prompt string) (string, error)
}
