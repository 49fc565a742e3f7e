// internal/runtime/exec.go
package runtime

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/getllm/getllm/internal/logging"
	"github.com/getllm/getllm/internal/util"
)

// columnPattern splits the runtime's tabular output on runs of two or more
// spaces, keeping human sizes like "3.8 GB" in one column.
var columnPattern = regexp.MustCompile(`\s{2,}`)

// Exec invokes the runtime binary as scoped subprocesses with captured output.
type Exec struct {
	Binary string
}

// NewExec returns an Exec invoking the given binary name or path.
func NewExec(binary string) *Exec {
	return &Exec{Binary: binary}
}

// Install pulls a model via the runtime's pull action.
func (e *Exec) Install(ctx context.Context, model string) error {
	path, err := e.lookPath()
	if err != nil {
		return err
	}

	logging.LogCommand(e.Binary, []string{"pull", model})
	cmd := exec.CommandContext(ctx, path, "pull", model)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return &InstallError{Model: model, Output: strings.TrimSpace(out.String()), Err: err}
	}
	return nil
}

// Installed lists models present in the runtime's local storage.
func (e *Exec) Installed(ctx context.Context) ([]InstalledModel, error) {
	path, err := e.lookPath()
	if err != nil {
		return nil, err
	}

	logging.LogCommand(e.Binary, []string{"list"})
	cmd := exec.CommandContext(ctx, path, "list")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("list installed models: %w", err)
	}
	return ParseList(string(out)), nil
}

// Run sends one prompt to a model and returns the completion from stdout.
func (e *Exec) Run(ctx context.Context, model, prompt string) (string, error) {
	path, err := e.lookPath()
	if err != nil {
		return "", err
	}

	logging.LogCommand(e.Binary, []string{"run", model, prompt})
	cmd := exec.CommandContext(ctx, path, "run", model, prompt)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &RunError{Model: model, Output: strings.TrimSpace(stderr.String()), Err: err}
	}
	return strings.TrimSpace(stdout.String()), nil
}

// lookPath resolves the binary, mapping absence to ErrRuntimeNotFound so it
// is never conflated with an invocation failure.
func (e *Exec) lookPath() (string, error) {
	path, err := exec.LookPath(e.Binary)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrRuntimeNotFound, e.Binary)
	}
	return path, nil
}

// ParseList parses the runtime's tabular list output. Header and blank lines
// are skipped, as are stray lines that do not split into columns, so progress
// noise mixed into the output never turns into a model name.
//
//	NAME            ID              SIZE      MODIFIED
//	codellama:7b    8fdf8f752f6e    3.8 GB    3 weeks ago
func ParseList(output string) []InstalledModel {
	var models []InstalledModel
	for i, line := range strings.Split(strings.TrimSpace(output), "\n") {
		row := strings.TrimSpace(line)
		if row == "" {
			continue
		}
		if i == 0 && strings.HasPrefix(strings.ToUpper(row), "NAME") {
			continue
		}

		cols := columnPattern.Split(row, -1)
		if len(cols) < 2 || cols[0] == "" {
			continue
		}
		m := InstalledModel{Name: cols[0], ID: cols[1]}
		if len(cols) > 2 {
			m.SizeBytes = util.ParseHumanSize(cols[2])
		}
		models = append(models, m)
	}
	return models
}
