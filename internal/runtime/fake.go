// internal/runtime/fake.go
package runtime

import (
	"context"
	"sync"
)

// RunCall is one recorded Fake.Run invocation.
type RunCall struct {
	Model  string
	Prompt string
}

// Fake is an in-memory Invoker for tests. Installs append to Models, and the
// call slices record what the caller asked for.
type Fake struct {
	mu sync.Mutex

	Models       []InstalledModel
	InstallErr   error
	InstalledErr error
	RunErr       error
	RunOutput    string

	InstallCalls []string
	RunCalls     []RunCall
}

// Install records the request and appends the model to local storage unless
// InstallErr is set.
func (f *Fake) Install(ctx context.Context, model string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.InstallCalls = append(f.InstallCalls, model)
	if f.InstallErr != nil {
		return f.InstallErr
	}
	f.Models = append(f.Models, InstalledModel{Name: model})
	return nil
}

// Installed returns a copy of the fake local storage.
func (f *Fake) Installed(ctx context.Context) ([]InstalledModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.InstalledErr != nil {
		return nil, f.InstalledErr
	}
	out := make([]InstalledModel, len(f.Models))
	copy(out, f.Models)
	return out, nil
}

// Run records the request and returns RunOutput unless RunErr is set.
func (f *Fake) Run(ctx context.Context, model, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.RunCalls = append(f.RunCalls, RunCall{Model: model, Prompt: prompt})
	if f.RunErr != nil {
		return "", f.RunErr
	}
	return f.RunOutput, nil
}
