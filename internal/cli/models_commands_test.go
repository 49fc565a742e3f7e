// internal/cli/models_commands_test.go
package getllm

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/getllm/getllm/internal/catalog"
	"github.com/getllm/getllm/internal/envfile"
	"github.com/getllm/getllm/internal/manager"
	"github.com/getllm/getllm/internal/runtime"
)

type fakeSource struct {
	entries []catalog.Model
	err     error
}

func (f *fakeSource) Fetch(ctx context.Context) ([]catalog.Model, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.entries, 0, nil
}

func cliEntries() []catalog.Model {
	return []catalog.Model{
		{Name: "codellama:7b", Description: "code model", SizeBytes: 3_800_000_000},
		{Name: "mistral:7b", Description: "general model"},
	}
}

// newFakeManager builds a manager over a temp store and the given source and
// invoker.
func newFakeManager(t *testing.T, source catalog.Source, invoker runtime.Invoker) *manager.Manager {
	t.Helper()
	dir := t.TempDir()
	store := envfile.New(filepath.Join(dir, ".env"), "")
	cat := catalog.New(source, filepath.Join(dir, "models.json"), 24*time.Hour)
	return manager.New(store, cat, invoker)
}

// withManager substitutes the manager constructor for the duration of fn.
func withManager(t *testing.T, mgr *manager.Manager, fn func()) {
	t.Helper()
	orig := newManagerFunc
	newManagerFunc = func() *manager.Manager { return mgr }
	defer func() { newManagerFunc = orig }()
	fn()
}

// execCommand invokes a command's RunE directly with a buffered output.
func execCommand(t *testing.T, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetContext(context.Background())
	defer cmd.SetOut(nil)
	err := cmd.RunE(cmd, args)
	return buf.String(), err
}

func resetCommandFlag(cmd *cobra.Command, name string) {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		return
	}
	_ = flag.Value.Set(flag.DefValue)
	flag.Changed = false
}

func TestModelsListCommand(t *testing.T) {
	invoker := &runtime.Fake{Models: []runtime.InstalledModel{{Name: "codellama:7b"}}}
	mgr := newFakeManager(t, &fakeSource{entries: cliEntries()}, invoker)

	var out string
	var err error
	withManager(t, mgr, func() {
		out, err = execCommand(t, modelsListCmd, []string{})
	})
	if err != nil {
		t.Fatalf("models list failed: %v", err)
	}

	if !strings.Contains(out, "codellama:7b") || !strings.Contains(out, "mistral:7b") {
		t.Errorf("expected model names in output, got:\n%s", out)
	}
	if !strings.Contains(out, "2 models") {
		t.Errorf("expected count line, got:\n%s", out)
	}
	if !strings.Contains(out, "3.8 GB") {
		t.Errorf("expected formatted size, got:\n%s", out)
	}
}

func TestModelsListCachedWithoutSnapshot(t *testing.T) {
	mgr := newFakeManager(t, &fakeSource{entries: cliEntries()}, &runtime.Fake{})

	resetCommandFlag(modelsListCmd, "cached")
	t.Cleanup(func() { resetCommandFlag(modelsListCmd, "cached") })
	_ = modelsListCmd.Flags().Set("cached", "true")

	withManager(t, mgr, func() {
		if _, err := execCommand(t, modelsListCmd, []string{}); !errors.Is(err, catalog.ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}
	})
}

func TestModelsSearchCommand(t *testing.T) {
	mgr := newFakeManager(t, &fakeSource{entries: cliEntries()}, &runtime.Fake{})

	var out string
	var err error
	withManager(t, mgr, func() {
		out, err = execCommand(t, modelsSearchCmd, []string{"code"})
	})
	if err != nil {
		t.Fatalf("models search failed: %v", err)
	}

	if !strings.Contains(out, "codellama:7b") {
		t.Errorf("expected match in output, got:\n%s", out)
	}
	if strings.Contains(out, "mistral:7b") {
		t.Errorf("expected non-matching entry filtered out, got:\n%s", out)
	}
}

func TestModelsInstallCommand(t *testing.T) {
	invoker := &runtime.Fake{}
	mgr := newFakeManager(t, &fakeSource{entries: cliEntries()}, invoker)

	var out string
	var err error
	withManager(t, mgr, func() {
		out, err = execCommand(t, modelsInstallCmd, []string{"codellama:7b"})
	})
	if err != nil {
		t.Fatalf("models install failed: %v", err)
	}

	if len(invoker.InstallCalls) != 1 || invoker.InstallCalls[0] != "codellama:7b" {
		t.Errorf("expected install call recorded, got %v", invoker.InstallCalls)
	}
	if !strings.Contains(out, "Installed codellama:7b") {
		t.Errorf("expected success message, got:\n%s", out)
	}
}

func TestModelsDefaultCommand(t *testing.T) {
	mgr := newFakeManager(t, &fakeSource{entries: cliEntries()}, &runtime.Fake{})

	withManager(t, mgr, func() {
		out, err := execCommand(t, modelsDefaultCmd, []string{})
		if err != nil {
			t.Fatalf("models default failed: %v", err)
		}
		if !strings.Contains(out, "no default model configured") {
			t.Errorf("expected unset notice, got:\n%s", out)
		}

		if _, err := execCommand(t, modelsDefaultCmd, []string{"codellama:7b"}); err != nil {
			t.Fatalf("setting default failed: %v", err)
		}

		out, err = execCommand(t, modelsDefaultCmd, []string{})
		if err != nil {
			t.Fatalf("models default failed after set: %v", err)
		}
		if !strings.Contains(out, "codellama:7b") {
			t.Errorf("expected stored default in output, got:\n%s", out)
		}

		if _, err := execCommand(t, modelsDefaultCmd, []string{"nope:1b"}); !errors.Is(err, manager.ErrUnknownModel) {
			t.Fatalf("expected ErrUnknownModel, got %v", err)
		}
	})
}

func TestModelsInfoCommand(t *testing.T) {
	mgr := newFakeManager(t, &fakeSource{entries: cliEntries()}, &runtime.Fake{})

	withManager(t, mgr, func() {
		out, err := execCommand(t, modelsInfoCmd, []string{"codellama:7b"})
		if err != nil {
			t.Fatalf("models info failed: %v", err)
		}
		if !strings.Contains(out, "code model") || !strings.Contains(out, "3.8 GB") {
			t.Errorf("expected entry details, got:\n%s", out)
		}

		if _, err := execCommand(t, modelsInfoCmd, []string{"nope:1b"}); !errors.Is(err, manager.ErrUnknownModel) {
			t.Fatalf("expected ErrUnknownModel, got %v", err)
		}
	})
}

func TestModelsUpdateCommandSeedsWhenUnavailable(t *testing.T) {
	mgr := newFakeManager(t, &fakeSource{err: errors.New("connection refused")}, &runtime.Fake{})

	resetCommandFlag(modelsUpdateCmd, "seed")
	t.Cleanup(func() { resetCommandFlag(modelsUpdateCmd, "seed") })

	withManager(t, mgr, func() {
		if _, err := execCommand(t, modelsUpdateCmd, []string{}); !errors.Is(err, catalog.ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable without --seed, got %v", err)
		}

		_ = modelsUpdateCmd.Flags().Set("seed", "true")
		out, err := execCommand(t, modelsUpdateCmd, []string{})
		if err != nil {
			t.Fatalf("models update --seed failed: %v", err)
		}
		if !strings.Contains(out, "seeded") {
			t.Errorf("expected seed notice, got:\n%s", out)
		}
	})
}

func TestModelsUpdateCommandReportsCount(t *testing.T) {
	mgr := newFakeManager(t, &fakeSource{entries: cliEntries()}, &runtime.Fake{})

	withManager(t, mgr, func() {
		out, err := execCommand(t, modelsUpdateCmd, []string{})
		if err != nil {
			t.Fatalf("models update failed: %v", err)
		}
		if !strings.Contains(out, "catalog updated: 2 models") {
			t.Errorf("expected update count, got:\n%s", out)
		}
	})
}

func TestModelsPickCommand(t *testing.T) {
	mgr := newFakeManager(t, &fakeSource{entries: cliEntries()}, &runtime.Fake{})

	origPick := pickModelFunc
	t.Cleanup(func() { pickModelFunc = origPick })

	withManager(t, mgr, func() {
		pickModelFunc = func(models []catalog.Model) (string, bool, error) {
			if len(models) != 2 {
				t.Fatalf("expected catalog entries passed to picker, got %d", len(models))
			}
			return "mistral:7b", true, nil
		}
		out, err := execCommand(t, modelsPickCmd, []string{})
		if err != nil {
			t.Fatalf("models pick failed: %v", err)
		}
		if !strings.Contains(out, "default model set to mistral:7b") {
			t.Errorf("expected confirmation, got:\n%s", out)
		}
		if !strings.Contains(out, "models install mistral:7b") {
			t.Errorf("expected install hint for uninstalled choice, got:\n%s", out)
		}

		name, ok := mgr.DefaultModel()
		if !ok || name != "mistral:7b" {
			t.Fatalf("expected picked model persisted, got %q ok=%v", name, ok)
		}
	})
}

func TestModelsPickCommandQuitWithoutChoice(t *testing.T) {
	mgr := newFakeManager(t, &fakeSource{entries: cliEntries()}, &runtime.Fake{})

	origPick := pickModelFunc
	t.Cleanup(func() { pickModelFunc = origPick })

	withManager(t, mgr, func() {
		pickModelFunc = func(models []catalog.Model) (string, bool, error) {
			return "", false, nil
		}
		out, err := execCommand(t, modelsPickCmd, []string{})
		if err != nil {
			t.Fatalf("models pick failed: %v", err)
		}
		if !strings.Contains(out, "no model selected") {
			t.Errorf("expected quit notice, got:\n%s", out)
		}
		if _, ok := mgr.DefaultModel(); ok {
			t.Error("expected no default stored after quitting")
		}
	})
}
