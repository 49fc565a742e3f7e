// internal/manager/manager.go
// Package manager composes the default-model store, the model catalog and the
// runtime invoker behind one façade. Command code goes through a Manager for
// every model operation; the store and catalog stay exported for callers that
// need to bypass validation.
package manager

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getllm/getllm/internal/catalog"
	"github.com/getllm/getllm/internal/envfile"
	"github.com/getllm/getllm/internal/logging"
	"github.com/getllm/getllm/internal/runtime"
)

// ErrUnknownModel reports a model name found in neither the catalog nor the
// installed set.
var ErrUnknownModel = errors.New("unknown model")

// ErrNoDefaultModel reports a run request without an explicit model while no
// default is stored.
var ErrNoDefaultModel = errors.New("no default model configured")

// Manager is the orchestration façade over store, catalog and runtime.
type Manager struct {
	store   *envfile.Store
	catalog *catalog.Catalog
	invoker runtime.Invoker
}

// New returns a Manager over the given collaborators.
func New(store *envfile.Store, cat *catalog.Catalog, invoker runtime.Invoker) *Manager {
	return &Manager{store: store, catalog: cat, invoker: invoker}
}

// Models lists the catalog with each entry's Installed flag set from the
// runtime's installed set. A stale-cache fallback from the catalog is passed
// through alongside the annotated entries; a failing installed-set query only
// logs and leaves every flag false.
func (m *Manager) Models(ctx context.Context) ([]catalog.Model, error) {
	models, err := m.catalog.List(ctx, false)
	if err != nil && !isStaleFallback(err) {
		return nil, err
	}
	m.annotate(ctx, models)
	return models, err
}

// Search filters the catalog like Models does, annotation included.
func (m *Manager) Search(ctx context.Context, query string) ([]catalog.Model, error) {
	models, err := m.catalog.Search(ctx, query)
	if err != nil && !isStaleFallback(err) {
		return nil, err
	}
	m.annotate(ctx, models)
	return models, err
}

// CachedModels lists whatever snapshot is available locally regardless of
// age, annotated like Models. ErrUnavailable when no snapshot exists.
func (m *Manager) CachedModels(ctx context.Context) ([]catalog.Model, error) {
	models, err := m.catalog.Cached()
	if err != nil {
		return nil, err
	}
	m.annotate(ctx, models)
	return models, nil
}

// Refresh forces a catalog fetch and returns the annotated result, with the
// same stale-fallback contract as Models.
func (m *Manager) Refresh(ctx context.Context) ([]catalog.Model, error) {
	models, err := m.catalog.List(ctx, true)
	if err != nil && !isStaleFallback(err) {
		return nil, err
	}
	m.annotate(ctx, models)
	return models, err
}

// Seed replaces the local snapshot with the builtin model list and returns
// what was written.
func (m *Manager) Seed() ([]catalog.Model, error) {
	return m.catalog.Seed()
}

// DefaultModel reports the stored default model, if any.
func (m *Manager) DefaultModel() (string, bool) {
	return m.store.DefaultModel()
}

// SetDefaultModel persists name as the default after checking it against the
// catalog and the installed set. Unknown names fail with ErrUnknownModel;
// callers that must store an unvalidated name use the store directly.
func (m *Manager) SetDefaultModel(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return m.store.SetDefaultModel(name)
	}

	known, err := m.knownModel(ctx, name)
	if err != nil {
		return err
	}
	if !known {
		return fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
	return m.store.SetDefaultModel(name)
}

// Install pulls the model through the runtime. Failures keep the runtime
// taxonomy: ErrRuntimeNotFound for a missing binary, *runtime.InstallError
// with captured output for a nonzero exit.
func (m *Manager) Install(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrUnknownModel)
	}
	return m.invoker.Install(ctx, name)
}

// Run forwards a one-shot prompt to the runtime. An empty model falls back to
// the stored default; ErrNoDefaultModel when neither is available.
func (m *Manager) Run(ctx context.Context, model, prompt string) (string, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		stored, ok := m.store.DefaultModel()
		if !ok {
			return "", ErrNoDefaultModel
		}
		model = stored
	}
	return m.invoker.Run(ctx, model, prompt)
}

// knownModel reports whether name appears in the catalog or the installed
// set. An unreachable catalog fails the lookup instead of reporting a false
// negative; a failing installed-set query only narrows the check to catalog
// names and is logged.
func (m *Manager) knownModel(ctx context.Context, name string) (bool, error) {
	var sourceErr error

	models, err := m.catalog.List(ctx, false)
	if err != nil && !isStaleFallback(err) {
		sourceErr = err
	}
	for _, model := range models {
		if strings.EqualFold(model.Name, name) {
			return true, nil
		}
	}

	set, err := m.installedSet(ctx)
	if err != nil {
		if sourceErr != nil {
			return false, fmt.Errorf("cannot validate model %q: %w", name, err)
		}
		logging.LogEvent("installed-set lookup failed during validation: %v", err)
		return false, nil
	}
	if _, ok := set[strings.ToLower(name)]; ok {
		return true, nil
	}
	if sourceErr != nil {
		return false, fmt.Errorf("cannot validate model %q: %w", name, sourceErr)
	}
	return false, nil
}

// annotate flips the Installed flag on entries present in the runtime's
// installed set. Lookup failures degrade to all-false annotation.
func (m *Manager) annotate(ctx context.Context, models []catalog.Model) {
	if len(models) == 0 {
		return
	}
	set, err := m.installedSet(ctx)
	if err != nil {
		logging.LogEvent("installed-set lookup failed, listing models unannotated: %v", err)
		return
	}
	for i := range models {
		if _, ok := set[strings.ToLower(models[i].Name)]; ok {
			models[i].Installed = true
		}
	}
}

// installedSet builds a lowercase name set from the runtime's installed
// models. A trailing :latest tag also registers the bare name so catalog
// entries without a tag still match.
func (m *Manager) installedSet(ctx context.Context) (map[string]struct{}, error) {
	installed, err := m.invoker.Installed(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(installed))
	for _, model := range installed {
		name := strings.ToLower(strings.TrimSpace(model.Name))
		if name == "" {
			continue
		}
		set[name] = struct{}{}
		if base, ok := strings.CutSuffix(name, ":latest"); ok {
			set[base] = struct{}{}
		}
	}
	return set, nil
}

func isStaleFallback(err error) bool {
	var stale *catalog.StaleFallbackError
	return errors.As(err, &stale)
}
