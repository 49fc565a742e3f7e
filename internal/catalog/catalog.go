// internal/catalog/catalog.go
// Package catalog retrieves and caches the list of installable models.
//
// Listings are served from an in-memory copy when fresh, then from an
// on-disk snapshot, and only then from the remote registry. A failed refresh
// falls back to whatever snapshot exists, however old, so the tool keeps
// working offline once a catalog has been seen at least once.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/getllm/getllm/internal/logging"
	gocache "github.com/patrickmn/go-cache"
)

// Model describes one installable model from the registry. Installed is
// derived at query time against the runtime's local storage and is never
// persisted with a snapshot.
type Model struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SizeBytes   int64  `json:"size_bytes,omitempty"`
	Installed   bool   `json:"-"`
}

// Source produces a fresh catalog listing from a remote registry. The second
// return counts malformed entries that were skipped during parsing.
type Source interface {
	Fetch(ctx context.Context) ([]Model, int, error)
}

// ErrUnavailable reports that no catalog could be produced: the remote fetch
// failed and no usable snapshot exists.
var ErrUnavailable = errors.New("model catalog unavailable")

// StaleFallbackError reports that a refresh failed and the returned entries
// come from an old snapshot instead. It accompanies usable data; callers
// treat it as a warning, not a failure.
type StaleFallbackError struct {
	FetchedAt time.Time
	Err       error
}

func (e *StaleFallbackError) Error() string {
	return fmt.Sprintf("serving catalog snapshot from %s, refresh failed: %v",
		e.FetchedAt.Format(time.RFC3339), e.Err)
}

func (e *StaleFallbackError) Unwrap() error { return e.Err }

const memKey = "catalog"

// Catalog serves model listings with snapshot caching and refresh-on-demand.
// All cache transitions happen under one mutex so concurrent listings trigger
// at most one in-flight refresh per process.
type Catalog struct {
	source    Source
	cachePath string
	maxAge    time.Duration

	mu  sync.Mutex
	mem *gocache.Cache
}

// New returns a Catalog reading from source and persisting snapshots at
// cachePath. Snapshots older than maxAge trigger a refresh attempt on the
// next listing; a non-positive maxAge means snapshots never go stale.
func New(source Source, cachePath string, maxAge time.Duration) *Catalog {
	return &Catalog{
		source:    source,
		cachePath: cachePath,
		maxAge:    maxAge,
		mem:       gocache.New(maxAge, 2*maxAge),
	}
}

// List returns the catalog entries. With forceRefresh false a fresh cache is
// served as-is; otherwise the remote registry is consulted. When the fetch
// fails and any snapshot exists, the snapshot entries are returned together
// with a *StaleFallbackError. With no snapshot at all the error is
// ErrUnavailable. Returned slices are copies; callers may mutate them freely.
func (c *Catalog) List(ctx context.Context, forceRefresh bool) ([]Model, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !forceRefresh {
		if v, ok := c.mem.Get(memKey); ok {
			return copyModels(v.([]Model)), nil
		}
		if snap := c.loadSnapshot(); snap != nil && !c.stale(snap.FetchedAt) {
			c.mem.Set(memKey, snap.Entries, gocache.DefaultExpiration)
			return copyModels(snap.Entries), nil
		}
	}

	return c.refresh(ctx)
}

// Cached returns the most recent snapshot regardless of age, without touching
// the network. ErrUnavailable when nothing has ever been cached.
func (c *Catalog) Cached() ([]Model, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.mem.Get(memKey); ok {
		return copyModels(v.([]Model)), nil
	}
	if snap := c.loadSnapshot(); snap != nil && len(snap.Entries) > 0 {
		return copyModels(snap.Entries), nil
	}
	return nil, ErrUnavailable
}

// Search returns the entries whose name or description contains query,
// case-insensitively, in catalog order. It follows the same refresh-or-
// fallback policy as List, so the returned error may be a *StaleFallbackError
// alongside usable results.
func (c *Catalog) Search(ctx context.Context, query string) ([]Model, error) {
	entries, err := c.List(ctx, false)
	if err != nil {
		var stale *StaleFallbackError
		if !errors.As(err, &stale) {
			return nil, err
		}
	}
	return Filter(entries, query), err
}

// Seed replaces the snapshot with the builtin starter list, for first runs on
// machines that cannot reach the registry.
func (c *Catalog) Seed() ([]Model, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := DefaultModels()
	snap := &Snapshot{FetchedAt: time.Now().UTC(), Entries: entries}
	if err := saveSnapshot(c.cachePath, snap); err != nil {
		return nil, fmt.Errorf("seed catalog snapshot: %w", err)
	}
	c.mem.Set(memKey, entries, gocache.DefaultExpiration)
	return copyModels(entries), nil
}

// refresh fetches the remote catalog and replaces both cache layers.
// The caller must hold mu.
func (c *Catalog) refresh(ctx context.Context) ([]Model, error) {
	entries, skipped, err := c.source.Fetch(ctx)
	if err != nil {
		snap := c.loadSnapshot()
		if snap == nil || len(snap.Entries) == 0 {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		logging.LogEvent("catalog refresh failed, serving snapshot from %s: %v",
			snap.FetchedAt.Format(time.RFC3339), err)
		return copyModels(snap.Entries), &StaleFallbackError{FetchedAt: snap.FetchedAt, Err: err}
	}
	if skipped > 0 {
		logging.LogEvent("catalog fetch skipped %d malformed entries", skipped)
	}

	entries = dedupe(entries)
	snap := &Snapshot{FetchedAt: time.Now().UTC(), Entries: entries}
	if err := saveSnapshot(c.cachePath, snap); err != nil {
		// A read-only cache dir degrades to memory-only caching.
		logging.LogEvent("could not persist catalog snapshot to %s: %v", c.cachePath, err)
	}
	c.mem.Set(memKey, entries, gocache.DefaultExpiration)
	return copyModels(entries), nil
}

// loadSnapshot reads the on-disk snapshot, treating unreadable or invalid
// files as absent.
func (c *Catalog) loadSnapshot() *Snapshot {
	snap, err := LoadSnapshot(c.cachePath)
	if err != nil {
		logging.LogEvent("could not read catalog snapshot %s: %v", c.cachePath, err)
		return nil
	}
	return snap
}

func (c *Catalog) stale(fetchedAt time.Time) bool {
	if c.maxAge <= 0 {
		return false
	}
	return time.Since(fetchedAt) > c.maxAge
}

// Filter returns the entries whose name or description contains query,
// case-insensitively, preserving input order. An empty query returns the
// input unchanged.
func Filter(entries []Model, query string) []Model {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}
	var out []Model
	for _, m := range entries {
		if strings.Contains(strings.ToLower(m.Name), q) ||
			strings.Contains(strings.ToLower(m.Description), q) {
			out = append(out, m)
		}
	}
	return out
}

func copyModels(entries []Model) []Model {
	out := make([]Model, len(entries))
	copy(out, entries)
	return out
}

// dedupe drops entries with empty or repeated names, keeping the first
// occurrence so snapshot names stay unique.
func dedupe(entries []Model) []Model {
	seen := make(map[string]struct{}, len(entries))
	var out []Model
	for _, m := range entries {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		m.Name = name
		out = append(out, m)
	}
	return out
}
