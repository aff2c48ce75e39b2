// Package registry maps stable model keys to extractor factories.
//
// Registration happens once at start-up; afterwards the registry is only read. Availability is
// probed by constructing: a factory that fails is reported as unavailable and left out of
// ListAvailable.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/thywilljoshua/pdf2md/internal/extractor"
)

// Factory builds a fresh extractor. It must fail fast, with a descriptive error, when a
// credential or native dependency is missing.
type Factory func() (extractor.Extractor, error)

type ModelInfo struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type entry struct {
	info    ModelInfo
	factory Factory
}

type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func New() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds key. The key is trimmed; a blank key or one already present is rejected and the
// existing entry stays in place.
func (r *Registry) Register(key, label string, factory Factory) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrInvalidKey
	}
	if factory == nil {
		return fmt.Errorf("registry: nil factory for %q", key)
	}
	if strings.TrimSpace(label) == "" {
		label = key
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[key]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	r.entries[key] = entry{info: ModelInfo{Key: key, Label: label}, factory: factory}
	return nil
}

// MustRegister is Register for start-up code where a collision is a programming error.
func (r *Registry) MustRegister(key, label string, factory Factory) {
	if err := r.Register(key, label, factory); err != nil {
		panic(err)
	}
}

// List returns every registered model ordered by label, case-insensitively.
func (r *Registry) List() []ModelInfo {
	r.mu.RLock()
	out := make([]ModelInfo, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.info)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Label), strings.ToLower(out[j].Label)
		if a != b {
			return a < b
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Resolve constructs the extractor registered under key. Construction failures come back as
// *UnavailableError.
func (r *Registry) Resolve(key string) (extractor.Extractor, error) {
	key = strings.TrimSpace(key)
	r.mu.RLock()
	e, ok := r.entries[key]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	ex, err := e.factory()
	if err != nil {
		return nil, &UnavailableError{Key: key, Err: err}
	}
	if ex == nil {
		return nil, &UnavailableError{Key: key, Err: fmt.Errorf("factory returned nil")}
	}
	return ex, nil
}

// Label returns the display label for key.
func (r *Registry) Label(key string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[strings.TrimSpace(key)]
	return e.info.Label, ok
}

// ListAvailable is List restricted to models whose factory currently succeeds. Probe instances
// are closed straight away.
func (r *Registry) ListAvailable() []ModelInfo {
	all := r.List()
	out := make([]ModelInfo, 0, len(all))
	for _, info := range all {
		ex, err := r.Resolve(info.Key)
		if err != nil {
			continue
		}
		_ = extractor.Close(ex)
		out = append(out, info)
	}
	return out
}
