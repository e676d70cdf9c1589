// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package routes

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pestgen/pestgen/internal/config"
)

type registration struct {
	info    SourceInfo
	factory Factory
}

// Registry manages route source factories.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]registration
}

// NewRegistry creates an empty source registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]registration),
	}
}

// DefaultRegistry returns a registry holding the built-in sources.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(SourceInfo{
		Name:        config.SourceArtisan,
		Description: "runs php artisan route:list --json in the project",
	}, NewArtisan)
	r.MustRegister(SourceInfo{
		Name:        config.SourceManifest,
		Description: "reads a saved route:list --json document",
	}, NewManifest)
	r.MustRegister(SourceInfo{
		Name:        config.SourceStatic,
		Description: "parses the route files without running PHP",
	}, NewStatic)
	return r
}

// Register adds a source factory to the registry.
// It returns an error if a source with the same name is already registered.
func (r *Registry) Register(info SourceInfo, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("cannot register nil source factory")
	}
	if info.Name == "" {
		return fmt.Errorf("source name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sources[info.Name]; exists {
		return fmt.Errorf("source %q is already registered", info.Name)
	}

	r.sources[info.Name] = registration{info: info, factory: factory}
	return nil
}

// MustRegister adds a source factory, panicking on error.
func (r *Registry) MustRegister(info SourceInfo, factory Factory) {
	if err := r.Register(info, factory); err != nil {
		panic(fmt.Sprintf("failed to register source: %v", err))
	}
}

// Open constructs the named source.
func (r *Registry) Open(name string, opts Options) (Source, error) {
	r.mu.RLock()
	reg, ok := r.sources[name]
	r.mu.RUnlock()

	if !ok {
		names := make([]string, 0, len(r.sources))
		for _, info := range r.List() {
			names = append(names, info.Name)
		}
		return nil, fmt.Errorf("unknown route source %q, must be one of: %s", name, strings.Join(names, ", "))
	}
	return reg.factory(opts)
}

// List returns the registered sources sorted by name.
func (r *Registry) List() []SourceInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]SourceInfo, 0, len(r.sources))
	for _, reg := range r.sources {
		infos = append(infos, reg.info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// Has checks if a source is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.sources[name]
	return exists
}
