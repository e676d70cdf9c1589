// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package routes

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/pestgen/pestgen/pkg/types"
)

// Manifest reads a route table saved with `route:list --json > routes.json`.
type Manifest struct {
	fs   afero.Fs
	path string
}

// NewManifest creates a manifest source for the configured document.
func NewManifest(opts Options) (Source, error) {
	if opts.Config.Routes.Manifest == "" {
		return nil, fmt.Errorf("routes.manifest is not set")
	}
	return &Manifest{
		fs:   opts.fs(),
		path: opts.Config.Resolve(opts.Config.Routes.Manifest),
	}, nil
}

// Name returns the source identifier.
func (m *Manifest) Name() string {
	return "manifest"
}

// Endpoints reads and decodes the manifest.
func (m *Manifest) Endpoints(_ context.Context) ([]types.Endpoint, error) {
	data, err := afero.ReadFile(m.fs, m.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read route manifest: %w", err)
	}

	endpoints, err := ParseRouteList(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode route manifest %s: %w", m.path, err)
	}
	return endpoints, nil
}
