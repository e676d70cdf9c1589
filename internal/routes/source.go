// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

// Package routes provides the sources a Laravel route table can be read from.
package routes

import (
	"context"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/pestgen/pestgen/internal/config"
	"github.com/pestgen/pestgen/pkg/types"
)

// Source produces the endpoint descriptors of a Laravel application.
type Source interface {
	// Name returns the source identifier (e.g., "artisan", "manifest").
	Name() string

	// Endpoints returns the route table in registration order.
	Endpoints(ctx context.Context) ([]types.Endpoint, error)
}

// Options are the dependencies a source is constructed with.
type Options struct {
	// Fs is the filesystem project files are read from
	Fs afero.Fs

	// Config is the loaded configuration
	Config *config.Config

	// Logger receives diagnostics
	Logger *zap.Logger
}

// Factory constructs a source from options.
type Factory func(opts Options) (Source, error)

// SourceInfo provides metadata about a source.
type SourceInfo struct {
	// Name is the source identifier
	Name string

	// Description describes where the routes come from
	Description string
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) fs() afero.Fs {
	if o.Fs == nil {
		return afero.NewOsFs()
	}
	return o.Fs
}
