// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package routes

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/pestgen/pestgen/internal/config"
	"github.com/pestgen/pestgen/internal/parser"
	"github.com/pestgen/pestgen/pkg/types"
)

// Static extracts routes by parsing route files, for projects where PHP
// cannot be run. Route registrations hidden behind conditionals or loops
// are evaluated as if every branch ran once.
type Static struct {
	fs     afero.Fs
	cfg    *config.Config
	parser *parser.PHPParser
	logger *zap.Logger
}

// NewStatic creates a static source over the configured route files.
func NewStatic(opts Options) (Source, error) {
	return &Static{
		fs:     opts.fs(),
		cfg:    opts.Config,
		parser: parser.NewPHPParser(),
		logger: opts.logger(),
	}, nil
}

// Name returns the source identifier.
func (s *Static) Name() string {
	return "static"
}

// Endpoints parses each route file in order. Missing files are skipped.
func (s *Static) Endpoints(_ context.Context) ([]types.Endpoint, error) {
	var endpoints []types.Endpoint

	for _, file := range s.cfg.Routes.Files {
		path := s.cfg.Resolve(file)

		content, err := afero.ReadFile(s.fs, path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				s.logger.Debug("route file not found", zap.String("file", file))
				continue
			}
			return nil, fmt.Errorf("failed to read route file %s: %w", file, err)
		}

		pf, err := s.parser.Parse(path, content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse route file %s: %w", file, err)
		}

		for _, r := range s.parser.ExtractRoutes(pf, baseScope(file)) {
			endpoints = append(endpoints, convertRoute(r, file))
		}
		pf.Close()
	}

	s.logger.Debug("static routes extracted", zap.Int("count", len(endpoints)))
	return endpoints, nil
}

// baseScope is the group a route file is loaded in by the default
// application bootstrap: routes/api.php under the api prefix and
// middleware group, everything else under web.
func baseScope(file string) parser.RouteScope {
	if filepath.Base(file) == "api.php" {
		return parser.RouteScope{Prefix: "api", Middleware: []string{"api"}}
	}
	return parser.RouteScope{Middleware: []string{"web"}}
}

// convertRoute converts a parsed route to an endpoint descriptor.
func convertRoute(r parser.PHPRoute, file string) types.Endpoint {
	uri := types.NormalizeURI(r.URI)
	return types.Endpoint{
		Name:       r.Name,
		URI:        uri,
		Methods:    r.Methods,
		Handler:    types.ParseHandlerRef(r.Action),
		Middleware: r.Middleware,
		Parameters: types.ParameterNames(uri),
		SourceFile: filepath.ToSlash(file),
		SourceLine: r.Line,
	}
}
