// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/pestgen/pestgen/internal/analyzer"
	"github.com/pestgen/pestgen/internal/config"
	"github.com/pestgen/pestgen/internal/generator"
	"github.com/pestgen/pestgen/internal/logger"
	"github.com/pestgen/pestgen/internal/phpindex"
	"github.com/pestgen/pestgen/internal/routes"
	"github.com/pestgen/pestgen/internal/writer"
	"github.com/pestgen/pestgen/pkg/types"
)

// newFs returns the filesystem commands operate on. It is replaced in tests.
var newFs = func() afero.Fs {
	return afero.NewOsFs()
}

// sources is the route source registry. It is replaced in tests.
var sources = routes.DefaultRegistry()

// loadConfig loads the project's .env and configuration, applying the
// --project flag. The result is validated.
func loadConfig() (*config.Config, error) {
	root := projectRoot
	if root == "" {
		root = "."
	}

	if err := godotenv.Load(filepath.Join(root, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var (
		cfg *config.Config
		err error
	)
	if cfgFile == "" && projectRoot != "" {
		cfg, err = config.LoadFromPath(projectRoot)
	} else {
		cfg, err = config.Load(cfgFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if projectRoot != "" {
		cfg.ProjectRoot = projectRoot
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// session holds what every pipeline command needs: the configuration, a
// filesystem, a logger and the class index.
type session struct {
	cfg    *config.Config
	fs     afero.Fs
	logger *zap.Logger
	index  *phpindex.Index
	warn   io.Writer
}

// openSession builds the class index for cfg on fsys. Logs go to w.
func openSession(cfg *config.Config, fsys afero.Fs, w io.Writer) (*session, error) {
	log := logger.New(logger.Options{Verbose: verbose, Quiet: quiet, Output: w})

	ix, err := phpindex.Build(fsys, cfg, log)
	if err != nil {
		logger.Close(log)
		return nil, fmt.Errorf("failed to index project sources: %w", err)
	}

	return &session{cfg: cfg, fs: fsys, logger: log, index: ix, warn: w}, nil
}

// Close releases the class index and flushes the logger.
func (s *session) Close() {
	s.index.Close()
	logger.Close(s.logger)
}

// endpoints reads the route table from the configured source.
func (s *session) endpoints(ctx context.Context) ([]types.Endpoint, error) {
	src, err := sources.Open(s.cfg.Routes.Source, routes.Options{
		Fs:     s.fs,
		Config: s.cfg,
		Logger: s.logger,
	})
	if err != nil {
		return nil, err
	}

	eps, err := src.Endpoints(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read routes from %s: %w", src.Name(), err)
	}

	s.logger.Debug("route table loaded", zap.String("source", src.Name()), zap.Int("endpoints", len(eps)))
	return eps, nil
}

// generator returns the route test generator.
func (s *session) generator() *generator.Generator {
	introspector := analyzer.NewIntrospector(s.index, s.index, s.fs, s.logger)
	return generator.New(s.cfg, s.index, introspector, s.routeWriter(), s.logger)
}

func (s *session) routeWriter() *writer.Writer {
	w := writer.ForRoutes(s.fs, s.cfg)
	w.SetObserver(s.warnSkipped)
	return w
}

func (s *session) warnSkipped(path string) {
	printWarn(s.warn, "Skipping existing file %s", path)
}

// generateModels runs the model test pass.
func (s *session) generateModels() (types.Result, error) {
	if !s.cfg.ModelTests.Enabled {
		return types.Result{}, nil
	}

	names, err := phpindex.ModelCandidates(s.fs, s.cfg.Resolve(s.cfg.ModelTests.ModelsPath), s.cfg.ModelTests.Namespace)
	if err != nil {
		return types.Result{}, err
	}

	w := writer.ForModels(s.fs, s.cfg)
	w.SetObserver(s.warnSkipped)

	models := generator.NewModelGenerator(s.cfg, s.index, w, s.logger)
	return models.Generate(names)
}
