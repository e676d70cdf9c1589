// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package phpindex

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/pestgen/pestgen/internal/config"
	"github.com/pestgen/pestgen/internal/scanner"
	"github.com/pestgen/pestgen/internal/util"
)

// Build scans the configured source paths, indexes every class found and
// installs the project's composer autoload map for everything else.
func Build(fsys afero.Fs, cfg *config.Config, logger *zap.Logger) (*Index, error) {
	ix := New(fsys, cfg.ProjectRoot, logger)

	autoload, err := LoadAutoload(fsys, cfg.ProjectRoot)
	if err != nil {
		return nil, err
	}
	ix.SetAutoload(autoload)

	s := scanner.New(fsys, scanner.Config{
		BasePath:        cfg.ProjectRoot,
		IncludePatterns: cfg.Source.Include,
		ExcludePatterns: cfg.Source.Exclude,
	})
	files, err := s.ScanPaths(cfg.Source.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to scan sources: %w", err)
	}

	ix.AddFiles(files)
	ix.logger.Debug("class index built",
		zap.Int("files", len(files)),
		zap.Int("classes", ix.Len()),
		zap.Int("psr4_prefixes", autoload.Len()),
	)

	return ix, nil
}

// ModelCandidates lists candidate model class names from every PHP file
// below modelsPath, in walk order. Each file name becomes a class in
// namespace regardless of its sub-directory. A missing directory yields no
// candidates.
func ModelCandidates(fsys afero.Fs, modelsPath, namespace string) ([]string, error) {
	if _, err := fsys.Stat(modelsPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat models path: %w", err)
	}

	namespace = util.EnsureTrailingSeparator(strings.TrimPrefix(namespace, `\`))

	var names []string
	err := afero.Walk(fsys, modelsPath, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".php" {
			return nil
		}
		names = append(names, namespace+strings.TrimSuffix(filepath.Base(path), ".php"))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	return names, nil
}
