// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package generator

import (
	"go.uber.org/zap"

	"github.com/pestgen/pestgen/internal/config"
	"github.com/pestgen/pestgen/internal/writer"
	"github.com/pestgen/pestgen/pkg/types"
)

// ClassResolver resolves model classes.
type ClassResolver interface {
	ResolveClass(fqcn string) (types.ClassInfo, error)
}

// ModelGenerator writes one unit test file per resolvable model.
type ModelGenerator struct {
	cfg      config.ModelTestConfig
	resolver ClassResolver
	writer   *writer.Writer
	builder  Builder
	logger   *zap.Logger
}

// NewModelGenerator creates a model test generator.
func NewModelGenerator(cfg *config.Config, resolver ClassResolver, w *writer.Writer, logger *zap.Logger) *ModelGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModelGenerator{
		cfg:      cfg.ModelTests,
		resolver: resolver,
		writer:   w,
		builder:  Builder{Prefix: cfg.Templates.TestMethodPrefix},
		logger:   logger,
	}
}

// Generate writes tests for each candidate model class. Unresolvable
// classes are skipped without a file, and no file is written for a model
// without any enabled test. Only failure to create the output
// directory is returned as an error.
func (g *ModelGenerator) Generate(names []string) (types.Result, error) {
	var res types.Result
	if !g.cfg.Enabled || len(names) == 0 {
		return res, nil
	}

	if err := g.writer.Prepare(); err != nil {
		return res, err
	}

	for _, name := range names {
		info, err := g.resolver.ResolveClass(name)
		if err != nil {
			g.logger.Debug("skipping unresolvable model", zap.String("class", name), zap.Error(err))
			res.FilesSkipped++
			res.Skipped = append(res.Skipped, name)
			continue
		}

		tests := g.Tests(info)
		if len(tests) == 0 {
			g.logger.Debug("no model tests enabled for class", zap.String("class", info.FQCN))
			continue
		}

		path := g.writer.FilePath(info.ShortName)
		outcome, err := g.writer.Write(path, []byte(g.Render(info)))
		if err != nil {
			g.logger.Error("failed to write model test", zap.String("path", path), zap.Error(err))
			res.Failures = append(res.Failures, &types.UnitError{Key: info.FQCN, Path: path, Err: err})
			continue
		}

		switch outcome {
		case writer.Created:
			res.FilesWritten++
			res.TestsGenerated += len(tests)
			res.Written = append(res.Written, path)
		case writer.Skipped:
			res.FilesSkipped++
			res.Skipped = append(res.Skipped, path)
		}
	}

	return res, nil
}

// Tests returns the test cases of a model: the factory test when the model
// has a factory and factory tests are on, then the instantiation test when
// cast tests are on.
func (g *ModelGenerator) Tests(info types.ClassInfo) []types.TestCase {
	name := info.ShortName
	var tests []types.TestCase

	if g.cfg.TestFactories && info.HasFactory {
		tests = append(tests, types.TestCase{
			Name: name + " has valid factory",
			Body: []string{
				"$model = " + name + "::factory()->create();",
				"expect($model)->toBeInstanceOf(" + name + "::class);",
			},
		})
	}

	if g.cfg.TestCasts {
		tests = append(tests, types.TestCase{
			Name: name + " has expected fillables/casts",
			Body: []string{
				"$model = new " + name + "();",
				"// Verify fillables or casts here if inspection needed",
				"expect($model)->toBeInstanceOf(" + name + "::class);",
			},
		})
	}

	return tests
}

// Render renders the test file of a model.
func (g *ModelGenerator) Render(info types.ClassInfo) string {
	return g.builder.Render(File{
		Uses: []string{
			info.FQCN,
			`Illuminate\Foundation\Testing\RefreshDatabase`,
			`Tests\TestCase`,
		},
		Directives: []string{
			"uses(TestCase::class)",
			"uses(RefreshDatabase::class)",
		},
		Tests:         g.Tests(info),
		TrailingBlank: true,
	})
}
