// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package generator

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pestgen/pestgen/internal/analyzer"
	"github.com/pestgen/pestgen/internal/config"
	"github.com/pestgen/pestgen/internal/writer"
	"github.com/pestgen/pestgen/pkg/types"
)

// Resolver is everything the route pipeline asks of the class index.
type Resolver interface {
	analyzer.TypeResolver
	analyzer.SourceLocator
	ClassChecker
}

// ProgressFunc is called after each unit with the number of units done.
type ProgressFunc func(done, total int, unit types.Unit)

// Generator runs the route test pipeline: filter, group, introspect,
// classify, synthesize and write.
type Generator struct {
	cfg          *config.Config
	introspector *analyzer.Introspector
	classifier   *analyzer.Classifier
	synth        *Synthesizer
	builder      Builder
	writer       *writer.Writer
	logger       *zap.Logger
	progress     ProgressFunc
}

// New creates a generator. Handler sources are read through introspector.
func New(cfg *config.Config, resolver Resolver, introspector *analyzer.Introspector, w *writer.Writer, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		cfg:          cfg,
		introspector: introspector,
		classifier:   analyzer.NewClassifier(cfg, resolver),
		synth:        NewSynthesizer(cfg, resolver),
		builder:      Builder{Prefix: cfg.Templates.TestMethodPrefix},
		writer:       w,
		logger:       logger,
	}
}

// OnProgress installs a progress callback.
func (g *Generator) OnProgress(fn ProgressFunc) {
	g.progress = fn
}

// Plan returns the generation units for a route table.
func (g *Generator) Plan(endpoints []types.Endpoint) []types.Unit {
	return analyzer.Group(analyzer.Filter(endpoints, g.cfg), g.cfg.Organization)
}

// Run generates a test file per unit in enumeration order. A unit that
// fails to write is recorded in the result and the run continues; only a
// failure to create the output root is returned.
func (g *Generator) Run(endpoints []types.Endpoint) (types.Result, error) {
	var res types.Result

	units := g.Plan(endpoints)
	g.logger.Info("planned generation",
		zap.Int("endpoints", len(endpoints)),
		zap.Int("units", len(units)),
	)

	if err := g.writer.Prepare(); err != nil {
		return res, err
	}

	claimed := make(map[string]string, len(units))
	for i, unit := range units {
		g.runUnit(unit, claimed, &res)
		if g.progress != nil {
			g.progress(i+1, len(units), unit)
		}
	}

	return res, nil
}

// runUnit writes one unit. claimed maps the paths used so far in the run
// to their unit keys; a unit whose path is taken fails instead of being
// reported as an existing file or overwriting the earlier unit.
func (g *Generator) runUnit(unit types.Unit, claimed map[string]string, res *types.Result) {
	if !unit.Writable() {
		g.logger.Debug("skipping unit without controller",
			zap.String("unit", unit.Key),
			zap.Int("endpoints", len(unit.Endpoints)),
		)
		return
	}

	content, tests := g.RenderUnit(unit)
	res.EndpointsProcessed += len(unit.Endpoints)

	path := g.writer.PathFor(unit.Key)
	if owner, ok := claimed[path]; ok {
		g.logger.Error("test file path already used", zap.String("unit", unit.Key), zap.String("owner", owner), zap.String("path", path))
		res.Failures = append(res.Failures, &types.UnitError{
			Key:  unit.Key,
			Path: path,
			Err:  fmt.Errorf("%w: %s", writer.ErrPathConflict, owner),
		})
		return
	}
	claimed[path] = unit.Key

	outcome, err := g.writer.Write(path, []byte(content))
	if err != nil {
		g.logger.Error("failed to write test file", zap.String("unit", unit.Key), zap.String("path", path), zap.Error(err))
		res.Failures = append(res.Failures, &types.UnitError{Key: unit.Key, Path: path, Err: err})
		return
	}

	switch outcome {
	case writer.Created:
		g.logger.Debug("created test file", zap.String("path", path), zap.Int("tests", tests))
		res.FilesWritten++
		res.TestsGenerated += tests
		res.Written = append(res.Written, path)
	case writer.Skipped:
		res.FilesSkipped++
		res.Skipped = append(res.Skipped, path)
	}
}

// RenderUnit renders the test file of a unit and returns it with its
// number of test cases.
func (g *Generator) RenderUnit(unit types.Unit) (string, int) {
	var tests []types.TestCase
	for _, ep := range unit.Endpoints {
		intro := g.introspector.Introspect(ep.Handler)
		cls := g.classifier.Classify(ep, intro)
		tests = append(tests, g.synth.Synthesize(ep, cls)...)
	}

	f := File{
		Uses:  []string{unit.Handler.Class, g.cfg.Policy.PrincipalModel},
		Tests: tests,
	}
	if g.cfg.Features.RefreshDatabase {
		f.Uses = append(f.Uses, `Illuminate\Foundation\Testing\RefreshDatabase`)
		f.Directives = append(f.Directives, "uses(RefreshDatabase::class)")
	}

	return g.builder.Render(f), len(tests)
}

// PathFor returns the output path of a unit.
func (g *Generator) PathFor(unit types.Unit) string {
	return g.writer.PathFor(unit.Key)
}
