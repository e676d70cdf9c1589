// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pestgen/pestgen/internal/config"
	"github.com/pestgen/pestgen/pkg/types"
)

var (
	generateForce        bool
	generateDryRun       bool
	generateSource       string
	generateManifest     string
	generateOrganization string
	generateNoModels     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate Pest tests for the project's routes and models",
	Long: `Generate Pest test skeletons for every eligible route and model.

The generate command reads the route table, groups endpoints by controller
and writes one test file per controller below the output path. Model tests
are written to a separate directory. Existing files are skipped.

Route sources:
  artisan   runs php artisan route:list --json (default)
  manifest  reads a saved route:list --json document
  static    parses the route files without running PHP

Example:
  pestgen generate                             # Generate into tests/Feature/Generated
  pestgen generate --dry-run                   # Preview without writing
  pestgen generate --source static             # Do not run PHP
  pestgen generate --manifest routes.json      # Use a saved route list
  pestgen generate --organization flat         # One file per controller action
  pestgen generate --force                     # Overwrite existing files`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&generateForce, "force", false, "overwrite existing test files")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "preview output without writing files")
	generateCmd.Flags().StringVarP(&generateSource, "source", "s", "", "route source: artisan, manifest, static")
	generateCmd.Flags().StringVarP(&generateManifest, "manifest", "m", "", "route:list --json document (implies --source manifest)")
	generateCmd.Flags().StringVar(&generateOrganization, "organization", "", "file organization: grouped, flat")
	generateCmd.Flags().BoolVar(&generateNoModels, "no-models", false, "skip model test generation")
}

// applyGenerateFlags applies command-line overrides to cfg.
func applyGenerateFlags(cfg *config.Config) error {
	if generateForce {
		cfg.Features.SkipExisting = false
	}
	if generateSource != "" {
		cfg.Routes.Source = generateSource
	}
	if generateManifest != "" {
		cfg.Routes.Source = config.SourceManifest
		cfg.Routes.Manifest = generateManifest
	}
	if generateOrganization != "" {
		cfg.Organization = generateOrganization
	}
	if generateNoModels {
		cfg.ModelTests.Enabled = false
	}
	if !sources.Has(cfg.Routes.Source) {
		return fmt.Errorf("unknown route source %q", cfg.Routes.Source)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyGenerateFlags(cfg); err != nil {
		return err
	}

	printVerbose(cmd.OutOrStdout(), "Configuration:")
	path := cfgFile
	if path == "" {
		path = config.ConfigFilePath()
	}
	if path != "" {
		printVerbose(cmd.OutOrStdout(), "  Config file: %s", path)
	}
	printVerbose(cmd.OutOrStdout(), "  Project: %s", cfg.ProjectRoot)
	printVerbose(cmd.OutOrStdout(), "  Route source: %s", cfg.Routes.Source)
	printVerbose(cmd.OutOrStdout(), "  Organization: %s", cfg.Organization)
	printVerbose(cmd.OutOrStdout(), "  Output: %s", cfg.OutputPath)

	fsys := newFs()
	if generateDryRun {
		fsys = afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(fsys), afero.NewMemMapFs())
		printInfo(cmd.OutOrStdout(), "Dry run mode - no files will be written")
	}

	res, err := generate(cmd.Context(), cfg, fsys, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	report(cmd.OutOrStdout(), cmd.ErrOrStderr(), res, generateDryRun)

	if len(res.Failures) > 0 {
		return fmt.Errorf("%d test files could not be written", len(res.Failures))
	}
	return nil
}

// generate runs the route pass and then the model pass.
func generate(ctx context.Context, cfg *config.Config, fsys afero.Fs, out, errOut io.Writer) (types.Result, error) {
	s, err := openSession(cfg, fsys, errOut)
	if err != nil {
		return types.Result{}, err
	}
	defer s.Close()

	endpoints, err := s.endpoints(ctx)
	if err != nil {
		return types.Result{}, err
	}

	gen := s.generator()
	units := gen.Plan(endpoints)
	printVerbose(out, "Found %d routes, %d test files to consider", len(endpoints), len(units))

	if !quiet && !verbose && len(units) > 0 {
		bar := progressbar.NewOptions(len(units),
			progressbar.OptionSetWriter(errOut),
			progressbar.OptionSetDescription("[Generating]"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionClearOnFinish(),
		)
		gen.OnProgress(func(int, int, types.Unit) {
			_ = bar.Add(1)
		})
		defer func() { _ = bar.Finish() }()
	}

	res, err := gen.Run(endpoints)
	if err != nil {
		return res, err
	}

	models, err := s.generateModels()
	if err != nil {
		return res, fmt.Errorf("failed to generate model tests: %w", err)
	}
	res.Merge(models)

	return res, nil
}

// report prints the run summary.
func report(out, errOut io.Writer, res types.Result, dryRun bool) {
	verb := "Created"
	if dryRun {
		verb = "Would create"
	}

	for _, path := range res.Written {
		printVerbose(out, "  %s %s", verb, pathStyle.Render(path))
	}
	for _, failure := range res.Failures {
		printError(errOut, "%v", failure)
	}

	printSuccess(out, "%s %d test files with %d tests for %d endpoints", verb, res.FilesWritten, res.TestsGenerated, res.EndpointsProcessed)
	if res.FilesSkipped > 0 {
		printWarn(out, "Skipped %d existing or unresolvable files", res.FilesSkipped)
	}
}
