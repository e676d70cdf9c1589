// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pestgen/pestgen/internal/config"
	"github.com/pestgen/pestgen/internal/routes"
)

const configFileName = "pestgen.yaml"

var (
	initForce        bool
	initSource       string
	initOrganization string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new pestgen configuration file",
	Long: `Initialize a new pestgen configuration file in the project root.

This command creates a pestgen.yaml file with sensible defaults
that you can customize for your project.

Features:
  - Detects the Laravel application from composer.json or artisan
  - Falls back to the static route source when artisan is missing
  - Disables model tests when the models directory does not exist

Example:
  pestgen init                          # Detect and create config
  pestgen init --source manifest        # Read routes from a saved document
  pestgen init --organization flat      # One test file per action
  pestgen init --force                  # Overwrite existing config`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	initCmd.Flags().StringVar(&initSource, "source", "", "route source: artisan, manifest, static. If not specified, detected from project files")
	initCmd.Flags().StringVar(&initOrganization, "organization", "", "file organization: grouped, flat")
}

func runInit(cmd *cobra.Command, args []string) error {
	root := projectRoot
	if root == "" {
		root = "."
	}
	fsys := newFs()
	configFile := filepath.Join(root, configFileName)

	// Check if config file already exists
	if exists, _ := afero.Exists(fsys, configFile); exists && !initForce {
		return fmt.Errorf("config file %s already exists, use --force to overwrite", configFile)
	}

	cfg := detectConfig(fsys, root)
	if initSource != "" {
		cfg.Routes.Source = initSource
	}
	if initOrganization != "" {
		cfg.Organization = initOrganization
	}

	if cfg.Routes.Source == config.SourceManifest && cfg.Routes.Manifest == "" {
		cfg.Routes.Manifest = "routes.json"
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if routes.Detect(fsys, root) {
		if version := routes.FrameworkVersion(fsys, root); version != "" {
			printInfo(cmd.OutOrStdout(), "Detected Laravel %s", version)
		} else {
			printInfo(cmd.OutOrStdout(), "Detected Laravel application")
		}
	} else {
		printWarn(cmd.OutOrStdout(), "No Laravel application detected in %s", root)
	}

	output, err := buildConfigYAML(cfg)
	if err != nil {
		return err
	}

	if err := afero.WriteFile(fsys, configFile, []byte(output), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	printSuccess(cmd.OutOrStdout(), "Created %s", configFile)
	printVerbose(cmd.OutOrStdout(), "Route source: %s", cfg.Routes.Source)
	printVerbose(cmd.OutOrStdout(), "Output: %s", cfg.OutputPath)

	return nil
}

// detectConfig returns the default configuration adjusted to the project:
// the static source when artisan is absent and no model tests without a
// models directory.
func detectConfig(fsys afero.Fs, root string) *config.Config {
	cfg := config.Default()

	if exists, _ := afero.Exists(fsys, filepath.Join(root, "artisan")); !exists {
		cfg.Routes.Source = config.SourceStatic
	}

	if exists, _ := afero.DirExists(fsys, filepath.Join(root, cfg.ModelTests.ModelsPath)); !exists {
		cfg.ModelTests.Enabled = false
	}

	var paths []string
	for _, p := range cfg.Watch.Paths {
		if exists, _ := afero.DirExists(fsys, filepath.Join(root, p)); exists {
			paths = append(paths, p)
		}
	}
	if len(paths) > 0 {
		cfg.Watch.Paths = paths
	}

	return cfg
}

// buildConfigYAML builds a YAML config with a header comment.
func buildConfigYAML(cfg *config.Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}

	header := `# pestgen configuration file
# Generated by ` + GetVersionInfo() + `

`
	return header + string(data), nil
}
