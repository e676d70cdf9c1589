// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "tests/Feature/Generated", cfg.OutputPath)
	assert.Equal(t, OrganizationGrouped, cfg.Organization)
	assert.Equal(t, []string{"GET", "POST", "PUT", "PATCH", "DELETE"}, cfg.HTTPMethods)
	assert.Equal(t, []string{"sanctum.*", "ignition.*", "_debugbar.*"}, cfg.ExcludeRoutes)
	assert.Equal(t, []string{"telescope", "horizon", "nova"}, cfg.ExcludePrefixes)
	assert.Equal(t, []string{"auth", "auth:sanctum"}, cfg.Policy.AuthMiddleware)
	assert.Contains(t, cfg.Policy.SensitiveKeywords, "TwoFactor")
	assert.Equal(t, "route('login')", cfg.Policy.GuestRedirect)
	assert.True(t, cfg.Features.SkipExisting)
	assert.True(t, cfg.ModelTests.Enabled)
	assert.Equal(t, "tests/Unit/Models", cfg.ModelTests.OutputPath)
	assert.Equal(t, "test", cfg.Templates.TestMethodPrefix)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(originalDir)

	require.NoError(t, os.Chdir(tmpDir))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default().OutputPath, cfg.OutputPath)
	assert.Equal(t, Default().Policy.SensitiveKeywords, cfg.Policy.SensitiveKeywords)
	assert.True(t, cfg.Features.ValidationTests)
}

func TestLoad_YAMLConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(originalDir)

	configContent := `
outputPath: tests/Feature/Routes
organization: flat
excludeRoutes:
  - "admin.*"
routes:
  source: manifest
  manifest: routes.json
features:
  validationTests: false
templates:
  testMethodPrefix: it
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "pestgen.yaml"), []byte(configContent), 0o644))
	require.NoError(t, os.Chdir(tmpDir))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "tests/Feature/Routes", cfg.OutputPath)
	assert.Equal(t, OrganizationFlat, cfg.Organization)
	assert.Equal(t, []string{"admin.*"}, cfg.ExcludeRoutes)
	assert.Equal(t, SourceManifest, cfg.Routes.Source)
	assert.Equal(t, "routes.json", cfg.Routes.Manifest)
	assert.False(t, cfg.Features.ValidationTests)
	assert.True(t, cfg.Features.AuthorizationTests, "unset toggles keep their defaults")
	assert.Equal(t, "it", cfg.Templates.TestMethodPrefix)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ExplicitJSONPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "custom.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"outputPath": "tests/Generated", "modelTests": {"enabled": false}}`), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "tests/Generated", cfg.OutputPath)
	assert.False(t, cfg.ModelTests.Enabled)
	assert.Equal(t, "tests/Unit/Models", cfg.ModelTests.OutputPath)
}

func TestLoad_InvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "pestgen.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("outputPath: [unclosed"), 0o644))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestLoadFromPath_SetsProjectRoot(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := LoadFromPath(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, tmpDir, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(tmpDir, "tests/Feature/Generated"), cfg.Resolve(cfg.OutputPath))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad organization", func(c *Config) { c.Organization = "nested" }, "organization"},
		{"bad source", func(c *Config) { c.Routes.Source = "openapi" }, "routes.source"},
		{"manifest without path", func(c *Config) { c.Routes.Source = SourceManifest }, "routes.manifest"},
		{"bad prefix", func(c *Config) { c.Templates.TestMethodPrefix = "describe" }, "templates.testMethodPrefix"},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -1 }, "watch.debounce"},
		{"empty output", func(c *Config) { c.OutputPath = "" }, "outputPath"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "a", Message: "first"},
		{Field: "b", Message: "second"},
	}
	assert.Contains(t, errs.Error(), "  - a: first")
	assert.Contains(t, errs.Error(), "  - b: second")
	assert.Equal(t, "no validation errors", ValidationErrors{}.Error())
}
