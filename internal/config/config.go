// SPDX-FileCopyrightText: 2026 pestgen
// SPDX-License-Identifier: FSL-1.1-MIT

// Package config provides configuration loading and validation for pestgen.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Organization modes.
const (
	OrganizationGrouped = "grouped"
	OrganizationFlat    = "flat"
)

// Route source names.
const (
	SourceArtisan  = "artisan"
	SourceManifest = "manifest"
	SourceStatic   = "static"
)

// Config is the configuration profile for one generation run.
// It is loaded once and treated as immutable afterwards.
type Config struct {
	// ProjectRoot is the Laravel project root all relative paths resolve against
	ProjectRoot string `mapstructure:"projectRoot" yaml:"projectRoot" json:"projectRoot"`

	// OutputPath is where route test files are written
	OutputPath string `mapstructure:"outputPath" yaml:"outputPath" json:"outputPath"`

	// NamingConvention selects how test files are named (controller)
	NamingConvention string `mapstructure:"namingConvention" yaml:"namingConvention" json:"namingConvention"`

	// Organization is the grouping mode (grouped, flat)
	Organization string `mapstructure:"organization" yaml:"organization" json:"organization"`

	// ExcludeRoutes are glob patterns matched against route names
	ExcludeRoutes []string `mapstructure:"excludeRoutes" yaml:"excludeRoutes" json:"excludeRoutes"`

	// ExcludePrefixes are URI prefixes that are never tested
	ExcludePrefixes []string `mapstructure:"excludePrefixes" yaml:"excludePrefixes" json:"excludePrefixes"`

	// HTTPMethods are the HTTP methods eligible for generation
	HTTPMethods []string `mapstructure:"httpMethods" yaml:"httpMethods" json:"httpMethods"`

	// Routes configures where the route table comes from
	Routes RoutesConfig `mapstructure:"routes" yaml:"routes" json:"routes"`

	// Source configures which PHP files feed the class index
	Source SourceConfig `mapstructure:"source" yaml:"source" json:"source"`

	// Policy holds the classification heuristics
	Policy PolicyConfig `mapstructure:"policy" yaml:"policy" json:"policy"`

	// Features toggles optional test kinds and assertions
	Features FeatureConfig `mapstructure:"features" yaml:"features" json:"features"`

	// Templates controls generated code details
	Templates TemplateConfig `mapstructure:"templates" yaml:"templates" json:"templates"`

	// ModelTests configures the model test pass
	ModelTests ModelTestConfig `mapstructure:"modelTests" yaml:"modelTests" json:"modelTests"`

	// Watch contains file watching configuration
	Watch WatchConfig `mapstructure:"watch" yaml:"watch" json:"watch"`
}

// RoutesConfig configures the route table source.
type RoutesConfig struct {
	// Source is the route source (artisan, manifest, static)
	Source string `mapstructure:"source" yaml:"source" json:"source"`

	// Manifest is the path of a saved `route:list --json` document
	Manifest string `mapstructure:"manifest" yaml:"manifest" json:"manifest"`

	// PHPBinary is the PHP executable used to run artisan
	PHPBinary string `mapstructure:"phpBinary" yaml:"phpBinary" json:"phpBinary"`

	// Files are the route files parsed by the static source
	Files []string `mapstructure:"files" yaml:"files" json:"files"`
}

// SourceConfig contains PHP source scanning configuration.
type SourceConfig struct {
	// Paths is a list of paths to index
	Paths []string `mapstructure:"paths" yaml:"paths" json:"paths"`

	// Include is a list of glob patterns to include
	Include []string `mapstructure:"include" yaml:"include" json:"include"`

	// Exclude is a list of glob patterns to exclude
	Exclude []string `mapstructure:"exclude" yaml:"exclude" json:"exclude"`
}

// PolicyConfig holds the classification heuristics.
type PolicyConfig struct {
	// AuthMiddleware are middleware markers meaning authentication is required
	AuthMiddleware []string `mapstructure:"authMiddleware" yaml:"authMiddleware" json:"authMiddleware"`

	// SensitiveKeywords mark controllers whose success tests are generated as todo
	SensitiveKeywords []string `mapstructure:"sensitiveKeywords" yaml:"sensitiveKeywords" json:"sensitiveKeywords"`

	// GuestRedirect is the PHP expression guests are expected to be redirected to
	GuestRedirect string `mapstructure:"guestRedirect" yaml:"guestRedirect" json:"guestRedirect"`

	// FormRequestClass is the validation request base class
	FormRequestClass string `mapstructure:"formRequestClass" yaml:"formRequestClass" json:"formRequestClass"`

	// ControllerNamespace is the namespace whose sub-namespaces become sub-directories
	ControllerNamespace string `mapstructure:"controllerNamespace" yaml:"controllerNamespace" json:"controllerNamespace"`

	// PrincipalModel is the authenticated user model
	PrincipalModel string `mapstructure:"principalModel" yaml:"principalModel" json:"principalModel"`
}

// FeatureConfig toggles optional generation features.
type FeatureConfig struct {
	ValidationTests    bool `mapstructure:"validationTests" yaml:"validationTests" json:"validationTests"`
	AuthorizationTests bool `mapstructure:"authorizationTests" yaml:"authorizationTests" json:"authorizationTests"`
	InertiaAssertions  bool `mapstructure:"inertiaAssertions" yaml:"inertiaAssertions" json:"inertiaAssertions"`
	BladeAssertions    bool `mapstructure:"bladeAssertions" yaml:"bladeAssertions" json:"bladeAssertions"`
	RefreshDatabase    bool `mapstructure:"refreshDatabase" yaml:"refreshDatabase" json:"refreshDatabase"`
	UseFactories       bool `mapstructure:"useFactories" yaml:"useFactories" json:"useFactories"`
	SkipExisting       bool `mapstructure:"skipExisting" yaml:"skipExisting" json:"skipExisting"`
}

// TemplateConfig controls generated code details.
type TemplateConfig struct {
	// TestMethodPrefix is the Pest function declaring a test (test, it)
	TestMethodPrefix string `mapstructure:"testMethodPrefix" yaml:"testMethodPrefix" json:"testMethodPrefix"`
}

// ModelTestConfig configures model test generation.
type ModelTestConfig struct {
	Enabled       bool   `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	TestFactories bool   `mapstructure:"testFactories" yaml:"testFactories" json:"testFactories"`
	TestCasts     bool   `mapstructure:"testCasts" yaml:"testCasts" json:"testCasts"`
	OutputPath    string `mapstructure:"outputPath" yaml:"outputPath" json:"outputPath"`
	ModelsPath    string `mapstructure:"modelsPath" yaml:"modelsPath" json:"modelsPath"`
	Namespace     string `mapstructure:"namespace" yaml:"namespace" json:"namespace"`
}

// WatchConfig contains file watching configuration.
type WatchConfig struct {
	// Paths are the directories watched for changes
	Paths []string `mapstructure:"paths" yaml:"paths" json:"paths"`

	// Debounce is the debounce duration in milliseconds
	Debounce int `mapstructure:"debounce" yaml:"debounce" json:"debounce"`
}

// configFileNames is the list of config file names to search for (in order).
var configFileNames = []string{
	"pestgen.yaml",
	"pestgen.json",
	".pestgen.yaml",
	".pestgen.json",
}

var (
	supportedOrganizations = []string{OrganizationGrouped, OrganizationFlat}
	supportedSources       = []string{SourceArtisan, SourceManifest, SourceStatic}
	supportedConventions   = []string{"controller"}
	supportedPrefixes      = []string{"test", "it"}
)

// ErrConfigNotFound is returned when no config file is found.
var ErrConfigNotFound = errors.New("config file not found")

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("config validation errors:\n")
	for _, err := range e {
		sb.WriteString("  - ")
		sb.WriteString(err.Field)
		sb.WriteString(": ")
		sb.WriteString(err.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		ProjectRoot:      ".",
		OutputPath:       "tests/Feature/Generated",
		NamingConvention: "controller",
		Organization:     OrganizationGrouped,
		ExcludeRoutes:    []string{"sanctum.*", "ignition.*", "_debugbar.*"},
		ExcludePrefixes:  []string{"telescope", "horizon", "nova"},
		HTTPMethods:      []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		Routes: RoutesConfig{
			Source:    SourceArtisan,
			PHPBinary: "php",
			Files:     []string{"routes/web.php", "routes/api.php"},
		},
		Source: SourceConfig{
			Paths:   []string{"app"},
			Include: []string{"**/*.php"},
			Exclude: []string{"vendor/**", "node_modules/**", "storage/**", "bootstrap/cache/**"},
		},
		Policy: PolicyConfig{
			AuthMiddleware: []string{"auth", "auth:sanctum"},
			SensitiveKeywords: []string{
				"Auth", "TwoFactor", "Verify", "Verification",
				"Confirmable", "Confirmed", "Recovery", "Redirect",
			},
			GuestRedirect:       "route('login')",
			FormRequestClass:    `Illuminate\Foundation\Http\FormRequest`,
			ControllerNamespace: `App\Http\Controllers\`,
			PrincipalModel:      `App\Models\User`,
		},
		Features: FeatureConfig{
			ValidationTests:    true,
			AuthorizationTests: true,
			InertiaAssertions:  true,
			BladeAssertions:    true,
			RefreshDatabase:    true,
			UseFactories:       true,
			SkipExisting:       true,
		},
		Templates: TemplateConfig{
			TestMethodPrefix: "test",
		},
		ModelTests: ModelTestConfig{
			Enabled:       true,
			TestFactories: true,
			TestCasts:     true,
			OutputPath:    "tests/Unit/Models",
			ModelsPath:    "app/Models",
			Namespace:     `App\Models\`,
		},
		Watch: WatchConfig{
			Paths:    []string{"routes", "app/Http"},
			Debounce: 500,
		},
	}
}

// Load loads the configuration from a file.
// It searches for config files in the following order:
// 1. pestgen.yaml
// 2. pestgen.json
// 3. .pestgen.yaml
// 4. .pestgen.json
//
// If configPath is provided, it will use that path instead. Environment
// variables prefixed with PESTGEN_ override file values.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	v.SetEnvPrefix("PESTGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		found := false
		for _, name := range configFileNames {
			if _, err := os.Stat(name); err == nil {
				v.SetConfigFile(name)
				found = true
				break
			}
		}
		if !found {
			return unmarshal(v)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return unmarshal(v)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// LoadFromPath loads the configuration from a specific directory.
func LoadFromPath(dir string) (*Config, error) {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			cfg, err := Load(path)
			if err != nil {
				return nil, err
			}
			if cfg.ProjectRoot == "" || cfg.ProjectRoot == "." {
				cfg.ProjectRoot = dir
			}
			return cfg, nil
		}
	}
	cfg := Default()
	cfg.ProjectRoot = dir
	return cfg, nil
}

// setDefaults sets the default values for viper.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("projectRoot", d.ProjectRoot)
	v.SetDefault("outputPath", d.OutputPath)
	v.SetDefault("namingConvention", d.NamingConvention)
	v.SetDefault("organization", d.Organization)
	v.SetDefault("excludeRoutes", d.ExcludeRoutes)
	v.SetDefault("excludePrefixes", d.ExcludePrefixes)
	v.SetDefault("httpMethods", d.HTTPMethods)
	v.SetDefault("routes.source", d.Routes.Source)
	v.SetDefault("routes.manifest", d.Routes.Manifest)
	v.SetDefault("routes.phpBinary", d.Routes.PHPBinary)
	v.SetDefault("routes.files", d.Routes.Files)
	v.SetDefault("source.paths", d.Source.Paths)
	v.SetDefault("source.include", d.Source.Include)
	v.SetDefault("source.exclude", d.Source.Exclude)
	v.SetDefault("policy.authMiddleware", d.Policy.AuthMiddleware)
	v.SetDefault("policy.sensitiveKeywords", d.Policy.SensitiveKeywords)
	v.SetDefault("policy.guestRedirect", d.Policy.GuestRedirect)
	v.SetDefault("policy.formRequestClass", d.Policy.FormRequestClass)
	v.SetDefault("policy.controllerNamespace", d.Policy.ControllerNamespace)
	v.SetDefault("policy.principalModel", d.Policy.PrincipalModel)
	v.SetDefault("features.validationTests", d.Features.ValidationTests)
	v.SetDefault("features.authorizationTests", d.Features.AuthorizationTests)
	v.SetDefault("features.inertiaAssertions", d.Features.InertiaAssertions)
	v.SetDefault("features.bladeAssertions", d.Features.BladeAssertions)
	v.SetDefault("features.refreshDatabase", d.Features.RefreshDatabase)
	v.SetDefault("features.useFactories", d.Features.UseFactories)
	v.SetDefault("features.skipExisting", d.Features.SkipExisting)
	v.SetDefault("templates.testMethodPrefix", d.Templates.TestMethodPrefix)
	v.SetDefault("modelTests.enabled", d.ModelTests.Enabled)
	v.SetDefault("modelTests.testFactories", d.ModelTests.TestFactories)
	v.SetDefault("modelTests.testCasts", d.ModelTests.TestCasts)
	v.SetDefault("modelTests.outputPath", d.ModelTests.OutputPath)
	v.SetDefault("modelTests.modelsPath", d.ModelTests.ModelsPath)
	v.SetDefault("modelTests.namespace", d.ModelTests.Namespace)
	v.SetDefault("watch.paths", d.Watch.Paths)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Organization != "" && !contains(supportedOrganizations, c.Organization) {
		errs = append(errs, ValidationError{
			Field:   "organization",
			Message: fmt.Sprintf("unsupported organization %q, must be one of: %s", c.Organization, strings.Join(supportedOrganizations, ", ")),
		})
	}

	if c.Routes.Source != "" && !contains(supportedSources, c.Routes.Source) {
		errs = append(errs, ValidationError{
			Field:   "routes.source",
			Message: fmt.Sprintf("unsupported route source %q, must be one of: %s", c.Routes.Source, strings.Join(supportedSources, ", ")),
		})
	}

	if c.Routes.Source == SourceManifest && c.Routes.Manifest == "" {
		errs = append(errs, ValidationError{
			Field:   "routes.manifest",
			Message: "manifest path is required when routes.source is manifest",
		})
	}

	if c.NamingConvention != "" && !contains(supportedConventions, c.NamingConvention) {
		errs = append(errs, ValidationError{
			Field:   "namingConvention",
			Message: fmt.Sprintf("unsupported naming convention %q, must be one of: %s", c.NamingConvention, strings.Join(supportedConventions, ", ")),
		})
	}

	if c.Templates.TestMethodPrefix != "" && !contains(supportedPrefixes, c.Templates.TestMethodPrefix) {
		errs = append(errs, ValidationError{
			Field:   "templates.testMethodPrefix",
			Message: fmt.Sprintf("unsupported test method prefix %q, must be one of: %s", c.Templates.TestMethodPrefix, strings.Join(supportedPrefixes, ", ")),
		})
	}

	if c.Watch.Debounce < 0 {
		errs = append(errs, ValidationError{
			Field:   "watch.debounce",
			Message: "debounce must be non-negative",
		})
	}

	if c.OutputPath == "" {
		errs = append(errs, ValidationError{
			Field:   "outputPath",
			Message: "output path is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Resolve returns path relative to the project root unless it is absolute.
func (c *Config) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	root := c.ProjectRoot
	if root == "" {
		root = "."
	}
	return filepath.Join(root, path)
}

// ConfigFilePath returns the path of the loaded config file, if any.
func ConfigFilePath() string {
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// contains checks if a slice contains a string.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
