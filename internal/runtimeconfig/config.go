package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/goliatone/go-recipes/internal/logging"
)

var ErrContentDirRequired = errors.New("recipes config: content directory is required")
var ErrPatternInvalid = errors.New("recipes config: discovery pattern is invalid")

var ErrLoggingProviderRequired = errors.New("recipes config: logging provider is required when logging is enabled")
var ErrLoggingProviderUnknown = errors.New("recipes config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("recipes config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("recipes config: logging format is invalid")

// Config aggregates runtime options for the recipe compiler.
type Config struct {
	Recipes RecipesConfig `yaml:"recipes"`
	Logging LoggingConfig `yaml:"logging"`
}

// RecipesConfig captures filesystem and parser behaviour for recipe discovery.
type RecipesConfig struct {
	ContentDir string       `yaml:"content_dir"`
	Pattern    string       `yaml:"pattern"`
	Recursive  bool         `yaml:"recursive"`
	Parser     ParserConfig `yaml:"parser"`
}

// ParserConfig selects the goldmark extensions applied to recipe bodies.
type ParserConfig struct {
	Extensions []string `yaml:"extensions"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns the defaults used by the CLIs.
func DefaultConfig() Config {
	return Config{
		Recipes: RecipesConfig{
			ContentDir: "recipes",
			Pattern:    "*.md",
			Recursive:  true,
		},
		Logging: LoggingConfig{
			Enabled:  true,
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// LoadFile overlays the YAML document at path onto DefaultConfig. Keys
// missing from the file keep their defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("recipes config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("recipes config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Recipes.ContentDir) == "" {
		return ErrContentDirRequired
	}
	if pattern := strings.TrimSpace(cfg.Recipes.Pattern); pattern != "" {
		if _, err := filepath.Match(filepath.ToSlash(pattern), "recipe.md"); err != nil {
			return fmt.Errorf("%w: %s", ErrPatternInvalid, pattern)
		}
	}
	if cfg.Logging.Enabled {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" {
			if _, ok := logging.ParseLevel(level); !ok {
				return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
			}
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

// NormalizedProvider returns the lower-cased logging provider name.
func (cfg LoggingConfig) NormalizedProvider() string {
	return normalizeProvider(cfg.Provider)
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
