package bootstrap

import (
	"fmt"
	"os"
	"strings"

	recipes "github.com/goliatone/go-recipes"
	"github.com/goliatone/go-recipes/internal/logging"
	"github.com/goliatone/go-recipes/pkg/interfaces"
)

// Options captures configuration for the recipe CLIs. Empty values keep the
// config file (or default) setting.
type Options struct {
	ConfigPath     string
	ContentDir     string
	Pattern        string
	Recursive      *bool
	Extensions     []string
	LogLevel       string
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the recipes module together with the compiler and CLI logger.
type Module struct {
	Module   *recipes.Module
	Compiler interfaces.RecipeCompiler
	Provider interfaces.LoggerProvider
	Logger   interfaces.Logger
}

// BuildModule constructs a recipes module configured for CLI use. Console
// logs go to stderr so stdout carries only command output.
func BuildModule(opts Options) (*Module, error) {
	cfg, err := ResolveConfig(opts)
	if err != nil {
		return nil, err
	}

	moduleOpts := []recipes.Option{recipes.WithLogWriter(os.Stderr)}
	if opts.LoggerProvider != nil {
		moduleOpts = append(moduleOpts, recipes.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := recipes.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise recipes module: %w", err)
	}

	return &Module{
		Module:   module,
		Compiler: module.Compiler(),
		Provider: module.LoggerProvider(),
		Logger:   logging.ModuleLogger(module.LoggerProvider(), "recipes.cli"),
	}, nil
}

// ResolveConfig loads the optional config file and applies flag overrides.
func ResolveConfig(opts Options) (recipes.Config, error) {
	cfg := recipes.DefaultConfig()
	if path := strings.TrimSpace(opts.ConfigPath); path != "" {
		loaded, err := recipes.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if dir := strings.TrimSpace(opts.ContentDir); dir != "" {
		cfg.Recipes.ContentDir = dir
	}
	if pattern := strings.TrimSpace(opts.Pattern); pattern != "" {
		cfg.Recipes.Pattern = pattern
	}
	if opts.Recursive != nil {
		cfg.Recipes.Recursive = *opts.Recursive
	}
	if len(opts.Extensions) > 0 {
		cfg.Recipes.Parser.Extensions = cloneStrings(opts.Extensions)
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}

	return cfg, cfg.Validate()
}

// SplitList parses a comma separated list into a trimmed slice.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
