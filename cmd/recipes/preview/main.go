package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-recipes/cmd/recipes/internal/bootstrap"
	recipescmd "github.com/goliatone/go-recipes/internal/commands/recipes"
	"github.com/goliatone/go-recipes/pkg/interfaces"
	"github.com/goliatone/go-recipes/recipe"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runPreview(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("recipes preview: %v", err)
	}
}

type preview struct {
	Path     string         `json:"path"`
	Checksum string         `json:"checksum"`
	Slug     string         `json:"slug"`
	Recipe   *recipe.Recipe `json:"recipe"`
}

func runPreview(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("recipes-preview", flag.ContinueOnError)
	configPath := fs.String("config", "", "Optional YAML configuration file")
	contentDir := fs.String("content-dir", "", "Path to the recipe content root (overrides config)")
	extensions := fs.String("extensions", "", "Comma separated goldmark extensions")
	filePath := fs.String("file", "", "Recipe file to preview (relative to the content root)")
	logLevel := fs.String("log-level", "", "Log level (overrides config)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *filePath == "" {
		return fmt.Errorf("--file is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		ConfigPath: *configPath,
		ContentDir: *contentDir,
		Extensions: bootstrap.SplitList(*extensions),
		LogLevel:   *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Compiler == nil {
		return fmt.Errorf("recipe compiler not configured")
	}

	var compiled *interfaces.CompiledRecipe
	handler := recipescmd.NewCompileFileHandler(module.Compiler, module.Logger,
		func(_ context.Context, _ recipescmd.CompileFileCommand, c *interfaces.CompiledRecipe) {
			compiled = c
		})
	if err := handler.Execute(context.Background(), recipescmd.CompileFileCommand{Path: *filePath}); err != nil {
		return fmt.Errorf("compile %s: %w", *filePath, err)
	}
	if compiled == nil {
		return fmt.Errorf("compile %s: no recipe produced", *filePath)
	}

	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(preview{
		Path:     compiled.Path,
		Checksum: fmt.Sprintf("%x", compiled.Checksum),
		Slug:     compiled.Recipe.Slug(),
		Recipe:   compiled.Recipe,
	})
}
