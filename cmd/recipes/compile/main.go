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
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runCompile(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("recipes compile: %v", err)
	}
}

type failureSummary struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type compileSummary struct {
	Recipes        []*interfaces.CompiledRecipe `json:"recipes"`
	Failures       []failureSummary             `json:"failures"`
	DuplicateSlugs map[string][]string          `json:"duplicate_slugs,omitempty"`
}

func runCompile(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("recipes-compile", flag.ContinueOnError)
	configPath := fs.String("config", "", "Optional YAML configuration file")
	contentDir := fs.String("content-dir", "", "Path to the recipe content root (overrides config)")
	pattern := fs.String("pattern", "", "Glob pattern applied when discovering recipe files")
	recursive := fs.Bool("recursive", true, "Walk sub-directories of the target directory")
	extensions := fs.String("extensions", "", "Comma separated goldmark extensions")
	directory := fs.String("directory", ".", "Directory to compile, relative to the content root")
	strict := fs.Bool("strict", false, "Abort on the first recipe that fails to compile")
	logLevel := fs.String("log-level", "", "Log level (overrides config)")
	output := fs.String("output", "", "Write the JSON summary to this file instead of stdout")

	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := bootstrap.Options{
		ConfigPath: *configPath,
		ContentDir: *contentDir,
		Pattern:    *pattern,
		Extensions: bootstrap.SplitList(*extensions),
		LogLevel:   *logLevel,
	}
	if flagSet(fs, "recursive") {
		opts.Recursive = recursive
	}

	module, err := moduleBuilder(opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Compiler == nil {
		return fmt.Errorf("recipe compiler not configured")
	}

	var result *interfaces.CompileResult
	handler := recipescmd.NewCompileDirectoryHandler(module.Compiler, module.Logger,
		func(_ context.Context, _ recipescmd.CompileDirectoryCommand, res *interfaces.CompileResult) {
			result = res
		})

	cmd := recipescmd.CompileDirectoryCommand{
		Directory: *directory,
		Strict:    *strict,
	}
	if opts.Recursive != nil {
		cmd.Recursive = opts.Recursive
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute compile command: %w", err)
	}

	summary := summarize(result)
	if *output == "" {
		return writeJSON(stdout, summary)
	}

	file, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	return writeAndClose(file, summary)
}

// writeAndClose encodes summary into w and reports the close error when the
// encode itself succeeded.
func writeAndClose(w io.WriteCloser, summary compileSummary) error {
	if err := writeJSON(w, summary); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

func summarize(result *interfaces.CompileResult) compileSummary {
	summary := compileSummary{
		Recipes:  []*interfaces.CompiledRecipe{},
		Failures: []failureSummary{},
	}
	if result == nil {
		return summary
	}
	if result.Recipes != nil {
		summary.Recipes = result.Recipes
	}
	for _, failure := range result.Failures {
		entry := failureSummary{Path: failure.Path}
		if failure.Err != nil {
			entry.Error = failure.Err.Error()
		}
		summary.Failures = append(summary.Failures, entry)
	}
	summary.DuplicateSlugs = result.DuplicateSlugs
	return summary
}

func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func flagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
