package recipescmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-recipes/internal/logging"
	"github.com/goliatone/go-recipes/pkg/interfaces"
	"github.com/goliatone/go-recipes/recipe"
)

type directoryCall struct {
	directory string
	options   interfaces.CompileOptions
}

type stubCompiler struct {
	directoryCalls []directoryCall
	fileCalls      []string

	directoryResult *interfaces.CompileResult
	fileResult      *interfaces.CompiledRecipe

	directoryErr error
	fileErr      error
}

var _ interfaces.RecipeCompiler = (*stubCompiler)(nil)

func (s *stubCompiler) Compile([]byte) (*recipe.Recipe, error) {
	return nil, nil
}

func (s *stubCompiler) CompileFile(ctx context.Context, path string) (*interfaces.CompiledRecipe, error) {
	s.fileCalls = append(s.fileCalls, path)
	if s.fileErr != nil {
		return nil, s.fileErr
	}
	return s.fileResult, nil
}

func (s *stubCompiler) CompileDirectory(ctx context.Context, dir string, opts interfaces.CompileOptions) (*interfaces.CompileResult, error) {
	s.directoryCalls = append(s.directoryCalls, directoryCall{
		directory: dir,
		options:   opts,
	})
	if s.directoryErr != nil {
		return nil, s.directoryErr
	}
	return s.directoryResult, nil
}

type captureLogger struct {
	fields       []map[string]any
	infoMessages []string
}

var _ interfaces.Logger = (*captureLogger)(nil)

func (c *captureLogger) Trace(string, ...any) {}
func (c *captureLogger) Debug(string, ...any) {}
func (c *captureLogger) Info(msg string, _ ...any) {
	c.infoMessages = append(c.infoMessages, msg)
}
func (c *captureLogger) Warn(string, ...any)  {}
func (c *captureLogger) Error(string, ...any) {}
func (c *captureLogger) Fatal(string, ...any) {}

func (c *captureLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	c.fields = append(c.fields, copied)
	return c
}

func (c *captureLogger) WithContext(context.Context) interfaces.Logger {
	return c
}

func TestCompileDirectoryHandlerInvokesService(t *testing.T) {
	service := &stubCompiler{
		directoryResult: &interfaces.CompileResult{
			Recipes: []*interfaces.CompiledRecipe{
				{Path: "pancakes.md", Recipe: &recipe.Recipe{RecipeName: "Pancakes"}},
				{Path: "waffles.md", Recipe: &recipe.Recipe{RecipeName: "Waffles"}},
			},
			Failures: []interfaces.CompileFailure{
				{Path: "broken.md", Err: errors.New("broken")},
			},
		},
	}
	logger := &captureLogger{}

	var delivered *interfaces.CompileResult
	handler := NewCompileDirectoryHandler(service, logger, func(_ context.Context, _ CompileDirectoryCommand, result *interfaces.CompileResult) {
		delivered = result
	})

	recursive := false
	cmd := CompileDirectoryCommand{
		Directory: "recipes",
		Pattern:   "*.markdown",
		Recursive: &recursive,
		Strict:    true,
	}

	if err := handler.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("execute compile directory: %v", err)
	}

	if len(service.directoryCalls) != 1 {
		t.Fatalf("expected compile call, got %d", len(service.directoryCalls))
	}
	call := service.directoryCalls[0]
	if call.directory != cmd.Directory {
		t.Fatalf("expected directory %q, got %q", cmd.Directory, call.directory)
	}
	if call.options.Pattern != cmd.Pattern {
		t.Fatalf("expected pattern %q, got %q", cmd.Pattern, call.options.Pattern)
	}
	if call.options.Recursive == nil || *call.options.Recursive {
		t.Fatalf("expected recursive override false, got %v", call.options.Recursive)
	}
	if !call.options.Strict {
		t.Fatal("expected strict option set")
	}
	if delivered != service.directoryResult {
		t.Fatalf("expected result delivered to callback, got %#v", delivered)
	}

	found := false
	for _, fields := range logger.fields {
		if _, ok := fields["compiled_count"]; ok {
			found = true
			if fields["compiled_count"] != 2 {
				t.Fatalf("expected compiled count 2, got %v", fields["compiled_count"])
			}
			if fields["failed_count"] != 1 {
				t.Fatalf("expected failed count 1, got %v", fields["failed_count"])
			}
			break
		}
	}
	if !found {
		t.Fatalf("expected summary fields recorded, got %#v", logger.fields)
	}
}

func TestCompileDirectoryHandlerPropagatesServiceError(t *testing.T) {
	serviceErr := errors.New("walk failed")
	service := &stubCompiler{directoryErr: serviceErr}
	called := false
	handler := NewCompileDirectoryHandler(service, logging.NoOp(), func(context.Context, CompileDirectoryCommand, *interfaces.CompileResult) {
		called = true
	})

	err := handler.Execute(context.Background(), CompileDirectoryCommand{Directory: "recipes"})
	if !errors.Is(err, serviceErr) {
		t.Fatalf("expected service error, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command error category, got %v", err)
	}
	if called {
		t.Fatal("expected callback skipped on failure")
	}
}

func TestCompileDirectoryHandlerValidationFailure(t *testing.T) {
	service := &stubCompiler{}
	handler := NewCompileDirectoryHandler(service, logging.NoOp(), nil)

	err := handler.Execute(context.Background(), CompileDirectoryCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(service.directoryCalls) != 0 {
		t.Fatalf("expected no compile calls, got %d", len(service.directoryCalls))
	}
}

func TestCompileDirectoryHandlerContextCancellation(t *testing.T) {
	service := &stubCompiler{}
	handler := NewCompileDirectoryHandler(service, logging.NoOp(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := handler.Execute(ctx, CompileDirectoryCommand{Directory: "recipes"})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command error category, got %v", err)
	}
	if len(service.directoryCalls) != 0 {
		t.Fatalf("expected no compile calls, got %d", len(service.directoryCalls))
	}
}

func TestCompileFileHandlerInvokesService(t *testing.T) {
	service := &stubCompiler{
		fileResult: &interfaces.CompiledRecipe{
			Path: "pancakes.md",
			Recipe: &recipe.Recipe{
				RecipeName: "Pancakes",
				IngredientSections: []recipe.IngredientSection{
					{Items: []string{"flour"}},
				},
			},
		},
	}
	logger := &captureLogger{}

	var delivered *interfaces.CompiledRecipe
	handler := NewCompileFileHandler(service, logger, func(_ context.Context, _ CompileFileCommand, compiled *interfaces.CompiledRecipe) {
		delivered = compiled
	})

	if err := handler.Execute(context.Background(), CompileFileCommand{Path: "pancakes.md"}); err != nil {
		t.Fatalf("execute compile file: %v", err)
	}
	if len(service.fileCalls) != 1 || service.fileCalls[0] != "pancakes.md" {
		t.Fatalf("expected one compile call for pancakes.md, got %v", service.fileCalls)
	}
	if delivered != service.fileResult {
		t.Fatalf("expected compiled recipe delivered, got %#v", delivered)
	}

	found := false
	for _, fields := range logger.fields {
		if fields["recipe_name"] == "Pancakes" {
			found = true
			if fields["ingredient_sections"] != 1 {
				t.Fatalf("expected ingredient section count 1, got %v", fields["ingredient_sections"])
			}
		}
	}
	if !found {
		t.Fatalf("expected compile summary fields recorded, got %#v", logger.fields)
	}
}

func TestCompileFileHandlerPropagatesCategory(t *testing.T) {
	serviceErr := goerrors.New("unknown category", goerrors.CategoryValidation)
	service := &stubCompiler{fileErr: serviceErr}
	handler := NewCompileFileHandler(service, logging.NoOp(), nil)

	err := handler.Execute(context.Background(), CompileFileCommand{Path: "pancakes.md"})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected compiler category preserved, got %v", err)
	}
}
