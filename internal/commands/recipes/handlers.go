package recipescmd

import (
	"context"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-recipes/internal/commands"
	"github.com/goliatone/go-recipes/internal/logging"
	"github.com/goliatone/go-recipes/pkg/interfaces"
)

const (
	compileDirectoryOperation = "recipes.compile_directory"
	compileFileOperation      = "recipes.compile_file"
)

var (
	_ command.Commander[CompileDirectoryCommand] = (*CompileDirectoryHandler)(nil)
	_ command.Commander[CompileFileCommand]      = (*CompileFileHandler)(nil)
)

// DirectoryResultFunc receives the outcome of a successful directory run.
type DirectoryResultFunc func(ctx context.Context, msg CompileDirectoryCommand, result *interfaces.CompileResult)

// FileResultFunc receives a successfully compiled document.
type FileResultFunc func(ctx context.Context, msg CompileFileCommand, compiled *interfaces.CompiledRecipe)

// CompileDirectoryHandler runs directory compiles through the shared command handler foundation.
type CompileDirectoryHandler struct {
	inner *commands.Handler[CompileDirectoryCommand]
}

// NewCompileDirectoryHandler creates a handler bound to the supplied compiler. onResult may be nil.
func NewCompileDirectoryHandler(service interfaces.RecipeCompiler, logger interfaces.Logger, onResult DirectoryResultFunc, opts ...commands.HandlerOption[CompileDirectoryCommand]) *CompileDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg CompileDirectoryCommand) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := service.CompileDirectory(ctx, msg.Directory, interfaces.CompileOptions{
			Recursive: msg.Recursive,
			Pattern:   msg.Pattern,
			Strict:    msg.Strict,
		})
		if err != nil {
			return err
		}
		if result == nil {
			return nil
		}

		logging.WithFields(logging.ForContext(baseLogger, ctx), map[string]any{
			"compiled_count":  len(result.Recipes),
			"failed_count":    len(result.Failures),
			"duplicate_slugs": len(result.DuplicateSlugs),
			"strict":          msg.Strict,
		}).Info("recipes.command.compile_directory.completed")

		if onResult != nil {
			onResult(ctx, msg, result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[CompileDirectoryCommand]{
		commands.WithLogger[CompileDirectoryCommand](baseLogger),
		commands.WithOperation[CompileDirectoryCommand](compileDirectoryOperation),
		commands.WithMessageFields(func(msg CompileDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if msg.Recursive != nil {
				fields["recursive"] = *msg.Recursive
			}
			if msg.Strict {
				fields["strict"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[CompileDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CompileDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CompileDirectoryCommand].
func (h *CompileDirectoryHandler) Execute(ctx context.Context, msg CompileDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CompileFileHandler compiles a single document through the shared command handler foundation.
type CompileFileHandler struct {
	inner *commands.Handler[CompileFileCommand]
}

// NewCompileFileHandler creates a handler bound to the supplied compiler. onResult may be nil.
func NewCompileFileHandler(service interfaces.RecipeCompiler, logger interfaces.Logger, onResult FileResultFunc, opts ...commands.HandlerOption[CompileFileCommand]) *CompileFileHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg CompileFileCommand) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		compiled, err := service.CompileFile(ctx, msg.Path)
		if err != nil {
			return err
		}
		if compiled == nil || compiled.Recipe == nil {
			return nil
		}

		logging.WithFields(logging.ForContext(baseLogger, ctx), map[string]any{
			"recipe_name":          compiled.Recipe.RecipeName,
			"ingredient_sections":  len(compiled.Recipe.IngredientSections),
			"instruction_sections": len(compiled.Recipe.InstructionSections),
		}).Info("recipes.command.compile_file.completed")

		if onResult != nil {
			onResult(ctx, msg, compiled)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[CompileFileCommand]{
		commands.WithLogger[CompileFileCommand](baseLogger),
		commands.WithOperation[CompileFileCommand](compileFileOperation),
		commands.WithMessageFields(func(msg CompileFileCommand) map[string]any {
			return map[string]any{"recipe_path": msg.Path}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[CompileFileCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CompileFileHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CompileFileCommand].
func (h *CompileFileHandler) Execute(ctx context.Context, msg CompileFileCommand) error {
	return h.inner.Execute(ctx, msg)
}
