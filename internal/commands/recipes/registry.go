package recipescmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-recipes/internal/commands"
	"github.com/goliatone/go-recipes/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the handlers produced by RegisterRecipeCommands.
type HandlerSet struct {
	CompileDirectory *CompileDirectoryHandler
	CompileFile      *CompileFileHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	directoryResult      DirectoryResultFunc
	fileResult           FileResultFunc
	directoryHandlerOpts []commands.HandlerOption[CompileDirectoryCommand]
	fileHandlerOpts      []commands.HandlerOption[CompileFileCommand]
}

// WithDirectoryResult installs the callback that receives directory run results.
func WithDirectoryResult(fn DirectoryResultFunc) Option {
	return func(cfg *options) {
		cfg.directoryResult = fn
	}
}

// WithFileResult installs the callback that receives compiled documents.
func WithFileResult(fn FileResultFunc) Option {
	return func(cfg *options) {
		cfg.fileResult = fn
	}
}

// WithDirectoryHandlerOptions forwards options to the CompileDirectoryHandler constructor.
func WithDirectoryHandlerOptions(opts ...commands.HandlerOption[CompileDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.directoryHandlerOpts = append(cfg.directoryHandlerOpts, opts...)
	}
}

// WithFileHandlerOptions forwards options to the CompileFileHandler constructor.
func WithFileHandlerOptions(opts ...commands.HandlerOption[CompileFileCommand]) Option {
	return func(cfg *options) {
		cfg.fileHandlerOpts = append(cfg.fileHandlerOpts, opts...)
	}
}

// RegisterRecipeCommands builds the recipe command handlers and registers them with the
// provided registry. The registry may be nil when callers only need the handlers.
func RegisterRecipeCommands(reg CommandRegistry, service interfaces.RecipeCompiler, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("recipe command registration: compiler is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "recipes")

	directoryHandler := NewCompileDirectoryHandler(service, logger, cfg.directoryResult, cfg.directoryHandlerOpts...)
	fileHandler := NewCompileFileHandler(service, logger, cfg.fileResult, cfg.fileHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(directoryHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(fileHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		CompileDirectory: directoryHandler,
		CompileFile:      fileHandler,
	}, nil
}

// RegisterRecipesCron schedules a recurring directory compile. The handler runs
// with a background context.
func RegisterRecipesCron(reg CronRegistrar, handler *CompileDirectoryHandler, cfg command.HandlerConfig, msg CompileDirectoryCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
