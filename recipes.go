// Package recipes compiles recipe documents (a YAML preamble followed by a
// Markdown body) into structured recipe records.
package recipes

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	recipescmd "github.com/goliatone/go-recipes/internal/commands/recipes"
	"github.com/goliatone/go-recipes/internal/compiler"
	"github.com/goliatone/go-recipes/internal/extract"
	"github.com/goliatone/go-recipes/internal/logging"
	"github.com/goliatone/go-recipes/internal/logging/console"
	"github.com/goliatone/go-recipes/internal/logging/gologger"
	"github.com/goliatone/go-recipes/internal/markdown"
	"github.com/goliatone/go-recipes/internal/validation"
	"github.com/goliatone/go-recipes/pkg/interfaces"
	"github.com/goliatone/go-recipes/recipe"
)

type (
	Recipe             = recipe.Recipe
	IngredientSection  = recipe.IngredientSection
	InstructionSection = recipe.InstructionSection
	ContentSection     = recipe.ContentSection
	Category           = recipe.Category

	RecipeCompiler = interfaces.RecipeCompiler
	CompiledRecipe = interfaces.CompiledRecipe
	CompileOptions = interfaces.CompileOptions
	CompileResult  = interfaces.CompileResult
	CompileFailure = interfaces.CompileFailure

	Logger         = interfaces.Logger
	LoggerProvider = interfaces.LoggerProvider
)

const (
	CategoryPrinting         = recipe.CategoryPrinting
	CategoryProgramming      = recipe.CategoryProgramming
	CategoryPlasticRecycling = recipe.CategoryPlasticRecycling
	CategoryOther            = recipe.CategoryOther
)

var (
	ErrUnknownCategory = recipe.ErrUnknownCategory
	ErrPreambleInvalid = validation.ErrPreambleInvalid
	ErrMalformedTree   = extract.ErrMalformedTree
)

// Option customises module construction.
type Option func(*moduleOptions)

type moduleOptions struct {
	provider   interfaces.LoggerProvider
	filesystem fs.FS
	logWriter  io.Writer
}

// WithLoggerProvider overrides the provider derived from Config.Logging.
func WithLoggerProvider(provider LoggerProvider) Option {
	return func(o *moduleOptions) {
		o.provider = provider
	}
}

// WithLogWriter sends console provider output to w instead of stdout.
func WithLogWriter(w io.Writer) Option {
	return func(o *moduleOptions) {
		o.logWriter = w
	}
}

// WithFS reads recipe files from filesystem instead of Config.Recipes.ContentDir.
func WithFS(filesystem fs.FS) Option {
	return func(o *moduleOptions) {
		o.filesystem = filesystem
	}
}

// Module is the top level runtime: a configured compiler plus the logger
// provider shared with command handlers.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	compiler *compiler.Service
}

// New validates cfg and constructs a module.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := moduleOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = newLoggerProvider(cfg.Logging, options.logWriter)
		if err != nil {
			return nil, err
		}
	}

	compilerOpts := []compiler.Option{
		compiler.WithLogger(logging.CompilerLogger(provider)),
		compiler.WithSourceLogger(logging.MarkdownLogger(provider)),
	}
	if options.filesystem != nil {
		compilerOpts = append(compilerOpts, compiler.WithFS(options.filesystem))
	}

	svc, err := compiler.NewService(compiler.Config{
		BasePath:  cfg.Recipes.ContentDir,
		Pattern:   cfg.Recipes.Pattern,
		Recursive: cfg.Recipes.Recursive,
		Parser: markdown.ParseOptions{
			Extensions: cfg.Recipes.Parser.Extensions,
		},
	}, compilerOpts...)
	if err != nil {
		return nil, err
	}

	return &Module{
		cfg:      cfg,
		provider: provider,
		compiler: svc,
	}, nil
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	return m.cfg
}

// Compiler returns the recipe compiler.
func (m *Module) Compiler() RecipeCompiler {
	return m.compiler
}

// LoggerProvider returns the provider used for module loggers. It is nil when
// logging is disabled.
func (m *Module) LoggerProvider() LoggerProvider {
	return m.provider
}

// Logger returns a module-scoped logger under the recipes namespace.
func (m *Module) Logger(module string) Logger {
	return logging.ModuleLogger(m.provider, module)
}

// RegisterCommands builds the compile command handlers and registers them
// with reg, which may be nil.
func (m *Module) RegisterCommands(reg recipescmd.CommandRegistry, opts ...recipescmd.Option) (*recipescmd.HandlerSet, error) {
	return recipescmd.RegisterRecipeCommands(reg, m.compiler, m.provider, opts...)
}

// NewLoggerProvider builds the provider selected by cfg. Disabled logging
// yields a nil provider, which module loggers treat as a no-op.
func NewLoggerProvider(cfg LoggingConfig) (LoggerProvider, error) {
	return newLoggerProvider(cfg, nil)
}

func newLoggerProvider(cfg LoggingConfig, writer io.Writer) (LoggerProvider, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	switch cfg.NormalizedProvider() {
	case "console":
		return console.NewProvider(console.Options{Writer: writer, Level: cfg.Level}), nil
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, cfg.Provider)
	}
}

var (
	defaultOnce     sync.Once
	defaultCompiler *compiler.Service
	defaultErr      error
)

// Compile builds a recipe from a single preamble-prefixed Markdown document
// using plain CommonMark parsing and no logging.
func Compile(source []byte) (*Recipe, error) {
	defaultOnce.Do(func() {
		defaultCompiler, defaultErr = compiler.NewService(compiler.Config{}, compiler.WithFS(os.DirFS(".")))
	})
	if defaultErr != nil {
		return nil, defaultErr
	}
	return defaultCompiler.Compile(source)
}
