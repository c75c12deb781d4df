// Package compiler assembles recipe records from preamble metadata and the
// sections recovered by the extractors, and runs that assembly over files
// and directories.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-recipes/internal/document"
	"github.com/goliatone/go-recipes/internal/extract"
	"github.com/goliatone/go-recipes/internal/logging"
	"github.com/goliatone/go-recipes/internal/markdown"
	"github.com/goliatone/go-recipes/internal/validation"
	"github.com/goliatone/go-recipes/pkg/interfaces"
	"github.com/goliatone/go-recipes/recipe"
)

// Parser turns a Markdown body into a document tree.
type Parser interface {
	Parse(body []byte) (document.Document, error)
}

// Config controls where recipe files are discovered and how bodies are parsed.
type Config struct {
	BasePath  string
	Pattern   string
	Recursive bool
	Parser    markdown.ParseOptions
}

// Option customises a Service.
type Option func(*Service)

// WithLogger sets the logger used for compile diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSourceLogger sets the logger used while discovering and reading files.
func WithSourceLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.sourceLogger = logger
		}
	}
}

// WithParser replaces the default goldmark parser.
func WithParser(parser Parser) Option {
	return func(s *Service) {
		if parser != nil {
			s.parser = parser
		}
	}
}

// WithFS reads recipe files from filesystem instead of Config.BasePath.
func WithFS(filesystem fs.FS) Option {
	return func(s *Service) {
		s.filesystem = filesystem
	}
}

// Service implements interfaces.RecipeCompiler.
type Service struct {
	cfg          Config
	parser       Parser
	filesystem   fs.FS
	loader       *markdown.Loader
	logger       interfaces.Logger
	sourceLogger interfaces.Logger
}

var _ interfaces.RecipeCompiler = (*Service)(nil)

// NewService constructs a compiler. Without WithFS the content directory is
// Config.BasePath, which must exist when set.
func NewService(cfg Config, opts ...Option) (*Service, error) {
	s := &Service{
		cfg:    cfg,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.parser == nil {
		s.parser = markdown.NewGoldmarkParser(cfg.Parser)
	}

	if s.filesystem == nil {
		filesystem, err := prepareFilesystem(cfg.BasePath)
		if err != nil {
			return nil, err
		}
		s.filesystem = filesystem
	}

	s.loader = markdown.NewLoader(s.filesystem, markdown.LoaderConfig{
		BasePath:  cfg.BasePath,
		Pattern:   cfg.Pattern,
		Recursive: cfg.Recursive,
		Logger:    s.sourceLogger,
	})

	return s, nil
}

// Compile builds a recipe from a preamble-prefixed Markdown document. The
// only fatal conditions are a malformed or incomplete preamble, an unknown
// category and a document tree that breaks the extractor assumptions;
// missing sections produce empty values.
func (s *Service) Compile(source []byte) (*recipe.Recipe, error) {
	raw, body, err := markdown.ParseFrontMatter(source)
	if err != nil {
		return nil, preambleMalformedError(err)
	}
	if err := validation.ValidatePreamble(raw); err != nil {
		return nil, preambleInvalidError(err)
	}
	meta := markdown.DecodePreamble(raw)

	category, err := recipe.ParseCategory(meta.Category)
	if err != nil {
		return nil, unknownCategoryError(err, meta.Category)
	}

	doc, err := s.parser.Parse(body)
	if err != nil {
		return nil, treeMalformedError(err)
	}

	res, err := extract.Extract(doc)
	if err != nil {
		return nil, treeMalformedError(err)
	}

	logger := logging.WithFields(s.logger, map[string]any{
		"recipe_name": res.Title,
		"category":    category.String(),
	})
	if !res.HasTitle {
		logger.Debug("recipes.compile.title_missing")
	}
	logger.Debug("recipes.compile.extracted",
		"ingredient_sections", len(res.Ingredients),
		"instruction_sections", len(res.Instructions),
		"content_sections", len(res.Content),
		"has_quote", res.Quote != nil,
	)

	return &recipe.Recipe{
		Name:                meta.Name,
		Residence:           meta.Residence,
		Category:            category,
		RecipeName:          res.Title,
		Quote:               res.Quote,
		IngredientSections:  res.Ingredients,
		InstructionSections: res.Instructions,
		ContentSections:     res.Content,
		Tags:                meta.Tags,
		Image:               meta.Image,
	}, nil
}

// CompileFile reads and compiles a single recipe file relative to the
// content directory.
func (s *Service) CompileFile(ctx context.Context, path string) (*interfaces.CompiledRecipe, error) {
	source, err := s.loader.LoadFile(ctx, s.normalisePath(path))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, sourceError(err, path)
	}
	return s.compileSource(source)
}

// CompileDirectory compiles every recipe file under dir. Documents that fail
// are reported in the result unless opts.Strict is set, in which case the
// first failure aborts the run.
func (s *Service) CompileDirectory(ctx context.Context, dir string, opts interfaces.CompileOptions) (*interfaces.CompileResult, error) {
	ctx = logging.ContextWithFields(ctx, map[string]any{"recipe_dir": dir})
	logger := logging.WithRecipeContext(logging.ForContext(s.logger, ctx), "", "compile_directory")

	sources, err := s.loader.LoadDirectory(ctx, s.normalisePath(dir), markdown.LoadParams{
		Pattern:   opts.Pattern,
		Recursive: opts.Recursive,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, sourceError(err, dir)
	}

	result := &interfaces.CompileResult{
		Recipes: make([]*interfaces.CompiledRecipe, 0, len(sources)),
	}
	collector := goerrors.NewCollector(goerrors.WithContext(ctx))

	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		compiled, err := s.compileSource(source)
		if err != nil {
			if opts.Strict {
				return nil, err
			}
			collector.Add(err)
			result.Failures = append(result.Failures, interfaces.CompileFailure{
				Path: source.Path,
				Err:  err,
			})
			docCtx := logging.ContextWithFields(ctx, map[string]any{"recipe_path": source.Path})
			logging.WithRecipeContext(logging.ForContext(s.logger, docCtx), "", "compile_document").
				Warn("recipes.compile.document_failed", "error", err)
			continue
		}
		result.Recipes = append(result.Recipes, compiled)
	}

	result.DuplicateSlugs = duplicateSlugs(result.Recipes)
	for key, paths := range result.DuplicateSlugs {
		logger.Warn("recipes.compile.duplicate_slug", "slug", key, "paths", strings.Join(paths, ","))
	}

	fields := map[string]any{
		"document_count": len(sources),
		"compiled_count": len(result.Recipes),
		"failed_count":   len(result.Failures),
	}
	if collector.HasErrors() {
		fields["failure_category"] = collector.MostCommonCategory().String()
	}
	logging.WithFields(logger, fields).Info("recipes.compile.directory_completed")

	return result, nil
}

func (s *Service) compileSource(source *markdown.Source) (*interfaces.CompiledRecipe, error) {
	compiled, err := s.Compile(source.Data)
	if err != nil {
		return nil, withPath(err, source.Path)
	}
	return &interfaces.CompiledRecipe{
		Path:     source.Path,
		Checksum: source.Checksum,
		Recipe:   compiled,
	}, nil
}

// duplicateSlugs groups compiled recipes by normalized slug and keeps the
// slugs claimed by more than one path.
func duplicateSlugs(recipes []*interfaces.CompiledRecipe) map[string][]string {
	byKey := map[string][]string{}
	for _, compiled := range recipes {
		key := compiled.Recipe.Key()
		byKey[key] = append(byKey[key], compiled.Path)
	}

	var duplicates map[string][]string
	for key, paths := range byKey {
		if len(paths) < 2 {
			continue
		}
		if duplicates == nil {
			duplicates = map[string][]string{}
		}
		duplicates[key] = paths
	}
	return duplicates
}

func (s *Service) normalisePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "."
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) && strings.TrimSpace(s.cfg.BasePath) != "" {
		if rel, err := filepath.Rel(s.cfg.BasePath, clean); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(clean)
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, sourceError(err, basePath)
		}
		return nil, fmt.Errorf("recipe compiler: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
