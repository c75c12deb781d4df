package interfaces

import (
	"context"

	"github.com/goliatone/go-recipes/recipe"
)

// RecipeCompiler turns recipe documents into recipe records. Compile is a
// pure function of its input; the file workflows read from the compiler's
// configured content directory.
type RecipeCompiler interface {
	Compile(source []byte) (*recipe.Recipe, error)
	CompileFile(ctx context.Context, path string) (*CompiledRecipe, error)
	CompileDirectory(ctx context.Context, dir string, opts CompileOptions) (*CompileResult, error)
}

// CompiledRecipe pairs a compiled record with the file it came from.
type CompiledRecipe struct {
	Path string `json:"path"`
	// Checksum is the SHA-256 digest of the source file.
	Checksum []byte         `json:"checksum"`
	Recipe   *recipe.Recipe `json:"recipe"`
}

// CompileOptions fine-tunes directory discovery for a single run.
type CompileOptions struct {
	Recursive *bool
	Pattern   string
	// Strict aborts the run on the first document that fails to compile.
	Strict bool
}

// CompileFailure records a document that could not be compiled.
type CompileFailure struct {
	Path string `json:"path"`
	Err  error  `json:"-"`
}

// CompileResult summarises a directory run. Recipes are ordered by path.
type CompileResult struct {
	Recipes  []*CompiledRecipe `json:"recipes"`
	Failures []CompileFailure  `json:"failures,omitempty"`
	// DuplicateSlugs maps a normalized slug to every path that produced it,
	// for slugs claimed by more than one document.
	DuplicateSlugs map[string][]string `json:"duplicate_slugs,omitempty"`
}
