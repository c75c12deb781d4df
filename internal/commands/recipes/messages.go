package recipescmd

import (
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	compileDirectoryMessageType = "recipes.compile_directory"
	compileFileMessageType      = "recipes.compile_file"
)

// CompileDirectoryCommand compiles every recipe document under Directory,
// mirroring compiler.Service CompileDirectory semantics.
type CompileDirectoryCommand struct {
	// Directory is resolved against the compiler's content directory.
	Directory string `json:"directory"`
	// Pattern overrides the configured discovery glob.
	Pattern string `json:"pattern,omitempty"`
	// Recursive overrides the configured recursion setting when non-nil.
	Recursive *bool `json:"recursive,omitempty"`
	// Strict aborts the run on the first document that fails to compile.
	Strict bool `json:"strict,omitempty"`
}

// Type implements command.Message.
func (CompileDirectoryCommand) Type() string { return compileDirectoryMessageType }

// Validate ensures the directory is present and the pattern is a valid glob.
func (cmd CompileDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("recipes.compile_directory.directory_required", "directory is required")
			}
			return nil
		})),
		validation.Field(&cmd.Pattern, validation.By(func(value any) error {
			pattern := strings.TrimSpace(value.(string))
			if pattern == "" {
				return nil
			}
			if _, err := filepath.Match(filepath.ToSlash(pattern), "recipe.md"); err != nil {
				return validation.NewError("recipes.compile_directory.pattern_invalid", "pattern is not a valid glob")
			}
			return nil
		})),
	)
}

// CompileFileCommand compiles a single recipe document.
type CompileFileCommand struct {
	// Path is resolved against the compiler's content directory.
	Path string `json:"path"`
}

// Type implements command.Message.
func (CompileFileCommand) Type() string { return compileFileMessageType }

// Validate ensures a path is present before handlers execute.
func (cmd CompileFileCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("recipes.compile_file.path_required", "path is required")
			}
			return nil
		})),
	)
}
