package compiler

import (
	"errors"
	"io/fs"

	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeCategoryUnknown   = "RECIPE_CATEGORY_UNKNOWN"
	textCodePreambleInvalid   = "RECIPE_PREAMBLE_INVALID"
	textCodePreambleMalformed = "RECIPE_PREAMBLE_MALFORMED"
	textCodeTreeMalformed     = "RECIPE_TREE_MALFORMED"
	textCodeSourceNotFound    = "RECIPE_SOURCE_NOT_FOUND"
	textCodeSourceUnreadable  = "RECIPE_SOURCE_UNREADABLE"
)

func unknownCategoryError(err error, value string) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, "recipe category is not recognised").
		WithTextCode(textCodeCategoryUnknown).
		WithMetadata(map[string]any{"category": value})
}

func preambleInvalidError(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, "recipe preamble is invalid").
		WithTextCode(textCodePreambleInvalid)
}

func preambleMalformedError(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryBadInput, "recipe preamble could not be parsed").
		WithTextCode(textCodePreambleMalformed)
}

func treeMalformedError(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryBadInput, "recipe body has an unexpected structure").
		WithTextCode(textCodeTreeMalformed)
}

func sourceError(err error, path string) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	meta := map[string]any{"path": path}
	if errors.Is(err, fs.ErrNotExist) {
		return goerrors.Wrap(err, goerrors.CategoryNotFound, "recipe source not found").
			WithTextCode(textCodeSourceNotFound).
			WithMetadata(meta)
	}
	return goerrors.Wrap(err, goerrors.CategoryBadInput, "recipe source could not be read").
		WithTextCode(textCodeSourceUnreadable).
		WithMetadata(meta)
}

// withPath annotates a compile error with the document it came from.
func withPath(err error, path string) error {
	var cerr *goerrors.Error
	if errors.As(err, &cerr) {
		return cerr.Clone().WithMetadata(map[string]any{"path": path})
	}
	return err
}
