// Package extract recovers recipe sections from a parsed document outline.
//
// Every structured extractor shares one top-level scan (see scanner.go):
// a level-2 heading matching the extractor's label opens a section, level-3
// headings open titled subsections, and the next level 1/2 heading closes
// the run. Missing structure yields empty results; only trees that break the
// node shape assumptions produce ErrMalformedTree.
package extract

import (
	"github.com/goliatone/go-recipes/internal/document"
	"github.com/goliatone/go-recipes/recipe"
)

// Result bundles the output of every extractor for one document.
type Result struct {
	Title        string
	HasTitle     bool
	Quote        *string
	Ingredients  []recipe.IngredientSection
	Instructions []recipe.InstructionSection
	Content      []recipe.ContentSection
}

// Extract runs the extractors in document order of concern: title, quote,
// ingredients, instructions, then the remaining content sections.
func Extract(doc document.Document) (Result, error) {
	var (
		res Result
		err error
	)

	res.Title, res.HasTitle = Title(doc)
	if quote, ok := Quote(doc); ok {
		res.Quote = &quote
	}
	if res.Ingredients, err = Ingredients(doc); err != nil {
		return Result{}, err
	}
	if res.Instructions, err = Instructions(doc); err != nil {
		return Result{}, err
	}
	if res.Content, err = ContentSections(doc); err != nil {
		return Result{}, err
	}
	return res, nil
}
