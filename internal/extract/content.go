package extract

import (
	"strings"

	"github.com/goliatone/go-recipes/internal/document"
	"github.com/goliatone/go-recipes/recipe"
)

// reservedLabels are the headings claimed by the structured extractors.
var reservedLabels = labelMatcher(IngredientsLabel, "Ingredient", DirectionsLabel, InstructionsLabel)

type contentBuffer struct {
	title string
	text  strings.Builder
}

var contentRules = sectionRules[*contentBuffer]{
	opens: func(heading string) bool {
		return !reservedLabels(heading)
	},
	start: func(heading string, _ bool) *contentBuffer {
		return &contentBuffer{title: heading}
	},
	paragraph: func(section **contentBuffer, p *document.Paragraph) error {
		(*section).text.WriteString(paragraphText(p))
		(*section).text.WriteByte('\n')
		return nil
	},
	list: func(section **contentBuffer, list *document.List) error {
		items, err := listItems(list)
		if err != nil {
			return err
		}
		for _, item := range items {
			(*section).text.WriteString("- ")
			(*section).text.WriteString(item)
			(*section).text.WriteByte('\n')
		}
		return nil
	},
	keep: func(section *contentBuffer) bool {
		return strings.TrimSpace(section.text.String()) != ""
	},
}

// ContentSections recovers every level-2 section not claimed by the
// ingredient or instruction extractors. Paragraphs are kept as lines and list
// items as "- item" lines. Sections with no text are dropped; the last open
// section is kept even when no heading follows it.
func ContentSections(doc document.Document) ([]recipe.ContentSection, error) {
	buffers, err := scan(doc, contentRules)
	if err != nil {
		return nil, err
	}

	sections := make([]recipe.ContentSection, 0, len(buffers))
	for _, buf := range buffers {
		sections = append(sections, recipe.ContentSection{
			Title:   buf.title,
			Content: strings.TrimSpace(buf.text.String()),
		})
	}
	return sections, nil
}
