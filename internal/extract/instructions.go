package extract

import (
	"github.com/goliatone/go-recipes/internal/document"
	"github.com/goliatone/go-recipes/recipe"
)

const (
	DirectionsLabel   = "Directions"
	InstructionsLabel = "Instructions"
)

var instructionRules = sectionRules[recipe.InstructionSection]{
	opens:       labelMatcher(DirectionsLabel, InstructionsLabel),
	subsections: true,
	start: func(heading string, titled bool) recipe.InstructionSection {
		section := recipe.InstructionSection{Steps: []string{}}
		if titled {
			section.Title = &heading
		}
		return section
	},
	list: func(section *recipe.InstructionSection, list *document.List) error {
		steps, err := listItems(list)
		if err != nil {
			return err
		}
		section.Steps = append(section.Steps, steps...)
		return nil
	},
	paragraph: func(section *recipe.InstructionSection, p *document.Paragraph) error {
		if section.Note != nil {
			return nil
		}
		note := paragraphText(p)
		section.Note = &note
		return nil
	},
	keep: func(section recipe.InstructionSection) bool {
		return len(section.Steps) > 0 || section.Note != nil
	},
}

// Instructions recovers the instruction groups under a Directions or
// Instructions heading. The first paragraph found directly in a group is kept
// as its note. When the structured scan finds nothing, a bare list following
// a Directions (then Instructions) heading of any level is returned as a
// single untitled group.
func Instructions(doc document.Document) ([]recipe.InstructionSection, error) {
	sections, err := scan(doc, instructionRules)
	if err != nil {
		return nil, err
	}
	if len(sections) > 0 {
		return sections, nil
	}

	for _, label := range []string{DirectionsLabel, InstructionsLabel} {
		list, ok := listAfterHeading(doc, label)
		if !ok {
			continue
		}
		steps, err := listItems(list)
		if err != nil {
			return nil, err
		}
		return []recipe.InstructionSection{{Steps: steps}}, nil
	}

	return []recipe.InstructionSection{}, nil
}
