package extract

import (
	"github.com/goliatone/go-recipes/internal/document"
	"github.com/goliatone/go-recipes/recipe"
)

// IngredientsLabel is the canonical heading of the ingredient section.
const IngredientsLabel = "Ingredients"

// ingredientLabels are tried in order until one yields sections.
var ingredientLabels = []string{IngredientsLabel, "Ingredient"}

var ingredientRules = sectionRules[recipe.IngredientSection]{
	subsections: true,
	start: func(heading string, titled bool) recipe.IngredientSection {
		section := recipe.IngredientSection{Items: []string{}}
		if titled {
			section.Title = &heading
		}
		return section
	},
	list: func(section *recipe.IngredientSection, list *document.List) error {
		items, err := listItems(list)
		if err != nil {
			return err
		}
		section.Items = append(section.Items, items...)
		return nil
	},
	keep: func(section recipe.IngredientSection) bool {
		return len(section.Items) > 0
	},
}

// Ingredients recovers the ingredient groups under the Ingredients heading.
// Every level-3 heading inside it opens a new titled group. A document
// without the heading yields an empty slice.
func Ingredients(doc document.Document) ([]recipe.IngredientSection, error) {
	for _, label := range ingredientLabels {
		rules := ingredientRules
		rules.opens = labelMatcher(label)
		sections, err := scan(doc, rules)
		if err != nil {
			return nil, err
		}
		if len(sections) > 0 {
			return sections, nil
		}
	}
	return []recipe.IngredientSection{}, nil
}
