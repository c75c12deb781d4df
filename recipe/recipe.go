// Package recipe defines the structured record produced from a recipe
// document along with its fixed category enumeration.
package recipe

import "strings"

// IngredientSection groups ingredient lines. Title is nil for the default,
// untitled group that follows the Ingredients heading.
type IngredientSection struct {
	Title *string  `json:"title,omitempty"`
	Items []string `json:"items"`
}

// InstructionSection groups ordered steps. Note holds the first free-text
// paragraph found directly inside the section, if any.
type InstructionSection struct {
	Title *string  `json:"title,omitempty"`
	Steps []string `json:"steps"`
	Note  *string  `json:"note,omitempty"`
}

// ContentSection is a free-form titled section not claimed by the
// ingredient or instruction extractors.
type ContentSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Recipe is the root record assembled from the preamble and the body.
type Recipe struct {
	Name                string               `json:"name"`
	Residence           string               `json:"residence"`
	Category            Category             `json:"category"`
	RecipeName          string               `json:"recipe_name"`
	Quote               *string              `json:"quote,omitempty"`
	IngredientSections  []IngredientSection  `json:"ingredient_sections"`
	InstructionSections []InstructionSection `json:"instruction_sections"`
	ContentSections     []ContentSection     `json:"content_sections"`
	Tags                []string             `json:"tags"`
	Image               *string              `json:"image,omitempty"`
}

var slugReplacer = strings.NewReplacer(" ", "-", "'", "", `"`, "")

// Slug derives the URL form of RecipeName: lower-cased, spaces replaced by
// hyphens, single and double quotes removed.
func (r Recipe) Slug() string {
	return Slug(r.RecipeName)
}

// Slug applies the recipe slug rules to an arbitrary display title.
func Slug(title string) string {
	return slugReplacer.Replace(strings.ToLower(title))
}

// Ingredients flattens every ingredient section into a single list, keeping
// document order.
func (r Recipe) Ingredients() []string {
	var out []string
	for _, section := range r.IngredientSections {
		out = append(out, section.Items...)
	}
	return out
}

// Steps flattens every instruction section into a single list.
func (r Recipe) Steps() []string {
	var out []string
	for _, section := range r.InstructionSections {
		out = append(out, section.Steps...)
	}
	return out
}

// Section returns the content section with the given title, matched
// case-insensitively.
func (r Recipe) Section(title string) (ContentSection, bool) {
	for _, section := range r.ContentSections {
		if strings.EqualFold(section.Title, title) {
			return section, true
		}
	}
	return ContentSection{}, false
}
