package recipe

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned when a preamble category does not match the
// fixed enumeration.
var ErrUnknownCategory = errors.New("recipe: unknown category")

// Category classifies a recipe.
type Category string

const (
	CategoryPrinting         Category = "3d printing"
	CategoryProgramming      Category = "programming"
	CategoryPlasticRecycling Category = "plastic recycling"
	CategoryOther            Category = "other"
)

var categories = []Category{
	CategoryPrinting,
	CategoryProgramming,
	CategoryPlasticRecycling,
	CategoryOther,
}

// Categories lists the known categories in declaration order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

func (c Category) String() string { return string(c) }

// ParseCategory matches value case-insensitively against the enumeration.
// There is no default: unmatched values fail with ErrUnknownCategory.
func ParseCategory(value string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(value))
	for _, category := range categories {
		if string(category) == key {
			return category, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, value)
}
