package extract

import (
	"errors"
	"fmt"
)

// ErrMalformedTree reports a document tree that breaks the structural
// assumptions of the extractors, such as a list item with no content.
var ErrMalformedTree = errors.New("extract: malformed document tree")

func malformed(detail string) error {
	return fmt.Errorf("%w: %s", ErrMalformedTree, detail)
}
