package extract

import (
	"strings"

	"github.com/goliatone/go-recipes/internal/document"
)

// Title returns the flattened text of the first level-1 heading.
func Title(doc document.Document) (string, bool) {
	for _, node := range doc.Blocks {
		if h, ok := node.(*document.Heading); ok && h.Level == 1 {
			return headingText(h), true
		}
	}
	return "", false
}

// Quote returns the text of the first blockquote: each nested paragraph
// flattened and newline-joined, trailing whitespace removed.
func Quote(doc document.Document) (string, bool) {
	for _, node := range doc.Blocks {
		q, ok := node.(*document.Quote)
		if !ok {
			continue
		}
		lines := make([]string, 0, len(q.Blocks))
		for _, child := range q.Blocks {
			if p, ok := child.(*document.Paragraph); ok {
				lines = append(lines, paragraphText(p))
			}
		}
		return strings.TrimRight(strings.Join(lines, "\n"), " \t\r\n"), true
	}
	return "", false
}
