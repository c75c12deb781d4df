package extract

import (
	"strings"

	"github.com/goliatone/go-recipes/internal/document"
)

const lineBreakMarkup = "<br>"

// Flatten renders inline content into a single display string. Text runs are
// copied verbatim, line breaks become <br> and images become inline <img>
// markup. Inline kinds without a rendering contribute nothing. The result is
// trimmed and otherwise left unescaped.
func Flatten(inlines []document.Inline) string {
	var b strings.Builder
	for _, node := range inlines {
		switch n := node.(type) {
		case document.Text:
			b.WriteString(n.Value)
		case document.LineBreak:
			b.WriteString(lineBreakMarkup)
		case document.Image:
			b.WriteString(`<img src="`)
			b.WriteString(n.Destination)
			b.WriteString(`" alt="`)
			b.WriteString(n.Alt)
			b.WriteString(`" />`)
		}
	}
	return strings.TrimSpace(b.String())
}

func headingText(h *document.Heading) string {
	return Flatten(h.Inlines)
}

func paragraphText(p *document.Paragraph) string {
	return Flatten(p.Inlines)
}

// itemText flattens the first paragraph-like child of a list item. An item
// without any child block is a malformed tree; an item whose children are not
// paragraphs (a bare nested list) reads as empty text.
func itemText(item document.ListItem) (string, error) {
	if len(item.Blocks) == 0 {
		return "", malformed("list item has no content")
	}
	p, ok := item.FirstParagraph()
	if !ok {
		return "", nil
	}
	return paragraphText(p), nil
}

func listItems(list *document.List) ([]string, error) {
	items := make([]string, 0, len(list.Items))
	for _, item := range list.Items {
		text, err := itemText(item)
		if err != nil {
			return nil, err
		}
		items = append(items, text)
	}
	return items, nil
}
