package extract

import "github.com/goliatone/go-recipes/internal/document"

func text(s string) []document.Inline {
	return []document.Inline{document.Text{Value: s}}
}

func h(level int, s string) *document.Heading {
	return &document.Heading{Level: level, Inlines: text(s)}
}

func p(s string) *document.Paragraph {
	return &document.Paragraph{Inlines: text(s)}
}

func ul(items ...string) *document.List {
	list := &document.List{}
	for _, item := range items {
		list.Items = append(list.Items, document.ListItem{Blocks: []document.Block{p(item)}})
	}
	return list
}

func ol(items ...string) *document.List {
	list := ul(items...)
	list.Ordered = true
	return list
}

func doc(blocks ...document.Block) document.Document {
	return document.Document{Blocks: blocks}
}

func strPtr(s string) *string {
	return &s
}
