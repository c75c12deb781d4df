// Package document models the parsed Markdown outline the recipe extractors
// walk. The block and inline kinds are closed sets: callers switch over the
// concrete types and anything the Markdown parser produces outside those sets
// is either dropped (blocks) or kept as an Unsupported placeholder (inlines).
package document

// Document is the ordered sequence of top-level blocks of a recipe body.
type Document struct {
	Blocks []Block
}

// Block is one of *Heading, *Quote, *List or *Paragraph.
type Block interface {
	block()
}

// Heading is an ATX or setext heading.
type Heading struct {
	Level   int
	Inlines []Inline
}

// Quote is a blockquote and its nested blocks.
type Quote struct {
	Blocks []Block
}

// List is an ordered or bullet list.
type List struct {
	Ordered bool
	Items   []ListItem
}

// ListItem holds the blocks of a single list entry. Tight list entries carry
// their text as a Paragraph as well.
type ListItem struct {
	Blocks []Block
}

// Paragraph is a run of inline content.
type Paragraph struct {
	Inlines []Inline
}

func (*Heading) block()   {}
func (*Quote) block()     {}
func (*List) block()      {}
func (*Paragraph) block() {}

// Inline is one of Text, LineBreak, Image or Unsupported.
type Inline interface {
	inline()
}

// Text is a literal run of characters.
type Text struct {
	Value string
}

// LineBreak separates two lines inside the same block.
type LineBreak struct{}

// Image references an embedded picture.
type Image struct {
	Destination string
	Alt         string
}

// Unsupported marks an inline construct the extractors do not render
// (emphasis, links, code spans, raw HTML...). Kind names the source node.
type Unsupported struct {
	Kind string
}

func (Text) inline()        {}
func (LineBreak) inline()   {}
func (Image) inline()       {}
func (Unsupported) inline() {}

// FirstParagraph returns the first paragraph of a list item.
func (item ListItem) FirstParagraph() (*Paragraph, bool) {
	for _, child := range item.Blocks {
		if p, ok := child.(*Paragraph); ok {
			return p, true
		}
	}
	return nil, false
}
