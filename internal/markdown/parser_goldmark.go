package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/goliatone/go-recipes/internal/document"
)

// ParseOptions selects the goldmark extensions enabled while parsing a
// recipe body. Unknown extension names are ignored.
type ParseOptions struct {
	Extensions []string
}

// GoldmarkParser turns Markdown bodies into document trees using goldmark.
// The parser is stateless so a single instance can be shared.
type GoldmarkParser struct {
	engine goldmark.Markdown
}

// NewGoldmarkParser constructs a parser with the supplied extensions. With
// no extensions the parser follows plain CommonMark.
func NewGoldmarkParser(opts ParseOptions) *GoldmarkParser {
	engineOptions := []goldmark.Option{}
	if exts := collectExtensions(opts.Extensions); len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}
	return &GoldmarkParser{engine: goldmark.New(engineOptions...)}
}

// Parse converts a Markdown body into a document tree. Block kinds outside
// headings, quotes, lists and paragraphs are dropped.
func (p *GoldmarkParser) Parse(body []byte) (document.Document, error) {
	root := p.engine.Parser().Parse(text.NewReader(body))
	return document.Document{Blocks: convertBlocks(root, body)}, nil
}

func convertBlocks(parent ast.Node, source []byte) []document.Block {
	var blocks []document.Block
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		if block := convertBlock(child, source); block != nil {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

func convertBlock(node ast.Node, source []byte) document.Block {
	switch n := node.(type) {
	case *ast.Heading:
		return &document.Heading{Level: n.Level, Inlines: convertInlines(n, source)}
	case *ast.Blockquote:
		return &document.Quote{Blocks: convertBlocks(n, source)}
	case *ast.List:
		list := &document.List{Ordered: n.IsOrdered()}
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			if _, ok := item.(*ast.ListItem); !ok {
				continue
			}
			list.Items = append(list.Items, document.ListItem{Blocks: convertBlocks(item, source)})
		}
		return list
	case *ast.Paragraph:
		return &document.Paragraph{Inlines: convertInlines(n, source)}
	case *ast.TextBlock:
		// tight list items
		return &document.Paragraph{Inlines: convertInlines(n, source)}
	default:
		return nil
	}
}

func convertInlines(parent ast.Node, source []byte) []document.Inline {
	var inlines []document.Inline
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			inlines = append(inlines, document.Text{Value: decodeText(n.Segment.Value(source))})
			if n.SoftLineBreak() || n.HardLineBreak() {
				inlines = append(inlines, document.LineBreak{})
			}
		case *ast.String:
			inlines = append(inlines, document.Text{Value: string(n.Value)})
		case *ast.Image:
			inlines = append(inlines, document.Image{
				Destination: string(n.Destination),
				Alt:         plainText(n, source),
			})
		default:
			inlines = append(inlines, document.Unsupported{Kind: child.Kind().String()})
		}
	}
	for len(inlines) > 0 {
		if _, ok := inlines[len(inlines)-1].(document.LineBreak); !ok {
			break
		}
		inlines = inlines[:len(inlines)-1]
	}
	return inlines
}

// decodeText turns a raw text segment into its literal characters. Backslash
// escaped punctuation is kept verbatim; entity and numeric references in the
// runs between escapes are resolved.
func decodeText(raw []byte) string {
	if bytes.IndexByte(raw, '\\') < 0 && bytes.IndexByte(raw, '&') < 0 {
		return string(raw)
	}
	var b strings.Builder
	b.Grow(len(raw))
	start := 0
	flush := func(end int) {
		b.Write(util.ResolveEntityNames(util.ResolveNumericReferences(raw[start:end])))
	}
	for i := 0; i < len(raw)-1; i++ {
		if raw[i] == '\\' && util.IsPunct(raw[i+1]) {
			flush(i)
			b.WriteByte(raw[i+1])
			i++
			start = i + 1
		}
	}
	flush(len(raw))
	return b.String()
}

// plainText collects the literal text below node, used for image labels.
func plainText(node ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			b.WriteString(decodeText(t.Segment.Value(source)))
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

func collectExtensions(names []string) []goldmark.Extender {
	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}

		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}
