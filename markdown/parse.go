// Package markdown renders assistant replies for the terminal.
//
// Only a fixed set of constructs is formatted: paragraphs, bold text and
// unordered lists. Every other construct is reduced to its plain text and
// raw HTML is dropped.
package markdown

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockListItem
)

// Span is a run of text with uniform formatting.
type Span struct {
	Text   string
	Strong bool
}

// Block is one rendered unit: a paragraph or an unordered list item.
// Depth is the list nesting level, 0 outside of lists.
type Block struct {
	Kind  BlockKind
	Depth int
	Spans []Span
}

// Text returns the block's text without formatting.
func (b Block) Text() string {
	var sb strings.Builder
	for _, s := range b.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

func (b Block) inList() bool {
	return b.Kind == BlockListItem || b.Depth > 0
}

// Parse converts Markdown source into the allowed block structure.
func Parse(src string) []Block {
	source := []byte(src)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	p := &parser{source: source}
	p.block(doc, 0)
	return p.blocks
}

type parser struct {
	source []byte
	blocks []Block
}

func (p *parser) emit(kind BlockKind, depth int, spans []Span) {
	if len(spans) == 0 {
		return
	}
	p.blocks = append(p.blocks, Block{Kind: kind, Depth: depth, Spans: spans})
}

func (p *parser) block(n ast.Node, depth int) {
	switch n.Kind() {
	case ast.KindParagraph, ast.KindTextBlock, ast.KindHeading:
		p.emit(BlockParagraph, depth, p.inline(n))

	case ast.KindList:
		list := n.(*ast.List)
		i := 0
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			p.listItem(item, list, i, depth)
			i++
		}

	case ast.KindCodeBlock, ast.KindFencedCodeBlock:
		p.emit(BlockParagraph, depth, p.literal(n))

	case ast.KindHTMLBlock, ast.KindThematicBreak:
		// dropped

	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			p.block(c, depth)
		}
	}
}

// listItem emits the item's first text block as a list item. Ordered lists
// are not formatted: their items become numbered paragraphs.
func (p *parser) listItem(item ast.Node, list *ast.List, index, depth int) {
	first := true
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.Kind() {
		case ast.KindParagraph, ast.KindTextBlock:
			spans := p.inline(c)
			switch {
			case !first:
				p.emit(BlockParagraph, depth+1, spans)
			case list.IsOrdered():
				number := Span{Text: fmt.Sprintf("%d. ", list.Start+index)}
				p.emit(BlockParagraph, depth, mergeSpans(append([]Span{number}, spans...)))
			default:
				p.emit(BlockListItem, depth, spans)
			}
			first = false
		default:
			p.block(c, depth+1)
		}
	}
}

func (p *parser) literal(n ast.Node) []Span {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(p.source))
	}
	content := strings.TrimRight(Sanitize(sb.String()), "\n")
	if content == "" {
		return nil
	}
	return []Span{{Text: content}}
}

func (p *parser) inline(n ast.Node) []Span {
	var spans []Span
	p.collect(n, false, &spans)
	spans = mergeSpans(spans)
	// trailing hard breaks leave dangling newlines
	if len(spans) > 0 {
		last := &spans[len(spans)-1]
		last.Text = strings.TrimRight(last.Text, "\n ")
		if last.Text == "" {
			spans = spans[:len(spans)-1]
		}
	}
	return spans
}

func (p *parser) collect(n ast.Node, strong bool, spans *[]Span) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			s := string(node.Segment.Value(p.source))
			switch {
			case node.HardLineBreak():
				s += "\n"
			case node.SoftLineBreak():
				s += " "
			}
			p.add(spans, s, strong)
		case *ast.String:
			p.add(spans, string(node.Value), strong)
		case *ast.Emphasis:
			p.collect(node, strong || node.Level >= 2, spans)
		case *ast.AutoLink:
			p.add(spans, string(node.Label(p.source)), strong)
		case *ast.RawHTML:
			// dropped
		default:
			// links, images and code spans keep their text only
			p.collect(node, strong, spans)
		}
	}
}

func (p *parser) add(spans *[]Span, s string, strong bool) {
	s = Sanitize(s)
	if s == "" {
		return
	}
	*spans = append(*spans, Span{Text: s, Strong: strong})
}

func mergeSpans(spans []Span) []Span {
	var out []Span
	for _, s := range spans {
		if n := len(out); n > 0 && out[n-1].Strong == s.Strong {
			out[n-1].Text += s.Text
			continue
		}
		out = append(out, s)
	}
	return out
}

// Sanitize removes control characters other than newline and tab, so
// text cannot carry terminal escape sequences.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r < 0x20, r == 0x7f, r >= 0x80 && r <= 0x9f:
			return -1
		}
		return r
	}, s)
}
