package markdown

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Styles struct {
	Paragraph lipgloss.Style
	Strong    lipgloss.Style
	Bullet    lipgloss.Style
	ListItem  lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Paragraph: lipgloss.NewStyle(),
		Strong: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")),
		Bullet: lipgloss.NewStyle().
			Foreground(lipgloss.Color("63")),
		ListItem: lipgloss.NewStyle(),
	}
}

// Renderer turns Markdown into styled terminal text wrapped to Width.
// A Width of 0 disables wrapping.
type Renderer struct {
	Width  int
	Styles Styles
}

func NewRenderer(width int) Renderer {
	return Renderer{Width: width, Styles: DefaultStyles()}
}

func (r Renderer) Render(src string) string {
	blocks := Parse(src)

	var b strings.Builder
	for i, block := range blocks {
		if i > 0 {
			// paragraphs are separated by a blank line, list entries are not
			if blocks[i-1].inList() && block.inList() {
				b.WriteString("\n")
			} else {
				b.WriteString("\n\n")
			}
		}
		b.WriteString(r.renderBlock(block))
	}
	return b.String()
}

func (r Renderer) renderBlock(block Block) string {
	indent := strings.Repeat("  ", block.Depth)
	inline := r.renderSpans(block.Spans)

	switch block.Kind {
	case BlockListItem:
		bullet := r.Styles.Bullet.Render("• ")
		body := r.wrap(r.Styles.ListItem, inline, len(indent)+2)
		return lipgloss.JoinHorizontal(lipgloss.Top, indent, bullet, body)
	default:
		body := r.wrap(r.Styles.Paragraph, inline, len(indent))
		if indent == "" {
			return body
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, indent, body)
	}
}

func (r Renderer) renderSpans(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Strong {
			b.WriteString(r.Styles.Strong.Render(s.Text))
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}

func (r Renderer) wrap(style lipgloss.Style, s string, used int) string {
	if r.Width <= 0 {
		return style.Render(s)
	}
	width := r.Width - used
	if width < 10 {
		width = 10
	}
	return style.Width(width).Render(s)
}
