package tui

import (
	"strings"

	"github.com/hrithikkoduri/GraphRAG/markdown"
	"github.com/hrithikkoduri/GraphRAG/model"
)

const thinkingLabel = "AI is thinking"

// renderTranscript renders all messages, plus the pending indicator, into
// the content of the transcript viewport.
func (m Model) renderTranscript() string {
	var lines []string
	maxWidth := m.transcript.Width - 2 // small margin
	if maxWidth < 20 {
		maxWidth = 20
	}

	for _, msg := range m.session.Transcript() {
		// role header
		switch msg.Role {
		case model.RoleUser:
			lines = append(lines, userRoleStyle.Render(pad(" YOU", maxWidth)))
		case model.RoleAssistant:
			lines = append(lines, assistantRoleStyle.Render(pad(" ASSISTANT", maxWidth)))
		}

		lines = append(lines, m.renderBody(msg, maxWidth-2)...)

		// blank separator
		lines = append(lines, "")
	}

	if m.session.Pending() {
		lines = append(lines, " "+m.spinner.View()+" "+thinkingStyle.Render(thinkingLabel))
	}

	return strings.Join(lines, "\n")
}

// renderBody renders user text verbatim and assistant text as Markdown.
func (m Model) renderBody(msg model.Message, width int) []string {
	var lines []string
	if msg.Role == model.RoleAssistant {
		rendered, ok := m.rendered[msg.ID]
		if !ok {
			rendered = markdown.NewRenderer(width).Render(msg.Content)
			m.rendered[msg.ID] = rendered
		}
		for _, l := range strings.Split(rendered, "\n") {
			lines = append(lines, " "+l)
		}
		return lines
	}

	for _, wl := range wrapText(markdown.Sanitize(msg.Content), width) {
		lines = append(lines, " "+userTextStyle.Render(wl))
	}
	return lines
}

// wrapText splits text into lines that fit within maxWidth.
func wrapText(text string, maxWidth int) []string {
	var result []string
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			result = append(result, "")
			continue
		}
		runes := []rune(line)
		for len(runes) > maxWidth {
			result = append(result, string(runes[:maxWidth]))
			runes = runes[maxWidth:]
		}
		result = append(result, string(runes))
	}
	return result
}

func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}
