package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const scrollFrame = time.Second / 60

// scrollTickMsg advances a smooth scroll. gen identifies the animation so
// ticks of a superseded one are dropped.
type scrollTickMsg struct {
	gen int
}

func scrollTick(gen int) tea.Cmd {
	return tea.Tick(scrollFrame, func(time.Time) tea.Msg {
		return scrollTickMsg{gen: gen}
	})
}

// scrollToEnd brings the end of the transcript into view. The first call
// jumps there immediately, later calls animate.
func (m *Model) scrollToEnd() tea.Cmd {
	if !m.scrolled {
		m.scrolled = true
		m.transcript.GotoBottom()
		return nil
	}
	m.scrollGen++
	if m.atBottom() {
		return nil
	}
	return scrollTick(m.scrollGen)
}

func (m *Model) stepScroll(msg scrollTickMsg) tea.Cmd {
	if msg.gen != m.scrollGen {
		return nil
	}
	remaining := m.maxOffset() - m.transcript.YOffset
	if remaining <= 0 {
		return nil
	}
	step := remaining / 4
	if step < 1 {
		step = 1
	}
	before := m.transcript.YOffset
	m.transcript.SetYOffset(before + step)
	if m.atBottom() || m.transcript.YOffset == before {
		return nil
	}
	return scrollTick(m.scrollGen)
}

func (m *Model) scrollUp(n int) {
	m.scrollGen++ // cancel any animation
	offset := m.transcript.YOffset - n
	if offset < 0 {
		offset = 0
	}
	m.transcript.SetYOffset(offset)
}

func (m *Model) scrollDown(n int) {
	m.scrollGen++
	offset := m.transcript.YOffset + n
	if offset > m.maxOffset() {
		offset = m.maxOffset()
	}
	m.transcript.SetYOffset(offset)
}

func (m Model) maxOffset() int {
	offset := m.transcript.TotalLineCount() - m.transcript.Height
	if offset < 0 {
		offset = 0
	}
	return offset
}

func (m Model) atBottom() bool {
	return m.transcript.YOffset >= m.maxOffset()
}
