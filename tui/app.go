package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/hrithikkoduri/GraphRAG/backend"
	"github.com/hrithikkoduri/GraphRAG/logger"
	"github.com/hrithikkoduri/GraphRAG/model"
)

const (
	placeholderIdle    = "Ask a question..."
	placeholderPending = "AI is thinking..."

	inputHeight = 3
	inputLimit  = 4000
)

// replyMsg is sent when the backend answers the message with id.
type replyMsg struct {
	id    string
	reply string
}

// failureMsg is sent when the request for the message with id fails.
type failureMsg struct {
	id  string
	err error
}

// Model is the conversation view. It owns the session; all state changes
// happen on the bubbletea event loop.
type Model struct {
	session    *model.Session
	client     backend.Querier
	log        logrus.FieldLogger
	input      textarea.Model
	transcript viewport.Model
	spinner    spinner.Model
	rendered   map[string]string // assistant message id -> rendered markdown
	endpoint   string
	inflight   string // id of the user message awaiting a reply
	notice     string // last failure, shown until the next send
	width      int
	height     int
	scrolled   bool // initial jump to the end done
	scrollGen  int
	quitting   bool
}

func NewModel(client backend.Querier, log logrus.FieldLogger) Model {
	ta := textarea.New()
	ta.Placeholder = placeholderIdle
	ta.CharLimit = inputLimit
	ta.ShowLineNumbers = false
	ta.Prompt = "> "
	ta.SetHeight(inputHeight)
	// enter submits, alt+enter starts a new line
	ta.KeyMap.InsertNewline.SetKeys("alt+enter")
	ta.Focus()

	if log == nil {
		log = logger.Entry()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = thinkingStyle

	m := Model{
		session:    model.NewSession(),
		client:     client,
		log:        log,
		input:      ta,
		transcript: viewport.New(0, 0),
		spinner:    sp,
		rendered:   make(map[string]string),
		width:      120,
		height:     30,
	}
	m.layout()
	return m
}

// SetEndpoint sets the endpoint shown in the title bar.
func (m *Model) SetEndpoint(endpoint string) {
	m.endpoint = endpoint
}

func (m Model) Session() *model.Session {
	return m.session
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.refresh()
		m.scrolled = true
		m.transcript.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case replyMsg:
		return m.resolve(msg)

	case failureMsg:
		return m.reject(msg)

	case spinner.TickMsg:
		if !m.session.Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd

	case scrollTickMsg:
		return m, m.stepScroll(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "enter":
		return m.submit()

	case "pgup":
		m.scrollUp(m.transcript.Height)
		return m, nil

	case "pgdown":
		m.scrollDown(m.transcript.Height)
		return m, nil
	}

	// input is disabled while a request is outstanding
	if m.session.Pending() {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.SetDraft(m.input.Value())
	return m, cmd
}

// submit sends the draft. It does nothing while a request is pending or
// when the draft is blank.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.session.Pending() {
		return m, nil
	}
	m.session.SetDraft(m.input.Value())

	msg, ok := m.session.Begin(m.session.Draft())
	if !ok {
		return m, nil
	}

	m.inflight = msg.ID
	m.notice = ""
	m.input.Reset()
	m.input.Blur()
	m.input.Placeholder = placeholderPending

	m.log.WithFields(logrus.Fields{
		"session_id": m.session.ID,
		"message_id": msg.ID,
		"length":     len(msg.Content),
	}).Info("sending query")

	m.refresh()
	scroll := m.scrollToEnd()
	return m, tea.Batch(sendQuery(m.client, msg), m.spinner.Tick, scroll)
}

func (m Model) resolve(msg replyMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.inflight {
		return m, nil
	}
	reply, ok := m.session.Resolve(msg.reply)
	if !ok {
		return m, nil
	}
	m.inflight = ""

	m.log.WithFields(logrus.Fields{
		"session_id": m.session.ID,
		"message_id": reply.ID,
		"reply_to":   msg.id,
		"length":     len(reply.Content),
	}).Info("received reply")

	return m.idle()
}

// reject ends a failed request. The failure goes to the log and the
// status line; the transcript keeps only the user message.
func (m Model) reject(msg failureMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.inflight || !m.session.Reject() {
		return m, nil
	}
	m.inflight = ""
	m.notice = "The request failed. Send a message to try again."

	m.log.WithFields(logrus.Fields{
		"session_id": m.session.ID,
		"message_id": msg.id,
	}).WithError(msg.err).Error("generate-response request failed")

	return m.idle()
}

func (m Model) idle() (tea.Model, tea.Cmd) {
	m.input.Placeholder = placeholderIdle
	focus := m.input.Focus()
	m.refresh()
	scroll := m.scrollToEnd()
	return m, tea.Batch(focus, scroll)
}

func sendQuery(client backend.Querier, msg model.Message) tea.Cmd {
	id, query := msg.ID, msg.Content
	return func() tea.Msg {
		ctx := backend.WithRequestID(context.Background(), id)
		reply, err := client.SendQuery(ctx, query)
		if err != nil {
			return failureMsg{id: id, err: err}
		}
		return replyMsg{id: id, reply: reply}
	}
}

func (m *Model) layout() {
	w := m.width
	if w < 20 {
		w = 20
	}
	m.input.SetWidth(w - inputStyle.GetHorizontalFrameSize())

	// title, notice, input box and help line
	chrome := 1 + 1 + inputHeight + inputStyle.GetVerticalFrameSize() + 1
	h := m.height - chrome
	if h < 1 {
		h = 1
	}
	if m.transcript.Width != w {
		m.rendered = make(map[string]string)
	}
	m.transcript.Width = w
	m.transcript.Height = h
}

// refresh re-renders the transcript, keeping the scroll position.
func (m *Model) refresh() {
	offset := m.transcript.YOffset
	m.transcript.SetContent(m.renderTranscript())
	m.transcript.SetYOffset(offset)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// title bar
	title := titleStyle.Render("GraphRAG Chat")
	info := dimStyle.Render("  " + m.endpoint)
	b.WriteString(title + info + "\n")

	b.WriteString(m.transcript.View() + "\n")

	if m.notice != "" {
		b.WriteString(noticeStyle.Render(" " + m.notice))
	}
	b.WriteString("\n")

	box := inputStyle
	if m.session.Pending() {
		box = pendingInputStyle
	}
	b.WriteString(box.Render(m.input.View()) + "\n")

	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHelp() string {
	send := helpStyle.Render("Enter: send")
	if !m.session.Pending() && strings.TrimSpace(m.input.Value()) != "" {
		send = activeHelpStyle.Render("Enter: send")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		"  ", send,
		helpStyle.Render("  Alt+Enter: newline  PgUp/PgDn: scroll  Esc: quit"),
	)
}
