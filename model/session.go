package model

import (
	"strings"

	"github.com/google/uuid"
)

// Session holds the state of one open conversation: the transcript, the
// text being composed and whether a request is outstanding.
//
// A session is either idle or sending. Begin moves it to sending,
// Resolve and Reject move it back to idle. At most one request is
// outstanding at any time.
type Session struct {
	ID string

	transcript []Message
	draft      string
	pending    bool
}

func NewSession() *Session {
	return &Session{ID: uuid.NewString()}
}

// Transcript returns a copy of the messages in the order they were added.
func (s *Session) Transcript() []Message {
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

func (s *Session) Len() int { return len(s.transcript) }

func (s *Session) Draft() string { return s.draft }

func (s *Session) SetDraft(text string) { s.draft = text }

func (s *Session) Pending() bool { return s.pending }

// Begin starts a send of text. It appends the user message and clears the
// draft. It reports false, leaving the session untouched, when text is
// blank or a request is already pending.
func (s *Session) Begin(text string) (Message, bool) {
	text = strings.TrimSpace(text)
	if text == "" || s.pending {
		return Message{}, false
	}
	msg := NewMessage(RoleUser, text)
	s.transcript = append(s.transcript, msg)
	s.draft = ""
	s.pending = true
	return msg, true
}

// Resolve completes the pending request with the assistant's reply.
func (s *Session) Resolve(reply string) (Message, bool) {
	if !s.pending {
		return Message{}, false
	}
	msg := NewMessage(RoleAssistant, reply)
	s.transcript = append(s.transcript, msg)
	s.pending = false
	return msg, true
}

// Reject ends the pending request without a reply. Nothing is appended.
func (s *Session) Reject() bool {
	if !s.pending {
		return false
	}
	s.pending = false
	return true
}
