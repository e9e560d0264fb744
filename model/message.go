package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a conversation transcript. Messages are never
// modified after they are appended.
type Message struct {
	ID      string
	Role    Role
	Content string // raw text; assistant content may hold Markdown
	Time    time.Time
}

func NewMessage(role Role, content string) Message {
	return Message{
		ID:      uuid.NewString(),
		Role:    role,
		Content: content,
		Time:    time.Now(),
	}
}
