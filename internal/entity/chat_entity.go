package entity

import (
	"time"

	"github.com/google/uuid"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderBot
}

// ChatMessage is one turn of a chat log. Order in the owning slice is the conversation order.
type ChatMessage struct {
	Sender Sender
	Text   string
}

// Chat pairs accumulated study content with a message log, owned by one user.
type Chat struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Summary   string
	Content   string
	Messages  []ChatMessage
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// HasContent reports whether questions can be asked against the chat.
func (c *Chat) HasContent() bool {
	return c.Content != ""
}
