package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Label renders the sender the way the transcript shows it: capitalized with a trailing colon.
func (s Sender) Label() string {
	if s == "" {
		return ":"
	}
	name := string(s)
	return strings.ToUpper(name[:1]) + name[1:] + ":"
}

// Message is a single turn in the transcript. It is never mutated after creation.
type Message struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	ReplyTo   string    `json:"replyTo,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserMessage creates a message authored by the user.
func NewUserMessage(text string) Message {
	return NewMessage(SenderUser, text, "")
}

// NewBotReply creates the bot message answering the user message with id replyTo.
func NewBotReply(replyTo, text string) Message {
	return NewMessage(SenderBot, text, replyTo)
}

// NewMessage stamps a fresh message with an id and creation time.
func NewMessage(sender Sender, text, replyTo string) Message {
	return Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		ReplyTo:   replyTo,
		CreatedAt: time.Now().UTC(),
	}
}
