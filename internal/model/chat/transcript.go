package chat

// Transcript keeps messages in display order, oldest first.
// It has no size bound and does no deduplication.
// A Transcript is owned by the UI loop and is not safe for concurrent use.
type Transcript struct {
	messages []Message
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{messages: make([]Message, 0, 16)}
}

// Append adds a message at the end.
func (t *Transcript) Append(message Message) {
	t.messages = append(t.messages, message)
}

// Len reports how many messages have been appended.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Last returns the newest message, if any.
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// Messages returns a copy of the transcript in display order.
func (t *Transcript) Messages() []Message {
	copied := make([]Message, len(t.messages))
	copy(copied, t.messages)
	return copied
}

// ReplyFor finds the bot message answering the user message with the given id.
func (t *Transcript) ReplyFor(id string) (Message, bool) {
	for _, m := range t.messages {
		if m.Sender == SenderBot && m.ReplyTo == id {
			return m, true
		}
	}
	return Message{}, false
}
