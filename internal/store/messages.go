package store

import (
	"slices"

	"chat-client/internal/models"
)

// MessageLog is an append-only, unbounded sequence of classified messages.
type MessageLog struct {
	messages []models.Message
}

func NewMessageLog() *MessageLog {
	return &MessageLog{}
}

func (l *MessageLog) Append(msg models.Message) {
	l.messages = append(l.messages, msg)
}

func (l *MessageLog) Len() int {
	return len(l.messages)
}

func (l *MessageLog) Messages() []models.Message {
	return slices.Clone(l.messages)
}

// Since returns the messages appended after the first n.
func (l *MessageLog) Since(n int) []models.Message {
	if n < 0 {
		n = 0
	}
	if n >= len(l.messages) {
		return nil
	}
	return slices.Clone(l.messages[n:])
}
