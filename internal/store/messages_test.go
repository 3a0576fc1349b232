package store

import (
	"testing"

	"chat-client/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestMessageLogAppendOnly(t *testing.T) {
	l := NewMessageLog()
	first := models.Message{Kind: models.KindSystem, Body: "welcome"}
	second := models.Message{Kind: models.KindRoom, Sender: "bob", Body: "hi", OriginRoom: "general"}
	l.Append(first)
	l.Append(second)

	got := l.Messages()
	got[0].Body = "edited"
	assert.Equal(t, []models.Message{first, second}, l.Messages())
	assert.Equal(t, 2, l.Len())

	assert.Equal(t, []models.Message{second}, l.Since(1))
	assert.Nil(t, l.Since(2))
	assert.Len(t, l.Since(-3), 2)
}
