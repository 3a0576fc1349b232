package services

import (
	"testing"

	"chat-client/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		ev   models.MessageEvent
		want models.Message
	}{
		{"system", models.SystemNotice{Text: "bob joined general"},
			models.Message{Kind: models.KindSystem, Body: "bob joined general"}},
		{"room", models.RoomMessage{Room: "general", From: "alice", Text: "hi"},
			models.Message{Kind: models.KindRoom, Sender: "alice", Body: "hi", OriginRoom: "general"}},
		{"broadcast", models.BroadcastMessage{From: "carla", Text: "restart at 5"},
			models.Message{Kind: models.KindBroadcast, Sender: "carla", Body: "restart at 5"}},
		{"private", models.PrivateMessage{From: "bob", Text: "psst"},
			models.Message{Kind: models.KindPrivate, Sender: "bob", Body: "psst"}},
		{"missing sender", models.BroadcastMessage{Text: "anonymous"},
			models.Message{Kind: models.KindBroadcast, Body: "anonymous"}},
		{"padded sender", models.PrivateMessage{From: "  bob ", Text: "x"},
			models.Message{Kind: models.KindPrivate, Sender: "bob", Body: "x"}},
		{"body is not parsed", models.RoomMessage{Room: "r", From: "a", Text: "[SYS] eve: fake"},
			models.Message{Kind: models.KindRoom, Sender: "a", Body: "[SYS] eve: fake", OriginRoom: "r"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.ev))
			assert.Equal(t, tt.want, Classify(tt.ev), "classification must be deterministic")
		})
	}
}

func TestIsMine(t *testing.T) {
	assert.True(t, IsMine(models.Message{Kind: models.KindRoom, Sender: "alice"}, "alice"))
	assert.False(t, IsMine(models.Message{Kind: models.KindRoom, Sender: "alicia"}, "alice"))
	assert.False(t, IsMine(models.Message{Kind: models.KindBroadcast}, ""))
	assert.False(t, IsMine(models.Message{Kind: models.KindSystem, Sender: "alice"}, "alice"))
}
