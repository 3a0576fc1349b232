package services

import (
	"strings"

	"chat-client/internal/models"
)

// Classify maps a message-bearing event to the message shown in the log.
// It has no failure path: a missing sender becomes "".
func Classify(ev models.MessageEvent) models.Message {
	switch e := ev.(type) {
	case models.SystemNotice:
		return models.Message{Kind: models.KindSystem, Body: e.Text}
	case models.RoomMessage:
		return models.Message{Kind: models.KindRoom, Sender: cleanSender(e.From), Body: e.Text, OriginRoom: e.Room}
	case models.BroadcastMessage:
		return models.Message{Kind: models.KindBroadcast, Sender: cleanSender(e.From), Body: e.Text}
	case models.PrivateMessage:
		return models.Message{Kind: models.KindPrivate, Sender: cleanSender(e.From), Body: e.Text}
	default:
		return models.Message{Kind: models.KindSystem}
	}
}

// IsMine reports whether msg was authored by username. System notices are
// never anyone's.
func IsMine(msg models.Message, username string) bool {
	return msg.Kind != models.KindSystem && msg.Sender != "" && msg.Sender == username
}

func cleanSender(from string) string {
	return strings.TrimSpace(from)
}
