package services

import (
	"context"
	"fmt"

	"chat-client/internal/models"
	"chat-client/internal/store"
)

// MessageService sends chat messages. Nothing is appended locally: a sent
// message shows up in the log when the server echoes it back.
type MessageService struct {
	rooms *store.RoomState
	out   Emitter
}

func NewMessageService(rooms *store.RoomState, out Emitter) *MessageService {
	return &MessageService{rooms: rooms, out: out}
}

// SendRoom posts text to the current room.
func (s *MessageService) SendRoom(ctx context.Context, text string) error {
	room := s.rooms.Current()
	if room == "" {
		return fmt.Errorf("%w: join or create a room first", models.ErrInputRejected)
	}
	return s.out.Emit(ctx, models.Outbound{
		Event: models.RequestRoomMessage,
		Data:  models.RoomMessageRequest{Room: room, Message: text},
	})
}

// Broadcast sends text to every connected user. The server decides whether
// the session's role may broadcast.
func (s *MessageService) Broadcast(ctx context.Context, text string) error {
	return s.out.Emit(ctx, models.Outbound{Event: models.RequestBroadcast, Data: text})
}

func (s *MessageService) SendPrivate(ctx context.Context, toID, text string) error {
	if toID == "" {
		return fmt.Errorf("%w: recipient id is required", models.ErrInputRejected)
	}
	return s.out.Emit(ctx, models.Outbound{
		Event: models.RequestPrivateMessage,
		Data:  models.PrivateMessageRequest{ToID: toID, Message: text},
	})
}
