package services

import (
	"context"
	"fmt"

	"chat-client/internal/models"
	"chat-client/internal/store"
)

// RoomService pairs the optimistic RoomState updates with the matching
// outbound requests. Its methods must run on the router goroutine.
type RoomService struct {
	rooms *store.RoomState
	out   Emitter
}

func NewRoomService(rooms *store.RoomState, out Emitter) *RoomService {
	return &RoomService{rooms: rooms, out: out}
}

// Refresh asks the server for the authoritative room list.
func (s *RoomService) Refresh(ctx context.Context) error {
	return s.out.Emit(ctx, models.Outbound{Event: models.RequestListRooms})
}

// Join creates or joins room and makes it current without waiting for the
// server.
func (s *RoomService) Join(ctx context.Context, room string) error {
	if err := s.rooms.RequestJoin(room); err != nil {
		return err
	}
	return s.out.Emit(ctx, models.Outbound{Event: models.RequestCreateOrJoinRoom, Data: room})
}

// Switch leaves the current room, if any, before joining room. Selecting
// the current room again leaves and rejoins it.
func (s *RoomService) Switch(ctx context.Context, room string) error {
	if room == "" {
		return fmt.Errorf("%w: room name is required", models.ErrInputRejected)
	}
	if current := s.rooms.Current(); current != "" {
		if err := s.out.Emit(ctx, models.Outbound{Event: models.RequestLeaveRoom, Data: current}); err != nil {
			return err
		}
	}
	return s.Join(ctx, room)
}

// Leave sends a leave request for the current room. The room stays current
// until the next join or delete.
func (s *RoomService) Leave(ctx context.Context) error {
	room, err := s.rooms.RequestLeave()
	if err != nil {
		return err
	}
	return s.out.Emit(ctx, models.Outbound{Event: models.RequestLeaveRoom, Data: room})
}

func (s *RoomService) Delete(ctx context.Context, room string) error {
	if err := s.rooms.RequestDelete(room); err != nil {
		return err
	}
	return s.out.Emit(ctx, models.Outbound{Event: models.RequestDeleteRoom, Data: room})
}

func (s *RoomService) DeleteCurrent(ctx context.Context) error {
	current := s.rooms.Current()
	if current == "" {
		return fmt.Errorf("%w: no current room", models.ErrInputRejected)
	}
	return s.Delete(ctx, current)
}
