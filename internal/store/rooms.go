package store

import (
	"fmt"
	"slices"

	"chat-client/internal/models"
)

// StaleRoomPolicy decides what SetKnownRooms does with a current room that
// is missing from the new list.
type StaleRoomPolicy int

const (
	// KeepStale leaves the current room untouched; Status reports Stale.
	KeepStale StaleRoomPolicy = iota
	// ClearStale resets the current room to none.
	ClearStale
)

// RoomStatus is the display state derived from the current room and the
// authoritative room list.
type RoomStatus int

const (
	NoRoom RoomStatus = iota
	// Pending: a room was requested but no room list has arrived yet.
	Pending
	Joined
	// Stale: the last room list does not contain the current room.
	Stale
)

func (s RoomStatus) String() string {
	switch s {
	case NoRoom:
		return "none"
	case Pending:
		return "pending"
	case Joined:
		return "joined"
	case Stale:
		return "stale"
	default:
		return "unknown"
	}
}

// RoomState tracks the known rooms, in server order, and the current room.
// It is not safe for concurrent use; the router serializes access.
type RoomState struct {
	policy  StaleRoomPolicy
	known   []string
	listed  bool
	current string
}

func NewRoomState(policy StaleRoomPolicy) *RoomState {
	return &RoomState{policy: policy}
}

// SetKnownRooms replaces the known rooms with the server's list.
func (s *RoomState) SetKnownRooms(rooms []string) {
	s.known = slices.Clone(rooms)
	s.listed = true
	if s.policy == ClearStale && s.current != "" && !slices.Contains(s.known, s.current) {
		s.current = ""
	}
}

// RequestJoin optimistically makes room current. Joining the current room
// again is a no-op.
func (s *RoomState) RequestJoin(room string) error {
	if room == "" {
		return fmt.Errorf("%w: room name is required", models.ErrInputRejected)
	}
	s.current = room
	return nil
}

// RequestLeave returns the room to leave. The current room is kept until
// another join or a delete replaces it.
func (s *RoomState) RequestLeave() (string, error) {
	if s.current == "" {
		return "", fmt.Errorf("%w: no current room", models.ErrInputRejected)
	}
	return s.current, nil
}

// RequestDelete clears the current room when it is the one being deleted.
func (s *RoomState) RequestDelete(room string) error {
	if room == "" {
		return fmt.Errorf("%w: room name is required", models.ErrInputRejected)
	}
	if s.current == room {
		s.current = ""
	}
	return nil
}

func (s *RoomState) Current() string {
	return s.current
}

func (s *RoomState) Known() []string {
	return slices.Clone(s.known)
}

func (s *RoomState) Status() RoomStatus {
	switch {
	case s.current == "":
		return NoRoom
	case !s.listed:
		return Pending
	case slices.Contains(s.known, s.current):
		return Joined
	default:
		return Stale
	}
}
