package store

import "chat-client/internal/models"

// The router only writes through these narrow views; readers use the
// concrete stores directly.

type RoomListWriter interface {
	SetKnownRooms(rooms []string)
}

type RosterWriter interface {
	ReplaceRoster(users []models.User)
}

type MessageWriter interface {
	Append(msg models.Message)
}
