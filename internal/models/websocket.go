package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type EventName string

// Inbound event names (server -> client).
const (
	EventRooms          EventName = "rooms"
	EventSystem         EventName = "system"
	EventRoomMessage    EventName = "roomMessage"
	EventBroadcast      EventName = "broadcast"
	EventPrivateMessage EventName = "privateMessage"
	EventPresence       EventName = "presence"
)

// Outbound request names (client -> server). roomMessage, broadcast and
// privateMessage share their names with the inbound events.
const (
	RequestListRooms        EventName = "listRooms"
	RequestCreateOrJoinRoom EventName = "createOrJoinRoom"
	RequestLeaveRoom        EventName = "leaveRoom"
	RequestDeleteRoom       EventName = "deleteRoom"
	RequestRoomMessage      EventName = "roomMessage"
	RequestBroadcast        EventName = "broadcast"
	RequestPrivateMessage   EventName = "privateMessage"
)

// Frame is the JSON envelope carried by every WebSocket text frame.
type Frame struct {
	Event EventName       `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Outbound is a request queued for the write pump. Data is marshaled when
// the frame is written.
type Outbound struct {
	Event EventName `json:"event"`
	Data  any       `json:"data,omitempty"`
}

// InboundEvent is the decoded form of an inbound frame. The set of
// implementations is closed: RoomsList, SystemNotice, RoomMessage,
// BroadcastMessage, PrivateMessage and PresenceUpdate.
type InboundEvent interface {
	Name() EventName
	inbound()
}

// MessageEvent is implemented by the four inbound events that end up in
// the message log.
type MessageEvent interface {
	InboundEvent
	messageBearing()
}

type RoomsList struct {
	Rooms []string
}

type SystemNotice struct {
	Text string `json:"msg"`
}

type RoomMessage struct {
	Room string `json:"room"`
	From string `json:"from"`
	Text string `json:"message"`
}

type BroadcastMessage struct {
	From string `json:"from"`
	Text string `json:"message"`
}

type PrivateMessage struct {
	From string `json:"from"`
	Text string `json:"message"`
}

type PresenceUpdate struct {
	Users []User `json:"clients"`
}

func (RoomsList) Name() EventName        { return EventRooms }
func (SystemNotice) Name() EventName     { return EventSystem }
func (RoomMessage) Name() EventName      { return EventRoomMessage }
func (BroadcastMessage) Name() EventName { return EventBroadcast }
func (PrivateMessage) Name() EventName   { return EventPrivateMessage }
func (PresenceUpdate) Name() EventName   { return EventPresence }

func (RoomsList) inbound()        {}
func (SystemNotice) inbound()     {}
func (RoomMessage) inbound()      {}
func (BroadcastMessage) inbound() {}
func (PrivateMessage) inbound()   {}
func (PresenceUpdate) inbound()   {}

func (SystemNotice) messageBearing()     {}
func (RoomMessage) messageBearing()      {}
func (BroadcastMessage) messageBearing() {}
func (PrivateMessage) messageBearing()   {}

// DecodeFrame turns a raw envelope into its tagged event. Unknown event
// names and payloads of the wrong shape are reported as
// ErrUnrecognizedEvent.
func DecodeFrame(f Frame) (InboundEvent, error) {
	switch f.Event {
	case EventRooms:
		var rooms []string
		if err := decodeData(f, &rooms); err != nil {
			return nil, err
		}
		if rooms == nil {
			rooms = []string{}
		}
		return RoomsList{Rooms: rooms}, nil
	case EventSystem:
		var ev SystemNotice
		if err := decodeObject(f, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case EventRoomMessage:
		var ev RoomMessage
		if err := decodeObject(f, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case EventBroadcast:
		var ev BroadcastMessage
		if err := decodeObject(f, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case EventPrivateMessage:
		var ev PrivateMessage
		if err := decodeObject(f, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case EventPresence:
		var ev PresenceUpdate
		if err := decodeObject(f, &ev); err != nil {
			return nil, err
		}
		if ev.Users == nil {
			ev.Users = []User{}
		}
		return ev, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnrecognizedEvent, f.Event)
	}
}

func decodeData(f Frame, v any) error {
	if len(f.Data) == 0 {
		return fmt.Errorf("%w: %s without payload", ErrUnrecognizedEvent, f.Event)
	}
	if err := json.Unmarshal(f.Data, v); err != nil {
		return fmt.Errorf("%w: %s payload: %v", ErrUnrecognizedEvent, f.Event, err)
	}
	return nil
}

// decodeObject is decodeData for object payloads, where a null payload is
// as malformed as a missing one.
func decodeObject(f Frame, v any) error {
	if bytes.Equal(bytes.TrimSpace(f.Data), []byte("null")) {
		return fmt.Errorf("%w: %s with null payload", ErrUnrecognizedEvent, f.Event)
	}
	return decodeData(f, v)
}
