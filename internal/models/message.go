package models

// Kind tells the display layer where a message came from.
type Kind string

const (
	KindSystem    Kind = "system"
	KindRoom      Kind = "room"
	KindBroadcast Kind = "broadcast"
	KindPrivate   Kind = "private"
)

// Message is a classified inbound message. Sender is empty for system
// notices and for payloads that carried no sender. OriginRoom is only set
// for room messages.
type Message struct {
	Kind       Kind   `json:"kind"`
	Sender     string `json:"sender"`
	Body       string `json:"body"`
	OriginRoom string `json:"origin_room,omitempty"`
}
