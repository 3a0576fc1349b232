package models

// Role is the server-assigned role of a connected identity. Values the
// client does not know about are kept verbatim.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// User is one entry of the presence roster.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

type RoomMessageRequest struct {
	Room    string `json:"room"`
	Message string `json:"message"`
}

type PrivateMessageRequest struct {
	ToID    string `json:"toSocketId"`
	Message string `json:"message"`
}

type LoginRequest struct {
	Username string `json:"username"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
