// Package view renders store contents for a terminal. Text is produced
// here from structured messages; nothing downstream parses it back.
package view

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"chat-client/internal/models"
	"chat-client/internal/services"
	"chat-client/internal/store"

	"github.com/charmbracelet/lipgloss"
)

// Class is the display class of a message line.
type Class string

const (
	ClassSystem    Class = "system"
	ClassMine      Class = "mine"
	ClassRoom      Class = "room"
	ClassBroadcast Class = "broadcast"
	ClassPrivate   Class = "private"
)

// ClassOf picks the display class. System notices win over authorship, and
// authorship wins over kind.
func ClassOf(msg models.Message, username string) Class {
	switch {
	case msg.Kind == models.KindSystem:
		return ClassSystem
	case services.IsMine(msg, username):
		return ClassMine
	case msg.Kind == models.KindBroadcast:
		return ClassBroadcast
	case msg.Kind == models.KindPrivate:
		return ClassPrivate
	default:
		return ClassRoom
	}
}

// Initial is the avatar letter for sender, or "" when there is none.
func Initial(sender string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(sender))
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}

type Formatter struct {
	username string
	styles   map[Class]lipgloss.Style
	muted    lipgloss.Style
	accent   lipgloss.Style
	avatar   lipgloss.Style
}

// NewFormatter styles output for renderer; username marks the local
// user's own messages.
func NewFormatter(r *lipgloss.Renderer, username string) *Formatter {
	return &Formatter{
		username: username,
		styles: map[Class]lipgloss.Style{
			ClassSystem:    r.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
			ClassMine:      r.NewStyle().Foreground(lipgloss.Color("10")),
			ClassRoom:      r.NewStyle(),
			ClassBroadcast: r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
			ClassPrivate:   r.NewStyle().Foreground(lipgloss.Color("13")),
		},
		muted:  r.NewStyle().Foreground(lipgloss.Color("8")),
		accent: r.NewStyle().Bold(true),
		avatar: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
	}
}

// Line renders one message, e.g. "(B) [general] bob: hi" or "[SYS] welcome".
// Messages with a sender lead with the sender's avatar initial.
func (f *Formatter) Line(msg models.Message) string {
	var prefix string
	switch msg.Kind {
	case models.KindSystem:
		prefix = "[SYS]"
	case models.KindBroadcast:
		prefix = "[GLOBAL]"
	case models.KindPrivate:
		prefix = "[PRIV]"
	default:
		prefix = "[" + msg.OriginRoom + "]"
	}

	var text string
	if msg.Kind == models.KindSystem || msg.Sender == "" {
		text = prefix + " " + msg.Body
	} else {
		text = prefix + " " + msg.Sender + ": " + msg.Body
	}
	line := f.styles[ClassOf(msg, f.username)].Render(text)
	if msg.Kind == models.KindSystem {
		return line
	}
	if initial := Initial(msg.Sender); initial != "" {
		return f.avatar.Render("("+initial+")") + " " + line
	}
	return line
}

// Header shows the current room and whether the server still lists it.
func (f *Formatter) Header(rooms *store.RoomState) string {
	current := rooms.Current()
	switch rooms.Status() {
	case store.NoRoom:
		return f.accent.Render("Room: ---")
	case store.Pending:
		return f.accent.Render("Room: "+current) + f.muted.Render(" (joining)")
	case store.Stale:
		return f.accent.Render("Room: "+current) + f.muted.Render(" (no longer listed)")
	default:
		return f.accent.Render("Room: " + current)
	}
}

// Rooms lists the known rooms in server order, marking the current one.
func (f *Formatter) Rooms(rooms *store.RoomState) string {
	known := rooms.Known()
	if len(known) == 0 {
		return f.muted.Render("no rooms")
	}
	lines := make([]string, 0, len(known))
	for _, name := range known {
		if name == rooms.Current() {
			lines = append(lines, f.accent.Render("* "+name))
		} else {
			lines = append(lines, "  "+name)
		}
	}
	return strings.Join(lines, "\n")
}

// Roster lists connected users as "username (role) - id".
func (f *Formatter) Roster(users []models.User) string {
	if len(users) == 0 {
		return f.muted.Render("nobody online")
	}
	lines := make([]string, 0, len(users))
	for _, u := range users {
		line := fmt.Sprintf("%s (%s) - %s", u.Username, u.Role, u.ID)
		if u.Username == f.username {
			line = f.styles[ClassMine].Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Error renders a failed user action.
func (f *Formatter) Error(err error) string {
	return f.styles[ClassBroadcast].Render("! " + err.Error())
}
