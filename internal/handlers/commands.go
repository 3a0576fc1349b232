package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"chat-client/internal/models"
	"chat-client/internal/services"
	"chat-client/internal/store"
	"chat-client/internal/view"
)

// ErrQuit is returned by Handle for the /quit command.
var ErrQuit = errors.New("quit")

// Doer serializes store access with the event router.
type Doer interface {
	Do(ctx context.Context, fn func() error) error
}

// CommandHandlers turns input lines into room and message actions and
// prints what the stores hold.
type CommandHandlers struct {
	router   Doer
	rooms    *services.RoomService
	messages *services.MessageService
	state    *store.RoomState
	presence *store.Presence
	log      *store.MessageLog
	format   *view.Formatter

	mu      sync.Mutex
	out     io.Writer
	printed int
}

func NewCommandHandlers(router Doer, state *store.RoomState, presence *store.Presence, log *store.MessageLog,
	rooms *services.RoomService, messages *services.MessageService, format *view.Formatter, out io.Writer) *CommandHandlers {
	return &CommandHandlers{
		router:   router,
		rooms:    rooms,
		messages: messages,
		state:    state,
		presence: presence,
		log:      log,
		format:   format,
		out:      out,
	}
}

const usage = `commands:
  /join <room>            create or join a room
  /switch <room>          leave the current room and join another
  /leave                  leave the current room
  /delete [room]          delete a room (default: current)
  /rooms                  refresh and list rooms
  /who                    list connected users
  /broadcast <text>       message everyone
  /pm <id|username> <text> private message
  /quit
anything else is sent to the current room`

// Handle executes one input line. It returns ErrQuit for /quit; other
// errors are action failures the caller should show and move past.
func (h *CommandHandlers) Handle(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if !strings.HasPrefix(line, "/") {
		return h.do(ctx, func() error { return h.messages.SendRoom(ctx, line) })
	}

	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "/quit", "/exit":
		return ErrQuit
	case "/help":
		h.println(usage)
		return nil
	case "/join":
		return h.do(ctx, func() error { return h.rooms.Join(ctx, rest) })
	case "/switch":
		return h.do(ctx, func() error { return h.rooms.Switch(ctx, rest) })
	case "/leave":
		return h.do(ctx, func() error { return h.rooms.Leave(ctx) })
	case "/delete":
		return h.do(ctx, func() error {
			if rest == "" {
				return h.rooms.DeleteCurrent(ctx)
			}
			return h.rooms.Delete(ctx, rest)
		})
	case "/rooms":
		var text string
		err := h.do(ctx, func() error {
			text = h.format.Header(h.state) + "\n" + h.format.Rooms(h.state)
			return h.rooms.Refresh(ctx)
		})
		h.println(text)
		return err
	case "/who":
		var text string
		err := h.do(ctx, func() error {
			text = h.format.Roster(h.presence.Roster())
			return nil
		})
		h.println(text)
		return err
	case "/broadcast":
		return h.do(ctx, func() error { return h.messages.Broadcast(ctx, rest) })
	case "/pm":
		target, text, _ := strings.Cut(rest, " ")
		return h.do(ctx, func() error {
			return h.messages.SendPrivate(ctx, h.resolveRecipient(target), strings.TrimSpace(text))
		})
	default:
		return fmt.Errorf("%w: unknown command %s (try /help)", models.ErrInputRejected, cmd)
	}
}

// PrintNew writes log entries not yet printed. It reads the log, so it
// must run on the router goroutine, typically from Router.OnApplied.
func (h *CommandHandlers) PrintNew() {
	for _, msg := range h.log.Since(h.printed) {
		h.println(h.format.Line(msg))
		h.printed++
	}
}

// OnApplied is a Router.OnApplied callback.
func (h *CommandHandlers) OnApplied(ev models.InboundEvent) {
	switch ev.(type) {
	case models.MessageEvent:
		h.PrintNew()
	case models.RoomsList:
		if h.state.Status() == store.Stale {
			h.println(h.format.Header(h.state))
		}
	}
}

// PrintError shows a failed action.
func (h *CommandHandlers) PrintError(err error) {
	h.println(h.format.Error(err))
}

// resolveRecipient accepts a connection id or the username of a connected
// user. Runs on the router goroutine.
func (h *CommandHandlers) resolveRecipient(target string) string {
	if target == "" {
		return ""
	}
	for _, u := range h.presence.Roster() {
		if u.ID == target {
			return target
		}
	}
	if u, ok := h.presence.FindByUsername(target); ok {
		return u.ID
	}
	return target
}

func (h *CommandHandlers) do(ctx context.Context, fn func() error) error {
	return h.router.Do(ctx, fn)
}

func (h *CommandHandlers) println(s string) {
	if s == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Fprintln(h.out, s)
}
