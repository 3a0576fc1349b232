package websocket

import (
	"context"
	"errors"
	"sync/atomic"

	"chat-client/internal/models"
	"chat-client/internal/services"
	"chat-client/internal/store"
	"chat-client/pkg/logger"
)

// State is the router's connection state.
type State int32

const (
	Disconnected State = iota
	Connected
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connected:
		return "connected"
	default:
		return "unknown"
	}
}

// Transport is the part of Client the router depends on.
type Transport interface {
	Frames() <-chan models.Frame
	Done() <-chan struct{}
	services.Emitter
}

type action struct {
	fn   func() error
	err  error
	done chan struct{}
}

// Router applies inbound events to the stores, one at a time and in
// arrival order, on a single goroutine. Local actions submitted through Do
// run on that same goroutine, so the stores need no locking.
type Router struct {
	transport Transport
	rooms     store.RoomListWriter
	presence  store.RosterWriter
	messages  store.MessageWriter

	actions   chan *action
	done      chan struct{}
	started   atomic.Bool
	state     atomic.Int32
	dropped   atomic.Int64
	onApplied func(models.InboundEvent)
	log       *logger.Logger
}

func NewRouter(t Transport, rooms store.RoomListWriter, presence store.RosterWriter, messages store.MessageWriter) *Router {
	return &Router{
		transport: t,
		rooms:     rooms,
		presence:  presence,
		messages:  messages,
		actions:   make(chan *action),
		done:      make(chan struct{}),
		log:       logger.GlobalLogger,
	}
}

// SetLogger overrides logger (optional). Call before Start.
func (r *Router) SetLogger(l *logger.Logger) {
	if l != nil {
		r.log = l
	}
}

// OnApplied registers a callback run on the router goroutine after each
// event has been applied. Call before Start.
func (r *Router) OnApplied(fn func(models.InboundEvent)) { r.onApplied = fn }

func (r *Router) State() State { return State(r.state.Load()) }

// Dropped counts inbound frames discarded as unrecognized.
func (r *Router) Dropped() int64 { return r.dropped.Load() }

// Done is closed once the router has returned to Disconnected.
func (r *Router) Done() <-chan struct{} { return r.done }

// Start enters Connected, requests the room list and begins applying
// events. The router stops when ctx is cancelled or the transport ends;
// events still queued at cancellation are discarded.
func (r *Router) Start(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return errors.New("router already started")
	}
	r.state.Store(int32(Connected))
	if err := r.transport.Emit(ctx, models.Outbound{Event: models.RequestListRooms}); err != nil {
		r.log.Error("list rooms request failed: %v", err)
	}
	go r.run(ctx)
	return nil
}

// Run is Start followed by waiting for the router to stop. Use Start when
// the caller has other work to do while events are applied.
func (r *Router) Run(ctx context.Context) error {
	if err := r.Start(ctx); err != nil {
		return err
	}
	<-r.done
	return nil
}

// Do runs fn on the router goroutine and returns its error. While the
// router is not running, fn runs on the caller's goroutine.
func (r *Router) Do(ctx context.Context, fn func() error) error {
	if r.State() != Connected {
		return fn()
	}
	a := &action{fn: fn, done: make(chan struct{})}
	select {
	case r.actions <- a:
		<-a.done
		return a.err
	case <-r.done:
		return fn()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Router) run(ctx context.Context) {
	defer func() {
		r.state.Store(int32(Disconnected))
		close(r.done)
	}()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("router stopped: %v", ctx.Err())
			return

		case <-r.transport.Done():
			r.drain(ctx)
			r.log.Info("router stopped: transport closed")
			return

		case f := <-r.transport.Frames():
			if ctx.Err() != nil {
				return
			}
			r.apply(f)

		case a := <-r.actions:
			a.err = a.fn()
			close(a.done)
		}
	}
}

// drain applies frames the transport delivered before it closed.
func (r *Router) drain(ctx context.Context) {
	for {
		select {
		case f := <-r.transport.Frames():
			if ctx.Err() != nil {
				return
			}
			r.apply(f)
		default:
			return
		}
	}
}

func (r *Router) apply(f models.Frame) {
	ev, err := models.DecodeFrame(f)
	if err != nil {
		r.dropped.Add(1)
		r.log.Warn("dropping inbound event: %v", err)
		return
	}
	r.Dispatch(ev)
}

// Dispatch applies exactly one store mutation for ev. It must only be
// called from the router goroutine, or while the router is stopped.
func (r *Router) Dispatch(ev models.InboundEvent) {
	switch e := ev.(type) {
	case models.RoomsList:
		r.rooms.SetKnownRooms(e.Rooms)
	case models.PresenceUpdate:
		r.presence.ReplaceRoster(e.Users)
	case models.MessageEvent:
		r.messages.Append(services.Classify(e))
	default:
		r.dropped.Add(1)
		r.log.Warn("dropping inbound event of type %T", ev)
		return
	}
	if r.onApplied != nil {
		r.onApplied(ev)
	}
}
