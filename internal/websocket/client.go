package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"chat-client/internal/config"
	"chat-client/internal/models"
	"chat-client/pkg/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client is the WebSocket link to the chat server. ReadPump decodes frames
// onto Frames(); WritePump drains the outbound queue. Reconnection is not
// handled here: once Done() is closed the client is finished.
type Client struct {
	id       string
	conn     *websocket.Conn
	send     chan models.Outbound
	frames   chan models.Frame
	done     chan struct{}
	cfg      config.TransportConfig
	log      *logger.Logger
	failOnce sync.Once

	mu  sync.Mutex
	err error
}

// Dial connects to cfg.URL presenting token as the "token" query
// parameter, and starts the pumps.
func Dial(ctx context.Context, cfg config.TransportConfig, token string) (*Client, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid websocket url: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	dialer := websocket.Dialer{HandshakeTimeout: cfg.HandshakeTimeout}
	conn, resp, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("%w: dial %s: %v (status %d)", models.ErrTransportFault, cfg.URL, err, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: dial %s: %v", models.ErrTransportFault, cfg.URL, err)
	}

	c := NewClient(conn, cfg)
	c.Start()
	return c, nil
}

// NewClient wraps an established connection. Call Start to run the pumps.
func NewClient(conn *websocket.Conn, cfg config.TransportConfig) *Client {
	if cfg.OutboundBuffer <= 0 {
		cfg.OutboundBuffer = 64
	}
	if cfg.InboundBuffer <= 0 {
		cfg.InboundBuffer = 256
	}
	if cfg.PongWait <= 0 {
		cfg.PongWait = 60 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}

	id := uuid.NewString()
	return &Client{
		id:     id,
		conn:   conn,
		send:   make(chan models.Outbound, cfg.OutboundBuffer),
		frames: make(chan models.Frame, cfg.InboundBuffer),
		done:   make(chan struct{}),
		cfg:    cfg,
		log:    logger.GlobalLogger.With("conn", id),
	}
}

func (c *Client) Start() {
	c.log.Info("connected to %s", c.cfg.URL)
	go c.WritePump()
	go c.ReadPump()
}

func (c *Client) ID() string { return c.id }

// Frames delivers inbound envelopes in arrival order; a message that is not
// a JSON envelope arrives with an empty Event. The channel is never closed,
// so select on Done to notice the end of the stream.
func (c *Client) Frames() <-chan models.Frame { return c.frames }

func (c *Client) Done() <-chan struct{} { return c.done }

// Err is nil while connected and after a normal close.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Emit queues out for the write pump and returns immediately. A full queue
// or a closed connection is reported as ErrTransportFault.
func (c *Client) Emit(ctx context.Context, out models.Outbound) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-c.done:
		return fmt.Errorf("%w: connection closed", models.ErrTransportFault)
	default:
	}

	select {
	case c.send <- out:
		return nil
	case <-c.done:
		return fmt.Errorf("%w: connection closed", models.ErrTransportFault)
	default:
		return fmt.Errorf("%w: outbound queue full", models.ErrTransportFault)
	}
}

// Close sends a normal close frame and tears the connection down.
func (c *Client) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "client close")
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(c.cfg.WriteTimeout))
	c.fail(nil)
	return nil
}

func (c *Client) ReadPump() {
	defer c.conn.Close()

	// Set read deadline and pong handler for connection health
	c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.fail(nil)
			} else {
				c.fail(fmt.Errorf("%w: read: %v", models.ErrTransportFault, err))
			}
			return
		}

		// Envelopes that do not parse go through with no event name, so the
		// router drops and counts them with every other unrecognized event.
		var f models.Frame
		if err := json.Unmarshal(data, &f); err != nil {
			c.log.Debug("undecodable frame: %v", err)
			f = models.Frame{Data: json.RawMessage(data)}
		}

		select {
		case c.frames <- f:
		case <-c.done:
			return
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(c.cfg.PongWait * 9 / 10)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case out := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
			if err := c.conn.WriteJSON(out); err != nil {
				c.fail(fmt.Errorf("%w: write %s: %v", models.ErrTransportFault, out.Event, err))
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.fail(fmt.Errorf("%w: ping: %v", models.ErrTransportFault, err))
				return
			}

		case <-c.done:
			return
		}
	}
}

// fail records the terminal error once and releases everyone waiting on
// Done. A nil err means a normal close.
func (c *Client) fail(err error) {
	c.failOnce.Do(func() {
		c.mu.Lock()
		c.err = err
		c.mu.Unlock()
		close(c.done)
		if err != nil {
			c.log.Error("connection lost: %v", err)
		} else {
			c.log.Info("connection closed")
		}
	})
}
