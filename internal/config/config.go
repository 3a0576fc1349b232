package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Transport TransportConfig
	Rooms     RoomsConfig
	LogLevel  string
}

type ServerConfig struct {
	URL          string
	LoginTimeout time.Duration
}

type TransportConfig struct {
	URL              string
	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration
	PongWait         time.Duration
	OutboundBuffer   int
	InboundBuffer    int
}

type RoomsConfig struct {
	// ClearStaleRoom drops the current room when an authoritative room
	// list no longer contains it.
	ClearStaleRoom bool
}

// Load reads the environment (and a .env file when present) and exits on
// malformed values.
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("error loading .env file: %v", err)
	}

	cfg, err := Parse()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	return cfg
}

// Parse builds a Config from the current environment.
func Parse() (*Config, error) {
	p := &parser{}
	serverURL := strings.TrimRight(getEnvOrDefault("SERVER_URL", "http://localhost:3000"), "/")

	cfg := &Config{
		Server: ServerConfig{
			URL:          serverURL,
			LoginTimeout: p.duration("LOGIN_TIMEOUT", "10s"),
		},
		Transport: TransportConfig{
			URL:              getEnvOrDefault("WS_URL", ""),
			HandshakeTimeout: p.duration("HANDSHAKE_TIMEOUT", "10s"),
			WriteTimeout:     p.duration("WRITE_TIMEOUT", "10s"),
			PongWait:         p.duration("PONG_WAIT", "60s"),
			OutboundBuffer:   p.integer("OUTBOUND_BUFFER", 64),
			InboundBuffer:    p.integer("INBOUND_BUFFER", 256),
		},
		Rooms: RoomsConfig{
			ClearStaleRoom: p.boolean("CLEAR_STALE_ROOM", false),
		},
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
	}
	if p.err != nil {
		return nil, p.err
	}

	if cfg.Transport.URL == "" {
		wsURL, err := WebSocketURL(serverURL)
		if err != nil {
			return nil, err
		}
		cfg.Transport.URL = wsURL
	}
	return cfg, nil
}

// WebSocketURL derives the event stream endpoint from the HTTP base URL.
func WebSocketURL(serverURL string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("invalid SERVER_URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("invalid SERVER_URL scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	return u.String(), nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parser keeps the first conversion error so Parse can report it once.
type parser struct {
	err error
}

func (p *parser) duration(key, defaultValue string) time.Duration {
	value := getEnvOrDefault(key, defaultValue)
	duration, err := time.ParseDuration(value)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	return duration
}

func (p *parser) integer(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid integer for %s: %w", key, err)
	}
	return intValue
}

func (p *parser) boolean(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid boolean for %s: %w", key, err)
	}
	return b
}
