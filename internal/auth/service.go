package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"chat-client/internal/config"
	"chat-client/internal/models"
)

// Service performs the login exchange against the chat server.
type Service struct {
	baseURL    string
	httpClient *http.Client
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		baseURL: cfg.Server.URL,
		httpClient: &http.Client{
			Timeout: cfg.Server.LoginTimeout,
		},
	}
}

// Login exchanges a username for a session. Failures never produce a
// session: an empty username is ErrInputRejected, anything other than a
// 2xx response with a token is ErrAuthFailure.
func (s *Service) Login(ctx context.Context, username string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", models.ErrInputRejected)
	}

	body, err := json.Marshal(models.LoginRequest{Username: username})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrAuthFailure, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", models.ErrAuthFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", models.ErrAuthFailure, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var login models.LoginResponse
	if err := json.Unmarshal(data, &login); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", models.ErrAuthFailure, err)
	}
	if login.Token == "" {
		return nil, fmt.Errorf("%w: response carried no token", models.ErrAuthFailure)
	}
	if login.Username == "" {
		login.Username = username
	}

	return NewSession(login), nil
}

// CheckExpiry returns ErrAuthFailure once the session token has expired.
func CheckExpiry(s *Session, now time.Time) error {
	if s.Expired(now) {
		return fmt.Errorf("%w: session expired at %s", models.ErrAuthFailure, s.ExpiresAt().Format(time.RFC3339))
	}
	return nil
}
