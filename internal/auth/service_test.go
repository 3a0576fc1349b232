package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chat-client/internal/config"
	"chat-client/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, h http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewService(&config.Config{Server: config.ServerConfig{URL: srv.URL, LoginTimeout: 5 * time.Second}})
}

func TestLoginSuccess(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/login", r.URL.Path)
		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.Username)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.LoginResponse{Token: "opaque", Username: "alice", Role: models.RoleAdmin})
	})

	s, err := svc.Login(context.Background(), " alice ")
	require.NoError(t, err)
	assert.Equal(t, "alice", s.Username())
	assert.Equal(t, models.RoleAdmin, s.Role())
	assert.Equal(t, "opaque", s.Token())
	assert.True(t, s.IsAdmin())
	assert.True(t, s.ExpiresAt().IsZero())
}

func TestLoginRejectsEmptyUsername(t *testing.T) {
	called := false
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	s, err := svc.Login(context.Background(), "  ")
	assert.Nil(t, s)
	assert.ErrorIs(t, err, models.ErrInputRejected)
	assert.False(t, called)
}

func TestLoginFailure(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"unknown user"}`))
	})

	s, err := svc.Login(context.Background(), "mallory")
	assert.Nil(t, s)
	assert.ErrorIs(t, err, models.ErrAuthFailure)
	assert.ErrorContains(t, err, "unknown user")
}

func TestLoginWithoutToken(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"username":"alice","role":"member"}`))
	})

	_, err := svc.Login(context.Background(), "alice")
	assert.ErrorIs(t, err, models.ErrAuthFailure)
}

func TestSessionReadsJWTExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "bob",
		"exp":      exp.Unix(),
	}).SignedString([]byte("server-secret"))
	require.NoError(t, err)

	s := NewSession(models.LoginResponse{Token: token, Username: "bob", Role: models.RoleMember})
	assert.True(t, s.ExpiresAt().Equal(exp))
	assert.NoError(t, CheckExpiry(s, time.Now()))
	assert.ErrorIs(t, CheckExpiry(s, exp.Add(time.Second)), models.ErrAuthFailure)
}
