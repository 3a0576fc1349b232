package auth

import (
	"time"

	"chat-client/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the identity obtained from a successful login. It is never
// modified; logging in again yields a new Session.
type Session struct {
	username  string
	role      models.Role
	token     string
	expiresAt time.Time
}

// NewSession builds a session from a login response. When the token is a
// JWT its exp claim is read without verifying the signature; the server
// remains the authority on validity.
func NewSession(resp models.LoginResponse) *Session {
	s := &Session{
		username: resp.Username,
		role:     resp.Role,
		token:    resp.Token,
	}
	if exp, ok := tokenExpiry(resp.Token); ok {
		s.expiresAt = exp
	}
	return s
}

func (s *Session) Username() string  { return s.username }
func (s *Session) Role() models.Role { return s.role }
func (s *Session) Token() string     { return s.token }

// ExpiresAt is zero when the token carries no expiry.
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

func (s *Session) IsAdmin() bool {
	return s.role == models.RoleAdmin
}

// Expired reports whether the token's expiry has passed at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.expiresAt.IsZero() && !now.Before(s.expiresAt)
}

func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
