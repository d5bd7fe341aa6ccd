package domain

import (
	"context"
	"strings"
	"time"
)

type Role string

const (
	RoleGuest Role = ""
	RoleUser  Role = "USER"
	RoleHost  Role = "HOST"
	RoleAdmin Role = "ADMIN"
)

// ParseRole accepts both bare names and Spring-style "ROLE_" prefixed authorities.
func ParseRole(s string) Role {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "ROLE_")
	switch Role(s) {
	case RoleUser, RoleHost, RoleAdmin:
		return Role(s)
	}
	return RoleGuest
}

func (r Role) rank() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleHost:
		return 2
	case RoleUser:
		return 1
	}
	return 0
}

// HighestRole picks ADMIN over HOST over USER; unknown names are ignored.
func HighestRole(names ...string) Role {
	best := RoleGuest
	for _, n := range names {
		if r := ParseRole(n); r.rank() > best.rank() {
			best = r
		}
	}
	return best
}

// Session is the server-side record behind the session cookie.
type Session struct {
	ID           string    `json:"id"`
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	Username     string    `json:"username"`
	Role         Role      `json:"role"`
	ExpiresAt    time.Time `json:"expiresAt"`
	VerifiedAt   time.Time `json:"verifiedAt"`
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// AuthTokens is what the backend hands out at login and refresh.
type AuthTokens struct {
	TokenType    string `json:"tokenType"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type TokenCheck struct {
	Valid      bool   `json:"valid"`
	Username   string `json:"username"`
	Expiration string `json:"expiration"`
}

type ctxKey struct{}

// WithSession attaches the session to ctx; outgoing backend calls read the bearer token from it.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func SessionFrom(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}

// WithToken is a shortcut for callers (CLI tools) that hold a bare bearer token.
func WithToken(ctx context.Context, token string) context.Context {
	return WithSession(ctx, &Session{Token: token})
}
