package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"

	"booking_web/internal/domain"
)

// Claims is the subset of the backend token we display or route on.
type Claims struct {
	Subject   string
	Role      domain.Role
	ExpiresAt time.Time
}

// ParseClaims reads the token payload without checking the signature; only the
// backend holds the signing key, and it verifies every call itself.
func ParseClaims(token string) (Claims, error) {
	if token == "" {
		return Claims{}, errors.New("empty token")
	}
	mc := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, mc); err != nil {
		return Claims{}, err
	}

	var c Claims
	if sub, ok := mc["sub"].(string); ok {
		c.Subject = sub
	}
	if exp, ok := mc["exp"].(float64); ok {
		c.ExpiresAt = time.Unix(int64(exp), 0)
	}

	var names []string
	switch v := mc["scope"].(type) {
	case string:
		names = append(names, strings.Fields(v)...)
	}
	switch v := mc["roles"].(type) {
	case []any:
		for _, r := range v {
			if s, ok := r.(string); ok {
				names = append(names, s)
			}
		}
	case string:
		names = append(names, strings.Split(v, ",")...)
	}
	if v, ok := mc["role"].(string); ok {
		names = append(names, v)
	}
	c.Role = domain.HighestRole(names...)
	return c, nil
}

// NewSession builds the session record for freshly issued tokens. fallback is
// used when the token carries no role claim; ttl bounds tokens without exp.
func NewSession(tokens domain.AuthTokens, username string, fallback domain.Role, now time.Time, ttl time.Duration) domain.Session {
	s := domain.Session{
		Token:        tokens.Token,
		RefreshToken: tokens.RefreshToken,
		Username:     username,
		Role:         fallback,
		ExpiresAt:    now.Add(ttl),
		VerifiedAt:   now,
	}
	if c, err := ParseClaims(tokens.Token); err == nil {
		if c.Role != domain.RoleGuest {
			s.Role = c.Role
		}
		if !c.ExpiresAt.IsZero() {
			s.ExpiresAt = c.ExpiresAt
		}
		if s.Username == "" {
			s.Username = c.Subject
		}
	}
	return s
}
