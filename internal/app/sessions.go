package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"booking_web/internal/auth"
	"booking_web/internal/domain"
)

const loginFallback = "Login failed. Please try again."

// AuthService opens and closes browser sessions against the backend.
type AuthService struct {
	api   domain.AuthAPI
	store domain.SessionStore
	ttl   time.Duration
	now   func() time.Time
}

func NewAuthService(api domain.AuthAPI, store domain.SessionStore, ttl time.Duration) *AuthService {
	return &AuthService{api: api, store: store, ttl: ttl, now: time.Now}
}

// Login exchanges credentials for tokens and stores the session. The role
// comes from the token claims, else from the profile, else USER.
func (s *AuthService) Login(ctx context.Context, f LoginForm) (domain.Session, error) {
	tokens, err := s.api.Login(ctx, f.Username, f.Password)
	if err != nil {
		return domain.Session{}, err
	}
	role := domain.RoleUser
	if c, err := auth.ParseClaims(tokens.Token); err != nil || c.Role == domain.RoleGuest {
		if me, err := s.api.Me(domain.WithToken(ctx, tokens.Token)); err == nil {
			names := make([]string, 0, len(me.Roles))
			for _, r := range me.Roles {
				names = append(names, r.Name)
			}
			if r := domain.HighestRole(names...); r != domain.RoleGuest {
				role = r
			}
		} else {
			log.Warn().Err(err).Str("user", f.Username).Msg("profile lookup after login failed")
		}
	}
	sess := auth.NewSession(tokens, f.Username, role, s.now(), s.ttl)
	return s.store.Create(ctx, sess, s.ttl)
}

// LoginMessage is what the login page shows for a failed attempt.
func LoginMessage(err error) string { return domain.UserMessage(err, loginFallback) }

// Logout revokes the refresh token best-effort and always drops the session.
func (s *AuthService) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	sess, err := s.store.Get(ctx, sid)
	if err != nil {
		return err
	}
	if sess == nil {
		return nil
	}
	if sess.RefreshToken != "" {
		if err := s.api.Logout(domain.WithSession(ctx, sess), sess.RefreshToken); err != nil {
			log.Warn().Err(err).Str("user", sess.Username).Msg("backend logout failed")
		}
	}
	return s.store.Delete(ctx, sid)
}
