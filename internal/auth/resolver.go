package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"booking_web/internal/domain"
)

var errIndeterminate = errors.New("session validity could not be determined")

// Resolver turns a session cookie value into a State.
type Resolver struct {
	store       domain.SessionStore
	api         domain.AuthAPI
	ttl         time.Duration
	verifyEvery time.Duration
	now         func() time.Time
	group       singleflight.Group
}

func NewResolver(store domain.SessionStore, api domain.AuthAPI, ttl, verifyEvery time.Duration) *Resolver {
	return &Resolver{store: store, api: api, ttl: ttl, verifyEvery: verifyEvery, now: time.Now}
}

func (r *Resolver) Resolve(ctx context.Context, sid string) State {
	if sid == "" {
		return Anonymous()
	}
	sess, err := r.store.Get(ctx, sid)
	if err != nil {
		log.Warn().Err(err).Msg("session store unavailable")
		return Loading()
	}
	if sess == nil {
		return Anonymous()
	}

	now := r.now()
	if !sess.Expired(now) && now.Sub(sess.VerifiedAt) < r.verifyEvery {
		return Authenticated(sess)
	}

	// Concurrent requests on one session share a single verification,
	// so it must outlive the request that started it.
	shared := context.WithoutCancel(ctx)
	v, err, _ := r.group.Do(sid, func() (any, error) {
		if sess.Expired(now) {
			return r.renew(shared, *sess)
		}
		return r.verify(shared, *sess)
	})
	if err != nil {
		return Loading()
	}
	fresh, _ := v.(*domain.Session)
	if fresh == nil {
		return Anonymous()
	}
	return Authenticated(fresh)
}

// verify returns the refreshed session, nil when the token is no longer good, or errIndeterminate.
func (r *Resolver) verify(ctx context.Context, sess domain.Session) (*domain.Session, error) {
	check, err := r.api.Verify(ctx, sess.Token)
	if err != nil && !isRejection(err) {
		log.Warn().Err(err).Str("user", sess.Username).Msg("token verification failed")
		return nil, errIndeterminate
	}
	if err == nil && check.Valid {
		sess.VerifiedAt = r.now()
		if err := r.store.Save(ctx, sess, r.ttl); err != nil {
			return nil, errIndeterminate
		}
		return &sess, nil
	}
	return r.renew(ctx, sess)
}

func (r *Resolver) renew(ctx context.Context, sess domain.Session) (*domain.Session, error) {
	if sess.RefreshToken == "" {
		return r.drop(ctx, sess)
	}
	tokens, err := r.api.Refresh(ctx, sess.RefreshToken)
	if err != nil {
		if isRejection(err) {
			return r.drop(ctx, sess)
		}
		return nil, errIndeterminate
	}
	if tokens.RefreshToken == "" {
		tokens.RefreshToken = sess.RefreshToken
	}
	next := NewSession(tokens, sess.Username, sess.Role, r.now(), r.ttl)
	next.ID = sess.ID
	if err := r.store.Save(ctx, next, r.ttl); err != nil {
		return nil, errIndeterminate
	}
	log.Debug().Str("user", next.Username).Msg("session token refreshed")
	return &next, nil
}

func (r *Resolver) drop(ctx context.Context, sess domain.Session) (*domain.Session, error) {
	if err := r.store.Delete(ctx, sess.ID); err != nil {
		log.Warn().Err(err).Msg("session delete failed")
	}
	return nil, nil
}

// isRejection reports whether the backend answered with a verdict on the token.
// Server errors and throttling leave validity undetermined.
func isRejection(err error) bool {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status < http.StatusInternalServerError && apiErr.Status != http.StatusTooManyRequests
	}
	return errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrForbidden)
}
