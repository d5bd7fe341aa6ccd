package redisad

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"booking_web/internal/domain"
)

type SessionStore struct{ c *redis.Client }

func NewSessionStore(c *redis.Client) *SessionStore { return &SessionStore{c: c} }

func sessionKey(id string) string { return "session:" + id }

// Create assigns a fresh random id and stores the session.
func (s *SessionStore) Create(ctx context.Context, sess domain.Session, ttl time.Duration) (domain.Session, error) {
	sess.ID = uuid.NewString()
	if err := s.Save(ctx, sess, ttl); err != nil {
		return domain.Session{}, err
	}
	return sess, nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	if id == "" {
		return nil, nil
	}
	b, err := s.c.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sess domain.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SessionStore) Save(ctx context.Context, sess domain.Session, ttl time.Duration) error {
	if sess.ID == "" {
		return errors.New("session id is required")
	}
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.c.Set(ctx, sessionKey(sess.ID), b, ttl).Err()
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.c.Del(ctx, sessionKey(id)).Err()
}
