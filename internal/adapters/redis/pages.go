package redisad

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// PageStore holds per-page view state for multi-step pages such as host check-in.
type PageStore struct{ c *redis.Client }

func NewPageStore(c *redis.Client) *PageStore { return &PageStore{c: c} }

func pageKey(id string) string { return "page:" + id }
func lockKey(id string) string { return "page:" + id + ":lock" }

func (p *PageStore) NewID() string { return uuid.NewString() }

func (p *PageStore) Load(ctx context.Context, id string, dst any) (bool, error) {
	b, err := p.c.Get(ctx, pageKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(b, dst)
}

func (p *PageStore) Store(ctx context.Context, id string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.c.Set(ctx, pageKey(id), b, ttl).Err()
}

// Lock reports false when another request already holds the page.
// The ttl bounds how long a crashed holder can keep it.
func (p *PageStore) Lock(ctx context.Context, id string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := p.c.SetNX(ctx, lockKey(id), token, ttl).Result()
	if err != nil || !ok {
		return "", false, err
	}
	return token, true, nil
}

// releaseLock deletes the lock only while it still carries the caller's token,
// so a holder that outlived its ttl cannot free a successor's lock.
var releaseLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (p *PageStore) Unlock(ctx context.Context, id, token string) error {
	return releaseLock.Run(ctx, p.c, []string{lockKey(id)}, token).Err()
}
