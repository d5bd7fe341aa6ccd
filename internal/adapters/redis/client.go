package redisad

import "github.com/redis/go-redis/v9"

// NewClient returns the shared client used by the cache, session and page stores.
func NewClient(addr, pass string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
}
