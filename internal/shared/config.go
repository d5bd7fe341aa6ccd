package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MetricsAddr    string
	BackendBase    string
	BackendRPS     int
	BackendTimeout time.Duration
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	SessionTTL     time.Duration
	VerifyEvery    time.Duration
	PageTTL        time.Duration
	CacheTTL       time.Duration
	CookieSecure   bool
	CheckinWorkers int
}

func Load() Config {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env could not be loaded")
	}
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	secs := func(k string, def int) time.Duration {
		return time.Duration(atoi(k, def)) * time.Second
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", ":3000"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		BackendBase:    env("BACKEND_BASE_URL", "http://localhost:8080"),
		BackendRPS:     atoi("BACKEND_RPS", 50),
		BackendTimeout: secs("BACKEND_TIMEOUT_SECONDS", 15),
		RedisAddr:      env("REDIS_ADDR", "localhost:6379"),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		SessionTTL:     secs("SESSION_TTL_SECONDS", 86400),
		VerifyEvery:    secs("SESSION_VERIFY_SECONDS", 300),
		PageTTL:        secs("PAGE_TTL_SECONDS", 1800),
		CacheTTL:       secs("CACHE_TTL_SECONDS", 120),
		CookieSecure:   env("COOKIE_SECURE", "true") != "false",
		CheckinWorkers: atoi("CHECKIN_WORKERS", 4),
	}
	if c.AppEnv == "dev" || c.AppEnv == "development" {
		c.CookieSecure = env("COOKIE_SECURE", "false") == "true"
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
