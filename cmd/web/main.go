package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"booking_web/internal/adapters/backend"
	server "booking_web/internal/adapters/http_server"
	"booking_web/internal/adapters/observability"
	redisad "booking_web/internal/adapters/redis"
	"booking_web/internal/app"
	"booking_web/internal/auth"
	"booking_web/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(reg, cfg.MetricsAddr)

	// redis: sessions, page instances, cache
	rc := redisad.NewClient(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := rc.Ping(ctx).Err(); err != nil {
		// sessions resolve to loading until redis is back
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
	}
	cancel()
	sessions := redisad.NewSessionStore(rc)
	pages := redisad.NewPageStore(rc)
	cache := redisad.NewCache(rc)

	client := backend.New(cfg.BackendBase, cfg.BackendRPS, cfg.BackendTimeout)

	rd, err := server.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("templates failed to parse")
	}
	cookies := server.CookieConfig{Secure: cfg.CookieSecure, TTL: cfg.SessionTTL}
	resolver := auth.NewResolver(sessions, client, cfg.SessionTTL, cfg.VerifyEvery)

	srv := server.New(rd, resolver, cookies, cfg.BackendTimeout+5*time.Second)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Hotels:   app.NewHotelQueries(client, cache, cfg.CacheTTL),
		Bookings: client,
		Booking:  app.NewBookingService(client, client),
		Admin:    client,
		Users:    client,
		Auth:     app.NewAuthService(client, sessions, cfg.SessionTTL),
		Checkin:  app.NewCheckinService(client, pages, cfg.PageTTL, cfg.BackendTimeout+5*time.Second),
		Cookies:  cookies,
		Now:      time.Now,
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop, release := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer release()
	go func() {
		<-stop.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdown); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Str("backend", cfg.BackendBase).Msg("web listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	_ = rc.Close()
	log.Info().Msg("web stopped")
}
