// Command checkin confirms guest check-in for bookings from the front desk.
//
//	checkin -token <bearer> <bookingId>...
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"booking_web/internal/adapters/backend"
	"booking_web/internal/adapters/observability"
	"booking_web/internal/app"
	"booking_web/internal/domain"
	"booking_web/internal/shared"
)

func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	token := flag.String("token", os.Getenv("CHECKIN_TOKEN"), "host bearer token (default $CHECKIN_TOKEN)")
	workers := flag.Int("workers", cfg.CheckinWorkers, "concurrent check-ins")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: checkin -token <bearer> <bookingId>...\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	ids := flag.Args()
	if *token == "" || len(ids) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = domain.WithToken(ctx, *token)

	client := backend.New(cfg.BackendBase, cfg.BackendRPS, cfg.BackendTimeout)
	log.Info().Str("backend", cfg.BackendBase).Int("bookings", len(ids)).Int("workers", *workers).Msg("checkin starting")

	results, err := app.CheckinBatch(ctx, client, ids, *workers)
	failed := 0
	for _, r := range results {
		ev := log.Info()
		if r.Outcome == app.OutcomeLoadError || r.Outcome == app.OutcomeConfirmError {
			ev = log.Warn()
			failed++
		}
		ev.Str("booking", r.BookingID).Str("ref", r.Reference).Str("outcome", r.Outcome).Str("message", r.Message).Msg("checkin")
	}
	if err != nil {
		log.Error().Err(err).Int("done", len(results)).Msg("checkin interrupted")
		os.Exit(1)
	}
	log.Info().Int("failed", failed).Int("total", len(results)).Msg("checkin completed")
	if failed > 0 {
		os.Exit(1)
	}
}
