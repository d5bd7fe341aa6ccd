package app

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"booking_web/internal/domain"
)

// Results of a confirm submission, used as metric labels by callers.
const (
	ResultSuccess        = "success"
	ResultFailure        = "failure"
	ResultDuplicate      = "duplicate"
	ResultNotConfirmable = "not_confirmable"
	ResultExpired        = "expired"
)

// CheckinPage is one rendered instance of the host check-in page.
type CheckinPage struct {
	ID     string
	Flow   *CheckinFlow
	Result string
	Notice string
}

// CheckinService keeps check-in flows across requests. Each GET opens a new
// page instance; a POST confirms within the instance it was rendered from.
type CheckinService struct {
	api     CheckinAPI
	pages   domain.PageStore
	ttl     time.Duration
	lockTTL time.Duration
}

func NewCheckinService(api CheckinAPI, pages domain.PageStore, ttl, lockTTL time.Duration) *CheckinService {
	return &CheckinService{api: api, pages: pages, ttl: ttl, lockTTL: lockTTL}
}

// Open runs a fresh load cycle. A store failure still returns the page;
// the instance just won't survive to the next request.
func (s *CheckinService) Open(ctx context.Context, bookingID string) CheckinPage {
	f := NewCheckinFlow(bookingID)
	f.Load(ctx, s.api)
	p := CheckinPage{ID: s.pages.NewID(), Flow: f}
	if err := s.pages.Store(ctx, p.ID, f, s.ttl); err != nil {
		log.Warn().Err(err).Str("booking", bookingID).Msg("checkin page not persisted")
	}
	return p
}

// Confirm submits check-in for the page instance. While another submission
// for the same instance is in flight, the current state is returned and no
// request is sent.
func (s *CheckinService) Confirm(ctx context.Context, pageID, bookingID string) (CheckinPage, error) {
	if pageID == "" {
		return s.expired(ctx, bookingID), nil
	}
	token, locked, err := s.pages.Lock(ctx, pageID, s.lockTTL)
	if err != nil {
		return CheckinPage{}, err
	}
	if !locked {
		f := new(CheckinFlow)
		ok, err := s.pages.Load(ctx, pageID, f)
		if err != nil {
			return CheckinPage{}, err
		}
		if !ok || f.BookingID != bookingID {
			return s.expired(ctx, bookingID), nil
		}
		if f.CanConfirm() {
			// the holder may not have persisted confirming yet
			f.Action = ActionConfirming
		}
		return CheckinPage{ID: pageID, Flow: f, Result: ResultDuplicate}, nil
	}
	defer func() {
		// the request context may already be gone; the lock must still go
		if err := s.pages.Unlock(context.WithoutCancel(ctx), pageID, token); err != nil {
			log.Warn().Err(err).Str("page", pageID).Msg("checkin unlock failed")
		}
	}()

	f := new(CheckinFlow)
	ok, err := s.pages.Load(ctx, pageID, f)
	if err != nil {
		return CheckinPage{}, err
	}
	if !ok || f.BookingID != bookingID {
		return s.expired(ctx, bookingID), nil
	}
	p := CheckinPage{ID: pageID, Flow: f}

	if err := f.Begin(); err != nil {
		if errors.Is(err, ErrConfirmInFlight) {
			// we hold the lock, so the earlier submission died mid-flight
			return s.expired(ctx, bookingID), nil
		}
		p.Result = ResultNotConfirmable
		return p, nil
	}
	if err := s.pages.Store(ctx, pageID, f, s.ttl); err != nil {
		return CheckinPage{}, err
	}

	if err := f.Submit(ctx, s.api); err != nil {
		log.Info().Err(err).Str("booking", bookingID).Msg("checkin rejected")
		p.Result = ResultFailure
	} else {
		log.Info().Str("booking", bookingID).Str("ref", f.Booking.BookingReference).Msg("guest checked in")
		p.Result = ResultSuccess
	}
	if err := s.pages.Store(context.WithoutCancel(ctx), pageID, f, s.ttl); err != nil {
		log.Warn().Err(err).Str("page", pageID).Msg("checkin page not persisted")
	}
	return p, nil
}

func (s *CheckinService) expired(ctx context.Context, bookingID string) CheckinPage {
	p := s.Open(ctx, bookingID)
	p.Result = ResultExpired
	p.Notice = "This page was out of date and has been reloaded. Review the booking and confirm again."
	return p
}
