package app

import (
	"context"
	"errors"

	"booking_web/internal/domain"
)

type LoadPhase string

const (
	PhaseLoading LoadPhase = "loading"
	PhaseError   LoadPhase = "error"
	PhaseLoaded  LoadPhase = "loaded"
)

type ActionState string

const (
	ActionIdle       ActionState = "idle"
	ActionConfirming ActionState = "confirming"
	ActionConfirmed  ActionState = "confirmed"
)

const (
	loadFallback    = "Failed to load booking information."
	confirmFallback = "Check-in failed."
)

var (
	ErrNotConfirmable  = errors.New("check-in is not available for this booking")
	ErrConfirmInFlight = errors.New("check-in already in progress")
)

// CheckinAPI is the slice of the backend the check-in flow talks to.
type CheckinAPI interface {
	HostBooking(ctx context.Context, id string) (domain.Booking, error)
	HostCheckin(ctx context.Context, id string) (domain.Booking, error)
}

// CheckinFlow is the host check-in page: one fetch, then at most one
// outstanding confirm at a time. The booking snapshot is only ever replaced
// wholesale by a record the backend returned.
type CheckinFlow struct {
	BookingID    string          `json:"bookingId"`
	Phase        LoadPhase       `json:"phase"`
	Action       ActionState     `json:"action"`
	Booking      *domain.Booking `json:"booking,omitempty"`
	LoadError    string          `json:"loadError,omitempty"`
	ConfirmError string          `json:"confirmError,omitempty"`
}

func NewCheckinFlow(bookingID string) *CheckinFlow {
	return &CheckinFlow{BookingID: bookingID, Phase: PhaseLoading}
}

// Load issues the single fetch of this load cycle. No retry happens on failure.
func (f *CheckinFlow) Load(ctx context.Context, api CheckinAPI) {
	if f.Phase != PhaseLoading {
		return
	}
	if f.BookingID == "" {
		f.Phase, f.LoadError = PhaseError, "Booking not found."
		return
	}
	b, err := api.HostBooking(ctx, f.BookingID)
	if err != nil {
		f.Phase, f.LoadError = PhaseError, domain.UserMessage(err, loadFallback)
		return
	}
	f.Phase, f.Action, f.Booking = PhaseLoaded, ActionIdle, &b
}

// CheckedIn is the terminal "already checked in" view.
func (f *CheckinFlow) CheckedIn() bool {
	return f.Phase == PhaseLoaded && f.Booking != nil &&
		(f.Booking.QRCodeUsed || f.Action == ActionConfirmed)
}

// CanConfirm reports whether the confirm action is offered and enabled.
func (f *CheckinFlow) CanConfirm() bool {
	return f.Phase == PhaseLoaded && !f.CheckedIn() && f.Action == ActionIdle
}

// Confirming reports whether the action is shown but disabled.
func (f *CheckinFlow) Confirming() bool {
	return f.Phase == PhaseLoaded && !f.CheckedIn() && f.Action == ActionConfirming
}

// Begin moves idle to confirming.
func (f *CheckinFlow) Begin() error {
	if f.Phase != PhaseLoaded || f.CheckedIn() {
		return ErrNotConfirmable
	}
	if f.Action == ActionConfirming {
		return ErrConfirmInFlight
	}
	f.Action, f.ConfirmError = ActionConfirming, ""
	return nil
}

// Submit sends the one state-changing request of a confirming flow and settles it.
func (f *CheckinFlow) Submit(ctx context.Context, api CheckinAPI) error {
	if f.Action != ActionConfirming {
		return ErrNotConfirmable
	}
	b, err := api.HostCheckin(ctx, f.BookingID)
	f.settle(b, err)
	return err
}

// Confirm is Begin followed by Submit.
func (f *CheckinFlow) Confirm(ctx context.Context, api CheckinAPI) error {
	if err := f.Begin(); err != nil {
		return err
	}
	return f.Submit(ctx, api)
}

func (f *CheckinFlow) settle(b domain.Booking, err error) {
	if err != nil {
		f.Action, f.ConfirmError = ActionIdle, domain.UserMessage(err, confirmFallback)
		return
	}
	f.Booking, f.Action = &b, ActionConfirmed
}
