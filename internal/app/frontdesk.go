package app

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Outcomes of one front-desk check-in.
const (
	OutcomeAlreadyCheckedIn = "already_checked_in"
	OutcomeCheckedIn        = "checked_in"
	OutcomeLoadError        = "load_error"
	OutcomeConfirmError     = "confirm_error"
)

type CheckinOutcome struct {
	BookingID string
	Reference string
	Outcome   string
	Message   string
}

// CheckinBatch runs a load and at most one confirm for each booking, with no
// more than workers flows in flight. Results keep the order of ids.
func CheckinBatch(ctx context.Context, api CheckinAPI, ids []string, workers int) ([]CheckinOutcome, error) {
	if workers < 1 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	out := make([]CheckinOutcome, len(ids))
	var wg sync.WaitGroup

	for i, id := range ids {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return out[:i], err
		}
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			defer sem.Release(1)
			out[i] = checkinOne(ctx, api, id)
		}(i, id)
	}
	wg.Wait()
	return out, nil
}

func checkinOne(ctx context.Context, api CheckinAPI, id string) CheckinOutcome {
	res := CheckinOutcome{BookingID: id}
	f := NewCheckinFlow(id)
	f.Load(ctx, api)
	if f.Phase == PhaseError {
		res.Outcome, res.Message = OutcomeLoadError, f.LoadError
		return res
	}
	res.Reference = f.Booking.BookingReference
	if f.CheckedIn() {
		res.Outcome = OutcomeAlreadyCheckedIn
		return res
	}
	if err := f.Confirm(ctx, api); err != nil {
		res.Outcome, res.Message = OutcomeConfirmError, f.ConfirmError
		return res
	}
	res.Outcome = OutcomeCheckedIn
	return res
}
