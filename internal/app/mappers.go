package app

import (
	"strconv"
	"strings"
	"time"

	"booking_web/internal/domain"
)

func itoa(n int) string     { return strconv.Itoa(n) }
func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// FormatMoney renders an amount in VND with dot thousands separators.
func FormatMoney(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatInt(int64(amount+0.5), 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	s := b.String() + " ₫"
	if neg {
		return "-" + s
	}
	return s
}

// FormatDate renders a backend date or timestamp as dd/mm/yyyy; unparseable
// input is returned unchanged.
func FormatDate(s string) string {
	for _, layout := range []string{"2006-01-02", "2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return s
}

// StatusTone picks the badge style for a booking status.
func StatusTone(s domain.BookingStatus) string {
	switch s {
	case domain.BookingConfirmed, domain.BookingCompleted:
		return "ok"
	case domain.BookingPending:
		return "warn"
	case domain.BookingCancelled, domain.BookingCancelledByGuest, domain.BookingCancelledByHost, domain.BookingNoShow:
		return "bad"
	}
	return "muted"
}

func PaymentTone(s domain.PaymentStatus) string {
	switch s {
	case domain.PaymentPaid:
		return "ok"
	case domain.PaymentPending:
		return "warn"
	case domain.PaymentFailed, domain.PaymentRefunded:
		return "bad"
	}
	return "muted"
}
