package app

import (
	"testing"

	"booking_web/internal/domain"
)

func TestFormatMoney(t *testing.T) {
	cases := map[float64]string{
		0:         "0 ₫",
		999:       "999 ₫",
		1000:      "1.000 ₫",
		2250000:   "2.250.000 ₫",
		-1500.4:   "-1.500 ₫",
		123456789: "123.456.789 ₫",
	}
	for in, want := range cases {
		if got := FormatMoney(in); got != want {
			t.Errorf("FormatMoney(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2026-10-18"); got != "18/10/2026" {
		t.Fatalf("date: %q", got)
	}
	if got := FormatDate("2026-10-18T09:30:00"); got != "18/10/2026" {
		t.Fatalf("timestamp: %q", got)
	}
	if got := FormatDate("soon"); got != "soon" {
		t.Fatalf("passthrough: %q", got)
	}
}

func TestTones(t *testing.T) {
	if StatusTone(domain.BookingConfirmed) != "ok" || StatusTone(domain.BookingNoShow) != "bad" || StatusTone("NEW") != "muted" {
		t.Fatalf("status tones")
	}
	if PaymentTone(domain.PaymentPaid) != "ok" || PaymentTone(domain.PaymentNone) != "muted" {
		t.Fatalf("payment tones")
	}
}
