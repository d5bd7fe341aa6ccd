package app_test

import (
	"net/url"
	"testing"
	"time"

	"booking_web/internal/app"
)

func TestParseSearchForm_Defaults(t *testing.T) {
	f, fe := app.ParseSearchForm(url.Values{})
	if fe != nil {
		t.Fatalf("unexpected errors: %v", fe)
	}
	if f.Guests != 1 || f.Rooms != 1 || f.MaxPrice != app.MaxSearchPrice || f.SortBy != "popularity" || f.SortOrder != "desc" {
		t.Fatalf("defaults not applied: %+v", f)
	}
	q := f.Query(12)
	if q.MaxPrice != 0 || q.SortBy != "averageRating" || q.SortDir != "desc" || q.PageSize != 12 {
		t.Fatalf("unexpected query: %+v", q)
	}
}

func TestParseSearchForm_Valid(t *testing.T) {
	v := url.Values{
		"location": {" Da Nang "}, "checkIn": {"2026-11-01"}, "checkOut": {"2026-11-03"},
		"guests": {"2"}, "minPrice": {"500000"}, "maxPrice": {"2000000"},
		"amenities": {"Spa", "Wifi"}, "rating": {"4"}, "sortBy": {"price"}, "sortOrder": {"asc"},
		"unknown": {"ignored"},
	}
	f, fe := app.ParseSearchForm(v)
	if fe != nil {
		t.Fatalf("unexpected errors: %v", fe)
	}
	q := f.Query(10)
	if q.City != "Da Nang" || q.MinPrice != 500000 || q.MaxPrice != 2000000 || q.StarRating != 4 ||
		len(q.Amenities) != 2 || q.SortBy != "pricePerNight" || q.SortDir != "asc" {
		t.Fatalf("unexpected query: %+v", q)
	}
	if got := f.Values().Get("sortBy"); got != "price" {
		t.Fatalf("values round trip: %q", got)
	}
}

func TestParseSearchForm_Invalid(t *testing.T) {
	cases := map[string]struct {
		values url.Values
		field  string
	}{
		"zero guests":     {url.Values{"guests": {"0"}}, "guests"},
		"zero rooms":      {url.Values{"rooms": {"0"}}, "rooms"},
		"rating too high": {url.Values{"rating": {"6"}}, "rating"},
		"bad sort":        {url.Values{"sortBy": {"name"}}, "sortBy"},
		"bad order":       {url.Values{"sortOrder": {"up"}}, "sortOrder"},
		"min above max":   {url.Values{"minPrice": {"300"}, "maxPrice": {"200"}}, "maxPrice"},
		"price too high":  {url.Values{"maxPrice": {"20000000"}}, "maxPrice"},
		"not a number":    {url.Values{"guests": {"two"}}, "guests"},
		"bad date":        {url.Values{"checkIn": {"01/11/2026"}}, "checkIn"},
		"checkout first":  {url.Values{"checkIn": {"2026-11-03"}, "checkOut": {"2026-11-01"}}, "checkOut"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, fe := app.ParseSearchForm(tc.values)
			if _, ok := fe[tc.field]; !ok {
				t.Fatalf("expected error on %s, got %v", tc.field, fe)
			}
		})
	}
}

func TestParseLoginForm(t *testing.T) {
	f, fe := app.ParseLoginForm(url.Values{"username": {" host1 "}, "password": {"pw"}, "next": {"//evil.example"}})
	if fe != nil || f.Username != "host1" || f.Next != "/" {
		t.Fatalf("unexpected: %+v %v", f, fe)
	}
	_, fe = app.ParseLoginForm(url.Values{"username": {"host1"}})
	if _, ok := fe["password"]; !ok {
		t.Fatalf("expected password required, got %v", fe)
	}
}

func TestSafeNext(t *testing.T) {
	cases := map[string]string{
		"":                       "/",
		"/host/checkin/B123":     "/host/checkin/B123",
		"https://evil.example/x": "/",
		"//evil.example":         "/",
		"/\\evil.example":        "/",
		"/login?next=/login":     "/",
		"/\t/evil.example":       "/",
		"/\n/evil.example":       "/",
		"/\r\n/evil.example":     "/",
		"/a\\b":                  "/",
		"/\x7f/evil.example":     "/",
		"/%2F/evil.example":      "/%2F/evil.example",
		"/host/bookings?page=2":  "/host/bookings?page=2",
	}
	for in, want := range cases {
		if got := app.SafeNext(in); got != want {
			t.Errorf("SafeNext(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseBookingForm(t *testing.T) {
	today := time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC)
	base := func() url.Values {
		return url.Values{
			"hotelId": {"h1"}, "roomTypeId": {"r1"}, "checkIn": {"2026-10-20"},
			"checkOut": {"2026-10-23"}, "guests": {"2"}, "paymentMethod": {"VNPAY"},
		}
	}
	f, fe := app.ParseBookingForm(base(), today)
	if fe != nil || f.Nights() != 3 {
		t.Fatalf("unexpected: %+v %v", f, fe)
	}

	v := base()
	v.Set("checkIn", "2026-10-17")
	if _, fe := app.ParseBookingForm(v, today); fe["checkIn"] == "" {
		t.Fatalf("past check-in accepted: %v", fe)
	}
	v = base()
	v.Set("checkOut", "2026-10-20")
	if _, fe := app.ParseBookingForm(v, today); fe["checkOut"] == "" {
		t.Fatalf("zero-night stay accepted: %v", fe)
	}
	v = base()
	v.Set("paymentMethod", "BITCOIN")
	if _, fe := app.ParseBookingForm(v, today); fe["paymentMethod"] == "" {
		t.Fatalf("bad payment accepted: %v", fe)
	}
	v = base()
	v.Del("roomTypeId")
	if _, fe := app.ParseBookingForm(v, today); fe["roomTypeId"] == "" {
		t.Fatalf("missing room accepted: %v", fe)
	}
}
