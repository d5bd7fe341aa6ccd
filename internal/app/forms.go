package app

import (
	"errors"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"booking_web/internal/domain"
)

const (
	MaxSearchPrice = 10_000_000
	dateLayout     = "2006-01-02"
)

var (
	decoder  = newDecoder()
	validate = newValidator()
)

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their form name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("schema"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldErrors maps a form field name to a user-facing message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for k, v := range fe {
		parts = append(parts, k+": "+v)
	}
	return strings.Join(parts, "; ")
}

// bind decodes values into dst and validates it.
func bind(dst any, values url.Values) FieldErrors {
	fe := FieldErrors{}
	if err := decoder.Decode(dst, values); err != nil {
		var multi schema.MultiError
		if errors.As(err, &multi) {
			for field := range multi {
				fe[field] = "is not a valid value"
			}
		} else {
			fe["form"] = "could not be read"
		}
		return fe
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			fe["form"] = "is invalid"
			return fe
		}
		for _, e := range verrs {
			fe[e.Field()] = message(e)
		}
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return "must be at least " + e.Param()
	case "max", "lte":
		return "must be at most " + e.Param()
	case "oneof":
		return "must be one of " + e.Param()
	case "datetime":
		return "must be a date (YYYY-MM-DD)"
	case "gtefield":
		return "must not be less than " + e.Param()
	case "gtfield":
		return "must be after " + e.Param()
	}
	return "is invalid"
}

// SearchForm is the hotel search form.
type SearchForm struct {
	Location  string   `schema:"location" validate:"max=100"`
	CheckIn   string   `schema:"checkIn" validate:"omitempty,datetime=2006-01-02"`
	CheckOut  string   `schema:"checkOut" validate:"omitempty,datetime=2006-01-02"`
	Guests    int      `schema:"guests" validate:"min=1,max=50"`
	Rooms     int      `schema:"rooms" validate:"min=1,max=20"`
	MinPrice  float64  `schema:"minPrice" validate:"min=0,max=10000000"`
	MaxPrice  float64  `schema:"maxPrice" validate:"min=0,max=10000000,gtefield=MinPrice"`
	Amenities []string `schema:"amenities" validate:"max=20,dive,max=60"`
	Rating    int      `schema:"rating" validate:"min=0,max=5"`
	SortBy    string   `schema:"sortBy" validate:"oneof=price rating distance popularity"`
	SortOrder string   `schema:"sortOrder" validate:"oneof=asc desc"`
	Page      int      `schema:"page" validate:"min=0"`
}

func DefaultSearchForm() SearchForm {
	return SearchForm{Guests: 1, Rooms: 1, MaxPrice: MaxSearchPrice, SortBy: "popularity", SortOrder: "desc"}
}

// ParseSearchForm starts from the defaults, so absent or empty fields keep them.
func ParseSearchForm(values url.Values) (SearchForm, FieldErrors) {
	f := DefaultSearchForm()
	if fe := bind(&f, values); fe != nil {
		return f, fe
	}
	if f.CheckIn != "" && f.CheckOut != "" && f.CheckOut <= f.CheckIn {
		return f, FieldErrors{"checkOut": "must be after checkIn"}
	}
	return f, nil
}

var sortFields = map[string]string{
	"price":      "pricePerNight",
	"rating":     "starRating",
	"popularity": "averageRating",
	"distance":   "city",
}

// Query translates the form into the backend search.
func (f SearchForm) Query(pageSize int) domain.HotelSearch {
	q := domain.HotelSearch{
		City:       strings.TrimSpace(f.Location),
		StarRating: f.Rating,
		MinPrice:   f.MinPrice,
		Amenities:  f.Amenities,
		PageNumber: f.Page,
		PageSize:   pageSize,
		SortBy:     sortFields[f.SortBy],
		SortDir:    f.SortOrder,
	}
	if f.MaxPrice < MaxSearchPrice {
		q.MaxPrice = f.MaxPrice
	}
	return q
}

// Values renders the form back into query parameters, for pagination links.
func (f SearchForm) Values() url.Values {
	v := url.Values{}
	set := func(k, val string, def string) {
		if val != "" && val != def {
			v.Set(k, val)
		}
	}
	d := DefaultSearchForm()
	set("location", f.Location, "")
	set("checkIn", f.CheckIn, "")
	set("checkOut", f.CheckOut, "")
	set("guests", itoa(f.Guests), itoa(d.Guests))
	set("rooms", itoa(f.Rooms), itoa(d.Rooms))
	set("minPrice", ftoa(f.MinPrice), ftoa(d.MinPrice))
	set("maxPrice", ftoa(f.MaxPrice), ftoa(d.MaxPrice))
	for _, a := range f.Amenities {
		v.Add("amenities", a)
	}
	set("rating", itoa(f.Rating), itoa(d.Rating))
	set("sortBy", f.SortBy, d.SortBy)
	set("sortOrder", f.SortOrder, d.SortOrder)
	return v
}

type LoginForm struct {
	Username string `schema:"username" validate:"required,max=100"`
	Password string `schema:"password" validate:"required,max=200"`
	Next     string `schema:"next"`
}

func ParseLoginForm(values url.Values) (LoginForm, FieldErrors) {
	var f LoginForm
	fe := bind(&f, values)
	f.Username = strings.TrimSpace(f.Username)
	f.Next = SafeNext(f.Next)
	return f, fe
}

// SafeNext keeps post-login redirects on this site. Browsers drop tabs and
// newlines and read backslashes as slashes, so any of those rejects the target.
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") ||
		strings.HasPrefix(next, "/login") {
		return "/"
	}
	for i := 0; i < len(next); i++ {
		if c := next[i]; c < 0x20 || c == 0x7f || c == '\\' {
			return "/"
		}
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" || u.User != nil {
		return "/"
	}
	return next
}

type BookingForm struct {
	HotelID         string `schema:"hotelId" validate:"required,max=64"`
	RoomTypeID      string `schema:"roomTypeId" validate:"required,max=64"`
	CheckIn         string `schema:"checkIn" validate:"required,datetime=2006-01-02"`
	CheckOut        string `schema:"checkOut" validate:"required,datetime=2006-01-02"`
	Guests          int    `schema:"guests" validate:"min=1,max=50"`
	PaymentMethod   string `schema:"paymentMethod" validate:"omitempty,oneof=CASH VNPAY"`
	SpecialRequests string `schema:"specialRequests" validate:"max=500"`
	VoucherCode     string `schema:"voucherCode" validate:"max=50"`
}

// ParseBookingForm also checks the stay itself: check-in not in the past,
// check-out after check-in.
func ParseBookingForm(values url.Values, today time.Time) (BookingForm, FieldErrors) {
	f := BookingForm{Guests: 1}
	if fe := bind(&f, values); fe != nil {
		return f, fe
	}
	in, _ := time.Parse(dateLayout, f.CheckIn)
	out, _ := time.Parse(dateLayout, f.CheckOut)
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	switch {
	case in.Before(day):
		return f, FieldErrors{"checkIn": "must not be in the past"}
	case !out.After(in):
		return f, FieldErrors{"checkOut": "must be after checkIn"}
	}
	return f, nil
}

// Nights is the length of the stay.
func (f BookingForm) Nights() int {
	in, err1 := time.Parse(dateLayout, f.CheckIn)
	out, err2 := time.Parse(dateLayout, f.CheckOut)
	if err1 != nil || err2 != nil || !out.After(in) {
		return 0
	}
	return int(out.Sub(in).Hours() / 24)
}

type CancelForm struct {
	Reason string `schema:"reason" validate:"max=500"`
}

func ParseCancelForm(values url.Values) (CancelForm, FieldErrors) {
	var f CancelForm
	fe := bind(&f, values)
	f.Reason = strings.TrimSpace(f.Reason)
	return f, fe
}
