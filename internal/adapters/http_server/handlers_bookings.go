package httpserver

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"booking_web/internal/app"
	"booking_web/internal/domain"
)

type bookingsView struct {
	Bookings domain.Page[domain.Booking]
	Status   domain.BookingStatus
	Statuses []domain.BookingStatus
	Query    url.Values
	Base     string
}

var allStatuses = []domain.BookingStatus{
	domain.BookingPending, domain.BookingConfirmed, domain.BookingCompleted, domain.BookingCancelled,
	domain.BookingCancelledByGuest, domain.BookingCancelledByHost, domain.BookingNoShow,
}

// filterFrom reads the list filters shared by guest, host and admin lists.
func filterFrom(r *http.Request) (domain.BookingFilter, url.Values) {
	q := r.URL.Query()
	f := domain.BookingFilter{PageNumber: pageParam(r), PageSize: pageSize, SortBy: "createdAt"}
	keep := url.Values{}
	if st := domain.BookingStatus(q.Get("status")); st.Valid() {
		f.Status = st
		keep.Set("status", string(st))
	}
	if ps := domain.PaymentStatus(q.Get("paymentStatus")); ps.Valid() {
		f.PaymentStatus = ps
		keep.Set("paymentStatus", string(ps))
	}
	if g := q.Get("guestName"); g != "" && len(g) <= 100 {
		f.GuestName = g
		keep.Set("guestName", g)
	}
	if hid := q.Get("hotelId"); hid != "" && len(hid) <= 64 {
		f.HotelID = hid
		keep.Set("hotelId", hid)
	}
	return f, keep
}

func (h *Handlers) myBookings(w http.ResponseWriter, r *http.Request) {
	f, keep := filterFrom(r)
	page, err := h.Bookings.MyBookings(r.Context(), f)
	if err != nil {
		h.fail(w, r, err, "Failed to load your bookings.")
		return
	}
	h.render.Page(w, r, http.StatusOK, "bookings", "My bookings",
		bookingsView{Bookings: page, Status: f.Status, Statuses: allStatuses, Query: keep, Base: "/bookings"})
}

type bookingView struct {
	Booking   domain.Booking
	Message   string
	Cancelled bool
}

func (h *Handlers) myBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.Bookings.GetBooking(r.Context(), urlParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, "Failed to load booking information.")
		return
	}
	h.render.Page(w, r, http.StatusOK, "booking", "Booking "+b.BookingReference,
		bookingView{Booking: b, Cancelled: r.URL.Query().Get("cancelled") == "1"})
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	if err := r.ParseForm(); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "form could not be parsed")
		return
	}
	form, fe := app.ParseCancelForm(r.PostForm)
	if fe != nil {
		h.fail(w, r, &domain.APIError{Status: http.StatusBadRequest, Message: "The cancellation reason is too long."}, "")
		return
	}
	b, err := h.Booking.Cancel(r.Context(), id, form.Reason)
	if err != nil {
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) && b.ID != "" {
			h.render.Page(w, r, http.StatusConflict, "booking", "Booking "+b.BookingReference,
				bookingView{Booking: b, Message: domain.UserMessage(err, "")})
			return
		}
		h.fail(w, r, err, "Failed to cancel the booking.")
		return
	}
	log.Info().Str("booking", id).Msg("booking cancelled by guest")
	http.Redirect(w, r, "/bookings/"+url.PathEscape(id)+"?cancelled=1", http.StatusSeeOther)
}

type newBookingView struct {
	Hotel   domain.Hotel
	Rooms   []domain.RoomType
	Form    app.BookingForm
	Errors  app.FieldErrors
	Message string
}

func (h *Handlers) newBookingPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	form := app.BookingForm{
		HotelID: q.Get("hotelId"), RoomTypeID: q.Get("roomTypeId"),
		CheckIn: q.Get("checkIn"), CheckOut: q.Get("checkOut"), Guests: 1,
	}
	h.bookingForm(w, r, http.StatusOK, newBookingView{Form: form})
}

func (h *Handlers) bookingForm(w http.ResponseWriter, r *http.Request, status int, v newBookingView) {
	if v.Form.HotelID == "" {
		http.Redirect(w, r, "/hotels", http.StatusSeeOther)
		return
	}
	ht, err := h.Hotels.GetHotel(r.Context(), v.Form.HotelID)
	if err != nil {
		h.fail(w, r, err, "Failed to load hotel information.")
		return
	}
	rooms, err := h.Hotels.RoomTypes(r.Context(), v.Form.HotelID)
	if err != nil {
		h.fail(w, r, err, "Failed to load room availability.")
		return
	}
	v.Hotel, v.Rooms = ht, rooms
	h.render.Page(w, r, status, "booking_new", "Book "+ht.Name, v)
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "form could not be parsed")
		return
	}
	form, fe := app.ParseBookingForm(r.PostForm, h.Now())
	if fe != nil {
		h.bookingForm(w, r, http.StatusBadRequest, newBookingView{Form: form, Errors: fe})
		return
	}
	b, err := h.Booking.Create(r.Context(), form)
	if err != nil {
		var fe app.FieldErrors
		switch {
		case errors.As(err, &fe):
			h.bookingForm(w, r, http.StatusBadRequest, newBookingView{Form: form, Errors: fe})
		case errors.Is(err, app.ErrRoomUnavailable):
			h.bookingForm(w, r, http.StatusConflict, newBookingView{Form: form, Message: "That room type is no longer available."})
		default:
			log.Warn().Err(err).Str("hotel", form.HotelID).Msg("booking rejected")
			h.bookingForm(w, r, http.StatusBadRequest, newBookingView{Form: form, Message: domain.UserMessage(err, "Booking failed.")})
		}
		return
	}
	log.Info().Str("booking", b.ID).Str("ref", b.BookingReference).Msg("booking created")
	http.Redirect(w, r, "/bookings/"+url.PathEscape(b.ID), http.StatusSeeOther)
}
