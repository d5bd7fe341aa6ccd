package httpserver

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"booking_web/internal/adapters/observability"
	"booking_web/internal/app"
)

func (h *Handlers) hostDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Bookings.HostDashboard(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to load the dashboard.")
		return
	}
	h.render.Page(w, r, http.StatusOK, "host_dashboard", "Host dashboard", d)
}

func (h *Handlers) hostBookings(w http.ResponseWriter, r *http.Request) {
	f, keep := filterFrom(r)
	page, err := h.Bookings.HostBookings(r.Context(), f)
	if err != nil {
		h.fail(w, r, err, "Failed to load bookings.")
		return
	}
	h.render.Page(w, r, http.StatusOK, "host_bookings", "Guest bookings",
		bookingsView{Bookings: page, Status: f.Status, Statuses: allStatuses, Query: keep, Base: "/host/bookings"})
}

func (h *Handlers) hostBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.Bookings.HostBooking(r.Context(), urlParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, "Failed to load booking information.")
		return
	}
	h.render.Page(w, r, http.StatusOK, "host_booking", "Booking "+b.BookingReference, bookingView{Booking: b})
}

// checkinView wraps the page so templates can reach both instance and flow.
type checkinView struct {
	Page app.CheckinPage
	Flow *app.CheckinFlow
}

func (h *Handlers) checkinPage(w http.ResponseWriter, r *http.Request) {
	p := h.Checkin.Open(r.Context(), urlParam(r, "bookingId"))
	h.render.Page(w, r, http.StatusOK, "checkin", "Guest check-in", checkinView{Page: p, Flow: p.Flow})
}

func (h *Handlers) checkin(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "bookingId")
	if err := r.ParseForm(); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "form could not be parsed")
		return
	}
	p, err := h.Checkin.Confirm(r.Context(), r.PostForm.Get("page"), id)
	if err != nil {
		log.Error().Err(err).Str("booking", id).Msg("checkin page store unavailable")
		h.render.Page(w, r, http.StatusServiceUnavailable, "error", "Guest check-in",
			errorView{Status: http.StatusServiceUnavailable, Message: "Check-in is temporarily unavailable. Please try again."})
		return
	}
	observability.ObserveCheckin(p.Result)
	h.render.Page(w, r, http.StatusOK, "checkin", "Guest check-in", checkinView{Page: p, Flow: p.Flow})
}

// ---- admin ----

func (h *Handlers) adminDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Admin.AdminDashboard(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to load the dashboard.")
		return
	}
	h.render.Page(w, r, http.StatusOK, "admin_dashboard", "Admin dashboard", d)
}

func (h *Handlers) adminBookings(w http.ResponseWriter, r *http.Request) {
	f, keep := filterFrom(r)
	page, err := h.Admin.AdminBookings(r.Context(), f)
	if err != nil {
		h.fail(w, r, err, "Failed to load bookings.")
		return
	}
	h.render.Page(w, r, http.StatusOK, "admin_bookings", "All bookings",
		bookingsView{Bookings: page, Status: f.Status, Statuses: allStatuses, Query: keep, Base: "/admin/bookings"})
}
