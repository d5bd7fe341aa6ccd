package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"booking_web/internal/auth"
	"booking_web/internal/domain"
)

type route struct {
	method  string
	pattern string
	req     auth.Requirement
	handle  http.HandlerFunc
}

// routes is the whole route table. Every page goes through the gate with its
// declared requirement.
func (h *Handlers) routes() []route {
	public, signedIn := auth.Public(), auth.SignedIn()
	host, admin := auth.RequireRole(domain.RoleHost), auth.RequireRole(domain.RoleAdmin)
	return []route{
		{http.MethodGet, "/", public, h.home},
		{http.MethodGet, "/login", public, h.loginPage},
		{http.MethodPost, "/login", public, h.login},
		{http.MethodGet, "/logout", public, h.logout},
		{http.MethodPost, "/logout", public, h.logout},
		{http.MethodGet, "/hotels", public, h.hotels},
		{http.MethodGet, "/hotels/{id}", public, h.hotel},

		{http.MethodGet, "/profile", signedIn, h.profile},
		{http.MethodGet, "/bookings", signedIn, h.myBookings},
		{http.MethodGet, "/bookings/{id}", signedIn, h.myBooking},
		{http.MethodPost, "/bookings/{id}/cancel", signedIn, h.cancelBooking},
		{http.MethodGet, "/booking", signedIn, h.newBookingPage},
		{http.MethodPost, "/booking", signedIn, h.createBooking},

		{http.MethodGet, "/host", host, h.hostDashboard},
		{http.MethodGet, "/host/bookings", host, h.hostBookings},
		{http.MethodGet, "/host/bookings/{id}", host, h.hostBooking},
		{http.MethodGet, "/host/checkin/{bookingId}", host, h.checkinPage},
		{http.MethodPost, "/host/checkin/{bookingId}", host, h.checkin},

		{http.MethodGet, "/admin", admin, h.adminDashboard},
		{http.MethodGet, "/admin/bookings", admin, h.adminBookings},
	}
}

func (s *Server) MountHandlers(h *Handlers) {
	h.render = s.render
	s.mux.Get("/healthz", h.healthz)
	for _, rt := range h.routes() {
		s.mux.With(s.Gate(rt.req)).Method(rt.method, rt.pattern, rt.handle)
	}
	// unknown paths land on the home page
	s.mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})
}

func urlParam(r *http.Request, key string) string { return chi.URLParam(r, key) }
