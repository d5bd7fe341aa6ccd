package backend

import (
	"context"
	"net/http"

	"booking_web/internal/domain"
)

func (c *Client) AdminDashboard(ctx context.Context) (domain.AdminDashboard, error) {
	var out domain.AdminDashboard
	return out, c.call(ctx, http.MethodGet, "/admin/dashboard", "/admin/dashboard", nil, nil, &out)
}

func (c *Client) AdminBookings(ctx context.Context, f domain.BookingFilter) (domain.Page[domain.Booking], error) {
	var out domain.Page[domain.Booking]
	return out, c.call(ctx, http.MethodGet, "/bookings/admin", "/bookings/admin", bookingParams(f), nil, &out)
}
