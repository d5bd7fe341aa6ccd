package backend

import (
	"context"
	"net/http"
	"net/url"

	"booking_web/internal/domain"
)

func bookingParams(f domain.BookingFilter) url.Values {
	q := pageParams(f.PageNumber, f.PageSize, f.SortBy)
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.PaymentStatus != "" {
		q.Set("paymentStatus", string(f.PaymentStatus))
	}
	if f.HotelID != "" {
		q.Set("hotelId", f.HotelID)
	}
	if f.GuestName != "" {
		q.Set("guestName", f.GuestName)
	}
	return q
}

func (c *Client) MyBookings(ctx context.Context, f domain.BookingFilter) (domain.Page[domain.Booking], error) {
	var out domain.Page[domain.Booking]
	return out, c.call(ctx, http.MethodGet, "/bookings/my", "/bookings/my", bookingParams(f), nil, &out)
}

func (c *Client) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	var out domain.Booking
	return out, c.call(ctx, http.MethodGet, "/bookings/{id}", "/bookings/"+url.PathEscape(id), nil, nil, &out)
}

func (c *Client) CreateBooking(ctx context.Context, req domain.BookingCreate) (domain.Booking, error) {
	var out domain.Booking
	return out, c.call(ctx, http.MethodPost, "/bookings", "/bookings", nil, req, &out)
}

func (c *Client) CancelBooking(ctx context.Context, id, reason string) (domain.Booking, error) {
	var out domain.Booking
	var q url.Values
	if reason != "" {
		q = url.Values{"reason": {reason}}
	}
	return out, c.call(ctx, http.MethodPut, "/bookings/{id}/cancel", "/bookings/"+url.PathEscape(id)+"/cancel", q, nil, &out)
}

func (c *Client) HostBookings(ctx context.Context, f domain.BookingFilter) (domain.Page[domain.Booking], error) {
	var out domain.Page[domain.Booking]
	return out, c.call(ctx, http.MethodGet, "/bookings/host", "/bookings/host", bookingParams(f), nil, &out)
}

// HostBooking reads a booking as the owning host.
func (c *Client) HostBooking(ctx context.Context, id string) (domain.Booking, error) {
	var out domain.Booking
	return out, c.call(ctx, http.MethodGet, "/bookings/host/{id}", "/bookings/host/"+url.PathEscape(id), nil, nil, &out)
}

// HostCheckin redeems the guest's QR code. The result is the backend's post-transition record.
func (c *Client) HostCheckin(ctx context.Context, id string) (domain.Booking, error) {
	var out domain.Booking
	path := "/bookings/host/" + url.PathEscape(id) + "/checkin"
	return out, c.call(ctx, http.MethodPost, "/bookings/host/{id}/checkin", path, nil, nil, &out)
}

func (c *Client) HostDashboard(ctx context.Context) (domain.HostDashboard, error) {
	var out domain.HostDashboard
	return out, c.call(ctx, http.MethodGet, "/bookings/host/dashboard", "/bookings/host/dashboard", nil, nil, &out)
}
