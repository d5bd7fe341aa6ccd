package domain

import (
	"context"
	"time"
)

type BookingAPI interface {
	MyBookings(ctx context.Context, f BookingFilter) (Page[Booking], error)
	GetBooking(ctx context.Context, id string) (Booking, error)
	CreateBooking(ctx context.Context, req BookingCreate) (Booking, error)
	CancelBooking(ctx context.Context, id, reason string) (Booking, error)
	HostBookings(ctx context.Context, f BookingFilter) (Page[Booking], error)
	HostBooking(ctx context.Context, id string) (Booking, error)
	HostCheckin(ctx context.Context, id string) (Booking, error)
	HostDashboard(ctx context.Context) (HostDashboard, error)
}

type AuthAPI interface {
	Login(ctx context.Context, username, password string) (AuthTokens, error)
	Logout(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (AuthTokens, error)
	Verify(ctx context.Context, token string) (TokenCheck, error)
	Me(ctx context.Context) (User, error)
}

type HotelAPI interface {
	GetHotel(ctx context.Context, id string) (Hotel, error)
	SearchHotels(ctx context.Context, q HotelSearch) (Page[Hotel], error)
	RoomTypesByHotel(ctx context.Context, hotelID string) (Page[RoomType], error)
	Amenities(ctx context.Context) ([]string, error)
}

type AdminAPI interface {
	AdminDashboard(ctx context.Context) (AdminDashboard, error)
	AdminBookings(ctx context.Context, f BookingFilter) (Page[Booking], error)
}

type SessionStore interface {
	Create(ctx context.Context, s Session, ttl time.Duration) (Session, error)
	Get(ctx context.Context, id string) (*Session, error) // nil, nil when absent
	Save(ctx context.Context, s Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// PageStore keeps short-lived per-page view state and a per-page in-flight lock.
type PageStore interface {
	NewID() string
	Load(ctx context.Context, id string, dst any) (bool, error)
	Store(ctx context.Context, id string, v any, ttl time.Duration) error
	// Lock returns an owner token, or ok=false while another holder has the page.
	Lock(ctx context.Context, id string, ttl time.Duration) (token string, ok bool, err error)
	// Unlock releases the page only if token still owns the lock.
	Unlock(ctx context.Context, id, token string) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
