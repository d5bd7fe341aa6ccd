package app

import (
	"context"
	"errors"

	"booking_web/internal/domain"
)

var ErrRoomUnavailable = errors.New("room type is not available for this hotel")

// BookingService holds the guest-side booking commands.
type BookingService struct {
	api    domain.BookingAPI
	hotels domain.HotelAPI
}

func NewBookingService(api domain.BookingAPI, hotels domain.HotelAPI) *BookingService {
	return &BookingService{api: api, hotels: hotels}
}

// Create prices the stay from the room type's current nightly rate and
// submits the booking.
func (s *BookingService) Create(ctx context.Context, f BookingForm) (domain.Booking, error) {
	rooms, err := s.hotels.RoomTypesByHotel(ctx, f.HotelID)
	if err != nil {
		return domain.Booking{}, err
	}
	var room *domain.RoomType
	for i := range rooms.Content {
		if rooms.Content[i].ID == f.RoomTypeID {
			room = &rooms.Content[i]
			break
		}
	}
	if room == nil || room.AvailableRooms <= 0 {
		return domain.Booking{}, ErrRoomUnavailable
	}
	if room.MaxOccupancy > 0 && f.Guests > room.MaxOccupancy {
		return domain.Booking{}, FieldErrors{"guests": "must be at most " + itoa(room.MaxOccupancy)}
	}
	return s.api.CreateBooking(ctx, domain.BookingCreate{
		HotelID:         f.HotelID,
		RoomTypeID:      f.RoomTypeID,
		CheckInDate:     f.CheckIn,
		CheckOutDate:    f.CheckOut,
		Guests:          f.Guests,
		TotalAmount:     room.PricePerNight * float64(f.Nights()),
		PaymentMethod:   f.PaymentMethod,
		SpecialRequests: f.SpecialRequests,
		VoucherCode:     f.VoucherCode,
	})
}

// Cancel refuses locally when the status can no longer be cancelled, so the
// user gets a clear message without a round trip.
func (s *BookingService) Cancel(ctx context.Context, id, reason string) (domain.Booking, error) {
	b, err := s.api.GetBooking(ctx, id)
	if err != nil {
		return domain.Booking{}, err
	}
	if !b.Status.Cancellable() {
		return b, &domain.APIError{Status: 409, Message: "This booking can no longer be cancelled."}
	}
	return s.api.CancelBooking(ctx, id, reason)
}
