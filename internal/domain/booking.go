package domain

import "time"

type BookingStatus string

const (
	BookingPending          BookingStatus = "PENDING"
	BookingConfirmed        BookingStatus = "CONFIRMED"
	BookingCancelled        BookingStatus = "CANCELLED"
	BookingCompleted        BookingStatus = "COMPLETED"
	BookingNoShow           BookingStatus = "NO_SHOW"
	BookingCancelledByGuest BookingStatus = "CANCELLED_BY_GUEST"
	BookingCancelledByHost  BookingStatus = "CANCELLED_BY_HOST"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted,
		BookingNoShow, BookingCancelledByGuest, BookingCancelledByHost:
		return true
	}
	return false
}

// Cancellable reports whether a guest may still cancel the booking.
func (s BookingStatus) Cancellable() bool {
	return s == BookingPending || s == BookingConfirmed
}

func (s BookingStatus) Label() string {
	switch s {
	case BookingPending:
		return "Pending"
	case BookingConfirmed:
		return "Confirmed"
	case BookingCancelled:
		return "Cancelled"
	case BookingCompleted:
		return "Completed"
	case BookingNoShow:
		return "No show"
	case BookingCancelledByGuest:
		return "Cancelled by guest"
	case BookingCancelledByHost:
		return "Cancelled by host"
	}
	return string(s)
}

type PaymentStatus string

const (
	PaymentPending           PaymentStatus = "PENDING"
	PaymentPaid              PaymentStatus = "PAID"
	PaymentFailed            PaymentStatus = "FAILED"
	PaymentRefunded          PaymentStatus = "REFUNDED"
	PaymentPartiallyRefunded PaymentStatus = "PARTIALLY_REFUNDED"
	PaymentRefundPending     PaymentStatus = "REFUND_PENDING"
	PaymentNone              PaymentStatus = "NO_PAYMENT"
	PaymentCancelled         PaymentStatus = "CANCELLED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded,
		PaymentPartiallyRefunded, PaymentRefundPending, PaymentNone, PaymentCancelled:
		return true
	}
	return false
}

func (s PaymentStatus) Label() string {
	switch s {
	case PaymentPending:
		return "Pending"
	case PaymentPaid:
		return "Paid"
	case PaymentFailed:
		return "Failed"
	case PaymentRefunded:
		return "Refunded"
	case PaymentPartiallyRefunded:
		return "Partially refunded"
	case PaymentRefundPending:
		return "Refund pending"
	case PaymentNone:
		return "No payment"
	case PaymentCancelled:
		return "Cancelled"
	}
	return string(s)
}

// Booking is a read-only snapshot of the backend's booking record.
// Dates are kept in the backend's wire format (ISO local date / date-time).
type Booking struct {
	ID               string        `json:"id"`
	BookingReference string        `json:"bookingReference"`
	GuestName        string        `json:"guestName"`
	GuestEmail       string        `json:"guestEmail"`
	GuestPhone       string        `json:"guestPhone,omitempty"`
	HotelID          string        `json:"hotelId"`
	HotelName        string        `json:"hotelName"`
	HotelAddress     string        `json:"hotelAddress,omitempty"`
	HotelPhone       string        `json:"hotelPhone,omitempty"`
	HotelEmail       string        `json:"hotelEmail,omitempty"`
	RoomTypeID       string        `json:"roomTypeId"`
	RoomTypeName     string        `json:"roomTypeName"`
	RoomDescription  string        `json:"roomDescription,omitempty"`
	MaxOccupancy     int           `json:"maxOccupancy,omitempty"`
	BedType          string        `json:"bedType,omitempty"`
	UserID           string        `json:"userId,omitempty"`
	UserName         string        `json:"userName,omitempty"`
	CheckInDate      string        `json:"checkInDate"`
	CheckOutDate     string        `json:"checkOutDate"`
	Guests           int           `json:"guests"`
	TotalAmount      float64       `json:"totalAmount"`
	Status           BookingStatus `json:"status"`
	PaymentStatus    PaymentStatus `json:"paymentStatus"`
	PaymentMethod    string        `json:"paymentMethod,omitempty"`
	SpecialRequests  string        `json:"specialRequests,omitempty"`
	NumberOfNights   int           `json:"numberOfNights,omitempty"`
	PricePerNight    float64       `json:"pricePerNight,omitempty"`
	QRCodeUsed       bool          `json:"qrCodeUsed"`
	CreatedAt        string        `json:"createdAt,omitempty"`
	UpdatedAt        string        `json:"updatedAt,omitempty"`
	CreatedBy        string        `json:"createdBy,omitempty"`
	UpdatedBy        string        `json:"updatedBy,omitempty"`
}

// CheckIn and CheckOut parse the stay dates; zero time when the backend sent something unparsable.
func (b Booking) CheckIn() time.Time  { return parseDate(b.CheckInDate) }
func (b Booking) CheckOut() time.Time { return parseDate(b.CheckOutDate) }

func parseDate(s string) time.Time {
	for _, layout := range []string{"2006-01-02", "2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

type BookingCreate struct {
	HotelID         string  `json:"hotelId"`
	RoomTypeID      string  `json:"roomTypeId"`
	CheckInDate     string  `json:"checkInDate"`
	CheckOutDate    string  `json:"checkOutDate"`
	Guests          int     `json:"guests"`
	TotalAmount     float64 `json:"totalAmount"`
	PaymentMethod   string  `json:"paymentMethod,omitempty"`
	SpecialRequests string  `json:"specialRequests,omitempty"`
	VoucherCode     string  `json:"voucherCode,omitempty"`
}

type BookingFilter struct {
	Status        BookingStatus
	PaymentStatus PaymentStatus
	HotelID       string
	GuestName     string
	PageNumber    int
	PageSize      int
	SortBy        string
}

// Page mirrors the backend's paginated result shape.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
}

func (p Page[T]) HasNext() bool { return p.Number+1 < p.TotalPages }
func (p Page[T]) HasPrev() bool { return p.Number > 0 }
