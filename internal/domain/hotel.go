package domain

type Hotel struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Description        string  `json:"description,omitempty"`
	Address            string  `json:"address"`
	City               string  `json:"city,omitempty"`
	Country            string  `json:"country,omitempty"`
	Phone              string  `json:"phone,omitempty"`
	Email              string  `json:"email,omitempty"`
	StarRating         int     `json:"starRating,omitempty"`
	CheckInTime        string  `json:"checkInTime,omitempty"`
	CheckOutTime       string  `json:"checkOutTime,omitempty"`
	ImageURL           string  `json:"imageUrl,omitempty"`
	PricePerNight      float64 `json:"pricePerNight,omitempty"`
	Amenities          string  `json:"amenities,omitempty"` // comma separated, as the backend stores it
	CancellationPolicy string  `json:"cancellationPolicy,omitempty"`
	AverageRating      float64 `json:"averageRating,omitempty"`
	TotalReviews       int     `json:"totalReviews,omitempty"`
	Active             bool    `json:"active"`
	Featured           bool    `json:"featured"`
}

type RoomType struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	MaxOccupancy   int     `json:"maxOccupancy"`
	BedType        string  `json:"bedType,omitempty"`
	PricePerNight  float64 `json:"pricePerNight"`
	TotalRooms     int     `json:"totalRooms"`
	AvailableRooms int     `json:"availableRooms"`
	HotelID        string  `json:"hotelId"`
}

// HotelSearch is the query forwarded to the backend's filtered hotel search.
type HotelSearch struct {
	City       string
	StarRating int
	MinPrice   float64
	MaxPrice   float64
	Amenities  []string
	PageNumber int
	PageSize   int
	SortBy     string
	SortDir    string // asc or desc
}

type User struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	Tel           string     `json:"tel,omitempty"`
	Address       string     `json:"address,omitempty"`
	Roles         []UserRole `json:"roles"`
	Active        bool       `json:"active"`
	EmailVerified bool       `json:"emailVerified,omitempty"`
}

type UserRole struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type AdminDashboard struct {
	TotalHotels     int `json:"totalHotels"`
	ActiveHotels    int `json:"activeHotels"`
	InactiveHotels  int `json:"inactiveHotels"`
	FeaturedHotels  int `json:"featuredHotels"`
	TotalRoomTypes  int `json:"totalRoomTypes"`
	TotalReviews    int `json:"totalReviews"`
	ApprovedReviews int `json:"approvedReviews"`
	PendingReviews  int `json:"pendingReviews"`
	VerifiedReviews int `json:"verifiedReviews"`
	TotalUsers      int `json:"totalUsers"`
}

type HostDashboard struct {
	TotalHotels       int     `json:"totalHotels"`
	ActiveHotels      int     `json:"activeHotels"`
	TotalRoomTypes    int     `json:"totalRoomTypes"`
	TotalBookings     int     `json:"totalBookings"`
	MonthlyRevenue    float64 `json:"monthlyRevenue"`
	AverageRating     float64 `json:"averageRating"`
	OccupancyRate     float64 `json:"occupancyRate"`
	TotalReviews      int     `json:"totalReviews"`
	PendingBookings   int     `json:"pendingBookings"`
	ConfirmedBookings int     `json:"confirmedBookings"`
}
