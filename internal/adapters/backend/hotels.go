package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"booking_web/internal/domain"
)

func (c *Client) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	var out domain.Hotel
	return out, c.call(ctx, http.MethodGet, "/hotels/{id}", "/hotels/"+url.PathEscape(id), nil, nil, &out)
}

func (c *Client) SearchHotels(ctx context.Context, s domain.HotelSearch) (domain.Page[domain.Hotel], error) {
	q := pageParams(s.PageNumber, s.PageSize, s.SortBy)
	if s.SortDir != "" {
		q.Set("sortDir", s.SortDir)
	}
	if s.City != "" {
		q.Set("city", s.City)
	}
	if s.StarRating > 0 {
		q.Set("starRating", fmt.Sprint(s.StarRating))
	}
	if s.MinPrice > 0 {
		q.Set("minPrice", fmt.Sprint(s.MinPrice))
	}
	if s.MaxPrice > 0 {
		q.Set("maxPrice", fmt.Sprint(s.MaxPrice))
	}
	if len(s.Amenities) > 0 {
		q.Set("amenities", strings.Join(s.Amenities, ","))
	}
	var out domain.Page[domain.Hotel]
	return out, c.call(ctx, http.MethodGet, "/hotels/search/filters", "/hotels/search/filters", q, nil, &out)
}

func (c *Client) RoomTypesByHotel(ctx context.Context, hotelID string) (domain.Page[domain.RoomType], error) {
	var out domain.Page[domain.RoomType]
	path := "/room-types/hotel/" + url.PathEscape(hotelID) + "/available"
	return out, c.call(ctx, http.MethodGet, "/room-types/hotel/{id}/available", path,
		pageParams(0, 50, "pricePerNight"), nil, &out)
}

func (c *Client) Amenities(ctx context.Context) ([]string, error) {
	var out []string
	return out, c.call(ctx, http.MethodGet, "/hotels/amenities", "/hotels/amenities", nil, nil, &out)
}
