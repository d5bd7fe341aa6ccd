package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"booking_web/internal/domain"
)

// HotelQueries serves public hotel reads. Anonymous requests go through the
// cache; signed-in requests always hit the backend.
type HotelQueries struct {
	api      domain.HotelAPI
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewHotelQueries(api domain.HotelAPI, c domain.Cache, ttl time.Duration) *HotelQueries {
	return &HotelQueries{api: api, cache: c, cacheTTL: ttl}
}

func (s *HotelQueries) cacheable(ctx context.Context) bool {
	if s.cache == nil || s.cacheTTL <= 0 {
		return false
	}
	_, signedIn := domain.SessionFrom(ctx)
	return !signedIn
}

func (s *HotelQueries) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	key := "hotel:" + id
	var h domain.Hotel
	useCache := s.cacheable(ctx)
	if useCache {
		if ok, _ := s.cache.Get(ctx, key, &h); ok {
			return h, nil
		}
	}
	h, err := s.api.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	if useCache {
		_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	}
	return h, nil
}

func (s *HotelQueries) Search(ctx context.Context, q domain.HotelSearch) (domain.Page[domain.Hotel], error) {
	key := searchKey(q)
	var out domain.Page[domain.Hotel]
	useCache := s.cacheable(ctx)
	if useCache {
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}
	out, err := s.api.SearchHotels(ctx, q)
	if err != nil {
		return domain.Page[domain.Hotel]{}, err
	}
	if useCache {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

// RoomTypes is never cached: availability changes with every booking.
func (s *HotelQueries) RoomTypes(ctx context.Context, hotelID string) ([]domain.RoomType, error) {
	p, err := s.api.RoomTypesByHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	return p.Content, nil
}

func (s *HotelQueries) Amenities(ctx context.Context) ([]string, error) {
	const key = "amenities"
	var out []string
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}
	out, err := s.api.Amenities(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil && s.cacheTTL > 0 {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

func searchKey(q domain.HotelSearch) string {
	raw := fmt.Sprintf("%s|%d|%g|%g|%s|%d|%d|%s|%s",
		strings.ToLower(q.City), q.StarRating, q.MinPrice, q.MaxPrice,
		strings.Join(q.Amenities, ","), q.PageNumber, q.PageSize, q.SortBy, q.SortDir)
	sum := sha1.Sum([]byte(raw))
	return "search:" + hex.EncodeToString(sum[:])
}
