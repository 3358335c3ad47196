package service

import (
	"context"
	"log"
	"math"
	"sort"

	"github.com/w24010/Mapmoments/internal/cache"
	"github.com/w24010/Mapmoments/internal/model"
	"github.com/w24010/Mapmoments/internal/repository"
)

// kmPerDegree converts a planar degree offset into rough kilometers.
// Good enough at city scale; no haversine.
const kmPerDegree = 111.0

// DiscoverService ranks public pins for the trending and nearby feeds.
// Ranking happens here rather than in SQL so the ordering rules stay
// in one testable place.
type DiscoverService struct {
	pinRepo  repository.PinRepository
	trending cache.TrendingCache
}

func NewDiscoverService(pinRepo repository.PinRepository, trending cache.TrendingCache) *DiscoverService {
	return &DiscoverService{
		pinRepo:  pinRepo,
		trending: trending,
	}
}

// Trending returns the top public pins by like count, most recent
// first among equals. Results are cached briefly; the cache being down
// only costs the recomputation.
func (s *DiscoverService) Trending(ctx context.Context) ([]model.Pin, error) {
	if cached, found, err := s.trending.Get(ctx); err == nil && found {
		return cached, nil
	} else if err != nil {
		log.Printf("[DiscoverService] Trending cache read failed: err=%v", err)
	}

	pins, err := s.pinRepo.ListPublic(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(pins, func(i, j int) bool {
		if pins[i].LikeCount != pins[j].LikeCount {
			return pins[i].LikeCount > pins[j].LikeCount
		}
		return pins[i].CreatedAt.After(pins[j].CreatedAt)
	})

	if len(pins) > model.TrendingLimit {
		pins = pins[:model.TrendingLimit]
	}

	if err := s.trending.Set(ctx, pins); err != nil {
		log.Printf("[DiscoverService] Trending cache write failed: err=%v", err)
	}

	return pins, nil
}

// Nearby returns public pins within radiusKm of the query point,
// closest first. Distance is planar: degree offsets scaled to rough
// kilometers. The radius check uses the exact distance; only the
// reported value is rounded.
func (s *DiscoverService) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]model.NearbyPin, error) {
	if radiusKm <= 0 {
		radiusKm = model.DefaultNearbyRadiusKm
	}

	pins, err := s.pinRepo.ListPublic(ctx)
	if err != nil {
		return nil, err
	}

	nearby := []model.NearbyPin{}
	for _, pin := range pins {
		latDiff := math.Abs(pin.Latitude - lat)
		lngDiff := math.Abs(pin.Longitude - lng)
		distance := math.Sqrt(latDiff*latDiff+lngDiff*lngDiff) * kmPerDegree
		if distance <= radiusKm {
			nearby = append(nearby, model.NearbyPin{
				Pin:      pin,
				Distance: math.Round(distance*100) / 100,
			})
		}
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].Distance < nearby[j].Distance
	})

	if len(nearby) > model.NearbyLimit {
		nearby = nearby[:model.NearbyLimit]
	}

	return nearby, nil
}
