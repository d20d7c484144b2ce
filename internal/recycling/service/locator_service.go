package service

import (
	"context"
	"sort"

	"github.com/eleccycle/eleccycle-backend/internal/geo"
	"github.com/eleccycle/eleccycle-backend/internal/recycling/domain"
)

// LocatorService fetches collection points and ranks them by proximity.
type LocatorService struct {
	points PointStore
}

func NewLocatorService(points PointStore) *LocatorService {
	return &LocatorService{points: points}
}

// Locate returns all known collection points. When a user coordinate is
// supplied, each point gets its great-circle distance attached and the
// result is sorted nearest first; without one, the set comes back in store
// order with no distances. A failed fetch returns the error as-is so an
// outage stays distinguishable from an empty set.
func (s *LocatorService) Locate(ctx context.Context, userLoc *geo.Coordinate) ([]domain.CollectionPoint, error) {
	points, err := s.points.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if userLoc == nil {
		return points, nil
	}

	for i := range points {
		d := geo.Distance(*userLoc, points[i].Location)
		points[i].DistanceKm = &d
	}

	sort.SliceStable(points, func(i, j int) bool {
		return *points[i].DistanceKm < *points[j].DistanceKm
	})

	return points, nil
}
