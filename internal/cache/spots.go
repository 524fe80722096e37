package cache

import (
	"context"

	"github.com/example/parkctl/internal/domain/parking"
)

// SpotSource is the remote call the spot cache needs.
type SpotSource interface {
	ZoneMap(ctx context.Context, zoneID string, day parking.Date) ([]parking.SpotState, error)
}

// Spots memoizes a zone's spot roster (id, name) and the per-date
// free/busy states.
type Spots struct {
	src     SpotSource
	byZone  map[string][]parking.Spot
	byState map[string][]parking.Spot
}

func NewSpots(src SpotSource) *Spots {
	return &Spots{
		src:     src,
		byZone:  make(map[string][]parking.Spot),
		byState: make(map[string][]parking.Spot),
	}
}

func (s *Spots) roster(ctx context.Context, zoneID string) ([]parking.Spot, error) {
	if spots, ok := s.byZone[zoneID]; ok {
		return spots, nil
	}
	states, err := s.src.ZoneMap(ctx, zoneID, parking.Date{})
	if err != nil {
		return nil, err
	}
	spots := make([]parking.Spot, 0, len(states))
	for _, st := range states {
		spots = append(spots, parking.Spot{ID: st.ID, Name: st.Name})
	}
	s.byZone[zoneID] = spots
	return spots, nil
}

// ByName returns the zone's spot with the given name.
func (s *Spots) ByName(ctx context.Context, zoneID, name string) (parking.Spot, bool, error) {
	spots, err := s.roster(ctx, zoneID)
	if err != nil {
		return parking.Spot{}, false, err
	}
	for _, spot := range spots {
		if spot.Name == name {
			return spot, true, nil
		}
	}
	return parking.Spot{}, false, nil
}

// ByID returns the zone's spot with the given id.
func (s *Spots) ByID(ctx context.Context, zoneID, id string) (parking.Spot, bool, error) {
	spots, err := s.roster(ctx, zoneID)
	if err != nil {
		return parking.Spot{}, false, err
	}
	for _, spot := range spots {
		if spot.ID == id {
			return spot, true, nil
		}
	}
	return parking.Spot{}, false, nil
}

// State returns the zone's spots with Free derived from the remote state
// token for the given date. Each distinct date is fetched once per cache
// instance; repeated queries for the same date reuse the first answer.
func (s *Spots) State(ctx context.Context, zoneID string, day parking.Date) ([]parking.Spot, error) {
	key := zoneID + "|" + day.String()
	if spots, ok := s.byState[key]; ok {
		return spots, nil
	}
	states, err := s.src.ZoneMap(ctx, zoneID, day)
	if err != nil {
		return nil, err
	}
	spots := make([]parking.Spot, 0, len(states))
	for _, st := range states {
		spots = append(spots, parking.Spot{ID: st.ID, Name: st.Name, Free: st.State == parking.SpotStateFree})
	}
	s.byState[key] = spots
	return spots, nil
}
