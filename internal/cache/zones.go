// Package cache holds the per-invocation lazy caches that translate
// human-readable zone and spot names to service identifiers. A cache
// instance is owned by exactly one action and lives for one command
// invocation; there is no invalidation — discard the instance when fresher
// data is required.
package cache

import (
	"context"

	"github.com/example/parkctl/internal/domain/parking"
)

// ZoneSource is the one remote call the zone cache needs.
type ZoneSource interface {
	Zones(ctx context.Context) ([]parking.Zone, error)
}

// Zones memoizes the zone list for one invocation.
type Zones struct {
	src    ZoneSource
	zones  []parking.Zone
	loaded bool
}

func NewZones(src ZoneSource) *Zones {
	return &Zones{src: src}
}

// All returns the zone list, fetching it at most once.
func (z *Zones) All(ctx context.Context) ([]parking.Zone, error) {
	if !z.loaded {
		zones, err := z.src.Zones(ctx)
		if err != nil {
			return nil, err
		}
		z.zones = zones
		z.loaded = true
	}
	return z.zones, nil
}

// ByName returns the zone with the given name. A missing zone is a normal
// outcome, reported through the bool, not an error.
func (z *Zones) ByName(ctx context.Context, name string) (parking.Zone, bool, error) {
	zones, err := z.All(ctx)
	if err != nil {
		return parking.Zone{}, false, err
	}
	for _, zone := range zones {
		if zone.Name == name {
			return zone, true, nil
		}
	}
	return parking.Zone{}, false, nil
}

// ByID returns the zone with the given id.
func (z *Zones) ByID(ctx context.Context, id string) (parking.Zone, bool, error) {
	zones, err := z.All(ctx)
	if err != nil {
		return parking.Zone{}, false, err
	}
	for _, zone := range zones {
		if zone.ID == id {
			return zone, true, nil
		}
	}
	return parking.Zone{}, false, nil
}
