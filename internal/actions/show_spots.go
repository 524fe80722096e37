package actions

import (
	"context"
	"fmt"

	"github.com/phuslu/log"

	"github.com/example/parkctl/internal/cache"
	"github.com/example/parkctl/internal/domain/parking"
)

// ShowSpotsState retrieves the per-spot free/busy state of a zone for a
// single date.
type ShowSpotsState struct {
	*Events
	zones *cache.Zones
	spots *cache.Spots
	req   SpotsRequest
}

func NewShowSpotsState(svc parking.Service, req SpotsRequest) *ShowSpotsState {
	return &ShowSpotsState{
		Events: NewEvents(),
		zones:  cache.NewZones(svc),
		spots:  cache.NewSpots(svc),
		req:    req,
	}
}

func (a *ShowSpotsState) Do(ctx context.Context) *SpotsResult {
	return a.DoForPayload(ctx, a.req)
}

func (a *ShowSpotsState) DoForPayload(ctx context.Context, req SpotsRequest) *SpotsResult {
	log.Info().Str("zone", req.ZoneName).Str("day", req.ForDate.String()).Msg("retrieving spot states")
	res := &SpotsResult{Action: KindShowSpots, Request: req}

	zone, found, err := a.zones.ByName(ctx, req.ZoneName)
	if err != nil {
		res.Outcome = SpotsOutcome{Status: StatusError, Err: err.Error()}
		a.notify(EventError, res)
		return res
	}
	if !found {
		res.Outcome = SpotsOutcome{Status: StatusFailure, Message: fmt.Sprintf("zone %q not found", req.ZoneName)}
		a.notify(EventFailure, res)
		return res
	}

	spots, err := a.spots.State(ctx, zone.ID, req.ForDate)
	if err != nil {
		res.Outcome = SpotsOutcome{Status: StatusError, Err: err.Error()}
		a.notify(EventError, res)
		return res
	}
	res.Outcome = SpotsOutcome{
		Status:  StatusSuccess,
		Zone:    zone.Name,
		ForDate: req.ForDate.String(),
		Spots:   spots,
	}
	a.notify(EventSuccess, res)
	return res
}
