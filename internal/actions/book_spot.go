package actions

import (
	"context"
	"fmt"

	"github.com/phuslu/log"

	"github.com/example/parkctl/internal/cache"
	"github.com/example/parkctl/internal/domain/parking"
)

// WildcardSpot in a preference list means "any free spot"; the service
// picks one when the request carries no spot identifier.
const WildcardSpot = "*"

// BookSpot books one spot for one date, trying the caller's ordered spot
// preferences until one succeeds.
type BookSpot struct {
	*Events
	svc   parking.Service
	zones *cache.Zones
	spots *cache.Spots
	req   BookRequest
}

func NewBookSpot(svc parking.Service, req BookRequest) *BookSpot {
	return &BookSpot{
		Events: NewEvents(),
		svc:    svc,
		zones:  cache.NewZones(svc),
		spots:  cache.NewSpots(svc),
		req:    req,
	}
}

func (a *BookSpot) Do(ctx context.Context) *BookResult {
	return a.DoForPayload(ctx, a.req)
}

// DoForPayload runs the booking for an arbitrary request against this
// action's caches. Batch callers reuse one BookSpot across many dates so
// the zone and roster lookups are paid once.
func (a *BookSpot) DoForPayload(ctx context.Context, req BookRequest) *BookResult {
	log.Info().Str("zone", req.ZoneName).Str("day", req.ForDate.String()).Strs("spots", req.SpotNames).Msg("booking a spot")
	res := &BookResult{Action: KindBookSpot, Request: req}

	zone, found, err := a.zones.ByName(ctx, req.ZoneName)
	if err != nil {
		res.Outcome = BookOutcome{Status: StatusError, Err: err.Error()}
		a.notify(EventError, res)
		return res
	}
	if !found {
		res.Outcome = BookOutcome{Status: StatusFailure, Messages: []string{fmt.Sprintf("zone %q not found", req.ZoneName)}}
		a.notify(EventFailure, res)
		return res
	}

	states, err := a.spots.State(ctx, zone.ID, req.ForDate)
	if err != nil {
		res.Outcome = BookOutcome{Status: StatusError, Err: err.Error()}
		a.notify(EventError, res)
		return res
	}
	candidates, err := a.expandSelection(ctx, zone.ID, req.SpotNames, states)
	if err != nil {
		res.Outcome = BookOutcome{Status: StatusError, Err: err.Error()}
		a.notify(EventError, res)
		return res
	}

	var failures []string
	for _, candidate := range candidates {
		take, err := a.svc.TakeSpot(ctx, zone.ID, candidate.id, req.ForDate)
		if err != nil {
			// One candidate erroring must not abort the rest.
			a.notify(EventError, &ErrorDetail{Action: KindBookSpot, Err: err.Error()})
			failures = append(failures, fmt.Sprintf("error while reserving spot %s for %s: %v", candidate.label(), req.ForDate, err))
			continue
		}
		if take.Reserved() {
			out := BookOutcome{Status: StatusSuccess, Zone: zone.Name, ForDate: req.ForDate.String()}
			if take.Received != nil {
				out.Spot = take.Received.Name
			} else {
				out.Note = "reservation confirmed but the response carried no spot details"
			}
			res.Outcome = out
			a.notify(EventSuccess, res)
			return res
		}
		failures = append(failures, fmt.Sprintf("couldn't reserve spot %s for %s", candidate.label(), req.ForDate))
	}

	if len(failures) == 0 {
		failures = []string{fmt.Sprintf("none of the requested spots is free in %q on %s", req.ZoneName, req.ForDate)}
	}
	res.Outcome = BookOutcome{Status: StatusFailure, Messages: failures}
	a.notify(EventFailure, res)
	return res
}

// candidate is one booking attempt target. A nil id means "any spot".
type candidate struct {
	id   *string
	name string
}

func (c candidate) label() string {
	if c.id == nil {
		return "<any>"
	}
	return c.name
}

// expandSelection translates the ordered preference names into spot
// identifiers, keeping only spots that are currently free. The wildcard
// maps to a nil identifier and stops the expansion: once the caller
// accepts any spot there is nothing left to prefer.
func (a *BookSpot) expandSelection(ctx context.Context, zoneID string, preferences []string, states []parking.Spot) ([]candidate, error) {
	free := make(map[string]bool, len(states))
	for _, s := range states {
		if s.Free {
			free[s.Name] = true
		}
	}

	var out []candidate
	for _, pref := range preferences {
		if pref == WildcardSpot {
			out = append(out, candidate{})
			break
		}
		if !free[pref] {
			continue
		}
		spot, found, err := a.spots.ByName(ctx, zoneID, pref)
		if err != nil {
			return nil, err
		}
		if !found {
			log.Warn().Str("spot", pref).Msg("spot is on the zone map but missing from the roster")
			continue
		}
		id := spot.ID
		out = append(out, candidate{id: &id, name: spot.Name})
	}
	return out, nil
}
