package actions

import (
	"context"
	"fmt"

	"github.com/phuslu/log"

	"github.com/example/parkctl/internal/cache"
	"github.com/example/parkctl/internal/domain/parking"
)

// ShowBookings retrieves the zone's full per-day calendar: free-spot
// counts and the caller's own reservations.
type ShowBookings struct {
	*Events
	zones    *cache.Zones
	bookings *cache.Bookings
	req      BookingsRequest
}

func NewShowBookings(svc parking.Service, req BookingsRequest) *ShowBookings {
	return &ShowBookings{
		Events:   NewEvents(),
		zones:    cache.NewZones(svc),
		bookings: cache.NewBookings(svc),
		req:      req,
	}
}

func (a *ShowBookings) Do(ctx context.Context) *BookingsResult {
	log.Info().Str("zone", a.req.ZoneName).Msg("retrieving bookings")
	res := &BookingsResult{Action: KindShowBookings, Request: a.req}

	zone, found, err := a.zones.ByName(ctx, a.req.ZoneName)
	if err != nil {
		res.Outcome = BookingsOutcome{Status: StatusError, Err: err.Error()}
		a.notify(EventError, res)
		return res
	}
	if !found {
		res.Outcome = BookingsOutcome{Status: StatusFailure, Message: fmt.Sprintf("zone %q not found", a.req.ZoneName)}
		a.notify(EventFailure, res)
		return res
	}

	calendar, err := a.bookings.Calendar(ctx, zone.ID)
	if err != nil {
		res.Outcome = BookingsOutcome{Status: StatusError, Err: err.Error()}
		a.notify(EventError, res)
		return res
	}
	res.Outcome = BookingsOutcome{
		Status:   StatusSuccess,
		Bookings: calendar,
		Message:  "Retrieved booking info successfully",
	}
	a.notify(EventSuccess, res)
	return res
}
