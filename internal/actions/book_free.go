package actions

import (
	"context"

	"github.com/phuslu/log"

	"github.com/example/parkctl/internal/domain/parking"
)

// BookFreeSpots walks the zone's calendar and books every bookable day on
// or after the cutoff date: weekdays where the caller has no reservation
// yet and at least one spot is free. Individual days may fail without
// failing the batch; the aggregate result always reports the full attempt
// list.
type BookFreeSpots struct {
	*Events
	svc parking.Service
	req BookFreeRequest
}

func NewBookFreeSpots(svc parking.Service, req BookFreeRequest) *BookFreeSpots {
	return &BookFreeSpots{Events: NewEvents(), svc: svc, req: req}
}

func (a *BookFreeSpots) Do(ctx context.Context) *BookFreeResult {
	log.Info().Str("zone", a.req.ZoneName).Str("start_from", a.req.StartFrom.String()).Msg("booking free spots")
	res := &BookFreeResult{Action: KindBookFree, Request: a.req}

	show := NewShowBookings(a.svc, BookingsRequest{ZoneName: a.req.ZoneName})
	calendar := show.Do(ctx)
	if calendar.Outcome.Status != StatusSuccess {
		res.Outcome = BookFreeOutcome{
			Status: calendar.Outcome.Status,
			Err:    firstNonEmpty(calendar.Outcome.Err, calendar.Outcome.Message),
		}
		if calendar.Outcome.Status == StatusError {
			a.notify(EventError, res)
		} else {
			a.notify(EventFailure, res)
		}
		return res
	}

	book := NewBookSpot(a.svc, BookRequest{ZoneName: a.req.ZoneName, SpotNames: a.req.SpotNames})
	attempts := []*BookResult{}
	for _, day := range calendar.Outcome.Bookings {
		if !a.bookable(day) {
			continue
		}
		attempts = append(attempts, book.DoForPayload(ctx, BookRequest{
			ForDate:   day.Day,
			ZoneName:  a.req.ZoneName,
			SpotNames: a.req.SpotNames,
		}))
	}

	res.Outcome = BookFreeOutcome{Status: StatusSuccess, Attempts: attempts}
	a.notify(EventSuccess, res)
	return res
}

// bookable filters the calendar to days worth attempting: on or after the
// cutoff, weekday, not already booked by the caller, and with at least one
// free spot.
func (a *BookFreeSpots) bookable(day parking.Booking) bool {
	return !day.Day.Before(a.req.StartFrom) &&
		day.MyBooking == nil &&
		day.Day.IsWeekday() &&
		day.FreeSpots > 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
