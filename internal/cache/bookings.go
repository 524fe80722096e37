package cache

import (
	"context"
	"sort"

	"github.com/example/parkctl/internal/domain/parking"
)

// BookingSource is the remote call the bookings cache needs.
type BookingSource interface {
	ZoneCalendar(ctx context.Context, zoneID string) ([]parking.CalendarDay, error)
}

// Bookings memoizes the caller's reservation calendar per zone.
type Bookings struct {
	src    BookingSource
	byZone map[string][]parking.Booking
}

func NewBookings(src BookingSource) *Bookings {
	return &Bookings{src: src, byZone: make(map[string][]parking.Booking)}
}

// Calendar returns the zone's day-sorted calendar, fetching it at most
// once per zone.
func (b *Bookings) Calendar(ctx context.Context, zoneID string) ([]parking.Booking, error) {
	if bookings, ok := b.byZone[zoneID]; ok {
		return bookings, nil
	}
	days, err := b.src.ZoneCalendar(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	bookings := make([]parking.Booking, 0, len(days))
	for _, d := range days {
		day, err := parking.ParseDate(d.Day)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, parking.Booking{Day: day, FreeSpots: d.FreeSpots, MyBooking: d.Reserved})
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].Day.Before(bookings[j].Day) })
	b.byZone[zoneID] = bookings
	return bookings, nil
}

// ByDate returns the calendar entry for one day.
func (b *Bookings) ByDate(ctx context.Context, zoneID string, day parking.Date) (parking.Booking, bool, error) {
	bookings, err := b.Calendar(ctx, zoneID)
	if err != nil {
		return parking.Booking{}, false, err
	}
	for _, booking := range bookings {
		if booking.Day.Equal(day) {
			return booking, true, nil
		}
	}
	return parking.Booking{}, false, nil
}
