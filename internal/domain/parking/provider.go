package parking

import "context"

// Service is the set of remote operations the caches and actions need.
// *parkanizer.Client is the production implementation.
type Service interface {
	// Zones lists the marketplace parking spot zones.
	Zones(ctx context.Context) ([]Zone, error)

	// MyReservations lists the caller's current reservations.
	MyReservations(ctx context.Context) ([]Booking, error)

	// ZoneCalendar returns the zone's day-by-day availability calendar in
	// wire order (the active reservation window starting from today).
	ZoneCalendar(ctx context.Context, zoneID string) ([]CalendarDay, error)

	// ZoneMap returns the per-spot states for a zone on a single date.
	// A zero date means today.
	ZoneMap(ctx context.Context, zoneID string, day Date) ([]SpotState, error)

	// TakeSpot books a spot for the given day. A nil spotID asks the
	// service to pick any available spot.
	TakeSpot(ctx context.Context, zoneID string, spotID *string, day Date) (TakeResult, error)

	// ReleaseSpot resigns the caller's reservation for the given day.
	ReleaseSpot(ctx context.Context, day Date) (ReleaseResult, error)

	// Beneficiaries lists employees that can receive a cancelled
	// reservation around the given day.
	Beneficiaries(ctx context.Context, day Date) ([]Employee, error)
}
