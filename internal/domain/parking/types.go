package parking

// Zone is a parking spot zone as listed by the marketplace.
type Zone struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Spot is a single parking spot. Free is only meaningful for a spot
// returned by a date-scoped state query; it is not a persistent property.
type Spot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Free bool   `json:"free"`
}

// SpotState is the raw per-spot state as reported by the zone map for a
// single date. State is the service's literal token (e.g. "Free", "Taken").
type SpotState struct {
	ID    string
	Name  string
	State string
}

// SpotStateFree is the only state token that counts as bookable.
const SpotStateFree = "Free"

// CalendarDay is one day of the zone calendar in wire order, before the
// bookings cache flattens and sorts it.
type CalendarDay struct {
	Day       string
	FreeSpots int
	Reserved  *ReservedSpot
}

// ReservedSpot is the caller's own reservation on a calendar day.
type ReservedSpot struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ZoneID   string `json:"parkingSpotZoneId"`
	ZoneName string `json:"parkingSpotZoneName"`
}

// Booking is one calendar day's state for the caller in a given zone.
// MyBooking is nil when the caller holds no reservation that day.
type Booking struct {
	Day       Date          `json:"day"`
	FreeSpots int           `json:"free_spots"`
	MyBooking *ReservedSpot `json:"my_booking,omitempty"`
}

// Employee can receive a cancelled reservation.
type Employee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TakeResult is the outcome of a take-spot call.
type TakeResult struct {
	Status   string
	Received *ReservedSpot
}

// StatusReserved is the take-spot status token for a successful booking.
const StatusReserved = "Reserved"

// Reserved reports whether the call actually booked a spot.
func (r TakeResult) Reserved() bool { return r.Status == StatusReserved }

// ReleaseResult distinguishes the service's empty-body success response
// from a non-empty body. The service answers a successful resign with no
// content at all; anything else is surfaced verbatim for the caller to
// classify.
type ReleaseResult struct {
	Empty bool
	Body  string
}
