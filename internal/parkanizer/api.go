package parkanizer

import (
	"context"
	"errors"

	"github.com/example/parkctl/internal/domain/parking"
)

// bookingInterval is the fixed-duration token pair the service uses for a
// full-day reservation window.
type bookingInterval struct {
	From string `json:"fromBookingTime"`
	To   string `json:"toBookingTime"`
}

var fullDay = bookingInterval{From: "P0DT00H00M", To: "P1DT00H00M"}

type calendarDayEntry struct {
	Day                       string                `json:"day"`
	FreeSpots                 int                   `json:"freeSpots"`
	ReservedParkingSpotOrNull *parking.ReservedSpot `json:"reservedParkingSpotOrNull"`
}

type weeksResponse struct {
	Weeks []struct {
		Week []calendarDayEntry `json:"week"`
	} `json:"weeks"`
}

func (r weeksResponse) flatten() []parking.CalendarDay {
	var out []parking.CalendarDay
	for _, w := range r.Weeks {
		for _, d := range w.Week {
			out = append(out, parking.CalendarDay{
				Day:       d.Day,
				FreeSpots: d.FreeSpots,
				Reserved:  d.ReservedParkingSpotOrNull,
			})
		}
	}
	return out
}

// Zones lists the marketplace parking spot zones.
func (c *Client) Zones(ctx context.Context) ([]parking.Zone, error) {
	var resp struct {
		ParkingSpotZones []parking.Zone `json:"parkingSpotZones"`
	}
	if err := c.post(ctx, zonesPath, struct{}{}, &resp); err != nil {
		return nil, err
	}
	return resp.ParkingSpotZones, nil
}

// MyReservations lists the caller's current reservations across zones.
func (c *Client) MyReservations(ctx context.Context) ([]parking.Booking, error) {
	var resp struct {
		Reservations []calendarDayEntry `json:"reservations"`
	}
	if err := c.get(ctx, myReservationsPath, &resp); err != nil {
		return nil, err
	}
	out := make([]parking.Booking, 0, len(resp.Reservations))
	for _, r := range resp.Reservations {
		day, err := parking.ParseDate(r.Day)
		if err != nil {
			return nil, err
		}
		out = append(out, parking.Booking{Day: day, FreeSpots: r.FreeSpots, MyBooking: r.ReservedParkingSpotOrNull})
	}
	return out, nil
}

// ZoneCalendar returns the zone's availability calendar in wire order.
// The service scopes it to the active reservation window from today.
func (c *Client) ZoneCalendar(ctx context.Context, zoneID string) ([]parking.CalendarDay, error) {
	payload := struct {
		ZoneID   string          `json:"parkingSpotZoneId"`
		Interval bookingInterval `json:"bookingTimeInterval"`
	}{ZoneID: zoneID, Interval: fullDay}

	var resp weeksResponse
	if err := c.post(ctx, spotsPath, payload, &resp); err != nil {
		return nil, err
	}
	return resp.flatten(), nil
}

// ZoneMap returns every spot in the zone with its state on the given date.
// A zero date means today.
func (c *Client) ZoneMap(ctx context.Context, zoneID string, day parking.Date) ([]parking.SpotState, error) {
	if day.IsZero() {
		day = parking.Today()
	}
	payload := struct {
		ZoneID   string          `json:"parkingSpotZoneId"`
		Date     string          `json:"date"`
		Interval bookingInterval `json:"bookingTimeInterval"`
	}{ZoneID: zoneID, Date: day.String(), Interval: fullDay}

	var resp struct {
		MapOrNull *struct {
			ParkingSpots []struct {
				ID    string `json:"id"`
				Name  string `json:"name"`
				State string `json:"state"`
			} `json:"parkingSpots"`
		} `json:"mapOrNull"`
	}
	if err := c.post(ctx, spotsMapPath, payload, &resp); err != nil {
		return nil, err
	}
	if resp.MapOrNull == nil {
		return nil, errors.New("no zone map for zone " + zoneID)
	}
	out := make([]parking.SpotState, 0, len(resp.MapOrNull.ParkingSpots))
	for _, s := range resp.MapOrNull.ParkingSpots {
		out = append(out, parking.SpotState{ID: s.ID, Name: s.Name, State: s.State})
	}
	return out, nil
}

// TakeSpot books a spot for the given day. With a nil spotID the
// parkingSpotIdOrNull field is omitted from the request entirely, which
// asks the service to pick any available spot.
func (c *Client) TakeSpot(ctx context.Context, zoneID string, spotID *string, day parking.Date) (parking.TakeResult, error) {
	spotLabel := "<any>"
	if spotID != nil {
		spotLabel = *spotID
	}
	c.log.Info().Str("zone", zoneID).Str("spot", spotLabel).Str("day", day.String()).Msg("taking spot")

	payload := struct {
		DayToTake string          `json:"dayToTake"`
		ZoneID    string          `json:"parkingSpotZoneId"`
		SpotID    *string         `json:"parkingSpotIdOrNull,omitempty"`
		Interval  bookingInterval `json:"bookingTimeInterval"`
	}{DayToTake: day.String(), ZoneID: zoneID, SpotID: spotID, Interval: fullDay}

	var resp struct {
		Status                    string                `json:"status"`
		ReceivedParkingSpotOrNull *parking.ReservedSpot `json:"receivedParkingSpotOrNull"`
	}
	if err := c.post(ctx, takeSpotPath, payload, &resp); err != nil {
		return parking.TakeResult{}, err
	}
	return parking.TakeResult{Status: resp.Status, Received: resp.ReceivedParkingSpotOrNull}, nil
}

// ReleaseSpot resigns the caller's reservation for the given day. The
// service answers a successful resign with an empty body.
func (c *Client) ReleaseSpot(ctx context.Context, day parking.Date) (parking.ReleaseResult, error) {
	payload := struct {
		DaysToShare         []string `json:"daysToShare"`
		ReceivingEmployeeID *string  `json:"receivingEmployeeIdOrNull"`
	}{DaysToShare: []string{day.String()}}

	body, err := c.postRaw(ctx, releaseSpotPath, payload)
	if err != nil {
		return parking.ReleaseResult{}, err
	}
	return parking.ReleaseResult{Empty: len(body) == 0, Body: string(body)}, nil
}

// Beneficiaries lists employees that can receive a cancelled reservation.
// The service expects the day after the reservation being shared.
func (c *Client) Beneficiaries(ctx context.Context, day parking.Date) ([]parking.Employee, error) {
	payload := struct {
		DaysToShare []string `json:"daysToShare"`
	}{DaysToShare: []string{day.AddDays(1).String()}}

	var resp struct {
		EmployeesOrNull []parking.Employee `json:"employeesOrNull"`
	}
	if err := c.post(ctx, employeesPath, payload, &resp); err != nil {
		return nil, err
	}
	return resp.EmployeesOrNull, nil
}

var _ parking.Service = (*Client)(nil)
