package actions

import (
	"context"

	"github.com/example/parkctl/internal/domain/parking"
)

// fakeService scripts the remote calls and records what the actions ask
// for.
type fakeService struct {
	zones    []parking.Zone
	zonesErr error

	calendar    []parking.CalendarDay
	calendarErr error

	states   map[string][]parking.SpotState // keyed by date ("" for zero)
	statesErr error

	takeFn    func(zoneID string, spotID *string, day parking.Date) (parking.TakeResult, error)
	releaseFn func(day parking.Date) (parking.ReleaseResult, error)

	zonesCalls    int
	mapCalls      int
	takeRequests  []takeRequest
}

type takeRequest struct {
	zoneID string
	spotID *string
	day    parking.Date
}

func (f *fakeService) Zones(ctx context.Context) ([]parking.Zone, error) {
	f.zonesCalls++
	return f.zones, f.zonesErr
}

func (f *fakeService) MyReservations(ctx context.Context) ([]parking.Booking, error) {
	return nil, nil
}

func (f *fakeService) ZoneCalendar(ctx context.Context, zoneID string) ([]parking.CalendarDay, error) {
	return f.calendar, f.calendarErr
}

func (f *fakeService) ZoneMap(ctx context.Context, zoneID string, day parking.Date) ([]parking.SpotState, error) {
	f.mapCalls++
	if f.statesErr != nil {
		return nil, f.statesErr
	}
	return f.states[day.String()], nil
}

func (f *fakeService) TakeSpot(ctx context.Context, zoneID string, spotID *string, day parking.Date) (parking.TakeResult, error) {
	f.takeRequests = append(f.takeRequests, takeRequest{zoneID: zoneID, spotID: spotID, day: day})
	if f.takeFn == nil {
		return parking.TakeResult{}, nil
	}
	return f.takeFn(zoneID, spotID, day)
}

func (f *fakeService) ReleaseSpot(ctx context.Context, day parking.Date) (parking.ReleaseResult, error) {
	if f.releaseFn == nil {
		return parking.ReleaseResult{Empty: true}, nil
	}
	return f.releaseFn(day)
}

func (f *fakeService) Beneficiaries(ctx context.Context, day parking.Date) ([]parking.Employee, error) {
	return nil, nil
}

var _ parking.Service = (*fakeService)(nil)

// eventRecorder collects every event an action raises.
type eventRecorder struct {
	events  []Event
	results []Result
}

func (r *eventRecorder) listen(event Event, result Result) {
	r.events = append(r.events, event)
	r.results = append(r.results, result)
}
