package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventsRegisterDefaultsToAllKinds(t *testing.T) {
	ev := NewEvents()
	rec := &eventRecorder{}
	ev.Register(rec.listen)

	res := &ErrorDetail{Action: KindBookSpot, Err: "x"}
	ev.notify(EventSuccess, res)
	ev.notify(EventFailure, res)
	ev.notify(EventError, res)

	assert.Equal(t, []Event{EventSuccess, EventFailure, EventError}, rec.events)
}

func TestEventsRegisterScopedToOneKind(t *testing.T) {
	ev := NewEvents()
	rec := &eventRecorder{}
	ev.Register(rec.listen, EventFailure)

	res := &ErrorDetail{Action: KindBookSpot, Err: "x"}
	ev.notify(EventSuccess, res)
	ev.notify(EventFailure, res)

	assert.Equal(t, []Event{EventFailure}, rec.events)
}

func TestEventsListenersRunInRegistrationOrder(t *testing.T) {
	ev := NewEvents()
	var order []string
	ev.Register(func(Event, Result) { order = append(order, "first") })
	ev.Register(func(Event, Result) { order = append(order, "second") })

	ev.notify(EventSuccess, &ErrorDetail{Action: KindBookSpot})

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestEventsRemove(t *testing.T) {
	ev := NewEvents()
	rec := &eventRecorder{}
	h := ev.Register(rec.listen)

	ev.Remove(h)
	ev.notify(EventSuccess, &ErrorDetail{Action: KindBookSpot})

	assert.Empty(t, rec.events)
}

func TestEventsRemoveUnknownHandleIsNoop(t *testing.T) {
	ev := NewEvents()
	rec := &eventRecorder{}
	ev.Register(rec.listen)

	ev.Remove(Handle(42))
	ev.notify(EventSuccess, &ErrorDetail{Action: KindBookSpot})

	assert.Len(t, rec.events, 1)
}

func TestEventsUnknownEventKindReachesNoListener(t *testing.T) {
	ev := NewEvents()
	rec := &eventRecorder{}
	ev.Register(rec.listen)

	ev.notify(Event("exploded"), &ErrorDetail{Action: KindBookSpot})

	assert.Empty(t, rec.events)
}
