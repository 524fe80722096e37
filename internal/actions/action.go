// Package actions contains the units of work a command invocation runs:
// book a spot, release one, show bookings or spot state, and book every
// free day in a window. Every action resolves names through its own
// per-invocation caches, performs its remote calls through the
// parking.Service, returns a typed result, and raises exactly one
// lifecycle event per run to its registered listeners.
package actions

import (
	"github.com/phuslu/log"
)

// Event is an action lifecycle event kind.
type Event string

const (
	// EventSuccess: the operation completed with a meaningful result.
	EventSuccess Event = "success"
	// EventFailure: the operation ran but did not achieve its goal; a
	// normal outcome, not a defect.
	EventFailure Event = "failure"
	// EventError: an unexpected error (transport, response shape)
	// interrupted the attempt.
	EventError Event = "error"
)

// Kind tags a result with the action that produced it.
type Kind string

const (
	KindBookSpot     Kind = "book_spot"
	KindReleaseSpot  Kind = "release_spot"
	KindShowBookings Kind = "show_bookings"
	KindShowSpots    Kind = "show_spots"
	KindBookFree     Kind = "book_free"
)

// Status classifies an outcome. It mirrors the event kinds so listeners
// and callers see the same three-way split.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusError   Status = "error"
)

// Result is the structured outcome every action returns and every event
// carries. Concrete types are one per action kind.
type Result interface {
	Kind() Kind
	Status() Status
}

// Listener receives an action event. Listeners run synchronously in
// registration order; a listener must not assume it is the only one.
type Listener func(event Event, result Result)

// Handle identifies a registration for later removal.
type Handle int

type registration struct {
	handle Handle
	fn     Listener
}

// Events is the listener registry embedded by every action.
type Events struct {
	next      Handle
	listeners map[Event][]registration
}

func NewEvents() *Events {
	return &Events{listeners: make(map[Event][]registration)}
}

// Register subscribes the listener to the given event kinds, or to all
// three when none are named. The returned handle removes the whole
// registration.
func (e *Events) Register(fn Listener, events ...Event) Handle {
	e.next++
	h := e.next
	if len(events) == 0 {
		events = []Event{EventSuccess, EventFailure, EventError}
	}
	for _, ev := range events {
		e.listeners[ev] = append(e.listeners[ev], registration{handle: h, fn: fn})
	}
	return h
}

// Remove drops the registration. Unknown handles are a no-op.
func (e *Events) Remove(h Handle) {
	for ev, regs := range e.listeners {
		kept := regs[:0]
		for _, r := range regs {
			if r.handle != h {
				kept = append(kept, r)
			}
		}
		e.listeners[ev] = kept
	}
}

func (e *Events) notify(ev Event, res Result) {
	switch ev {
	case EventSuccess, EventFailure, EventError:
	default:
		log.Warn().Str("event", string(ev)).Msg("unknown event kind")
		return
	}
	for _, r := range e.listeners[ev] {
		r.fn(ev, res)
	}
}
