package actions

import "github.com/example/parkctl/internal/domain/parking"

// Request and result shapes, one pair per action kind. The JSON layout
// keeps the {action, request, result} envelope notifiers and the CLI
// consume.

type BookRequest struct {
	ForDate   parking.Date `json:"for_date"`
	ZoneName  string       `json:"zone_name"`
	SpotNames []string     `json:"spot_name"`
}

type BookOutcome struct {
	Status   Status   `json:"status"`
	Zone     string   `json:"zone,omitempty"`
	Spot     string   `json:"spot,omitempty"`
	ForDate  string   `json:"for_date,omitempty"`
	Note     string   `json:"note,omitempty"`
	Messages []string `json:"messages,omitempty"`
	Err      string   `json:"error,omitempty"`
}

type BookResult struct {
	Action  Kind        `json:"action"`
	Request BookRequest `json:"request"`
	Outcome BookOutcome `json:"result"`
}

func (r *BookResult) Kind() Kind     { return r.Action }
func (r *BookResult) Status() Status { return r.Outcome.Status }

type ReleaseRequest struct {
	ForDate parking.Date `json:"for_date"`
}

type ReleaseOutcome struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	Err     string `json:"error,omitempty"`
}

type ReleaseResult struct {
	Action  Kind           `json:"action"`
	Request ReleaseRequest `json:"request"`
	Outcome ReleaseOutcome `json:"result"`
}

func (r *ReleaseResult) Kind() Kind     { return r.Action }
func (r *ReleaseResult) Status() Status { return r.Outcome.Status }

type BookingsRequest struct {
	ZoneName string `json:"zone_name"`
}

type BookingsOutcome struct {
	Status   Status            `json:"status"`
	Bookings []parking.Booking `json:"bookings,omitempty"`
	Message  string            `json:"message,omitempty"`
	Err      string            `json:"error,omitempty"`
}

type BookingsResult struct {
	Action  Kind            `json:"action"`
	Request BookingsRequest `json:"request"`
	Outcome BookingsOutcome `json:"result"`
}

func (r *BookingsResult) Kind() Kind     { return r.Action }
func (r *BookingsResult) Status() Status { return r.Outcome.Status }

type SpotsRequest struct {
	ForDate  parking.Date `json:"for_date"`
	ZoneName string       `json:"zone_name"`
}

type SpotsOutcome struct {
	Status  Status         `json:"status"`
	Zone    string         `json:"zone,omitempty"`
	ForDate string         `json:"for_date,omitempty"`
	Spots   []parking.Spot `json:"spots,omitempty"`
	Message string         `json:"message,omitempty"`
	Err     string         `json:"error,omitempty"`
}

type SpotsResult struct {
	Action  Kind         `json:"action"`
	Request SpotsRequest `json:"request"`
	Outcome SpotsOutcome `json:"result"`
}

func (r *SpotsResult) Kind() Kind     { return r.Action }
func (r *SpotsResult) Status() Status { return r.Outcome.Status }

type BookFreeRequest struct {
	ZoneName  string       `json:"zone_name"`
	SpotNames []string     `json:"spot_name"`
	StartFrom parking.Date `json:"start_from"`
}

type BookFreeOutcome struct {
	Status   Status        `json:"status"`
	Attempts []*BookResult `json:"attempts"`
	Err      string        `json:"error,omitempty"`
}

type BookFreeResult struct {
	Action  Kind            `json:"action"`
	Request BookFreeRequest `json:"request"`
	Outcome BookFreeOutcome `json:"result"`
}

func (r *BookFreeResult) Kind() Kind     { return r.Action }
func (r *BookFreeResult) Status() Status { return r.Outcome.Status }

// ErrorDetail is the bare payload attached to error events raised in the
// middle of a multi-step action, where no full result exists yet.
type ErrorDetail struct {
	Action Kind   `json:"action"`
	Err    string `json:"error"`
}

func (r *ErrorDetail) Kind() Kind     { return r.Action }
func (r *ErrorDetail) Status() Status { return StatusError }
