package actions

import (
	"context"
	"fmt"

	"github.com/phuslu/log"

	"github.com/example/parkctl/internal/domain/parking"
)

// ReleaseSpot resigns the caller's reservation for one date.
type ReleaseSpot struct {
	*Events
	svc parking.Service
	req ReleaseRequest
}

func NewReleaseSpot(svc parking.Service, req ReleaseRequest) *ReleaseSpot {
	return &ReleaseSpot{Events: NewEvents(), svc: svc, req: req}
}

func (a *ReleaseSpot) Do(ctx context.Context) *ReleaseResult {
	log.Info().Str("day", a.req.ForDate.String()).Msg("releasing a spot")
	res := &ReleaseResult{Action: KindReleaseSpot, Request: a.req}

	rel, err := a.svc.ReleaseSpot(ctx, a.req.ForDate)
	if err != nil {
		res.Outcome = ReleaseOutcome{Status: StatusError, Err: err.Error()}
		a.notify(EventError, res)
		return res
	}
	// The service acknowledges a resign with an empty body. A non-empty
	// body means the request was understood but declined, so it is a
	// failure, not an error.
	if !rel.Empty {
		res.Outcome = ReleaseOutcome{Status: StatusFailure, Message: fmt.Sprintf("service declined the resign request: %s", rel.Body)}
		a.notify(EventFailure, res)
		return res
	}
	res.Outcome = ReleaseOutcome{Status: StatusSuccess, Message: fmt.Sprintf("Released spot for %s successfully", a.req.ForDate)}
	a.notify(EventSuccess, res)
	return res
}
