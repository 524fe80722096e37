// Package notify renders action results into human messages and delivers
// them. Notifiers subscribe to action events; delivery failures are logged
// and never propagate back into the action.
package notify

import (
	"encoding/json"

	"github.com/phuslu/log"

	"github.com/example/parkctl/internal/actions"
)

// Notifier delivers a rendered action result somewhere.
type Notifier interface {
	Notify(event actions.Event, result actions.Result)
}

// LogNotifier writes events to the log instead of delivering them
// anywhere. Useful as a default and in tests.
type LogNotifier struct{}

func (LogNotifier) Notify(event actions.Event, result actions.Result) {
	payload, err := json.Marshal(result)
	if err != nil {
		payload = []byte(err.Error())
	}
	log.Info().Str("event", string(event)).Str("action", string(result.Kind())).Str("result", string(payload)).Msg("action event")
}
