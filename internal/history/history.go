// Package history keeps a local record of booking attempts so repeated
// runs (and the watch mode) can be audited after the fact.
package history

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"
	"github.com/timshannon/badgerhold/v4"

	"github.com/example/parkctl/internal/actions"
)

// Attempt is one recorded action outcome.
type Attempt struct {
	ID        string `badgerhold:"key"`
	Action    string
	Zone      string
	Spot      string
	Day       string
	Status    string
	Detail    string
	CreatedAt time.Time
}

// Store persists attempts in an embedded badger database.
type Store struct {
	db *badgerhold.Store
}

// Open opens (or creates) the history database under dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = dir
	options.ValueDir = dir
	options.Logger = nil

	db, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores one attempt. A zero CreatedAt is filled in.
func (s *Store) Record(a Attempt) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	if err := s.db.Insert(a.ID, &a); err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}

// List returns the most recent attempts, newest first. A non-positive
// limit returns everything.
func (s *Store) List(limit int) ([]Attempt, error) {
	var attempts []Attempt
	if err := s.db.Find(&attempts, nil); err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	sort.Slice(attempts, func(i, j int) bool { return attempts[i].CreatedAt.After(attempts[j].CreatedAt) })
	if limit > 0 && len(attempts) > limit {
		attempts = attempts[:limit]
	}
	return attempts, nil
}

// Listener adapts the store into an action listener. Storage failures
// are logged and never interfere with the action itself.
func (s *Store) Listener() actions.Listener {
	return func(event actions.Event, result actions.Result) {
		for _, a := range attemptsFrom(result) {
			if err := s.Record(a); err != nil {
				log.Warn().Err(err).Str("action", a.Action).Msg("failed to record attempt")
			}
		}
	}
}

// attemptsFrom flattens a result into attempt rows. A book-free run
// yields one row per attempted day.
func attemptsFrom(result actions.Result) []Attempt {
	switch r := result.(type) {
	case *actions.BookResult:
		return []Attempt{bookAttempt(r)}
	case *actions.ReleaseResult:
		return []Attempt{{
			Action: string(r.Action),
			Day:    r.Request.ForDate.String(),
			Status: string(r.Outcome.Status),
			Detail: firstNonEmpty(r.Outcome.Err, r.Outcome.Message),
		}}
	case *actions.BookFreeResult:
		attempts := make([]Attempt, 0, len(r.Outcome.Attempts))
		for _, booked := range r.Outcome.Attempts {
			attempts = append(attempts, bookAttempt(booked))
		}
		return attempts
	case *actions.ErrorDetail:
		return []Attempt{{
			Action: string(r.Action),
			Status: string(actions.StatusError),
			Detail: r.Err,
		}}
	default:
		// Read-only actions are not worth recording.
		return nil
	}
}

func bookAttempt(r *actions.BookResult) Attempt {
	detail := r.Outcome.Err
	if detail == "" && len(r.Outcome.Messages) > 0 {
		detail = r.Outcome.Messages[0]
	}
	return Attempt{
		Action: string(r.Action),
		Zone:   r.Request.ZoneName,
		Spot:   r.Outcome.Spot,
		Day:    r.Request.ForDate.String(),
		Status: string(r.Outcome.Status),
		Detail: detail,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
