// Package scheduler runs booking jobs on a cron schedule for watch mode.
package scheduler

import (
	"context"
	"fmt"

	"github.com/phuslu/log"
	"github.com/robfig/cron/v3"
)

// Runner wraps a cron instance and ties its lifetime to a context.
type Runner struct {
	cron *cron.Cron
}

func New() *Runner {
	return &Runner{cron: cron.New()}
}

// Add registers fn under a cron spec (standard five-field syntax).
func (r *Runner) Add(spec string, fn func()) error {
	if _, err := r.cron.AddFunc(spec, fn); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return nil
}

// Run starts the cron loop and blocks until the context is cancelled.
// In-flight jobs are allowed to finish before Run returns.
func (r *Runner) Run(ctx context.Context) error {
	r.cron.Start()
	log.Info().Msg("watch schedule started")

	<-ctx.Done()

	stopped := r.cron.Stop()
	<-stopped.Done()
	log.Info().Msg("watch schedule stopped")
	return ctx.Err()
}
