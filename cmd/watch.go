package cmd

import (
	"os/signal"
	"syscall"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"github.com/example/parkctl/internal/actions"
	"github.com/example/parkctl/internal/domain/parking"
	"github.com/example/parkctl/internal/parkanizer"
	"github.com/example/parkctl/internal/scheduler"
)

func newWatchCmd() *cobra.Command {
	var (
		schedule string
		zone     string
		spots    []string
	)

	c := &cobra.Command{
		Use:   "watch",
		Short: "Run book-free on a cron schedule until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := schedule
			if spec == "" {
				spec = cfg.Watch.Schedule
			}
			zoneName, spotNames, err := bookingDefaults(zone, spots)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rt, err := newRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.close()

			creds := parkanizer.Credentials{
				Username: cfg.Parkanizer.Username,
				Password: cfg.Parkanizer.Password,
			}

			runner := scheduler.New()
			err = runner.Add(spec, func() {
				// The bearer token expires between runs; re-login refreshes
				// it from the stored session when possible.
				if err := rt.client.Login(ctx, creds); err != nil {
					log.Error().Err(err).Msg("login failed, skipping scheduled run")
					return
				}
				cutoff := parking.Today().AddDays(cfg.Booking.LookAhead)
				action := actions.NewBookFreeSpots(rt.client, actions.BookFreeRequest{
					ZoneName:  zoneName,
					SpotNames: spotNames,
					StartFrom: cutoff,
				})
				rt.attach(action.Events)
				res := action.Do(ctx)
				log.Info().Str("status", string(res.Status())).Int("attempts", len(res.Outcome.Attempts)).Msg("scheduled booking run finished")
			})
			if err != nil {
				return err
			}

			log.Info().Str("schedule", spec).Str("zone", zoneName).Msg("watching for free spots")
			if err := runner.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	c.Flags().StringVar(&schedule, "schedule", "", "cron schedule (default from config)")
	c.Flags().StringVarP(&zone, "zone", "z", "", "zone name (default from config)")
	c.Flags().StringArrayVarP(&spots, "spot", "s", nil, "spot name, repeatable, in order of preference")
	return c
}
