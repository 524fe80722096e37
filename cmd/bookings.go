package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/parkctl/internal/actions"
)

func newBookingsCmd() *cobra.Command {
	var zone string

	c := &cobra.Command{
		Use:   "bookings",
		Short: "Show the booking calendar for a zone",
		RunE: func(cmd *cobra.Command, args []string) error {
			zoneName := zone
			if zoneName == "" {
				zoneName = cfg.Booking.Zone
			}
			if zoneName == "" {
				return fmt.Errorf("no zone given: use --zone or set booking.zone in the config")
			}

			ctx := cmd.Context()
			rt, err := newRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.close()

			action := actions.NewShowBookings(rt.client, actions.BookingsRequest{ZoneName: zoneName})
			rt.attach(action.Events)
			return emit(action.Do(ctx))
		},
	}

	c.Flags().StringVarP(&zone, "zone", "z", "", "zone name (default from config)")
	return c
}
