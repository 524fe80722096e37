package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/parkctl/internal/actions"
)

func newSpotsCmd() *cobra.Command {
	var (
		date string
		zone string
	)

	c := &cobra.Command{
		Use:   "spots",
		Short: "Show which spots in a zone are free on a given day",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := flagDate(date)
			if err != nil {
				return err
			}
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

			action := actions.NewShowSpotsState(rt.client, actions.SpotsRequest{
				ForDate:  day,
				ZoneName: zoneName,
			})
			rt.attach(action.Events)
			return emit(action.Do(ctx))
		},
	}

	c.Flags().StringVarP(&date, "date", "d", "", "day to inspect, YYYY-MM-DD (default today)")
	c.Flags().StringVarP(&zone, "zone", "z", "", "zone name (default from config)")
	return c
}
