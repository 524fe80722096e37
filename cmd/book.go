package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/parkctl/internal/actions"
	"github.com/example/parkctl/internal/domain/parking"
)

func newBookCmd() *cobra.Command {
	var (
		date  string
		zone  string
		spots []string
	)

	c := &cobra.Command{
		Use:   "book",
		Short: "Book a parking spot for one day",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := flagDate(date)
			if err != nil {
				return err
			}
			zoneName, spotNames, err := bookingDefaults(zone, spots)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			rt, err := newRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.close()

			action := actions.NewBookSpot(rt.client, actions.BookRequest{
				ForDate:   day,
				ZoneName:  zoneName,
				SpotNames: spotNames,
			})
			rt.attach(action.Events)
			return emit(action.Do(ctx))
		},
	}

	c.Flags().StringVarP(&date, "date", "d", "", "day to book, YYYY-MM-DD (default today)")
	c.Flags().StringVarP(&zone, "zone", "z", "", "zone name (default from config)")
	c.Flags().StringArrayVarP(&spots, "spot", "s", nil, `spot name, repeatable, in order of preference; "*" means any free spot`)
	return c
}

// flagDate parses an optional YYYY-MM-DD flag, empty meaning today.
func flagDate(s string) (parking.Date, error) {
	if s == "" {
		return parking.Today(), nil
	}
	d, err := parking.ParseDate(s)
	if err != nil {
		return parking.Date{}, fmt.Errorf("invalid --date (want YYYY-MM-DD): %w", err)
	}
	return d, nil
}

// bookingDefaults fills zone and spot preferences from the config when
// the flags are absent.
func bookingDefaults(zone string, spots []string) (string, []string, error) {
	if zone == "" {
		zone = cfg.Booking.Zone
	}
	if zone == "" {
		return "", nil, fmt.Errorf("no zone given: use --zone or set booking.zone in the config")
	}
	if len(spots) == 0 {
		spots = cfg.Booking.Spots
	}
	if len(spots) == 0 {
		spots = []string{actions.WildcardSpot}
	}
	return zone, spots, nil
}
