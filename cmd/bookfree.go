package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/parkctl/internal/actions"
	"github.com/example/parkctl/internal/domain/parking"
)

func newBookFreeCmd() *cobra.Command {
	var (
		zone      string
		spots     []string
		startFrom string
		lookAhead int
	)

	c := &cobra.Command{
		Use:   "book-free",
		Short: "Book every free weekday you don't already have a spot for",
		RunE: func(cmd *cobra.Command, args []string) error {
			cutoff, err := resolveCutoff(cmd, startFrom, lookAhead)
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

			action := actions.NewBookFreeSpots(rt.client, actions.BookFreeRequest{
				ZoneName:  zoneName,
				SpotNames: spotNames,
				StartFrom: cutoff,
			})
			rt.attach(action.Events)
			return emit(action.Do(ctx))
		},
	}

	c.Flags().StringVarP(&zone, "zone", "z", "", "zone name (default from config)")
	c.Flags().StringArrayVarP(&spots, "spot", "s", nil, `spot name, repeatable, in order of preference; "*" means any free spot`)
	c.Flags().StringVar(&startFrom, "start-from", "", "first day to consider, YYYY-MM-DD")
	c.Flags().IntVar(&lookAhead, "look-ahead", 0, "first day to consider, as days from today")
	return c
}

// resolveCutoff turns the two mutually exclusive flags into the single
// cutoff date the booking works from. With neither flag the config's
// look-ahead applies, defaulting to today.
func resolveCutoff(cmd *cobra.Command, startFrom string, lookAhead int) (parking.Date, error) {
	fromSet := cmd.Flags().Changed("start-from")
	aheadSet := cmd.Flags().Changed("look-ahead")
	if fromSet && aheadSet {
		return parking.Date{}, fmt.Errorf("--start-from and --look-ahead are mutually exclusive")
	}
	if fromSet {
		d, err := parking.ParseDate(startFrom)
		if err != nil {
			return parking.Date{}, fmt.Errorf("invalid --start-from (want YYYY-MM-DD): %w", err)
		}
		return d, nil
	}
	if !aheadSet {
		lookAhead = cfg.Booking.LookAhead
	}
	if lookAhead < 0 {
		return parking.Date{}, fmt.Errorf("--look-ahead must not be negative")
	}
	return parking.Today().AddDays(lookAhead), nil
}
