package cmd

import (
	"github.com/spf13/cobra"

	"github.com/example/parkctl/internal/actions"
)

func newReleaseCmd() *cobra.Command {
	var date string

	c := &cobra.Command{
		Use:   "release",
		Short: "Release your reserved spot for one day",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := flagDate(date)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			rt, err := newRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.close()

			action := actions.NewReleaseSpot(rt.client, actions.ReleaseRequest{ForDate: day})
			rt.attach(action.Events)
			return emit(action.Do(ctx))
		},
	}

	c.Flags().StringVarP(&date, "date", "d", "", "day to release, YYYY-MM-DD (default today)")
	return c
}
