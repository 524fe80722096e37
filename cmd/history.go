package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/parkctl/internal/history"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	c := &cobra.Command{
		Use:   "history",
		Short: "List recent booking attempts recorded locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			hist, err := history.Open(cfg.History.Path)
			if err != nil {
				return err
			}
			defer hist.Close()

			attempts, err := hist.List(limit)
			if err != nil {
				return err
			}
			if len(attempts) == 0 {
				fmt.Println("No attempts recorded yet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tACTION\tDAY\tZONE\tSPOT\tSTATUS\tDETAIL")
			for _, a := range attempts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					a.CreatedAt.Format("2006-01-02 15:04"), a.Action, a.Day, a.Zone, a.Spot, a.Status, a.Detail)
			}
			return w.Flush()
		},
	}

	c.Flags().IntVarP(&limit, "limit", "n", 20, "number of attempts to show (0 for all)")
	return c
}
