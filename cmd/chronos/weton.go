package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/chronos-api/internal/calendar"
	"github.com/zapponejosh/chronos-api/internal/weton"
)

func newWetonCmd() *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "weton",
		Short: "Print the Javanese calendar for a date range",
		Example: `  chronos weton --start 2010-05-03
  chronos weton --start 2024-01-01 --end 2024-01-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if end == "" {
				end = start
			}
			return runWeton(cmd, start, end)
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "first date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last date, inclusive (defaults to --start)")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func runWeton(cmd *cobra.Command, startStr, endStr string) error {
	start, err := calendar.ParseDate(startStr)
	if err != nil {
		return fmt.Errorf("parse start: %w", err)
	}
	end, err := calendar.ParseDate(endStr)
	if err != nil {
		return fmt.Errorf("parse end: %w", err)
	}

	results, err := weton.Range(start, end)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tDAY\tWETON\tNEPTU\tWUKU\tLAKUNING")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			r.Date, calendar.DayName(r.Date), r.Weton(), r.Neptu, r.Wuku, r.Lakuning)
	}
	return tw.Flush()
}
