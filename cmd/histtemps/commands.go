package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/i474232898/historical-temps/internal/history"
)

func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("start", history.DefaultStart, "First day of the range (YYYY-MM-DD)")
	cmd.Flags().String("end", history.DefaultEnd, "Last day of the range (YYYY-MM-DD)")
}

func loadFromFlags(a *app, cmd *cobra.Command, postalCode string) (*history.Record, error) {
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")
	return a.newRecord(cmd.Context(), postalCode, start, end)
}

func averageCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "average [zip] [zip]",
		Short: "Print the average daily maximum for one or two zip codes",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, zip := range args {
				r, err := loadFromFlags(a, cmd, zip)
				if err != nil {
					return err
				}
				avg, err := r.Average()
				if errors.Is(err, history.ErrEmptySeries) {
					fmt.Fprintf(cmd.OutOrStdout(), "There are no temperatures on record for %s\n", r.Location().Name)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "The average maximum temperature for %s was %.2f degrees Celsius\n", r.Location().Name, avg)
			}
			return nil
		},
	}
	addRangeFlags(cmd)
	return cmd
}

func aboveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "above [zip]",
		Short: "List days warmer than a threshold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			threshold, _ := cmd.Flags().GetFloat64("threshold")
			r, err := loadFromFlags(a, cmd, args[0])
			if err != nil {
				return err
			}
			days := r.DaysAbove(threshold)
			fmt.Fprintf(cmd.OutOrStdout(), "There are %d days above %g degrees in %s\n", len(days), threshold, r.Location().Name)
			printDays(cmd, days)
			return nil
		},
	}
	addRangeFlags(cmd)
	cmd.Flags().Float64P("threshold", "t", 30, "Temperature in degrees Celsius")
	return cmd
}

func topCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "top [zip]",
		Short: "List the hottest days on record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _ := cmd.Flags().GetInt("number")
			r, err := loadFromFlags(a, cmd, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Hottest days in %s from %s to %s\n", r.Location().Name, r.Start(), r.End())
			printDays(cmd, r.TopDays(n))
			return nil
		},
	}
	addRangeFlags(cmd)
	cmd.Flags().IntP("number", "n", history.DefaultTopDays, "Number of days to list")
	return cmd
}

func printDays(cmd *cobra.Command, days []history.DailyTemp) {
	for _, d := range days {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %.1f\n", d.Date, d.Temperature)
	}
}
