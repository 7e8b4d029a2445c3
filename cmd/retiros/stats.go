package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Balances and cross-event statistics",
	}

	cmd.AddCommand(balanceCmd())
	cmd.AddCommand(categoryTotalsCmd())
	cmd.AddCommand(crossEventStatsCmd())

	return cmd
}

func balanceCmd() *cobra.Command {
	var eventID string

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the balance for one event, or globally",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := initGateway()
			if err != nil {
				return err
			}

			if eventID != "" {
				rep, err := gw.Statistics.EventBalance(eventID)
				if err != nil {
					return err
				}
				fmt.Printf("Event:    %s\n", rep.EventID)
				fmt.Printf("Income:   %s\n", rep.TotalIncome.StringFixed(2))
				fmt.Printf("Expenses: %s\n", rep.TotalExpense.StringFixed(2))
				fmt.Printf("Balance:  %s\n", rep.Balance.StringFixed(2))
				return nil
			}

			rep, err := gw.Statistics.GlobalBalance()
			if err != nil {
				return err
			}
			fmt.Printf("Income:   %s\n", rep.TotalIncome.StringFixed(2))
			fmt.Printf("Expenses: %s\n", rep.TotalExpense.StringFixed(2))
			fmt.Printf("Balance:  %s\n", rep.Balance.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVarP(&eventID, "event", "e", "", "event id (omit for the global balance)")

	return cmd
}

func categoryTotalsCmd() *cobra.Command {
	var eventID string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Show totals per category",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := initGateway()
			if err != nil {
				return err
			}

			var filter *string
			if eventID != "" {
				filter = &eventID
			}

			totals, err := gw.Statistics.CategoryTotals(filter)
			if err != nil {
				return err
			}

			if len(totals) == 0 {
				fmt.Println("No transactions recorded.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "CATEGORY\tKIND\tTOTAL")
			for _, total := range totals {
				fmt.Fprintf(w, "%s\t%s\t%s\n", total.CategoryName, total.Kind, total.Total.StringFixed(2))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&eventID, "event", "e", "", "restrict to one event")

	return cmd
}

func crossEventStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Show averages over events with at least one transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := initGateway()
			if err != nil {
				return err
			}

			stats, err := gw.Statistics.CrossEventStatistics()
			if err != nil {
				return err
			}

			fmt.Printf("Events with activity: %d\n", stats.EventsWithActivity)
			fmt.Printf("Average income:       %s\n", stats.AverageIncome.StringFixed(2))
			fmt.Printf("Average expenses:     %s\n", stats.AverageExpense.StringFixed(2))
			fmt.Printf("Average balance:      %s\n", stats.AverageBalance.StringFixed(2))
			return nil
		},
	}
}
