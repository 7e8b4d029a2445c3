package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/SergioSanchezIglesias/retiros-backend/internal/models"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/services"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Manage event transactions",
	}

	cmd.AddCommand(addTransactionCmd())
	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(showTransactionCmd())
	cmd.AddCommand(deleteTransactionCmd())

	return cmd
}

func addTransactionCmd() *cobra.Command {
	var (
		eventID     string
		categoryID  string
		kind        string
		amount      string
		description string
		date        string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction against an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}

			var when time.Time
			if date != "" {
				if when, err = parseDateTime(date); err != nil {
					return err
				}
			}

			gw, err := initGateway()
			if err != nil {
				return err
			}

			transaction, err := gw.Transactions.CreateTransaction(eventID, categoryID, models.TransactionKind(kind), value, description, when)
			if err != nil {
				return err
			}

			fmt.Printf("Recorded %s of %s (%s)\n", transaction.Kind, transaction.Amount.StringFixed(2), transaction.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&eventID, "event", "e", "", "event id")
	cmd.Flags().StringVarP(&categoryID, "category", "c", "", "category id")
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "transaction kind (income or expense)")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "amount, e.g. 123.45")
	cmd.Flags().StringVarP(&description, "description", "d", "", "description")
	cmd.Flags().StringVar(&date, "date", "", "transaction date (defaults to now)")
	_ = cmd.MarkFlagRequired("event")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func listTransactionsCmd() *cobra.Command {
	var (
		eventID string
		kind    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions in creation order",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := initGateway()
			if err != nil {
				return err
			}

			var filter services.TransactionFilter
			if eventID != "" {
				filter.EventID = &eventID
			}
			if kind != "" {
				k := models.TransactionKind(kind)
				filter.Kind = &k
			}

			transactions, err := gw.Transactions.GetTransactions(filter)
			if err != nil {
				return err
			}

			if len(transactions) == 0 {
				fmt.Println("No transactions found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "ID\tKIND\tAMOUNT\tDESCRIPTION\tDATE\tEVENT")
			for _, tx := range transactions {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					tx.ID, tx.Kind, tx.Amount.StringFixed(2), tx.Description,
					tx.Date.Format("2006-01-02"), tx.EventID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&eventID, "event", "e", "", "filter by event id")
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "filter by kind (income or expense)")

	return cmd
}

func showTransactionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := initGateway()
			if err != nil {
				return err
			}

			tx, err := gw.Transactions.GetTransactionByID(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("ID:          %s\n", tx.ID)
			fmt.Printf("Event:       %s\n", tx.EventID)
			fmt.Printf("Category:    %s\n", tx.CategoryID)
			fmt.Printf("Kind:        %s\n", tx.Kind)
			fmt.Printf("Amount:      %s\n", tx.Amount.StringFixed(2))
			fmt.Printf("Description: %s\n", tx.Description)
			fmt.Printf("Date:        %s\n", tx.Date.Format("2006-01-02 15:04:05"))
			fmt.Printf("Created:     %s\n", tx.CreatedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

func deleteTransactionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := initGateway()
			if err != nil {
				return err
			}

			if err := gw.Transactions.DeleteTransaction(args[0]); err != nil {
				return err
			}

			fmt.Println("Transaction deleted.")
			return nil
		},
	}
}
