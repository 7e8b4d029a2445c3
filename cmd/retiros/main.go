package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SergioSanchezIglesias/retiros-backend/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "retiros",
	Short: "Retreat finance tracker",
	Long: `retiros: track the finances of retreats from the command line.

Manage income/expense categories, retreat events, and the transactions
recorded against them, and report balances and statistics.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(categoriesCmd())
	rootCmd.AddCommand(eventsCmd())
	rootCmd.AddCommand(transactionsCmd())
	rootCmd.AddCommand(statsCmd())
}

func main() {
	// Only errors on stderr; command output is the interface.
	logger.Init("production")
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
