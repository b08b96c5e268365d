package main

import (
	"commission_go/internal/app"
	"commission_go/internal/infra"

	"github.com/spf13/cobra"
)

// cli carries the state shared by every subcommand.
type cli struct {
	cfgFile string
	verbose bool
	boot    *app.Bootstrap
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "commission",
		Short: "Tabulate commission orders into penny-exact line breakdowns",
		Long: `commission computes the total of a commissioned-work order from its line
items. Fee lines may cascade their charge onto lower-priority lines, so the
payer's total stays fixed while the seller absorbs the fee.

Example Usage:
  commission quote order.yaml                 # Print the breakdown of an order file
  commission quote order.yaml --record        # ...and store it in the ledger
  commission invoice --base 15 --add-on 2     # Price an order with the configured fees
  commission history ORD-1001                 # Show a recorded ledger
  commission history                          # List recorded orders
  commission void ORD-1001                    # Delete a recorded ledger`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.boot = app.NewBootstrap()
			return c.boot.Initialize(c.cfgFile, c.verbose)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.boot.Close()
		},
	}

	root.PersistentFlags().StringVar(&c.cfgFile, "config", infra.DefaultConfigPath, "Path to the configuration file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newQuoteCmd(c),
		newInvoiceCmd(c),
		newHistoryCmd(c),
		newVoidCmd(c),
	)
	return root
}
