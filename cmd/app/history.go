package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "history [order-id]",
		Short: "Show the recorded ledger of an order, or list recorded orders",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				orders, err := c.boot.Ledger.Orders(cmd.Context())
				if err != nil {
					return err
				}
				return printOrders(cmd.OutOrStdout(), orders)
			}

			order, entries, err := c.boot.Ledger.Entries(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printEntries(cmd.OutOrStdout(), order, entries)
		},
	}
}

func newVoidCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "void <order-id>",
		Short: "Delete the recorded ledger of an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.boot.Ledger.Void(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order %s voided\n", args[0])
			return nil
		},
	}
}
