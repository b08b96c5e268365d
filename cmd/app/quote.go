package main

import (
	"errors"
	"fmt"
	"log/slog"

	"commission_go/internal/domain"
	"commission_go/internal/engine"
	"commission_go/internal/infra/export"
	"commission_go/internal/infra/orderfile"

	"github.com/spf13/cobra"
)

func newQuoteCmd(c *cli) *cobra.Command {
	var (
		xlsxPath string
		record   bool
		lineID   string
	)

	cmd := &cobra.Command{
		Use:   "quote <order.yaml>",
		Short: "Tabulate an order file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := orderfile.Load(args[0])
			if err != nil {
				return err
			}

			var result *engine.Result
			if record {
				if order.ID == "" {
					return errors.New("--record needs an order id in the file")
				}
				result, err = c.boot.Ledger.Record(cmd.Context(), order.ID, order.Lines)
			} else {
				result, err = c.boot.Ledger.Quote(order.Lines)
			}
			if err != nil {
				return err
			}

			if lineID != "" {
				sub, ok := result.Subtotal(domain.LineID(lineID))
				if !ok {
					return fmt.Errorf("no line %q in %s", lineID, args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (exact %s)\n", lineID, sub.RoundDisplay(), sub.Amount)
				return nil
			}

			if err := printBreakdown(cmd.OutOrStdout(), result); err != nil {
				return err
			}

			if xlsxPath != "" {
				if err := export.WriteBreakdown(xlsxPath, order.ID, result); err != nil {
					return err
				}
				slog.Info("breakdown exported", slog.String("path", xlsxPath))
				fmt.Fprintf(cmd.OutOrStdout(), "Breakdown written to %s\n", xlsxPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also write the breakdown to an Excel workbook")
	cmd.Flags().BoolVar(&record, "record", false, "Store the allocated breakdown in the ledger")
	cmd.Flags().StringVar(&lineID, "line", "", "Print only the exact contribution of one line")
	return cmd
}
