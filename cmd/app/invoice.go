package main

import (
	"fmt"

	"commission_go/internal/domain"
	"commission_go/internal/infra/export"
	"commission_go/internal/pricing"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newInvoiceCmd(c *cli) *cobra.Command {
	var (
		base, addOn, tip string
		escrowDisabled   bool
		tableOrder       bool
		xlsxPath         string
	)

	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Price an order with the configured fee schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := pricing.InvoiceRequest{
				EscrowDisabled: escrowDisabled,
				TableOrder:     tableOrder,
			}
			var err error
			if req.BasePrice, err = parseAmount("base", base); err != nil {
				return err
			}
			if req.AddOn, err = parseAmount("add-on", addOn); err != nil {
				return err
			}
			if req.Tip, err = parseAmount("tip", tip); err != nil {
				return err
			}

			result, err := c.boot.Ledger.Quote(c.boot.Policy.Lines(req))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := printBreakdown(out, result); err != nil {
				return err
			}
			printRates(out, c.boot.Policy.Rates(), req)
			payout := result.TotalForTypes(domain.LineBasePrice, domain.LineAddOn, domain.LineTip, domain.LineExtra)
			fmt.Fprintf(out, "Seller payout: %s\n", payout)

			if xlsxPath != "" {
				return export.WriteBreakdown(xlsxPath, "", result)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&base, "base", "0", "Base price")
	cmd.Flags().StringVar(&addOn, "add-on", "0", "Add-on price")
	cmd.Flags().StringVar(&tip, "tip", "0", "Tip")
	cmd.Flags().BoolVar(&escrowDisabled, "escrow-disabled", false, "Seller is paid directly; no shield or bonus")
	cmd.Flags().BoolVar(&tableOrder, "table", false, "In-person table order; table service and tax apply")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also write the breakdown to an Excel workbook")
	return cmd
}

func parseAmount(flag, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %w", flag, err)
	}
	return d, nil
}
