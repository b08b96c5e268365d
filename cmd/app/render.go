package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"commission_go/internal/domain"
	"commission_go/internal/engine"
	"commission_go/internal/pricing"
)

// printBreakdown writes the allocated amount of every line followed by the
// total. Allocated amounts always sum to the total.
func printBreakdown(out io.Writer, r *engine.Result) error {
	allocated, err := r.Allocate()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "LINE\tTYPE\tPRIORITY\tAMOUNT\t")
	for _, s := range r.Lines {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t\n", s.Line.ID, s.Line.Type, s.Line.Priority, allocated[s.Line.ID])
	}
	fmt.Fprintf(w, "TOTAL\t\t\t%s\t\n", r.Total)
	return w.Flush()
}

func printEntries(out io.Writer, order *domain.OrderRecord, entries []domain.LedgerEntry) error {
	fmt.Fprintf(out, "Order %s (recorded %s)\n", order.ID, order.UpdatedAt.Format("2006-01-02 15:04"))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "LINE\tTYPE\tPRIORITY\tAMOUNT\t")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t\n", e.LineID, e.Type, e.Priority, e.Money())
	}
	fmt.Fprintf(w, "TOTAL\t\t\t%s\t\n", domain.NewMoney(order.Total, order.Currency))
	return w.Flush()
}

func printOrders(out io.Writer, orders []domain.OrderRecord) error {
	if len(orders) == 0 {
		fmt.Fprintln(out, "No recorded orders")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "ORDER\tLINES\tTOTAL\tRECORDED\t")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t\n", o.ID, o.LineCount,
			domain.NewMoney(o.Total, o.Currency), o.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func printRates(out io.Writer, rates pricing.Rates, req pricing.InvoiceRequest) {
	fee := func(name string, f pricing.Fee) string {
		return fmt.Sprintf("%s %s%% + %s", name, f.Percentage, f.Static.StringFixed(domain.CurrencyPlaces(rates.Currency)))
	}
	switch {
	case req.TableOrder:
		fmt.Fprintf(out, "Fee schedule: %s, tax %s%% included\n", fee("table service", rates.TableService), rates.TableTax)
	case !req.EscrowDisabled:
		fmt.Fprintf(out, "Fee schedule: %s, %s\n", fee("shield", rates.Shield), fee("bonus", rates.Bonus))
	}
}
