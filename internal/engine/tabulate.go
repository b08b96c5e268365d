package engine

import (
	"fmt"

	"commission_go/internal/domain"
)

// Result is the breakdown of one tabulation.
type Result struct {
	// Total is the grand total rounded to the currency's display precision.
	Total domain.Money
	// Exact is the unrounded accumulated total.
	Exact domain.Money
	// Subtotals maps each line to its final signed contribution.
	Subtotals map[domain.LineID]domain.Money
	// Lines lists the same subtotals in tabulation order (priority, then input).
	Lines []Subtotal
}

// Tabulate computes the grand total of lines and every line's contribution
// to it. Inputs are validated before any arithmetic; a failure never yields
// a partial result.
func Tabulate(lines []domain.LineItem) (*Result, error) {
	currency, err := validate(lines)
	if err != nil {
		return nil, err
	}

	acc := newAccumulator(currency)
	for _, group := range GroupByPriority(lines) {
		acc, err = reduceGroup(acc, group)
		if err != nil {
			return nil, err
		}
	}

	subtotals := make(map[domain.LineID]domain.Money, len(acc.subtotals))
	for _, s := range acc.subtotals {
		subtotals[s.Line.ID] = s.Value
	}

	return &Result{
		Total:     acc.total.RoundDisplay(),
		Exact:     acc.total,
		Subtotals: subtotals,
		Lines:     acc.subtotals,
	}, nil
}

// TotalOnly returns the rounded grand total and discards the breakdown.
func TotalOnly(lines []domain.LineItem) (domain.Money, error) {
	result, err := Tabulate(lines)
	if err != nil {
		return domain.Money{}, err
	}
	return result.Total, nil
}

func validate(lines []domain.LineItem) (string, error) {
	if len(lines) == 0 {
		return domain.DefaultCurrency, nil
	}

	currency := lines[0].Amount.Currency
	seen := make(map[domain.LineID]struct{}, len(lines))
	for _, line := range lines {
		if line.Amount.Currency != currency {
			return "", domain.NewLineError(line.ID, "validate",
				fmt.Errorf("%w: %s vs %s", domain.ErrCurrencyMismatch, line.Amount.Currency, currency))
		}
		if _, dup := seen[line.ID]; dup {
			return "", domain.NewLineError(line.ID, "validate", domain.ErrIdentityCollision)
		}
		seen[line.ID] = struct{}{}
	}
	return currency, nil
}

// Subtotal returns the contribution of one line.
func (r *Result) Subtotal(id domain.LineID) (domain.Money, bool) {
	m, ok := r.Subtotals[id]
	return m, ok
}

// TotalForTypes sums the contributions of every line of the given types and
// rounds the sum for display.
func (r *Result) TotalForTypes(types ...domain.LineType) domain.Money {
	wanted := make(map[domain.LineType]bool, len(types))
	for _, t := range types {
		wanted[t] = true
	}

	sum := domain.Zero(r.Total.Currency)
	for _, s := range r.Lines {
		if !wanted[s.Line.Type] {
			continue
		}
		// Currencies were validated by Tabulate.
		sum, _ = sum.Add(s.Value)
	}
	return sum.RoundDisplay()
}

// Allocate rounds every subtotal to the currency's minor unit such that the
// rounded values sum exactly to Total.
func (r *Result) Allocate() (map[domain.LineID]domain.Money, error) {
	return Allocate(r.Total, r.Lines)
}
