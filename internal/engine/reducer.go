package engine

import (
	"commission_go/internal/domain"

	"github.com/shopspring/decimal"
)

// backIntoPrecision is the number of fractional digits kept when backing a
// percentage out of an inclusive total.
const backIntoPrecision = 28

var (
	percent = decimal.New(1, -2)
	one     = decimal.NewFromInt(1)
)

// accumulator is the running state folded across priority groups.
type accumulator struct {
	total     domain.Money
	subtotals []Subtotal
}

func newAccumulator(currency string) accumulator {
	return accumulator{total: domain.Zero(currency)}
}

// percentageTerm computes a line's percentage of the running total. With
// BackIntoPercentage the total is taken to already include the percentage,
// so the term is total / (1 + p) * p.
func percentageTerm(total domain.Money, line domain.LineItem) (domain.Money, error) {
	if line.Percentage.IsZero() {
		return domain.Zero(total.Currency), nil
	}

	multiplier := percent.Mul(line.Percentage)
	if !line.BackIntoPercentage {
		return total.Scale(multiplier), nil
	}

	divisor := one.Add(multiplier)
	if divisor.IsZero() {
		return domain.Money{}, domain.NewLineError(line.ID, "back into percentage", domain.ErrDivisionByZero)
	}
	return total.Scale(multiplier.DivRound(divisor, backIntoPrecision)), nil
}

// lowerPriority returns the subtotals a cascade at priority may draw from.
func lowerPriority(subtotals []Subtotal, priority int) []Subtotal {
	candidates := make([]Subtotal, 0, len(subtotals))
	for _, s := range subtotals {
		if s.Line.Priority < priority {
			candidates = append(candidates, s)
		}
	}
	return candidates
}

// reduceGroup folds one priority group into the accumulator.
//
// Every line in the group is computed against the total as it stood before
// the group, so equal-priority percentages never stack. Cascaded portions
// are carved out of lower-priority subtotals and leave the total unchanged;
// everything else is added to it.
func reduceGroup(acc accumulator, group PriorityGroup) (accumulator, error) {
	base := acc.total
	added := domain.Zero(base.Currency)
	working := make([]Subtotal, 0, len(group.Lines))
	var reductions []map[domain.LineID]domain.Money

	for _, line := range group.Lines {
		pct, err := percentageTerm(base, line)
		if err != nil {
			return accumulator{}, err
		}

		raw, err := pct.Add(line.Amount)
		if err != nil {
			return accumulator{}, domain.NewLineError(line.ID, "amount", err)
		}

		cascaded, summable := domain.Zero(base.Currency), domain.Zero(base.Currency)
		if line.CascadePercentage {
			cascaded = pct
		} else {
			summable = pct
		}
		if line.CascadeAmount {
			cascaded, err = cascaded.Add(line.Amount)
		} else {
			summable, err = summable.Add(line.Amount)
		}
		if err != nil {
			return accumulator{}, domain.NewLineError(line.ID, "amount", err)
		}

		// A cascade has no proportions to follow on a zero base, even when
		// its own effect is zero.
		if line.Cascades() && base.IsZero() {
			return accumulator{}, domain.NewLineError(line.ID, "cascade", domain.ErrUndistributableReduction)
		}
		if !cascaded.IsZero() {
			reduction, err := DistributeReduction(base, cascaded, lowerPriority(acc.subtotals, line.Priority))
			if err != nil {
				return accumulator{}, domain.NewLineError(line.ID, "cascade", err)
			}
			reductions = append(reductions, reduction)
		}

		if added, err = added.Add(summable); err != nil {
			return accumulator{}, domain.NewLineError(line.ID, "amount", err)
		}
		working = append(working, Subtotal{Line: line, Value: raw})
	}

	next := make([]Subtotal, len(acc.subtotals), len(acc.subtotals)+len(working))
	copy(next, acc.subtotals)
	position := make(map[domain.LineID]int, len(next))
	for i, s := range next {
		position[s.Line.ID] = i
	}

	for _, reduction := range reductions {
		for id, amount := range reduction {
			i := position[id]
			value, err := next[i].Value.Sub(amount)
			if err != nil {
				return accumulator{}, domain.NewLineError(id, "reduce", err)
			}
			next[i].Value = value
		}
	}
	next = append(next, working...)

	total, err := base.Add(added)
	if err != nil {
		return accumulator{}, err
	}
	return accumulator{total: total, subtotals: next}, nil
}
