package engine

import (
	"fmt"
	"sort"

	"commission_go/internal/domain"

	"github.com/shopspring/decimal"
)

// Allocate floors every subtotal to the minor unit of total's currency and
// hands the leftover units, one at a time, to the lines that lost the most
// to flooring. Ties go to the line tabulated first.
//
// The allocated values always sum to total rounded for display. A leftover
// that is negative or larger than one unit per line means the subtotals do
// not belong to total and fails with ErrUnbalancedSubtotals.
func Allocate(total domain.Money, subtotals []Subtotal) (map[domain.LineID]domain.Money, error) {
	places := domain.CurrencyPlaces(total.Currency)
	unit := total.MinorUnit()

	type remainder struct {
		id   domain.LineID
		lost decimal.Decimal
	}

	allocated := make(map[domain.LineID]domain.Money, len(subtotals))
	remainders := make([]remainder, 0, len(subtotals))
	floored := domain.Zero(total.Currency)

	for _, s := range subtotals {
		f := domain.NewMoney(s.Value.Amount.RoundFloor(places), s.Value.Currency)
		var err error
		if floored, err = floored.Add(f); err != nil {
			return nil, domain.NewLineError(s.Line.ID, "allocate", err)
		}
		allocated[s.Line.ID] = f
		remainders = append(remainders, remainder{id: s.Line.ID, lost: s.Value.Amount.Sub(f.Amount)})
	}

	leftover, err := total.RoundDisplay().Sub(floored)
	if err != nil {
		return nil, err
	}
	ceiling := unit.Amount.Mul(decimal.NewFromInt(int64(len(subtotals))))
	if leftover.IsNegative() || leftover.Amount.GreaterThan(ceiling) {
		return nil, fmt.Errorf("%w: %s left over for %d lines", domain.ErrUnbalancedSubtotals, leftover, len(subtotals))
	}

	sort.SliceStable(remainders, func(i, j int) bool {
		return remainders[i].lost.GreaterThan(remainders[j].lost)
	})

	for i := 0; leftover.Amount.IsPositive(); i++ {
		id := remainders[i].id
		allocated[id], _ = allocated[id].Add(unit)
		leftover, _ = leftover.Sub(unit)
	}

	return allocated, nil
}
