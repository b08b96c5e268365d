package engine

import (
	"commission_go/internal/domain"
)

// Subtotal is a line's current contribution to the running total.
type Subtotal struct {
	Line  domain.LineItem
	Value domain.Money
}

// DistributeReduction splits amount across candidates in proportion to each
// candidate's share of total: reduction = amount * (value / total).
//
// A zero total has no proportions, so it fails with
// ErrUndistributableReduction instead of distributing nothing.
func DistributeReduction(total, amount domain.Money, candidates []Subtotal) (map[domain.LineID]domain.Money, error) {
	if total.IsZero() {
		return nil, domain.ErrUndistributableReduction
	}

	reductions := make(map[domain.LineID]domain.Money, len(candidates))
	for _, c := range candidates {
		share, err := amount.Share(c.Value, total)
		if err != nil {
			return nil, domain.NewLineError(c.Line.ID, "distribute", err)
		}
		reductions[c.Line.ID] = share
	}
	return reductions, nil
}
