package domain

import (
	"context"
)

// LedgerRepository defines how recorded tabulations are persisted
type LedgerRepository interface {
	SaveTabulation(ctx context.Context, order *OrderRecord, entries []LedgerEntry) error
	GetOrder(ctx context.Context, id string) (*OrderRecord, error)
	ListEntries(ctx context.Context, orderID string) ([]LedgerEntry, error)
	ListOrders(ctx context.Context) ([]OrderRecord, error)
	DeleteOrder(ctx context.Context, id string) error
}
