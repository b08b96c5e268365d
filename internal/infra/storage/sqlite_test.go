package storage

import (
	"context"
	"path/filepath"
	"testing"

	"commission_go/internal/domain"

	"github.com/shopspring/decimal"
)

func setupTestDB(t *testing.T) *Storage {
	s, err := NewStorage(filepath.Join(t.TempDir(), "data", "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func sampleEntries() []domain.LedgerEntry {
	return []domain.LedgerEntry{
		{LineID: "shield", Type: "shield", Priority: 300, Amount: decimal.RequireFromString("0.93"), Currency: "USD"},
		{LineID: "base", Type: "base_price", Priority: 0, Amount: decimal.RequireFromString("14.18"), Currency: "USD"},
		{LineID: "add_on", Type: "add_on", Priority: 100, Amount: decimal.RequireFromString("1.89"), Currency: "USD"},
	}
}

func TestSaveAndListEntries(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	order := &domain.OrderRecord{ID: "ORD-1", Currency: "USD", Total: decimal.RequireFromString("17.00"), LineCount: 3}
	if err := s.SaveTabulation(ctx, order, sampleEntries()); err != nil {
		t.Fatalf("SaveTabulation failed: %v", err)
	}

	entries, err := s.ListEntries(ctx, "ORD-1")
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	// Ordered by priority
	if entries[0].LineID != "base" || entries[2].LineID != "shield" {
		t.Errorf("unexpected order: %s, %s, %s", entries[0].LineID, entries[1].LineID, entries[2].LineID)
	}
	if !entries[0].Amount.Equal(decimal.RequireFromString("14.18")) {
		t.Errorf("expected 14.18, got %s", entries[0].Amount)
	}
	if entries[0].OrderID != "ORD-1" {
		t.Errorf("expected order id to be stamped, got %q", entries[0].OrderID)
	}

	fetched, err := s.GetOrder(ctx, "ORD-1")
	if err != nil {
		t.Fatalf("GetOrder failed: %v", err)
	}
	if fetched == nil || !fetched.Total.Equal(decimal.RequireFromString("17")) {
		t.Errorf("expected stored total 17.00, got %+v", fetched)
	}
}

func TestSaveTabulationReplacesEntries(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()
	order := &domain.OrderRecord{ID: "ORD-2", Currency: "USD", Total: decimal.RequireFromString("17.00")}

	if err := s.SaveTabulation(ctx, order, sampleEntries()); err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	order.Total = decimal.RequireFromString("15.00")
	replacement := []domain.LedgerEntry{
		{LineID: "base", Type: "base_price", Amount: decimal.RequireFromString("15.00"), Currency: "USD"},
	}
	if err := s.SaveTabulation(ctx, order, replacement); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	entries, _ := s.ListEntries(ctx, "ORD-2")
	if len(entries) != 1 {
		t.Errorf("expected 1 entry after replace, got %d", len(entries))
	}

	fetched, _ := s.GetOrder(ctx, "ORD-2")
	if !fetched.Total.Equal(decimal.RequireFromString("15")) {
		t.Errorf("expected updated total 15.00, got %s", fetched.Total)
	}
}

func TestGetOrderMissing(t *testing.T) {
	s := setupTestDB(t)

	fetched, err := s.GetOrder(context.Background(), "NOPE")
	if err != nil {
		t.Fatalf("GetOrder failed: %v", err)
	}
	if fetched != nil {
		t.Error("expected nil for missing order")
	}
}

func TestDeleteOrder(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()
	order := &domain.OrderRecord{ID: "DEL", Currency: "USD", Total: decimal.RequireFromString("17.00")}
	s.SaveTabulation(ctx, order, sampleEntries())

	if err := s.DeleteOrder(ctx, "DEL"); err != nil {
		t.Fatalf("DeleteOrder failed: %v", err)
	}

	fetched, err := s.GetOrder(ctx, "DEL")
	if err != nil {
		t.Fatalf("GetOrder after delete failed: %v", err)
	}
	if fetched != nil {
		t.Error("expected order to be deleted, but found record")
	}
	entries, _ := s.ListEntries(ctx, "DEL")
	if len(entries) != 0 {
		t.Errorf("expected entries to be deleted, found %d", len(entries))
	}
}

func TestListOrders(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	for _, id := range []string{"A", "B"} {
		order := &domain.OrderRecord{ID: id, Currency: "USD", Total: decimal.NewFromInt(1)}
		if err := s.SaveTabulation(ctx, order, nil); err != nil {
			t.Fatalf("SaveTabulation failed: %v", err)
		}
	}

	orders, err := s.ListOrders(ctx)
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if len(orders) != 2 {
		t.Errorf("expected 2 orders, got %d", len(orders))
	}
}
