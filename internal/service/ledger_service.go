package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"commission_go/internal/domain"
	"commission_go/internal/engine"
	"commission_go/internal/infra"
)

// LedgerService tabulates orders and records their penny-exact breakdowns.
type LedgerService struct {
	repo    domain.LedgerRepository
	metrics *infra.Metrics
	logger  *slog.Logger

	mu         sync.Mutex
	orderLocks map[string]*orderLock
}

// orderLock is dropped from the map once nobody holds or waits on it.
type orderLock struct {
	mu   sync.Mutex
	refs int
}

// NewLedgerService creates a new LedgerService instance
func NewLedgerService(repo domain.LedgerRepository, metrics *infra.Metrics, logger *slog.Logger) *LedgerService {
	if metrics == nil {
		metrics = infra.GlobalMetrics
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LedgerService{
		repo:       repo,
		metrics:    metrics,
		logger:     logger,
		orderLocks: make(map[string]*orderLock),
	}
}

// Quote tabulates lines without persisting anything.
func (s *LedgerService) Quote(lines []domain.LineItem) (*engine.Result, error) {
	start := time.Now()
	result, err := engine.Tabulate(lines)
	if err != nil {
		s.metrics.RecordFailure()
		s.logger.Warn("tabulation rejected", slog.Int("lines", len(lines)), slog.Any("error", err))
		return nil, err
	}
	s.metrics.RecordTabulation(len(lines), time.Since(start))
	return result, nil
}

// Record tabulates lines and replaces the stored ledger of orderID with the
// allocated breakdown. Calls for the same order are serialized.
func (s *LedgerService) Record(ctx context.Context, orderID string, lines []domain.LineItem) (*engine.Result, error) {
	if orderID == "" {
		return nil, fmt.Errorf("record: empty order id")
	}

	unlock := s.lockOrder(orderID)
	defer unlock()

	result, err := s.Quote(lines)
	if err != nil {
		return nil, err
	}

	allocated, err := result.Allocate()
	if err != nil {
		s.metrics.RecordFailure()
		return nil, err
	}

	entries := make([]domain.LedgerEntry, 0, len(result.Lines))
	for _, sub := range result.Lines {
		entries = append(entries, domain.LedgerEntry{
			LineID:      string(sub.Line.ID),
			Type:        sub.Line.Type.String(),
			Priority:    sub.Line.Priority,
			Amount:      allocated[sub.Line.ID].Amount,
			Currency:    result.Total.Currency,
			Description: sub.Line.Description,
		})
	}

	order := &domain.OrderRecord{
		ID:        orderID,
		Currency:  result.Total.Currency,
		Total:     result.Total.Amount,
		LineCount: len(lines),
	}
	if err := s.repo.SaveTabulation(ctx, order, entries); err != nil {
		s.metrics.RecordFailure()
		return nil, fmt.Errorf("save order %s: %w", orderID, err)
	}

	s.metrics.RecordOrder()
	s.logger.Info("order recorded",
		slog.String("order", orderID),
		slog.String("total", result.Total.String()),
		slog.Int("lines", len(entries)))
	return result, nil
}

// Entries returns the stored ledger of orderID.
func (s *LedgerService) Entries(ctx context.Context, orderID string) (*domain.OrderRecord, []domain.LedgerEntry, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
	}

	entries, err := s.repo.ListEntries(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, entries, nil
}

// Orders lists every recorded order.
func (s *LedgerService) Orders(ctx context.Context) ([]domain.OrderRecord, error) {
	return s.repo.ListOrders(ctx)
}

// Void deletes the recorded ledger of orderID.
func (s *LedgerService) Void(ctx context.Context, orderID string) error {
	unlock := s.lockOrder(orderID)
	defer unlock()

	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
	}

	if err := s.repo.DeleteOrder(ctx, orderID); err != nil {
		return fmt.Errorf("void order %s: %w", orderID, err)
	}
	s.logger.Info("order voided", slog.String("order", orderID))
	return nil
}

// lockOrder serializes work on one order and returns its release func.
func (s *LedgerService) lockOrder(orderID string) func() {
	s.mu.Lock()
	lock, ok := s.orderLocks[orderID]
	if !ok {
		lock = &orderLock{}
		s.orderLocks[orderID] = lock
	}
	lock.refs++
	s.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()

		s.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(s.orderLocks, orderID)
		}
		s.mu.Unlock()
	}
}
