package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"commission_go/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage persists tabulated orders and their ledger entries.
type Storage struct {
	db *gorm.DB
}

// NewStorage opens (or creates) the SQLite ledger at path. An empty path
// resolves to the per-user config directory.
func NewStorage(path string) (*Storage, error) {
	dbPath := path
	if dbPath == "" {
		var err error
		if dbPath, err = getDBPath(); err != nil {
			return nil, fmt.Errorf("failed to resolve DB path: %w", err)
		}
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Connect to SQLite (Pure Go)
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return newStorage(db)
}

func newStorage(db *gorm.DB) (*Storage, error) {
	if err := db.AutoMigrate(&domain.OrderRecord{}, &domain.LedgerEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Storage{db: db}, nil
}

// getDBPath resolves the database file path based on OS
func getDBPath() (string, error) {
	var configDir string
	var err error

	if runtime.GOOS == "windows" {
		configDir = os.Getenv("LOCALAPPDATA")
		if configDir == "" {
			configDir, err = os.UserConfigDir()
		}
	} else {
		configDir, err = os.UserConfigDir()
	}

	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "Commission", "data", "ledger.db"), nil
}

// Close releases the underlying connection pool.
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ======================================================================================
// Ledger Operations
// ======================================================================================

// SaveTabulation upserts the order header and replaces all of its ledger
// entries in one transaction.
func (s *Storage) SaveTabulation(ctx context.Context, order *domain.OrderRecord, entries []domain.LedgerEntry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(order).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&domain.LedgerEntry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		for i := range entries {
			entries[i].ID = 0
			entries[i].OrderID = order.ID
		}
		return tx.Create(&entries).Error
	})
}

// GetOrder retrieves an order header by ID
func (s *Storage) GetOrder(ctx context.Context, id string) (*domain.OrderRecord, error) {
	var order domain.OrderRecord
	err := s.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // Not found is not an error
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListEntries returns an order's ledger entries by priority.
func (s *Storage) ListEntries(ctx context.Context, orderID string) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	err := s.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("priority ASC, id ASC").
		Find(&entries).Error
	return entries, err
}

// ListOrders returns all order headers, newest first.
func (s *Storage) ListOrders(ctx context.Context) ([]domain.OrderRecord, error) {
	var orders []domain.OrderRecord
	err := s.db.WithContext(ctx).Order("updated_at DESC").Find(&orders).Error
	return orders, err
}

// DeleteOrder deletes an order and its entries.
func (s *Storage) DeleteOrder(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&domain.LedgerEntry{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.OrderRecord{}).Error
	})
}
