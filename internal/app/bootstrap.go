package app

import (
	"errors"
	"log/slog"

	"commission_go/internal/domain"
	"commission_go/internal/infra"
	"commission_go/internal/infra/storage"
	"commission_go/internal/pricing"
	"commission_go/internal/service"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config  *infra.Config
	Storage *storage.Storage
	Policy  *pricing.Policy
	Ledger  *service.LedgerService
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize loads configuration, installs the logger and opens the ledger.
// A missing config file falls back to the built-in defaults.
func (b *Bootstrap) Initialize(configPath string, verbose bool) error {
	// 1. Load Config
	cfg, err := infra.LoadConfig(configPath)
	usingDefaults := errors.Is(err, domain.ErrConfigNotFound)
	if usingDefaults {
		// Defaults still honour environment overrides.
		cfg, err = infra.ParseConfig(nil)
	}
	if err != nil {
		return err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)
	slog.Debug("🚀 Bootstrapping Commission...", slog.String("config", configPath))
	if usingDefaults {
		slog.Debug("⚠️ Config file not found, using defaults", slog.String("path", configPath))
	}

	// 3. Initialize Storage (DB)
	store, err := storage.NewStorage(cfg.Storage.Path)
	if err != nil {
		return err
	}
	b.Storage = store
	slog.Debug("✅ Ledger database initialized")

	// 4. Pricing & Ledger
	b.Policy = pricing.NewPolicy(cfg.Pricing)
	b.Ledger = service.NewLedgerService(store, infra.GlobalMetrics, logger)
	slog.Debug("✅ Ledger service ready", slog.String("currency", cfg.Pricing.Currency))

	return nil
}

// Close releases the ledger database.
func (b *Bootstrap) Close() error {
	if b.Storage == nil {
		return nil
	}
	snap := infra.GlobalMetrics.Snapshot()
	slog.Debug("👋 Shutting down",
		slog.Uint64("tabulations", snap.Tabulations),
		slog.Uint64("orders", snap.OrdersRecorded),
		slog.Uint64("failures", snap.FailuresTotal))
	return b.Storage.Close()
}
