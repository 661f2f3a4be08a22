// Package app wires configuration, persistence and engines into a service
// container shared by the HTTP server and the CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/smart_accounting/internal/adapters/database/pgsql"
	"github.com/SscSPs/smart_accounting/internal/adapters/feeds"
	"github.com/SscSPs/smart_accounting/internal/adapters/ocr"
	"github.com/SscSPs/smart_accounting/internal/adapters/speech"
	"github.com/SscSPs/smart_accounting/internal/adapters/storage"
	portsrepo "github.com/SscSPs/smart_accounting/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/smart_accounting/internal/core/ports/services"
	"github.com/SscSPs/smart_accounting/internal/core/services"
	"github.com/SscSPs/smart_accounting/internal/platform/config"
	"github.com/SscSPs/smart_accounting/internal/platform/rules"
	"github.com/SscSPs/smart_accounting/internal/platform/scheduler"
	"github.com/SscSPs/smart_accounting/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App is a fully wired application.
type App struct {
	Config    *config.Config
	Rules     rules.Rules
	Services  *portssvc.ServiceContainer
	Scheduler *scheduler.Scheduler

	logger *slog.Logger
	pool   *pgxpool.Pool
}

// New builds the application and loads the persisted ledgers.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	r, err := LoadRules(cfg)
	if err != nil {
		return nil, err
	}

	store, pool, err := OpenTableStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, Rules: r, logger: logger, pool: pool}
	a.Services = services.NewServiceContainer(cfg, portsrepo.RepositoryProvider{TableStore: store}, r, NewEngines(cfg), logger)
	a.Services.Ledger.Load(ctx)
	logger.Info("Ledgers loaded", slog.String("store", store.Kind()), slog.String("locale", r.Locale.Code))
	return a, nil
}

// LoadRules resolves the classification rules from config and the optional rules file.
func LoadRules(cfg *config.Config) (rules.Rules, error) {
	r := rules.Default(cfg.Locale, cfg.VATRate, cfg.DefaultCurrency)
	if cfg.RulesFile == "" {
		return r, nil
	}
	return rules.Load(cfg.RulesFile, r)
}

// OpenTableStore selects the persistence medium. For postgres it also runs
// migrations and returns the pool, which the caller must close.
func OpenTableStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.TableStoreFacade, *pgxpool.Pool, error) {
	switch cfg.LedgerStore {
	case config.StoreCSV:
		return storage.NewCSVStore(cfg.LedgerPath), nil, nil
	case config.StorePostgres:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		logger.Info("Running database migrations...")
		applied, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger)
		if err != nil {
			database.ClosePgxPool(pool)
			return nil, nil, err
		}
		if applied {
			logger.Info("Database migrations applied successfully.")
		} else {
			logger.Info("No new migrations to apply.")
		}
		return pgsql.NewPgxLedgerRepository(pool), pool, nil
	default:
		return storage.NewXLSXStore(cfg.LedgerPath), nil, nil
	}
}

// NewEngines builds the OCR, speech and feed engines that are configured.
func NewEngines(cfg *config.Config) services.Engines {
	var engines services.Engines
	if cfg.OCRCommand != "" {
		engines.OCR = ocr.NewTesseract(cfg.OCRCommand, cfg.OCRLang)
	}
	if cfg.STTURL != "" {
		engines.Speech = speech.NewHTTPTranscriber(cfg.STTURL, cfg.Locale, nil)
	}
	if cfg.RatesURL != "" || cfg.BankURL != "" {
		engines.Feeds = feeds.NewClient(cfg.RatesURL, cfg.BankURL, cfg.FeedTimeout)
	}
	return engines
}

// StartScheduler registers the rates auto-update job when enabled.
func (a *App) StartScheduler() error {
	if !a.Config.AutoUpdate {
		return nil
	}
	s := scheduler.New(a.logger)
	job := services.NewRatesRefreshJob(a.Services.External, a.logger)
	if err := s.AddJob(a.Config.AutoUpdateSchedule, job); err != nil {
		return fmt.Errorf("failed to schedule %s: %w", job.Name(), err)
	}
	s.Start()
	a.Scheduler = s
	return nil
}

// Close stops background work and releases the database pool.
func (a *App) Close(ctx context.Context) {
	if a.Scheduler != nil {
		a.Scheduler.Stop(ctx)
	}
	if a.Services != nil && a.Services.Tasks != nil {
		a.Services.Tasks.Shutdown(ctx)
	}
	database.ClosePgxPool(a.pool)
}
