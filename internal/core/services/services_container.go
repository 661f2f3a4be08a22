package services

import (
	"log/slog"

	portsrepo "github.com/SscSPs/smart_accounting/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/smart_accounting/internal/core/ports/services"
	"github.com/SscSPs/smart_accounting/internal/platform/config"
	"github.com/SscSPs/smart_accounting/internal/platform/rules"
)

// Engines are the external text and feed engines behind the service boundary.
// Any of them may be nil; the dependent operations then fail with ErrExtraction
// or ErrExternal.
type Engines struct {
	OCR    portssvc.TextExtractor
	Speech portssvc.Transcriber
	Feeds  portssvc.FeedClient
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, r rules.Rules, engines Engines, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The ledger store is shared by every other service
	container.Ledger = NewLedgerStore(repos.TableStore)

	opts := []PostingOption{WithListenTimeout(cfg.ListenTimeout)}
	if engines.OCR != nil {
		opts = append(opts, WithTextExtractor(engines.OCR))
	}
	if engines.Speech != nil {
		opts = append(opts, WithTranscriber(engines.Speech))
	}
	container.Posting = NewPostingService(container.Ledger, r, opts...)

	container.Audit = NewAuditEngine(r.Locale)
	container.Export = NewExportService(container.Ledger, r.Locale)

	feeds := engines.Feeds
	if feeds == nil {
		feeds = noFeeds{}
	}
	container.External = NewExternalFeedService(feeds)
	container.Tasks = NewTaskRunner(logger)

	return container
}
