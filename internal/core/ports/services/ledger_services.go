package services

import (
	"context"

	"github.com/SscSPs/smart_accounting/internal/core/domain"
)

// LedgerReaderSvc defines read operations over the in-memory ledgers.
type LedgerReaderSvc interface {
	// Snapshot returns a deep copy of every ledger.
	Snapshot() domain.Snapshot

	// Rows returns a copy of the rows of one ledger.
	Rows(ledger domain.LedgerName) ([]domain.Record, error)

	// Summary returns the row count and Amount total of one ledger.
	Summary(ledger domain.LedgerName) (domain.LedgerSummary, error)
}

// LedgerWriterSvc defines mutations of the in-memory ledgers and their persistence.
type LedgerWriterSvc interface {
	// Append adds one row to the end of a ledger. No duplicate check is made.
	Append(ledger domain.LedgerName, record domain.Record) error

	// Post appends a ledger row together with the journal lines of one entry
	// and returns the assigned entry id.
	Post(ledger domain.LedgerName, record domain.Record, lines []domain.JournalLine) (string, error)

	// Load replaces tables with their persisted versions where readable.
	Load(ctx context.Context)

	// Save writes every ledger to the persistence medium.
	Save(ctx context.Context) error
}

// LedgerSvcFacade combines ledger read and write operations.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
