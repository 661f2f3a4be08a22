package repositories

import (
	"context"

	"github.com/SscSPs/smart_accounting/internal/core/domain"
)

// TableReader reads a single ledger table from the persistence medium.
type TableReader interface {
	// LoadTable returns the persisted rows of the ledger. A missing or malformed
	// table is reported as an error; callers decide whether to ignore it.
	LoadTable(ctx context.Context, ledger domain.LedgerName) (domain.Table, error)
}

// TableWriter writes every ledger table to the persistence medium.
type TableWriter interface {
	// SaveTables overwrites the persisted tables with the given ones.
	SaveTables(ctx context.Context, tables []domain.Table) error
}

// TableStoreFacade combines table read and write operations.
type TableStoreFacade interface {
	TableReader
	TableWriter
	// Kind names the medium (xlsx, csv, postgres) for logging.
	Kind() string
}
