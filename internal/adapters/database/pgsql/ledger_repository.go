package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/smart_accounting/internal/apperrors"
	"github.com/SscSPs/smart_accounting/internal/core/domain"
	portsrepo "github.com/SscSPs/smart_accounting/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLedgerRepository persists ledger tables as ordered JSONB rows.
type PgxLedgerRepository struct {
	pool *pgxpool.Pool
}

var _ portsrepo.TableStoreFacade = (*PgxLedgerRepository)(nil)

// NewPgxLedgerRepository creates a new repository for ledger tables.
func NewPgxLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{pool: pool}
}

// Kind names the persistence medium.
func (r *PgxLedgerRepository) Kind() string { return "postgres" }

// LoadTable reads one ledger in row order.
func (r *PgxLedgerRepository) LoadTable(ctx context.Context, ledger domain.LedgerName) (domain.Table, error) {
	t := domain.Table{Name: ledger}

	err := r.pool.QueryRow(ctx, `SELECT columns FROM ledger_tables WHERE ledger = $1;`, string(ledger)).Scan(&t.Columns)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return t, fmt.Errorf("%w: ledger %s has never been saved", apperrors.ErrNotFound, ledger)
		}
		return t, fmt.Errorf("failed to find ledger %s: %w", ledger, err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT data
		FROM ledger_rows
		WHERE ledger = $1
		ORDER BY position;
	`, string(ledger))
	if err != nil {
		return t, fmt.Errorf("failed to query rows for ledger %s: %w", ledger, err)
	}
	defer rows.Close()

	t.Rows = []domain.Record{}
	for rows.Next() {
		var rec domain.Record
		if err := rows.Scan(&rec); err != nil {
			return t, fmt.Errorf("failed to scan row for ledger %s: %w", ledger, err)
		}
		t.Rows = append(t.Rows, rec)
	}
	if err := rows.Err(); err != nil {
		return t, fmt.Errorf("error iterating rows for ledger %s: %w", ledger, err)
	}
	return t, nil
}

// SaveTables replaces every given table inside one DB transaction.
func (r *PgxLedgerRepository) SaveTables(ctx context.Context, tables []domain.Table) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // no-op after commit
	}()

	now := time.Now().UTC()
	batch := &pgx.Batch{}
	for _, t := range tables {
		batch.Queue(`
			INSERT INTO ledger_tables (ledger, columns, last_updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (ledger) DO UPDATE SET
				columns = EXCLUDED.columns,
				last_updated_at = EXCLUDED.last_updated_at;
		`, string(t.Name), t.Columns, now)
		batch.Queue(`DELETE FROM ledger_rows WHERE ledger = $1;`, string(t.Name))
		for i, rec := range t.Rows {
			batch.Queue(`INSERT INTO ledger_rows (ledger, position, data) VALUES ($1, $2, $3);`, string(t.Name), i, rec)
		}
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute ledger batch: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit ledgers: %w", err)
	}
	return nil
}
