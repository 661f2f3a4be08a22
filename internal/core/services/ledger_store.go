package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/smart_accounting/internal/apperrors"
	"github.com/SscSPs/smart_accounting/internal/core/domain"
	portsrepo "github.com/SscSPs/smart_accounting/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/smart_accounting/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// LedgerStore owns the in-memory ledger tables. All mutations go through its
// methods and are serialised by one mutex; Save is additionally serialised so
// concurrent saves cannot write an older snapshot last.
type LedgerStore struct {
	BaseService
	mu     sync.Mutex
	saveMu sync.Mutex
	tables map[domain.LedgerName]*domain.Table
	store  portsrepo.TableStoreFacade
	now    func() time.Time
}

var _ portssvc.LedgerSvcFacade = (*LedgerStore)(nil)

// NewLedgerStore creates a store with empty tables backed by store.
func NewLedgerStore(store portsrepo.TableStoreFacade) *LedgerStore {
	s := &LedgerStore{
		tables: make(map[domain.LedgerName]*domain.Table),
		store:  store,
		now:    time.Now,
	}
	for _, l := range domain.Ledgers() {
		t := domain.NewTable(l)
		s.tables[l] = &t
	}
	return s
}

// Append adds one row to the end of ledger. Columns outside the ledger schema
// are rejected, as is a row with every column blank; missing columns are
// stored empty.
func (s *LedgerStore) Append(ledger domain.LedgerName, record domain.Record) error {
	row, err := conformRecord(ledger, record)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tables[ledger]
	t.Rows = append(t.Rows, row)
	return nil
}

// Post appends record to ledger and the lines as one journal entry, atomically.
// Lines without a date take the record's date. The entry id is returned; it is
// empty when no lines are given.
func (s *LedgerStore) Post(ledger domain.LedgerName, record domain.Record, lines []domain.JournalLine) (string, error) {
	row, err := conformRecord(ledger, record)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.tables[ledger]
	t.Rows = append(t.Rows, row)
	if len(lines) == 0 {
		return "", nil
	}

	date := row[domain.ColDate]
	year := s.now().Year()
	if d, err := time.Parse(domain.DateLayout, date); err == nil {
		year = d.Year()
	}
	entry := domain.EntryID(year, s.nextEntrySeqLocked(year))

	journal := s.tables[domain.LedgerJournal]
	for _, line := range lines {
		line.Entry = entry
		if line.Date == "" {
			line.Date = date
		}
		journal.Rows = append(journal.Rows, line.Record())
	}
	return entry, nil
}

func (s *LedgerStore) nextEntrySeqLocked(year int) int {
	prefix := fmt.Sprintf("JV-%d-", year)
	last := 0
	for _, r := range s.tables[domain.LedgerJournal].Rows {
		id := r[domain.ColEntry]
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimPrefix(id, prefix)); err == nil && n > last {
			last = n
		}
	}
	return last + 1
}

// Rows returns a copy of the rows of ledger.
func (s *LedgerStore) Rows(ledger domain.LedgerName) ([]domain.Record, error) {
	if !ledger.Valid() {
		return nil, fmt.Errorf("%w: unknown ledger %q", apperrors.ErrNotFound, ledger)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tables[ledger].Clone().Rows, nil
}

// Summary returns the row count and the total of the Amount column. Rows whose
// amount does not parse are counted but not totalled.
func (s *LedgerStore) Summary(ledger domain.LedgerName) (domain.LedgerSummary, error) {
	rows, err := s.Rows(ledger)
	if err != nil {
		return domain.LedgerSummary{}, err
	}
	sum := domain.LedgerSummary{Ledger: ledger, Count: len(rows), Total: decimal.Zero}
	if !ledger.HasAmount() {
		return sum, nil
	}
	for _, r := range rows {
		if v, err := decimal.NewFromString(strings.TrimSpace(r[domain.ColAmount])); err == nil {
			sum.Total = sum.Total.Add(v)
		}
	}
	return sum, nil
}

// Snapshot returns a deep copy of every ledger.
func (s *LedgerStore) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := make(domain.Snapshot, len(s.tables))
	for name, t := range s.tables {
		snap[name] = t.Clone()
	}
	return snap
}

// Load replaces each table with its persisted version. A table that cannot be
// read, or whose header lacks a schema column, keeps its in-memory contents.
// Tables are read first and then swapped in under one lock, so a posting sees
// either none or all of the reload. Load never fails.
func (s *LedgerStore) Load(ctx context.Context) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	logger := s.GetLogger(ctx).With(slog.String("store", s.store.Kind()))
	replaced := make(map[domain.LedgerName][]domain.Record, len(s.tables))
	for _, ledger := range domain.Ledgers() {
		loaded, err := s.store.LoadTable(ctx, ledger)
		if err != nil {
			logger.Warn("Ledger not loaded, keeping in-memory table", slog.String("ledger", string(ledger)), slog.String("error", err.Error()))
			continue
		}
		rows, ok := conformTable(ledger, loaded)
		if !ok {
			logger.Warn("Ledger header does not match schema, keeping in-memory table", slog.String("ledger", string(ledger)), slog.Any("columns", loaded.Columns))
			continue
		}
		replaced[ledger] = rows
	}

	s.mu.Lock()
	for ledger, rows := range replaced {
		s.tables[ledger].Rows = rows
	}
	s.mu.Unlock()

	for ledger, rows := range replaced {
		logger.Debug("Ledger loaded", slog.String("ledger", string(ledger)), slog.Int("rows", len(rows)))
	}
}

// Save writes every ledger. A failure is reported as ErrPersistence; the
// in-memory tables are left as they are.
func (s *LedgerStore) Save(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	snap := s.Snapshot()
	tables := make([]domain.Table, 0, len(snap))
	for _, l := range domain.Ledgers() {
		tables = append(tables, snap[l])
	}

	if err := s.store.SaveTables(ctx, tables); err != nil {
		s.LogError(ctx, err, "Failed to save ledgers", slog.String("store", s.store.Kind()))
		return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	s.LogDebug(ctx, "Ledgers saved", slog.String("store", s.store.Kind()))
	return nil
}

func conformRecord(ledger domain.LedgerName, record domain.Record) (domain.Record, error) {
	if !ledger.Valid() {
		return nil, fmt.Errorf("%w: unknown ledger %q", apperrors.ErrValidation, ledger)
	}
	cols := ledger.Columns()
	allowed := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		allowed[c] = struct{}{}
	}
	var unknown []string
	for k := range record {
		if _, ok := allowed[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("%w: ledger %s has no column(s) %s", apperrors.ErrValidation, ledger, strings.Join(unknown, ", "))
	}
	row := make(domain.Record, len(cols))
	blank := true
	for _, c := range cols {
		row[c] = record[c]
		if strings.TrimSpace(record[c]) != "" {
			blank = false
		}
	}
	// Blank rows are skipped when tables are read back, so they are not stored.
	if blank {
		return nil, fmt.Errorf("%w: ledger %s row has no values", apperrors.ErrValidation, ledger)
	}
	return row, nil
}

func conformTable(ledger domain.LedgerName, t domain.Table) ([]domain.Record, bool) {
	have := make(map[string]struct{}, len(t.Columns))
	for _, c := range t.Columns {
		have[strings.TrimSpace(c)] = struct{}{}
	}
	cols := ledger.Columns()
	for _, c := range cols {
		if _, ok := have[c]; !ok {
			return nil, false
		}
	}
	rows := make([]domain.Record, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := make(domain.Record, len(cols))
		for _, c := range cols {
			row[c] = r[c]
		}
		rows = append(rows, row)
	}
	return rows, true
}
