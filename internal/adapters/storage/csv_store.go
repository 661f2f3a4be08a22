package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/SscSPs/smart_accounting/internal/apperrors"
	"github.com/SscSPs/smart_accounting/internal/core/domain"
	portsrepo "github.com/SscSPs/smart_accounting/internal/core/ports/repositories"
	"github.com/SscSPs/smart_accounting/pkg/spreadsheet"
)

// CSVStore keeps each ledger in its own <Ledger>.csv file under one directory.
type CSVStore struct {
	dir string
}

var _ portsrepo.TableStoreFacade = (*CSVStore)(nil)

// NewCSVStore creates a store rooted at dir.
func NewCSVStore(dir string) *CSVStore {
	return &CSVStore{dir: dir}
}

// Kind names the persistence medium.
func (s *CSVStore) Kind() string { return "csv" }

func (s *CSVStore) file(ledger domain.LedgerName) string {
	return filepath.Join(s.dir, string(ledger)+".csv")
}

// LoadTable reads one ledger file.
func (s *CSVStore) LoadTable(_ context.Context, ledger domain.LedgerName) (domain.Table, error) {
	f, err := os.Open(s.file(ledger))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Table{}, fmt.Errorf("%w: %s", apperrors.ErrNotFound, s.file(ledger))
		}
		return domain.Table{}, fmt.Errorf("open ledger file: %w", err)
	}
	defer f.Close()
	return spreadsheet.ReadCSV(f, ledger)
}

// SaveTables writes each table to a temporary file and renames it into place.
func (s *CSVStore) SaveTables(_ context.Context, tables []domain.Table) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create ledger dir: %w", err)
	}
	for _, t := range tables {
		if err := s.writeTable(t); err != nil {
			return err
		}
	}
	return nil
}

func (s *CSVStore) writeTable(t domain.Table) (err error) {
	path := s.file(t.Name)
	tmp, err := os.CreateTemp(s.dir, string(t.Name)+"-*.csv.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", t.Name, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = spreadsheet.WriteCSV(tmp, t); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", t.Name, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", t.Name, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
