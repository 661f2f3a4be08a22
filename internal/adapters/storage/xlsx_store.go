// Package storage persists ledger tables to local files.
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
	"github.com/xuri/excelize/v2"
)

// XLSXStore keeps every ledger as a sheet of one workbook.
type XLSXStore struct {
	path string
}

var _ portsrepo.TableStoreFacade = (*XLSXStore)(nil)

// NewXLSXStore creates a store for the workbook at path.
func NewXLSXStore(path string) *XLSXStore {
	return &XLSXStore{path: path}
}

// Kind names the persistence medium.
func (s *XLSXStore) Kind() string { return "xlsx" }

// LoadTable reads one sheet of the workbook.
func (s *XLSXStore) LoadTable(_ context.Context, ledger domain.LedgerName) (domain.Table, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Table{}, fmt.Errorf("%w: workbook %s", apperrors.ErrNotFound, s.path)
		}
		return domain.Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return spreadsheet.ReadSheet(f, ledger)
}

// SaveTables writes all tables to a temporary workbook and renames it over
// the old one, so a failed save leaves the previous file intact.
func (s *XLSXStore) SaveTables(_ context.Context, tables []domain.Table) error {
	f, err := spreadsheet.BuildWorkbook(tables)
	if err != nil {
		return err
	}
	defer f.Close()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create workbook dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create workbook: %w", err)
	}
	if _, err := f.WriteTo(out); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write workbook: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close workbook: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace workbook: %w", err)
	}
	return nil
}
