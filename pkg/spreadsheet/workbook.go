// Package spreadsheet reads and writes ledger tables as XLSX workbooks and CSV files.
package spreadsheet

import (
	"fmt"
	"strings"

	"github.com/SscSPs/smart_accounting/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// BuildWorkbook writes each table to its own sheet, header in the first row.
// The caller owns the returned file and must Close it.
func BuildWorkbook(tables []domain.Table) (*excelize.File, error) {
	f := excelize.NewFile()
	for i, t := range tables {
		sheet := string(t.Name)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("new sheet %s: %w", sheet, err)
		}
		if err := writeSheet(f, sheet, t); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	if idx, err := f.GetSheetIndex(firstSheet(tables)); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

func firstSheet(tables []domain.Table) string {
	if len(tables) == 0 {
		return defaultSheet
	}
	return string(tables[0].Name)
}

func writeSheet(f *excelize.File, sheet string, t domain.Table) error {
	for c, h := range t.Columns {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write header %s!%s: %w", sheet, cell, err)
		}
	}
	for r, row := range t.Rows {
		for c, col := range t.Columns {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, row[col]); err != nil {
				return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
			}
		}
	}
	if n := len(t.Columns); n > 0 {
		last, _ := excelize.ColumnNumberToName(n)
		_ = f.SetColWidth(sheet, "A", last, 18)
	}
	return nil
}

// ReadSheet reads the sheet named after ledger. The first row is the header;
// short rows are padded with empty cells.
func ReadSheet(f *excelize.File, ledger domain.LedgerName) (domain.Table, error) {
	rows, err := f.GetRows(string(ledger))
	if err != nil {
		return domain.Table{}, fmt.Errorf("read sheet %s: %w", ledger, err)
	}
	return tableFromRows(ledger, rows)
}

func tableFromRows(ledger domain.LedgerName, rows [][]string) (domain.Table, error) {
	if len(rows) == 0 {
		return domain.Table{}, fmt.Errorf("table %s has no header", ledger)
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, bom))
	}
	t := domain.Table{Name: ledger, Columns: header, Rows: make([]domain.Record, 0, len(rows)-1)}
	for _, raw := range rows[1:] {
		if isBlank(raw) {
			continue
		}
		rec := make(domain.Record, len(header))
		for i, h := range header {
			if i < len(raw) {
				rec[h] = raw[i]
			} else {
				rec[h] = ""
			}
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
