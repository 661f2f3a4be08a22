package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/SscSPs/smart_accounting/internal/core/domain"
)

// bom is written ahead of CSV output so spreadsheet tools detect UTF-8.
const bom = "\ufeff"

// WriteCSV writes t as a UTF-8 CSV with a byte order mark.
func WriteCSV(w io.Writer, t domain.Table) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		rec := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			rec[i] = row[c]
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a table written by WriteCSV (or any CSV with a header row).
func ReadCSV(r io.Reader, ledger domain.LedgerName) (domain.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return domain.Table{}, fmt.Errorf("parse csv %s: %w", ledger, err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], bom)
	}
	return tableFromRows(ledger, rows)
}
