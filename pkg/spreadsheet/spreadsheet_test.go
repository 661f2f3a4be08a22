package spreadsheet_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/SscSPs/smart_accounting/internal/core/domain"
	"github.com/SscSPs/smart_accounting/pkg/spreadsheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func salesTable() domain.Table {
	t := domain.NewTable(domain.LedgerSales)
	t.Rows = append(t.Rows,
		domain.Record{"Date": "2024-01-02", "Customer": "عميل", "Amount": "1500.00", "Description": "بيع, بضاعة", "Status": "معلقة"},
		domain.Record{"Date": "2024-01-03", "Customer": "ACME", "Amount": "20", "Description": "", "Status": "Completed"},
	)
	return t
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, spreadsheet.WriteCSV(&buf, salesTable()))
	assert.True(t, strings.HasPrefix(buf.String(), "\ufeff"))

	got, err := spreadsheet.ReadCSV(&buf, domain.LedgerSales)
	require.NoError(t, err)
	assert.Equal(t, domain.LedgerSales.Columns(), got.Columns)
	assert.Equal(t, salesTable().Rows, got.Rows)
}

func TestReadCSVWithoutHeader(t *testing.T) {
	_, err := spreadsheet.ReadCSV(strings.NewReader(""), domain.LedgerSales)
	assert.Error(t, err)
}

func TestWorkbookRoundTrip(t *testing.T) {
	tables := []domain.Table{salesTable(), domain.NewTable(domain.LedgerPurchases)}
	f, err := spreadsheet.BuildWorkbook(tables)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Sales", "Purchases"}, f.GetSheetList())

	got, err := spreadsheet.ReadSheet(f, domain.LedgerSales)
	require.NoError(t, err)
	assert.Equal(t, salesTable().Rows, got.Rows)

	empty, err := spreadsheet.ReadSheet(f, domain.LedgerPurchases)
	require.NoError(t, err)
	assert.Equal(t, domain.LedgerPurchases.Columns(), empty.Columns)
	assert.Empty(t, empty.Rows)

	_, err = spreadsheet.ReadSheet(f, domain.LedgerJournal)
	assert.Error(t, err)
}
