package domain_test

import (
	"testing"

	"github.com/SscSPs/smart_accounting/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerSchemas(t *testing.T) {
	assert.Equal(t, []string{"Date", "Customer", "Amount", "Description", "Status"}, domain.LedgerSales.Columns())
	assert.Equal(t, []string{"Date", "Supplier", "Amount", "Description", "Status"}, domain.LedgerPurchases.Columns())
	assert.Equal(t, []string{"Date", "Type", "Amount", "Description", "Status"}, domain.LedgerExpenses.Columns())
	assert.Equal(t, []string{"Name", "Email", "Phone", "Balance"}, domain.LedgerCustomers.Columns())
	assert.Equal(t, []string{"Name", "Email", "Phone", "Balance"}, domain.LedgerSuppliers.Columns())

	assert.True(t, domain.LedgerSales.HasAmount())
	assert.False(t, domain.LedgerCustomers.HasAmount())
	assert.False(t, domain.LedgerName("Payroll").Valid())
}

func TestColumnsReturnsCopy(t *testing.T) {
	cols := domain.LedgerSales.Columns()
	cols[0] = "Mutated"
	assert.Equal(t, "Date", domain.LedgerSales.Columns()[0])
}

func TestParseLedgerName(t *testing.T) {
	l, ok := domain.ParseLedgerName(" sales ")
	require.True(t, ok)
	assert.Equal(t, domain.LedgerSales, l)

	_, ok = domain.ParseLedgerName("payroll")
	assert.False(t, ok)
}

func TestTableClone(t *testing.T) {
	tbl := domain.NewTable(domain.LedgerSales)
	tbl.Rows = append(tbl.Rows, domain.Record{domain.ColAmount: "10"})

	clone := tbl.Clone()
	clone.Rows[0][domain.ColAmount] = "20"

	assert.Equal(t, "10", tbl.Rows[0][domain.ColAmount])
}

func TestChart_IsDeclaredExpense(t *testing.T) {
	chart := domain.LocaleFor(domain.LocaleEnglish).Chart
	assert.True(t, chart.IsDeclaredExpense("rent"))
	assert.False(t, chart.IsDeclaredExpense("General Expenses"))
	assert.False(t, chart.IsDeclaredExpense(""))

	merged := chart.Merge(domain.Chart{Bank: "Main Bank", ExpenseTypes: []string{"Fuel"}})
	assert.Equal(t, "Main Bank", merged.Bank)
	assert.Equal(t, chart.SalesRevenue, merged.SalesRevenue)
	assert.True(t, merged.IsDeclaredExpense("Fuel"))
	assert.False(t, merged.IsDeclaredExpense("Rent"))
}
