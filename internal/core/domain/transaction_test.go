package domain_test

import (
	"testing"

	"github.com/SscSPs/smart_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeVAT(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{name: "whole amount", amount: "1500", want: "225"},
		{name: "default amount", amount: "1000", want: "150"},
		{name: "rounds to cents", amount: "99.99", want: "15"},
		{name: "half cent rounds up", amount: "0.1", want: "0.02"},
		{name: "zero", amount: "0", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ComputeVAT(decimal.RequireFromString(tt.amount), domain.DefaultVATRate)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestTransactionKind_Taxable(t *testing.T) {
	assert.True(t, domain.KindSale.Taxable())
	assert.True(t, domain.KindPurchase.Taxable())
	assert.False(t, domain.KindExpense.Taxable())
	assert.False(t, domain.KindGeneral.Taxable())
}

func TestResolveKind(t *testing.T) {
	tests := []struct {
		label string
		want  domain.TransactionKind
	}{
		{"بيع", domain.KindSale},
		{"Sale", domain.KindSale},
		{"SALE", domain.KindSale},
		{"شراء", domain.KindPurchase},
		{"purchase", domain.KindPurchase},
		{"مصروف", domain.KindExpense},
		{"Expense", domain.KindExpense},
		{"عام", domain.KindGeneral},
		{"", domain.KindGeneral},
		{"something else", domain.KindGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ResolveKind(tt.label))
		})
	}
}

func TestJournalLine_Record(t *testing.T) {
	line := domain.DebitLine("Bank", decimal.RequireFromString("12.5"))
	line.Entry = domain.EntryID(2024, 7)
	line.Date = "2024-03-01"

	rec := line.Record()
	assert.Equal(t, "JV-2024-0007", rec[domain.ColEntry])
	assert.Equal(t, "12.50", rec[domain.ColDebit])
	assert.Equal(t, "0.00", rec[domain.ColCredit])
	assert.Equal(t, "Bank", rec[domain.ColAccount])
}
