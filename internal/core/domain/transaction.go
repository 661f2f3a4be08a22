package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies an interpreted transaction.
type TransactionKind string

const (
	KindSale     TransactionKind = "SALE"
	KindPurchase TransactionKind = "PURCHASE"
	KindExpense  TransactionKind = "EXPENSE"
	KindGeneral  TransactionKind = "GENERAL"
)

// Taxable reports whether VAT applies to the kind.
func (k TransactionKind) Taxable() bool {
	return k == KindSale || k == KindPurchase
}

// DefaultAmount is used when no numeral can be found in the input text.
var DefaultAmount = decimal.NewFromInt(1000)

// DefaultVATRate is the fixed Saudi VAT rate.
var DefaultVATRate = decimal.RequireFromString("0.15")

// Transaction is the typed result of interpreting free-form input.
type Transaction struct {
	Kind          TransactionKind `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"` // Raw input text
	DebitAccount  string          `json:"debitAccount"`
	CreditAccount string          `json:"creditAccount"`
	VATAmount     decimal.Decimal `json:"vatAmount"`
}

// ComputeVAT returns amount*rate rounded to two decimals.
func ComputeVAT(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Round(2)
}
