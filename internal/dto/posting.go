package dto

import (
	"github.com/SscSPs/smart_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostBlockRequest carries a reviewed transaction block.
type PostBlockRequest struct {
	Block string `json:"block" binding:"required"`
}

// ManualEntryRequest is the manual transaction form.
type ManualEntryRequest struct {
	Kind        string          `json:"kind" binding:"required,manualkind"` // sale, purchase or expense (Arabic labels accepted)
	Date        string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Party       string          `json:"party" binding:"required"` // Customer, supplier or payee
	Amount      decimal.Decimal `json:"amount"`
	ExpenseType string          `json:"expenseType"` // Optional declared expense account
	Description string          `json:"description"`
}

// AppendRowRequest appends a raw row to a ledger.
type AppendRowRequest struct {
	Record map[string]string `json:"record" binding:"required"`
}

// PostingResponse describes what a posting appended.
type PostingResponse struct {
	Ledger  domain.LedgerName `json:"ledger"`
	EntryID string            `json:"entryID,omitempty"`
	Record  domain.Record     `json:"record"`
	Saved   bool              `json:"saved"`
}
