package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// EntryType indicates whether a journal line is a Debit or a Credit.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// JournalLine is one side of a double-entry posting. Lines sharing an Entry form one journal entry.
type JournalLine struct {
	Entry       string          `json:"entry"` // e.g. JV-2024-0001
	Date        string          `json:"date"`
	Account     string          `json:"account"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// Record renders the line as a Journal ledger row.
func (l JournalLine) Record() Record {
	return Record{
		ColEntry:       l.Entry,
		ColDate:        l.Date,
		ColAccount:     l.Account,
		ColDebit:       l.Debit.StringFixed(2),
		ColCredit:      l.Credit.StringFixed(2),
		ColDescription: l.Description,
	}
}

// DebitLine builds a debit line.
func DebitLine(account string, amount decimal.Decimal) JournalLine {
	return JournalLine{Account: account, Debit: amount, Credit: decimal.Zero}
}

// CreditLine builds a credit line.
func CreditLine(account string, amount decimal.Decimal) JournalLine {
	return JournalLine{Account: account, Debit: decimal.Zero, Credit: amount}
}

// EntryID formats a journal entry id for the given year and sequence.
func EntryID(year, seq int) string {
	return fmt.Sprintf("JV-%d-%04d", year, seq)
}
