package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LedgerName identifies one of the fixed ledger tables.
type LedgerName string

const (
	LedgerSales     LedgerName = "Sales"
	LedgerPurchases LedgerName = "Purchases"
	LedgerExpenses  LedgerName = "Expenses"
	LedgerCustomers LedgerName = "Customers"
	LedgerSuppliers LedgerName = "Suppliers"
	LedgerJournal   LedgerName = "Journal"
)

// Column names shared by the ledger schemas.
const (
	ColDate        = "Date"
	ColCustomer    = "Customer"
	ColSupplier    = "Supplier"
	ColType        = "Type"
	ColAmount      = "Amount"
	ColDescription = "Description"
	ColStatus      = "Status"
	ColName        = "Name"
	ColEmail       = "Email"
	ColPhone       = "Phone"
	ColBalance     = "Balance"
	ColEntry       = "Entry"
	ColAccount     = "Account"
	ColDebit       = "Debit"
	ColCredit      = "Credit"
)

var ledgerOrder = []LedgerName{
	LedgerSales,
	LedgerPurchases,
	LedgerExpenses,
	LedgerCustomers,
	LedgerSuppliers,
	LedgerJournal,
}

var ledgerSchemas = map[LedgerName][]string{
	LedgerSales:     {ColDate, ColCustomer, ColAmount, ColDescription, ColStatus},
	LedgerPurchases: {ColDate, ColSupplier, ColAmount, ColDescription, ColStatus},
	LedgerExpenses:  {ColDate, ColType, ColAmount, ColDescription, ColStatus},
	LedgerCustomers: {ColName, ColEmail, ColPhone, ColBalance},
	LedgerSuppliers: {ColName, ColEmail, ColPhone, ColBalance},
	LedgerJournal:   {ColEntry, ColDate, ColAccount, ColDebit, ColCredit, ColDescription},
}

// Ledgers returns every ledger name in persistence order.
func Ledgers() []LedgerName {
	out := make([]LedgerName, len(ledgerOrder))
	copy(out, ledgerOrder)
	return out
}

// ParseLedgerName resolves a ledger name case-insensitively.
func ParseLedgerName(s string) (LedgerName, bool) {
	for _, l := range ledgerOrder {
		if strings.EqualFold(string(l), strings.TrimSpace(s)) {
			return l, true
		}
	}
	return "", false
}

// Valid reports whether l is a known ledger.
func (l LedgerName) Valid() bool {
	_, ok := ledgerSchemas[l]
	return ok
}

// Columns returns the fixed column order of the ledger.
func (l LedgerName) Columns() []string {
	cols := ledgerSchemas[l]
	out := make([]string, len(cols))
	copy(out, cols)
	return out
}

// HasAmount reports whether the ledger carries an Amount column.
func (l LedgerName) HasAmount() bool {
	for _, c := range ledgerSchemas[l] {
		if c == ColAmount {
			return true
		}
	}
	return false
}

// Record is one ledger row keyed by column name.
type Record map[string]string

// Clone returns a copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered collection of rows under a fixed schema.
type Table struct {
	Name    LedgerName `json:"name"`
	Columns []string   `json:"columns"`
	Rows    []Record   `json:"rows"`
}

// NewTable returns an empty table for the ledger.
func NewTable(name LedgerName) Table {
	return Table{Name: name, Columns: name.Columns(), Rows: []Record{}}
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	out := Table{Name: t.Name, Columns: append([]string(nil), t.Columns...), Rows: make([]Record, len(t.Rows))}
	for i, r := range t.Rows {
		out.Rows[i] = r.Clone()
	}
	return out
}

// Snapshot is a point-in-time copy of every ledger.
type Snapshot map[LedgerName]Table

// LedgerSummary is the per-ledger report: row count and total of the Amount column.
type LedgerSummary struct {
	Ledger LedgerName      `json:"ledger"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
}
