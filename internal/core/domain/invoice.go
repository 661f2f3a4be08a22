package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is a single invoice line.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

// Invoice is the structured result of interpreting a scanned document.
// TotalAmount is not reconciled against the line items.
type Invoice struct {
	InvoiceNumber string          `json:"invoiceNumber"`
	Supplier      string          `json:"supplier"`
	Date          time.Time       `json:"date"`
	DueDate       time.Time       `json:"dueDate"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	VATAmount     decimal.Decimal `json:"vatAmount"`
	LineItems     []LineItem      `json:"lineItems"`
}

// InvoiceDueDays is the payment term applied to interpreted invoices.
const InvoiceDueDays = 30
