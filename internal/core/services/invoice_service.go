package services

import (
	"fmt"
	"time"

	"github.com/SscSPs/smart_accounting/internal/core/domain"
	"github.com/SscSPs/smart_accounting/internal/platform/rules"
)

// InvoiceInterpreter turns OCR text into an invoice. Only the total is read
// from the text; supplier and line items are fixed placeholders.
type InvoiceInterpreter struct {
	amounts *AmountExtractor
	rules   rules.Rules
}

// NewInvoiceInterpreter creates an interpreter driven by r.
func NewInvoiceInterpreter(r rules.Rules) *InvoiceInterpreter {
	return &InvoiceInterpreter{amounts: NewAmountExtractor(), rules: r}
}

// Interpret builds the invoice for text as of now.
func (i *InvoiceInterpreter) Interpret(text string, now time.Time) domain.Invoice {
	total := i.amounts.Amount(text)
	items := make([]domain.LineItem, len(i.rules.Locale.InvoiceItems))
	copy(items, i.rules.Locale.InvoiceItems)

	return domain.Invoice{
		InvoiceNumber: fmt.Sprintf("INV-%s-001", now.Format("20060102")),
		Supplier:      i.rules.Locale.InvoiceSupplier,
		Date:          now,
		DueDate:       now.AddDate(0, 0, domain.InvoiceDueDays),
		TotalAmount:   total,
		VATAmount:     domain.ComputeVAT(total, i.rules.VATRate),
		LineItems:     items,
	}
}
