package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/smart_accounting/internal/apperrors"
	"github.com/SscSPs/smart_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Keys of the canonical transaction block.
const (
	FieldTransactionType = "transaction_type"
	FieldAmount          = "amount"
	FieldCurrency        = "currency"
	FieldDate            = "date"
	FieldDescription     = "description"
	FieldDebitAccount    = "account_debit"
	FieldCreditAccount   = "account_credit"
	FieldVATAmount       = "vat_amount"
	FieldInvoiceNumber   = "invoice_number"
	FieldSupplier        = "supplier"
	FieldDueDate         = "due_date"
	FieldTotalAmount     = "total_amount"
	FieldItems           = "items"
	FieldQuantity        = "quantity"
	FieldUnitPrice       = "unit_price"
	FieldTotal           = "total"
)

const bannerMark = "==="

// TransactionFormatter renders transactions as reviewable `key: value` blocks
// and parses reviewed blocks back into flat field maps.
type TransactionFormatter struct {
	locale domain.Locale
}

// NewTransactionFormatter creates a formatter using the locale's banners and labels.
func NewTransactionFormatter(locale domain.Locale) *TransactionFormatter {
	return &TransactionFormatter{locale: locale}
}

// FormatTransaction renders tx under its kind's banner.
func (f *TransactionFormatter) FormatTransaction(tx domain.Transaction) string {
	var b strings.Builder
	b.WriteString(f.locale.Banner(tx.Kind))
	b.WriteByte('\n')
	writeField(&b, FieldTransactionType, f.locale.TypeLabels[tx.Kind])
	writeField(&b, FieldAmount, formatAmount(tx.Amount))
	writeField(&b, FieldCurrency, tx.Currency)
	writeField(&b, FieldDate, domain.FormatDate(tx.Date))
	writeField(&b, FieldDescription, tx.Description)
	writeField(&b, FieldDebitAccount, tx.DebitAccount)
	writeField(&b, FieldCreditAccount, tx.CreditAccount)
	writeField(&b, FieldVATAmount, formatAmount(tx.VATAmount))
	return b.String()
}

// FormatInvoice renders inv under the general banner. Line items are written
// as an indented block per item, each followed by a blank line.
func (f *TransactionFormatter) FormatInvoice(inv domain.Invoice) string {
	var b strings.Builder
	b.WriteString(f.locale.Banner(domain.KindGeneral))
	b.WriteByte('\n')
	writeField(&b, FieldInvoiceNumber, inv.InvoiceNumber)
	writeField(&b, FieldSupplier, inv.Supplier)
	writeField(&b, FieldDate, domain.FormatDate(inv.Date))
	writeField(&b, FieldDueDate, domain.FormatDate(inv.DueDate))
	writeField(&b, FieldTotalAmount, formatAmount(inv.TotalAmount))
	b.WriteString(FieldItems + ":\n")
	for _, item := range inv.LineItems {
		writeField(&b, "  "+FieldDescription, item.Description)
		writeField(&b, "  "+FieldQuantity, strconv.FormatInt(item.Quantity, 10))
		writeField(&b, "  "+FieldUnitPrice, formatAmount(item.UnitPrice))
		writeField(&b, "  "+FieldTotal, formatAmount(item.Total))
		b.WriteByte('\n')
	}
	writeField(&b, FieldVATAmount, formatAmount(inv.VATAmount))
	return b.String()
}

// lineBreaks flattens a value onto one line. Other whitespace is kept as is.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// writeField keeps each value on one line so Parse can read it back.
func writeField(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "%s: %s\n", key, lineBreaks.Replace(value))
}

// formatAmount pads to two decimals but never drops precision: 1500 renders
// as 1500.00 and 12.345 stays 12.345.
func formatAmount(d decimal.Decimal) string {
	if d.Exponent() >= -2 {
		return d.StringFixed(2)
	}
	return d.String()
}

// Parse reads a reviewed block into a flat map. Banner lines are ignored,
// each remaining line is split on its first colon, and indented lines
// (line items) are skipped, so items are not reconstructed.
// A block without a banner yields ErrNoTransactionBlock.
func (f *TransactionFormatter) Parse(block string) (map[string]string, error) {
	if !hasBanner(block) {
		return nil, fmt.Errorf("%w: text carries no \"%s\" banner", apperrors.ErrNoTransactionBlock, bannerMark)
	}

	fields := make(map[string]string)
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, bannerMark) {
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		fields[key] = strings.TrimSpace(value)
	}
	return fields, nil
}

func hasBanner(block string) bool {
	for _, line := range strings.Split(block, "\n") {
		t := strings.TrimSpace(line)
		if len(t) > 2*len(bannerMark) && strings.HasPrefix(t, bannerMark) && strings.HasSuffix(t, bannerMark) {
			return true
		}
	}
	return false
}
