package services

import (
	"regexp"
	"strings"

	"github.com/SscSPs/smart_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

var amountPattern = regexp.MustCompile(`\d+\.\d+|\d+`)

// digitFolder maps Arabic-Indic and Eastern Arabic-Indic digits, and the Arabic
// decimal separator, onto ASCII so the amount pattern sees them.
var digitFolder = strings.NewReplacer(
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
	"٫", ".",
)

// AmountExtractor pulls the first numeric literal out of free-form text.
type AmountExtractor struct {
	fallback decimal.Decimal
}

// NewAmountExtractor returns an extractor that falls back to domain.DefaultAmount.
func NewAmountExtractor() *AmountExtractor {
	return &AmountExtractor{fallback: domain.DefaultAmount}
}

// ExtractAmount returns the first decimal or integer literal scanning left to
// right. When the text has no numeral it returns the fallback and false.
// Thousands separators are not understood: "1,500" yields 1.
func (e *AmountExtractor) ExtractAmount(text string) (decimal.Decimal, bool) {
	match := amountPattern.FindString(digitFolder.Replace(text))
	if match == "" {
		return e.fallback, false
	}
	amount, err := decimal.NewFromString(match)
	if err != nil {
		return e.fallback, false
	}
	return amount, true
}

// Amount is ExtractAmount without the found flag.
func (e *AmountExtractor) Amount(text string) decimal.Decimal {
	amount, _ := e.ExtractAmount(text)
	return amount
}
