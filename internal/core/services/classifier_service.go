package services

import (
	"strings"
	"time"

	"github.com/SscSPs/smart_accounting/internal/core/domain"
	portssvc "github.com/SscSPs/smart_accounting/internal/core/ports/services"
	"github.com/SscSPs/smart_accounting/internal/platform/rules"
	"github.com/shopspring/decimal"
)

// RuleClassifier is the deterministic keyword classifier.
// Sale keywords are checked before purchase keywords; anything else is General.
type RuleClassifier struct {
	amounts *AmountExtractor
	rules   rules.Rules
	now     func() time.Time
}

var _ portssvc.Classifier = (*RuleClassifier)(nil)

// NewRuleClassifier creates a classifier driven by r.
func NewRuleClassifier(r rules.Rules) *RuleClassifier {
	return &RuleClassifier{amounts: NewAmountExtractor(), rules: r, now: time.Now}
}

// Classify never fails: unrecognised text becomes a General transaction.
// A zero date means today.
func (c *RuleClassifier) Classify(text string, date time.Time) domain.Transaction {
	if date.IsZero() {
		date = c.now()
	}
	chart := c.rules.Locale.Chart
	amount := c.amounts.Amount(text)

	tx := domain.Transaction{
		Amount:      amount,
		Currency:    c.rules.Locale.Currency,
		Date:        date,
		Description: text,
	}

	switch {
	case containsAny(text, c.rules.SaleKeywords):
		tx.Kind = domain.KindSale
		tx.DebitAccount = chart.AccountsReceivable
		tx.CreditAccount = chart.SalesRevenue
	case containsAny(text, c.rules.PurchaseKeywords):
		tx.Kind = domain.KindPurchase
		tx.DebitAccount = chart.Purchases
		tx.CreditAccount = chart.AccountsPayable
	default:
		tx.Kind = domain.KindGeneral
		tx.DebitAccount = chart.GeneralExpenses
		tx.CreditAccount = chart.Bank
	}

	if tx.Kind.Taxable() {
		tx.VATAmount = domain.ComputeVAT(amount, c.rules.VATRate)
	} else {
		tx.VATAmount = decimal.Zero
	}
	return tx
}

func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
