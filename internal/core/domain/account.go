package domain

import "strings"

// Chart names the accounts postings are made against.
type Chart struct {
	AccountsReceivable string   `json:"accountsReceivable" yaml:"accounts_receivable"`
	SalesRevenue       string   `json:"salesRevenue" yaml:"sales_revenue"`
	Purchases          string   `json:"purchases" yaml:"purchases"`
	AccountsPayable    string   `json:"accountsPayable" yaml:"accounts_payable"`
	GeneralExpenses    string   `json:"generalExpenses" yaml:"general_expenses"`
	Bank               string   `json:"bank" yaml:"bank"`
	VATOutput          string   `json:"vatOutput" yaml:"vat_output"`
	VATInput           string   `json:"vatInput" yaml:"vat_input"`
	ExpenseTypes       []string `json:"expenseTypes" yaml:"expense_types"` // Declared expense accounts
}

// IsDeclaredExpense reports whether t names a declared expense account.
func (c Chart) IsDeclaredExpense(t string) bool {
	t = strings.TrimSpace(t)
	if t == "" {
		return false
	}
	for _, e := range c.ExpenseTypes {
		if strings.EqualFold(e, t) {
			return true
		}
	}
	return false
}

// Merge returns c with every non-empty field of o applied on top.
func (c Chart) Merge(o Chart) Chart {
	pick := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	pick(&c.AccountsReceivable, o.AccountsReceivable)
	pick(&c.SalesRevenue, o.SalesRevenue)
	pick(&c.Purchases, o.Purchases)
	pick(&c.AccountsPayable, o.AccountsPayable)
	pick(&c.GeneralExpenses, o.GeneralExpenses)
	pick(&c.Bank, o.Bank)
	pick(&c.VATOutput, o.VATOutput)
	pick(&c.VATInput, o.VATInput)
	if len(o.ExpenseTypes) > 0 {
		c.ExpenseTypes = append([]string(nil), o.ExpenseTypes...)
	}
	return c
}
