// Package rules loads the keyword rules and chart of accounts that drive
// transaction classification.
package rules

import (
	"fmt"
	"os"
	"strings"

	"github.com/SscSPs/smart_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Rules is the resolved classification configuration.
type Rules struct {
	Locale           domain.Locale
	SaleKeywords     []string
	PurchaseKeywords []string
	VATRate          decimal.Decimal
}

// File is the YAML shape of a rules file. Empty fields keep the defaults.
type File struct {
	Locale           string       `yaml:"locale"`
	Currency         string       `yaml:"currency"`
	VATRate          string       `yaml:"vat_rate"`
	SaleKeywords     []string     `yaml:"sale_keywords"`
	PurchaseKeywords []string     `yaml:"purchase_keywords"`
	Chart            domain.Chart `yaml:"chart"`
}

// Default returns the built-in rules for a locale. An empty currency keeps the locale's.
func Default(localeCode string, vatRate decimal.Decimal, currency string) Rules {
	loc := domain.LocaleFor(localeCode)
	if currency != "" {
		loc.Currency = currency
	}
	return Rules{
		Locale:           loc,
		SaleKeywords:     append([]string(nil), domain.DefaultSaleKeywords...),
		PurchaseKeywords: append([]string(nil), domain.DefaultPurchaseKeywords...),
		VATRate:          vatRate,
	}
}

// Load reads a YAML rules file and applies it on top of base.
func Load(path string, base Rules) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read rules file: %w", err)
	}
	return Parse(data, base)
}

// Parse applies YAML rules on top of base.
func Parse(data []byte, base Rules) (Rules, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return base, fmt.Errorf("failed to parse rules YAML: %w", err)
	}

	out := base
	if f.Locale != "" && domain.LocaleFor(f.Locale).Code != base.Locale.Code {
		out.Locale = domain.LocaleFor(f.Locale)
	}
	if f.Currency != "" {
		out.Locale.Currency = f.Currency
	}
	if f.VATRate != "" {
		rate, err := decimal.NewFromString(f.VATRate)
		if err != nil || rate.IsNegative() {
			return base, fmt.Errorf("invalid vat_rate %q", f.VATRate)
		}
		out.VATRate = rate
	}
	if kw := clean(f.SaleKeywords); len(kw) > 0 {
		out.SaleKeywords = kw
	}
	if kw := clean(f.PurchaseKeywords); len(kw) > 0 {
		out.PurchaseKeywords = kw
	}
	out.Locale.Chart = out.Locale.Chart.Merge(f.Chart)
	return out, nil
}

func clean(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
