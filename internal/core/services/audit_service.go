package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/smart_accounting/internal/core/domain"
	portssvc "github.com/SscSPs/smart_accounting/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuditEngine checks ledger-wide invariants over a snapshot:
//   - every journal entry balances (debit total equals credit total)
//   - every expense row is classified under a declared expense account
//   - every amount parses as a number
type AuditEngine struct {
	BaseService
	locale domain.Locale
	now    func() time.Time
}

var _ portssvc.AuditSvc = (*AuditEngine)(nil)

// NewAuditEngine creates an engine reporting in locale's wording and checking
// expenses against locale's chart.
func NewAuditEngine(locale domain.Locale) *AuditEngine {
	return &AuditEngine{locale: locale, now: time.Now}
}

// Run audits snapshot and returns a fresh report.
func (a *AuditEngine) Run(ctx context.Context, snapshot domain.Snapshot) domain.AuditReport {
	report := domain.AuditReport{
		ID:        uuid.NewString(),
		StartedAt: a.now(),
		Issues:    []domain.AuditIssue{},
	}

	report.Issues = append(report.Issues, a.checkAmounts(snapshot)...)
	report.Issues = append(report.Issues, a.checkJournal(snapshot[domain.LedgerJournal])...)
	report.Issues = append(report.Issues, a.checkExpenses(snapshot[domain.LedgerExpenses])...)

	report.Recommendations = a.recommend(report.Issues)
	report.Status = domain.AuditClean
	if len(report.Issues) > 0 {
		report.Status = domain.AuditIssuesFound
	}
	report.FinishedAt = a.now()

	a.LogInfo(ctx, "Audit completed",
		slog.String("audit_id", report.ID),
		slog.String("status", string(report.Status)),
		slog.Int("issues", len(report.Issues)))
	return report
}

func (a *AuditEngine) checkAmounts(snapshot domain.Snapshot) []domain.AuditIssue {
	var issues []domain.AuditIssue
	for _, ledger := range domain.Ledgers() {
		if !ledger.HasAmount() {
			continue
		}
		for i, row := range snapshot[ledger].Rows {
			raw := row[domain.ColAmount]
			if _, err := decimal.NewFromString(strings.TrimSpace(raw)); err != nil {
				issues = append(issues, a.invalidAmount(rowRef(ledger, i), raw))
			}
		}
	}
	return issues
}

type entryTotals struct {
	debit, credit decimal.Decimal
}

func (a *AuditEngine) checkJournal(journal domain.Table) []domain.AuditIssue {
	var issues []domain.AuditIssue
	var order []string
	totals := make(map[string]*entryTotals)

	for i, row := range journal.Rows {
		ref := rowRef(domain.LedgerJournal, i)
		entry := strings.TrimSpace(row[domain.ColEntry])
		if entry == "" {
			entry = ref
		}
		t, ok := totals[entry]
		if !ok {
			t = &entryTotals{debit: decimal.Zero, credit: decimal.Zero}
			totals[entry] = t
			order = append(order, entry)
		}
		debit, err := parseOptionalAmount(row[domain.ColDebit])
		if err != nil {
			issues = append(issues, a.invalidAmount(ref, row[domain.ColDebit]))
		}
		credit, err := parseOptionalAmount(row[domain.ColCredit])
		if err != nil {
			issues = append(issues, a.invalidAmount(ref, row[domain.ColCredit]))
		}
		t.debit = t.debit.Add(debit)
		t.credit = t.credit.Add(credit)
	}

	labels := a.locale.Audit
	for _, entry := range order {
		t := totals[entry]
		if t.debit.Equal(t.credit) {
			continue
		}
		issues = append(issues, domain.AuditIssue{
			Kind:        domain.IssueImbalance,
			Reference:   entry,
			Description: fmt.Sprintf(labels.ImbalanceDescription, entry, t.debit.StringFixed(2), t.credit.StringFixed(2)),
			Suggestion:  fmt.Sprintf(labels.ImbalanceSuggestion, entry),
		})
	}
	return issues
}

func (a *AuditEngine) checkExpenses(expenses domain.Table) []domain.AuditIssue {
	var issues []domain.AuditIssue
	generic := a.locale.GenericExpenseTypes()
	chart := a.locale.Chart
	labels := a.locale.Audit

	for i, row := range expenses.Rows {
		typ := strings.TrimSpace(row[domain.ColType])
		if chart.IsDeclaredExpense(typ) && !isGeneric(typ, generic) {
			continue
		}
		ref := rowRef(domain.LedgerExpenses, i)
		issues = append(issues, domain.AuditIssue{
			Kind:        domain.IssueMisclassification,
			Reference:   ref,
			Description: fmt.Sprintf(labels.MisclassDescription, ref, typ),
			Suggestion:  labels.MisclassSuggestion,
		})
	}
	return issues
}

func (a *AuditEngine) invalidAmount(ref, raw string) domain.AuditIssue {
	labels := a.locale.Audit
	return domain.AuditIssue{
		Kind:        domain.IssueInvalidAmount,
		Reference:   ref,
		Description: fmt.Sprintf(labels.InvalidDescription, ref, raw),
		Suggestion:  fmt.Sprintf(labels.InvalidSuggestion, ref),
	}
}

// recommend yields one recommendation per issue kind, in order of first appearance.
func (a *AuditEngine) recommend(issues []domain.AuditIssue) []string {
	recs := []string{}
	seen := make(map[domain.IssueKind]bool)
	for _, is := range issues {
		if seen[is.Kind] {
			continue
		}
		seen[is.Kind] = true
		if r, ok := a.locale.Audit.Recommend[is.Kind]; ok {
			recs = append(recs, r)
		}
	}
	return recs
}

// rowRef names a row as Ledger#n with n counted from 1.
func rowRef(ledger domain.LedgerName, index int) string {
	return fmt.Sprintf("%s#%d", ledger, index+1)
}

func parseOptionalAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	return v, nil
}

func isGeneric(typ string, generic []string) bool {
	for _, g := range generic {
		if g != "" && strings.EqualFold(g, typ) {
			return true
		}
	}
	return false
}
