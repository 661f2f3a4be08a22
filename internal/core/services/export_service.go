package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/smart_accounting/internal/core/domain"
	portssvc "github.com/SscSPs/smart_accounting/internal/core/ports/services"
	"github.com/SscSPs/smart_accounting/pkg/spreadsheet"
)

// ExportService renders ledgers and audit reports as downloadable documents.
type ExportService struct {
	BaseService
	ledger portssvc.LedgerReaderSvc
	locale domain.Locale
}

var _ portssvc.ExportSvc = (*ExportService)(nil)

// NewExportService creates an export service over ledger.
func NewExportService(ledger portssvc.LedgerReaderSvc, locale domain.Locale) *ExportService {
	return &ExportService{ledger: ledger, locale: locale}
}

// WorkbookXLSX returns every ledger as one sheet of an XLSX workbook.
func (s *ExportService) WorkbookXLSX(ctx context.Context) ([]byte, error) {
	snap := s.ledger.Snapshot()
	tables := make([]domain.Table, 0, len(snap))
	rows := 0
	for _, l := range domain.Ledgers() {
		tables = append(tables, snap[l])
		rows += len(snap[l].Rows)
	}

	f, err := spreadsheet.BuildWorkbook(tables)
	if err != nil {
		return nil, fmt.Errorf("build workbook: %w", err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	s.LogInfo(ctx, "export.xlsx.ok", slog.Int("sheets", len(tables)), slog.Int("rows", rows), slog.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

// LedgerCSV returns one ledger as a UTF-8 CSV report.
func (s *ExportService) LedgerCSV(ctx context.Context, ledger domain.LedgerName) ([]byte, error) {
	rows, err := s.ledger.Rows(ledger)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := spreadsheet.WriteCSV(&buf, domain.Table{Name: ledger, Columns: ledger.Columns(), Rows: rows}); err != nil {
		return nil, fmt.Errorf("csv write: %w", err)
	}
	s.LogInfo(ctx, "export.csv.ok", slog.String("ledger", string(ledger)), slog.Int("rows", len(rows)))
	return buf.Bytes(), nil
}

// AuditReportText renders report as plain text: title, status, issues found
// and recommendations.
func (s *ExportService) AuditReportText(report domain.AuditReport) string {
	labels := s.locale.Audit
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n%s\n\n", labels.Title, strings.Repeat("=", 50))
	status := labels.StatusText[report.Status]
	if status == "" {
		status = string(report.Status)
	}
	fmt.Fprintf(&b, "%s: %s\n\n", labels.StatusLabel, status)

	if len(report.Issues) > 0 {
		fmt.Fprintf(&b, "%s:\n", labels.IssuesLabel)
		for _, is := range report.Issues {
			name := labels.IssueNames[is.Kind]
			if name == "" {
				name = string(is.Kind)
			}
			fmt.Fprintf(&b, "- %s: %s\n", labels.IssueTypeLabel, name)
			fmt.Fprintf(&b, "  %s: %s\n", labels.DescriptionLbl, is.Description)
			fmt.Fprintf(&b, "  %s: %s\n\n", labels.SuggestionLabel, is.Suggestion)
		}
	}

	if len(report.Recommendations) > 0 {
		fmt.Fprintf(&b, "%s:\n", labels.Recommendations)
		for _, r := range report.Recommendations {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}
	return b.String()
}
