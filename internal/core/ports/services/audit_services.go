package services

import (
	"context"

	"github.com/SscSPs/smart_accounting/internal/core/domain"
)

// AuditSvc checks ledger-wide invariants over a snapshot.
type AuditSvc interface {
	Run(ctx context.Context, snapshot domain.Snapshot) domain.AuditReport
}

// ExportSvc renders ledgers and audit reports for download.
type ExportSvc interface {
	WorkbookXLSX(ctx context.Context) ([]byte, error)
	LedgerCSV(ctx context.Context, ledger domain.LedgerName) ([]byte, error)
	AuditReportText(report domain.AuditReport) string
}
