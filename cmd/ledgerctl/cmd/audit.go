package cmd

import (
	"fmt"

	"github.com/SscSPs/smart_accounting/internal/core/domain"
	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit the ledgers and print the report",
	Long: `Check every journal entry for balance and every ledger row for valid
amounts and classification, then print the report in the configured locale.
Exits non-zero when issues are found.`,
	RunE: runAudit,
}

func runAudit(cmd *cobra.Command, args []string) error {
	ctx, a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	report := a.Services.Audit.Run(ctx, a.Services.Ledger.Snapshot())
	if asJSON {
		if err := printJSON(report); err != nil {
			return err
		}
	} else {
		fmt.Print(a.Services.Export.AuditReportText(report))
	}
	if report.Status == domain.AuditIssuesFound {
		return fmt.Errorf("audit found %d issue(s)", len(report.Issues))
	}
	return nil
}
