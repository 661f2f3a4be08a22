package cmd

import (
	"fmt"
	"os"

	"github.com/SscSPs/smart_accounting/internal/core/domain"
	"github.com/spf13/cobra"
)

var (
	exportOut    string
	exportLedger string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledgers as an XLSX workbook or one ledger as CSV",
	Long: `Write every ledger as one sheet of an XLSX workbook, or a single
ledger as a UTF-8 CSV report with --ledger.

Example:
  ledgerctl export --out ledgers.xlsx
  ledgerctl export --ledger Sales --out sales.csv`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file")
	exportCmd.Flags().StringVar(&exportLedger, "ledger", "", "export only this ledger as CSV")
	_ = exportCmd.MarkFlagRequired("out")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	var data []byte
	if exportLedger != "" {
		name, ok := domain.ParseLedgerName(exportLedger)
		if !ok {
			return fmt.Errorf("unknown ledger %q", exportLedger)
		}
		data, err = a.Services.Export.LedgerCSV(ctx, name)
	} else {
		data, err = a.Services.Export.WorkbookXLSX(ctx)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(exportOut, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("Exported %d bytes to %s\n", len(data), exportOut)
	return nil
}
