package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var invoiceFile string

var interpretInvoiceCmd = &cobra.Command{
	Use:   "interpret-invoice",
	Short: "Run OCR over an invoice image and print the review block",
	Long: `Extract text from a scanned invoice with the configured OCR command
(OCR_COMMAND, OCR_LANG) and print the interpreted invoice. Nothing is posted.

Example:
  ledgerctl interpret-invoice --file scan.png`,
	RunE: runInterpretInvoice,
}

func init() {
	interpretInvoiceCmd.Flags().StringVar(&invoiceFile, "file", "", "invoice image")
	_ = interpretInvoiceCmd.MarkFlagRequired("file")
}

func runInterpretInvoice(cmd *cobra.Command, args []string) error {
	image, err := os.ReadFile(invoiceFile)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	ctx, a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	resp, err := a.Services.Posting.InterpretDocument(ctx, image, filepath.Base(invoiceFile))
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(resp)
	}
	fmt.Println(resp.Block)
	return nil
}
