package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/SscSPs/smart_accounting/internal/apperrors"
	"github.com/SscSPs/smart_accounting/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	blockFile string
	manual    dto.ManualEntryRequest
	amountStr string
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Post a reviewed block or a manual entry and save the ledgers",
	Long: `Post a reviewed transaction block read from --file (or stdin with "-"),
or a manual entry given with --kind and --party.

Example:
  ledgerctl classify "sold goods 1500" > block.txt
  ledgerctl post --file block.txt
  ledgerctl post --kind expense --party "Office rent" --amount 3000 --type Rent`,
	RunE: runPost,
}

func init() {
	postCmd.Flags().StringVar(&blockFile, "file", "", `reviewed block file, "-" for stdin`)
	postCmd.Flags().StringVar(&manual.Kind, "kind", "", "manual entry kind: sale, purchase or expense")
	postCmd.Flags().StringVar(&manual.Party, "party", "", "customer, supplier or payee")
	postCmd.Flags().StringVar(&amountStr, "amount", "", "amount")
	postCmd.Flags().StringVar(&manual.Date, "date", "", "date as YYYY-MM-DD (default today)")
	postCmd.Flags().StringVar(&manual.ExpenseType, "type", "", "declared expense type")
	postCmd.Flags().StringVar(&manual.Description, "description", "", "description (default the party)")
	postCmd.MarkFlagsMutuallyExclusive("file", "kind")
}

func runPost(cmd *cobra.Command, args []string) error {
	if blockFile == "" && manual.Kind == "" {
		return errors.New("either --file or --kind is required")
	}

	var block string
	if blockFile != "" {
		data, err := readBlock(blockFile)
		if err != nil {
			return err
		}
		block = string(data)
	} else {
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return fmt.Errorf("%w: invalid amount %q", apperrors.ErrValidation, amountStr)
		}
		manual.Amount = amount
	}

	ctx, a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	var resp *dto.PostingResponse
	if blockFile != "" {
		resp, err = a.Services.Posting.PostBlock(ctx, block)
	} else {
		resp, err = a.Services.Posting.PostManual(ctx, manual)
	}
	if resp != nil {
		if asJSON {
			if perr := printJSON(resp); perr != nil {
				return perr
			}
		} else {
			fmt.Printf("Posted to %s", resp.Ledger)
			if resp.EntryID != "" {
				fmt.Printf(" as %s", resp.EntryID)
			}
			fmt.Println()
		}
	}
	return err
}

func readBlock(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read block: %w", err)
	}
	return data, nil
}
