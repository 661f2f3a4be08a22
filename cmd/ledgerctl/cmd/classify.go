package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [text...]",
	Short: "Interpret transaction text and print the review block",
	Long: `Classify free-form transaction text (Arabic or English) and print the
canonical block for review. Nothing is posted.

Example:
  ledgerctl classify "bought supplies 2000"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx, a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	resp, err := a.Services.Posting.InterpretText(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(resp)
	}
	fmt.Println(resp.Block)
	if resp.AmountDefaulted {
		fmt.Println()
		fmt.Println("warning: no amount found in the text, the default amount was used")
	}
	return nil
}
