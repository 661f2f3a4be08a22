// Package cmd provides the ledgerctl commands.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/smart_accounting/internal/app"
	"github.com/SscSPs/smart_accounting/internal/middleware"
	"github.com/SscSPs/smart_accounting/internal/platform/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	envFile string
	debug   bool
	asJSON  bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Interpret and post accounting transactions from the command line",
	Long: `ledgerctl runs the interpretation and posting pipeline offline against
the same ledger store the server uses (LEDGER_STORE, LEDGER_PATH).

Example:
  ledgerctl classify "sold goods to customer 1500"
  ledgerctl post --file reviewed.txt
  ledgerctl post --kind sale --party "Customer A" --amount 2500
  ledgerctl audit
  ledgerctl export --out ledgers.xlsx`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel := slog.LevelWarn
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "env file to load before the environment (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print results as JSON")

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(interpretInvoiceCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(exportCmd)
}

// openApp loads configuration and wires the application. The returned
// context carries the CLI logger.
func openApp(cmd *cobra.Command) (context.Context, *app.App, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	// The CLI never runs the rates auto-update.
	cfg.AutoUpdate = false

	logger := slog.Default()
	ctx := middleware.WithLogger(cmd.Context(), logger)
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return ctx, a, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
