package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Supported ledger persistence media.
const (
	StoreXLSX     = "xlsx"
	StoreCSV      = "csv"
	StorePostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// Ledger persistence
	LedgerStore    string
	LedgerPath     string // Workbook file for xlsx, directory for csv
	DatabaseURL    string
	MigrationsPath string

	// Interpretation
	Locale          string
	DefaultCurrency string
	VATRate         decimal.Decimal
	RulesFile       string

	// External engines
	OCRCommand    string
	OCRLang       string
	STTURL        string
	ListenTimeout time.Duration

	// External feeds
	RatesURL           string
	BankURL            string
	AutoUpdate         bool
	AutoUpdateSchedule string
	FeedTimeout        time.Duration

	// HTTP surface
	JWTSecret   string
	RateLimit   string
	CORSOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LEDGER_STORE", StoreXLSX)
	viper.SetDefault("LEDGER_PATH", "accounting_data.xlsx")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("LOCALE", "ar")
	viper.SetDefault("DEFAULT_CURRENCY", "")
	viper.SetDefault("VAT_RATE", "0.15")
	viper.SetDefault("RULES_FILE", "")
	viper.SetDefault("OCR_COMMAND", "tesseract")
	viper.SetDefault("OCR_LANG", "ara+eng")
	viper.SetDefault("STT_URL", "")
	viper.SetDefault("LISTEN_TIMEOUT", "10s")
	viper.SetDefault("RATES_URL", "")
	viper.SetDefault("BANK_URL", "")
	viper.SetDefault("AUTO_UPDATE", true)
	viper.SetDefault("AUTO_UPDATE_SCHEDULE", "@every 1h")
	viper.SetDefault("FEED_TIMEOUT", "15s")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("RATE_LIMIT", "120-M")
	viper.SetDefault("CORS_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.LedgerStore = strings.ToLower(viper.GetString("LEDGER_STORE"))
	switch cfg.LedgerStore {
	case StoreXLSX, StoreCSV, StorePostgres:
	default:
		log.Printf("Warning: Invalid value for LEDGER_STORE ('%s'). Defaulting to %s.\n", cfg.LedgerStore, StoreXLSX)
		cfg.LedgerStore = StoreXLSX
	}
	cfg.LedgerPath = viper.GetString("LEDGER_PATH")
	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	if cfg.LedgerStore == StorePostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: LEDGER_STORE is postgres but PGSQL_URL is not set.")
	}

	cfg.Locale = viper.GetString("LOCALE")
	cfg.DefaultCurrency = viper.GetString("DEFAULT_CURRENCY")
	cfg.RulesFile = viper.GetString("RULES_FILE")

	vatStr := viper.GetString("VAT_RATE")
	vat, err := decimal.NewFromString(vatStr)
	if err != nil || vat.IsNegative() {
		log.Printf("Warning: Invalid value for VAT_RATE ('%s'). Defaulting to 0.15.\n", vatStr)
		vat = decimal.RequireFromString("0.15")
	}
	cfg.VATRate = vat

	cfg.OCRCommand = viper.GetString("OCR_COMMAND")
	cfg.OCRLang = viper.GetString("OCR_LANG")
	cfg.STTURL = viper.GetString("STT_URL")
	cfg.ListenTimeout = durationOr("LISTEN_TIMEOUT", 10*time.Second)

	cfg.RatesURL = viper.GetString("RATES_URL")
	cfg.BankURL = viper.GetString("BANK_URL")
	cfg.AutoUpdate = viper.GetBool("AUTO_UPDATE")
	cfg.AutoUpdateSchedule = viper.GetString("AUTO_UPDATE_SCHEDULE")
	cfg.FeedTimeout = durationOr("FEED_TIMEOUT", 15*time.Second)

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" && cfg.IsProduction {
		log.Println("Warning: JWT_SECRET not set in production. The API is unauthenticated.")
	}
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSOrigins = splitList(viper.GetString("CORS_ORIGINS"))

	return cfg, nil
}

func durationOr(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
