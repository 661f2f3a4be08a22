package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a single quote fetched from the rates feed.
type ExchangeRate struct {
	Base      string          `json:"base"`
	Quote     string          `json:"quote"`
	Rate      decimal.Decimal `json:"rate"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// ConnectionStatus is the result of probing one external endpoint.
type ConnectionStatus struct {
	Name      string    `json:"name"`
	OK        bool      `json:"ok"`
	Detail    string    `json:"detail,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}
