// Package feeds polls the exchange-rate and bank endpoints.
package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/smart_accounting/internal/apperrors"
	"github.com/SscSPs/smart_accounting/internal/core/domain"
	portssvc "github.com/SscSPs/smart_accounting/internal/core/ports/services"
	"github.com/SscSPs/smart_accounting/internal/middleware"
	"github.com/shopspring/decimal"
)

// Endpoint names reported by Probe.
const (
	EndpointRates = "rates"
	EndpointBank  = "bank"
)

// Client is an HTTP feed client. An empty URL disables that endpoint.
type Client struct {
	ratesURL string
	bankURL  string
	http     *http.Client
	now      func() time.Time
}

var _ portssvc.FeedClient = (*Client)(nil)

// NewClient creates a client with the given request timeout.
func NewClient(ratesURL, bankURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		ratesURL: strings.TrimSpace(ratesURL),
		bankURL:  strings.TrimSpace(bankURL),
		http:     &http.Client{Timeout: timeout},
		now:      time.Now,
	}
}

// ratesPayload is the feed shape: {"base": "SAR", "rates": {"USD": 0.2666}}.
type ratesPayload struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// FetchRates downloads the latest rates.
func (c *Client) FetchRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	if c.ratesURL == "" {
		return nil, fmt.Errorf("%w: rates feed not configured", apperrors.ErrExternal)
	}
	logger := middleware.GetLoggerFromCtx(ctx)

	raw, err := c.get(ctx, c.ratesURL)
	if err != nil {
		logger.Error("feeds.rates.error", "url", c.ratesURL, "error", err)
		return nil, err
	}
	var p ratesPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: decode rates: %v", apperrors.ErrExternal, err)
	}
	if p.Base == "" || len(p.Rates) == 0 {
		return nil, fmt.Errorf("%w: rates payload is empty", apperrors.ErrExternal)
	}

	fetched := c.now()
	out := make([]domain.ExchangeRate, 0, len(p.Rates))
	for quote, rate := range p.Rates {
		out = append(out, domain.ExchangeRate{Base: p.Base, Quote: quote, Rate: rate, FetchedAt: fetched})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Quote < out[j].Quote })
	logger.Info("feeds.rates.ok", "base", p.Base, "count", len(out))
	return out, nil
}

// Endpoints lists the configured endpoint names.
func (c *Client) Endpoints() []string {
	var names []string
	if c.ratesURL != "" {
		names = append(names, EndpointRates)
	}
	if c.bankURL != "" {
		names = append(names, EndpointBank)
	}
	return names
}

// Probe issues a GET to the named endpoint; any 2xx answer counts as reachable.
func (c *Client) Probe(ctx context.Context, name string) domain.ConnectionStatus {
	st := domain.ConnectionStatus{Name: name}
	url := map[string]string{EndpointRates: c.ratesURL, EndpointBank: c.bankURL}[name]
	if url == "" {
		st.Detail = "not configured"
		st.CheckedAt = c.now()
		return st
	}
	start := time.Now()
	_, err := c.get(ctx, url)
	st.CheckedAt = c.now()
	if err != nil {
		st.Detail = err.Error()
		return st
	}
	st.OK = true
	st.Detail = fmt.Sprintf("reachable in %s", time.Since(start).Round(time.Millisecond))
	return st
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", apperrors.ErrExternal, err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExternal, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", apperrors.ErrExternal, err)
	}
	if resp.StatusCode/100 != 2 {
		return raw, fmt.Errorf("%w: %s returned %d", apperrors.ErrExternal, url, resp.StatusCode)
	}
	return raw, nil
}
