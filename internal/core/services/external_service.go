package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/SscSPs/smart_accounting/internal/apperrors"
	"github.com/SscSPs/smart_accounting/internal/core/domain"
	portssvc "github.com/SscSPs/smart_accounting/internal/core/ports/services"
	"github.com/SscSPs/smart_accounting/internal/middleware"
)

// ExternalFeedService keeps the latest exchange rates and checks the external
// endpoints on demand.
type ExternalFeedService struct {
	BaseService
	client portssvc.FeedClient

	mu    sync.RWMutex
	rates []domain.ExchangeRate
}

var _ portssvc.ExternalFeedSvc = (*ExternalFeedService)(nil)

// NewExternalFeedService creates the service around client.
func NewExternalFeedService(client portssvc.FeedClient) *ExternalFeedService {
	return &ExternalFeedService{client: client}
}

// RefreshRates fetches rates and replaces the cached set. On failure the
// previous rates are kept.
func (s *ExternalFeedService) RefreshRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.client.FetchRates(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to refresh exchange rates")
		return nil, err
	}
	sort.Slice(rates, func(i, j int) bool { return rates[i].Quote < rates[j].Quote })

	s.mu.Lock()
	s.rates = rates
	s.mu.Unlock()

	s.LogInfo(ctx, "Exchange rates refreshed", slog.Int("count", len(rates)))
	return copyRates(rates), nil
}

// Rates returns the cached rates.
func (s *ExternalFeedService) Rates() []domain.ExchangeRate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRates(s.rates)
}

// TestConnections probes every configured endpoint. It fails only when no
// endpoint is configured; unreachable endpoints are reported per status.
func (s *ExternalFeedService) TestConnections(ctx context.Context) ([]domain.ConnectionStatus, error) {
	names := s.client.Endpoints()
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no external endpoints configured", apperrors.ErrExternal)
	}
	out := make([]domain.ConnectionStatus, 0, len(names))
	for _, name := range names {
		st := s.client.Probe(ctx, name)
		if !st.OK {
			s.LogWarn(ctx, "Connection test failed", slog.String("endpoint", name), slog.String("detail", st.Detail))
		}
		out = append(out, st)
	}
	return out, nil
}

func copyRates(in []domain.ExchangeRate) []domain.ExchangeRate {
	if in == nil {
		return []domain.ExchangeRate{}
	}
	out := make([]domain.ExchangeRate, len(in))
	copy(out, in)
	return out
}

// RatesRefreshJob refreshes exchange rates on a schedule.
type RatesRefreshJob struct {
	feed   portssvc.ExternalFeedSvc
	logger *slog.Logger
}

// NewRatesRefreshJob wraps feed as a scheduled job.
func NewRatesRefreshJob(feed portssvc.ExternalFeedSvc, logger *slog.Logger) *RatesRefreshJob {
	return &RatesRefreshJob{feed: feed, logger: logger}
}

// Name returns the job name.
func (j *RatesRefreshJob) Name() string { return "rates_refresh" }

// Run performs one refresh.
func (j *RatesRefreshJob) Run() error {
	ctx := context.Background()
	if j.logger != nil {
		ctx = middleware.WithLogger(ctx, j.logger.With(slog.String("job", j.Name())))
	}
	_, err := j.feed.RefreshRates(ctx)
	return err
}

// noFeeds stands in when no rates or bank URL is configured.
type noFeeds struct{}

func (noFeeds) FetchRates(context.Context) ([]domain.ExchangeRate, error) {
	return nil, fmt.Errorf("%w: rates feed not configured", apperrors.ErrExternal)
}

func (noFeeds) Probe(_ context.Context, name string) domain.ConnectionStatus {
	return domain.ConnectionStatus{Name: name, Detail: "not configured"}
}

func (noFeeds) Endpoints() []string { return nil }
