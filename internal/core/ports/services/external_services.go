package services

import (
	"context"

	"github.com/SscSPs/smart_accounting/internal/core/domain"
)

// FeedClient talks to the external rate and bank endpoints.
type FeedClient interface {
	FetchRates(ctx context.Context) ([]domain.ExchangeRate, error)
	Probe(ctx context.Context, name string) domain.ConnectionStatus
	Endpoints() []string
}

// ExternalFeedSvc refreshes and inspects external data on demand.
type ExternalFeedSvc interface {
	RefreshRates(ctx context.Context) ([]domain.ExchangeRate, error)
	Rates() []domain.ExchangeRate
	TestConnections(ctx context.Context) ([]domain.ConnectionStatus, error)
}

// TaskFunc is the body of a background task.
type TaskFunc func(ctx context.Context) (any, error)

// TaskRunnerSvc runs operations off the request path.
type TaskRunnerSvc interface {
	Submit(kind domain.TaskKind, fn TaskFunc) domain.Task
	Get(id string) (domain.Task, error)
	Shutdown(ctx context.Context)
}
