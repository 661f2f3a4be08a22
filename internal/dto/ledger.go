package dto

import "github.com/SscSPs/smart_accounting/internal/core/domain"

// LedgerResponse is one ledger with its summary.
type LedgerResponse struct {
	Ledger  domain.LedgerName    `json:"ledger"`
	Columns []string             `json:"columns"`
	Rows    []domain.Record      `json:"rows"`
	Summary domain.LedgerSummary `json:"summary"`
}

// ListLedgersResponse summarises every ledger.
type ListLedgersResponse struct {
	Ledgers []domain.LedgerSummary `json:"ledgers"`
}

// TaskAcceptedResponse is returned when work is handed to the task runner.
type TaskAcceptedResponse struct {
	TaskID string           `json:"taskID"`
	Kind   domain.TaskKind  `json:"kind"`
	State  domain.TaskState `json:"state"`
}

// ToTaskAcceptedResponse converts a task into its accepted response.
func ToTaskAcceptedResponse(t domain.Task) TaskAcceptedResponse {
	return TaskAcceptedResponse{TaskID: t.ID, Kind: t.Kind, State: t.State}
}

// RatesResponse lists the latest exchange rates.
type RatesResponse struct {
	Rates []domain.ExchangeRate `json:"rates"`
}
