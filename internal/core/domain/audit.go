package domain

import "time"

// IssueKind classifies an audit finding.
type IssueKind string

const (
	IssueImbalance         IssueKind = "IMBALANCE"
	IssueMisclassification IssueKind = "MISCLASSIFICATION"
	IssueInvalidAmount     IssueKind = "INVALID_AMOUNT"
)

// AuditStatus is the overall outcome of an audit run.
type AuditStatus string

const (
	AuditClean       AuditStatus = "CLEAN"
	AuditIssuesFound AuditStatus = "ISSUES_FOUND"
)

// AuditIssue is a single finding, naming the offending entry or row.
type AuditIssue struct {
	Kind        IssueKind `json:"kind"`
	Reference   string    `json:"reference"` // Journal entry id or Ledger#row
	Description string    `json:"description"`
	Suggestion  string    `json:"suggestion"`
}

// AuditReport is produced fresh per run and never persisted automatically.
type AuditReport struct {
	ID              string       `json:"id"`
	Status          AuditStatus  `json:"status"`
	StartedAt       time.Time    `json:"startedAt"`
	FinishedAt      time.Time    `json:"finishedAt"`
	Issues          []AuditIssue `json:"issues"`
	Recommendations []string     `json:"recommendations"`
}
