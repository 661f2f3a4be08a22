package domain

import "time"

// TaskKind names a background operation.
type TaskKind string

const (
	TaskAudit           TaskKind = "AUDIT"
	TaskRefreshRates    TaskKind = "REFRESH_RATES"
	TaskTestConnections TaskKind = "TEST_CONNECTIONS"
)

// TaskState tracks a background operation's progress.
type TaskState string

const (
	TaskPending TaskState = "PENDING"
	TaskRunning TaskState = "RUNNING"
	TaskDone    TaskState = "DONE"
	TaskFailed  TaskState = "FAILED"
)

// Task is a background operation. Tasks run to completion; there is no cancellation.
type Task struct {
	ID          string     `json:"id"`
	Kind        TaskKind   `json:"kind"`
	State       TaskState  `json:"state"`
	SubmittedAt time.Time  `json:"submittedAt"`
	FinishedAt  *time.Time `json:"finishedAt,omitempty"`
	Error       string     `json:"error,omitempty"`
	Result      any        `json:"result,omitempty"`
}

// Finished reports whether the task reached a terminal state.
func (t Task) Finished() bool {
	return t.State == TaskDone || t.State == TaskFailed
}
