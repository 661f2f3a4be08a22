package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/smart_accounting/internal/apperrors"
	"github.com/SscSPs/smart_accounting/internal/core/domain"
	portssvc "github.com/SscSPs/smart_accounting/internal/core/ports/services"
	"github.com/SscSPs/smart_accounting/internal/middleware"
	"github.com/google/uuid"
)

type taskJob struct {
	id string
	fn portssvc.TaskFunc
}

// TaskRunner executes background tasks on a fixed pool of workers. Tasks run
// to completion under a background context; there is no cancellation.
type TaskRunner struct {
	logger  *slog.Logger
	workers int

	ch     chan taskJob
	sendMu sync.RWMutex // held for reading while sending, for writing while closing ch
	wg     sync.WaitGroup
	once   sync.Once

	mu     sync.Mutex
	closed bool
	tasks  map[string]*domain.Task
}

var _ portssvc.TaskRunnerSvc = (*TaskRunner)(nil)

// TaskRunnerOption configures a TaskRunner.
type TaskRunnerOption func(*TaskRunner)

// WithTaskWorkers sets the number of workers.
func WithTaskWorkers(n int) TaskRunnerOption {
	return func(r *TaskRunner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithTaskQueueSize sets the queue capacity.
func WithTaskQueueSize(n int) TaskRunnerOption {
	return func(r *TaskRunner) {
		if n > 0 {
			r.ch = make(chan taskJob, n)
		}
	}
}

// NewTaskRunner starts a runner.
func NewTaskRunner(logger *slog.Logger, opts ...TaskRunnerOption) *TaskRunner {
	if logger == nil {
		logger = slog.Default()
	}
	r := &TaskRunner{
		logger:  logger,
		workers: 2,
		ch:      make(chan taskJob, 64),
		tasks:   make(map[string]*domain.Task),
	}
	for _, o := range opts {
		o(r)
	}
	r.start()
	return r
}

func (r *TaskRunner) start() {
	r.once.Do(func() {
		for i := 0; i < r.workers; i++ {
			r.wg.Add(1)
			go func(workerID int) {
				defer r.wg.Done()
				for job := range r.ch {
					r.run(workerID, job)
				}
			}(i + 1)
		}
	})
}

func (r *TaskRunner) run(workerID int, job taskJob) {
	r.update(job.id, func(t *domain.Task) { t.State = domain.TaskRunning })

	logger := r.logger.With(slog.String("task_id", job.id), slog.Int("worker_id", workerID))
	ctx := middleware.WithLogger(context.Background(), logger)

	result, err := r.safeCall(ctx, job.fn)
	now := time.Now()
	r.update(job.id, func(t *domain.Task) {
		t.FinishedAt = &now
		if err != nil {
			t.State = domain.TaskFailed
			t.Error = err.Error()
			return
		}
		t.State = domain.TaskDone
		t.Result = result
	})

	if err != nil {
		logger.Error("task failed", slog.String("error", err.Error()))
	} else {
		logger.Info("task completed")
	}
}

func (r *TaskRunner) safeCall(ctx context.Context, fn portssvc.TaskFunc) (result any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("task panicked: %v", p)
		}
	}()
	return fn(ctx)
}

func (r *TaskRunner) update(id string, fn func(*domain.Task)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tasks[id]; ok {
		fn(t)
	}
}

// Submit queues fn and returns the pending task. After Shutdown the task is
// returned already failed.
func (r *TaskRunner) Submit(kind domain.TaskKind, fn portssvc.TaskFunc) domain.Task {
	task := &domain.Task{
		ID:          uuid.NewString(),
		Kind:        kind,
		State:       domain.TaskPending,
		SubmittedAt: time.Now(),
	}

	r.sendMu.RLock()
	defer r.sendMu.RUnlock()

	r.mu.Lock()
	r.tasks[task.ID] = task
	if r.closed {
		now := time.Now()
		task.State = domain.TaskFailed
		task.Error = "task runner is shutting down"
		task.FinishedAt = &now
		snapshot := *task
		r.mu.Unlock()
		r.logger.Warn("cannot submit: runner is shutting down", slog.String("task_id", task.ID))
		return snapshot
	}
	snapshot := *task
	r.mu.Unlock()

	// Blocks when the queue is full, applying backpressure to the caller.
	r.ch <- taskJob{id: task.ID, fn: fn}
	r.logger.Info("task queued", slog.String("task_id", task.ID), slog.String("kind", string(kind)))
	return snapshot
}

// Get returns a copy of the task.
func (r *TaskRunner) Get(id string) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return domain.Task{}, fmt.Errorf("%w: task %s", apperrors.ErrNotFound, id)
	}
	return *t, nil
}

// Shutdown stops accepting tasks and waits for queued ones to finish or ctx to end.
func (r *TaskRunner) Shutdown(ctx context.Context) {
	r.sendMu.Lock()
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		r.sendMu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()
	close(r.ch)
	r.sendMu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); r.wg.Wait() }()

	select {
	case <-ctx.Done():
		r.logger.Warn("shutdown interrupted by context")
	case <-done:
		r.logger.Info("task queue drained, shutdown complete")
	}
}
