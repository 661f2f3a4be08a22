package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/smart_accounting/internal/platform/scheduler"
	"github.com/stretchr/testify/assert"
)

type countingJob struct {
	runs atomic.Int32
	err  error
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run() error {
	j.runs.Add(1)
	return j.err
}

func TestScheduler_RunsRegisteredJob(t *testing.T) {
	s := scheduler.New(nil)
	job := &countingJob{}

	assert.NoError(t, s.AddJob("@every 1s", job))
	s.Start()
	defer s.Stop(context.Background())

	assert.Eventually(t, func() bool { return job.runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	s := scheduler.New(nil)
	assert.Error(t, s.AddJob("every now and then", &countingJob{}))
}

func TestScheduler_RunNow(t *testing.T) {
	s := scheduler.New(nil)
	job := &countingJob{err: errors.New("feed down")}

	assert.EqualError(t, s.RunNow(job), "feed down")
	assert.Equal(t, int32(1), job.runs.Load())
}
