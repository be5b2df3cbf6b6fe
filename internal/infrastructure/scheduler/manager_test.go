package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masterly-ai/masterly/internal/shared/logger"
)

type countingJob struct {
	calls atomic.Int32
	err   error
}

func (j *countingJob) Execute(ctx context.Context) (int, error) {
	j.calls.Add(1)
	return 1, j.err
}

func TestSchedulerManager_RunsReconcileJobAtStartup(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNopLogger())
	require.NoError(t, err)

	job := &countingJob{}
	require.NoError(t, m.RegisterSubscriptionReconcileJob(job, time.Hour))
	require.Len(t, m.Jobs(), 1)
	assert.Equal(t, "subscription-reconciler", m.Jobs()[0].Name())

	m.Start()
	m.Start()
	assert.True(t, m.IsStarted())

	require.Eventually(t, func() bool { return job.calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, m.Stop())
	assert.False(t, m.IsStarted())
	require.NoError(t, m.Stop())
}

func TestSchedulerManager_JobErrorDoesNotStopScheduler(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNopLogger())
	require.NoError(t, err)

	job := &countingJob{err: errors.New("provider down")}
	require.NoError(t, m.RegisterSubscriptionReconcileJob(job, time.Hour))

	m.Start()
	defer func() { _ = m.Stop() }()

	require.Eventually(t, func() bool { return job.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	assert.True(t, m.IsStarted())
}
