package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/syncer"
)

type countingSyncer struct {
	calls atomic.Int32
	err   error
	added []entities.Quote
	hold  chan struct{}
}

func (c *countingSyncer) Sync(ctx context.Context) (syncer.Result, error) {
	c.calls.Add(1)
	if c.hold != nil {
		select {
		case <-c.hold:
		case <-ctx.Done():
			return syncer.Result{}, ctx.Err()
		}
	}
	if c.err != nil {
		return syncer.Result{}, c.err
	}
	return syncer.Result{Added: c.added}, nil
}

func TestQuoteSyncScheduler_Start(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("runs once immediately", func(t *testing.T) {
		s := &countingSyncer{}
		sched := NewQuoteSyncScheduler(s, time.Hour)

		require.NoError(t, sched.Start(context.Background()))
		assert.Eventually(t, func() bool { return s.calls.Load() == 1 }, time.Second, 10*time.Millisecond)
		assert.True(t, sched.IsRunning())

		next := sched.GetNextRunTime()
		require.NotNil(t, next)
		assert.WithinDuration(t, time.Now().Add(time.Hour), *next, time.Minute)

		sched.Stop()
		assert.False(t, sched.IsRunning())
		assert.Nil(t, sched.GetNextRunTime())
	})

	t.Run("second start is a no-op", func(t *testing.T) {
		s := &countingSyncer{}
		sched := NewQuoteSyncScheduler(s, time.Hour)

		require.NoError(t, sched.Start(context.Background()))
		require.NoError(t, sched.Start(context.Background()))
		sched.Stop()

		assert.Equal(t, int32(1), s.calls.Load())
	})

	t.Run("rejects non-positive interval", func(t *testing.T) {
		sched := NewQuoteSyncScheduler(&countingSyncer{}, 0)

		assert.Error(t, sched.Start(context.Background()))
		assert.False(t, sched.IsRunning())
	})

	t.Run("fires on the interval", func(t *testing.T) {
		s := &countingSyncer{}
		sched := NewQuoteSyncScheduler(s, time.Second)

		require.NoError(t, sched.Start(context.Background()))
		assert.Eventually(t, func() bool { return s.calls.Load() >= 2 }, 3*time.Second, 20*time.Millisecond)
		sched.Stop()
	})

	t.Run("context cancellation stops the scheduler", func(t *testing.T) {
		s := &countingSyncer{}
		sched := NewQuoteSyncScheduler(s, time.Hour)
		ctx, cancel := context.WithCancel(context.Background())

		require.NoError(t, sched.Start(ctx))
		cancel()

		assert.Eventually(t, func() bool { return !sched.IsRunning() }, time.Second, 10*time.Millisecond)
		sched.Stop()
	})

	t.Run("stop cancels a hung cycle", func(t *testing.T) {
		s := &countingSyncer{hold: make(chan struct{})}
		sched := NewQuoteSyncScheduler(s, time.Hour)

		require.NoError(t, sched.Start(context.Background()))
		assert.Eventually(t, sched.IsSyncing, time.Second, 10*time.Millisecond)

		sched.Stop()

		assert.False(t, sched.IsSyncing())
	})
}

func TestQuoteSyncScheduler_RunNow(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("runs synchronously without start", func(t *testing.T) {
		s := &countingSyncer{added: []entities.Quote{{Text: "B", Category: "Server"}}}
		sched := NewQuoteSyncScheduler(s, time.Hour)

		result, err := sched.RunNow(context.Background())

		require.NoError(t, err)
		assert.Len(t, result.Added, 1)
		assert.Equal(t, int32(1), s.calls.Load())

		status := sched.Status()
		assert.False(t, status.Running)
		require.NotNil(t, status.LastRunAt)
		assert.Equal(t, 1, status.LastAdded)
		assert.Empty(t, status.LastError)
		assert.Equal(t, "1h0m0s", status.Interval)
	})

	t.Run("reports failures", func(t *testing.T) {
		s := &countingSyncer{err: errors.New("remote quote source unavailable")}
		sched := NewQuoteSyncScheduler(s, time.Hour)

		_, err := sched.RunNow(context.Background())

		require.Error(t, err)
		assert.Equal(t, "remote quote source unavailable", sched.Status().LastError)
	})

	t.Run("scheduled tick is skipped while a cycle runs", func(t *testing.T) {
		s := &countingSyncer{hold: make(chan struct{})}
		sched := NewQuoteSyncScheduler(s, time.Hour)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = sched.RunNow(context.Background())
		}()
		assert.Eventually(t, sched.IsSyncing, time.Second, 10*time.Millisecond)

		sched.runSync()
		close(s.hold)
		wg.Wait()

		assert.Equal(t, int32(1), s.calls.Load())
		assert.False(t, sched.IsSyncing())
	})
}
