package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/quotebook/internal/syncer"
)

const cycleTimeout = 2 * time.Minute

// Syncer runs one merge cycle.
type Syncer interface {
	Sync(ctx context.Context) (syncer.Result, error)
}

// Status is a point-in-time view of the scheduler.
type Status struct {
	Running   bool       `json:"running"`
	Syncing   bool       `json:"syncing"`
	Interval  string     `json:"interval"`
	NextRunAt *time.Time `json:"next_run_at,omitempty"`
	LastRunAt *time.Time `json:"last_run_at,omitempty"`
	LastAdded int        `json:"last_added"`
	LastError string     `json:"last_error,omitempty"`
}

// QuoteSyncScheduler runs merge cycles once at start and then on a fixed interval.
type QuoteSyncScheduler struct {
	syncer   Syncer
	interval time.Duration

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	syncing    int
	cancelFunc context.CancelFunc
	runCtx     context.Context
	initial    sync.WaitGroup

	lastRunAt *time.Time
	lastAdded int
	lastErr   error
}

// NewQuoteSyncScheduler creates a new scheduler instance
func NewQuoteSyncScheduler(s Syncer, interval time.Duration) *QuoteSyncScheduler {
	return &QuoteSyncScheduler{
		syncer:   s,
		interval: interval,
		cron:     newCron(),
	}
}

func newCron() *cron.Cron {
	return cron.New(cron.WithParser(cron.NewParser(
		cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	)))
}

// Start runs one cycle in the background and schedules the rest.
func (s *QuoteSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.interval <= 0 {
		return fmt.Errorf("invalid sync interval %v", s.interval)
	}

	schedule := "@every " + s.interval.String()
	entryID, err := s.cron.AddFunc(schedule, func() {
		s.runSync()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule sync job: %w", err)
	}
	s.entryID = entryID

	s.runCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Quote sync scheduler: started with schedule '%s'", schedule)

	s.initial.Add(1)
	go func() {
		defer s.initial.Done()
		s.runSync()
	}()

	runCtx := s.runCtx
	go func() {
		<-runCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop cancels the running cycle, if any, and waits for scheduled jobs to return.
func (s *QuoteSyncScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	cancel := s.cancelFunc
	s.cancelFunc = nil
	s.cron.Remove(s.entryID)
	s.mu.Unlock()

	cancel()

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.initial.Wait()

	log.Printf("Quote sync scheduler: stopped")
}

// RunNow runs one cycle synchronously. It joins a cycle already in flight.
func (s *QuoteSyncScheduler) RunNow(ctx context.Context) (syncer.Result, error) {
	return s.sync(ctx)
}

// IsRunning returns whether the scheduler is active
func (s *QuoteSyncScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// IsSyncing returns whether a cycle is currently in progress
func (s *QuoteSyncScheduler) IsSyncing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.syncing > 0
}

// GetNextRunTime returns when the next cycle will occur
func (s *QuoteSyncScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			if t.IsZero() {
				return nil
			}
			return &t
		}
	}
	return nil
}

// Status reports the scheduler state and the outcome of the last cycle.
func (s *QuoteSyncScheduler) Status() Status {
	next := s.GetNextRunTime()

	s.mu.RLock()
	defer s.mu.RUnlock()

	status := Status{
		Running:   s.isRunning,
		Syncing:   s.syncing > 0,
		Interval:  s.interval.String(),
		NextRunAt: next,
		LastRunAt: s.lastRunAt,
		LastAdded: s.lastAdded,
	}
	if s.lastErr != nil {
		status.LastError = s.lastErr.Error()
	}
	return status
}

// runSync is the scheduled entry point. Ticks that fire while a cycle is
// running are skipped.
func (s *QuoteSyncScheduler) runSync() {
	s.mu.RLock()
	busy := s.syncing > 0
	parent := s.runCtx
	s.mu.RUnlock()

	if busy {
		log.Printf("Quote sync: skipped (already syncing)")
		return
	}
	if parent == nil {
		parent = context.Background()
	}

	ctx, cancel := context.WithTimeout(parent, cycleTimeout)
	defer cancel()

	if _, err := s.sync(ctx); err != nil {
		log.Printf("Quote sync: cycle failed: %v", err)
	}
}

func (s *QuoteSyncScheduler) sync(ctx context.Context) (syncer.Result, error) {
	s.mu.Lock()
	s.syncing++
	s.mu.Unlock()

	result, err := s.syncer.Sync(ctx)

	now := time.Now()
	s.mu.Lock()
	s.syncing--
	s.lastRunAt = &now
	s.lastAdded = len(result.Added)
	s.lastErr = err
	s.mu.Unlock()

	return result, err
}
