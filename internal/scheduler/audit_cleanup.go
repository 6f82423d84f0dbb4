package scheduler

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

// CleanupEnqueuer queues one audit retention pass.
type CleanupEnqueuer interface {
	EnqueueAuditCleanup() error
}

// AuditCleanupScheduler enqueues audit retention passes on a cron schedule.
type AuditCleanupScheduler struct {
	enqueuer CleanupEnqueuer
	schedule string

	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
}

func NewAuditCleanupScheduler(enqueuer CleanupEnqueuer, schedule string) *AuditCleanupScheduler {
	return &AuditCleanupScheduler{
		enqueuer: enqueuer,
		schedule: schedule,
		cron:     newCron(),
	}
}

// Start validates the schedule and begins enqueuing.
func (s *AuditCleanupScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	_, err := s.cron.AddFunc(s.schedule, s.enqueue)
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Audit cleanup scheduler: started with schedule '%s'", s.schedule)
	return nil
}

// Stop waits for an in-flight enqueue to return.
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
	log.Printf("Audit cleanup scheduler: stopped")
}

func (s *AuditCleanupScheduler) enqueue() {
	if err := s.enqueuer.EnqueueAuditCleanup(); err != nil {
		log.Printf("Audit cleanup scheduler: failed to enqueue: %v", err)
	}
}
