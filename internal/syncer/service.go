// Package syncer reconciles the local quote collection with the remote
// quote source.
//
// A cycle fetches one bounded page, appends only remote quotes whose text is
// not yet known locally and persists the collection once if anything was
// appended. Local quotes are never modified or removed. Quotes added locally
// are pushed back one at a time on a best-effort basis.
package syncer

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/notify"
)

const (
	syncAction         = "remote_sync"
	defaultPageSize    = 5
	defaultPushTimeout = 10 * time.Second
)

// Options configures a Service. Every collaborator is optional.
type Options struct {
	PageSize    int
	PushTimeout time.Duration

	Notifier Notifier
	Auditor  Auditor
	Progress ProgressReporter
	Queue    PushQueue
}

// Result describes one completed cycle.
type Result struct {
	Fetched     int              `json:"fetched"`
	Added       []entities.Quote `json:"added"`
	Persisted   bool             `json:"persisted"`
	CompletedAt time.Time        `json:"completed_at"`
}

// Service runs merge cycles and pushes.
type Service struct {
	store     Store
	source    QuoteSource
	saver     SnapshotSaver
	selection CategorySource
	opts      Options

	group  singleflight.Group
	pushes sync.WaitGroup
}

// NewService creates a sync service.
func NewService(store Store, source QuoteSource, saver SnapshotSaver, selection CategorySource, opts Options) *Service {
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.PushTimeout <= 0 {
		opts.PushTimeout = defaultPushTimeout
	}
	return &Service{
		store:     store,
		source:    source,
		saver:     saver,
		selection: selection,
		opts:      opts,
	}
}

// Sync runs one merge cycle. Calls that overlap a cycle in flight share its
// result.
func (s *Service) Sync(ctx context.Context) (Result, error) {
	v, err, shared := s.group.Do(syncAction, func() (any, error) {
		return s.runCycle(ctx)
	})
	if shared {
		log.Printf("Quote sync: cycle shared with a concurrent caller")
	}
	result, _ := v.(Result)
	return result, err
}

func (s *Service) runCycle(ctx context.Context) (Result, error) {
	if s.opts.Progress != nil {
		if err := s.opts.Progress.StartSync(); err != nil {
			log.Printf("Quote sync: failed to record start: %v", err)
		}
	}

	remote, err := s.source.FetchQuotes(ctx, s.opts.PageSize)
	if err != nil {
		log.Printf("Quote sync: fetch failed: %v", err)
		s.complete(0, 0, err)
		s.notify(notify.LevelWarning, "Failed to sync with server: "+err.Error())
		s.auditSync("Sync failed", 0, 0, err)
		return Result{}, fmt.Errorf("fetch remote quotes: %w", err)
	}

	result := Result{Fetched: len(remote)}
	result.Added = s.store.Merge(remote)

	if len(result.Added) == 0 {
		log.Printf("Quote sync: fetched %d quotes, nothing new", len(remote))
		s.complete(len(remote), 0, nil)
		result.CompletedAt = time.Now()
		return result, nil
	}

	err = s.store.Snapshot(func(collection []entities.Quote) error {
		return s.saver.Save(collection, s.selection.SelectedCategory())
	})
	if err != nil {
		log.Printf("Quote sync: failed to persist merged quotes: %v", err)
		s.complete(len(remote), len(result.Added), err)
		s.notify(notify.LevelError, "Synced quotes could not be saved: "+err.Error())
		s.auditSync("Sync applied but not persisted", len(remote), len(result.Added), err)
		return result, fmt.Errorf("persist merged quotes: %w", err)
	}
	result.Persisted = true
	result.CompletedAt = time.Now()

	message := fmt.Sprintf("Quotes synced with server: %d new", len(result.Added))
	log.Printf("Quote sync: %s", message)
	s.complete(len(remote), len(result.Added), nil)
	s.notify(notify.LevelSuccess, message)
	s.auditSync(message, len(remote), len(result.Added), nil)

	return result, nil
}

// Push sends q to the remote source without blocking the caller. The
// outcome never affects the local collection and failures are not retried.
func (s *Service) Push(q entities.Quote) {
	if s.opts.Queue != nil {
		err := s.opts.Queue.EnqueuePush(q)
		if err == nil {
			return
		}
		log.Printf("Quote push: failed to enqueue, pushing inline: %v", err)
	}

	s.pushes.Add(1)
	go func() {
		defer s.pushes.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.opts.PushTimeout)
		defer cancel()
		_ = s.PushNow(ctx, q)
	}()
}

// PushNow performs a single push attempt and reports its outcome.
func (s *Service) PushNow(ctx context.Context, q entities.Quote) error {
	err := s.source.PushQuote(ctx, q)
	if s.opts.Auditor != nil {
		s.opts.Auditor.LogPush(q, err)
	}
	if err != nil {
		log.Printf("Quote push: failed: %v", err)
		s.notify(notify.LevelWarning, "Failed to sync quote with server")
		return fmt.Errorf("push quote: %w", err)
	}

	log.Printf("Quote push: sent quote in category %q", q.Category)
	s.notify(notify.LevelInfo, "Quote synced with server")
	return nil
}

// Wait blocks until detached pushes have finished.
func (s *Service) Wait() {
	s.pushes.Wait()
}

func (s *Service) complete(fetched, added int, err error) {
	if s.opts.Progress == nil {
		return
	}
	if e := s.opts.Progress.CompleteSync(fetched, added, err); e != nil {
		log.Printf("Quote sync: failed to record completion: %v", e)
	}
}

func (s *Service) notify(level notify.Level, message string) {
	if s.opts.Notifier != nil {
		s.opts.Notifier.Notify(level, message)
	}
}

func (s *Service) auditSync(description string, fetched, added int, err error) {
	if s.opts.Auditor != nil {
		s.opts.Auditor.LogSync(syncAction, description, fetched, added, err)
	}
}
