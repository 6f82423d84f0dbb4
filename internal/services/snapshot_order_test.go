package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/persistence"
	"github.com/mrlokans/quotebook/internal/quotes"
	"github.com/mrlokans/quotebook/internal/selection"
	"github.com/mrlokans/quotebook/internal/syncer"
)

// stallingSnapshot holds its first Save until release is closed.
type stallingSnapshot struct {
	*memorySnapshot
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (s *stallingSnapshot) Save(collection []entities.Quote, selected string) error {
	first := false
	s.once.Do(func() { first = true })
	if first {
		close(s.entered)
		<-s.release
	}
	return s.memorySnapshot.Save(collection, selected)
}

type staticSource struct {
	batch []entities.Quote
}

func (s staticSource) FetchQuotes(ctx context.Context, limit int) ([]entities.Quote, error) {
	return s.batch, nil
}

func (s staticSource) PushQuote(ctx context.Context, q entities.Quote) error {
	return nil
}

type concurrentSaveEnv struct {
	store    *quotes.Store
	view     *selection.ViewModel
	snapshot *stallingSnapshot
	service  *QuoteService
	sync     *syncer.Service
}

func setupConcurrentSave(t *testing.T) *concurrentSaveEnv {
	t.Helper()
	env := &concurrentSaveEnv{
		store: quotes.NewStore(),
		snapshot: &stallingSnapshot{
			memorySnapshot: &memorySnapshot{snap: &persistence.Snapshot{
				Quotes: []entities.Quote{{Text: "A", Category: "Programming"}},
			}},
			entered: make(chan struct{}),
			release: make(chan struct{}),
		},
	}
	env.view = selection.NewViewModel(env.store)
	env.service = NewQuoteService(env.store, env.view, env.snapshot, Options{})
	env.service.Bootstrap()
	env.sync = syncer.NewService(env.store, staticSource{batch: []entities.Quote{{Text: "B", Category: "Server"}}}, env.snapshot, env.view, syncer.Options{})
	return env
}

// startStalledSync runs a cycle that merges B and then stalls inside its save.
func (env *concurrentSaveEnv) startStalledSync(t *testing.T) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() {
		_, err := env.sync.Sync(context.Background())
		done <- err
	}()
	select {
	case <-env.snapshot.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("sync never reached its save")
	}
	return done
}

func TestConcurrentSaves(t *testing.T) {
	t.Run("add during a stalled sync save is not lost", func(t *testing.T) {
		env := setupConcurrentSave(t)
		syncDone := env.startStalledSync(t)

		addDone := make(chan error, 1)
		go func() {
			_, err := env.service.Add(entities.Quote{Text: "C", Category: "Life"})
			addDone <- err
		}()
		require.Eventually(t, func() bool { return env.store.Len() == 3 }, 5*time.Second, time.Millisecond)

		close(env.snapshot.release)
		require.NoError(t, <-syncDone)
		require.NoError(t, <-addDone)

		snap, ok := env.snapshot.LoadSnapshot()
		require.True(t, ok)
		assert.Equal(t, env.store.All(), snap.Quotes)
		assert.Len(t, snap.Quotes, 3)
	})

	t.Run("category selected during a stalled sync save is not lost", func(t *testing.T) {
		env := setupConcurrentSave(t)
		syncDone := env.startStalledSync(t)

		selectDone := make(chan error, 1)
		go func() {
			selectDone <- env.service.SelectCategory("Programming")
		}()
		require.Eventually(t, func() bool { return env.view.SelectedCategory() == "Programming" }, 5*time.Second, time.Millisecond)

		close(env.snapshot.release)
		require.NoError(t, <-syncDone)
		require.NoError(t, <-selectDone)

		snap, ok := env.snapshot.LoadSnapshot()
		require.True(t, ok)
		assert.Equal(t, "Programming", snap.SelectedCategory)
		assert.Equal(t, env.store.All(), snap.Quotes)
	})
}
