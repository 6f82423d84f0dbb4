package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/quotes"
)

var sample = []entities.Quote{
	{Text: "A", Category: "Programming"},
	{Text: "B", Category: "Life"},
	{Text: "C", Category: "Programming"},
	{Text: "D", Category: "Server"},
}

func TestFiltered(t *testing.T) {
	t.Run("all returns the collection", func(t *testing.T) {
		assert.Equal(t, sample, Filtered(sample, AllCategories))
	})

	t.Run("category keeps matching quotes in order", func(t *testing.T) {
		got := Filtered(sample, "Programming")

		assert.Equal(t, []entities.Quote{sample[0], sample[2]}, got)
	})

	t.Run("unknown category is empty", func(t *testing.T) {
		got := Filtered(sample, "Poetry")

		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("category match is exact", func(t *testing.T) {
		assert.Empty(t, Filtered(sample, "programming"))
	})
}

func TestPickRandom(t *testing.T) {
	t.Run("empty sequence", func(t *testing.T) {
		_, ok := PickRandom(nil)

		assert.False(t, ok)
	})

	t.Run("returns an element of the sequence", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			q, ok := PickRandom(sample)
			require.True(t, ok)
			assert.Contains(t, sample, q)
		}
	})

	t.Run("uses the index from the source", func(t *testing.T) {
		q, ok := pickWith(sample, func(n int) int { return n - 1 })

		require.True(t, ok)
		assert.Equal(t, sample[3], q)
	})
}

func newViewModel(t *testing.T) (*ViewModel, *quotes.Store) {
	t.Helper()
	store := quotes.NewStore()
	store.Load(sample, true)
	return NewViewModel(store), store
}

func TestViewModel_SetSelectedCategory(t *testing.T) {
	t.Run("defaults to all", func(t *testing.T) {
		vm, _ := newViewModel(t)

		assert.Equal(t, AllCategories, vm.SelectedCategory())
		assert.Equal(t, sample, vm.Current())
	})

	t.Run("accepts existing category", func(t *testing.T) {
		vm, _ := newViewModel(t)

		assert.True(t, vm.SetSelectedCategory("Life"))
		assert.Equal(t, "Life", vm.SelectedCategory())
		assert.Equal(t, []entities.Quote{sample[1]}, vm.Current())
	})

	t.Run("ignores unknown category", func(t *testing.T) {
		vm, _ := newViewModel(t)
		require.True(t, vm.SetSelectedCategory("Life"))

		assert.False(t, vm.SetSelectedCategory("Poetry"))
		assert.False(t, vm.SetSelectedCategory(""))
		assert.Equal(t, "Life", vm.SelectedCategory())
	})

	t.Run("sees categories added after construction", func(t *testing.T) {
		vm, store := newViewModel(t)
		_, err := store.Add(entities.Quote{Text: "E", Category: "Poetry"})
		require.NoError(t, err)

		assert.True(t, vm.SetSelectedCategory("Poetry"))
	})
}

func TestViewModel_Restore(t *testing.T) {
	t.Run("restores a known category", func(t *testing.T) {
		vm, _ := newViewModel(t)

		assert.Equal(t, "Server", vm.Restore("Server"))
	})

	t.Run("falls back to all for stale category", func(t *testing.T) {
		vm, _ := newViewModel(t)
		require.True(t, vm.SetSelectedCategory("Life"))

		assert.Equal(t, AllCategories, vm.Restore("Removed"))
	})

	t.Run("falls back to all when nothing was saved", func(t *testing.T) {
		vm, _ := newViewModel(t)

		assert.Equal(t, AllCategories, vm.Restore(""))
	})
}

func TestViewModel_Random(t *testing.T) {
	t.Run("picks from the filtered view", func(t *testing.T) {
		vm, _ := newViewModel(t)
		require.True(t, vm.SetSelectedCategory("Server"))

		q, ok := vm.Random()

		require.True(t, ok)
		assert.Equal(t, sample[3], q)
	})

	t.Run("none for an empty collection", func(t *testing.T) {
		store := quotes.NewStore()
		store.Load([]entities.Quote{}, true)
		vm := NewViewModel(store)

		_, ok := vm.Random()

		assert.False(t, ok)
	})
}
