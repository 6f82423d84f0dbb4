// Package selection derives the quotes visible under the active category
// filter and picks random quotes from them.
package selection

import (
	"math/rand/v2"
	"sync"

	"github.com/mrlokans/quotebook/internal/entities"
)

// AllCategories is the filter value that matches every quote.
const AllCategories = "all"

// Filtered returns the collection when selected is AllCategories, otherwise
// the quotes filed under selected in their original order.
func Filtered(collection []entities.Quote, selected string) []entities.Quote {
	if selected == AllCategories {
		return collection
	}

	out := make([]entities.Quote, 0)
	for _, q := range collection {
		if q.Category == selected {
			out = append(out, q)
		}
	}
	return out
}

// PickRandom returns a uniformly chosen quote, or false when seq is empty.
func PickRandom(seq []entities.Quote) (entities.Quote, bool) {
	return pickWith(seq, rand.IntN)
}

func pickWith(seq []entities.Quote, intN func(int) int) (entities.Quote, bool) {
	if len(seq) == 0 {
		return entities.Quote{}, false
	}
	return seq[intN(len(seq))], true
}

// Source is the read side of the quote store.
type Source interface {
	All() []entities.Quote
	HasCategory(category string) bool
}

// ViewModel owns the selected category.
type ViewModel struct {
	source Source
	intN   func(int) int

	mu       sync.RWMutex
	selected string
}

// NewViewModel creates a view-model with every category selected.
func NewViewModel(source Source) *ViewModel {
	return &ViewModel{
		source:   source,
		intN:     rand.IntN,
		selected: AllCategories,
	}
}

// SetSelectedCategory commits value when it is AllCategories or an existing
// category and reports whether it did.
func (vm *ViewModel) SetSelectedCategory(value string) bool {
	if !vm.valid(value) {
		return false
	}

	vm.mu.Lock()
	vm.selected = value
	vm.mu.Unlock()
	return true
}

// Restore applies a persisted selection, falling back to AllCategories when
// it is empty or no longer names a category. It returns the committed value.
func (vm *ViewModel) Restore(value string) string {
	if !vm.SetSelectedCategory(value) {
		vm.mu.Lock()
		vm.selected = AllCategories
		vm.mu.Unlock()
	}
	return vm.SelectedCategory()
}

// SelectedCategory returns the committed filter value.
func (vm *ViewModel) SelectedCategory() string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.selected
}

// Current returns the quotes visible under the selected category.
func (vm *ViewModel) Current() []entities.Quote {
	return Filtered(vm.source.All(), vm.SelectedCategory())
}

// Random picks a quote from the current view.
func (vm *ViewModel) Random() (entities.Quote, bool) {
	return pickWith(vm.Current(), vm.intN)
}

func (vm *ViewModel) valid(value string) bool {
	if value == AllCategories {
		return true
	}
	if value == "" {
		return false
	}
	return vm.source.HasCategory(value)
}
