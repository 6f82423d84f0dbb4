package quotes

import "github.com/mrlokans/quotebook/internal/entities"

var defaultQuotes = []entities.Quote{
	{Text: "The only limit to our realization of tomorrow is our doubts of today.", Category: "Motivation"},
	{Text: "Life is really simple, but we insist on making it complicated.", Category: "Life"},
	{Text: "Simplicity is the ultimate sophistication.", Category: "Design"},
	{Text: "Code is like humor. When you have to explain it, it’s bad.", Category: "Programming"},
}

// DefaultQuotes returns a fresh copy of the built-in seed collection.
func DefaultQuotes() []entities.Quote {
	out := make([]entities.Quote, len(defaultQuotes))
	copy(out, defaultQuotes)
	return out
}
