package entities

import "strings"

// Quote is a single quotation and the category it is filed under.
// The text doubles as the natural key when merging remote quotes.
type Quote struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// IsComplete reports whether both fields carry non-whitespace content.
func (q Quote) IsComplete() bool {
	return strings.TrimSpace(q.Text) != "" && strings.TrimSpace(q.Category) != ""
}

// Trimmed returns the quote with surrounding whitespace removed from both fields.
func (q Quote) Trimmed() Quote {
	return Quote{
		Text:     strings.TrimSpace(q.Text),
		Category: strings.TrimSpace(q.Category),
	}
}
