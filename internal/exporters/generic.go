// Package exporters renders the quote collection for download.
package exporters

import (
	"fmt"
	"io"

	"github.com/mrlokans/quotebook/internal/entities"
)

const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// QuoteExporter writes a collection in one format.
type QuoteExporter interface {
	Export(w io.Writer, quotes []entities.Quote) (ExportResult, error)
	FileName() string
	ContentType() string
}

type ExportResult struct {
	QuotesProcessed int `json:"quotes_processed"`
	Categories      int `json:"categories"`
}

// ForFormat returns the exporter registered for format. An empty format
// selects JSON.
func ForFormat(format string) (QuoteExporter, error) {
	switch format {
	case "", FormatJSON:
		return NewJSONExporter(), nil
	case FormatMarkdown, "md":
		return NewMarkdownExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

func countCategories(quotes []entities.Quote) int {
	seen := make(map[string]struct{})
	for _, q := range quotes {
		seen[q.Category] = struct{}{}
	}
	return len(seen)
}
