package exporters

import (
	"fmt"
	"io"
	"strings"

	"github.com/mrlokans/quotebook/internal/entities"
)

// MarkdownExporter writes one section per category, in first-seen order,
// with every quote as a blockquote.
type MarkdownExporter struct {
	Title string
}

func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{Title: "Quotes"}
}

// GenerateMarkdown renders quotes grouped by category.
func GenerateMarkdown(title string, quotes []entities.Quote) string {
	order := make([]string, 0)
	grouped := make(map[string][]entities.Quote)
	for _, q := range quotes {
		if _, ok := grouped[q.Category]; !ok {
			order = append(order, q.Category)
		}
		grouped[q.Category] = append(grouped[q.Category], q)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", title)
	for _, category := range order {
		fmt.Fprintf(&b, "\n## %s\n", category)
		for _, q := range grouped[category] {
			b.WriteString("\n")
			for _, line := range strings.Split(q.Text, "\n") {
				fmt.Fprintf(&b, "> %s\n", line)
			}
		}
	}
	return b.String()
}

func (e *MarkdownExporter) Export(w io.Writer, quotes []entities.Quote) (ExportResult, error) {
	if _, err := io.WriteString(w, GenerateMarkdown(e.Title, quotes)); err != nil {
		return ExportResult{}, fmt.Errorf("failed to write export: %w", err)
	}
	return ExportResult{
		QuotesProcessed: len(quotes),
		Categories:      countCategories(quotes),
	}, nil
}

func (e *MarkdownExporter) FileName() string {
	return "quotes.md"
}

func (e *MarkdownExporter) ContentType() string {
	return "text/markdown; charset=utf-8"
}
