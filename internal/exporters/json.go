package exporters

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mrlokans/quotebook/internal/entities"
)

// JSONExporter writes the collection as a pretty-printed JSON array that
// the JSON importer accepts unchanged.
type JSONExporter struct{}

func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

func (e *JSONExporter) Export(w io.Writer, quotes []entities.Quote) (ExportResult, error) {
	if quotes == nil {
		quotes = []entities.Quote{}
	}

	data, err := json.MarshalIndent(quotes, "", "  ")
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to encode quotes: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return ExportResult{}, fmt.Errorf("failed to write export: %w", err)
	}

	return ExportResult{
		QuotesProcessed: len(quotes),
		Categories:      countCategories(quotes),
	}, nil
}

func (e *JSONExporter) FileName() string {
	return "quotes.json"
}

func (e *JSONExporter) ContentType() string {
	return "application/json"
}
