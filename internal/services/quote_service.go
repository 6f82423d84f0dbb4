// Package services exposes the quote operations used by the HTTP API and
// the CLI. Every mutation goes through the single quotes.Store and is
// persisted before the call returns.
package services

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/exporters"
	"github.com/mrlokans/quotebook/internal/importers"
	"github.com/mrlokans/quotebook/internal/notify"
	"github.com/mrlokans/quotebook/internal/quotes"
	"github.com/mrlokans/quotebook/internal/selection"
)

// Options carries the optional collaborators of QuoteService.
type Options struct {
	Pusher   Pusher
	Notifier Notifier
	Audit    AuditLogger
	Archiver PayloadArchiver
}

// QuoteService coordinates the store, the selection view-model and persistence.
type QuoteService struct {
	store    *quotes.Store
	view     *selection.ViewModel
	snapshot SnapshotStore
	opts     Options
}

// ImportResult describes an accepted import.
type ImportResult struct {
	Imported int    `json:"imported"`
	Total    int    `json:"total"`
	Archive  string `json:"archive,omitempty"`
}

func NewQuoteService(store *quotes.Store, view *selection.ViewModel, snapshot SnapshotStore, opts Options) *QuoteService {
	return &QuoteService{
		store:    store,
		view:     view,
		snapshot: snapshot,
		opts:     opts,
	}
}

// Bootstrap loads the persisted snapshot, or the seed quotes when there is
// none, and restores the selected category.
func (s *QuoteService) Bootstrap() {
	snap, ok := s.snapshot.LoadSnapshot()
	collection := s.store.Load(snap.Quotes, ok)
	selected := s.view.Restore(snap.SelectedCategory)

	if !ok {
		log.Printf("Quotes: no saved collection, starting with %d seed quotes", len(collection))
		return
	}
	log.Printf("Quotes: restored %d quotes, selected category %q", len(collection), selected)
}

// List returns the quotes visible under category, or under the selected
// category when category is empty.
func (s *QuoteService) List(category string) []entities.Quote {
	if category == "" {
		return s.view.Current()
	}
	return selection.Filtered(s.store.All(), category)
}

// All returns the whole collection.
func (s *QuoteService) All() []entities.Quote {
	return s.store.All()
}

// Add validates and appends q, starts a best-effort push and persists the
// collection. When only the save fails the quote stays added and the
// returned error wraps ErrNotPersisted.
func (s *QuoteService) Add(q entities.Quote) (entities.Quote, error) {
	added, err := s.store.Add(q)
	if err != nil {
		s.notify(notify.LevelError, "Please enter both a quote and a category.")
		return entities.Quote{}, err
	}

	if s.opts.Pusher != nil {
		s.opts.Pusher.Push(added)
	}
	if s.opts.Audit != nil {
		s.opts.Audit.LogCreate(added)
	}

	if err := s.persist(); err != nil {
		return added, err
	}

	s.notify(notify.LevelSuccess, "Quote added successfully!")
	return added, nil
}

// Import archives payload, parses it and appends every quote. A rejected
// payload leaves the collection unchanged.
func (s *QuoteService) Import(payload []byte, source string) (ImportResult, error) {
	var result ImportResult
	if s.opts.Archiver != nil {
		archive, err := s.opts.Archiver.SaveRaw(payload)
		if err != nil {
			log.Printf("Quotes: failed to archive import payload: %v", err)
		}
		result.Archive = archive
	}

	parsed, err := importers.ParseQuotes(payload)
	if err == nil {
		result.Imported, err = s.store.ImportMany(parsed)
	}
	if err != nil {
		s.notify(notify.LevelError, "Invalid JSON file format.")
		s.auditImport(source, "Import rejected", 0, result.Archive, err)
		return ImportResult{Archive: result.Archive}, err
	}

	if err := s.persist(); err != nil {
		s.auditImport(source, "Import applied but not persisted", result.Imported, result.Archive, err)
		return result, err
	}

	result.Total = s.store.Len()
	s.auditImport(source, fmt.Sprintf("Imported %d quotes", result.Imported), result.Imported, result.Archive, nil)
	s.notify(notify.LevelSuccess, "Quotes imported successfully!")
	return result, nil
}

// Export writes the whole collection in format and returns the exporter
// used, for its file name and content type.
func (s *QuoteService) Export(w io.Writer, format string) (exporters.QuoteExporter, exporters.ExportResult, error) {
	exporter, err := exporters.ForFormat(format)
	if err != nil {
		return nil, exporters.ExportResult{}, err
	}
	if format == "" {
		format = exporters.FormatJSON
	}

	result, err := exporter.Export(w, s.store.All())
	if s.opts.Audit != nil {
		s.opts.Audit.LogExport(format, fmt.Sprintf("Exported %d quotes", result.QuotesProcessed), result.QuotesProcessed, err)
	}
	if err != nil {
		s.notify(notify.LevelError, "Failed to export quotes.")
		return exporter, result, err
	}
	s.notify(notify.LevelInfo, "Quotes exported.")
	return exporter, result, nil
}

// Categories returns the distinct categories and the selected filter.
func (s *QuoteService) Categories() ([]string, string) {
	return s.store.Categories(), s.view.SelectedCategory()
}

// SelectCategory commits and persists a new filter value.
func (s *QuoteService) SelectCategory(value string) error {
	if !s.view.SetSelectedCategory(value) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, value)
	}
	if err := s.persist(); err != nil {
		return err
	}
	if s.opts.Audit != nil {
		s.opts.Audit.LogSettings("category_select", "Selected category "+value)
	}
	return nil
}

// ShowRandom picks a quote from the current view and remembers it for the
// session carried by ctx.
func (s *QuoteService) ShowRandom(ctx context.Context) (entities.Quote, bool) {
	q, ok := s.view.Random()
	if !ok {
		s.notify(notify.LevelInfo, "No quotes available for this category.")
		return entities.Quote{}, false
	}
	if err := s.snapshot.SetLastShown(ctx, q); err != nil {
		log.Printf("Quotes: failed to remember last shown quote: %v", err)
	}
	return q, true
}

// LastShown returns the quote last shown in the session carried by ctx.
func (s *QuoteService) LastShown(ctx context.Context) (entities.Quote, bool) {
	return s.snapshot.LastShown(ctx)
}

func (s *QuoteService) persist() error {
	err := s.store.Snapshot(func(collection []entities.Quote) error {
		return s.snapshot.Save(collection, s.view.SelectedCategory())
	})
	if err != nil {
		log.Printf("Quotes: failed to persist collection: %v", err)
		s.notify(notify.LevelError, "Failed to save quotes.")
		return fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	return nil
}

func (s *QuoteService) notify(level notify.Level, message string) {
	if s.opts.Notifier != nil {
		s.opts.Notifier.Notify(level, message)
	}
}

func (s *QuoteService) auditImport(source, description string, count int, archive string, err error) {
	if s.opts.Audit != nil {
		s.opts.Audit.LogImport(source, description, count, archive, err)
	}
}
