package cli

import (
	"fmt"

	"github.com/mrlokans/quotebook/internal/audit"
	"github.com/mrlokans/quotebook/internal/database"
	auditrepo "github.com/mrlokans/quotebook/internal/database/audit"
	"github.com/mrlokans/quotebook/internal/persistence"
	"github.com/mrlokans/quotebook/internal/quotes"
	"github.com/mrlokans/quotebook/internal/selection"
	"github.com/mrlokans/quotebook/internal/services"
	"github.com/mrlokans/quotebook/internal/settingsstore"
)

// localStack is the quote collection as restored from a database file,
// without the HTTP server, scheduler or task queue.
type localStack struct {
	db       *database.Database
	store    *quotes.Store
	view     *selection.ViewModel
	snapshot *persistence.Adapter
	audit    *audit.Service
	quotes   *services.QuoteService
}

func openLocalStack(dbPath, auditDir string) (*localStack, error) {
	db, err := database.NewDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	stack := &localStack{
		db:       db,
		store:    quotes.NewStore(),
		snapshot: persistence.NewAdapter(settingsstore.New(db), nil),
		audit:    audit.NewService(auditrepo.NewRepository(db.DB)),
	}
	stack.view = selection.NewViewModel(stack.store)

	opts := services.Options{Audit: stack.audit}
	if auditDir != "" {
		opts.Archiver = audit.NewAuditor(auditDir)
	}
	stack.quotes = services.NewQuoteService(stack.store, stack.view, stack.snapshot, opts)
	stack.quotes.Bootstrap()

	return stack, nil
}

func (s *localStack) Close() error {
	s.audit.Wait()
	return s.db.Close()
}
