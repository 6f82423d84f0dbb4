package audit

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/mrlokans/quotebook/internal/database/audit"
	"github.com/mrlokans/quotebook/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
	wg   sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// Wait blocks until every pending LogAsync write has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// LogImport records an import event.
func (s *Service) LogImport(source, description string, quotesCount int, archive string, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventImport,
		Action:      source + "_import",
		Description: description,
	}
	metadata := map[string]any{"quotes_count": quotesCount}
	if archive != "" {
		metadata["archive"] = archive
	}
	s.logWithMetadata(event, metadata, err)
}

// LogExport records an export event.
func (s *Service) LogExport(format, description string, quotesCount int, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventExport,
		Action:      format + "_export",
		Description: description,
	}
	s.logWithMetadata(event, map[string]any{"quotes_count": quotesCount}, err)
}

// LogCreate records a quote added by hand.
func (s *Service) LogCreate(q entities.Quote) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCreate,
		Action:      "quote_create",
		Description: "Added quote in category " + q.Category,
	}
	s.logWithMetadata(event, map[string]any{"text": truncate(q.Text, 200), "category": q.Category}, nil)
}

// LogSync records a merge cycle against the remote source.
func (s *Service) LogSync(action, description string, fetched, added int, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventSync,
		Action:      action,
		Description: description,
	}
	s.logWithMetadata(event, map[string]any{"fetched": fetched, "added": added}, err)
}

// LogPush records the outcome of pushing a quote to the remote source.
func (s *Service) LogPush(q entities.Quote, err error) {
	description := "Pushed quote to remote source"
	if err != nil {
		description = "Failed to push quote to remote source"
	}
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventPush,
		Action:      "quote_push",
		Description: description,
	}
	s.logWithMetadata(event, map[string]any{"text": truncate(q.Text, 200), "category": q.Category}, err)
}

// LogSettings records a settings change event.
func (s *Service) LogSettings(action, description string) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventSettings,
		Action:      action,
		Description: description,
		Status:      entities.AuditStatusSuccess,
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(limit, offset)
}

// GetEventsByType retrieves audit events filtered by type.
func (s *Service) GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEventsByType(eventType, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

func (s *Service) logWithMetadata(event *entities.AuditEvent, metadata map[string]any, err error) {
	event.Status = entities.AuditStatusSuccess
	if mdBytes, e := json.Marshal(metadata); e == nil {
		event.Metadata = string(mdBytes)
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
