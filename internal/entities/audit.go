package entities

import "time"

type AuditEventType string

const (
	AuditEventImport   AuditEventType = "import"
	AuditEventExport   AuditEventType = "export"
	AuditEventCreate   AuditEventType = "create"
	AuditEventSync     AuditEventType = "sync"
	AuditEventPush     AuditEventType = "push"
	AuditEventSettings AuditEventType = "settings"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

type AuditEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	EventType   AuditEventType `gorm:"index;size:50" json:"event_type"`
	Action      string         `gorm:"size:100" json:"action"`              // e.g., "json_import", "remote_sync"
	Description string         `gorm:"size:500" json:"description"`         // Human-readable summary
	Metadata    string         `gorm:"type:text" json:"metadata,omitempty"` // JSON for extra data
	Status      AuditStatus    `gorm:"size:20" json:"status"`
	ErrorMsg    string         `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
