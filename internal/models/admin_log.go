package models

import (
	"time"

	"gorm.io/datatypes"
)

// Audit action tags. One tag per wrapped administrative action.
const (
	AdminActionAddMinutes        = "add_minutes"
	AdminActionViewUsers         = "view_users"
	AdminActionExportData        = "export_data"
	AdminActionViewSubscriptions = "view_subscriptions"
	AdminActionViewDocuments     = "view_documents"
	AdminActionViewAnalytics     = "view_analytics"
	AdminActionViewLogs          = "view_logs"
)

// Audit target types.
const (
	AuditTargetUser         = "user"
	AuditTargetSubscription = "subscription"
	AuditTargetDocument     = "document"
	AuditTargetAgent        = "agent"
	AuditTargetSystem       = "system"
)

// AdminLog is an immutable audit record: who did what to what. Rows are
// append-only; nothing in this service updates or deletes them.
type AdminLog struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	AdminID    uint              `gorm:"not null;index" json:"admin_id"`
	Action     string            `gorm:"size:64;not null;index" json:"action"`
	TargetType string            `gorm:"size:32;not null" json:"target_type"`
	TargetID   *string           `gorm:"size:64" json:"target_id"`
	Details    datatypes.JSONMap `gorm:"type:json" json:"details"`
	CreatedAt  time.Time         `json:"created_at"`
}
