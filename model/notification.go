package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationType categorizes what produced a notification
type NotificationType string

const (
	NotificationTypeBlog         NotificationType = "blog"
	NotificationTypeAnnouncement NotificationType = "announcement"
	NotificationTypeSystem       NotificationType = "system"
)

// Notification represents a student-facing notification, fanned out when a
// blog post or announcement is published.
type Notification struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`
	Type           NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Message        string           `gorm:"type:text;not null" json:"message"`
	BlogID         *uint            `json:"blog_id,omitempty"`
	AnnouncementID *uint            `json:"announcement_id,omitempty"`
	IsRead         bool             `gorm:"default:false" json:"is_read"`
	TargetAudience string           `gorm:"type:varchar(20);default:'all'" json:"target_audience"`
	Metadata       datatypes.JSON   `gorm:"type:jsonb" json:"metadata,omitempty"`
}
