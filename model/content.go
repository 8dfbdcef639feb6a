package model

import (
	"time"

	"gorm.io/gorm"
)

// Blog represents a blog post shown on the marketing site
type Blog struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Title       string         `gorm:"not null" json:"title"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Excerpt     string         `gorm:"type:text" json:"excerpt"`
	Content     string         `gorm:"type:text;not null" json:"content"`
	Author      string         `gorm:"type:varchar(100)" json:"author"`
	Image       string         `json:"image"`
	Published   bool           `gorm:"default:false" json:"published"`
	PublishedAt *time.Time     `json:"published_at"`
}

// Video represents a course video lesson
type Video struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	URL         string         `gorm:"not null" json:"url"`
	Thumbnail   string         `json:"thumbnail"`
	Duration    string         `gorm:"type:varchar(20)" json:"duration"`
	Position    int            `gorm:"default:0" json:"position"` // ordering within the course
	Published   bool           `gorm:"default:false" json:"published"`
}

// Announcement represents a site-wide announcement
type Announcement struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	Title          string         `gorm:"not null" json:"title"`
	Content        string         `gorm:"type:text;not null" json:"content"`
	Type           string         `gorm:"type:varchar(20);default:'general'" json:"type"`        // general, course, payment, system
	Priority       string         `gorm:"type:varchar(20);default:'medium'" json:"priority"`     // low, medium, high, urgent
	TargetAudience string         `gorm:"type:varchar(20);default:'all'" json:"target_audience"` // all, enrolled, unenrolled
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	ExpiresAt      *time.Time     `json:"expires_at"`
}

// ContactMessage represents a message submitted through the contact form
type ContactMessage struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"not null;index" json:"email"`
	Company   string         `json:"company"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	IPAddress string         `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent string         `gorm:"type:text" json:"user_agent"`
	IsRead    bool           `gorm:"default:false" json:"is_read"`
}

// TableName specifies the table name for ContactMessage
func (ContactMessage) TableName() string {
	return "contact_messages"
}
