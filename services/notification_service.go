package services

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/devlaunch/academy-api/model"
)

// NotificationService creates and lists student-facing notifications.
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new notification service
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// NotifyBlogPublished fans out a notification for a newly published blog
// post. Callers treat failure as non-fatal; publishing is not rolled back.
func (s *NotificationService) NotifyBlogPublished(ctx context.Context, blog *model.Blog) error {
	notification := model.Notification{
		Type:           model.NotificationTypeBlog,
		Message:        fmt.Sprintf("New blog post: %s", blog.Title),
		BlogID:         &blog.ID,
		TargetAudience: "all",
	}
	if metadata, err := marshalJSON(map[string]any{"slug": blog.Slug}); err == nil {
		notification.Metadata = metadata
	}

	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return fmt.Errorf("failed to create blog notification: %w", err)
	}
	log.Printf("Created notification for blog %d: %s", blog.ID, blog.Title)
	return nil
}

// NotifyAnnouncement fans out a notification for an announcement.
func (s *NotificationService) NotifyAnnouncement(ctx context.Context, announcement *model.Announcement) error {
	notification := model.Notification{
		Type:           model.NotificationTypeAnnouncement,
		Message:        announcement.Title,
		AnnouncementID: &announcement.ID,
		TargetAudience: announcement.TargetAudience,
	}
	if metadata, err := marshalJSON(map[string]any{"priority": announcement.Priority}); err == nil {
		notification.Metadata = metadata
	}

	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return fmt.Errorf("failed to create announcement notification: %w", err)
	}
	return nil
}

// ListOptions filters the notification listing
type ListOptions struct {
	Audience   string
	UnreadOnly bool
	Limit      int
}

// List returns notifications for an audience, newest first.
func (s *NotificationService) List(ctx context.Context, opts ListOptions) ([]model.Notification, error) {
	limit := opts.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := s.db.WithContext(ctx).Model(&model.Notification{})
	if opts.Audience != "" {
		query = query.Where("target_audience IN ?", []string{"all", opts.Audience})
	}
	if opts.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []model.Notification
	if err := query.Order("created_at DESC").Limit(limit).Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead marks a notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", id).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
