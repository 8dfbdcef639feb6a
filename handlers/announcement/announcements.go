package announcement

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/devlaunch/academy-api/model"
	"github.com/devlaunch/academy-api/services"
	"github.com/devlaunch/academy-api/utils/response"
	"github.com/devlaunch/academy-api/utils/validation"
)

// AnnouncementHandler handles announcement requests
type AnnouncementHandler struct {
	db            *gorm.DB
	validator     *validation.Validator
	notifications *services.NotificationService
}

// NewAnnouncementHandler creates a new announcement handler
func NewAnnouncementHandler(db *gorm.DB) *AnnouncementHandler {
	return &AnnouncementHandler{
		db:            db,
		validator:     validation.NewValidator(),
		notifications: services.NewNotificationService(db),
	}
}

// CreateAnnouncementRequest represents the request body for creating an announcement
type CreateAnnouncementRequest struct {
	Title          string     `json:"title" validate:"required,min=3,max=255"`
	Content        string     `json:"content" validate:"required"`
	Type           string     `json:"type" validate:"omitempty,oneof=general course payment system"`
	Priority       string     `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	TargetAudience string     `json:"target_audience" validate:"omitempty,oneof=all enrolled unenrolled"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

// ListAnnouncements handles GET /api/announcements — active, unexpired only
func (h *AnnouncementHandler) ListAnnouncements(c *fiber.Ctx) error {
	var announcements []model.Announcement
	if err := h.db.Where("is_active = ?", true).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Order("created_at DESC").
		Limit(50).
		Find(&announcements).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch announcements")
	}

	return response.Success(c, announcements)
}

// CreateAnnouncement handles POST /api/admin/announcements
func (h *AnnouncementHandler) CreateAnnouncement(c *fiber.Ctx) error {
	var req CreateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	announcement := model.Announcement{
		Title:     req.Title,
		Content:   req.Content,
		IsActive:  true,
		ExpiresAt: req.ExpiresAt,
	}
	if req.Type != "" {
		announcement.Type = req.Type
	}
	if req.Priority != "" {
		announcement.Priority = req.Priority
	}
	if req.TargetAudience != "" {
		announcement.TargetAudience = req.TargetAudience
	}

	if err := h.db.Create(&announcement).Error; err != nil {
		return response.InternalServerError(c, "Failed to create announcement")
	}

	if err := h.notifications.NotifyAnnouncement(c.Context(), &announcement); err != nil {
		log.Printf("announcement notification for %d failed: %v", announcement.ID, err)
	}

	return response.Created(c, announcement)
}

// DeactivateAnnouncement handles DELETE /api/admin/announcements/:id.
// Announcements are deactivated, not destroyed, to keep the history.
func (h *AnnouncementHandler) DeactivateAnnouncement(c *fiber.Ctx) error {
	id := c.Params("id")

	var announcement model.Announcement
	if err := h.db.First(&announcement, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Announcement not found")
		}
		return response.InternalServerError(c, "Failed to fetch announcement")
	}

	if err := h.db.Model(&announcement).Update("is_active", false).Error; err != nil {
		return response.InternalServerError(c, "Failed to deactivate announcement")
	}

	return response.Success(c, fiber.Map{
		"message": "Announcement deactivated",
	})
}
