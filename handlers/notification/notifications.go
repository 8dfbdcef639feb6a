package notification

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/devlaunch/academy-api/services"
	"github.com/devlaunch/academy-api/utils/middleware"
	"github.com/devlaunch/academy-api/utils/response"
)

// NotificationHandler handles notification feed requests
type NotificationHandler struct {
	notifications *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{
		notifications: services.NewNotificationService(db),
	}
}

// ListNotifications handles GET /api/notifications. The audience filter is
// derived from the caller's enrollment state, never from a query parameter.
func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "Not authenticated")
	}

	audience := "unenrolled"
	if user.EnrolledCourse {
		audience = "enrolled"
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	unreadOnly := c.Query("unread", "") == "true"

	notifications, err := h.notifications.List(c.Context(), services.ListOptions{
		Audience:   audience,
		UnreadOnly: unreadOnly,
		Limit:      limit,
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch notifications")
	}

	return response.Success(c, notifications)
}

// MarkRead handles PUT /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid notification id")
	}

	if err := h.notifications.MarkRead(c.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Notification not found")
		}
		return response.InternalServerError(c, "Failed to update notification")
	}

	return response.Success(c, fiber.Map{
		"message": "Notification marked as read",
	})
}
