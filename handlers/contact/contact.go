package contact

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/devlaunch/academy-api/model"
	"github.com/devlaunch/academy-api/services"
	"github.com/devlaunch/academy-api/utils/response"
	"github.com/devlaunch/academy-api/utils/validation"
)

// ContactHandler handles contact form submissions
type ContactHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	email     *services.EmailService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(db *gorm.DB) *ContactHandler {
	return &ContactHandler{
		db:        db,
		validator: validation.NewValidator(),
		email:     services.NewEmailService(),
	}
}

// SubmitContactRequest represents a contact form submission
type SubmitContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Company string `json:"company" validate:"omitempty,max=100"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

// Submit handles POST /api/contact
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req SubmitContactRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if !validation.ValidateEmail(req.Email) {
		return response.BadRequest(c, "Invalid email format")
	}

	message := model.ContactMessage{
		Name:      req.Name,
		Email:     req.Email,
		Company:   req.Company,
		Message:   req.Message,
		IPAddress: c.IP(),
		UserAgent: c.Get("User-Agent"),
	}

	if err := h.db.Create(&message).Error; err != nil {
		return response.InternalServerError(c, "Failed to submit message")
	}

	// Notify the support inbox; the submission is already stored, so a mail
	// failure only costs the heads-up.
	if h.email.IsConfigured() {
		if err := h.email.SendContactNotification(req.Name, req.Email, req.Company, req.Message); err != nil {
			log.Printf("contact notification email failed: %v", err)
		}
	}

	return response.Created(c, fiber.Map{
		"message": "Thanks for reaching out. We'll get back to you soon.",
	})
}

// ListMessages handles GET /api/admin/contact
func (h *ContactHandler) ListMessages(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	unreadOnly := c.Query("unread", "") == "true"

	query := h.db.Model(&model.ContactMessage{})
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count messages")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var messages []model.ContactMessage
	if err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch messages")
	}

	return response.Paginated(c, messages, pagination)
}

// MarkRead handles PUT /api/admin/contact/:id/read
func (h *ContactHandler) MarkRead(c *fiber.Ctx) error {
	id := c.Params("id")

	res := h.db.Model(&model.ContactMessage{}).
		Where("id = ?", id).
		Update("is_read", true)
	if res.Error != nil {
		return response.InternalServerError(c, "Failed to update message")
	}
	if res.RowsAffected == 0 {
		return response.NotFound(c, "Message not found")
	}

	return response.Success(c, fiber.Map{
		"message": "Message marked as read",
	})
}

// DeleteMessage handles DELETE /api/admin/contact/:id
func (h *ContactHandler) DeleteMessage(c *fiber.Ctx) error {
	id := c.Params("id")

	res := h.db.Where("id = ?", id).Delete(&model.ContactMessage{})
	if res.Error != nil {
		return response.InternalServerError(c, "Failed to delete message")
	}
	if res.RowsAffected == 0 {
		return response.NotFound(c, "Message not found")
	}

	return response.Success(c, fiber.Map{
		"message": "Message deleted",
	})
}
