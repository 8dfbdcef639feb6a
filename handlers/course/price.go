package course

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/devlaunch/academy-api/model"
	"github.com/devlaunch/academy-api/utils/middleware"
	"github.com/devlaunch/academy-api/utils/response"
)

// UpdatePriceRequest represents an admin price change
type UpdatePriceRequest struct {
	Price         int64  `json:"price" validate:"required,gte=0"`
	OriginalPrice *int64 `json:"original_price" validate:"omitempty,gte=0"`
	Discount      string `json:"discount"`
	Reason        string `json:"reason"`
}

// UpdatePrice handles PUT /api/admin/courses/:id/price. The course row and
// the history row are written in one transaction so the log never disagrees
// with the catalog.
func (h *CourseHandler) UpdatePrice(c *fiber.Ctx) error {
	admin, ok := middleware.GetUser(c)
	if !ok || admin == nil {
		return response.Unauthorized(c, "Not authenticated")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid course id")
	}

	var req UpdatePriceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Price < 0 {
		return response.BadRequest(c, "Price must not be negative")
	}

	var course model.Course
	if err := h.db.First(&course, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	newOriginal := course.OriginalPrice
	if req.OriginalPrice != nil {
		newOriginal = *req.OriginalPrice
	}
	newDiscount := course.Discount
	if req.Discount != "" {
		newDiscount = req.Discount
	}

	history := model.PriceHistory{
		CourseID:         course.ID,
		OldPrice:         course.Price,
		NewPrice:         req.Price,
		OldOriginalPrice: course.OriginalPrice,
		NewOriginalPrice: newOriginal,
		OldDiscount:      course.Discount,
		NewDiscount:      newDiscount,
		ChangedByID:      admin.ID,
		ChangeReason:     req.Reason,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&course).Updates(map[string]interface{}{
			"price":          req.Price,
			"original_price": newOriginal,
			"discount":       newDiscount,
		}).Error; err != nil {
			return err
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		log.Printf("price update for course %d failed: %v", course.ID, err)
		return response.InternalServerError(c, "Failed to update price")
	}

	return response.Success(c, course)
}

// GetPriceHistory handles GET /api/admin/courses/:id/price-history
func (h *CourseHandler) GetPriceHistory(c *fiber.Ctx) error {
	id := c.Params("id")

	var course model.Course
	if err := h.db.First(&course, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	var history []model.PriceHistory
	if err := h.db.Where("course_id = ?", course.ID).
		Order("created_at DESC").
		Find(&history).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch price history")
	}

	return response.Success(c, history)
}
