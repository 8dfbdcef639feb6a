package course

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/devlaunch/academy-api/model"
	"github.com/devlaunch/academy-api/utils/response"
	"github.com/devlaunch/academy-api/utils/validation"
)

// CourseHandler handles course catalog requests
type CourseHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(db *gorm.DB) *CourseHandler {
	return &CourseHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateCourseRequest represents the request body for creating a course
type CreateCourseRequest struct {
	Title            string  `json:"title" validate:"required,min=3,max=255"`
	Slug             string  `json:"slug" validate:"omitempty,max=255"`
	Description      string  `json:"description" validate:"omitempty"`
	ShortDescription string  `json:"short_description" validate:"omitempty,max=1000"`
	Price            int64   `json:"price" validate:"required,gte=0"`
	OriginalPrice    int64   `json:"original_price" validate:"omitempty,gte=0"`
	Discount         string  `json:"discount"`
	Duration         string  `json:"duration"`
	Level            string  `json:"level"`
	Category         string  `json:"category"`
	Instructor       string  `json:"instructor"`
	Image            string  `json:"image"`
	Rating           float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	IsActive         *bool   `json:"is_active"`
}

// UpdateCourseRequest represents the request body for updating a course.
// Price fields are intentionally absent: price changes go through the
// dedicated price endpoint so every change lands in the history log.
type UpdateCourseRequest struct {
	Title            string   `json:"title" validate:"omitempty,min=3,max=255"`
	Description      string   `json:"description" validate:"omitempty"`
	ShortDescription string   `json:"short_description" validate:"omitempty,max=1000"`
	Duration         string   `json:"duration"`
	Level            string   `json:"level"`
	Category         string   `json:"category"`
	Instructor       string   `json:"instructor"`
	Image            string   `json:"image"`
	Rating           *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	IsActive         *bool    `json:"is_active"`
}

// slugify converts a title to a URL-safe slug
func slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// ListCourses handles GET /api/courses — public, active courses only
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	search := c.Query("search", "")
	category := c.Query("category", "")

	query := h.db.Model(&model.Course{}).Where("is_active = ?", true)

	if search != "" {
		query = query.Where("title ILIKE ? OR description ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count courses")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var courses []model.Course
	if err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&courses).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch courses")
	}

	return response.Paginated(c, courses, pagination)
}

// GetCourse handles GET /api/courses/:id — accepts a numeric id or a slug
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	param := c.Params("id")

	var course model.Course
	var err error
	if id, convErr := strconv.ParseUint(param, 10, 32); convErr == nil {
		err = h.db.First(&course, uint(id)).Error
	} else {
		err = h.db.Where("slug = ?", param).First(&course).Error
	}
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	return response.Success(c, course)
}

// GetCoursePrice handles GET /api/courses/:id/price. The checkout widget
// reads this; an inactive course is a 400, not a 404, so the client can
// distinguish "gone" from "not purchasable".
func (h *CourseHandler) GetCoursePrice(c *fiber.Ctx) error {
	id := c.Params("id")

	var course model.Course
	if err := h.db.First(&course, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	if !course.IsActive {
		return response.BadRequest(c, "Course is not available for purchase")
	}

	return response.Success(c, fiber.Map{
		"id":             course.ID,
		"title":          course.Title,
		"price":          course.Price,
		"original_price": course.OriginalPrice,
		"discount":       course.Discount,
		"currency":       "INR",
	})
}

// CreateCourse handles POST /api/admin/courses
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	slug := req.Slug
	if slug == "" {
		slug = slugify(req.Title)
	}

	originalPrice := req.OriginalPrice
	if originalPrice == 0 {
		originalPrice = req.Price
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	course := model.Course{
		Title:            req.Title,
		Slug:             slug,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Price:            req.Price,
		OriginalPrice:    originalPrice,
		Discount:         req.Discount,
		Duration:         req.Duration,
		Level:            req.Level,
		Category:         req.Category,
		Instructor:       req.Instructor,
		Image:            req.Image,
		Rating:           req.Rating,
		IsActive:         isActive,
	}

	if err := h.db.Create(&course).Error; err != nil {
		return response.InternalServerError(c, "Failed to create course")
	}

	return response.Created(c, course)
}

// UpdateCourse handles PUT /api/admin/courses/:id
func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	id := c.Params("id")

	var course model.Course
	if err := h.db.First(&course, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	var req UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if req.Title != "" {
		course.Title = req.Title
	}
	if req.Description != "" {
		course.Description = req.Description
	}
	if req.ShortDescription != "" {
		course.ShortDescription = req.ShortDescription
	}
	if req.Duration != "" {
		course.Duration = req.Duration
	}
	if req.Level != "" {
		course.Level = req.Level
	}
	if req.Category != "" {
		course.Category = req.Category
	}
	if req.Instructor != "" {
		course.Instructor = req.Instructor
	}
	if req.Image != "" {
		course.Image = req.Image
	}
	if req.Rating != nil {
		course.Rating = *req.Rating
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := h.db.Save(&course).Error; err != nil {
		return response.InternalServerError(c, "Failed to update course")
	}

	return response.Success(c, course)
}

// DeleteCourse handles DELETE /api/admin/courses/:id (soft delete)
func (h *CourseHandler) DeleteCourse(c *fiber.Ctx) error {
	id := c.Params("id")

	var course model.Course
	if err := h.db.First(&course, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	if err := h.db.Delete(&course).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete course")
	}

	return response.Success(c, fiber.Map{
		"message": "Course deleted successfully",
	})
}
