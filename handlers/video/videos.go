package video

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/devlaunch/academy-api/model"
	"github.com/devlaunch/academy-api/utils/middleware"
	"github.com/devlaunch/academy-api/utils/response"
	"github.com/devlaunch/academy-api/utils/validation"
)

// VideoHandler handles course video requests
type VideoHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(db *gorm.DB) *VideoHandler {
	return &VideoHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateVideoRequest represents the request body for creating a video
type CreateVideoRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=255"`
	Description string `json:"description"`
	URL         string `json:"url" validate:"required,url"`
	Thumbnail   string `json:"thumbnail"`
	Duration    string `json:"duration"`
	Position    int    `json:"position" validate:"gte=0"`
	Published   bool   `json:"published"`
}

// UpdateVideoRequest represents the request body for updating a video
type UpdateVideoRequest struct {
	Title       string `json:"title" validate:"omitempty,min=3,max=255"`
	Description string `json:"description"`
	URL         string `json:"url" validate:"omitempty,url"`
	Thumbnail   string `json:"thumbnail"`
	Duration    string `json:"duration"`
	Position    *int   `json:"position" validate:"omitempty,gte=0"`
	Published   *bool  `json:"published"`
}

// ListVideos handles GET /api/videos. Lesson content is only visible to
// enrolled students; admins see everything including unpublished drafts.
func (h *VideoHandler) ListVideos(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "Not authenticated")
	}

	isAdmin := user.Role == model.RoleAdmin
	if !isAdmin && !user.EnrolledCourse {
		return response.Forbidden(c, "Enrollment required to access course videos")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	query := h.db.Model(&model.Video{})
	if !isAdmin {
		query = query.Where("published = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count videos")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var videos []model.Video
	if err := query.Order("position ASC, created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&videos).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch videos")
	}

	return response.Paginated(c, videos, pagination)
}

// GetVideo handles GET /api/videos/:id
func (h *VideoHandler) GetVideo(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "Not authenticated")
	}

	isAdmin := user.Role == model.RoleAdmin
	if !isAdmin && !user.EnrolledCourse {
		return response.Forbidden(c, "Enrollment required to access course videos")
	}

	id := c.Params("id")

	var video model.Video
	query := h.db.Model(&model.Video{})
	if !isAdmin {
		query = query.Where("published = ?", true)
	}
	if err := query.First(&video, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Video not found")
		}
		return response.InternalServerError(c, "Failed to fetch video")
	}

	return response.Success(c, video)
}

// CreateVideo handles POST /api/admin/videos
func (h *VideoHandler) CreateVideo(c *fiber.Ctx) error {
	var req CreateVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	video := model.Video{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		Thumbnail:   req.Thumbnail,
		Duration:    req.Duration,
		Position:    req.Position,
		Published:   req.Published,
	}

	if err := h.db.Create(&video).Error; err != nil {
		return response.InternalServerError(c, "Failed to create video")
	}

	return response.Created(c, video)
}

// UpdateVideo handles PUT /api/admin/videos/:id
func (h *VideoHandler) UpdateVideo(c *fiber.Ctx) error {
	id := c.Params("id")

	var video model.Video
	if err := h.db.First(&video, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Video not found")
		}
		return response.InternalServerError(c, "Failed to fetch video")
	}

	var req UpdateVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if req.Title != "" {
		video.Title = req.Title
	}
	if req.Description != "" {
		video.Description = req.Description
	}
	if req.URL != "" {
		video.URL = req.URL
	}
	if req.Thumbnail != "" {
		video.Thumbnail = req.Thumbnail
	}
	if req.Duration != "" {
		video.Duration = req.Duration
	}
	if req.Position != nil {
		video.Position = *req.Position
	}
	if req.Published != nil {
		video.Published = *req.Published
	}

	if err := h.db.Save(&video).Error; err != nil {
		return response.InternalServerError(c, "Failed to update video")
	}

	return response.Success(c, video)
}

// DeleteVideo handles DELETE /api/admin/videos/:id (soft delete)
func (h *VideoHandler) DeleteVideo(c *fiber.Ctx) error {
	id := c.Params("id")

	var video model.Video
	if err := h.db.First(&video, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Video not found")
		}
		return response.InternalServerError(c, "Failed to fetch video")
	}

	if err := h.db.Delete(&video).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete video")
	}

	return response.Success(c, fiber.Map{
		"message": "Video deleted successfully",
	})
}
