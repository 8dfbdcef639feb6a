package blog

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/devlaunch/academy-api/model"
	"github.com/devlaunch/academy-api/services"
	"github.com/devlaunch/academy-api/utils/response"
	"github.com/devlaunch/academy-api/utils/validation"
)

// BlogHandler handles blog post requests
type BlogHandler struct {
	db            *gorm.DB
	validator     *validation.Validator
	notifications *services.NotificationService
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(db *gorm.DB) *BlogHandler {
	return &BlogHandler{
		db:            db,
		validator:     validation.NewValidator(),
		notifications: services.NewNotificationService(db),
	}
}

// CreateBlogRequest represents the request body for creating a blog post
type CreateBlogRequest struct {
	Title     string `json:"title" validate:"required,min=3,max=255"`
	Slug      string `json:"slug" validate:"omitempty,max=255"`
	Excerpt   string `json:"excerpt"`
	Content   string `json:"content" validate:"required"`
	Author    string `json:"author"`
	Image     string `json:"image"`
	Published bool   `json:"published"`
}

// UpdateBlogRequest represents the request body for updating a blog post
type UpdateBlogRequest struct {
	Title     string `json:"title" validate:"omitempty,min=3,max=255"`
	Excerpt   string `json:"excerpt"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	Image     string `json:"image"`
	Published *bool  `json:"published"`
}

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

// ListBlogs handles GET /api/blogs — public, published posts only
func (h *BlogHandler) ListBlogs(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	search := c.Query("search", "")

	query := h.db.Model(&model.Blog{}).Where("published = ?", true)
	if search != "" {
		query = query.Where("title ILIKE ? OR excerpt ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count blogs")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var blogs []model.Blog
	if err := query.Order("published_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&blogs).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch blogs")
	}

	return response.Paginated(c, blogs, pagination)
}

// GetBlog handles GET /api/blogs/:slug
func (h *BlogHandler) GetBlog(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var blog model.Blog
	if err := h.db.Where("slug = ? AND published = ?", slug, true).First(&blog).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Blog post not found")
		}
		return response.InternalServerError(c, "Failed to fetch blog post")
	}

	return response.Success(c, blog)
}

// CreateBlog handles POST /api/admin/blogs
func (h *BlogHandler) CreateBlog(c *fiber.Ctx) error {
	var req CreateBlogRequest
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

	blog := model.Blog{
		Title:     req.Title,
		Slug:      slug,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Author:    req.Author,
		Image:     req.Image,
		Published: req.Published,
	}
	if req.Published {
		now := time.Now()
		blog.PublishedAt = &now
	}

	if err := h.db.Create(&blog).Error; err != nil {
		return response.InternalServerError(c, "Failed to create blog post")
	}

	// Fan out a notification on publish. A failure here only costs the
	// notification, never the post.
	if blog.Published {
		if err := h.notifications.NotifyBlogPublished(c.Context(), &blog); err != nil {
			log.Printf("blog notification for %q failed: %v", blog.Slug, err)
		}
	}

	return response.Created(c, blog)
}

// UpdateBlog handles PUT /api/admin/blogs/:id
func (h *BlogHandler) UpdateBlog(c *fiber.Ctx) error {
	id := c.Params("id")

	var blog model.Blog
	if err := h.db.First(&blog, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Blog post not found")
		}
		return response.InternalServerError(c, "Failed to fetch blog post")
	}

	var req UpdateBlogRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	wasPublished := blog.Published

	if req.Title != "" {
		blog.Title = req.Title
	}
	if req.Excerpt != "" {
		blog.Excerpt = req.Excerpt
	}
	if req.Content != "" {
		blog.Content = req.Content
	}
	if req.Author != "" {
		blog.Author = req.Author
	}
	if req.Image != "" {
		blog.Image = req.Image
	}
	if req.Published != nil {
		blog.Published = *req.Published
		if blog.Published && blog.PublishedAt == nil {
			now := time.Now()
			blog.PublishedAt = &now
		}
	}

	if err := h.db.Save(&blog).Error; err != nil {
		return response.InternalServerError(c, "Failed to update blog post")
	}

	if blog.Published && !wasPublished {
		if err := h.notifications.NotifyBlogPublished(c.Context(), &blog); err != nil {
			log.Printf("blog notification for %q failed: %v", blog.Slug, err)
		}
	}

	return response.Success(c, blog)
}

// DeleteBlog handles DELETE /api/admin/blogs/:id (soft delete)
func (h *BlogHandler) DeleteBlog(c *fiber.Ctx) error {
	id := c.Params("id")

	var blog model.Blog
	if err := h.db.First(&blog, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Blog post not found")
		}
		return response.InternalServerError(c, "Failed to fetch blog post")
	}

	if err := h.db.Delete(&blog).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete blog post")
	}

	return response.Success(c, fiber.Map{
		"message": "Blog post deleted successfully",
	})
}
