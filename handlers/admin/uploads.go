package admin

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/devlaunch/academy-api/services/storage"
	"github.com/devlaunch/academy-api/utils/response"
)

// maxUploadSize caps image uploads at 5 MB
const maxUploadSize = 5 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadHandler handles admin media uploads
type UploadHandler struct {
	spaces *storage.SpacesClient
}

// NewUploadHandler creates a new upload handler. spaces may be nil when
// object storage is not configured; uploads then fail with 503.
func NewUploadHandler(spaces *storage.SpacesClient) *UploadHandler {
	return &UploadHandler{spaces: spaces}
}

// UploadImage handles POST /api/admin/uploads. Multipart field "image";
// optional "folder" namespaces the key (courses, blogs, avatars).
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	if h.spaces == nil {
		return response.ServiceUnavailable(c, "Object storage not configured")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest(c, "Image file is required")
	}

	if fileHeader.Size > maxUploadSize {
		return response.BadRequest(c, "Image must be smaller than 5 MB")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return response.BadRequest(c, "Only JPEG, PNG, GIF and WebP images are allowed")
	}

	folder := c.FormValue("folder", "uploads")
	folder = strings.Trim(folder, "/")
	switch folder {
	case "courses", "blogs", "avatars", "uploads":
	default:
		return response.BadRequest(c, "Invalid upload folder")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read upload")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		return response.InternalServerError(c, "Failed to read upload")
	}
	if int64(len(data)) > maxUploadSize {
		return response.BadRequest(c, "Image must be smaller than 5 MB")
	}

	url, err := h.spaces.UploadImage(c.Context(), folder, fileHeader.Filename, contentType, data)
	if err != nil {
		return response.InternalServerError(c, "Failed to upload image")
	}

	return response.Created(c, fiber.Map{
		"url": url,
	})
}
