package admin

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/devlaunch/academy-api/database"
	"github.com/devlaunch/academy-api/model"
	"github.com/devlaunch/academy-api/utils/response"
)

// ListStudents retrieves all students with pagination
// GET /api/admin/students
func ListStudents(c *fiber.Ctx, store database.Storage) error {
	db := store.DB()

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	search := c.Query("search", "")
	enrolled := c.Query("enrolled", "")

	query := db.Model(&model.User{}).Where("role = ?", model.RoleStudent)

	if search != "" {
		query = query.Where("email ILIKE ? OR name ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}
	if enrolled == "true" {
		query = query.Where("enrolled_course = ?", true)
	} else if enrolled == "false" {
		query = query.Where("enrolled_course = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count students")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var students []model.User
	if err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&students).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch students")
	}

	publicStudents := make([]model.PublicUser, 0, len(students))
	for i := range students {
		publicStudents = append(publicStudents, students[i].Public())
	}

	return response.Paginated(c, publicStudents, pagination)
}

// GetStudent retrieves a student with their payment history
// GET /api/admin/students/:id
func GetStudent(c *fiber.Ctx, store database.Storage) error {
	db := store.DB()
	id := c.Params("id")

	var student model.User
	if err := db.Preload("Payments").First(&student, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Student not found")
		}
		return response.InternalServerError(c, "Failed to fetch student")
	}

	var payments []model.Payment
	if err := db.Where("user_id = ?", student.ID).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch payments")
	}

	return response.Success(c, fiber.Map{
		"student":  student.Public(),
		"payments": payments,
	})
}

// ForceEnrollRequest toggles enrollment without a payment
type ForceEnrollRequest struct {
	Enrolled bool   `json:"enrolled"`
	Reason   string `json:"reason"`
}

// ForceEnroll flips a student's enrollment directly, bypassing the payment
// gate. BypassPayment marks the row so revenue stats can exclude it.
// PUT /api/admin/students/:id/enrollment
func ForceEnroll(c *fiber.Ctx, store database.Storage) error {
	db := store.DB()
	id := c.Params("id")

	var req ForceEnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var student model.User
	if err := db.First(&student, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Student not found")
		}
		return response.InternalServerError(c, "Failed to fetch student")
	}

	updates := map[string]interface{}{
		"enrolled_course": req.Enrolled,
		"bypass_payment":  req.Enrolled,
	}
	if req.Enrolled {
		updates["progress"] = 0
	}

	if err := db.Model(&student).Updates(updates).Error; err != nil {
		return response.InternalServerError(c, "Failed to update enrollment")
	}

	return response.SuccessWithMessage(c, "Enrollment updated", student.Public())
}

// DeleteStudent soft-deletes a student account
// DELETE /api/admin/students/:id
func DeleteStudent(c *fiber.Ctx, store database.Storage) error {
	db := store.DB()
	id := c.Params("id")

	var student model.User
	if err := db.First(&student, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Student not found")
		}
		return response.InternalServerError(c, "Failed to fetch student")
	}

	if student.Role == model.RoleAdmin {
		return response.Forbidden(c, "Cannot delete an admin account")
	}

	if err := db.Delete(&student).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete student")
	}

	return response.Success(c, fiber.Map{
		"message": "Student deleted successfully",
	})
}
