package admin

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/devlaunch/academy-api/database"
	"github.com/devlaunch/academy-api/model"
	"github.com/devlaunch/academy-api/utils/response"
)

// ListAuditLogs retrieves the admin action audit trail
// GET /api/admin/audit
func ListAuditLogs(c *fiber.Ctx, store database.Storage) error {
	db := store.DB()

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	action := c.Query("action", "")
	resource := c.Query("resource", "")

	query := db.Model(&model.AdminAuditLog{})
	if action != "" {
		query = query.Where("action = ?", action)
	}
	if resource != "" {
		query = query.Where("resource = ?", resource)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count audit logs")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var logs []model.AdminAuditLog
	if err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch audit logs")
	}

	return response.Paginated(c, logs, pagination)
}

// ListCronLogs retrieves recent background job runs
// GET /api/admin/cron-logs
func ListCronLogs(c *fiber.Ctx, store database.Storage) error {
	db := store.DB()

	var logs []model.CronJobLog
	if err := db.Order("started_at DESC").Limit(100).Find(&logs).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch cron logs")
	}

	return response.Success(c, logs)
}
