package admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devlaunch/academy-api/database"
	"github.com/devlaunch/academy-api/model"
	"github.com/devlaunch/academy-api/services"
	"github.com/devlaunch/academy-api/utils/response"
)

// GetDashboardStats retrieves dashboard summary numbers
// GET /api/admin/stats
func GetDashboardStats(c *fiber.Ctx, store database.Storage) error {
	stats, err := services.NewStatsService(store.DB()).GetDashboardStats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute stats")
	}

	return response.Success(c, stats)
}

// ResetRevenueRequest gates the destructive reset behind an explicit phrase
type ResetRevenueRequest struct {
	Confirm string `json:"confirm"`
}

// ResetRevenue soft-deletes all payment audit rows, zeroing the revenue
// counters. The rows stay recoverable in the database; the confirm phrase
// keeps a stray click from wiping the dashboard.
// POST /api/admin/stats/reset-revenue
func ResetRevenue(c *fiber.Ctx, store database.Storage) error {
	var req ResetRevenueRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Confirm != "RESET_REVENUE" {
		return response.BadRequest(c, "Confirmation phrase required: send {\"confirm\": \"RESET_REVENUE\"}")
	}

	db := store.DB()

	result := db.Where("1 = 1").Delete(&model.Payment{})
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to reset revenue")
	}

	return response.SuccessWithMessage(c, "Revenue reset", fiber.Map{
		"archived_payments": result.RowsAffected,
	})
}

// ListPayments retrieves the payment audit log
// GET /api/admin/payments
func ListPayments(c *fiber.Ctx, store database.Storage) error {
	db := store.DB()

	var payments []model.Payment
	if err := db.Order("created_at DESC").Limit(200).Find(&payments).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch payments")
	}

	return response.Success(c, payments)
}
