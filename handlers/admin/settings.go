package admin

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/devlaunch/academy-api/database"
	"github.com/devlaunch/academy-api/model"
	"github.com/devlaunch/academy-api/utils/response"
)

// ListSettings retrieves all app settings
// GET /api/admin/settings
func ListSettings(c *fiber.Ctx, store database.Storage) error {
	db := store.DB()

	var settings []model.AppSetting
	if err := db.Order("category, key").Find(&settings).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch settings")
	}

	return response.SuccessWithMessage(c, "Settings retrieved successfully", settings)
}

// GetSetting retrieves a specific setting by key
// GET /api/admin/settings/:key
func GetSetting(c *fiber.Ctx, store database.Storage) error {
	db := store.DB()

	key := c.Params("key")
	var setting model.AppSetting
	if err := db.Where("key = ?", key).First(&setting).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Setting not found")
		}
		return response.InternalServerError(c, "Failed to fetch setting")
	}

	return response.SuccessWithMessage(c, "Setting retrieved successfully", setting)
}

// UpsertSettingRequest creates or updates a setting
type UpsertSettingRequest struct {
	Value       string `json:"value"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Category    string `json:"category"`
	IsPublic    *bool  `json:"is_public"`
}

// UpdateSetting creates or updates a setting by key
// PUT /api/admin/settings/:key
func UpdateSetting(c *fiber.Ctx, store database.Storage) error {
	db := store.DB()
	key := c.Params("key")

	var req UpsertSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var setting model.AppSetting
	err := db.Where("key = ?", key).First(&setting).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return response.InternalServerError(c, "Failed to fetch setting")
	}

	if err == gorm.ErrRecordNotFound {
		setting = model.AppSetting{Key: key}
	}

	setting.Value = req.Value
	if req.Type != "" {
		setting.Type = req.Type
	}
	if req.Description != "" {
		setting.Description = req.Description
	}
	if req.Category != "" {
		setting.Category = req.Category
	}
	if req.IsPublic != nil {
		setting.IsPublic = *req.IsPublic
	}

	if err := db.Save(&setting).Error; err != nil {
		return response.InternalServerError(c, "Failed to save setting")
	}

	return response.SuccessWithMessage(c, "Setting saved successfully", setting)
}

// DeleteSetting removes a setting by key
// DELETE /api/admin/settings/:key
func DeleteSetting(c *fiber.Ctx, store database.Storage) error {
	db := store.DB()
	key := c.Params("key")

	result := db.Where("key = ?", key).Delete(&model.AppSetting{})
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete setting")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Setting not found")
	}

	return response.Success(c, fiber.Map{
		"message": "Setting deleted successfully",
	})
}

// GetPublicSettings retrieves settings flagged public, keyed by name.
// Unauthenticated; the marketing site reads logo URL and toggles from here.
// GET /api/settings
func GetPublicSettings(c *fiber.Ctx, store database.Storage) error {
	db := store.DB()

	var settings []model.AppSetting
	if err := db.Where("is_public = ?", true).Find(&settings).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch settings")
	}

	result := make(map[string]string, len(settings))
	for _, s := range settings {
		result[s.Key] = s.Value
	}

	return response.Success(c, result)
}
