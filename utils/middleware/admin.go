package middleware

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/devlaunch/academy-api/database"
	"github.com/devlaunch/academy-api/model"
	"github.com/devlaunch/academy-api/utils/response"
)

// AdminAuditLog creates an audit log entry for admin actions. It must run
// after the auth middleware so the admin user is available in the context.
func AdminAuditLog(store database.Storage, action, resource string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		adminUser, ok := c.Locals("user").(*model.User)
		if !ok || adminUser == nil {
			return response.Unauthorized(c, "Authentication required")
		}

		db := store.DB()

		// Parse resource ID from params if available
		var resourceID uint
		if id := c.Params("id"); id != "" {
			if parsedID, err := strconv.ParseUint(id, 10, 32); err == nil {
				resourceID = uint(parsedID)
			}
		}

		var oldValue interface{}
		var newValue interface{}

		// Capture request body for "new value" tracking
		if c.Method() == "POST" || c.Method() == "PUT" {
			body := c.Body()
			if len(body) > 0 {
				json.Unmarshal(body, &newValue)
			}
		}

		// Snapshot the existing record before it is mutated or deleted
		if resourceID > 0 && (c.Method() == "DELETE" || c.Method() == "PUT") {
			switch resource {
			case "users":
				var user model.User
				if err := db.First(&user, resourceID).Error; err == nil {
					oldValue = user.Public()
				}
			case "courses":
				var course model.Course
				if err := db.First(&course, resourceID).Error; err == nil {
					oldValue = course
				}
			case "settings":
				var setting model.AppSetting
				if err := db.First(&setting, resourceID).Error; err == nil {
					oldValue = setting
				}
			}
		}

		// Fiber contexts are recycled after the handler returns, so capture
		// everything needed for the log row before spawning the writer.
		auditLog := model.AdminAuditLog{
			AdminID:     adminUser.ID,
			Action:      action,
			Resource:    resource,
			ResourceID:  resourceID,
			IPAddress:   c.IP(),
			UserAgent:   c.Get("User-Agent"),
			Description: c.Method() + " " + c.Path(),
		}

		err := c.Next()

		go func() {
			oldValueJSON, _ := json.Marshal(oldValue)
			newValueJSON, _ := json.Marshal(newValue)
			auditLog.OldValue = string(oldValueJSON)
			auditLog.NewValue = string(newValueJSON)

			db.Create(&auditLog)
		}()

		return err
	}
}
