package middleware

import (
	"ambasphere-backend/internal/model"

	"github.com/gofiber/fiber/v2"
)

// Role restricts a route to the given role IDs. Admin always passes.
func Role(allowedRoles ...uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleID := RoleID(c)
		if roleID == 0 {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied: role missing from token"})
		}

		if roleID == model.RoleAdmin {
			return c.Next()
		}
		for _, role := range allowedRoles {
			if role == roleID {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied: insufficient role"})
	}
}
