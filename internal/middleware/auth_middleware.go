package middleware

import (
	"strings"

	"ambasphere-backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func Auth(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing authorization token"})
	}

	tokenString := strings.Replace(authHeader, "Bearer ", "", 1)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return config.TokenKey(), nil
	})

	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	// Claims go into the request context so handlers know who is acting.
	claims := token.Claims.(jwt.MapClaims)
	c.Locals("employee_code", claims["employee_code"])
	c.Locals("full_name", claims["full_name"])
	c.Locals("role_id", claims["role_id"])

	return c.Next()
}

// EmployeeCode reads the authenticated employee code set by Auth.
func EmployeeCode(c *fiber.Ctx) string {
	code, _ := c.Locals("employee_code").(string)
	return code
}

// FullName reads the authenticated display name set by Auth.
func FullName(c *fiber.Ctx) string {
	name, _ := c.Locals("full_name").(string)
	return name
}

// RoleID reads the authenticated role set by Auth. JWT numbers decode as
// float64, so convert back to the role constant type.
func RoleID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("role_id").(float64); ok {
		return uint(id)
	}
	return 0
}
