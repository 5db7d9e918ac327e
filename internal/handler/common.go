package handler

import (
	"errors"
	"fmt"
	"time"

	"ambasphere-backend/config"

	"github.com/gofiber/fiber/v2"
)

// internalError hides database details from clients in production while
// keeping them visible during development.
func internalError(c *fiber.Ctx, err error, fallback string) error {
	message := fallback
	if !config.IsProduction() && err != nil {
		message = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
}

// parseDate accepts the two date formats clients send: RFC3339 timestamps and
// plain YYYY-MM-DD dates.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", value)
}
