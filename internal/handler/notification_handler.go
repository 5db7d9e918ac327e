package handler

import (
	"strconv"

	"ambasphere-backend/internal/middleware"
	"ambasphere-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	repo repository.NotificationRepository
}

func NewNotificationHandler(repo repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{repo: repo}
}

func (h *NotificationHandler) GetMine(c *fiber.Ctx) error {
	notifications, err := h.repo.GetByRecipient(middleware.EmployeeCode(c))
	if err != nil {
		return internalError(c, err, "Failed to fetch notifications")
	}

	return c.JSON(fiber.Map{
		"message": "Notifications retrieved",
		"data":    notifications,
	})
}

func (h *NotificationHandler) UnviewedCount(c *fiber.Ctx) error {
	count, err := h.repo.CountUnviewed(middleware.EmployeeCode(c))
	if err != nil {
		return internalError(c, err, "Failed to count notifications")
	}

	return c.JSON(fiber.Map{
		"message": "Unviewed count retrieved",
		"data":    fiber.Map{"Count": count},
	})
}

func (h *NotificationHandler) MarkViewed(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid notification ID"})
	}

	notification, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Notification not found"})
	}
	if notification.RecipientEmployeeCode != middleware.EmployeeCode(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Notification belongs to another employee"})
	}

	if err := h.repo.MarkViewed(uint(id)); err != nil {
		return internalError(c, err, "Failed to update notification")
	}

	return c.JSON(fiber.Map{"message": "Notification marked as viewed"})
}

func (h *NotificationHandler) MarkAllViewed(c *fiber.Ctx) error {
	if err := h.repo.MarkAllViewed(middleware.EmployeeCode(c)); err != nil {
		return internalError(c, err, "Failed to update notifications")
	}

	return c.JSON(fiber.Map{"message": "All notifications marked as viewed"})
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid notification ID"})
	}

	notification, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Notification not found"})
	}
	if notification.RecipientEmployeeCode != middleware.EmployeeCode(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Notification belongs to another employee"})
	}

	if err := h.repo.Delete(uint(id)); err != nil {
		return internalError(c, err, "Failed to delete notification")
	}

	return c.JSON(fiber.Map{"message": "Notification deleted"})
}
