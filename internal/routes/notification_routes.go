package routes

import (
	"ambasphere-backend/internal/handler"
	"ambasphere-backend/internal/middleware"
	"ambasphere-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupNotificationRoutes(app *fiber.App, db *gorm.DB) {
	repo := repository.NewNotificationRepository(db)
	hdl := handler.NewNotificationHandler(repo)

	api := app.Group("/api/notifications", middleware.Auth)
	api.Get("/", hdl.GetMine)
	api.Get("/unviewed-count", hdl.UnviewedCount)
	api.Put("/mark-all-viewed", hdl.MarkAllViewed)
	api.Put("/:id/viewed", hdl.MarkViewed)
	api.Delete("/:id", hdl.Delete)
}
