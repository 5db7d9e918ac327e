package routes

import (
	"ambasphere-backend/internal/handler"
	"ambasphere-backend/internal/middleware"
	"ambasphere-backend/internal/model"
	"ambasphere-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupEventRoutes(app *fiber.App, db *gorm.DB) {
	repo := repository.NewEventRepository(db)
	hdl := handler.NewEventHandler(repo)

	api := app.Group("/api/events", middleware.Auth)
	api.Get("/", hdl.GetAll)
	api.Get("/:id", hdl.GetByID)
	api.Post("/", middleware.Role(model.RoleHR), hdl.Create)
	api.Put("/:id", middleware.Role(model.RoleHR), hdl.Update)
	api.Delete("/:id", middleware.Role(model.RoleHR), hdl.Delete)
}
