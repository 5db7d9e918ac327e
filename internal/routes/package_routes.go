package routes

import (
	"ambasphere-backend/internal/handler"
	"ambasphere-backend/internal/middleware"
	"ambasphere-backend/internal/model"
	"ambasphere-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupPackageRoutes(app *fiber.App, db *gorm.DB) {
	repo := repository.NewPackageRepository(db)
	hdl := handler.NewPackageHandler(repo)

	api := app.Group("/api/packages", middleware.Auth)
	api.Get("/", hdl.GetActive)
	api.Get("/:id", hdl.GetByID)

	admin := app.Group("/api/admin/packages", middleware.Auth, middleware.Role(model.RoleHR))
	admin.Get("/", hdl.GetAll)
	admin.Post("/", hdl.Create)
	admin.Put("/:id", hdl.Update)
	admin.Delete("/:id", hdl.Delete)
}
