package routes

import (
	"ambasphere-backend/internal/handler"
	"ambasphere-backend/internal/middleware"
	"ambasphere-backend/internal/model"
	"ambasphere-backend/internal/repository"
	"ambasphere-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupStaffRoutes(app *fiber.App, db *gorm.DB, notifier *service.Notifier) {
	repo := repository.NewStaffRepository(db)
	hdl := handler.NewStaffHandler(repo, notifier)

	api := app.Group("/api/staff", middleware.Auth, middleware.Role(model.RoleHR))
	api.Get("/", hdl.GetAll)
	api.Get("/:code", hdl.GetByCode)
	api.Post("/", hdl.Create)
	api.Put("/:code", hdl.Update)
	api.Delete("/:code", hdl.Deactivate)

	allocationHdl := handler.NewAllocationHandler(repository.NewAllocationRepository(db))
	allocations := app.Group("/api/allocations", middleware.Auth)
	allocations.Get("/", allocationHdl.GetAll)
	allocations.Get("/:id", allocationHdl.GetByID)
	allocations.Post("/", middleware.Role(model.RoleHR), allocationHdl.Create)
	allocations.Put("/:id", middleware.Role(model.RoleHR), allocationHdl.Update)
	allocations.Delete("/:id", middleware.Role(model.RoleHR), allocationHdl.Delete)
}
