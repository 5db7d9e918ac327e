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

func SetupContractRoutes(app *fiber.App, db *gorm.DB, notifier *service.Notifier) {
	hdl := handler.NewContractHandler(
		repository.NewContractRepository(db),
		repository.NewPackageRepository(db),
		repository.NewStaffRepository(db),
		notifier,
	)

	api := app.Group("/api/contracts", middleware.Auth)
	api.Post("/", hdl.Create)
	api.Get("/my", hdl.GetMine)
	api.Get("/", middleware.Role(model.RoleHR, model.RoleFinance), hdl.GetAll)
	api.Get("/:id", hdl.GetByID)
	api.Put("/:id/approve", middleware.Role(model.RoleHR), hdl.Approve)
	api.Put("/:id/reject", middleware.Role(model.RoleHR), hdl.Reject)
	api.Delete("/:id", hdl.Delete)
}
