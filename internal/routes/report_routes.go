package routes

import (
	"ambasphere-backend/internal/handler"
	"ambasphere-backend/internal/middleware"
	"ambasphere-backend/internal/model"
	"ambasphere-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupReportRoutes(app *fiber.App, db *gorm.DB) {
	hdl := handler.NewReportHandler(
		repository.NewReportRepository(db),
		repository.NewStaffRepository(db),
		repository.NewHandsetRepository(db),
		repository.NewContractRepository(db),
	)

	api := app.Group("/api/reports", middleware.Auth, middleware.Role(model.RoleHR, model.RoleFinance))
	api.Get("/summary", hdl.Summary)
	api.Get("/staff-by-department", hdl.StaffByDepartment)
	api.Get("/monthly-handsets", hdl.MonthlyHandsetRequests)
	api.Get("/monthly-contracts", hdl.MonthlyContracts)
	api.Get("/handset-spend", hdl.HandsetSpendByDepartment)
	api.Get("/package-utilization", hdl.PackageUtilization)
}
