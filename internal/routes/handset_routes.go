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

func SetupHandsetRoutes(app *fiber.App, db *gorm.DB, notifier *service.Notifier) {
	handsets := repository.NewHandsetRepository(db)
	staff := repository.NewStaffRepository(db)

	hdl := handler.NewHandsetHandler(handsets, staff, notifier)
	workflow := handler.NewHandsetWorkflowHandler(handsets, staff, notifier)
	dashboard := handler.NewHandsetDashboardHandler(handsets)

	api := app.Group("/api/handsets", middleware.Auth)

	// Requests
	api.Post("/", hdl.Create)
	api.Get("/my", hdl.GetMine)
	api.Get("/my-reserved", dashboard.MyReserved)
	api.Get("/allocation-summary", hdl.AllocationSummary)
	api.Get("/", middleware.Role(model.RoleHR, model.RoleFinance, model.RoleRetail, model.RoleWarehouse), hdl.GetAll)
	api.Get("/employee/:code", middleware.Role(model.RoleHR), hdl.GetByEmployee)

	// Department work queues
	api.Get("/pending-verifications", middleware.Role(model.RoleHR, model.RoleFinance), dashboard.PendingVerifications)
	api.Get("/pending-approvals", middleware.Role(model.RoleHR, model.RoleFinance), dashboard.PendingApprovals)
	api.Get("/renewal-verifications", middleware.Role(model.RoleHR, model.RoleFinance), dashboard.RenewalVerifications)
	api.Get("/renewal-due-dates", middleware.Role(model.RoleHR, model.RoleFinance), dashboard.RenewalDueDates)
	api.Get("/control-card-queue", middleware.Role(model.RoleRetail, model.RoleWarehouse), dashboard.ControlCardQueue)
	api.Get("/reservation-queue", middleware.Role(model.RoleRetail, model.RoleWarehouse), dashboard.ReservationQueue)
	api.Get("/retail-allocations", middleware.Role(model.RoleRetail), dashboard.RetailAllocations)
	api.Get("/pending-payments", middleware.Role(model.RoleFinance), dashboard.PendingPayments)
	api.Get("/asset-code-queue", middleware.Role(model.RoleFinance), dashboard.AssetCodeQueue)
	api.Get("/mr-queue", middleware.Role(model.RoleWarehouse, model.RoleRetail), dashboard.MRQueue)

	api.Get("/:id", hdl.GetByID)
	api.Put("/:id", hdl.Update)
	api.Delete("/:id", hdl.Delete)
	api.Put("/:id/status", middleware.Role(model.RoleAdmin), hdl.UpdateStatus)

	// Workflow steps, each gated to the department that performs it
	api.Put("/:id/verify-probation", middleware.Role(model.RoleHR), workflow.VerifyProbation)
	api.Put("/:id/verify-renewal", middleware.Role(model.RoleFinance), workflow.VerifyRenewal)
	api.Put("/:id/reserve", middleware.Role(model.RoleRetail), workflow.Reserve)
	api.Put("/:id/imei", middleware.Role(model.RoleWarehouse, model.RoleRetail), workflow.IssueIMEI)
	api.Put("/:id/share-imei", middleware.Role(model.RoleWarehouse, model.RoleRetail), workflow.ShareIMEIWithAdmin)
	api.Put("/:id/confirm-payment", middleware.Role(model.RoleFinance), workflow.ConfirmPayment)
	api.Put("/:id/asset-code", middleware.Role(model.RoleFinance), workflow.IssueFixedAssetCode)
	api.Put("/:id/mr-number", middleware.Role(model.RoleWarehouse), workflow.AssignMRNumber)
	api.Get("/:id/control-card", middleware.Role(model.RoleRetail, model.RoleWarehouse), workflow.GetControlCardData)
	api.Put("/:id/control-card", middleware.Role(model.RoleRetail), workflow.PrintControlCard)
	api.Put("/:id/collection-proof", middleware.Role(model.RoleRetail), workflow.UploadCollectionProof)
	api.Put("/:id/reject", middleware.Role(model.RoleHR, model.RoleFinance), workflow.Reject)
}
