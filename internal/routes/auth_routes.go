package routes

import (
	"ambasphere-backend/internal/handler"
	"ambasphere-backend/internal/middleware"
	"ambasphere-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	repo := repository.NewStaffRepository(db)
	hdl := handler.NewAuthHandler(repo)

	app.Post("/api/login", hdl.Login)
	app.Post("/api/refresh-token", hdl.RefreshToken)

	api := app.Group("/api/auth", middleware.Auth)
	api.Get("/profile", hdl.GetProfile)
	api.Put("/password", hdl.ChangePassword)
}
