package main

import (
	"fmt"
	"log"
	"time"

	"ambasphere-backend/config"
	"ambasphere-backend/internal/routes"
	"ambasphere-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	config.ConnectDB()

	app := fiber.New()

	app.Use(cors.New())
	app.Use(logger.New())

	// Signed control cards and collection proofs are served from here.
	app.Static("/uploads", "./uploads")

	notifier := service.NewNotifier(config.DB)

	routes.SetupAuthRoutes(app, config.DB)
	routes.SetupStaffRoutes(app, config.DB, notifier)
	routes.SetupPackageRoutes(app, config.DB)
	routes.SetupHandsetRoutes(app, config.DB, notifier)
	routes.SetupContractRoutes(app, config.DB, notifier)
	routes.SetupNotificationRoutes(app, config.DB)
	routes.SetupEventRoutes(app, config.DB)
	routes.SetupReportRoutes(app, config.DB)

	// Background workers: email delivery and renewal reminders.
	dispatcher := service.NewDispatcher(config.DB, service.NewMailer(), 30*time.Second)
	dispatcher.Start()
	defer dispatcher.Stop()

	scheduler := service.NewScheduler(config.DB, notifier)
	scheduler.Start()
	defer scheduler.Stop()

	port := config.GetEnv("PORT", "3000")
	log.Printf("Server listening on :%s", port)
	if err := app.Listen(fmt.Sprintf(":%s", port)); err != nil {
		log.Fatal(err)
	}
}
