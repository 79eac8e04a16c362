package main

import (
	"tourlms/config"
	"tourlms/database"
	authRoutes "tourlms/routers/authRoutes"
	contactRoutes "tourlms/routers/contactRoutes"
	courseRoutes "tourlms/routers/courseRoutes"
	"tourlms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// setupApp builds the Fiber app with every route group mounted
func setupApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   config.AppConfig.AppName,
		BodyLimit: 10 * 1024 * 1024, // thumbnails
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",  // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	contactRoutes.SetupContactRoutes(app)

	return app
}

func main() {
	config.LoadConfig()
	utils.Log = utils.NewLogger(config.AppConfig.IsDevelopment())

	database.ConnectDb()
	utils.InitMailer(config.AppConfig)

	scheduler, err := utils.InitializeContactDigestScheduler(
		config.AppConfig.ContactDigestCron,
		database.Database.Contacts,
		utils.Mail,
		config.AppConfig.AdminEmail,
	)
	if err != nil {
		utils.Log.Fatal().Err(err).Str("cron", config.AppConfig.ContactDigestCron).Msg("invalid contact digest schedule")
	}
	defer scheduler.Stop()

	app := setupApp()

	utils.Log.Info().Str("port", config.AppConfig.Port).Msg("server is running")
	if err := app.Listen(":" + config.AppConfig.Port); err != nil {
		utils.Log.Fatal().Err(err).Msg("server stopped")
	}
}
