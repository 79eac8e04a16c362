package contactRoutes

import (
	contactControllers "tourlms/controllers/contact"
	"tourlms/middleware"
	"tourlms/models"
	contactValidators "tourlms/validators/contact"

	"github.com/gofiber/fiber/v2"
)

func SetupContactRoutes(app *fiber.App) {
	contactGroup := app.Group("/api/contact")

	// Public form
	contactGroup.Post("/", contactValidators.SubmitContact(), contactControllers.SubmitContact)

	// Admin inbox
	contactGroup.Get("/", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), contactValidators.ContactList(), contactControllers.ListContacts)
	contactGroup.Patch("/:id/status", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), contactValidators.UpdateContactStatus(), contactControllers.UpdateContactStatus)
}
