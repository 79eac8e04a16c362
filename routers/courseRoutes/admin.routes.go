package courseRoutes

import (
	controllers "tourlms/controllers/course"
	"tourlms/middleware"
	"tourlms/models"
	validators "tourlms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up facilitator and admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware)
	staff := middleware.RequireRole(models.RoleFacilitator, models.RoleAdmin)

	adminGroup.Post("/course/create", staff, validators.CreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Post("/course/:key/module", staff, validators.CreateModule(), controllers.AdminAddModule)
	adminGroup.Post("/course/:key/publish", staff, validators.CourseKey(), controllers.AdminPublishCourse)
	adminGroup.Post("/course/:key/certificate/:user_id", staff, validators.IssueCertificate(), controllers.AdminIssueCertificate)

	adminGroup.Get("/dashboard/stats", middleware.RequireRole(models.RoleAdmin), controllers.AdminDashboardStats)

	facilitatorGroup := app.Group("/facilitator", middleware.JWTMiddleware, middleware.RequireRole(models.RoleFacilitator))
	facilitatorGroup.Get("/courses", controllers.FacilitatorCourses)
}
