package courseRoutes

import (
	controllers "tourlms/controllers/course"
	"tourlms/middleware"
	validators "tourlms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all learner-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	userGroup := app.Group("/course", middleware.JWTMiddleware)

	// Catalog
	userGroup.Get("/list", validators.CourseList(), controllers.GetAllCourses)
	userGroup.Get("/:key", validators.CourseKey(), controllers.GetCourseDetails)

	// Enrollment
	userGroup.Post("/:key/enroll", validators.CourseKey(), controllers.EnrollInCourse)
	userGroup.Post("/:key/notifications/subscribe", validators.CourseKey(), controllers.SubscribeToNotifications)

	// Progress
	userGroup.Post("/:key/content/:content_id/complete", validators.MarkContentComplete(), controllers.MarkContentComplete)

	// Learner profile and dashboard
	profileGroup := app.Group("/user", middleware.JWTMiddleware)
	profileGroup.Get("/profile", controllers.GetUserProfile)
	profileGroup.Get("/dashboard", validators.DashboardQuery(), controllers.GetUserDashboard)
}
