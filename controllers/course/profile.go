package controllers

import (
	"time"

	"tourlms/database"
	"tourlms/middleware"
	courseModels "tourlms/models/course"
	"tourlms/services/dashboard"
	"tourlms/utils"

	"github.com/gofiber/fiber/v2"
)

// learnerState loads the published catalog and the learner's enrollments
func learnerState(userID uint) ([]dashboard.Course, []dashboard.EnrolledCourse, error) {
	var courses []courseModels.Course
	if err := publishedCourses().Find(&courses).Error; err != nil {
		return nil, nil, err
	}
	catalog := make([]dashboard.Course, len(courses))
	for i, course := range courses {
		catalog[i] = toCatalogCourse(course, userID)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Preload("Course").
		Order("created_at asc").
		Find(&enrollments).Error; err != nil {
		return nil, nil, err
	}
	enrolled := make([]dashboard.EnrolledCourse, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Course.IsDeleted {
			continue
		}
		enrolled = append(enrolled, toEnrolledCourse(e))
	}

	return catalog, enrolled, nil
}

// GetUserProfile returns the learner, the catalog and the enrolled courses
func GetUserProfile(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	catalog, enrolled, err := learnerState(user.ID)
	if err != nil {
		utils.Log.Error().Err(err).Uint("userId", user.ID).Msg("load profile")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully.", dashboard.Profile{
		User:            toLearner(user),
		Courses:         catalog,
		EnrolledCourses: enrolled,
	})
}

// GetUserDashboard renders the student dashboard for ?category=
func GetUserDashboard(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	category, _ := c.Locals("dashboardCategory").(string)

	catalog, enrolled, err := learnerState(user.ID)
	if err != nil {
		utils.Log.Error().Err(err).Uint("userId", user.ID).Msg("load dashboard")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard!", nil)
	}

	view := dashboard.Build(enrolled, catalog, category, time.Now())
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully.", view)
}
