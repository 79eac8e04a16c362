package controllers

import (
	"errors"

	"tourlms/database"
	"tourlms/middleware"
	"tourlms/models"
	courseModels "tourlms/models/course"
	"tourlms/services/dashboard"
	"tourlms/utils"
	courseValidator "tourlms/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var errCourseNotFound = errors.New("course not found")

func currentUser(c *fiber.Ctx) (models.User, error) {
	var user models.User
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return user, gorm.ErrRecordNotFound
	}
	err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error
	return user, err
}

func findPublishedCourse(db *gorm.DB, key string) (courseModels.Course, error) {
	var course courseModels.Course
	err := db.Where(map[string]interface{}{"key": key, "is_deleted": false, "is_published": true}).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return course, errCourseNotFound
	}
	return course, err
}

func publishedCourses() *gorm.DB {
	return database.Database.Db.Model(&courseModels.Course{}).
		Where("is_deleted = ? AND is_published = ?", false, true).
		Order("created_at desc")
}

// GetAllCourses lists the published catalog with the caller's enrollment flag
func GetAllCourses(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, _ := c.Locals("validatedCourseList").(*courseValidator.PageRequest)

	var total int64
	if err := publishedCourses().Count(&total).Error; err != nil {
		utils.Log.Error().Err(err).Msg("count courses")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	query := publishedCourses()
	page, limit := 1, int(total)
	if reqData != nil && reqData.Page != nil && reqData.Limit != nil {
		page, limit = *reqData.Page, *reqData.Limit
		query = query.Offset((page - 1) * limit).Limit(limit)
	}

	var courses []courseModels.Course
	if err := query.Find(&courses).Error; err != nil {
		utils.Log.Error().Err(err).Msg("list courses")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	catalog := make([]dashboard.Course, len(courses))
	for i, course := range courses {
		catalog[i] = toCatalogCourse(course, user.ID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully.", fiber.Map{
		"courses": catalog,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// GetCourseDetails returns one published course with its modules and contents
func GetCourseDetails(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	key := c.Locals("courseKey").(string)

	db := database.Database.Db
	course, err := findPublishedCourse(db, key)
	if errors.Is(err, errCourseNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if err != nil {
		utils.Log.Error().Err(err).Str("courseKey", key).Msg("load course")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	modules, err := courseModules(db, course.ID)
	if err != nil {
		utils.Log.Error().Err(err).Str("courseKey", key).Msg("load modules")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully.", fiber.Map{
		"course":  toCatalogCourse(course, user.ID),
		"modules": modules,
	})
}

func courseModules(db *gorm.DB, courseID uint) ([]courseModels.Module, error) {
	var modules []courseModels.Module
	err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").
		Preload("Contents", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("order_index asc")
		}).
		Find(&modules).Error
	return modules, err
}
