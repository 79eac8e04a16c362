package controllers

import (
	"errors"
	"strconv"
	"time"

	"tourlms/database"
	"tourlms/middleware"
	courseModels "tourlms/models/course"
	"tourlms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errAlreadyEnrolled = errors.New("already enrolled")

// EnrollInCourse enrolls the caller in a published course
func EnrollInCourse(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	key := c.Locals("courseKey").(string)

	var enrollment courseModels.Enrollment
	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		// the row lock serializes enrollments of one course
		course, err := findPublishedCourse(tx.Clauses(clause.Locking{Strength: "UPDATE"}), key)
		if err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&courseModels.Enrollment{}).
			Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, course.ID, false).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 || course.HasStudent(user.ID) {
			return errAlreadyEnrolled
		}

		modules, err := courseModules(tx, course.ID)
		if err != nil {
			return err
		}
		progress := initialProgress(modules)
		_, next := summarize(progress)

		enrollment = courseModels.Enrollment{
			UserID:         user.ID,
			CourseID:       course.ID,
			Status:         courseModels.EnrollmentEnrolled,
			NextModule:     next,
			ModuleProgress: datatypes.NewJSONType(progress),
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}

		course.Enrolled++
		course.EnrolledStudents = append(course.EnrolledStudents, user.ID)
		if err := tx.Model(&course).Updates(map[string]interface{}{
			"enrolled":          gorm.Expr("enrolled + ?", 1),
			"enrolled_students": course.EnrolledStudents,
		}).Error; err != nil {
			return err
		}

		enrollment.Course = course
		return nil
	})

	switch {
	case errors.Is(err, errCourseNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not active!", nil)
	case errors.Is(err, errAlreadyEnrolled), errors.Is(err, gorm.ErrDuplicatedKey):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
	case err != nil:
		utils.Log.Error().Err(err).Uint("userId", user.ID).Str("courseKey", key).Msg("enroll")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	utils.Log.Info().Uint("userId", user.ID).Str("courseKey", key).Msg("enrolled")
	utils.SendAsync(utils.EnrollmentEmail(user.Email, user.Name, enrollment.Course.Title))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", toEnrolledCourse(enrollment))
}

// SubscribeToNotifications opts an enrolled learner in to course notifications
func SubscribeToNotifications(c *fiber.Ctx) error {
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
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to subscribe!", nil)
	}

	var enrolled int64
	if err := db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, course.ID, false).
		Count(&enrolled).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to subscribe!", nil)
	}
	if enrolled == 0 {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	subscription := courseModels.NotificationSubscription{UserID: user.ID, CourseID: course.ID, IsActive: true}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_active", "updated_at"}),
	}).Create(&subscription).Error; err != nil {
		utils.Log.Error().Err(err).Uint("userId", user.ID).Str("courseKey", key).Msg("subscribe")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to subscribe!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscribed to course notifications.", fiber.Map{
		"courseKey": key,
		"isActive":  true,
	})
}

// MarkContentComplete records a finished content item and refreshes the progress summary
func MarkContentComplete(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	key := c.Locals("courseKey").(string)
	contentID := strconv.FormatUint(uint64(c.Locals("contentID").(uint)), 10)
	db := database.Database.Db

	course, err := findPublishedCourse(db, key)
	if errors.Is(err, errCourseNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, course.ID, false).
		First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	now := time.Now()
	progress := enrollment.ModuleProgress.Data()
	found := false
	for i := range progress {
		for j := range progress[i].ContentProgress {
			cp := &progress[i].ContentProgress[j]
			if cp.ContentID == contentID {
				cp.Completed = true
				cp.LastAccessedAt = &now
				found = true
			}
		}
	}
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found in this course!", nil)
	}

	percent, next := summarize(progress)
	enrollment.ModuleProgress = datatypes.NewJSONType(progress)
	enrollment.Progress = percent
	enrollment.NextModule = next
	enrollment.LastAccessedAt = &now
	enrollment.Status = statusFor(percent)
	if percent >= 100 && enrollment.CompletedAt == nil {
		enrollment.CompletedAt = &now
	}

	if err := db.Model(&enrollment).Select(
		"module_progress", "progress", "next_module", "last_accessed_at", "status", "completed_at",
	).Updates(&enrollment).Error; err != nil {
		utils.Log.Error().Err(err).Uint("userId", user.ID).Str("courseKey", key).Msg("save progress")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	enrollment.Course = course
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content marked as complete.", toEnrolledCourse(enrollment))
}
