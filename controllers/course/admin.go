package controllers

import (
	"errors"
	"time"

	"tourlms/database"
	"tourlms/middleware"
	"tourlms/models"
	courseModels "tourlms/models/course"
	"tourlms/utils"
	courseValidator "tourlms/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const thumbnailDir = "./public/uploads/thumbnails"

var errForbidden = errors.New("forbidden")

// findManagedCourse loads a course by key that the caller may edit
func findManagedCourse(db *gorm.DB, user models.User, key string) (courseModels.Course, error) {
	var course courseModels.Course
	err := db.Where(map[string]interface{}{"key": key, "is_deleted": false}).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return course, errCourseNotFound
	}
	if err != nil {
		return course, err
	}
	if !canManage(user, course) {
		return course, errForbidden
	}
	return course, nil
}

func managedCourseError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errCourseNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	case errors.Is(err, errForbidden):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only manage your own courses!", nil)
	default:
		utils.Log.Error().Err(err).Msg("load managed course")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Server error!", nil)
	}
}

// AdminCreateCourse creates a draft course owned by the caller
func AdminCreateCourse(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)
	reqData := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)

	thumbnail := reqData.ThumbnailURL
	if file, err := c.FormFile("thumbnail"); err == nil {
		name, err := utils.SaveUploadedFile(file, thumbnailDir)
		if err != nil {
			utils.Log.Error().Err(err).Msg("save thumbnail")
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload thumbnail!", nil)
		}
		thumbnail = utils.GetFileURL(name)
	}

	course := courseModels.Course{
		Key:              utils.GenerateCourseKey(),
		Title:            reqData.Title,
		Description:      reqData.Description,
		Category:         reqData.Category,
		FacilitatorID:    user.ID,
		FacilitatorName:  user.Name,
		ThumbnailURL:     thumbnail,
		EnrolledStudents: datatypes.JSONSlice[uint]{},
		Status:           "DRAFT",
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		utils.Log.Error().Err(err).Uint("userId", user.ID).Msg("create course")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AdminAddModule appends a module with its contents and extends existing enrollments
func AdminAddModule(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)
	key := c.Locals("courseKey").(string)
	reqData := c.Locals("validatedModule").(*courseValidator.CreateModuleRequest)

	var module courseModels.Module
	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		course, err := findManagedCourse(tx, user, key)
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&courseModels.Module{}).
			Where("course_id = ? AND is_deleted = ?", course.ID, false).
			Count(&count).Error; err != nil {
			return err
		}

		module = courseModels.Module{CourseID: course.ID, Title: reqData.Title, OrderIndex: int(count)}
		for i, item := range reqData.Contents {
			module.Contents = append(module.Contents, courseModels.CourseContent{
				CourseID:    course.ID,
				Title:       item.Title,
				ContentType: item.ContentType,
				Body:        item.Body,
				VideoURL:    item.VideoURL,
				OrderIndex:  i,
			})
		}
		if err := tx.Create(&module).Error; err != nil {
			return err
		}

		var enrollments []courseModels.Enrollment
		if err := tx.Where("course_id = ? AND is_deleted = ?", course.ID, false).Find(&enrollments).Error; err != nil {
			return err
		}
		for _, e := range enrollments {
			progress := append(e.ModuleProgress.Data(), moduleProgressFor(module))
			percent, next := summarize(progress)
			if err := tx.Model(&e).Updates(map[string]interface{}{
				"module_progress": datatypes.NewJSONType(progress),
				"progress":        percent,
				"next_module":     next,
				"status":          statusFor(percent),
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return managedCourseError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module added successfully!", module)
}

// AdminPublishCourse makes a course visible in the catalog
func AdminPublishCourse(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)
	key := c.Locals("courseKey").(string)

	db := database.Database.Db
	course, err := findManagedCourse(db, user, key)
	if err != nil {
		return managedCourseError(c, err)
	}

	course.IsPublished = true
	course.Status = "ACTIVE"
	if err := db.Model(&course).Select("is_published", "status").Updates(&course).Error; err != nil {
		utils.Log.Error().Err(err).Str("courseKey", key).Msg("publish course")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", course)
}

// FacilitatorCourses lists the caller's own courses with enrollment counts
func FacilitatorCourses(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var courses []courseModels.Course
	if err := database.Database.Db.
		Where("facilitator_id = ? AND is_deleted = ?", user.ID, false).
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		utils.Log.Error().Err(err).Uint("userId", user.ID).Msg("list facilitator courses")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully.", courses)
}

// AdminIssueCertificate issues a completion certificate to an enrolled learner
func AdminIssueCertificate(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)
	key := c.Locals("courseKey").(string)
	learnerID := c.Locals("certificateUserID").(uint)

	db := database.Database.Db
	course, err := findManagedCourse(db, user, key)
	if err != nil {
		return managedCourseError(c, err)
	}

	var learner models.User
	if err := db.Where("id = ? AND is_deleted = ?", learnerID, false).First(&learner).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Learner not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", learnerID, course.ID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Learner is not enrolled in this course!", nil)
	}
	if enrollment.CertificateIssued {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate already issued!", nil)
	}

	now := time.Now()
	certificate := courseModels.Certificate{
		UserID:            learnerID,
		CourseID:          course.ID,
		EnrollmentID:      enrollment.ID,
		CertificateNumber: utils.GenerateCertificateNumber(now),
		IssuedBy:          user.ID,
		IssuedAt:          now,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&certificate).Error; err != nil {
			return err
		}
		return tx.Model(&enrollment).Update("certificate_issued", true).Error
	})
	if err != nil {
		utils.Log.Error().Err(err).Uint("learnerId", learnerID).Str("courseKey", key).Msg("issue certificate")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	utils.SendAsync(utils.CertificateEmail(learner.Email, learner.Name, course.Title, certificate.CertificateNumber))

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate issued successfully!", certificate)
}

// AdminDashboardStats returns platform totals for the admin panel
func AdminDashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers, totalStudents, totalFacilitators, totalCourses, totalPublished, totalEnrollments, totalCertificates int64
	counts := []struct {
		query *gorm.DB
		dest  *int64
	}{
		{db.Model(&models.User{}).Where("is_deleted = ?", false), &totalUsers},
		{db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleStudent, false), &totalStudents},
		{db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleFacilitator, false), &totalFacilitators},
		{db.Model(&courseModels.Course{}).Where("is_deleted = ?", false), &totalCourses},
		{db.Model(&courseModels.Course{}).Where("is_published = ? AND is_deleted = ?", true, false), &totalPublished},
		{db.Model(&courseModels.Enrollment{}).Where("is_deleted = ?", false), &totalEnrollments},
		{db.Model(&courseModels.Certificate{}).Where("is_deleted = ?", false), &totalCertificates},
	}
	for _, q := range counts {
		if err := q.query.Count(q.dest).Error; err != nil {
			utils.Log.Error().Err(err).Msg("admin stats")
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stats!", nil)
		}
	}

	var recent []courseModels.Enrollment
	if err := db.Where("is_deleted = ?", false).Preload("Course").
		Order("created_at desc").Limit(5).Find(&recent).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stats!", nil)
	}

	unread, err := database.Database.Contacts.CountByStatus(c.UserContext(), models.ContactUnread)
	if err != nil {
		utils.Log.Warn().Err(err).Msg("count unread contacts")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully.", fiber.Map{
		"totalUsers":        totalUsers,
		"totalStudents":     totalStudents,
		"totalFacilitators": totalFacilitators,
		"totalCourses":      totalCourses,
		"publishedCourses":  totalPublished,
		"totalEnrollments":  totalEnrollments,
		"totalCertificates": totalCertificates,
		"recentEnrollments": recent,
		"unreadContacts":    unread,
	})
}
