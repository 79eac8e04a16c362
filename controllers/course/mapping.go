package controllers

import (
	"tourlms/models"
	courseModels "tourlms/models/course"
	"tourlms/services/dashboard"
)

func toCatalogCourse(course courseModels.Course, userID uint) dashboard.Course {
	students := make([]uint, len(course.EnrolledStudents))
	copy(students, course.EnrolledStudents)

	return dashboard.Course{
		ID:               course.ID,
		Key:              course.Key,
		Title:            course.Title,
		Description:      course.Description,
		Category:         course.Category,
		Thumbnail:        course.ThumbnailURL,
		FacilitatorName:  course.FacilitatorName,
		Enrolled:         course.Enrolled,
		EnrolledStudents: students,
		IsEnrolled:       course.HasStudent(userID),
	}
}

// toEnrolledCourse expects enrollment.Course to be loaded
func toEnrolledCourse(enrollment courseModels.Enrollment) dashboard.EnrolledCourse {
	stored := enrollment.ModuleProgress.Data()
	modules := make([]dashboard.ModuleProgress, len(stored))
	for i, m := range stored {
		contents := make([]dashboard.ContentProgress, len(m.ContentProgress))
		for j, cp := range m.ContentProgress {
			contents[j] = dashboard.ContentProgress{
				ContentID:      cp.ContentID,
				Completed:      cp.Completed,
				LastAccessedAt: cp.LastAccessedAt,
			}
		}
		modules[i] = dashboard.ModuleProgress{ModuleID: m.ModuleID, Title: m.Title, ContentProgress: contents}
	}

	course := toCatalogCourse(enrollment.Course, enrollment.UserID)
	course.IsEnrolled = true

	return dashboard.EnrolledCourse{
		Course:            course,
		Progress:          dashboard.ClampProgress(enrollment.Progress),
		NextModule:        enrollment.NextModule,
		CertificateIssued: enrollment.CertificateIssued,
		LastAccessedAt:    enrollment.LastAccessedAt,
		Enrollment:        dashboard.Enrollment{ModuleProgress: modules},
	}
}

func toLearner(user models.User) dashboard.Learner {
	return dashboard.Learner{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}
}

// initialProgress lays out one unfinished entry per content item, in module order
func initialProgress(modules []courseModels.Module) []courseModels.ModuleProgress {
	progress := make([]courseModels.ModuleProgress, 0, len(modules))
	for _, m := range modules {
		progress = append(progress, moduleProgressFor(m))
	}
	return progress
}

func moduleProgressFor(m courseModels.Module) courseModels.ModuleProgress {
	contents := make([]courseModels.ContentProgress, 0, len(m.Contents))
	for _, content := range m.Contents {
		contents = append(contents, courseModels.ContentProgress{ContentID: content.ProgressID()})
	}
	return courseModels.ModuleProgress{ModuleID: m.ID, Title: m.Title, ContentProgress: contents}
}

// summarize returns the completion percentage and the title of the first
// module that still has unfinished content
func summarize(progress []courseModels.ModuleProgress) (int, string) {
	total, done := 0, 0
	next := ""
	for _, m := range progress {
		for _, cp := range m.ContentProgress {
			total++
			if cp.Completed {
				done++
			} else if next == "" {
				next = m.Title
			}
		}
	}
	if total == 0 {
		return 0, next
	}
	return dashboard.ClampProgress(done * 100 / total), next
}

func statusFor(percent int) string {
	switch {
	case percent >= 100:
		return courseModels.EnrollmentCompleted
	case percent > 0:
		return courseModels.EnrollmentInProgress
	default:
		return courseModels.EnrollmentEnrolled
	}
}

func canManage(user models.User, course courseModels.Course) bool {
	return user.Role == models.RoleAdmin || course.FacilitatorID == user.ID
}
