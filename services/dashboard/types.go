// Package dashboard derives the learner dashboard from enrolled courses and the catalog.
// Everything here is pure: callers pass the data and the reference time.
package dashboard

import "time"

// Course is a catalog entry as seen by a learner.
type Course struct {
	ID               uint   `json:"id"`
	Key              string `json:"key"`
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	Category         string `json:"category"`
	Thumbnail        string `json:"thumbnail"`
	FacilitatorName  string `json:"facilitatorName"`
	Enrolled         int    `json:"enrolled"`
	EnrolledStudents []uint `json:"enrolledStudents"`
	IsEnrolled       bool   `json:"isEnrolled"`
}

// ContentProgress is the learner's state for one content item.
type ContentProgress struct {
	ContentID      string     `json:"contentId"`
	Completed      bool       `json:"completed"`
	LastAccessedAt *time.Time `json:"lastAccessedAt,omitempty"`
}

// ModuleProgress groups content progress by module, in module order.
type ModuleProgress struct {
	ModuleID        uint              `json:"moduleId"`
	Title           string            `json:"title,omitempty"`
	ContentProgress []ContentProgress `json:"contentProgress"`
}

// Enrollment is the nested progress record of an enrolled course.
type Enrollment struct {
	ModuleProgress []ModuleProgress `json:"moduleProgress"`
}

// EnrolledCourse is a catalog course with the learner's overlay.
type EnrolledCourse struct {
	Course
	Progress          int        `json:"progress"`
	NextModule        string     `json:"nextModule,omitempty"`
	CertificateIssued bool       `json:"certificateIssued"`
	LastAccessedAt    *time.Time `json:"lastAccessedAt,omitempty"`
	Enrollment        Enrollment `json:"enrollment"`
}

// Learner identifies the signed-in user.
type Learner struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Profile is the authoritative learner state returned by the server.
type Profile struct {
	User            Learner          `json:"user"`
	Courses         []Course         `json:"courses"`
	EnrolledCourses []EnrolledCourse `json:"enrolledCourses"`
}

// ClampProgress keeps a progress percentage within [0,100].
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
