package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ContentProgress tracks one content item inside an enrollment
type ContentProgress struct {
	ContentID      string     `json:"contentId"`
	Completed      bool       `json:"completed"`
	LastAccessedAt *time.Time `json:"lastAccessedAt,omitempty"`
}

// ModuleProgress tracks the contents of one module, in module order
type ModuleProgress struct {
	ModuleID        uint              `json:"moduleId"`
	Title           string            `json:"title"`
	ContentProgress []ContentProgress `json:"contentProgress"`
}

// Enrollment tracks a user's enrollment in a course with progress
type Enrollment struct {
	gorm.Model
	UserID            uint                                 `json:"user_id" gorm:"uniqueIndex:idx_user_course_enrollment;not null"`
	CourseID          uint                                 `json:"course_id" gorm:"uniqueIndex:idx_user_course_enrollment;index;not null"`
	Course            Course                               `json:"course"`
	Status            string                               `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED
	Progress          int                                  `json:"progress" gorm:"default:0"`        // Completion percentage (0-100)
	NextModule        string                               `json:"next_module"`
	CertificateIssued bool                                 `json:"certificate_issued" gorm:"default:false"`
	LastAccessedAt    *time.Time                           `json:"last_accessed_at"`
	ModuleProgress    datatypes.JSONType[[]ModuleProgress] `json:"module_progress"`
	CompletedAt       *time.Time                           `json:"completed_at"`
	IsDeleted         bool                                 `json:"-" gorm:"default:false"`
}

const (
	EnrollmentEnrolled   = "ENROLLED"
	EnrollmentInProgress = "IN_PROGRESS"
	EnrollmentCompleted  = "COMPLETED"
)
