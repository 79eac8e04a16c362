package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course represents a learning course in the catalog
type Course struct {
	gorm.Model
	Key              string                    `json:"key" gorm:"uniqueIndex;size:64;not null"`
	Title            string                    `json:"title"`
	Description      string                    `json:"description"`
	Category         string                    `json:"category" gorm:"index"`
	FacilitatorID    uint                      `json:"facilitator_id" gorm:"index"`
	FacilitatorName  string                    `json:"facilitator_name"`
	ThumbnailURL     string                    `json:"thumbnail_url"`
	Enrolled         int                       `json:"enrolled" gorm:"default:0"`
	EnrolledStudents datatypes.JSONSlice[uint] `json:"enrolled_students"`
	Status           string                    `json:"status" gorm:"default:'DRAFT'"` // DRAFT, ACTIVE
	IsPublished      bool                      `json:"is_published" gorm:"default:false"`
	IsDeleted        bool                      `json:"-" gorm:"default:false"`
}

// HasStudent reports whether userID is in the enrolled-learner list
func (c Course) HasStudent(userID uint) bool {
	for _, id := range c.EnrolledStudents {
		if id == userID {
			return true
		}
	}
	return false
}
