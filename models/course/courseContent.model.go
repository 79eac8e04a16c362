package course

import (
	"strconv"

	"gorm.io/gorm"
)

// CourseContent represents one item within a module
type CourseContent struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	ModuleID    uint   `json:"module_id" gorm:"index;not null"`
	Title       string `json:"title"`
	ContentType string `json:"content_type" gorm:"default:'TEXT'"` // TEXT, VIDEO, QUIZ
	Body        string `json:"body" gorm:"type:text"`
	VideoURL    string `json:"video_url"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"` // Order within module
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}

// ProgressID is the identifier used for this content in enrollment progress
func (c CourseContent) ProgressID() string {
	return strconv.FormatUint(uint64(c.ID), 10)
}
