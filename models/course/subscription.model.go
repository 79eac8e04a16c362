package course

import "gorm.io/gorm"

// NotificationSubscription is a learner's opt-in to course push notifications
type NotificationSubscription struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"uniqueIndex:idx_user_course_sub;not null"`
	CourseID uint `json:"course_id" gorm:"uniqueIndex:idx_user_course_sub;not null"`
	IsActive bool `json:"is_active" gorm:"default:true"`
}
