package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleStudent     = "STUDENT"
	RoleFacilitator = "FACILITATOR"
	RoleAdmin       = "ADMIN"
)

type User struct {
	gorm.Model
	Name      string     `json:"name" gorm:"default:''"`
	Email     string     `json:"email" gorm:"unique;not null"`
	Role      string     `json:"role" gorm:"default:'STUDENT'"` // STUDENT, FACILITATOR, ADMIN
	Password  string     `json:"-" gorm:"not null"`
	LastLogin *time.Time `json:"last_login"`
	IsDeleted bool       `json:"-" gorm:"default:false"`
}
