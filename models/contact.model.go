package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ContactUnread    = "unread"
	ContactRead      = "read"
	ContactResponded = "responded"
)

// ContactMessage is a contact form submission. The ID is a uuid in SQL
// stores and an ObjectID hex string in the mongo store.
type ContactMessage struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message" gorm:"type:text"`
	Status    string    `json:"status" gorm:"default:'unread';index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// IsValidContactStatus reports whether status is one of unread, read, responded
func IsValidContactStatus(status string) bool {
	switch status {
	case ContactUnread, ContactRead, ContactResponded:
		return true
	}
	return false
}
