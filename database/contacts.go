package database

import (
	"context"
	"errors"
	"fmt"

	"tourlms/models"

	"gorm.io/gorm"
)

// ErrContactNotFound is returned when no contact message has the given ID
var ErrContactNotFound = errors.New("contact message not found")

// ContactStore persists contact form submissions
type ContactStore interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	// List returns messages newest first. An empty status lists all of them.
	List(ctx context.Context, status string) ([]models.ContactMessage, error)
	UpdateStatus(ctx context.Context, id, status string) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type gormContactStore struct {
	db *gorm.DB
}

// NewGormContactStore stores contact messages in the SQL database
func NewGormContactStore(db *gorm.DB) ContactStore {
	return &gormContactStore{db: db}
}

func (s *gormContactStore) Create(ctx context.Context, msg *models.ContactMessage) error {
	if msg.Status == "" {
		msg.Status = models.ContactUnread
	}
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}

func (s *gormContactStore) List(ctx context.Context, status string) ([]models.ContactMessage, error) {
	q := s.db.WithContext(ctx).Model(&models.ContactMessage{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var messages []models.ContactMessage
	if err := q.Order("created_at desc").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return messages, nil
}

func (s *gormContactStore) UpdateStatus(ctx context.Context, id, status string) error {
	res := s.db.WithContext(ctx).Model(&models.ContactMessage{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update contact message %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}

func (s *gormContactStore) CountByStatus(ctx context.Context, status string) (int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.ContactMessage{}).Where("status = ?", status).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count contact messages: %w", err)
	}
	return total, nil
}
