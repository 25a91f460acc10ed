package store

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"dreamhouse_backend/internal/model"
	"dreamhouse_backend/pkg/utils/validation"
)

// MessageInput is the public contact form.
type MessageInput struct {
	FullName    string `json:"full_name" form:"full_name" validate:"required,max=60"`
	Email       string `json:"email" form:"email" validate:"required,email,max=120"`
	PhoneNumber string `json:"phone_number" form:"phone_number" validate:"max=20"`
	Message     string `json:"message" form:"message" validate:"required"`
	PageURL     string `json:"page_url" form:"page_url" validate:"required,max=200"`
}

func (s *Store) CreateMessage(ctx context.Context, in MessageInput) (*model.Message, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = normalizeEmail(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	msg := &model.Message{
		FullName:    in.FullName,
		Email:       in.Email,
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Body:        in.Message,
		PageURL:     in.PageURL,
	}
	if err := s.conn(ctx).Create(msg).Error; err != nil {
		return nil, err
	}

	s.log.WithField("message_id", msg.ID).Info("Contact message received")
	return msg, nil
}

func (s *Store) GetMessage(ctx context.Context, id uint) (*model.Message, error) {
	var msg model.Message
	if err := s.conn(ctx).First(&msg, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &msg, nil
}

// AssignMessage sets (or clears, with nil) the administrator handling a
// message. No other column is touched.
func (s *Store) AssignMessage(ctx context.Context, id uint, adminID *uint) (*model.Message, error) {
	var msg model.Message
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&msg, id).Error; err != nil {
			return notFound(err)
		}
		if adminID != nil {
			var count int64
			if err := tx.Model(&model.Administrator{}).Where("id = ?", *adminID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return validation.NewError("admin_id", "Unknown administrator")
			}
		}
		msg.AdminID = adminID
		return tx.Model(&msg).UpdateColumn("admin_id", adminID).Error
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// UnassignedMessagesSince returns messages nobody picked up, oldest first.
func (s *Store) UnassignedMessagesSince(ctx context.Context, since time.Time) ([]model.Message, error) {
	msgs := []model.Message{}
	err := s.conn(ctx).
		Where("admin_id IS NULL AND created_at >= ?", since).
		Order("created_at").
		Find(&msgs).Error
	return msgs, err
}
