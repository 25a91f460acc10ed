package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"dreamhouse_backend/internal/model"
	"dreamhouse_backend/pkg/utils/password"
)

// UserInput is used for registration, profile edits and the admin console.
// On edits an empty Password keeps the current one.
type UserInput struct {
	Name            string `json:"name" form:"name" validate:"required,max=60"`
	Email           string `json:"email" form:"email" validate:"required,email,max=120"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

func (in *UserInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
}

func (s *Store) RegisterUser(ctx context.Context, in UserInput) (*model.User, error) {
	in.normalize()
	if err := checkInput(in, in.Password, in.ConfirmPassword, true); err != nil {
		return nil, err
	}

	hashed, err := password.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{Name: in.Name, Email: in.Email, Password: hashed}
	err = s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, duplicateEmail(err)
	}

	s.log.WithField("user_id", user.ID).Info("User registered")
	return user, nil
}

func (s *Store) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := s.conn(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// UserExists reports whether a user row with id is still present.
func (s *Store) UserExists(ctx context.Context, id uint) (bool, error) {
	return userExists(s.conn(ctx), id)
}

func userExists(tx *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := tx.Model(&model.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := s.conn(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// UpdateUser changes name, email and (when given) the password of a user.
func (s *Store) UpdateUser(ctx context.Context, id uint, in UserInput) (*model.User, error) {
	in.normalize()
	if err := checkInput(in, in.Password, in.ConfirmPassword, false); err != nil {
		return nil, err
	}

	var hashed string
	if in.Password != "" {
		h, err := password.Hash(in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hashed = h
	}

	var user model.User
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return notFound(err)
		}

		var count int64
		if err := tx.Model(&model.User{}).
			Where("email = ? AND id <> ?", in.Email, id).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}

		user.Name = in.Name
		user.Email = in.Email
		if hashed != "" {
			user.Password = hashed
		}
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, duplicateEmail(err)
	}
	return &user, nil
}

// DeleteUser removes the user together with their favorites and view
// history. Listings the user owned stay published without an owner.
func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&model.User{}, id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.ViewHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Estate{}).
			Where("user_id = ?", id).
			UpdateColumn("user_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, id).Error
	})
	if err != nil {
		return err
	}

	s.log.WithField("user_id", id).Info("User deleted")
	return nil
}
