package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"dreamhouse_backend/internal/model"
	"dreamhouse_backend/pkg/utils/password"
)

type AdministratorInput struct {
	FullName        string `json:"full_name" form:"full_name" validate:"required,max=60"`
	Email           string `json:"email" form:"email" validate:"required,email,max=120"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

func (in *AdministratorInput) normalize() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = normalizeEmail(in.Email)
}

func (s *Store) FindAdministratorByEmail(ctx context.Context, email string) (*model.Administrator, error) {
	var admin model.Administrator
	if err := s.conn(ctx).Where("email = ?", normalizeEmail(email)).First(&admin).Error; err != nil {
		return nil, notFound(err)
	}
	return &admin, nil
}

func (s *Store) GetAdministrator(ctx context.Context, id uint) (*model.Administrator, error) {
	var admin model.Administrator
	if err := s.conn(ctx).First(&admin, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &admin, nil
}

func (s *Store) ListAdministrators(ctx context.Context) ([]model.Administrator, error) {
	var admins []model.Administrator
	if err := s.conn(ctx).Order("id").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func (s *Store) CreateAdministrator(ctx context.Context, in AdministratorInput) (*model.Administrator, error) {
	in.normalize()
	if err := checkInput(in, in.Password, in.ConfirmPassword, true); err != nil {
		return nil, err
	}

	hashed, err := password.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := &model.Administrator{FullName: in.FullName, Email: in.Email, Password: hashed}
	err = s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Administrator{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}
		return tx.Create(admin).Error
	})
	if err != nil {
		return nil, duplicateEmail(err)
	}

	s.log.WithField("admin_id", admin.ID).Info("Administrator created")
	return admin, nil
}

func (s *Store) UpdateAdministrator(ctx context.Context, id uint, in AdministratorInput) (*model.Administrator, error) {
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

	var admin model.Administrator
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&admin, id).Error; err != nil {
			return notFound(err)
		}

		var count int64
		if err := tx.Model(&model.Administrator{}).
			Where("email = ? AND id <> ?", in.Email, id).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}

		admin.FullName = in.FullName
		admin.Email = in.Email
		if hashed != "" {
			admin.Password = hashed
		}
		return tx.Save(&admin).Error
	})
	if err != nil {
		return nil, duplicateEmail(err)
	}
	return &admin, nil
}

// DeleteAdministrator always refuses: administrators own listings and
// message assignments and are never removed.
func (s *Store) DeleteAdministrator(ctx context.Context, id uint) error {
	if _, err := s.GetAdministrator(ctx, id); err != nil {
		return err
	}
	return ErrNotDeletable
}
