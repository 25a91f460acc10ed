package store

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"dreamhouse_backend/internal/model"
	"dreamhouse_backend/internal/search"
	"dreamhouse_backend/pkg/utils/validation"
)

type EstateInput struct {
	Type                  model.EstateType `json:"type" form:"type" validate:"required"`
	Location              string           `json:"location" form:"location" validate:"required,max=200"`
	Cost                  float64          `json:"cost" form:"cost" validate:"gte=0"`
	Currency              model.Currency   `json:"currency" form:"currency"`
	Bedrooms              model.Bedrooms   `json:"bedrooms" form:"bedrooms" validate:"required"`
	Area                  string           `json:"area" form:"area" validate:"max=20"`
	Floor                 string           `json:"floor" form:"floor" validate:"max=20"`
	Description           string           `json:"description" form:"description"`
	AdditionalInformation string           `json:"additional_information" form:"additional_information"`
	Photo                 string           `json:"photo" form:"photo"`
	UserID                *uint            `json:"user_id" form:"user_id"`
	AdminID               *uint            `json:"admin_id" form:"admin_id"`
}

func (in EstateInput) apply(e *model.Estate) {
	e.Type = in.Type
	e.Location = strings.TrimSpace(in.Location)
	e.Cost = in.Cost
	e.Currency = in.Currency
	e.Bedrooms = in.Bedrooms
	e.Area = in.Area
	e.Floor = in.Floor
	e.Description = in.Description
	e.AdditionalInformation = in.AdditionalInformation
	e.Photo = in.Photo
	e.UserID = in.UserID
	e.AdminID = in.AdminID
}

// checkOwners verifies that referenced user and administrator exist.
func checkOwners(tx *gorm.DB, in EstateInput) error {
	ve := &validation.ValidationError{}
	if in.UserID != nil {
		var count int64
		if err := tx.Model(&model.User{}).Where("id = ?", *in.UserID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			ve.Add("user_id", "Unknown user")
		}
	}
	if in.AdminID != nil {
		var count int64
		if err := tx.Model(&model.Administrator{}).Where("id = ?", *in.AdminID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			ve.Add("admin_id", "Unknown administrator")
		}
	}
	return ve.OrNil()
}

func (s *Store) GetEstate(ctx context.Context, id uint) (*model.Estate, error) {
	var estate model.Estate
	if err := s.conn(ctx).First(&estate, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &estate, nil
}

func (s *Store) ListEstates(ctx context.Context) ([]model.Estate, error) {
	estates := []model.Estate{}
	if err := s.conn(ctx).Order("id").Find(&estates).Error; err != nil {
		return nil, err
	}
	return estates, nil
}

// SearchEstates applies the criteria and returns one page of results.
func (s *Store) SearchEstates(ctx context.Context, c search.Criteria, page int) (search.Page[model.Estate], error) {
	q := c.Apply(s.conn(ctx).Model(&model.Estate{})).Order("id")
	return search.Paginate[model.Estate](q, page)
}

// CreateEstate stores a new listing. When no publisher is given the acting
// administrator becomes the publisher.
func (s *Store) CreateEstate(ctx context.Context, in EstateInput, actingAdminID uint) (*model.Estate, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if in.AdminID == nil && actingAdminID != 0 {
		in.AdminID = &actingAdminID
	}

	var estate model.Estate
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkOwners(tx, in); err != nil {
			return err
		}
		in.apply(&estate)
		return tx.Create(&estate).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.WithField("estate_id", estate.ID).Info("Estate created")
	return &estate, nil
}

func (s *Store) UpdateEstate(ctx context.Context, id uint, in EstateInput) (*model.Estate, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	var estate model.Estate
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&estate, id).Error; err != nil {
			return notFound(err)
		}
		if err := checkOwners(tx, in); err != nil {
			return err
		}
		in.apply(&estate)
		return tx.Save(&estate).Error
	})
	if err != nil {
		return nil, err
	}
	return &estate, nil
}

// DeleteEstate removes a listing with every favorite and history row that
// points at it.
func (s *Store) DeleteEstate(ctx context.Context, id uint) error {
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&model.Estate{}, id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Where("estate_id = ?", id).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("estate_id = ?", id).Delete(&model.ViewHistory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Estate{}, id).Error
	})
	if err != nil {
		return err
	}

	s.log.WithField("estate_id", id).Info("Estate deleted")
	return nil
}
