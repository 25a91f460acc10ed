package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dreamhouse_backend/internal/model"
	"dreamhouse_backend/internal/search"
)

// AddFavorite bookmarks an estate for a user. added is false when the pair
// already existed; concurrent calls for the same pair leave a single row.
// An unknown user or estate is ErrNotFound.
func (s *Store) AddFavorite(ctx context.Context, userID, estateID uint) (bool, error) {
	added := false
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if ok, err := userExists(tx, userID); err != nil || !ok {
			if err != nil {
				return err
			}
			return ErrNotFound
		}
		if err := tx.Select("id").First(&model.Estate{}, estateID).Error; err != nil {
			return notFound(err)
		}

		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "estate_id"}},
			DoNothing: true,
		}).Create(&model.Favorite{UserID: userID, EstateID: estateID})
		if res.Error != nil {
			return res.Error
		}
		added = res.RowsAffected > 0
		return nil
	})
	return added, err
}

// RemoveFavorite deletes the bookmark if present.
func (s *Store) RemoveFavorite(ctx context.Context, userID, estateID uint) (bool, error) {
	res := s.conn(ctx).
		Where("user_id = ? AND estate_id = ?", userID, estateID).
		Delete(&model.Favorite{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) IsFavorite(ctx context.Context, userID, estateID uint) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(&model.Favorite{}).
		Where("user_id = ? AND estate_id = ?", userID, estateID).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) ListFavorites(ctx context.Context, userID uint, page int) (search.Page[model.Favorite], error) {
	q := s.conn(ctx).Model(&model.Favorite{}).Where("user_id = ?", userID)
	return search.Paginate[model.Favorite](q, page, func(db *gorm.DB) *gorm.DB {
		return db.Preload("Estate").Order("created_at DESC").Order("id DESC")
	})
}
