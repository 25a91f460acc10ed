package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"dreamhouse_backend/internal/model"
	"dreamhouse_backend/internal/search"
)

// RecordView appends one history row; repeated views are all kept. A user
// that no longer exists is ErrNotFound and nothing is written.
func (s *Store) RecordView(ctx context.Context, userID, estateID uint) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := userExists(tx, userID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		return tx.Create(&model.ViewHistory{
			UserID:    userID,
			EstateID:  estateID,
			Timestamp: time.Now().UTC(),
		}).Error
	})
}

// ListHistory pages through a user's views, newest first.
func (s *Store) ListHistory(ctx context.Context, userID uint, page int) (search.Page[model.ViewHistory], error) {
	q := s.conn(ctx).Model(&model.ViewHistory{}).Where("user_id = ?", userID)
	return search.Paginate[model.ViewHistory](q, page, func(db *gorm.DB) *gorm.DB {
		return db.Preload("Estate").Order("timestamp DESC").Order("id DESC")
	})
}

// ClearHistory deletes every view recorded for userID and nothing else.
func (s *Store) ClearHistory(ctx context.Context, userID uint) (int64, error) {
	res := s.conn(ctx).Where("user_id = ?", userID).Delete(&model.ViewHistory{})
	return res.RowsAffected, res.Error
}
