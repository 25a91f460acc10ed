package model

import "time"

// Favorite is a user's bookmark; at most one per (user, estate).
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_favorites_user_estate"`
	EstateID  uint      `json:"estate_id" gorm:"not null;uniqueIndex:idx_favorites_user_estate;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Estate *Estate `json:"estate,omitempty" gorm:"foreignKey:EstateID"`
}

// ViewHistory is append-only: one row per listing view.
type ViewHistory struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	EstateID  uint      `json:"estate_id" gorm:"not null;index"`
	Timestamp time.Time `json:"timestamp" gorm:"column:timestamp;not null;index"`

	Estate *Estate `json:"estate,omitempty" gorm:"foreignKey:EstateID"`
}

func (ViewHistory) TableName() string {
	return "view_history"
}

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Administrator{},
		&Estate{},
		&Message{},
		&Favorite{},
		&ViewHistory{},
	}
}
