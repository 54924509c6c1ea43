package models

import "time"

type Favorite struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ComboID   int64     `json:"combo_id" gorm:"not null;uniqueIndex:idx_favorites_combo_user"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_combo_user"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Favorite) TableName() string {
	return "favorites"
}
