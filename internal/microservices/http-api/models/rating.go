package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Rating struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ComboID   int64     `json:"combo_id" gorm:"not null;uniqueIndex:idx_ratings_combo_user"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_combo_user"`
	Value     int       `json:"value" gorm:"not null;check:value >= 1 AND value <= 5"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User  User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Combo Combo `json:"-" gorm:"foreignKey:ComboID;constraint:OnDelete:CASCADE;"`
}

func (Rating) TableName() string {
	return "ratings"
}
