package models

import "time"

// MaxCommentLength is counted in characters, not bytes.
const MaxCommentLength = 1000

type Comment struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	ComboID     int64      `json:"combo_id" gorm:"not null;index"`
	UserID      string     `json:"user_id" gorm:"type:uuid;not null;index"`
	Body        string     `json:"body" gorm:"not null;type:text"`
	IsPublished bool       `json:"is_published" gorm:"not null"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User  User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Combo Combo `json:"-" gorm:"foreignKey:ComboID;constraint:OnDelete:CASCADE;"`
}

func (Comment) TableName() string {
	return "comments"
}
