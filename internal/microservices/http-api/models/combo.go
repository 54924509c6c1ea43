package models

import "time"

const (
	PlayStyleModern  = "MODERN"
	PlayStyleClassic = "CLASSIC"
)

type Combo struct {
	ID            int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID        string     `json:"user_id" gorm:"type:uuid;not null;index"`
	CharacterID   int64      `json:"character_id" gorm:"not null;index"`
	PlayStyle     string     `json:"play_style" gorm:"size:16;not null"`
	ConditionID   *int64     `json:"condition_id,omitempty"`
	AttributeID   *int64     `json:"attribute_id,omitempty"`
	ComboText     string     `json:"combo_text" gorm:"type:text;not null"`
	Damage        *int       `json:"damage,omitempty"`
	Frame         *int       `json:"frame,omitempty"`
	DriveCost     int        `json:"drive_cost" gorm:"not null"`
	SuperCost     int        `json:"super_cost" gorm:"not null"`
	Version       string     `json:"version" gorm:"size:16;not null"`
	Description   *string    `json:"description,omitempty" gorm:"type:text"`
	VideoURL      *string    `json:"video_url,omitempty"`
	ParentComboID *int64     `json:"parent_combo_id,omitempty" gorm:"index"`
	IsPublished   bool       `json:"is_published" gorm:"not null"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User      User        `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Character Character   `json:"character,omitempty" gorm:"foreignKey:CharacterID"`
	Condition *Condition  `json:"condition,omitempty" gorm:"foreignKey:ConditionID"`
	Attribute *Attribute  `json:"attribute,omitempty" gorm:"foreignKey:AttributeID"`
	Steps     []ComboStep `json:"steps,omitempty" gorm:"foreignKey:ComboID;constraint:OnDelete:CASCADE;"`
	Tags      []Tag       `json:"tags,omitempty" gorm:"many2many:combo_tags;constraint:OnDelete:CASCADE;"`
}

func (Combo) TableName() string {
	return "combos"
}

func (c *Combo) Deleted() bool {
	return c.DeletedAt != nil
}

type ComboStep struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	ComboID     int64   `json:"combo_id" gorm:"not null;index"`
	Order       int     `json:"order" gorm:"column:step_order;not null"`
	MoveID      *int64  `json:"move_id,omitempty"`
	AttributeID *int64  `json:"attribute_id,omitempty"`
	Note        *string `json:"note,omitempty"`

	Move *Move `json:"move,omitempty" gorm:"foreignKey:MoveID"`
}

func (ComboStep) TableName() string {
	return "combo_steps"
}

// Tag names are case-sensitive and unique.
type Tag struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"uniqueIndex;size:64;not null"`
}

func (Tag) TableName() string {
	return "tags"
}

type ComboTag struct {
	ComboID int64 `gorm:"primaryKey"`
	TagID   int64 `gorm:"primaryKey;index"`
}

func (ComboTag) TableName() string {
	return "combo_tags"
}
