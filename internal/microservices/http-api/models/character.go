package models

type Character struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Slug string `json:"slug" gorm:"uniqueIndex;size:64;not null"`
	Name string `json:"name" gorm:"size:64;not null"`

	Moves []Move `json:"moves,omitempty" gorm:"foreignKey:CharacterID;constraint:OnDelete:CASCADE;"`
}

func (Character) TableName() string {
	return "characters"
}

type Move struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	CharacterID int64   `json:"character_id" gorm:"not null;index"`
	Name        string  `json:"name" gorm:"size:120;not null"`
	Input       *string `json:"input,omitempty" gorm:"size:120"`
}

func (Move) TableName() string {
	return "moves"
}

// Condition is the situation a combo starts from, e.g. "画面端" (corner).
type Condition struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Type        string  `json:"type" gorm:"uniqueIndex;size:64;not null"`
	Description *string `json:"description,omitempty"`
}

func (Condition) TableName() string {
	return "conditions"
}

// Attribute is the hit state a combo or step relies on, e.g. "パニッシュカウンター".
type Attribute struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Type        string  `json:"type" gorm:"uniqueIndex;size:64;not null"`
	Description *string `json:"description,omitempty"`
}

func (Attribute) TableName() string {
	return "attributes"
}
