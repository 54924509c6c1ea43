package dto

import (
	"strings"
	"time"

	"comboshare/internal/microservices/http-api/models"
	"comboshare/internal/notation"
	"comboshare/internal/search"
)

const DefaultComboVersion = "1.00"

// CreateComboStepDTO is one annotated step of a submitted combo
type CreateComboStepDTO struct {
	Order       int     `json:"order" binding:"gte=0"`
	MoveID      *int64  `json:"moveId,omitempty"`
	AttributeID *int64  `json:"attributeId,omitempty"`
	Note        *string `json:"note,omitempty" binding:"omitempty,max=500"`
}

// CreateComboDTO used for POST /api/combos
type CreateComboDTO struct {
	CharacterID   int64                `json:"characterId" binding:"required,gt=0"`
	PlayStyle     string               `json:"playStyle" binding:"required,playstyle"`
	ComboText     string               `json:"comboText" binding:"required,notation,max=2000"`
	ConditionID   *int64               `json:"conditionId,omitempty"`
	AttributeID   *int64               `json:"attributeId,omitempty"`
	Damage        *int                 `json:"damage,omitempty" binding:"omitempty,gte=0,lte=10000"`
	Frame         *int                 `json:"frame,omitempty"`
	Version       *string              `json:"version,omitempty" binding:"omitempty,max=16"`
	Description   *string              `json:"description,omitempty" binding:"omitempty,max=2000"`
	VideoURL      *string              `json:"videoUrl,omitempty" binding:"omitempty,url,max=500"`
	DriveCost     *int                 `json:"driveCost,omitempty" binding:"omitempty,gte=0,lte=6"`
	SuperCost     *int                 `json:"superCost,omitempty" binding:"omitempty,gte=0,lte=3"`
	ParentComboID *int64               `json:"parentComboId,omitempty"`
	Steps         []CreateComboStepDTO `json:"steps,omitempty" binding:"omitempty,max=64,dive"`
	Tags          []string             `json:"tags,omitempty" binding:"omitempty,max=20,dive,max=64"`
}

// ToModel builds a published combo owned by userID. Blank optional strings become nil.
func (d CreateComboDTO) ToModel(userID string) models.Combo {
	c := models.Combo{
		UserID:        userID,
		CharacterID:   d.CharacterID,
		PlayStyle:     d.PlayStyle,
		ConditionID:   d.ConditionID,
		AttributeID:   d.AttributeID,
		ComboText:     strings.TrimSpace(d.ComboText),
		Damage:        d.Damage,
		Frame:         d.Frame,
		Version:       DefaultComboVersion,
		Description:   trimmedOrNil(d.Description),
		VideoURL:      trimmedOrNil(d.VideoURL),
		ParentComboID: d.ParentComboID,
		IsPublished:   true,
	}
	if v := trimmedOrNil(d.Version); v != nil {
		c.Version = *v
	}
	if d.DriveCost != nil {
		c.DriveCost = *d.DriveCost
	}
	if d.SuperCost != nil {
		c.SuperCost = *d.SuperCost
	}
	for _, s := range d.Steps {
		c.Steps = append(c.Steps, models.ComboStep{
			Order:       s.Order,
			MoveID:      s.MoveID,
			AttributeID: s.AttributeID,
			Note:        trimmedOrNil(s.Note),
		})
	}
	return c
}

// TagNames trims, drops blanks and removes duplicates while keeping order.
func (d CreateComboDTO) TagNames() []string {
	seen := make(map[string]struct{}, len(d.Tags))
	out := make([]string, 0, len(d.Tags))
	for _, t := range d.Tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// ComboSummary is one row of a combo list
type ComboSummary struct {
	ID            int64     `json:"id"`
	CharacterID   int64     `json:"characterId"`
	CharacterName string    `json:"characterName"`
	PlayStyle     string    `json:"playStyle"`
	Starter       string    `json:"starter"`
	ComboText     string    `json:"comboText"`
	Damage        *int      `json:"damage"`
	DriveCost     int       `json:"driveCost"`
	SuperCost     int       `json:"superCost"`
	CreatedAt     time.Time `json:"createdAt"`
	Tags          []string  `json:"tags"`
	FavoriteCount int64     `json:"favoriteCount"`
	RatingAverage float64   `json:"ratingAverage"`
	RatingCount   int64     `json:"ratingCount"`
	IsPublished   bool      `json:"isPublished"`
}

func FromModelToComboSummary(c models.Combo, stats models.ComboStats) ComboSummary {
	tags := make([]string, 0, len(c.Tags))
	for _, t := range c.Tags {
		tags = append(tags, t.Name)
	}
	avg := stats.Average
	if stats.Votes == 0 {
		avg = 0
	}
	return ComboSummary{
		ID:            c.ID,
		CharacterID:   c.CharacterID,
		CharacterName: c.Character.Name,
		PlayStyle:     c.PlayStyle,
		Starter:       notation.Starter(c.ComboText),
		ComboText:     c.ComboText,
		Damage:        c.Damage,
		DriveCost:     c.DriveCost,
		SuperCost:     c.SuperCost,
		CreatedAt:     c.CreatedAt,
		Tags:          tags,
		FavoriteCount: stats.Favorites,
		RatingAverage: avg,
		RatingCount:   stats.Votes,
		IsPublished:   c.IsPublished,
	}
}

// FromModelsToComboSummaries keeps the order of combos and never returns nil.
func FromModelsToComboSummaries(combos []models.Combo, stats map[int64]models.ComboStats) []ComboSummary {
	out := make([]ComboSummary, 0, len(combos))
	for _, c := range combos {
		out = append(out, FromModelToComboSummary(c, stats[c.ID]))
	}
	return out
}

// ComboSearchResponse is a page of combos plus paging metadata
type ComboSearchResponse struct {
	Items []ComboSummary `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Pages int            `json:"pages"`
	Take  int            `json:"take"`
	Sort  search.Sort    `json:"sort"`
	Dir   search.Dir     `json:"dir"`
}

// ComboStepResponse is a step with its resolved move
type ComboStepResponse struct {
	Order       int     `json:"order"`
	MoveID      *int64  `json:"moveId,omitempty"`
	MoveName    *string `json:"moveName,omitempty"`
	MoveInput   *string `json:"moveInput,omitempty"`
	AttributeID *int64  `json:"attributeId,omitempty"`
	Note        *string `json:"note,omitempty"`
}

// ComboDetailResponse is the full view of one combo
type ComboDetailResponse struct {
	ComboSummary
	Tokens        []string            `json:"tokens"`
	Condition     *string             `json:"condition,omitempty"`
	Attribute     *string             `json:"attribute,omitempty"`
	Frame         *int                `json:"frame,omitempty"`
	Version       string              `json:"version"`
	Description   *string             `json:"description,omitempty"`
	VideoURL      *string             `json:"videoUrl,omitempty"`
	ParentComboID *int64              `json:"parentComboId,omitempty"`
	CommentCount  int64               `json:"commentCount"`
	Steps         []ComboStepResponse `json:"steps"`
	MyRating      *int                `json:"myRating"`
	Favorited     bool                `json:"favorited"`
	IsOwner       bool                `json:"isOwner"`
}

func FromModelToComboDetail(c models.Combo, stats models.ComboStats) ComboDetailResponse {
	d := ComboDetailResponse{
		ComboSummary:  FromModelToComboSummary(c, stats),
		Tokens:        notation.Normalize(c.ComboText),
		Frame:         c.Frame,
		Version:       c.Version,
		Description:   c.Description,
		VideoURL:      c.VideoURL,
		ParentComboID: c.ParentComboID,
		CommentCount:  stats.Comments,
		Steps:         make([]ComboStepResponse, 0, len(c.Steps)),
	}
	if c.Condition != nil {
		d.Condition = &c.Condition.Type
	}
	if c.Attribute != nil {
		d.Attribute = &c.Attribute.Type
	}
	for _, s := range c.Steps {
		step := ComboStepResponse{
			Order:       s.Order,
			MoveID:      s.MoveID,
			AttributeID: s.AttributeID,
			Note:        s.Note,
		}
		if s.Move != nil {
			step.MoveName = &s.Move.Name
			step.MoveInput = s.Move.Input
		}
		d.Steps = append(d.Steps, step)
	}
	return d
}

// CharacterPicks is the picks section of one character
type CharacterPicks struct {
	CharacterID   int64          `json:"characterId"`
	CharacterName string         `json:"characterName"`
	Combos        []ComboSummary `json:"combos"`
}

// PaginatedComboResponse for the author's own list
type PaginatedComboResponse struct {
	Data       []ComboSummary `json:"data"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	Total      int64          `json:"total"`
	TotalPages int            `json:"totalPages"`
}

func NewPaginatedComboResponse(data []ComboSummary, total int64, page, pageSize int) *PaginatedComboResponse {
	return &PaginatedComboResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: search.Pages(total, pageSize),
	}
}
