package dto

// SetRatingDTO for creating or updating the caller's rating
type SetRatingDTO struct {
	Value int `json:"value" binding:"required,min=1,max=5"`
}

// RatingSummaryResponse is returned after rating or clearing a rating
type RatingSummaryResponse struct {
	MyValue *int    `json:"myValue"`
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// FavoriteResponse is returned after toggling a favorite
type FavoriteResponse struct {
	Favorited bool  `json:"favorited"`
	Count     int64 `json:"count"`
}
