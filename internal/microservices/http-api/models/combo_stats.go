package models

// ComboStats are aggregates computed on read; nothing is denormalized onto combos.
type ComboStats struct {
	ComboID   int64
	Votes     int64
	Average   float64
	Favorites int64
	Comments  int64
}
