package repository

import (
	"context"
	"fmt"

	"comboshare/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository interface {
	Upsert(ctx context.Context, rating *models.Rating) error
	Delete(ctx context.Context, comboID int64, userID string) error
	GetByComboAndUser(ctx context.Context, comboID int64, userID string) (*models.Rating, error)
	Summary(ctx context.Context, comboID int64) (float64, int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert keeps a single rating per (combo, user) and overwrites its value on re-rating.
func (r *ratingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "combo_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(rating).Error
	if err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	return nil
}

// Delete is a no-op when the user never rated the combo.
func (r *ratingRepository) Delete(ctx context.Context, comboID int64, userID string) error {
	if err := r.db.WithContext(ctx).Where("combo_id = ? AND user_id = ?", comboID, userID).Delete(&models.Rating{}).Error; err != nil {
		return fmt.Errorf("delete rating: %w", err)
	}
	return nil
}

func (r *ratingRepository) GetByComboAndUser(ctx context.Context, comboID int64, userID string) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).Where("combo_id = ? AND user_id = ?", comboID, userID).First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

// Summary returns the average and number of ratings of a combo.
func (r *ratingRepository) Summary(ctx context.Context, comboID int64) (float64, int64, error) {
	var row struct {
		Average float64
		Count   int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("COALESCE(AVG(value), 0)::float8 AS average, COUNT(*) AS count").
		Where("combo_id = ?", comboID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, fmt.Errorf("rating summary: %w", err)
	}
	return row.Average, row.Count, nil
}
