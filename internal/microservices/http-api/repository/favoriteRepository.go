package repository

import (
	"context"
	"fmt"

	"comboshare/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository interface {
	// Toggle removes the favorite if present, adds it otherwise, and reports the new state.
	Toggle(ctx context.Context, comboID int64, userID string) (bool, error)
	Exists(ctx context.Context, comboID int64, userID string) (bool, error)
	Count(ctx context.Context, comboID int64) (int64, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Toggle(ctx context.Context, comboID int64, userID string) (bool, error) {
	favorited := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("combo_id = ? AND user_id = ?", comboID, userID).Delete(&models.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		favorited = true
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Favorite{ComboID: comboID, UserID: userID}).Error
	})
	if err != nil {
		return false, fmt.Errorf("toggle favorite: %w", err)
	}
	return favorited, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, comboID int64, userID string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Favorite{}).Where("combo_id = ? AND user_id = ?", comboID, userID).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return n > 0, nil
}

func (r *favoriteRepository) Count(ctx context.Context, comboID int64) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Favorite{}).Where("combo_id = ?", comboID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count favorites: %w", err)
	}
	return n, nil
}
