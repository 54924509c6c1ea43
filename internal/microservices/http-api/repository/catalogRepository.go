package repository

import (
	"context"
	"fmt"

	"comboshare/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type CatalogRepository interface {
	ListCharacters(ctx context.Context) ([]models.Character, error)
	CharacterExists(ctx context.Context, id int64) (bool, error)
	ListMoves(ctx context.Context, characterID int64) ([]models.Move, error)
	ListConditions(ctx context.Context) ([]models.Condition, error)
	ListAttributes(ctx context.Context) ([]models.Attribute, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListCharacters(ctx context.Context) ([]models.Character, error) {
	var list []models.Character
	if err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get characters: %w", err)
	}
	return list, nil
}

func (r *catalogRepository) CharacterExists(ctx context.Context, id int64) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Character{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check character: %w", err)
	}
	return n > 0, nil
}

func (r *catalogRepository) ListMoves(ctx context.Context, characterID int64) ([]models.Move, error) {
	var list []models.Move
	if err := r.db.WithContext(ctx).Where("character_id = ?", characterID).Order("id asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get moves: %w", err)
	}
	return list, nil
}

func (r *catalogRepository) ListConditions(ctx context.Context) ([]models.Condition, error) {
	var list []models.Condition
	if err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get conditions: %w", err)
	}
	return list, nil
}

func (r *catalogRepository) ListAttributes(ctx context.Context) ([]models.Attribute, error) {
	var list []models.Attribute
	if err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get attributes: %w", err)
	}
	return list, nil
}
