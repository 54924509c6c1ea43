package repository

import (
	"context"
	"fmt"
	"time"

	"comboshare/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	FindByID(ctx context.Context, id int64) (*models.Comment, error)
	ListVisibleByCombo(ctx context.Context, comboID int64, page, pageSize int) ([]models.Comment, int64, error)
	SetPublished(ctx context.Context, id int64, published bool) error
	SoftDelete(ctx context.Context, id int64, at time.Time) error
	Restore(ctx context.Context, id int64) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit("User", "Combo").Create(comment).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// FindByID includes deleted and unpublished comments.
func (r *commentRepository) FindByID(ctx context.Context, id int64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListVisibleByCombo returns published, non-deleted comments oldest first.
func (r *commentRepository) ListVisibleByCombo(ctx context.Context, comboID int64, page, pageSize int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Comment{}).Scopes(CommentVisible).
		Where("comments.combo_id = ?", comboID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Scopes(CommentVisible).
		Where("comments.combo_id = ?", comboID).
		Preload("User").
		Order("comments.created_at ASC, comments.id ASC").
		Limit(pageSize).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	return comments, total, nil
}

// SetPublished only touches comments that are not deleted.
func (r *commentRepository) SetPublished(ctx context.Context, id int64, published bool) error {
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("is_published", published).Error
	if err != nil {
		return fmt.Errorf("set comment published: %w", err)
	}
	return nil
}

func (r *commentRepository) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).
		Update("deleted_at", gorm.Expr("COALESCE(deleted_at, ?)", at)).Error
	if err != nil {
		return fmt.Errorf("soft delete comment: %w", err)
	}
	return nil
}

func (r *commentRepository) Restore(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Update("deleted_at", nil).Error; err != nil {
		return fmt.Errorf("restore comment: %w", err)
	}
	return nil
}
