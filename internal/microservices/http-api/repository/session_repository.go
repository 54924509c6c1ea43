package repository

import (
	"context"
	"fmt"
	"time"

	"comboshare/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// SessionRepository handles database operations for login sessions
type SessionRepository interface {
	// ReplaceForUser drops every existing session of the user and stores s.
	ReplaceForUser(ctx context.Context, s *models.Session) error
	FindByID(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) ReplaceForUser(ctx context.Context, s *models.Session) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", s.UserID).Delete(&models.Session{}).Error; err != nil {
			return fmt.Errorf("delete old sessions: %w", err)
		}
		if err := tx.Create(s).Error; err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		return nil
	})
}

func (r *sessionRepository) FindByID(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session
	if err := r.db.WithContext(ctx).Preload("User").First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Session{}).Error
}

// DeleteExpired is the periodic cleanup for sessions past their expiry.
func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&models.Session{})
	return res.RowsAffected, res.Error
}
