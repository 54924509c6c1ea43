package service

import (
	"context"
	"errors"
	"time"

	"comboshare/internal/cache"
	"comboshare/internal/logging"
	"comboshare/internal/metrics"
	"comboshare/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrDeletedCombo   = errors.New("cannot publish a deleted combo; restore it first")
	ErrDeletedComment = errors.New("cannot publish a deleted comment; restore it first")
)

// ModerationResult echoes the state after an admin action.
type ModerationResult struct {
	ID          int64 `json:"id"`
	IsPublished bool  `json:"isPublished"`
	Deleted     bool  `json:"deleted"`
}

type ModerationService interface {
	PublishCombo(ctx context.Context, id int64, publish bool) (*ModerationResult, error)
	DeleteCombo(ctx context.Context, id int64) (*ModerationResult, error)
	RestoreCombo(ctx context.Context, id int64) (*ModerationResult, error)
	PublishComment(ctx context.Context, id int64, publish bool) (*ModerationResult, error)
	DeleteComment(ctx context.Context, id int64) (*ModerationResult, error)
	RestoreComment(ctx context.Context, id int64) (*ModerationResult, error)
}

type moderationService struct {
	comboRepo   repository.ComboRepository
	commentRepo repository.CommentRepository
	cache       *cache.Cache
	now         func() time.Time
}

func NewModerationService(
	comboRepo repository.ComboRepository,
	commentRepo repository.CommentRepository,
	c *cache.Cache,
) ModerationService {
	return &moderationService{
		comboRepo:   comboRepo,
		commentRepo: commentRepo,
		cache:       c,
		now:         time.Now,
	}
}

func (s *moderationService) PublishCombo(ctx context.Context, id int64, publish bool) (*ModerationResult, error) {
	combo, err := s.comboRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrComboNotFound)
	}
	if combo.Deleted() && publish {
		return nil, ErrDeletedCombo
	}
	if err := s.comboRepo.SetPublished(ctx, id, publish); err != nil {
		return nil, err
	}
	s.done(ctx, "combo", publishAction(publish), id)
	return &ModerationResult{ID: id, IsPublished: publish, Deleted: combo.Deleted()}, nil
}

func (s *moderationService) DeleteCombo(ctx context.Context, id int64) (*ModerationResult, error) {
	if _, err := s.comboRepo.FindByID(ctx, id); err != nil {
		return nil, notFound(err, ErrComboNotFound)
	}
	if err := s.comboRepo.SoftDelete(ctx, id, s.now()); err != nil {
		return nil, err
	}
	s.done(ctx, "combo", "delete", id)
	return &ModerationResult{ID: id, IsPublished: false, Deleted: true}, nil
}

func (s *moderationService) RestoreCombo(ctx context.Context, id int64) (*ModerationResult, error) {
	if _, err := s.comboRepo.FindByID(ctx, id); err != nil {
		return nil, notFound(err, ErrComboNotFound)
	}
	if err := s.comboRepo.Restore(ctx, id); err != nil {
		return nil, err
	}
	s.done(ctx, "combo", "restore", id)
	return &ModerationResult{ID: id, IsPublished: false, Deleted: false}, nil
}

func (s *moderationService) PublishComment(ctx context.Context, id int64, publish bool) (*ModerationResult, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrCommentNotFound)
	}
	if comment.DeletedAt != nil {
		return nil, ErrDeletedComment
	}
	if err := s.commentRepo.SetPublished(ctx, id, publish); err != nil {
		return nil, err
	}
	s.done(ctx, "comment", publishAction(publish), id)
	return &ModerationResult{ID: id, IsPublished: publish}, nil
}

func (s *moderationService) DeleteComment(ctx context.Context, id int64) (*ModerationResult, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrCommentNotFound)
	}
	if err := s.commentRepo.SoftDelete(ctx, id, s.now()); err != nil {
		return nil, err
	}
	s.done(ctx, "comment", "delete", id)
	return &ModerationResult{ID: id, IsPublished: comment.IsPublished, Deleted: true}, nil
}

// RestoreComment only clears the deletion mark; the publish flag is untouched.
func (s *moderationService) RestoreComment(ctx context.Context, id int64) (*ModerationResult, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrCommentNotFound)
	}
	if err := s.commentRepo.Restore(ctx, id); err != nil {
		return nil, err
	}
	s.done(ctx, "comment", "restore", id)
	return &ModerationResult{ID: id, IsPublished: comment.IsPublished}, nil
}

func (s *moderationService) done(ctx context.Context, target, action string, id int64) {
	metrics.ModerationActions.WithLabelValues(target, action).Inc()
	if target == "combo" {
		invalidatePicks(ctx, s.cache)
	}
	logging.Info().Str("target", target).Str("action", action).Int64("id", id).Msg("moderation")
}

func publishAction(publish bool) string {
	if publish {
		return "publish"
	}
	return "unpublish"
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
