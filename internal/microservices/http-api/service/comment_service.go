package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"comboshare/internal/logging"
	"comboshare/internal/microservices/http-api/dto"
	"comboshare/internal/microservices/http-api/models"
	"comboshare/internal/microservices/http-api/repository"
	"comboshare/internal/search"

	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrCommentEmpty    = errors.New("comment body is required")
	ErrCommentTooLong  = errors.New("comment body must be at most 1000 characters")
	ErrNotCommentOwner = errors.New("you can only delete your own comments")
)

type CommentService interface {
	Create(ctx context.Context, comboID int64, viewer search.Viewer, body string) (*dto.CommentResponse, error)
	List(ctx context.Context, comboID int64, viewer search.Viewer, page, pageSize int) (*dto.PaginatedCommentResponse, error)
	DeleteOwn(ctx context.Context, commentID int64, userID string) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	comboRepo   repository.ComboRepository
	userRepo    repository.UserRepository
	now         func() time.Time
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	comboRepo repository.ComboRepository,
	userRepo repository.UserRepository,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		comboRepo:   comboRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

func (s *commentService) Create(ctx context.Context, comboID int64, viewer search.Viewer, body string) (*dto.CommentResponse, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrCommentEmpty
	}
	if utf8.RuneCountInString(body) > models.MaxCommentLength {
		return nil, ErrCommentTooLong
	}
	if err := ensureVisible(ctx, s.comboRepo, comboID, viewer); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ComboID:     comboID,
		UserID:      viewer.UserID,
		Body:        body,
		IsPublished: true,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if user, err := s.userRepo.FindByID(ctx, viewer.UserID); err == nil {
		comment.User = *user
	}

	logging.Info().Int64("comment_id", comment.ID).Int64("combo_id", comboID).Str("user_id", viewer.UserID).Msg("comment created")
	return dto.FromModelToCommentResponse(comment), nil
}

// List returns the published, non-deleted comments of a visible combo, oldest first.
func (s *commentService) List(ctx context.Context, comboID int64, viewer search.Viewer, page, pageSize int) (*dto.PaginatedCommentResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > search.MaxTake {
		pageSize = search.DefaultTake
	}
	if err := ensureVisible(ctx, s.comboRepo, comboID, viewer); err != nil {
		return nil, err
	}

	comments, total, err := s.commentRepo.ListVisibleByCombo(ctx, comboID, page, pageSize)
	if err != nil {
		return nil, err
	}

	data := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		data = append(data, *dto.FromModelToCommentResponse(&comments[i]))
	}
	return dto.NewPaginatedCommentResponse(data, total, page, pageSize), nil
}

// DeleteOwn soft deletes the caller's own comment. Deleting twice is not an error.
func (s *commentService) DeleteOwn(ctx context.Context, commentID int64, userID string) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.UserID != userID {
		return ErrNotCommentOwner
	}
	if err := s.commentRepo.SoftDelete(ctx, commentID, s.now()); err != nil {
		return err
	}
	logging.Info().Int64("comment_id", commentID).Str("user_id", userID).Msg("comment deleted")
	return nil
}
