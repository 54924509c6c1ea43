package service

import (
	"context"
	"errors"

	"comboshare/internal/cache"
	"comboshare/internal/logging"
	"comboshare/internal/microservices/http-api/dto"
	"comboshare/internal/microservices/http-api/models"
	"comboshare/internal/microservices/http-api/repository"
	"comboshare/internal/search"

	"gorm.io/gorm"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type RatingService interface {
	Set(ctx context.Context, comboID int64, viewer search.Viewer, value int) (*dto.RatingSummaryResponse, error)
	Clear(ctx context.Context, comboID int64, viewer search.Viewer) (*dto.RatingSummaryResponse, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	comboRepo  repository.ComboRepository
	cache      *cache.Cache
}

func NewRatingService(ratingRepo repository.RatingRepository, comboRepo repository.ComboRepository, c *cache.Cache) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		comboRepo:  comboRepo,
		cache:      c,
	}
}

// Set creates or overwrites the viewer's rating.
func (s *ratingService) Set(ctx context.Context, comboID int64, viewer search.Viewer, value int) (*dto.RatingSummaryResponse, error) {
	if value < models.MinRating || value > models.MaxRating {
		return nil, ErrInvalidRating
	}
	if err := ensureVisible(ctx, s.comboRepo, comboID, viewer); err != nil {
		return nil, err
	}

	rating := &models.Rating{ComboID: comboID, UserID: viewer.UserID, Value: value}
	if err := s.ratingRepo.Upsert(ctx, rating); err != nil {
		return nil, err
	}
	invalidatePicks(ctx, s.cache)
	logging.Debug().Int64("combo_id", comboID).Str("user_id", viewer.UserID).Int("value", value).Msg("rating set")

	return s.summary(ctx, comboID, &value)
}

func (s *ratingService) Clear(ctx context.Context, comboID int64, viewer search.Viewer) (*dto.RatingSummaryResponse, error) {
	if err := ensureVisible(ctx, s.comboRepo, comboID, viewer); err != nil {
		return nil, err
	}
	if err := s.ratingRepo.Delete(ctx, comboID, viewer.UserID); err != nil {
		return nil, err
	}
	invalidatePicks(ctx, s.cache)
	return s.summary(ctx, comboID, nil)
}

func (s *ratingService) summary(ctx context.Context, comboID int64, mine *int) (*dto.RatingSummaryResponse, error) {
	avg, count, err := s.ratingRepo.Summary(ctx, comboID)
	if err != nil {
		return nil, err
	}
	return &dto.RatingSummaryResponse{MyValue: mine, Average: avg, Count: count}, nil
}

// ensureVisible hides combos the viewer may not see behind ErrComboNotFound.
func ensureVisible(ctx context.Context, repo repository.ComboRepository, comboID int64, viewer search.Viewer) error {
	if _, err := repo.FindVisible(ctx, comboID, viewer); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrComboNotFound
		}
		return err
	}
	return nil
}
