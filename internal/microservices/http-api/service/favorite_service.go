package service

import (
	"context"

	"comboshare/internal/cache"
	"comboshare/internal/logging"
	"comboshare/internal/microservices/http-api/dto"
	"comboshare/internal/microservices/http-api/repository"
	"comboshare/internal/search"
)

type FavoriteService interface {
	Toggle(ctx context.Context, comboID int64, viewer search.Viewer) (*dto.FavoriteResponse, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	comboRepo    repository.ComboRepository
	cache        *cache.Cache
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, comboRepo repository.ComboRepository, c *cache.Cache) FavoriteService {
	return &favoriteService{favoriteRepo: favoriteRepo, comboRepo: comboRepo, cache: c}
}

func (s *favoriteService) Toggle(ctx context.Context, comboID int64, viewer search.Viewer) (*dto.FavoriteResponse, error) {
	if err := ensureVisible(ctx, s.comboRepo, comboID, viewer); err != nil {
		return nil, err
	}

	favorited, err := s.favoriteRepo.Toggle(ctx, comboID, viewer.UserID)
	if err != nil {
		return nil, err
	}
	invalidatePicks(ctx, s.cache)
	count, err := s.favoriteRepo.Count(ctx, comboID)
	if err != nil {
		return nil, err
	}

	logging.Debug().Int64("combo_id", comboID).Str("user_id", viewer.UserID).Bool("favorited", favorited).Msg("favorite toggled")
	return &dto.FavoriteResponse{Favorited: favorited, Count: count}, nil
}
