package service

import (
	"context"

	"comboshare/internal/cache"
	"comboshare/internal/microservices/http-api/dto"
	"comboshare/internal/microservices/http-api/repository"
)

type CatalogService interface {
	Characters(ctx context.Context) ([]dto.CharacterResponse, error)
	Moves(ctx context.Context, characterID int64) ([]dto.MoveResponse, error)
	Lookups(ctx context.Context) (*dto.LookupsResponse, error)
}

type catalogService struct {
	repo  repository.CatalogRepository
	cache *cache.Cache
}

func NewCatalogService(repo repository.CatalogRepository, c *cache.Cache) CatalogService {
	return &catalogService{repo: repo, cache: c}
}

func (s *catalogService) Characters(ctx context.Context) ([]dto.CharacterResponse, error) {
	return cache.Remember(ctx, s.cache, cache.KeyCharacters, func(ctx context.Context) ([]dto.CharacterResponse, error) {
		list, err := s.repo.ListCharacters(ctx)
		if err != nil {
			return nil, err
		}
		return dto.FromModelsToCharacterResponses(list), nil
	})
}

// Moves fails with ErrCharacterNotFound for an unknown character instead of returning an empty list.
func (s *catalogService) Moves(ctx context.Context, characterID int64) ([]dto.MoveResponse, error) {
	return cache.Remember(ctx, s.cache, cache.KeyMoves(characterID), func(ctx context.Context) ([]dto.MoveResponse, error) {
		ok, err := s.repo.CharacterExists(ctx, characterID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrCharacterNotFound
		}
		list, err := s.repo.ListMoves(ctx, characterID)
		if err != nil {
			return nil, err
		}
		return dto.FromModelsToMoveResponses(list), nil
	})
}

func (s *catalogService) Lookups(ctx context.Context) (*dto.LookupsResponse, error) {
	return cache.Remember(ctx, s.cache, cache.KeyLookups, func(ctx context.Context) (*dto.LookupsResponse, error) {
		conditions, err := s.repo.ListConditions(ctx)
		if err != nil {
			return nil, err
		}
		attributes, err := s.repo.ListAttributes(ctx)
		if err != nil {
			return nil, err
		}
		return dto.NewLookupsResponse(conditions, attributes), nil
	})
}
