package service

import (
	"context"
	"errors"
	"time"

	"comboshare/internal/cache"
	"comboshare/internal/logging"
	"comboshare/internal/metrics"
	"comboshare/internal/microservices/http-api/dto"
	"comboshare/internal/microservices/http-api/models"
	"comboshare/internal/microservices/http-api/repository"
	"comboshare/internal/search"

	"gorm.io/gorm"
)

var (
	ErrComboNotFound     = errors.New("combo not found")
	ErrCharacterNotFound = errors.New("character not found")
	ErrParentNotFound    = errors.New("parent combo not found")
)

type ComboService interface {
	Create(ctx context.Context, userID string, req dto.CreateComboDTO) (*dto.ComboDetailResponse, error)
	Get(ctx context.Context, id int64, viewer search.Viewer) (*dto.ComboDetailResponse, error)
	Search(ctx context.Context, params search.Params, viewer search.Viewer) (*dto.ComboSearchResponse, error)
	ListMine(ctx context.Context, userID string, page, pageSize int) (*dto.PaginatedComboResponse, error)
	Picks(ctx context.Context) ([]dto.CharacterPicks, error)
}

type comboService struct {
	comboRepo    repository.ComboRepository
	catalogRepo  repository.CatalogRepository
	ratingRepo   repository.RatingRepository
	favoriteRepo repository.FavoriteRepository
	cache        *cache.Cache
	weights      search.Weights
}

func NewComboService(
	comboRepo repository.ComboRepository,
	catalogRepo repository.CatalogRepository,
	ratingRepo repository.RatingRepository,
	favoriteRepo repository.FavoriteRepository,
	c *cache.Cache,
	weights search.Weights,
) ComboService {
	return &comboService{
		comboRepo:    comboRepo,
		catalogRepo:  catalogRepo,
		ratingRepo:   ratingRepo,
		favoriteRepo: favoriteRepo,
		cache:        c,
		weights:      weights,
	}
}

func (s *comboService) Create(ctx context.Context, userID string, req dto.CreateComboDTO) (*dto.ComboDetailResponse, error) {
	ok, err := s.catalogRepo.CharacterExists(ctx, req.CharacterID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCharacterNotFound
	}

	if req.ParentComboID != nil {
		if _, err := s.comboRepo.FindByID(ctx, *req.ParentComboID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
	}

	combo := req.ToModel(userID)
	if err := s.comboRepo.Create(ctx, &combo, req.TagNames()); err != nil {
		return nil, err
	}
	invalidatePicks(ctx, s.cache)

	logging.Info().
		Int64("combo_id", combo.ID).
		Int64("character_id", combo.CharacterID).
		Str("user_id", userID).
		Msg("combo created")

	return s.Get(ctx, combo.ID, search.Viewer{UserID: userID})
}

// Get returns the combo with the viewer's own rating and favorite flag.
func (s *comboService) Get(ctx context.Context, id int64, viewer search.Viewer) (*dto.ComboDetailResponse, error) {
	combo, err := s.comboRepo.FindVisible(ctx, id, viewer)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComboNotFound
		}
		return nil, err
	}

	stats, err := s.comboRepo.Stats(ctx, []int64{id})
	if err != nil {
		return nil, err
	}

	detail := dto.FromModelToComboDetail(*combo, stats[id])
	if viewer.Anonymous() {
		return &detail, nil
	}

	detail.IsOwner = combo.UserID == viewer.UserID
	rating, err := s.ratingRepo.GetByComboAndUser(ctx, id, viewer.UserID)
	switch {
	case err == nil:
		v := rating.Value
		detail.MyRating = &v
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}
	if detail.Favorited, err = s.favoriteRepo.Exists(ctx, id, viewer.UserID); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Search counts every match, then orders in SQL for column sorts or ranks the candidates in
// memory for rating, recommend and popular. Only the requested page is loaded.
func (s *comboService) Search(ctx context.Context, params search.Params, viewer search.Viewer) (*dto.ComboSearchResponse, error) {
	started := time.Now()
	q := search.Build(params, viewer)

	total, err := s.comboRepo.Count(ctx, q)
	if err != nil {
		return nil, err
	}
	pages := search.Pages(total, q.Take)
	page := search.ClampPage(q.Page, pages)

	var combos []models.Combo
	switch {
	case total == 0:
		combos = []models.Combo{}
	case q.Ranked:
		cands, err := s.comboRepo.Candidates(ctx, q)
		if err != nil {
			return nil, err
		}
		globalAvg, err := s.comboRepo.GlobalAverage(ctx)
		if err != nil {
			return nil, err
		}
		search.Rank(cands, q.Sort, q.Dir, globalAvg, s.weights)
		lo, hi := search.Window(len(cands), page, q.Take)
		if combos, err = s.comboRepo.FindByIDs(ctx, search.IDs(cands[lo:hi])); err != nil {
			return nil, err
		}
	default:
		if combos, err = s.comboRepo.ListPage(ctx, q, search.Offset(page, q.Take), q.Take); err != nil {
			return nil, err
		}
	}

	stats, err := s.comboRepo.Stats(ctx, comboIDs(combos))
	if err != nil {
		return nil, err
	}

	metrics.ObserveSearch(string(q.Sort), started, total)
	logging.Debug().
		Str("sort", string(q.Sort)).
		Str("dir", string(q.Dir)).
		Int64("total", total).
		Int("page", page).
		Dur("took", time.Since(started)).
		Msg("combo search")

	return &dto.ComboSearchResponse{
		Items: dto.FromModelsToComboSummaries(combos, stats),
		Total: total,
		Page:  page,
		Pages: pages,
		Take:  q.Take,
		Sort:  q.Sort,
		Dir:   q.Dir,
	}, nil
}

func (s *comboService) ListMine(ctx context.Context, userID string, page, pageSize int) (*dto.PaginatedComboResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = search.DefaultTake
	}
	pageSize = min(pageSize, search.MaxTake)

	combos, total, err := s.comboRepo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}
	stats, err := s.comboRepo.Stats(ctx, comboIDs(combos))
	if err != nil {
		return nil, err
	}
	return dto.NewPaginatedComboResponse(dto.FromModelsToComboSummaries(combos, stats), total, page, pageSize), nil
}

// Picks lists, per character in catalog order, the featured combos. Characters without any
// visible combo are left out.
func (s *comboService) Picks(ctx context.Context) ([]dto.CharacterPicks, error) {
	return cache.Remember(ctx, s.cache, cache.KeyPicks, s.loadPicks)
}

// invalidatePicks drops the cached picks. A failed delete leaves them stale until the TTL.
func invalidatePicks(ctx context.Context, c *cache.Cache) {
	if err := c.Delete(ctx, cache.KeyPicks); err != nil {
		logging.Warn().Err(err).Str("key", cache.KeyPicks).Msg("cache invalidate failed")
	}
}

func (s *comboService) loadPicks(ctx context.Context) ([]dto.CharacterPicks, error) {
	rows, err := s.comboRepo.PickRows(ctx, search.PickTag)
	if err != nil {
		return nil, err
	}
	chosen := search.Picks(rows, search.PicksPerCharacter)

	var ids []int64
	for _, list := range chosen {
		ids = append(ids, list...)
	}
	combos, err := s.comboRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	stats, err := s.comboRepo.Stats(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]models.Combo, len(combos))
	for _, c := range combos {
		byID[c.ID] = c
	}

	characters, err := s.catalogRepo.ListCharacters(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CharacterPicks, 0, len(chosen))
	for _, ch := range characters {
		list := chosen[ch.ID]
		if len(list) == 0 {
			continue
		}
		section := dto.CharacterPicks{
			CharacterID:   ch.ID,
			CharacterName: ch.Name,
			Combos:        make([]dto.ComboSummary, 0, len(list)),
		}
		for _, id := range list {
			if c, ok := byID[id]; ok {
				section.Combos = append(section.Combos, dto.FromModelToComboSummary(c, stats[id]))
			}
		}
		out = append(out, section)
	}
	return out, nil
}

func comboIDs(combos []models.Combo) []int64 {
	ids := make([]int64, 0, len(combos))
	for _, c := range combos {
		ids = append(ids, c.ID)
	}
	return ids
}
