package handler_test

import (
	"context"

	"comboshare/internal/microservices/http-api/dto"
	"comboshare/internal/microservices/http-api/models"
	"comboshare/internal/microservices/http-api/service"
	"comboshare/internal/search"

	"github.com/stretchr/testify/mock"
)

// --- MOCK SERVICES ---

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResult), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*service.Principal, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Principal), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, userID string) (*models.User, bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Bool(1), args.Error(2)
}

func (m *MockAuthService) IsAdmin(email string) bool {
	return m.Called(email).Bool(0)
}

type MockComboService struct {
	mock.Mock
}

func (m *MockComboService) Create(ctx context.Context, userID string, req dto.CreateComboDTO) (*dto.ComboDetailResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ComboDetailResponse), args.Error(1)
}

func (m *MockComboService) Get(ctx context.Context, id int64, viewer search.Viewer) (*dto.ComboDetailResponse, error) {
	args := m.Called(ctx, id, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ComboDetailResponse), args.Error(1)
}

func (m *MockComboService) Search(ctx context.Context, params search.Params, viewer search.Viewer) (*dto.ComboSearchResponse, error) {
	args := m.Called(ctx, params, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ComboSearchResponse), args.Error(1)
}

func (m *MockComboService) ListMine(ctx context.Context, userID string, page, pageSize int) (*dto.PaginatedComboResponse, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedComboResponse), args.Error(1)
}

func (m *MockComboService) Picks(ctx context.Context) ([]dto.CharacterPicks, error) {
	args := m.Called(ctx)
	return args.Get(0).([]dto.CharacterPicks), args.Error(1)
}

type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) Set(ctx context.Context, comboID int64, viewer search.Viewer, value int) (*dto.RatingSummaryResponse, error) {
	args := m.Called(ctx, comboID, viewer, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RatingSummaryResponse), args.Error(1)
}

func (m *MockRatingService) Clear(ctx context.Context, comboID int64, viewer search.Viewer) (*dto.RatingSummaryResponse, error) {
	args := m.Called(ctx, comboID, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RatingSummaryResponse), args.Error(1)
}

type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) Toggle(ctx context.Context, comboID int64, viewer search.Viewer) (*dto.FavoriteResponse, error) {
	args := m.Called(ctx, comboID, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FavoriteResponse), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) Create(ctx context.Context, comboID int64, viewer search.Viewer, body string) (*dto.CommentResponse, error) {
	args := m.Called(ctx, comboID, viewer, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) List(ctx context.Context, comboID int64, viewer search.Viewer, page, pageSize int) (*dto.PaginatedCommentResponse, error) {
	args := m.Called(ctx, comboID, viewer, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedCommentResponse), args.Error(1)
}

func (m *MockCommentService) DeleteOwn(ctx context.Context, commentID int64, userID string) error {
	return m.Called(ctx, commentID, userID).Error(0)
}

type MockModerationService struct {
	mock.Mock
}

func (m *MockModerationService) result(args mock.Arguments) (*service.ModerationResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ModerationResult), args.Error(1)
}

func (m *MockModerationService) PublishCombo(ctx context.Context, id int64, publish bool) (*service.ModerationResult, error) {
	return m.result(m.Called(ctx, id, publish))
}

func (m *MockModerationService) DeleteCombo(ctx context.Context, id int64) (*service.ModerationResult, error) {
	return m.result(m.Called(ctx, id))
}

func (m *MockModerationService) RestoreCombo(ctx context.Context, id int64) (*service.ModerationResult, error) {
	return m.result(m.Called(ctx, id))
}

func (m *MockModerationService) PublishComment(ctx context.Context, id int64, publish bool) (*service.ModerationResult, error) {
	return m.result(m.Called(ctx, id, publish))
}

func (m *MockModerationService) DeleteComment(ctx context.Context, id int64) (*service.ModerationResult, error) {
	return m.result(m.Called(ctx, id))
}

func (m *MockModerationService) RestoreComment(ctx context.Context, id int64) (*service.ModerationResult, error) {
	return m.result(m.Called(ctx, id))
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Characters(ctx context.Context) ([]dto.CharacterResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]dto.CharacterResponse), args.Error(1)
}

func (m *MockCatalogService) Lookups(ctx context.Context) (*dto.LookupsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LookupsResponse), args.Error(1)
}

func (m *MockCatalogService) Moves(ctx context.Context, characterID int64) ([]dto.MoveResponse, error) {
	args := m.Called(ctx, characterID)
	return args.Get(0).([]dto.MoveResponse), args.Error(1)
}
