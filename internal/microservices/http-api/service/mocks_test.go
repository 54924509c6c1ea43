package service

import (
	"context"
	"time"

	"comboshare/internal/microservices/http-api/models"
	"comboshare/internal/search"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockSessionRepository mocks the SessionRepository interface
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) ReplaceForUser(ctx context.Context, s *models.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) FindByID(ctx context.Context, id string) (*models.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockComboRepository mocks the ComboRepository interface
type MockComboRepository struct {
	mock.Mock
}

func (m *MockComboRepository) Create(ctx context.Context, combo *models.Combo, tagNames []string) error {
	args := m.Called(ctx, combo, tagNames)
	return args.Error(0)
}

func (m *MockComboRepository) FindByID(ctx context.Context, id int64) (*models.Combo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Combo), args.Error(1)
}

func (m *MockComboRepository) FindVisible(ctx context.Context, id int64, viewer search.Viewer) (*models.Combo, error) {
	args := m.Called(ctx, id, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Combo), args.Error(1)
}

func (m *MockComboRepository) FindByIDs(ctx context.Context, ids []int64) ([]models.Combo, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.Combo), args.Error(1)
}

func (m *MockComboRepository) Count(ctx context.Context, q search.Query) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockComboRepository) ListPage(ctx context.Context, q search.Query, offset, limit int) ([]models.Combo, error) {
	args := m.Called(ctx, q, offset, limit)
	return args.Get(0).([]models.Combo), args.Error(1)
}

func (m *MockComboRepository) Candidates(ctx context.Context, q search.Query) ([]search.Candidate, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]search.Candidate), args.Error(1)
}

func (m *MockComboRepository) GlobalAverage(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockComboRepository) Stats(ctx context.Context, ids []int64) (map[int64]models.ComboStats, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[int64]models.ComboStats), args.Error(1)
}

func (m *MockComboRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]models.Combo, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]models.Combo), args.Get(1).(int64), args.Error(2)
}

func (m *MockComboRepository) PickRows(ctx context.Context, tagName string) ([]search.PickCandidate, error) {
	args := m.Called(ctx, tagName)
	return args.Get(0).([]search.PickCandidate), args.Error(1)
}

func (m *MockComboRepository) SetPublished(ctx context.Context, id int64, published bool) error {
	args := m.Called(ctx, id, published)
	return args.Error(0)
}

func (m *MockComboRepository) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockComboRepository) Restore(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCatalogRepository mocks the CatalogRepository interface
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListCharacters(ctx context.Context) ([]models.Character, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Character), args.Error(1)
}

func (m *MockCatalogRepository) CharacterExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) ListMoves(ctx context.Context, characterID int64) ([]models.Move, error) {
	args := m.Called(ctx, characterID)
	return args.Get(0).([]models.Move), args.Error(1)
}

func (m *MockCatalogRepository) ListConditions(ctx context.Context) ([]models.Condition, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Condition), args.Error(1)
}

func (m *MockCatalogRepository) ListAttributes(ctx context.Context) ([]models.Attribute, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Attribute), args.Error(1)
}

// MockRatingRepository mocks the RatingRepository interface
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) Delete(ctx context.Context, comboID int64, userID string) error {
	args := m.Called(ctx, comboID, userID)
	return args.Error(0)
}

func (m *MockRatingRepository) GetByComboAndUser(ctx context.Context, comboID int64, userID string) (*models.Rating, error) {
	args := m.Called(ctx, comboID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingRepository) Summary(ctx context.Context, comboID int64) (float64, int64, error) {
	args := m.Called(ctx, comboID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

// MockFavoriteRepository mocks the FavoriteRepository interface
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Toggle(ctx context.Context, comboID int64, userID string) (bool, error) {
	args := m.Called(ctx, comboID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, comboID int64, userID string) (bool, error) {
	args := m.Called(ctx, comboID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) Count(ctx context.Context, comboID int64) (int64, error) {
	args := m.Called(ctx, comboID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCommentRepository mocks the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id int64) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListVisibleByCombo(ctx context.Context, comboID int64, page, pageSize int) ([]models.Comment, int64, error) {
	args := m.Called(ctx, comboID, page, pageSize)
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) SetPublished(ctx context.Context, id int64, published bool) error {
	args := m.Called(ctx, id, published)
	return args.Error(0)
}

func (m *MockCommentRepository) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockCommentRepository) Restore(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
