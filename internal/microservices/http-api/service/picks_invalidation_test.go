package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"comboshare/internal/cache"
	"comboshare/internal/logging"
	"comboshare/internal/microservices/http-api/dto"
	"comboshare/internal/microservices/http-api/models"
	"comboshare/internal/search"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// downCache is enabled but points at a closed port, so every call fails fast.
func downCache(t *testing.T) *cache.Cache {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := cache.NewWithClient(client, time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func captureWarnings(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := logging.Logger()
	logging.SetLogger(zerolog.New(&buf).Level(zerolog.WarnLevel))
	t.Cleanup(func() { logging.SetLogger(prev) })
	return &buf
}

func TestInvalidatePicks_NilCacheIsSilent(t *testing.T) {
	buf := captureWarnings(t)

	invalidatePicks(context.Background(), nil)

	assert.Empty(t, buf.String())
}

func TestInvalidatePicks_LogsDeleteFailure(t *testing.T) {
	buf := captureWarnings(t)

	invalidatePicks(context.Background(), downCache(t))

	assert.Contains(t, buf.String(), "cache invalidate failed")
	assert.Contains(t, buf.String(), `"key":"picks"`)
}

func TestCreate_CacheFailureDoesNotFailWrite(t *testing.T) {
	buf := captureWarnings(t)
	f := newComboFixture()
	f.svc = NewComboService(f.combos, f.catalog, f.ratings, f.favorites, downCache(t), search.DefaultWeights())
	viewer := search.Viewer{UserID: "u-1"}

	f.catalog.On("CharacterExists", mock.Anything, int64(1)).Return(true, nil)
	f.combos.On("Create", mock.Anything, mock.AnythingOfType("*models.Combo"), []string{}).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Combo).ID = 7 }).
		Return(nil)
	f.combos.On("FindVisible", mock.Anything, int64(7), viewer).Return(&models.Combo{ID: 7, UserID: "u-1"}, nil)
	f.combos.On("Stats", mock.Anything, []int64{7}).Return(map[int64]models.ComboStats{}, nil)
	f.ratings.On("GetByComboAndUser", mock.Anything, int64(7), "u-1").Return(nil, gorm.ErrRecordNotFound)
	f.favorites.On("Exists", mock.Anything, int64(7), "u-1").Return(false, nil)

	d, err := f.svc.Create(context.Background(), "u-1", dto.CreateComboDTO{CharacterID: 1, ComboText: "2 弱P"})

	require.NoError(t, err)
	assert.Equal(t, int64(7), d.ID)
	assert.Contains(t, buf.String(), "cache invalidate failed")
}

func TestRatingWrites_InvalidatePicks(t *testing.T) {
	buf := captureWarnings(t)
	ratings := new(MockRatingRepository)
	combos := new(MockComboRepository)
	svc := NewRatingService(ratings, combos, downCache(t))
	viewer := search.Viewer{UserID: "u-1"}

	combos.On("FindVisible", mock.Anything, int64(3), viewer).Return(&models.Combo{ID: 3}, nil)
	ratings.On("Upsert", mock.Anything, mock.AnythingOfType("*models.Rating")).Return(nil)
	ratings.On("Delete", mock.Anything, int64(3), "u-1").Return(nil)
	ratings.On("Summary", mock.Anything, int64(3)).Return(5.0, int64(1), nil)

	_, err := svc.Set(context.Background(), 3, viewer, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("cache invalidate failed")))

	_, err = svc.Clear(context.Background(), 3, viewer)
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("cache invalidate failed")))
}

func TestRatingSet_RejectedValueKeepsPicks(t *testing.T) {
	buf := captureWarnings(t)
	svc := NewRatingService(new(MockRatingRepository), new(MockComboRepository), downCache(t))

	_, err := svc.Set(context.Background(), 3, search.Viewer{UserID: "u-1"}, 9)

	assert.ErrorIs(t, err, ErrInvalidRating)
	assert.Empty(t, buf.String())
}

func TestFavoriteToggle_InvalidatesPicks(t *testing.T) {
	buf := captureWarnings(t)
	favorites := new(MockFavoriteRepository)
	combos := new(MockComboRepository)
	svc := NewFavoriteService(favorites, combos, downCache(t))
	viewer := search.Viewer{UserID: "u-1"}

	combos.On("FindVisible", mock.Anything, int64(8), viewer).Return(&models.Combo{ID: 8}, nil)
	favorites.On("Toggle", mock.Anything, int64(8), "u-1").Return(true, nil)
	favorites.On("Count", mock.Anything, int64(8)).Return(int64(1), nil)

	res, err := svc.Toggle(context.Background(), 8, viewer)

	require.NoError(t, err)
	assert.True(t, res.Favorited)
	assert.Contains(t, buf.String(), "cache invalidate failed")
}

func TestModerationComboAction_InvalidatesPicks(t *testing.T) {
	buf := captureWarnings(t)
	combos := new(MockComboRepository)
	svc := NewModerationService(combos, new(MockCommentRepository), downCache(t))

	combos.On("FindByID", mock.Anything, int64(1)).Return(&models.Combo{ID: 1}, nil)
	combos.On("SetPublished", mock.Anything, int64(1), false).Return(nil)

	_, err := svc.PublishCombo(context.Background(), 1, false)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "cache invalidate failed")
}
