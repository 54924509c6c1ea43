package service

import (
	"context"
	"testing"

	"comboshare/internal/microservices/http-api/models"
	"comboshare/internal/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRatingSet(t *testing.T) {
	ratings := new(MockRatingRepository)
	combos := new(MockComboRepository)
	svc := NewRatingService(ratings, combos, nil)
	viewer := search.Viewer{UserID: "u-1"}

	combos.On("FindVisible", mock.Anything, int64(3), viewer).Return(&models.Combo{ID: 3}, nil)
	ratings.On("Upsert", mock.Anything, &models.Rating{ComboID: 3, UserID: "u-1", Value: 4}).Return(nil)
	ratings.On("Summary", mock.Anything, int64(3)).Return(4.5, int64(2), nil)

	res, err := svc.Set(context.Background(), 3, viewer, 4)

	require.NoError(t, err)
	require.NotNil(t, res.MyValue)
	assert.Equal(t, 4, *res.MyValue)
	assert.Equal(t, 4.5, res.Average)
	assert.Equal(t, int64(2), res.Count)
	ratings.AssertExpectations(t)
}

func TestRatingSet_OutOfRange(t *testing.T) {
	svc := NewRatingService(new(MockRatingRepository), new(MockComboRepository), nil)
	for _, v := range []int{0, 6, -1} {
		_, err := svc.Set(context.Background(), 3, search.Viewer{UserID: "u-1"}, v)
		assert.ErrorIs(t, err, ErrInvalidRating)
	}
}

func TestRatingSet_InvisibleCombo(t *testing.T) {
	ratings := new(MockRatingRepository)
	combos := new(MockComboRepository)
	svc := NewRatingService(ratings, combos, nil)
	viewer := search.Viewer{UserID: "u-1"}

	combos.On("FindVisible", mock.Anything, int64(3), viewer).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Set(context.Background(), 3, viewer, 5)

	assert.ErrorIs(t, err, ErrComboNotFound)
	ratings.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestRatingClear(t *testing.T) {
	ratings := new(MockRatingRepository)
	combos := new(MockComboRepository)
	svc := NewRatingService(ratings, combos, nil)
	viewer := search.Viewer{UserID: "u-1"}

	combos.On("FindVisible", mock.Anything, int64(3), viewer).Return(&models.Combo{ID: 3}, nil)
	ratings.On("Delete", mock.Anything, int64(3), "u-1").Return(nil)
	ratings.On("Summary", mock.Anything, int64(3)).Return(0.0, int64(0), nil)

	res, err := svc.Clear(context.Background(), 3, viewer)

	require.NoError(t, err)
	assert.Nil(t, res.MyValue)
	assert.Equal(t, int64(0), res.Count)
	ratings.AssertExpectations(t)
}
