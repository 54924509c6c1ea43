package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func i64(v int64) *int64 { return &v }
func b(v bool) *bool     { return &v }

func TestModerationRequestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		req         ModerationRequest
		wantID      int64
		wantPublish *bool
	}{
		{"id and publish", ModerationRequest{ID: i64(3), Publish: b(true)}, 3, b(true)},
		{"comboId and isPublished", ModerationRequest{ComboID: i64(4), IsPublished: b(false)}, 4, b(false)},
		{"commentId and status", ModerationRequest{CommentID: i64(5), Status: "Unpublish"}, 5, b(false)},
		{"status publish", ModerationRequest{ID: i64(6), Status: "publish"}, 6, b(true)},
		{"publish wins over status", ModerationRequest{ID: i64(7), Publish: b(true), Status: "unpublish"}, 7, b(true)},
		{"id wins over comboId", ModerationRequest{ID: i64(8), ComboID: i64(9), Publish: b(true)}, 8, b(true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := tt.req.Normalize(true)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, in.ID)
			assert.Equal(t, tt.wantPublish, in.Publish)
		})
	}
}

func TestModerationRequestNormalizeErrors(t *testing.T) {
	_, err := ModerationRequest{Publish: b(true)}.Normalize(true)
	assert.ErrorIs(t, err, ErrModerationMissingID)

	_, err = ModerationRequest{ID: i64(0), ComboID: i64(-1)}.Normalize(false)
	assert.ErrorIs(t, err, ErrModerationMissingID)

	_, err = ModerationRequest{ID: i64(1), Status: "maybe"}.Normalize(true)
	assert.ErrorIs(t, err, ErrModerationMissingPublish)

	in, err := ModerationRequest{ComboID: i64(2)}.Normalize(false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), in.ID)
	assert.Nil(t, in.Publish)
}
