package dto

import (
	"errors"
	"strings"
)

var (
	ErrModerationMissingID      = errors.New("id is required")
	ErrModerationMissingPublish = errors.New("publish flag is required")
)

// ModerationRequest accepts every spelling clients send for moderation actions:
// the target id as id, comboId or commentId, and the publish flag as publish, isPublished
// or status ("publish"/"unpublish").
type ModerationRequest struct {
	ID          *int64 `json:"id"`
	ComboID     *int64 `json:"comboId"`
	CommentID   *int64 `json:"commentId"`
	Publish     *bool  `json:"publish"`
	IsPublished *bool  `json:"isPublished"`
	Status      string `json:"status"`
}

// ModerationInput is the canonical form handlers pass to the moderation service.
type ModerationInput struct {
	ID      int64
	Publish *bool
}

// Normalize resolves the alternate field names. requirePublish is set for publish actions.
func (r ModerationRequest) Normalize(requirePublish bool) (ModerationInput, error) {
	var in ModerationInput

	for _, id := range []*int64{r.ID, r.ComboID, r.CommentID} {
		if id != nil && *id > 0 {
			in.ID = *id
			break
		}
	}
	if in.ID == 0 {
		return in, ErrModerationMissingID
	}

	switch {
	case r.Publish != nil:
		in.Publish = r.Publish
	case r.IsPublished != nil:
		in.Publish = r.IsPublished
	default:
		switch strings.ToLower(strings.TrimSpace(r.Status)) {
		case "publish", "published":
			v := true
			in.Publish = &v
		case "unpublish", "unpublished":
			v := false
			in.Publish = &v
		}
	}
	if requirePublish && in.Publish == nil {
		return in, ErrModerationMissingPublish
	}
	return in, nil
}
