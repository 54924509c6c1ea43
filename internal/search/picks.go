package search

import (
	"sort"
	"time"
)

// PickTag marks combos that editors hand-picked for a character.
const PickTag = "とりコレ"

// PicksPerCharacter is how many combos each character shows on the picks page.
const PicksPerCharacter = 3

type PickCandidate struct {
	ID          int64
	CharacterID int64
	CreatedAt   time.Time
	Picked      bool
	Favorites   int64
	Votes       int64
}

// Picks chooses up to perCharacter combos per character. Tagged combos come first, newest
// first; remaining slots go to the most favorited, then most rated, then newest.
func Picks(cands []PickCandidate, perCharacter int) map[int64][]int64 {
	byChar := make(map[int64][]PickCandidate)
	for _, c := range cands {
		byChar[c.CharacterID] = append(byChar[c.CharacterID], c)
	}

	out := make(map[int64][]int64, len(byChar))
	for charID, list := range byChar {
		sort.SliceStable(list, func(i, j int) bool {
			a, b := list[i], list[j]
			if a.Picked != b.Picked {
				return a.Picked
			}
			if !a.Picked {
				if a.Favorites != b.Favorites {
					return a.Favorites > b.Favorites
				}
				if a.Votes != b.Votes {
					return a.Votes > b.Votes
				}
			}
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID > b.ID
		})

		n := min(perCharacter, len(list))
		ids := make([]int64, n)
		for i := 0; i < n; i++ {
			ids[i] = list[i].ID
		}
		out[charID] = ids
	}
	return out
}
