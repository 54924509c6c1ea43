package search

import (
	"math"
	"sort"
	"time"
)

// Weights tune the recommended score. PriorVotes must be positive.
type Weights struct {
	PriorVotes float64
	Favorite   float64
	Comment    float64
}

func DefaultWeights() Weights {
	return Weights{PriorVotes: 10, Favorite: 0.05, Comment: 0.02}
}

// Candidate holds the aggregates of one matching combo. Average is ignored when Votes is zero.
type Candidate struct {
	ID        int64
	CreatedAt time.Time
	Votes     int64
	Average   float64
	Favorites int64
	Comments  int64
}

func (c Candidate) Rated() bool { return c.Votes > 0 }

// Bayes smooths an average toward the global mean c with m prior votes.
func Bayes(votes int64, average, c, m float64) float64 {
	if votes <= 0 {
		return 0
	}
	v := float64(votes)
	return (v/(v+m))*average + (m/(v+m))*c
}

// Score blends the smoothed rating with log-scaled favorite and comment counts.
func Score(cand Candidate, globalAvg float64, w Weights) float64 {
	return Bayes(cand.Votes, cand.Average, globalAvg, w.PriorVotes) +
		w.Favorite*math.Log1p(float64(max(cand.Favorites, 0))) +
		w.Comment*math.Log1p(float64(max(cand.Comments, 0)))
}

// Rank orders candidates in place for an aggregate sort. For rating and recommend, rated
// combos always precede unrated ones whichever direction is requested.
func Rank(cands []Candidate, s Sort, d Dir, globalAvg float64, w Weights) {
	keys := make(map[int64]float64, len(cands))
	for _, c := range cands {
		switch s {
		case SortRecommend:
			keys[c.ID] = Score(c, globalAvg, w)
		case SortRating:
			keys[c.ID] = Bayes(c.Votes, c.Average, globalAvg, w.PriorVotes)
		case SortPopular:
			keys[c.ID] = float64(c.Favorites)
		}
	}

	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]

		if s == SortRecommend || s == SortRating {
			if a.Rated() != b.Rated() {
				return a.Rated()
			}
		}

		if ka, kb := keys[a.ID], keys[b.ID]; ka != kb {
			if d == DirAsc {
				return ka < kb
			}
			return ka > kb
		}

		return tieBreak(a, b)
	})
}

func tieBreak(a, b Candidate) bool {
	if a.Votes != b.Votes {
		return a.Votes > b.Votes
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

// IDs returns candidate ids in their current order.
func IDs(cands []Candidate) []int64 {
	ids := make([]int64, len(cands))
	for i, c := range cands {
		ids[i] = c.ID
	}
	return ids
}
