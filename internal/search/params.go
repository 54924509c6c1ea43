// Package search turns combo list filters into a store query and orders ranked results.
package search

import (
	"net/url"
	"strconv"
	"strings"
)

type Sort string

const (
	SortCreated   Sort = "created"
	SortDamage    Sort = "damage"
	SortDrive     Sort = "drive"
	SortSuper     Sort = "super"
	SortPopular   Sort = "popular"
	SortRating    Sort = "rating"
	SortRecommend Sort = "recommend"
)

type Dir string

const (
	DirAsc  Dir = "asc"
	DirDesc Dir = "desc"
)

type Mode string

const (
	ModeAnd Mode = "and"
	ModeOr  Mode = "or"
)

const (
	DefaultPage = 1
	MaxPage     = 1_000_000
	DefaultTake = 50
	MaxTake     = 200
)

// Ranked reports whether the sort needs aggregate statistics and is ordered in memory.
func (s Sort) Ranked() bool {
	return s == SortPopular || s == SortRating || s == SortRecommend
}

func parseSort(raw string) Sort {
	switch s := Sort(strings.ToLower(strings.TrimSpace(raw))); s {
	case SortCreated, SortDamage, SortDrive, SortSuper, SortPopular, SortRating, SortRecommend:
		return s
	}
	return SortCreated
}

func parseDir(raw string) Dir {
	if strings.EqualFold(strings.TrimSpace(raw), string(DirAsc)) {
		return DirAsc
	}
	return DirDesc
}

func parseMode(raw string) Mode {
	if strings.EqualFold(strings.TrimSpace(raw), string(ModeOr)) {
		return ModeOr
	}
	return ModeAnd
}

// TagRef names a tag either by id or by its exact name.
type TagRef struct {
	ID   int64
	Name string
}

func (t TagRef) IsID() bool { return t.Name == "" }

// Params is the normalized form of the combo list query string.
type Params struct {
	Q           string
	CharacterID *int64
	Tags        []TagRef
	Mode        Mode
	MinDamage   *int
	MaxDamage   *int
	MaxDrive    *int
	MaxSuper    *int
	Sort        Sort
	Dir         Dir
	Page        int
	Take        int
}

// DefaultParams returns the parameters used when nothing is supplied.
func DefaultParams() Params {
	return Params{
		Mode: ModeAnd,
		Sort: SortCreated,
		Dir:  DirDesc,
		Page: DefaultPage,
		Take: DefaultTake,
	}
}

// ParseParams reads filters from a query string. Malformed values are treated as absent and
// out-of-range paging values are clamped, so it never fails.
func ParseParams(values url.Values) Params {
	p := DefaultParams()

	p.Q = strings.TrimSpace(values.Get("q"))
	if id, ok := parseInt64(values.Get("characterId")); ok && id > 0 {
		p.CharacterID = &id
	}
	p.Tags = parseTags(values["tags"])
	p.Mode = parseMode(values.Get("mode"))

	p.MinDamage = optionalInt(values.Get("minDamage"))
	p.MaxDamage = optionalInt(values.Get("maxDamage"))
	p.MaxDrive = optionalInt(values.Get("maxDrive"))
	p.MaxSuper = optionalInt(values.Get("maxSuper"))

	p.Sort = parseSort(values.Get("sort"))
	p.Dir = parseDir(values.Get("dir"))

	if page, ok := parseInt(values.Get("page")); ok {
		p.Page = clamp(page, 1, MaxPage)
	}
	if take, ok := parseInt(values.Get("take")); ok {
		p.Take = clamp(take, 1, MaxTake)
	}
	return p
}

// Normalize applies defaults and bounds to hand-built params.
func (p Params) Normalize() Params {
	p.Q = strings.TrimSpace(p.Q)
	if p.Mode != ModeOr {
		p.Mode = ModeAnd
	}
	p.Sort = parseSort(string(p.Sort))
	p.Dir = parseDir(string(p.Dir))
	if p.Page == 0 {
		p.Page = DefaultPage
	}
	p.Page = clamp(p.Page, 1, MaxPage)
	if p.Take == 0 {
		p.Take = DefaultTake
	}
	p.Take = clamp(p.Take, 1, MaxTake)
	return p
}

func parseTags(raw []string) []TagRef {
	seen := make(map[TagRef]struct{})
	var out []TagRef
	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			ref := TagRef{Name: part}
			if id, ok := parseInt64(part); ok && id > 0 {
				ref = TagRef{ID: id}
			}
			if _, dup := seen[ref]; dup {
				continue
			}
			seen[ref] = struct{}{}
			out = append(out, ref)
		}
	}
	return out
}

func parseInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseInt64(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func optionalInt(raw string) *int {
	n, ok := parseInt(raw)
	if !ok {
		return nil
	}
	return &n
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
