package search

import (
	"fmt"
	"strings"

	"comboshare/internal/notation"
)

// ComboTable is the alias every generated fragment refers to.
const ComboTable = "combos"

// Viewer is the caller a query is evaluated for. The zero value is an anonymous visitor.
type Viewer struct {
	UserID  string
	IsAdmin bool
}

func (v Viewer) Anonymous() bool { return v.UserID == "" }

// Condition is one SQL predicate with positional "?" arguments.
type Condition struct {
	SQL  string
	Args []any
}

// Query is what the combo store executes for a search.
type Query struct {
	Where    []Condition
	OrderBy  string
	Ranked   bool
	Variants []string
	Sort     Sort
	Dir      Dir
	Page     int
	Take     int
}

// Visibility is the single rule deciding which combos a viewer may see: soft-deleted combos are
// always hidden, unpublished ones are shown only to their author and to admins.
func Visibility(v Viewer) Condition {
	switch {
	case v.IsAdmin:
		return Condition{SQL: ComboTable + ".deleted_at IS NULL"}
	case v.Anonymous():
		return Condition{
			SQL:  ComboTable + ".deleted_at IS NULL AND " + ComboTable + ".is_published = ?",
			Args: []any{true},
		}
	default:
		return Condition{
			SQL:  ComboTable + ".deleted_at IS NULL AND (" + ComboTable + ".is_published = ? OR " + ComboTable + ".user_id = ?)",
			Args: []any{true, v.UserID},
		}
	}
}

// Build translates params into filter conditions and a deterministic order.
func Build(p Params, v Viewer) Query {
	p = p.Normalize()

	q := Query{
		Where:  []Condition{Visibility(v)},
		Sort:   p.Sort,
		Dir:    p.Dir,
		Page:   p.Page,
		Take:   p.Take,
		Ranked: p.Sort.Ranked(),
	}

	if p.CharacterID != nil {
		q.Where = append(q.Where, Condition{SQL: ComboTable + ".character_id = ?", Args: []any{*p.CharacterID}})
	}
	if p.MinDamage != nil {
		q.Where = append(q.Where, Condition{
			SQL:  ComboTable + ".damage IS NOT NULL AND " + ComboTable + ".damage >= ?",
			Args: []any{*p.MinDamage},
		})
	}
	if p.MaxDamage != nil {
		q.Where = append(q.Where, Condition{
			SQL:  ComboTable + ".damage IS NOT NULL AND " + ComboTable + ".damage <= ?",
			Args: []any{*p.MaxDamage},
		})
	}
	if p.MaxDrive != nil {
		q.Where = append(q.Where, Condition{SQL: ComboTable + ".drive_cost <= ?", Args: []any{*p.MaxDrive}})
	}
	if p.MaxSuper != nil {
		q.Where = append(q.Where, Condition{SQL: ComboTable + ".super_cost <= ?", Args: []any{*p.MaxSuper}})
	}

	if p.Q != "" {
		q.Variants = notation.QueryVariants(p.Q)
		if c, ok := keywordCondition(q.Variants); ok {
			q.Where = append(q.Where, c)
		}
	}

	if len(p.Tags) > 0 {
		q.Where = append(q.Where, tagConditions(p.Tags, p.Mode)...)
	}

	q.OrderBy = OrderBy(p.Sort, p.Dir)
	return q
}

const tagExists = "EXISTS (SELECT 1 FROM combo_tags ct JOIN tags t ON t.id = ct.tag_id WHERE ct.combo_id = " +
	ComboTable + ".id AND %s)"

func keywordCondition(variants []string) (Condition, bool) {
	if len(variants) == 0 {
		return Condition{}, false
	}
	parts := make([]string, 0, len(variants))
	args := make([]any, 0, len(variants)*2)
	for _, variant := range variants {
		pattern := "%" + EscapeLike(variant) + "%"
		parts = append(parts, "("+ComboTable+".combo_text ILIKE ? OR "+fmt.Sprintf(tagExists, "t.name ILIKE ?")+")")
		args = append(args, pattern, pattern)
	}
	return Condition{SQL: "(" + strings.Join(parts, " OR ") + ")", Args: args}, true
}

func tagConditions(tags []TagRef, mode Mode) []Condition {
	if mode == ModeAnd {
		out := make([]Condition, 0, len(tags))
		for _, tag := range tags {
			if tag.IsID() {
				out = append(out, Condition{SQL: fmt.Sprintf(tagExists, "t.id = ?"), Args: []any{tag.ID}})
			} else {
				out = append(out, Condition{SQL: fmt.Sprintf(tagExists, "t.name = ?"), Args: []any{tag.Name}})
			}
		}
		return out
	}

	var ids []int64
	var names []string
	for _, tag := range tags {
		if tag.IsID() {
			ids = append(ids, tag.ID)
		} else {
			names = append(names, tag.Name)
		}
	}

	var preds []string
	var args []any
	if len(ids) > 0 {
		preds = append(preds, "t.id IN ?")
		args = append(args, ids)
	}
	if len(names) > 0 {
		preds = append(preds, "t.name IN ?")
		args = append(args, names)
	}
	return []Condition{{
		SQL:  fmt.Sprintf(tagExists, "("+strings.Join(preds, " OR ")+")"),
		Args: args,
	}}
}

// OrderBy returns the SQL order for column sorts. Ties always fall back to newest first and
// then the highest id so pagination is stable. Ranked sorts get the created order, which the
// scorer replaces.
func OrderBy(s Sort, d Dir) string {
	dir := "DESC"
	if d == DirAsc {
		dir = "ASC"
	}
	tie := ComboTable + ".created_at DESC, " + ComboTable + ".id DESC"

	switch s {
	case SortDamage:
		return ComboTable + ".damage " + dir + " NULLS LAST, " + tie
	case SortDrive:
		return ComboTable + ".drive_cost " + dir + ", " + tie
	case SortSuper:
		return ComboTable + ".super_cost " + dir + ", " + tie
	case SortCreated:
		return ComboTable + ".created_at " + dir + ", " + ComboTable + ".id DESC"
	default:
		return tie
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so user input matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
