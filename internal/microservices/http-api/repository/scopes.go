package repository

import (
	"comboshare/internal/search"

	"gorm.io/gorm"
)

// Visible restricts a combos query to what viewer may see.
func Visible(viewer search.Viewer) func(*gorm.DB) *gorm.DB {
	cond := search.Visibility(viewer)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(cond.SQL, cond.Args...)
	}
}

// Filtered applies every condition of a built search query.
func Filtered(q search.Query) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, c := range q.Where {
			db = db.Where(c.SQL, c.Args...)
		}
		return db
	}
}

// CommentVisible hides deleted and unpublished comments.
func CommentVisible(db *gorm.DB) *gorm.DB {
	return db.Where("comments.deleted_at IS NULL AND comments.is_published = ?", true)
}
