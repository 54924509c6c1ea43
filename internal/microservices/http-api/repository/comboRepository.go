package repository

import (
	"context"
	"fmt"
	"time"

	"comboshare/internal/microservices/http-api/models"
	"comboshare/internal/search"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ComboRepository interface {
	Create(ctx context.Context, combo *models.Combo, tagNames []string) error
	FindByID(ctx context.Context, id int64) (*models.Combo, error)
	FindVisible(ctx context.Context, id int64, viewer search.Viewer) (*models.Combo, error)
	FindByIDs(ctx context.Context, ids []int64) ([]models.Combo, error)
	Count(ctx context.Context, q search.Query) (int64, error)
	ListPage(ctx context.Context, q search.Query, offset, limit int) ([]models.Combo, error)
	Candidates(ctx context.Context, q search.Query) ([]search.Candidate, error)
	GlobalAverage(ctx context.Context) (float64, error)
	Stats(ctx context.Context, ids []int64) (map[int64]models.ComboStats, error)
	ListByUser(ctx context.Context, userID string, page, pageSize int) ([]models.Combo, int64, error)
	PickRows(ctx context.Context, tagName string) ([]search.PickCandidate, error)
	SetPublished(ctx context.Context, id int64, published bool) error
	SoftDelete(ctx context.Context, id int64, at time.Time) error
	Restore(ctx context.Context, id int64) error
}

type comboRepository struct {
	db *gorm.DB
}

func NewComboRepository(db *gorm.DB) ComboRepository {
	return &comboRepository{db: db}
}

// statsColumns aggregate per combo. Only visible comments are counted.
const statsColumns = `(SELECT COUNT(*) FROM ratings r WHERE r.combo_id = combos.id) AS votes,
	(SELECT COALESCE(AVG(r.value), 0)::float8 FROM ratings r WHERE r.combo_id = combos.id) AS average,
	(SELECT COUNT(*) FROM favorites f WHERE f.combo_id = combos.id) AS favorites,
	(SELECT COUNT(*) FROM comments cm WHERE cm.combo_id = combos.id AND cm.deleted_at IS NULL AND cm.is_published) AS comments`

func preloadSummary(db *gorm.DB) *gorm.DB {
	return db.Preload("Character").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name ASC") })
}

// Create inserts the combo with its steps and links tags by name, creating missing tags,
// all in one transaction.
func (r *comboRepository) Create(ctx context.Context, combo *models.Combo, tagNames []string) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin create combo: %w", tx.Error)
	}

	tags := make([]models.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		tag := models.Tag{Name: name}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&tag).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("upsert tag %q: %w", name, err)
		}
		if tag.ID == 0 {
			if err := tx.Where("name = ?", name).First(&tag).Error; err != nil {
				tx.Rollback()
				return fmt.Errorf("load tag %q: %w", name, err)
			}
		}
		tags = append(tags, tag)
	}

	combo.Tags = nil
	if err := tx.Omit(clause.Associations).Create(combo).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("create combo: %w", err)
	}

	for i := range combo.Steps {
		combo.Steps[i].ComboID = combo.ID
	}
	if len(combo.Steps) > 0 {
		if err := tx.Omit("Move").Create(&combo.Steps).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("create combo steps: %w", err)
		}
	}

	if len(tags) > 0 {
		links := make([]models.ComboTag, 0, len(tags))
		for _, t := range tags {
			links = append(links, models.ComboTag{ComboID: combo.ID, TagID: t.ID})
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("link combo tags: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("commit create combo: %w", err)
	}
	combo.Tags = tags
	return nil
}

// FindByID ignores visibility; moderation uses it.
func (r *comboRepository) FindByID(ctx context.Context, id int64) (*models.Combo, error) {
	var c models.Combo
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *comboRepository) FindVisible(ctx context.Context, id int64, viewer search.Viewer) (*models.Combo, error) {
	var c models.Combo
	err := r.db.WithContext(ctx).
		Scopes(Visible(viewer), preloadSummary).
		Preload("Condition").
		Preload("Attribute").
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("combo_steps.step_order ASC, combo_steps.id ASC") }).
		Preload("Steps.Move").
		Where("combos.id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByIDs loads summaries for ids, returned in the order of ids.
func (r *comboRepository) FindByIDs(ctx context.Context, ids []int64) ([]models.Combo, error) {
	if len(ids) == 0 {
		return []models.Combo{}, nil
	}
	var list []models.Combo
	if err := r.db.WithContext(ctx).Scopes(preloadSummary).Where("combos.id IN ?", ids).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("find combos by ids: %w", err)
	}

	byID := make(map[int64]models.Combo, len(list))
	for _, c := range list {
		byID[c.ID] = c
	}
	ordered := make([]models.Combo, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered, nil
}

func (r *comboRepository) Count(ctx context.Context, q search.Query) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Combo{}).Scopes(Filtered(q)).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count combos: %w", err)
	}
	return total, nil
}

func (r *comboRepository) ListPage(ctx context.Context, q search.Query, offset, limit int) ([]models.Combo, error) {
	var list []models.Combo
	err := r.db.WithContext(ctx).
		Scopes(Filtered(q), preloadSummary).
		Order(q.OrderBy).
		Limit(limit).
		Offset(offset).
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list combos: %w", err)
	}
	return list, nil
}

func (r *comboRepository) Candidates(ctx context.Context, q search.Query) ([]search.Candidate, error) {
	var rows []search.Candidate
	err := r.db.WithContext(ctx).
		Model(&models.Combo{}).
		Scopes(Filtered(q)).
		Select("combos.id, combos.created_at, " + statsColumns).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load ranking candidates: %w", err)
	}
	return rows, nil
}

// GlobalAverage is the mean of every rating value, 0 when nothing is rated.
func (r *comboRepository) GlobalAverage(ctx context.Context) (float64, error) {
	var avg float64
	if err := r.db.WithContext(ctx).Model(&models.Rating{}).Select("COALESCE(AVG(value), 0)::float8").Scan(&avg).Error; err != nil {
		return 0, fmt.Errorf("global rating average: %w", err)
	}
	return avg, nil
}

func (r *comboRepository) Stats(ctx context.Context, ids []int64) (map[int64]models.ComboStats, error) {
	out := make(map[int64]models.ComboStats, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.ComboStats
	err := r.db.WithContext(ctx).
		Model(&models.Combo{}).
		Select("combos.id AS combo_id, "+statsColumns).
		Where("combos.id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load combo stats: %w", err)
	}
	for _, row := range rows {
		out[row.ComboID] = row
	}
	return out, nil
}

// ListByUser returns the author's combos including unpublished ones, newest first.
func (r *comboRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]models.Combo, int64, error) {
	var list []models.Combo
	var total int64

	base := r.db.WithContext(ctx).Model(&models.Combo{}).Where("combos.user_id = ? AND combos.deleted_at IS NULL", userID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count user combos: %w", err)
	}

	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Scopes(preloadSummary).
		Where("combos.user_id = ? AND combos.deleted_at IS NULL", userID).
		Order("combos.created_at DESC, combos.id DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list user combos: %w", err)
	}
	return list, total, nil
}

// PickRows returns every publicly visible combo with what the picks ordering needs.
func (r *comboRepository) PickRows(ctx context.Context, tagName string) ([]search.PickCandidate, error) {
	var rows []search.PickCandidate
	err := r.db.WithContext(ctx).
		Model(&models.Combo{}).
		Scopes(Visible(search.Viewer{})).
		Select(`combos.id, combos.character_id, combos.created_at,
			EXISTS (SELECT 1 FROM combo_tags ct JOIN tags t ON t.id = ct.tag_id WHERE ct.combo_id = combos.id AND t.name = ?) AS picked,
			(SELECT COUNT(*) FROM favorites f WHERE f.combo_id = combos.id) AS favorites,
			(SELECT COUNT(*) FROM ratings r WHERE r.combo_id = combos.id) AS votes`, tagName).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load pick rows: %w", err)
	}
	return rows, nil
}

func (r *comboRepository) SetPublished(ctx context.Context, id int64, published bool) error {
	if err := r.db.WithContext(ctx).Model(&models.Combo{}).Where("id = ?", id).Update("is_published", published).Error; err != nil {
		return fmt.Errorf("set combo published: %w", err)
	}
	return nil
}

// SoftDelete keeps an existing deletion time and always unpublishes.
func (r *comboRepository) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&models.Combo{}).Where("id = ?", id).Updates(map[string]any{
		"deleted_at":   gorm.Expr("COALESCE(deleted_at, ?)", at),
		"is_published": false,
	}).Error
	if err != nil {
		return fmt.Errorf("soft delete combo: %w", err)
	}
	return nil
}

// Restore clears the deletion mark and leaves the combo unpublished for review.
func (r *comboRepository) Restore(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Model(&models.Combo{}).Where("id = ?", id).Updates(map[string]any{
		"deleted_at":   nil,
		"is_published": false,
	}).Error
	if err != nil {
		return fmt.Errorf("restore combo: %w", err)
	}
	return nil
}
