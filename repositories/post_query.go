package repositories

import (
	"gorm.io/gorm"

	"github.com/cppla/yatube/models"
)

// PostQuery is a lazy, filtered view over posts. Nothing is read until Count
// or Slice is called, so a page never loads the whole collection.
type PostQuery struct {
	db     *gorm.DB
	filter func(*gorm.DB) *gorm.DB
}

func newPostQuery(db *gorm.DB, filter func(*gorm.DB) *gorm.DB) PostQuery {
	if filter == nil {
		filter = func(tx *gorm.DB) *gorm.DB { return tx }
	}
	return PostQuery{db: db, filter: filter}
}

// Count returns the number of posts matching the filter.
func (q PostQuery) Count() (int64, error) {
	var n int64
	err := q.db.Model(&models.Post{}).Scopes(q.filter).Count(&n).Error
	return n, err
}

// Slice returns up to limit posts starting at offset, with author and group loaded.
func (q PostQuery) Slice(offset, limit int) ([]models.Post, error) {
	posts := []models.Post{}
	err := q.db.Scopes(q.filter).
		Preload("Author").
		Preload("Group").
		Order("pub_date DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}
