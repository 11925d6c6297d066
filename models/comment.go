package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is reader text attached to exactly one post.
type Comment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	Created  time.Time `gorm:"index;not null" json:"created"`
	AuthorID uint      `gorm:"index;not null" json:"author_id"`
	Author   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	PostID   uint      `gorm:"index;not null" json:"post_id"`
}

// BeforeCreate stamps the creation time.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.Created.IsZero() {
		c.Created = time.Now()
	}
	return nil
}

func (c Comment) String() string {
	return excerpt(c.Text)
}
