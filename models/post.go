package models

import (
	"time"

	"gorm.io/gorm"
)

// excerptLen is the number of runes shown when a post is used as a label.
const excerptLen = 15

// Post is a unit of authored text, optionally attached to a group.
type Post struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	PubDate  time.Time `gorm:"index;not null" json:"pub_date"`
	AuthorID uint      `gorm:"index;not null" json:"author_id"`
	Author   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	GroupID  *uint     `gorm:"index" json:"group_id"`
	Group    *Group    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"group,omitempty"`
	Image    string    `gorm:"size:255" json:"image,omitempty"`
	Comments []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// BeforeCreate stamps the publication date; it is never changed afterwards.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.PubDate.IsZero() {
		p.PubDate = time.Now()
	}
	return nil
}

// Excerpt returns the leading runes of the text.
func (p Post) Excerpt() string {
	return excerpt(p.Text)
}

func (p Post) String() string {
	return p.Excerpt()
}

func excerpt(s string) string {
	r := []rune(s)
	if len(r) <= excerptLen {
		return s
	}
	return string(r[:excerptLen])
}
