package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/cppla/yatube/models"
)

type gormContentRepository struct {
	db *gorm.DB
}

// NewContentRepository returns a ContentRepository backed by gorm.
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &gormContentRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (r *gormContentRepository) AllPosts() PostQuery {
	return newPostQuery(r.db, nil)
}

func (r *gormContentRepository) PostsByGroup(slug string) (*models.Group, PostQuery, error) {
	var group models.Group
	if err := r.db.Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, PostQuery{}, notFound(err)
	}
	q := newPostQuery(r.db, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("group_id = ?", group.ID)
	})
	return &group, q, nil
}

func (r *gormContentRepository) PostsByAuthor(username string) (*models.User, PostQuery, int64, error) {
	author, err := r.UserByUsername(username)
	if err != nil {
		return nil, PostQuery{}, 0, err
	}
	q := newPostQuery(r.db, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("author_id = ?", author.ID)
	})
	total, err := q.Count()
	if err != nil {
		return nil, PostQuery{}, 0, fmt.Errorf("count posts of %s: %w", username, err)
	}
	return author, q, total, nil
}

func (r *gormContentRepository) PostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Author").Preload("Group").First(&post, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

func (r *gormContentRepository) CountPostsByAuthor(authorID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.Post{}).Where("author_id = ?", authorID).Count(&n).Error
	return n, err
}

func (r *gormContentRepository) CreatePost(post *models.Post) error {
	if err := r.db.Omit("Author", "Group").Create(post).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// UpdatePost writes the mutable fields only; author and publication date are immutable.
func (r *gormContentRepository) UpdatePost(post *models.Post) error {
	err := r.db.Model(&models.Post{ID: post.ID}).
		Updates(map[string]interface{}{
			"text":     post.Text,
			"group_id": post.GroupID,
			"image":    post.Image,
		}).Error
	if err != nil {
		return fmt.Errorf("update post %d: %w", post.ID, err)
	}
	return nil
}

func (r *gormContentRepository) CommentsForPost(postID uint) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.db.Where("post_id = ?", postID).
		Preload("Author").
		Order("created DESC").
		Order("id DESC").
		Find(&comments).Error
	return comments, err
}

func (r *gormContentRepository) CreateComment(comment *models.Comment) error {
	if err := r.db.Omit("Author").Create(comment).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

func (r *gormContentRepository) GroupByID(id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.First(&group, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &group, nil
}

func (r *gormContentRepository) ListGroups() ([]models.Group, error) {
	groups := []models.Group{}
	err := r.db.Order("title ASC").Find(&groups).Error
	return groups, err
}

func (r *gormContentRepository) CreateGroup(group *models.Group) error {
	var n int64
	if err := r.db.Model(&models.Group{}).Where("slug = ?", group.Slug).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrDuplicateSlug
	}
	if err := r.db.Create(group).Error; err != nil {
		return fmt.Errorf("create group: %w", err)
	}
	return nil
}

func (r *gormContentRepository) UserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *gormContentRepository) UserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *gormContentRepository) CreateUser(user *models.User) error {
	var n int64
	if err := r.db.Model(&models.User{}).Where("username = ?", user.Username).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrDuplicateUsername
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}
