package repositories

import "github.com/cppla/yatube/models"

// ContentRepository is the read/write contract the request handlers rely on.
// Every post listing is ordered by publication date, newest first, with ties
// broken by id so that newer rows come first.
type ContentRepository interface {
	AllPosts() PostQuery
	PostsByGroup(slug string) (*models.Group, PostQuery, error)
	PostsByAuthor(username string) (*models.User, PostQuery, int64, error)
	PostByID(id uint) (*models.Post, error)
	CountPostsByAuthor(authorID uint) (int64, error)
	CreatePost(post *models.Post) error
	UpdatePost(post *models.Post) error

	CommentsForPost(postID uint) ([]models.Comment, error)
	CreateComment(comment *models.Comment) error

	GroupByID(id uint) (*models.Group, error)
	ListGroups() ([]models.Group, error)
	CreateGroup(group *models.Group) error

	UserByID(id uint) (*models.User, error)
	UserByUsername(username string) (*models.User, error)
	CreateUser(user *models.User) error
}
