package repositories

import "errors"

var (
	// ErrNotFound is returned when a group, user or post does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateSlug is returned when a group slug is already taken.
	ErrDuplicateSlug = errors.New("group slug already exists")
	// ErrDuplicateUsername is returned when a username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
)
