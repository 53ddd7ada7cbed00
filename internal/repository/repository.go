package repository

import (
	"context"
	"errors"

	"newsportal/internal/model"
)

var (
	// ErrNotFound is returned when no document or row matches.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	// Update writes name, bio, avatar and role.
	Update(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.User, error)
}

// ArticleRepository defines persistence operations for articles.
type ArticleRepository interface {
	Create(ctx context.Context, article *model.Article) error
	// Update replaces the editable fields: title, content, excerpt, category,
	// image, tags and isPublished. Author, views and createdAt are never written.
	Update(ctx context.Context, article *model.Article) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Article, error)
	// IncrementViews atomically adds one to views and returns the updated article.
	IncrementViews(ctx context.Context, id string) (*model.Article, error)
	// ListPublished returns one page of published articles matching filter,
	// newest first, and the total number of matches.
	ListPublished(ctx context.Context, filter ArticleFilter) ([]model.Article, int64, error)
}

// ArticleFilter narrows ListPublished. Zero-valued fields do not filter.
type ArticleFilter struct {
	Category model.Category
	AuthorID string
	// Search is matched case-insensitively as a literal substring of the
	// title, the content or any tag.
	Search string
	Offset int
	Limit  int
}
