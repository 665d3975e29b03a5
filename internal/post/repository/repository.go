package repository

import (
	"context"
	"errors"

	"github.com/gogotex/gogotex/backend/blog-service/internal/post"
)

var (
	ErrNotFound = errors.New("post not found")
)

// Repository is the persistence contract shared by the file, Postgres and
// Mongo backends. Returned posts are owned by the caller.
type Repository interface {
	// List returns every post in the backend's natural order.
	List(ctx context.Context) ([]*post.Post, error)
	Get(ctx context.Context, id int64) (*post.Post, error)
	// GetBySlug returns the first post whose stored slug equals slug.
	GetBySlug(ctx context.Context, slug string) (*post.Post, error)
	// Create assigns p.ID and persists p.
	Create(ctx context.Context, p *post.Post) error
	// Update replaces the stored record with the same ID.
	Update(ctx context.Context, p *post.Post) error
	// Delete removes the post and returns what was stored.
	Delete(ctx context.Context, id int64) (*post.Post, error)
}
