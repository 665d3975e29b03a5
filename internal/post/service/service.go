package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gogotex/gogotex/backend/blog-service/internal/post"
	"github.com/gogotex/gogotex/backend/blog-service/internal/post/repository"
)

var (
	ErrNotFound = errors.New("post not found")
	ErrInvalid  = errors.New("invalid post")
)

// Options tune behaviour that differs between the flat-file and remote backends.
type Options struct {
	// UniqueSlugs appends the creation timestamp to every slug.
	UniqueSlugs bool
	// DerivedSlugLookup lets Lookup fall back to slugs computed from titles.
	DerivedSlugLookup bool
	// Now overrides the clock; defaults to time.Now.
	Now func() time.Time
}

// FileOptions match the flat JSON file backend.
func FileOptions() Options {
	return Options{DerivedSlugLookup: true}
}

// RemoteOptions match the database backends.
func RemoteOptions() Options {
	return Options{UniqueSlugs: true}
}

// CreateInput carries the fields of a new post. Image is optional.
type CreateInput struct {
	Title   string
	Content string
	Label   string
	Image   *string
}

// UpdateInput carries a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Title   *string
	Content *string
	Label   *string
	Image   *string
}

// Service implements the post operations used by the HTTP layer.
type Service struct {
	repo repository.Repository
	opts Options
}

func New(repo repository.Repository, opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{repo: repo, opts: opts}
}

func (s *Service) now() time.Time {
	return s.opts.Now().UTC()
}

func (s *Service) slugFor(title string, createdAt time.Time) string {
	if s.opts.UniqueSlugs {
		return post.UniqueSlug(title, createdAt)
	}
	return post.Slugify(title)
}

func (s *Service) List(ctx context.Context) ([]*post.Post, error) {
	return s.repo.List(ctx)
}

// Get returns the post with the given id.
func (s *Service) Get(ctx context.Context, id int64) (*post.Post, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Lookup resolves identifier as a numeric id, then as a stored slug and,
// when enabled, as the slug derived from each post's title.
func (s *Service) Lookup(ctx context.Context, identifier string) (*post.Post, error) {
	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		p, err := s.repo.Get(ctx, id)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	p, err := s.repo.GetBySlug(ctx, identifier)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if s.opts.DerivedSlugLookup {
		posts, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range posts {
			if post.Slugify(p.Title) == identifier {
				return p, nil
			}
		}
	}
	return nil, ErrNotFound
}

// Validate reports ErrInvalid when a required field is missing or blank.
func (in CreateInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" || strings.TrimSpace(in.Label) == "" {
		return fmt.Errorf("%w: title, content and label are required", ErrInvalid)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*post.Post, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	p := &post.Post{
		Title:     in.Title,
		Content:   in.Content,
		Label:     in.Label,
		Slug:      s.slugFor(in.Title, now),
		Image:     in.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update merges the supplied fields into the stored post. The slug is
// recomputed only when a title is supplied.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*post.Post, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrInvalid)
		}
		p.Title = *in.Title
		p.Slug = s.slugFor(p.Title, p.CreatedAt)
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
	if in.Label != nil {
		p.Label = *in.Label
	}
	if in.Image != nil {
		img := *in.Image
		p.Image = &img
	}
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (*post.Post, error) {
	p, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}
