package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/gogotex/gogotex/backend/blog-service/internal/post"
)

// FileRepo keeps all posts as a single JSON array on disk. Every operation
// reads the whole file and mutations write it back; posts are kept in
// insertion order. The mutex only serialises callers inside this process.
type FileRepo struct {
	mu   sync.Mutex
	path string
}

func NewFileRepo(path string) *FileRepo {
	return &FileRepo{path: path}
}

func (r *FileRepo) load() ([]*post.Post, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*post.Post{}, nil
		}
		return nil, fmt.Errorf("read posts file: %w", err)
	}
	if len(b) == 0 {
		return []*post.Post{}, nil
	}
	var posts []*post.Post
	if err := json.Unmarshal(b, &posts); err != nil {
		return nil, fmt.Errorf("parse posts file: %w", err)
	}
	return posts, nil
}

func (r *FileRepo) save(posts []*post.Post) error {
	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	b, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return fmt.Errorf("encode posts: %w", err)
	}
	if err := os.WriteFile(r.path, b, 0o644); err != nil {
		return fmt.Errorf("write posts file: %w", err)
	}
	return nil
}

func (r *FileRepo) List(ctx context.Context) ([]*post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *FileRepo) Get(ctx context.Context, id int64) (*post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	posts, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

func (r *FileRepo) GetBySlug(ctx context.Context, slug string) (*post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	posts, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

func (r *FileRepo) Create(ctx context.Context, p *post.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	posts, err := r.load()
	if err != nil {
		return err
	}
	var maxID int64
	for _, existing := range posts {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	p.ID = maxID + 1
	posts = append(posts, p.Clone())
	return r.save(posts)
}

func (r *FileRepo) Update(ctx context.Context, p *post.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	posts, err := r.load()
	if err != nil {
		return err
	}
	for i, existing := range posts {
		if existing.ID == p.ID {
			posts[i] = p.Clone()
			return r.save(posts)
		}
	}
	return ErrNotFound
}

func (r *FileRepo) Delete(ctx context.Context, id int64) (*post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	posts, err := r.load()
	if err != nil {
		return nil, err
	}
	for i, existing := range posts {
		if existing.ID == id {
			posts = append(posts[:i], posts[i+1:]...)
			if err := r.save(posts); err != nil {
				return nil, err
			}
			return existing, nil
		}
	}
	return nil, ErrNotFound
}
