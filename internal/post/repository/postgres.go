package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/gogotex/gogotex/backend/blog-service/internal/post"
)

// Migrations holds the goose migrations for the posts table.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations passed to goose.
const MigrationsDir = "migrations"

const postColumns = `id, title, content, label, slug, image, created_at, updated_at`

// PostgresRepo stores posts as rows of the posts table. Listing is newest first.
type PostgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresRepo(pool *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{pool: pool}
}

// Migrate applies pending schema migrations.
func (r *PostgresRepo) Migrate(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(r.pool)
	defer db.Close()

	goose.SetBaseFS(Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, MigrationsDir); err != nil {
		return fmt.Errorf("migrate posts: %w", err)
	}
	return nil
}

func (r *PostgresRepo) List(ctx context.Context) ([]*post.Post, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+postColumns+` FROM posts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	posts, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[post.Post])
	if err != nil {
		return nil, fmt.Errorf("scan posts: %w", err)
	}
	return posts, nil
}

func (r *PostgresRepo) queryOne(ctx context.Context, sql string, args ...any) (*post.Post, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	p, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[post.Post])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepo) Get(ctx context.Context, id int64) (*post.Post, error) {
	p, err := r.queryOne(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	return p, err
}

func (r *PostgresRepo) GetBySlug(ctx context.Context, slug string) (*post.Post, error) {
	p, err := r.queryOne(ctx, `SELECT `+postColumns+` FROM posts WHERE slug = $1 ORDER BY created_at DESC LIMIT 1`, slug)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get post by slug: %w", err)
	}
	return p, err
}

func (r *PostgresRepo) Create(ctx context.Context, p *post.Post) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO posts (title, content, label, slug, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		p.Title, p.Content, p.Label, p.Slug, p.Image, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *PostgresRepo) Update(ctx context.Context, p *post.Post) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE posts
		SET title = $2, content = $3, label = $4, slug = $5, image = $6, updated_at = $7
		WHERE id = $1`,
		p.ID, p.Title, p.Content, p.Label, p.Slug, p.Image, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update post %d: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) (*post.Post, error) {
	p, err := r.queryOne(ctx, `DELETE FROM posts WHERE id = $1 RETURNING `+postColumns, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("delete post %d: %w", id, err)
	}
	return p, err
}
