package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/gogotex/gogotex/backend/blog-service/internal/post"
)

func newPostgresRepo(t *testing.T) *PostgresRepo {
	t.Helper()
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	r := NewPostgresRepo(pool)
	require.NoError(t, r.Migrate(ctx))
	_, err = pool.Exec(ctx, `TRUNCATE posts RESTART IDENTITY`)
	require.NoError(t, err)
	return r
}

func TestPostgresRepo_Contract(t *testing.T) {
	runContract(t, newPostgresRepo(t))
}

func TestPostgresRepo_ListNewestFirst(t *testing.T) {
	r := newPostgresRepo(t)
	ctx := context.Background()
	base := time.Now().UTC()
	for i, title := range []string{"old", "mid", "new"} {
		at := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, r.Create(ctx, &post.Post{Title: title, Content: "c", Label: "l", Slug: title, CreatedAt: at, UpdatedAt: at}))
	}
	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "new", list[0].Title)
	require.Equal(t, "old", list[2].Title)
}
