package repository

import (
	"context"
	"testing"
	"time"

	"github.com/gogotex/gogotex/backend/blog-service/internal/post"
	"github.com/stretchr/testify/require"
)

// runContract exercises the behaviour every backend must share.
func runContract(t *testing.T, r Repository) {
	t.Helper()
	ctx := context.Background()

	created := time.Now().UTC().Truncate(time.Millisecond)
	p := &post.Post{Title: "Contract", Content: "c", Label: "l", Slug: "contract", CreatedAt: created, UpdatedAt: created}
	require.NoError(t, r.Create(ctx, p))
	require.NotZero(t, p.ID)

	got, err := r.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Contract", got.Title)
	require.Nil(t, got.Image)
	require.True(t, got.CreatedAt.Equal(created), "createdAt %v != %v", got.CreatedAt, created)

	got, err = r.GetBySlug(ctx, "contract")
	require.NoError(t, err)
	require.Equal(t, p.ID, got.ID)

	img := "http://img/x.png"
	got.Image = &img
	got.Label = "changed"
	require.NoError(t, r.Update(ctx, got))
	got, err = r.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "changed", got.Label)
	require.NotNil(t, got.Image)
	require.Equal(t, img, *got.Image)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, list)

	removed, err := r.Delete(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, p.ID, removed.ID)
	require.Equal(t, "changed", removed.Label)

	_, err = r.Get(ctx, p.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = r.Delete(ctx, p.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, r.Update(ctx, p), ErrNotFound)
}
