package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogotex/gogotex/backend/blog-service/internal/post"
	"github.com/gogotex/gogotex/backend/blog-service/internal/post/repository"
)

func strPtr(s string) *string { return &s }

func newFileService(t *testing.T, opts Options) (*Service, *repository.FileRepo) {
	t.Helper()
	repo := repository.NewFileRepo(filepath.Join(t.TempDir(), "posts.json"))
	return New(repo, opts), repo
}

func fixedClock(start time.Time) func() time.Time {
	cur := start
	return func() time.Time {
		cur = cur.Add(time.Second)
		return cur
	}
}

func TestCreate_RequiresFields(t *testing.T) {
	svc, repo := newFileService(t, FileOptions())
	ctx := context.Background()

	cases := []CreateInput{
		{Content: "c", Label: "l"},
		{Title: "t", Label: "l"},
		{Title: "t", Content: "c"},
		{Title: "   ", Content: "c", Label: "l"},
	}
	for _, in := range cases {
		_, err := svc.Create(ctx, in)
		require.ErrorIs(t, err, ErrInvalid)
	}
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list, "invalid creates must not persist anything")
}

func TestCreate_AssignsIDSlugAndTimestamps(t *testing.T) {
	opts := FileOptions()
	opts.Now = fixedClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	svc, _ := newFileService(t, opts)

	p, err := svc.Create(context.Background(), CreateInput{Title: "Hello, World!", Content: "c", Label: "news", Image: strPtr("/uploads/1-a.png")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "hello-world", p.Slug)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
	require.NotNil(t, p.Image)
	assert.Equal(t, "/uploads/1-a.png", *p.Image)
}

func TestCreate_UniqueSlugs(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	opts := RemoteOptions()
	opts.Now = fixedClock(start)
	svc, _ := newFileService(t, opts)
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateInput{Title: "Same title", Content: "c", Label: "l"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, CreateInput{Title: "Same title", Content: "c", Label: "l"})
	require.NoError(t, err)

	assert.NotEqual(t, a.Slug, b.Slug)
	assert.Equal(t, post.UniqueSlug("Same title", a.CreatedAt), a.Slug)
}

func TestLookup_IDSlugAndDerivedSlug(t *testing.T) {
	svc, repo := newFileService(t, FileOptions())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Title: "My First Post", Content: "c", Label: "l"})
	require.NoError(t, err)

	// simulate a record whose stored slug no longer matches its title
	stored, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	stored.Slug = "legacy-slug"
	require.NoError(t, repo.Update(ctx, stored))

	byID, err := svc.Lookup(ctx, "1")
	require.NoError(t, err)
	bySlug, err := svc.Lookup(ctx, "legacy-slug")
	require.NoError(t, err)
	byDerived, err := svc.Lookup(ctx, "my-first-post")
	require.NoError(t, err)

	assert.Equal(t, created.ID, byID.ID)
	assert.Equal(t, created.ID, bySlug.ID)
	assert.Equal(t, created.ID, byDerived.ID)

	_, err = svc.Lookup(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Lookup(ctx, "42")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLookup_NumericIDBeforeSlug(t *testing.T) {
	svc, _ := newFileService(t, FileOptions())
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateInput{Title: "first", Content: "c", Label: "l"})
	require.NoError(t, err)
	// a post whose slug is "1" must not shadow post id 1
	_, err = svc.Create(ctx, CreateInput{Title: "1", Content: "c", Label: "l"})
	require.NoError(t, err)

	got, err := svc.Lookup(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestLookup_NoDerivedSlugForRemoteBackends(t *testing.T) {
	svc, _ := newFileService(t, RemoteOptions())
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{Title: "Remote Post", Content: "c", Label: "l"})
	require.NoError(t, err)

	got, err := svc.Lookup(ctx, p.Slug)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = svc.Lookup(ctx, "remote-post")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_PartialMerge(t *testing.T) {
	opts := FileOptions()
	opts.Now = fixedClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	svc, _ := newFileService(t, opts)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{Title: "Original", Content: "old", Label: "a"})
	require.NoError(t, err)

	up, err := svc.Update(ctx, p.ID, UpdateInput{Content: strPtr("new")})
	require.NoError(t, err)
	assert.Equal(t, "Original", up.Title)
	assert.Equal(t, "original", up.Slug, "slug unchanged without title")
	assert.Equal(t, "new", up.Content)
	assert.Equal(t, "a", up.Label)
	assert.True(t, up.UpdatedAt.After(p.UpdatedAt))
	assert.Equal(t, p.CreatedAt, up.CreatedAt)

	up, err = svc.Update(ctx, p.ID, UpdateInput{Title: strPtr("Renamed Post"), Image: strPtr("/uploads/2-b.png")})
	require.NoError(t, err)
	assert.Equal(t, "renamed-post", up.Slug)
	require.NotNil(t, up.Image)
	assert.Equal(t, "/uploads/2-b.png", *up.Image)

	got, err := svc.Lookup(ctx, "renamed-post")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Content)
}

func TestUpdate_Errors(t *testing.T) {
	svc, _ := newFileService(t, FileOptions())
	ctx := context.Background()

	_, err := svc.Update(ctx, 7, UpdateInput{Content: strPtr("x")})
	require.ErrorIs(t, err, ErrNotFound)

	p, err := svc.Create(ctx, CreateInput{Title: "t", Content: "c", Label: "l"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, p.ID, UpdateInput{Title: strPtr("  ")})
	require.ErrorIs(t, err, ErrInvalid)
}

func TestDelete(t *testing.T) {
	svc, _ := newFileService(t, FileOptions())
	ctx := context.Background()

	_, err := svc.Delete(ctx, 1)
	require.ErrorIs(t, err, ErrNotFound)

	p, err := svc.Create(ctx, CreateInput{Title: "Doomed", Content: "bye", Label: "l"})
	require.NoError(t, err)

	removed, err := svc.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Doomed", removed.Title)
	assert.Equal(t, "bye", removed.Content)

	_, err = svc.Lookup(ctx, "doomed")
	require.ErrorIs(t, err, ErrNotFound)
}

type failingRepo struct{ repository.Repository }

func (failingRepo) Get(ctx context.Context, id int64) (*post.Post, error) {
	return nil, errors.New("disk on fire")
}

func TestLookup_PropagatesBackendErrors(t *testing.T) {
	svc := New(failingRepo{}, FileOptions())
	_, err := svc.Lookup(context.Background(), "3")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestGet(t *testing.T) {
	svc, _ := newFileService(t, FileOptions())
	ctx := context.Background()

	_, err := svc.Get(ctx, 1)
	require.ErrorIs(t, err, ErrNotFound)

	p, err := svc.Create(ctx, CreateInput{Title: "Here", Content: "c", Label: "l"})
	require.NoError(t, err)
	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Here", got.Title)
}
