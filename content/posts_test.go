package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPosts(t *testing.T) (*Posts, *memStore) {
	t.Helper()
	store := newMemStore()
	svc := NewPosts(store)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 9, 30, 0, 0, time.FixedZone("CET", 3600)) }
	return svc, store
}

func TestCreatePostRequiresAuthor(t *testing.T) {
	svc, store := newTestPosts(t)

	_, err := svc.Create(context.Background(), PostPatch{Title: ptr("Hello")})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Zero(t, store.calls, "no store call without identity")
}

func TestCreatePostValidatesBeforeStore(t *testing.T) {
	svc, store := newTestPosts(t)

	cases := []PostPatch{
		{},
		{Title: ptr("   ")},
		{Title: ptr("ok"), Slug: ptr("Not A Slug")},
		{Title: ptr("ok"), Status: ptr(Status("live"))},
		{Title: ptr("!!!")},
		{Title: ptr("ok"), Tags: []string{"sci-fi, fantasy"}},
	}
	for _, patch := range cases {
		_, err := svc.Create(adminCtx(), patch)
		require.Error(t, err)
		assert.True(t, IsValidation(err), "want validation error, got %v", err)
	}
	assert.Zero(t, store.calls)
	cur, _ := svc.list.snapshot()
	assert.Empty(t, cur)
}

func TestCreatePostEndToEnd(t *testing.T) {
	svc, _ := newTestPosts(t)
	ctx := adminCtx()

	_, err := svc.List(ctx)
	require.NoError(t, err)

	post, err := svc.Create(ctx, PostPatch{
		Title:   ptr("My First Post"),
		Content: ptr("Once upon a time."),
		Status:  ptr(StatusPublished),
	})
	require.NoError(t, err)
	assert.Equal(t, "my-first-post", post.Slug)
	assert.Equal(t, "author-1", post.AuthorID)
	assert.Equal(t, "/blog/my-first-post/", post.Link())
	require.NotNil(t, post.PublishedAt)
	assert.Equal(t, time.UTC, post.PublishedAt.Location())
	assert.Equal(t, time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC), *post.PublishedAt)
	assert.Equal(t, 1, ReadTime(post.Content))

	cur, err := svc.Current(ctx)
	require.NoError(t, err)
	require.Len(t, cur, 1)
	assert.Equal(t, post, cur[0])

	got, err := svc.GetPublishedBySlug(ctx, "my-first-post")
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)
}

func TestCreatePostDefaultsToDraft(t *testing.T) {
	svc, _ := newTestPosts(t)

	post, err := svc.Create(adminCtx(), PostPatch{Title: ptr("Quiet")})
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, post.Status)
	assert.Nil(t, post.PublishedAt)
	assert.NotNil(t, post.Tags)

	_, err = svc.GetPublishedBySlug(context.Background(), "quiet")
	assert.True(t, IsNotFound(err))
	var se *StoreError
	assert.True(t, errors.As(err, &se))
}

func TestCreatePostDeduplicatesSlug(t *testing.T) {
	svc, _ := newTestPosts(t)
	ctx := adminCtx()

	first, err := svc.Create(ctx, PostPatch{Title: ptr("Same Title")})
	require.NoError(t, err)
	second, err := svc.Create(ctx, PostPatch{Title: ptr("Same Title")})
	require.NoError(t, err)
	third, err := svc.Create(ctx, PostPatch{Title: ptr("Other"), Slug: ptr("same-title")})
	require.NoError(t, err)

	assert.Equal(t, "same-title", first.Slug)
	assert.Equal(t, "same-title-2", second.Slug)
	assert.Equal(t, "same-title-3", third.Slug)
}

func TestUpdatePostPublishInvariant(t *testing.T) {
	svc, _ := newTestPosts(t)
	ctx := adminCtx()

	post, err := svc.Create(ctx, PostPatch{Title: ptr("Cycle")})
	require.NoError(t, err)

	published, err := svc.Update(ctx, post.ID, PostPatch{Status: ptr(StatusPublished)})
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	firstPublished := *published.PublishedAt

	svc.now = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }
	retitled, err := svc.Update(ctx, post.ID, PostPatch{Title: ptr("Cycle, revised")})
	require.NoError(t, err)
	require.NotNil(t, retitled.PublishedAt)
	assert.Equal(t, firstPublished, *retitled.PublishedAt, "publish date kept while published")
	assert.Equal(t, "cycle", retitled.Slug, "slug does not follow title on update")

	archived, err := svc.Update(ctx, post.ID, PostPatch{Status: ptr(StatusArchived)})
	require.NoError(t, err)
	assert.Nil(t, archived.PublishedAt)

	explicit := time.Date(2024, 12, 24, 18, 0, 0, 0, time.FixedZone("EST", -5*3600))
	again, err := svc.Update(ctx, post.ID, PostPatch{Status: ptr(StatusPublished), PublishedAt: &explicit})
	require.NoError(t, err)
	require.NotNil(t, again.PublishedAt)
	assert.True(t, explicit.Equal(*again.PublishedAt))

	cur, err := svc.Current(ctx)
	require.NoError(t, err)
	require.Len(t, cur, 1)
	assert.Equal(t, again, cur[0])
}

func TestUpdatePostSlugChange(t *testing.T) {
	svc, _ := newTestPosts(t)
	ctx := adminCtx()

	a, err := svc.Create(ctx, PostPatch{Title: ptr("Alpha")})
	require.NoError(t, err)
	b, err := svc.Create(ctx, PostPatch{Title: ptr("Beta")})
	require.NoError(t, err)

	b, err = svc.Update(ctx, b.ID, PostPatch{Slug: ptr("alpha")})
	require.NoError(t, err)
	assert.Equal(t, "alpha-2", b.Slug)

	a, err = svc.Update(ctx, a.ID, PostPatch{Slug: ptr("alpha")})
	require.NoError(t, err)
	assert.Equal(t, "alpha", a.Slug, "own slug is not a conflict")
}

func TestUpdatePostTags(t *testing.T) {
	svc, _ := newTestPosts(t)
	ctx := adminCtx()

	post, err := svc.Create(ctx, PostPatch{Title: ptr("Tagged"), Tags: []string{"Go", "go", "web"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "web"}, post.Tags)

	post, err = svc.Update(ctx, post.ID, PostPatch{Title: ptr("Tagged again")})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "web"}, post.Tags, "nil tags leave them untouched")

	post, err = svc.Update(ctx, post.ID, PostPatch{Tags: []string{}})
	require.NoError(t, err)
	assert.Empty(t, post.Tags)
}

func TestUpdatePostNotFound(t *testing.T) {
	svc, _ := newTestPosts(t)

	_, err := svc.Update(adminCtx(), "missing", PostPatch{Title: ptr("x")})
	assert.True(t, IsNotFound(err))
}

func TestStoreFailureLeavesMirrorUnchanged(t *testing.T) {
	svc, store := newTestPosts(t)
	ctx := adminCtx()

	post, err := svc.Create(ctx, PostPatch{Title: ptr("Keep")})
	require.NoError(t, err)
	before, _ := svc.list.snapshot()

	store.fail = errors.New("database is locked")
	_, err = svc.Update(ctx, post.ID, PostPatch{Title: ptr("Changed")})
	require.Error(t, err)
	var se *StoreError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "database is locked", se.Error())

	require.Error(t, svc.Delete(ctx, post.ID))
	_, err = svc.Create(ctx, PostPatch{Title: ptr("New")})
	require.Error(t, err)

	after, _ := svc.list.snapshot()
	assert.Equal(t, before, after)
}

func TestDeletePost(t *testing.T) {
	svc, _ := newTestPosts(t)
	ctx := adminCtx()

	post, err := svc.Create(ctx, PostPatch{Title: ptr("Gone soon")})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, post.ID))

	cur, _ := svc.list.snapshot()
	assert.Empty(t, cur)
	_, err = svc.Get(ctx, post.ID)
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(svc.Delete(ctx, post.ID)))
}

func TestListPublishedOrdersByDate(t *testing.T) {
	svc, _ := newTestPosts(t)
	ctx := adminCtx()

	for i, day := range []int{5, 20, 1} {
		_, err := svc.Create(ctx, PostPatch{
			Title:       ptr("Post " + string(rune('A'+i))),
			Status:      ptr(StatusPublished),
			PublishedAt: at(day),
		})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, PostPatch{Title: ptr("Hidden")})
	require.NoError(t, err)

	pub, err := svc.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, pub, 3)
	assert.Equal(t, []string{"post-b", "post-a", "post-c"}, []string{pub[0].Slug, pub[1].Slug, pub[2].Slug})
}
