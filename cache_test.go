package folio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio/content"
)

type fakePosts struct {
	posts []content.BlogPost
	calls int
	err   error
}

func (f *fakePosts) ListPublished(context.Context) ([]content.BlogPost, error) {
	f.calls++
	return f.posts, f.err
}

type fakeWorks struct {
	works []content.LiteraryWork
	calls int
}

func (f *fakeWorks) ListPublished(context.Context) ([]content.LiteraryWork, error) {
	f.calls++
	return f.works, nil
}

func published() *time.Time {
	t := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &t
}

func newFakeCache(ttl time.Duration) (*PublishedCache, *fakePosts, *fakeWorks) {
	posts := &fakePosts{posts: []content.BlogPost{
		{ID: "p1", Slug: "first", Status: content.StatusPublished, Tags: []string{"poetry", "craft"}, PublishedAt: published()},
		{ID: "p2", Slug: "draft", Status: content.StatusDraft, Tags: []string{"hidden"}},
	}}
	works := &fakeWorks{works: []content.LiteraryWork{
		{ID: "w1", Type: content.WorkPoem, Status: content.StatusPublished, PublishedAt: published()},
	}}
	return NewPublishedCache(posts, works, ttl), posts, works
}

func TestPublishedCacheLoadsOnce(t *testing.T) {
	c, posts, works := newFakeCache(time.Minute)
	ctx := context.Background()

	for range 3 {
		_, err := c.Posts(ctx)
		require.NoError(t, err)
		_, err = c.Works(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, posts.calls)
	assert.Equal(t, 1, works.calls)
}

func TestPublishedCacheFiltersDrafts(t *testing.T) {
	c, _, _ := newFakeCache(time.Minute)
	ctx := context.Background()

	posts, err := c.Posts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "p1", posts[0].ID)

	tags, err := c.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"craft", "poetry"}, tags)

	_, err = c.Post(ctx, "draft")
	assert.True(t, content.IsNotFound(err))
}

func TestPublishedCacheInvalidate(t *testing.T) {
	c, posts, _ := newFakeCache(time.Minute)
	ctx := context.Background()

	_, err := c.Posts(ctx)
	require.NoError(t, err)
	c.Invalidate()
	_, err = c.Posts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, posts.calls)
}

func TestPublishedCacheExpires(t *testing.T) {
	c, posts, _ := newFakeCache(20 * time.Millisecond)
	ctx := context.Background()

	_, err := c.Posts(ctx)
	require.NoError(t, err)
	time.Sleep(40 * time.Millisecond)
	_, err = c.Posts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, posts.calls)
}

func TestPublishedCacheLookups(t *testing.T) {
	c, _, _ := newFakeCache(time.Minute)
	ctx := context.Background()

	p, err := c.Post(ctx, "first")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)

	w, err := c.Work(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, content.WorkPoem, w.Type)

	_, err = c.Work(ctx, "missing")
	assert.True(t, content.IsNotFound(err))
}

func TestPublishedCacheErrorNotCached(t *testing.T) {
	c, posts, _ := newFakeCache(time.Minute)
	ctx := context.Background()
	posts.err = errors.New("database is locked")

	_, err := c.Posts(ctx)
	require.Error(t, err)

	posts.err = nil
	got, err := c.Posts(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 2, posts.calls)
}
