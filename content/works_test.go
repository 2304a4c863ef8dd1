package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWork(t *testing.T) {
	store := newMemStore()
	svc := NewWorks(store)

	_, err := svc.Create(context.Background(), WorkPatch{Title: ptr("Orphan")})
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = svc.Create(adminCtx(), WorkPatch{Title: ptr("Bad"), Type: ptr(WorkType("screenplay"))})
	assert.True(t, IsValidation(err))
	assert.Zero(t, store.calls)

	_, err = svc.Create(adminCtx(), WorkPatch{Title: ptr("Bad"), Tags: []string{"poetry,verse"}})
	assert.True(t, IsValidation(err))
	assert.Zero(t, store.calls)

	w, err := svc.Create(adminCtx(), WorkPatch{Title: ptr("Sonnet 1"), Content: ptr("  https://example.com/sonnet  ")})
	require.NoError(t, err)
	assert.Equal(t, WorkArticle, w.Type)
	assert.Equal(t, StatusDraft, w.Status)
	assert.Nil(t, w.PublishedAt)
	assert.True(t, w.IsExternal())
	assert.Equal(t, "/works/"+w.ID+"/", w.Link())
}

func TestWorkPublishLifecycle(t *testing.T) {
	svc := NewWorks(newMemStore())
	ctx := adminCtx()

	w, err := svc.Create(ctx, WorkPatch{Title: ptr("The Long Road"), Type: ptr(WorkNovel), Status: ptr(StatusPublished)})
	require.NoError(t, err)
	require.NotNil(t, w.PublishedAt)

	got, err := svc.GetPublished(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, w.ID, got.ID)

	w, err = svc.Update(ctx, w.ID, WorkPatch{Status: ptr(StatusDraft), Description: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, w.PublishedAt)
	assert.Nil(t, w.Description)

	_, err = svc.GetPublished(ctx, w.ID)
	assert.True(t, IsNotFound(err))

	cur, err := svc.Current(ctx)
	require.NoError(t, err)
	require.Len(t, cur, 1)
	assert.Equal(t, StatusDraft, cur[0].Status)

	require.NoError(t, svc.Delete(ctx, w.ID))
	cur, err = svc.Current(ctx)
	require.NoError(t, err)
	assert.Empty(t, cur)
}

func TestWorkTypeLabel(t *testing.T) {
	assert.Equal(t, "Short Story", WorkShortStory.Label())
	assert.Equal(t, "Poem", WorkPoem.Label())
}
