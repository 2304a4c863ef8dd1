package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day int) *time.Time {
	t := time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func samplePosts() []BlogPost {
	return []BlogPost{
		{ID: "1", Title: "Writing in Winter", Excerpt: ptr("cold mornings"), Status: StatusPublished, Tags: []string{"craft", "seasons"}, PublishedAt: at(3)},
		{ID: "2", Title: "Draft Notes", Status: StatusDraft, Tags: []string{"craft"}},
		{ID: "3", Title: "On Revision", Excerpt: ptr("cutting words"), Status: StatusPublished, Tags: []string{"editing"}, PublishedAt: at(10)},
		{ID: "4", Title: "Old Essay", Status: StatusArchived, Tags: []string{"seasons"}},
	}
}

func ids(posts []BlogPost) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func TestPublishedOnly(t *testing.T) {
	assert.Equal(t, []string{"1", "3"}, ids(PublishedOnly(samplePosts())))
}

func TestFilterZeroQueryIsIdentity(t *testing.T) {
	posts := samplePosts()
	assert.Equal(t, ids(posts), ids(Filter(posts, Query{})))
	assert.Equal(t, ids(posts), ids(Filter(posts, Query{Category: "all", Status: "all"})))
}

func TestFilterCombinesCriteria(t *testing.T) {
	posts := samplePosts()

	assert.Equal(t, []string{"1", "2"}, ids(Filter(posts, Query{Category: "craft"})))
	assert.Equal(t, []string{"1"}, ids(Filter(posts, Query{Category: "craft", Status: "published"})))
	assert.Equal(t, []string{"3"}, ids(Filter(posts, Query{Search: "CUTTING"})))
	assert.Equal(t, []string{"1"}, ids(Filter(posts, Query{Search: "winter", Category: "seasons"})))
	assert.Empty(t, Filter(posts, Query{Search: "nothing matches this"}))
}

func TestFilterIsSubsetInOrder(t *testing.T) {
	posts := samplePosts()
	got := Filter(posts, Query{Search: "o"})
	require.NotEmpty(t, got)
	j := 0
	for _, p := range got {
		for j < len(posts) && posts[j].ID != p.ID {
			j++
		}
		require.Less(t, j, len(posts), "filtered item %s out of order", p.ID)
	}
}

func TestFilterWorksByType(t *testing.T) {
	works := []LiteraryWork{
		{ID: "a", Title: "Sonnet", Type: WorkPoem, Status: StatusPublished},
		{ID: "b", Title: "The Long Road", Type: WorkNovel, Status: StatusDraft, Description: ptr("a journey")},
	}
	got := Filter(works, Query{Category: string(WorkNovel)})
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)

	got = Filter(works, Query{Search: "journey"})
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestFilterMessages(t *testing.T) {
	msgs := []ContactMessage{
		{ID: "m1", Name: "Ada", Email: "ada@example.com", Message: "Loved the poem", Status: MessageUnread},
		{ID: "m2", Name: "Bob", Email: "bob@example.com", Subject: ptr("Reading request"), Message: "hi", Status: MessageRead},
	}
	assert.Len(t, Filter(msgs, Query{Status: "unread"}), 1)
	assert.Len(t, Filter(msgs, Query{Search: "reading"}), 1)
	assert.Len(t, Filter(msgs, Query{Search: "example.com"}), 2)
}

func TestSortPublishedDesc(t *testing.T) {
	posts := samplePosts()
	SortPublishedDesc(posts)
	assert.Equal(t, []string{"3", "1", "2", "4"}, ids(posts))
}

func TestRelated(t *testing.T) {
	posts := samplePosts()
	got := Related(posts[0], posts)
	assert.Equal(t, []string{"2", "4"}, ids(got))
	assert.Empty(t, Related(BlogPost{ID: "x"}, posts))
}

func TestCollectTags(t *testing.T) {
	assert.Equal(t, []string{"craft", "editing", "seasons"}, CollectTags(samplePosts()))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	got, page := Paginate(items, 1, 2)
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, Page{Number: 1, TotalPages: 3, TotalItems: 5}, page)
	assert.False(t, page.HasPrev())
	assert.True(t, page.HasNext())

	got, page = Paginate(items, 3, 2)
	assert.Equal(t, []int{5}, got)
	assert.True(t, page.HasPrev())
	assert.False(t, page.HasNext())

	got, page = Paginate(items, 99, 2)
	assert.Equal(t, []int{5}, got)
	assert.Equal(t, 3, page.Number)

	got, page = Paginate([]int{}, 1, 9)
	assert.Empty(t, got)
	assert.Equal(t, 1, page.TotalPages)
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"go", "web"}, NormalizeTags([]string{" Go ", "web", "", "GO"}))
	assert.Equal(t, []string{"a", "b"}, SplitTags("a, b,,A"))
	assert.Empty(t, SplitTags(""))
}
