package folio

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio/content"
)

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "https://example.com", BuildURL("https://example.com"))
	assert.Equal(t, "https://example.com/blog/my-post/", BuildURL("https://example.com", "blog", "my-post"))
	assert.Equal(t, "https://example.com/sub/works/abc/", BuildURL("https://example.com/sub/", "works", "abc"))
}

func TestBlogPostingJSONLD(t *testing.T) {
	at := time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)
	post := content.BlogPost{
		Title: "On </script> tags", Slug: "on-script-tags", Content: "one two three",
		Tags: []string{"craft"}, PublishedAt: &at, UpdatedAt: at,
	}
	raw := BlogPostingJSONLD(post, SiteConfig{Name: "Folio", URL: "https://example.com"}, "Ada")
	assert.NotContains(t, raw, "</script>")

	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &data))
	assert.Equal(t, "BlogPosting", data["@type"])
	assert.Equal(t, "https://example.com/blog/on-script-tags/", data["url"])
	assert.Equal(t, "2025-02-03T10:00:00Z", data["datePublished"])
	assert.Equal(t, "PT1M", data["timeRequired"])
	assert.Equal(t, "craft", data["keywords"])
}

func TestCreativeWorkJSONLDType(t *testing.T) {
	raw := CreativeWorkJSONLD(content.LiteraryWork{ID: "w1", Title: "Dusk", Type: content.WorkPoem}, SiteConfig{URL: "https://example.com"}, "")
	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &data))
	assert.Equal(t, "Poem", data["@type"])
	assert.Equal(t, "Poem", data["genre"])
	_, hasAuthor := data["author"]
	assert.False(t, hasAuthor)
}

func TestFlashMessage(t *testing.T) {
	assert.Equal(t, "Saved.", flashMessage("saved"))
	assert.Empty(t, flashMessage("<script>"))
}
