package folio

import (
	"encoding/json"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// WebsiteJSONLD returns a JSON-LD string for a WebSite schema.
func WebsiteJSONLD(cfg SiteConfig, description, author string) string {
	data := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.Name,
		"url":         BuildURL(cfg.URL),
		"description": description,
	}
	if author != "" {
		data["author"] = person(author)
	}
	return marshalJSONLD(data)
}

// BlogPostingJSONLD returns a JSON-LD string for a BlogPosting schema.
func BlogPostingJSONLD(post content.BlogPost, cfg SiteConfig, author string) string {
	postURL := BuildURL(cfg.URL, "blog", post.Slug)
	data := map[string]any{
		"@context":     "https://schema.org",
		"@type":        "BlogPosting",
		"headline":     post.Title,
		"description":  post.ExcerptText(),
		"dateModified": post.UpdatedAt.UTC().Format(time.RFC3339),
		"url":          postURL,
		"wordCount":    content.WordCount(post.Content),
		"timeRequired": "PT" + strconv.Itoa(content.ReadTime(post.Content)) + "M",
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if post.PublishedAt != nil {
		data["datePublished"] = post.PublishedAt.UTC().Format(time.RFC3339)
	}
	if author != "" {
		data["author"] = person(author)
	}
	if cfg.Name != "" {
		data["publisher"] = map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		}
	}
	if len(post.Tags) > 0 {
		data["keywords"] = strings.Join(post.Tags, ", ")
	}
	if post.FeaturedImage != nil {
		data["image"] = *post.FeaturedImage
	}
	return marshalJSONLD(data)
}

// CreativeWorkJSONLD returns a JSON-LD string for a literary work.
func CreativeWorkJSONLD(w content.LiteraryWork, cfg SiteConfig, author string) string {
	data := map[string]any{
		"@context":    "https://schema.org",
		"@type":       creativeWorkType(w.Type),
		"name":        w.Title,
		"description": w.DescriptionText(),
		"genre":       w.Type.Label(),
		"url":         BuildURL(cfg.URL, "works", w.ID),
	}
	if w.PublishedAt != nil {
		data["datePublished"] = w.PublishedAt.UTC().Format(time.RFC3339)
	}
	if author != "" {
		data["author"] = person(author)
	}
	if len(w.Tags) > 0 {
		data["keywords"] = strings.Join(w.Tags, ", ")
	}
	return marshalJSONLD(data)
}

func creativeWorkType(t content.WorkType) string {
	switch t {
	case content.WorkNovel:
		return "Book"
	case content.WorkShortStory:
		return "ShortStory"
	case content.WorkPoem:
		return "Poem"
	case content.WorkEssay, content.WorkArticle:
		return "Article"
	}
	return "CreativeWork"
}

func person(name string) map[string]string {
	return map[string]string{"@type": "Person", "name": name}
}

func marshalJSONLD(data map[string]any) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// listQuery reads the ?q= search box and the named category selector.
func listQuery(c echo.Context, category string) content.Query {
	return content.Query{
		Search:   strings.TrimSpace(c.QueryParam("q")),
		Category: strings.TrimSpace(c.QueryParam(category)),
		Status:   strings.TrimSpace(c.QueryParam("status")),
	}
}

// pageParam reads ?page=, defaulting to 1.
func pageParam(c echo.Context) int {
	n, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
