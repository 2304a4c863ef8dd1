package folio

import (
	"context"
	"sync"
	"time"

	"github.com/eringen/folio/content"
)

// publishedPosts and publishedWorks are the data-access calls the cache
// loads from.
type publishedPosts interface {
	ListPublished(ctx context.Context) ([]content.BlogPost, error)
}

type publishedWorks interface {
	ListPublished(ctx context.Context) ([]content.LiteraryWork, error)
}

// PublishedCache is an in-memory cache of published posts, works and tags
// with a TTL. Admin mutations invalidate it.
type PublishedCache struct {
	mu      sync.RWMutex
	posts   []content.BlogPost
	works   []content.LiteraryWork
	tags    []string
	fetched time.Time
	loaded  bool
	ttl     time.Duration

	postSource publishedPosts
	workSource publishedWorks
}

// NewPublishedCache creates a PublishedCache over the given services.
func NewPublishedCache(posts publishedPosts, works publishedWorks, ttl time.Duration) *PublishedCache {
	return &PublishedCache{postSource: posts, workSource: works, ttl: ttl}
}

func (c *PublishedCache) valid() bool {
	return c.loaded && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PublishedCache) Invalidate() {
	c.mu.Lock()
	c.posts, c.works, c.tags = nil, nil, nil
	c.loaded = false
	c.mu.Unlock()
}

func (c *PublishedCache) load(ctx context.Context) error {
	if c.valid() {
		return nil
	}
	posts, err := c.postSource.ListPublished(ctx)
	if err != nil {
		return err
	}
	works, err := c.workSource.ListPublished(ctx)
	if err != nil {
		return err
	}
	c.posts = content.PublishedOnly(posts)
	c.works = content.PublishedOnly(works)
	c.tags = content.CollectTags(c.posts)
	c.fetched = time.Now()
	c.loaded = true
	return nil
}

// ensureLoaded returns the cached lists after making sure they are fresh.
// It tries a read lock first and only takes the write lock to reload.
func (c *PublishedCache) ensureLoaded(ctx context.Context) ([]content.BlogPost, []content.LiteraryWork, []string, error) {
	c.mu.RLock()
	if c.valid() {
		posts, works, tags := c.posts, c.works, c.tags
		c.mu.RUnlock()
		return posts, works, tags, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return nil, nil, nil, err
	}
	return c.posts, c.works, c.tags, nil
}

// Posts returns published posts, newest first. Callers must not modify the
// returned slice.
func (c *PublishedCache) Posts(ctx context.Context) ([]content.BlogPost, error) {
	posts, _, _, err := c.ensureLoaded(ctx)
	return posts, err
}

// Works returns published works, newest first.
func (c *PublishedCache) Works(ctx context.Context) ([]content.LiteraryWork, error) {
	_, works, _, err := c.ensureLoaded(ctx)
	return works, err
}

// Tags returns the sorted tags of published posts.
func (c *PublishedCache) Tags(ctx context.Context) ([]string, error) {
	_, _, tags, err := c.ensureLoaded(ctx)
	return tags, err
}

// Post returns the published post with slug.
func (c *PublishedCache) Post(ctx context.Context, slug string) (content.BlogPost, error) {
	posts, err := c.Posts(ctx)
	if err != nil {
		return content.BlogPost{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return content.BlogPost{}, &content.StoreError{Op: "get post", Err: content.ErrNotFound}
}

// Work returns the published work with id.
func (c *PublishedCache) Work(ctx context.Context, id string) (content.LiteraryWork, error) {
	works, err := c.Works(ctx)
	if err != nil {
		return content.LiteraryWork{}, err
	}
	for _, w := range works {
		if w.ID == id {
			return w, nil
		}
	}
	return content.LiteraryWork{}, &content.StoreError{Op: "get work", Err: content.ErrNotFound}
}
