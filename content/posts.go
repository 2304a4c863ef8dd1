package content

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Posts is the data-access service for blog posts. It keeps the admin list
// mirrored in memory and patches it from the store's responses.
type Posts struct {
	store PostStore
	list  *mirror[BlogPost]
	now   func() time.Time
}

// NewPosts returns a Posts service backed by s.
func NewPosts(s PostStore) *Posts {
	return &Posts{
		store: s,
		list:  newMirror(func(p BlogPost) string { return p.ID }),
		now:   time.Now,
	}
}

// List fetches every post, newest first, and refreshes the mirror.
func (s *Posts) List(ctx context.Context) ([]BlogPost, error) {
	posts, err := s.store.ListPosts(ctx)
	if err != nil {
		return nil, storeErr("list posts", err)
	}
	s.list.replace(posts)
	return posts, nil
}

// Cached returns a copy of the mirrored list as last loaded or patched.
func (s *Posts) Cached() []BlogPost {
	items, _ := s.list.snapshot()
	return items
}

// Current returns the mirrored list, loading it first if needed.
func (s *Posts) Current(ctx context.Context) ([]BlogPost, error) {
	if posts, ok := s.list.snapshot(); ok {
		return posts, nil
	}
	return s.List(ctx)
}

// ListPublished fetches published posts ordered by publish date, newest
// first.
func (s *Posts) ListPublished(ctx context.Context) ([]BlogPost, error) {
	posts, err := s.store.ListPublishedPosts(ctx)
	if err != nil {
		return nil, storeErr("list published posts", err)
	}
	return posts, nil
}

// Tags returns the sorted tags used by published posts.
func (s *Posts) Tags(ctx context.Context) ([]string, error) {
	posts, err := s.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	return CollectTags(posts), nil
}

// Get returns a post by id regardless of status.
func (s *Posts) Get(ctx context.Context, id string) (BlogPost, error) {
	p, err := s.store.GetPost(ctx, id)
	if err != nil {
		return BlogPost{}, storeErr("get post", err)
	}
	return p, nil
}

// GetPublishedBySlug returns the published post with slug.
func (s *Posts) GetPublishedBySlug(ctx context.Context, slug string) (BlogPost, error) {
	p, err := s.store.GetPostBySlug(ctx, slug)
	if err != nil {
		return BlogPost{}, storeErr("get post", err)
	}
	if p.Status != StatusPublished {
		return BlogPost{}, storeErr("get post", ErrNotFound)
	}
	return p, nil
}

// Create stores a new post authored by the identity in ctx. The slug is
// derived from the title unless given, and made unique among posts.
func (s *Posts) Create(ctx context.Context, patch PostPatch) (BlogPost, error) {
	author, ok := AuthorFrom(ctx)
	if !ok {
		return BlogPost{}, ErrNotAuthenticated
	}
	if err := patch.Validate(true); err != nil {
		return BlogPost{}, err
	}

	post := BlogPost{Status: StatusDraft, Tags: []string{}, AuthorID: author}
	patch.apply(&post)
	base := post.Slug
	if base == "" {
		base = Slugify(post.Title)
	}
	if base == "" {
		return BlogPost{}, invalid("slug", "cannot be derived from the title, set one explicitly")
	}
	slug, err := s.freeSlug(ctx, base, "")
	if err != nil {
		return BlogPost{}, err
	}
	post.Slug = slug
	post.PublishedAt = publishedAt(post.Status, nil, patch.PublishedAt, s.now())

	saved, err := s.store.InsertPost(ctx, post)
	if err != nil {
		return BlogPost{}, storeErr("create post", err)
	}
	s.list.prepend(saved)
	log.Info().Str("post_id", saved.ID).Str("slug", saved.Slug).Str("status", string(saved.Status)).Msg("post created")
	return saved, nil
}

// Update merges patch into the stored post with id.
func (s *Posts) Update(ctx context.Context, id string, patch PostPatch) (BlogPost, error) {
	if err := patch.Validate(false); err != nil {
		return BlogPost{}, err
	}
	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		return BlogPost{}, storeErr("update post", err)
	}

	prevSlug, prevPublished := post.Slug, post.PublishedAt
	patch.apply(&post)
	if post.Slug != prevSlug {
		if post.Slug, err = s.freeSlug(ctx, post.Slug, id); err != nil {
			return BlogPost{}, err
		}
	}
	post.PublishedAt = publishedAt(post.Status, prevPublished, patch.PublishedAt, s.now())

	saved, err := s.store.UpdatePost(ctx, post)
	if err != nil {
		return BlogPost{}, storeErr("update post", err)
	}
	s.list.put(saved)
	log.Info().Str("post_id", saved.ID).Str("status", string(saved.Status)).Msg("post updated")
	return saved, nil
}

// Delete removes the post with id.
func (s *Posts) Delete(ctx context.Context, id string) error {
	if err := s.store.DeletePost(ctx, id); err != nil {
		return storeErr("delete post", err)
	}
	s.list.remove(id)
	log.Info().Str("post_id", id).Msg("post deleted")
	return nil
}

// freeSlug returns base or the first suffixed variant not used by a post
// other than selfID.
func (s *Posts) freeSlug(ctx context.Context, base, selfID string) (string, error) {
	slug, err := uniqueSlug(base, func(candidate string) (bool, error) {
		existing, err := s.store.GetPostBySlug(ctx, candidate)
		if IsNotFound(err) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return existing.ID != selfID, nil
	})
	if err != nil {
		return "", storeErr("check slug", err)
	}
	return slug, nil
}
