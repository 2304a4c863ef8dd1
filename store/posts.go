package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eringen/folio/content"
)

const postColumns = `id, title, slug, excerpt, content, featured_image, status, tags, author_id, published_at, created_at, updated_at`

// ListPosts returns every post, newest first.
func (s *Store) ListPosts(ctx context.Context) ([]content.BlogPost, error) {
	return s.queryPosts(ctx, `SELECT `+postColumns+` FROM blog_posts ORDER BY created_at DESC, rowid DESC`)
}

// ListPublishedPosts returns published posts, most recently published first.
func (s *Store) ListPublishedPosts(ctx context.Context) ([]content.BlogPost, error) {
	return s.queryPosts(ctx, `SELECT `+postColumns+` FROM blog_posts WHERE status = 'published' ORDER BY published_at DESC, rowid DESC`)
}

// GetPost returns the post with id regardless of status.
func (s *Store) GetPost(ctx context.Context, id string) (content.BlogPost, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM blog_posts WHERE id = ?`, id)
	p, err := scanPost(row)
	if err != nil {
		return content.BlogPost{}, fmt.Errorf("post %s: %w", id, notFound(err))
	}
	return p, nil
}

// GetPostBySlug returns the post with slug regardless of status.
func (s *Store) GetPostBySlug(ctx context.Context, slug string) (content.BlogPost, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM blog_posts WHERE slug = ?`, slug)
	p, err := scanPost(row)
	if err != nil {
		return content.BlogPost{}, fmt.Errorf("post %q: %w", slug, notFound(err))
	}
	return p, nil
}

// InsertPost stores p with a fresh id and timestamps and returns the stored
// row.
func (s *Store) InsertPost(ctx context.Context, p content.BlogPost) (content.BlogPost, error) {
	id := s.ids()
	now := formatTime(s.now())
	_, err := s.db.ExecContext(ctx, `INSERT INTO blog_posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.Title, p.Slug, nullString(p.Excerpt), p.Content, nullString(p.FeaturedImage), string(p.Status),
		formatTags(p.Tags), p.AuthorID, nullTime(p.PublishedAt), now, now)
	if err != nil {
		return content.BlogPost{}, fmt.Errorf("insert post: %w", err)
	}
	return s.GetPost(ctx, id)
}

// UpdatePost overwrites the editable fields of the post with p.ID.
func (s *Store) UpdatePost(ctx context.Context, p content.BlogPost) (content.BlogPost, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE blog_posts SET title = ?, slug = ?, excerpt = ?, content = ?, featured_image = ?,
		status = ?, tags = ?, published_at = ?, updated_at = ? WHERE id = ?`,
		p.Title, p.Slug, nullString(p.Excerpt), p.Content, nullString(p.FeaturedImage),
		string(p.Status), formatTags(p.Tags), nullTime(p.PublishedAt), formatTime(s.now()), p.ID)
	if err != nil {
		return content.BlogPost{}, fmt.Errorf("update post: %w", err)
	}
	if err := affected(res); err != nil {
		return content.BlogPost{}, fmt.Errorf("update post %s: %w", p.ID, err)
	}
	return s.GetPost(ctx, p.ID)
}

// DeletePost removes the post with id.
func (s *Store) DeletePost(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if err := affected(res); err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	return nil
}

func (s *Store) queryPosts(ctx context.Context, query string, args ...any) ([]content.BlogPost, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	posts := []content.BlogPost{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	return posts, nil
}

func scanPost(sc scanner) (content.BlogPost, error) {
	var (
		p                              content.BlogPost
		excerpt, image, publishedAt    sql.NullString
		status, tags, created, updated string
	)
	if err := sc.Scan(&p.ID, &p.Title, &p.Slug, &excerpt, &p.Content, &image, &status, &tags,
		&p.AuthorID, &publishedAt, &created, &updated); err != nil {
		return content.BlogPost{}, err
	}
	p.Excerpt = stringPtr(excerpt)
	p.FeaturedImage = stringPtr(image)
	p.Status = content.Status(status)
	p.Tags = parseTags(tags)

	var err error
	if p.PublishedAt, err = parseNullTime(publishedAt); err != nil {
		return content.BlogPost{}, err
	}
	if p.CreatedAt, err = parseTime(created); err != nil {
		return content.BlogPost{}, err
	}
	if p.UpdatedAt, err = parseTime(updated); err != nil {
		return content.BlogPost{}, err
	}
	return p, nil
}
