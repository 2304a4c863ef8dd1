package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eringen/folio/content"
)

const workColumns = `id, title, type, description, content, cover_image, status, tags, author_id, published_at, created_at, updated_at`

// ListWorks returns every work, newest first.
func (s *Store) ListWorks(ctx context.Context) ([]content.LiteraryWork, error) {
	return s.queryWorks(ctx, `SELECT `+workColumns+` FROM literary_works ORDER BY created_at DESC, rowid DESC`)
}

// ListPublishedWorks returns published works, most recently published first.
func (s *Store) ListPublishedWorks(ctx context.Context) ([]content.LiteraryWork, error) {
	return s.queryWorks(ctx, `SELECT `+workColumns+` FROM literary_works WHERE status = 'published' ORDER BY published_at DESC, rowid DESC`)
}

// GetWork returns the work with id regardless of status.
func (s *Store) GetWork(ctx context.Context, id string) (content.LiteraryWork, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+workColumns+` FROM literary_works WHERE id = ?`, id)
	w, err := scanWork(row)
	if err != nil {
		return content.LiteraryWork{}, fmt.Errorf("work %s: %w", id, notFound(err))
	}
	return w, nil
}

// InsertWork stores w with a fresh id and timestamps and returns the stored
// row.
func (s *Store) InsertWork(ctx context.Context, w content.LiteraryWork) (content.LiteraryWork, error) {
	id := s.ids()
	now := formatTime(s.now())
	_, err := s.db.ExecContext(ctx, `INSERT INTO literary_works (`+workColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, w.Title, string(w.Type), nullString(w.Description), nullString(w.Content), nullString(w.CoverImage),
		string(w.Status), formatTags(w.Tags), w.AuthorID, nullTime(w.PublishedAt), now, now)
	if err != nil {
		return content.LiteraryWork{}, fmt.Errorf("insert work: %w", err)
	}
	return s.GetWork(ctx, id)
}

// UpdateWork overwrites the editable fields of the work with w.ID.
func (s *Store) UpdateWork(ctx context.Context, w content.LiteraryWork) (content.LiteraryWork, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE literary_works SET title = ?, type = ?, description = ?, content = ?, cover_image = ?,
		status = ?, tags = ?, published_at = ?, updated_at = ? WHERE id = ?`,
		w.Title, string(w.Type), nullString(w.Description), nullString(w.Content), nullString(w.CoverImage),
		string(w.Status), formatTags(w.Tags), nullTime(w.PublishedAt), formatTime(s.now()), w.ID)
	if err != nil {
		return content.LiteraryWork{}, fmt.Errorf("update work: %w", err)
	}
	if err := affected(res); err != nil {
		return content.LiteraryWork{}, fmt.Errorf("update work %s: %w", w.ID, err)
	}
	return s.GetWork(ctx, w.ID)
}

// DeleteWork removes the work with id.
func (s *Store) DeleteWork(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM literary_works WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete work: %w", err)
	}
	if err := affected(res); err != nil {
		return fmt.Errorf("delete work %s: %w", id, err)
	}
	return nil
}

func (s *Store) queryWorks(ctx context.Context, query string, args ...any) ([]content.LiteraryWork, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query works: %w", err)
	}
	defer rows.Close()

	works := []content.LiteraryWork{}
	for rows.Next() {
		w, err := scanWork(rows)
		if err != nil {
			return nil, err
		}
		works = append(works, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query works: %w", err)
	}
	return works, nil
}

func scanWork(sc scanner) (content.LiteraryWork, error) {
	var (
		w                                   content.LiteraryWork
		desc, body, cover, publishedAt      sql.NullString
		typ, status, tags, created, updated string
	)
	if err := sc.Scan(&w.ID, &w.Title, &typ, &desc, &body, &cover, &status, &tags,
		&w.AuthorID, &publishedAt, &created, &updated); err != nil {
		return content.LiteraryWork{}, err
	}
	w.Type = content.WorkType(typ)
	w.Description = stringPtr(desc)
	w.Content = stringPtr(body)
	w.CoverImage = stringPtr(cover)
	w.Status = content.Status(status)
	w.Tags = parseTags(tags)

	var err error
	if w.PublishedAt, err = parseNullTime(publishedAt); err != nil {
		return content.LiteraryWork{}, err
	}
	if w.CreatedAt, err = parseTime(created); err != nil {
		return content.LiteraryWork{}, err
	}
	if w.UpdatedAt, err = parseTime(updated); err != nil {
		return content.LiteraryWork{}, err
	}
	return w, nil
}
