package content

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Works is the data-access service for literary works.
type Works struct {
	store WorkStore
	list  *mirror[LiteraryWork]
	now   func() time.Time
}

// NewWorks returns a Works service backed by s.
func NewWorks(s WorkStore) *Works {
	return &Works{
		store: s,
		list:  newMirror(func(w LiteraryWork) string { return w.ID }),
		now:   time.Now,
	}
}

// List fetches every work, newest first, and refreshes the mirror.
func (s *Works) List(ctx context.Context) ([]LiteraryWork, error) {
	works, err := s.store.ListWorks(ctx)
	if err != nil {
		return nil, storeErr("list works", err)
	}
	s.list.replace(works)
	return works, nil
}

// Cached returns a copy of the mirrored list as last loaded or patched.
func (s *Works) Cached() []LiteraryWork {
	items, _ := s.list.snapshot()
	return items
}

// Current returns the mirrored list, loading it first if needed.
func (s *Works) Current(ctx context.Context) ([]LiteraryWork, error) {
	if works, ok := s.list.snapshot(); ok {
		return works, nil
	}
	return s.List(ctx)
}

// ListPublished fetches published works ordered by publish date, newest
// first.
func (s *Works) ListPublished(ctx context.Context) ([]LiteraryWork, error) {
	works, err := s.store.ListPublishedWorks(ctx)
	if err != nil {
		return nil, storeErr("list published works", err)
	}
	return works, nil
}

// Get returns a work by id regardless of status.
func (s *Works) Get(ctx context.Context, id string) (LiteraryWork, error) {
	w, err := s.store.GetWork(ctx, id)
	if err != nil {
		return LiteraryWork{}, storeErr("get work", err)
	}
	return w, nil
}

// GetPublished returns the work with id if it is published.
func (s *Works) GetPublished(ctx context.Context, id string) (LiteraryWork, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return LiteraryWork{}, err
	}
	if w.Status != StatusPublished {
		return LiteraryWork{}, storeErr("get work", ErrNotFound)
	}
	return w, nil
}

// Create stores a new work authored by the identity in ctx.
func (s *Works) Create(ctx context.Context, patch WorkPatch) (LiteraryWork, error) {
	author, ok := AuthorFrom(ctx)
	if !ok {
		return LiteraryWork{}, ErrNotAuthenticated
	}
	if err := patch.Validate(true); err != nil {
		return LiteraryWork{}, err
	}

	work := LiteraryWork{Type: WorkArticle, Status: StatusDraft, Tags: []string{}, AuthorID: author}
	patch.apply(&work)
	work.PublishedAt = publishedAt(work.Status, nil, patch.PublishedAt, s.now())

	saved, err := s.store.InsertWork(ctx, work)
	if err != nil {
		return LiteraryWork{}, storeErr("create work", err)
	}
	s.list.prepend(saved)
	log.Info().Str("work_id", saved.ID).Str("type", string(saved.Type)).Msg("work created")
	return saved, nil
}

// Update merges patch into the stored work with id.
func (s *Works) Update(ctx context.Context, id string, patch WorkPatch) (LiteraryWork, error) {
	if err := patch.Validate(false); err != nil {
		return LiteraryWork{}, err
	}
	work, err := s.store.GetWork(ctx, id)
	if err != nil {
		return LiteraryWork{}, storeErr("update work", err)
	}

	prevPublished := work.PublishedAt
	patch.apply(&work)
	work.PublishedAt = publishedAt(work.Status, prevPublished, patch.PublishedAt, s.now())

	saved, err := s.store.UpdateWork(ctx, work)
	if err != nil {
		return LiteraryWork{}, storeErr("update work", err)
	}
	s.list.put(saved)
	log.Info().Str("work_id", saved.ID).Str("status", string(saved.Status)).Msg("work updated")
	return saved, nil
}

// Delete removes the work with id.
func (s *Works) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteWork(ctx, id); err != nil {
		return storeErr("delete work", err)
	}
	s.list.remove(id)
	log.Info().Str("work_id", id).Msg("work deleted")
	return nil
}
