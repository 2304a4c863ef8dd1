package content

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

// memStore is an in-memory PostStore, WorkStore and ContactStore. It
// counts calls so tests can assert validation happens before any I/O.
type memStore struct {
	mu       sync.Mutex
	posts    []BlogPost
	works    []LiteraryWork
	messages []ContactMessage
	seq      int
	calls    int
	fail     error
	clock    time.Time
}

func newMemStore() *memStore {
	return &memStore{clock: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (s *memStore) begin() error {
	s.calls++
	return s.fail
}

func (s *memStore) nextID() string {
	s.seq++
	return fmt.Sprintf("id-%d", s.seq)
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

func (s *memStore) ListPosts(ctx context.Context) ([]BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return nil, err
	}
	out := slices.Clone(s.posts)
	slices.Reverse(out)
	return out, nil
}

func (s *memStore) ListPublishedPosts(ctx context.Context) ([]BlogPost, error) {
	all, err := s.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	pub := PublishedOnly(all)
	SortPublishedDesc(pub)
	return pub, nil
}

func (s *memStore) GetPost(ctx context.Context, id string) (BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return BlogPost{}, err
	}
	for _, p := range s.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return BlogPost{}, ErrNotFound
}

func (s *memStore) GetPostBySlug(ctx context.Context, slug string) (BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return BlogPost{}, err
	}
	for _, p := range s.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return BlogPost{}, ErrNotFound
}

func (s *memStore) InsertPost(ctx context.Context, p BlogPost) (BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return BlogPost{}, err
	}
	for _, existing := range s.posts {
		if existing.Slug == p.Slug {
			return BlogPost{}, errors.New("UNIQUE constraint failed: blog_posts.slug")
		}
	}
	p.ID = s.nextID()
	p.CreatedAt = s.tick()
	p.UpdatedAt = p.CreatedAt
	s.posts = append(s.posts, p)
	return p, nil
}

func (s *memStore) UpdatePost(ctx context.Context, p BlogPost) (BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return BlogPost{}, err
	}
	for i := range s.posts {
		if s.posts[i].ID == p.ID {
			p.UpdatedAt = s.tick()
			s.posts[i] = p
			return p, nil
		}
	}
	return BlogPost{}, ErrNotFound
}

func (s *memStore) DeletePost(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return err
	}
	n := len(s.posts)
	s.posts = slices.DeleteFunc(s.posts, func(p BlogPost) bool { return p.ID == id })
	if len(s.posts) == n {
		return ErrNotFound
	}
	return nil
}

func (s *memStore) ListWorks(ctx context.Context) ([]LiteraryWork, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return nil, err
	}
	out := slices.Clone(s.works)
	slices.Reverse(out)
	return out, nil
}

func (s *memStore) ListPublishedWorks(ctx context.Context) ([]LiteraryWork, error) {
	all, err := s.ListWorks(ctx)
	if err != nil {
		return nil, err
	}
	pub := PublishedOnly(all)
	SortPublishedDesc(pub)
	return pub, nil
}

func (s *memStore) GetWork(ctx context.Context, id string) (LiteraryWork, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return LiteraryWork{}, err
	}
	for _, w := range s.works {
		if w.ID == id {
			return w, nil
		}
	}
	return LiteraryWork{}, ErrNotFound
}

func (s *memStore) InsertWork(ctx context.Context, w LiteraryWork) (LiteraryWork, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return LiteraryWork{}, err
	}
	w.ID = s.nextID()
	w.CreatedAt = s.tick()
	w.UpdatedAt = w.CreatedAt
	s.works = append(s.works, w)
	return w, nil
}

func (s *memStore) UpdateWork(ctx context.Context, w LiteraryWork) (LiteraryWork, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return LiteraryWork{}, err
	}
	for i := range s.works {
		if s.works[i].ID == w.ID {
			w.UpdatedAt = s.tick()
			s.works[i] = w
			return w, nil
		}
	}
	return LiteraryWork{}, ErrNotFound
}

func (s *memStore) DeleteWork(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return err
	}
	n := len(s.works)
	s.works = slices.DeleteFunc(s.works, func(w LiteraryWork) bool { return w.ID == id })
	if len(s.works) == n {
		return ErrNotFound
	}
	return nil
}

func (s *memStore) ListMessages(ctx context.Context) ([]ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return nil, err
	}
	out := slices.Clone(s.messages)
	slices.Reverse(out)
	return out, nil
}

func (s *memStore) GetMessage(ctx context.Context, id string) (ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return ContactMessage{}, err
	}
	for _, m := range s.messages {
		if m.ID == id {
			return m, nil
		}
	}
	return ContactMessage{}, ErrNotFound
}

func (s *memStore) InsertMessage(ctx context.Context, m ContactMessage) (ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return ContactMessage{}, err
	}
	m.ID = s.nextID()
	m.CreatedAt = s.tick()
	s.messages = append(s.messages, m)
	return m, nil
}

func (s *memStore) UpdateMessageStatus(ctx context.Context, id string, status MessageStatus) (ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return ContactMessage{}, err
	}
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].Status = status
			return s.messages[i], nil
		}
	}
	return ContactMessage{}, ErrNotFound
}

func (s *memStore) DeleteMessage(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return err
	}
	n := len(s.messages)
	s.messages = slices.DeleteFunc(s.messages, func(m ContactMessage) bool { return m.ID == id })
	if len(s.messages) == n {
		return ErrNotFound
	}
	return nil
}

func ptr[T any](v T) *T { return &v }

func adminCtx() context.Context {
	return WithAuthor(context.Background(), "author-1")
}
