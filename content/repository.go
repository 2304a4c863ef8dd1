package content

import "context"

// PostStore persists blog posts. Inserts and updates return the row as
// stored, including server-managed fields.
type PostStore interface {
	ListPosts(ctx context.Context) ([]BlogPost, error)
	ListPublishedPosts(ctx context.Context) ([]BlogPost, error)
	GetPost(ctx context.Context, id string) (BlogPost, error)
	GetPostBySlug(ctx context.Context, slug string) (BlogPost, error)
	InsertPost(ctx context.Context, p BlogPost) (BlogPost, error)
	UpdatePost(ctx context.Context, p BlogPost) (BlogPost, error)
	DeletePost(ctx context.Context, id string) error
}

// WorkStore persists literary works.
type WorkStore interface {
	ListWorks(ctx context.Context) ([]LiteraryWork, error)
	ListPublishedWorks(ctx context.Context) ([]LiteraryWork, error)
	GetWork(ctx context.Context, id string) (LiteraryWork, error)
	InsertWork(ctx context.Context, w LiteraryWork) (LiteraryWork, error)
	UpdateWork(ctx context.Context, w LiteraryWork) (LiteraryWork, error)
	DeleteWork(ctx context.Context, id string) error
}

// ContactStore persists contact messages.
type ContactStore interface {
	ListMessages(ctx context.Context) ([]ContactMessage, error)
	GetMessage(ctx context.Context, id string) (ContactMessage, error)
	InsertMessage(ctx context.Context, m ContactMessage) (ContactMessage, error)
	UpdateMessageStatus(ctx context.Context, id string, status MessageStatus) (ContactMessage, error)
	DeleteMessage(ctx context.Context, id string) error
}
