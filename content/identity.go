package content

import "context"

// authorKey is the context key carrying the authenticated author id.
type authorKey struct{}

// WithAuthor returns a context carrying authorID as the caller identity.
func WithAuthor(ctx context.Context, authorID string) context.Context {
	return context.WithValue(ctx, authorKey{}, authorID)
}

// AuthorFrom returns the author identity carried by ctx, if any.
func AuthorFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(authorKey{}).(string)
	return id, ok && id != ""
}
