package content

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() ContactSubmission {
	return ContactSubmission{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Subject: "Reading at the library",
		Message: "Would you read at our event?",
	}
}

func TestCreateMessageIsAnonymous(t *testing.T) {
	svc := NewContacts(newMemStore())

	m, err := svc.Create(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.Equal(t, MessageUnread, m.Status)
	assert.Equal(t, "Reading at the library", m.SubjectText())
}

func TestCreateMessageStripsMarkup(t *testing.T) {
	svc := NewContacts(newMemStore())
	sub := validSubmission()
	sub.Name = "<b>Ada</b>"
	sub.Message = `Hi <script>alert("x")</script>there & "friends"`

	m, err := svc.Create(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, "Ada", m.Name)
	assert.NotContains(t, m.Message, "<script>")
	assert.Contains(t, m.Message, `& "friends"`)
}

func TestCreateMessageStripsEncodedMarkup(t *testing.T) {
	svc := NewContacts(newMemStore())
	sub := validSubmission()
	sub.Name = "&lt;b&gt;Ada&lt;/b&gt;"

	m, err := svc.Create(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, "Ada", m.Name)
}

func TestCreateMessageValidation(t *testing.T) {
	store := newMemStore()
	svc := NewContacts(store)

	mutate := []func(*ContactSubmission){
		func(s *ContactSubmission) { s.Name = "" },
		func(s *ContactSubmission) { s.Name = "<i></i>" },
		func(s *ContactSubmission) { s.Email = "not-an-email" },
		func(s *ContactSubmission) { s.Email = "Ada <ada@example.com>" },
		func(s *ContactSubmission) { s.Message = "   " },
		func(s *ContactSubmission) { s.Message = strings.Repeat("x", maxMessageLen+1) },
	}
	for i, m := range mutate {
		sub := validSubmission()
		m(&sub)
		_, err := svc.Create(context.Background(), sub)
		assert.True(t, IsValidation(err), "case %d: got %v", i, err)
	}
	assert.Zero(t, store.calls)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(MessageUnread, MessageRead))
	assert.True(t, CanTransition(MessageUnread, MessageReplied))
	assert.True(t, CanTransition(MessageRead, MessageReplied))
	assert.True(t, CanTransition(MessageReplied, MessageUnread))
	assert.True(t, CanTransition(MessageRead, MessageRead))
	assert.False(t, CanTransition(MessageReplied, MessageRead))
}

func TestSetStatus(t *testing.T) {
	svc := NewContacts(newMemStore())
	ctx := context.Background()

	m, err := svc.Create(ctx, validSubmission())
	require.NoError(t, err)

	m, err = svc.SetStatus(ctx, m.ID, MessageRead)
	require.NoError(t, err)
	assert.Equal(t, MessageRead, m.Status)

	_, err = svc.SetStatus(ctx, m.ID, MessageStatus("spam"))
	assert.True(t, IsValidation(err))

	m, err = svc.SetStatus(ctx, m.ID, MessageReplied)
	require.NoError(t, err)
	_, err = svc.SetStatus(ctx, m.ID, MessageRead)
	assert.True(t, IsValidation(err))

	cur, err := svc.Current(ctx)
	require.NoError(t, err)
	require.Len(t, cur, 1)
	assert.Equal(t, MessageReplied, cur[0].Status)

	_, err = svc.SetStatus(ctx, "missing", MessageRead)
	assert.True(t, IsNotFound(err))
}

func TestReply(t *testing.T) {
	svc := NewContacts(newMemStore())
	ctx := context.Background()

	m, err := svc.Create(ctx, validSubmission())
	require.NoError(t, err)

	_, err = svc.Reply(ctx, m.ID, "  ")
	assert.True(t, IsValidation(err))

	link, err := svc.Reply(ctx, m.ID, "Yes, gladly!")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "mailto:ada@example.com?"))
	assert.NotContains(t, link, "+")

	u, err := url.Parse(link)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "Re: Reading at the library", q.Get("subject"))
	assert.Equal(t, "Yes, gladly!", q.Get("body"))

	got, err := svc.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, MessageReplied, got.Status)
}

func TestReplyLinkWithoutSubject(t *testing.T) {
	link := ReplyLink(ContactMessage{Email: "bob@example.com"}, "hi")
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Re: Your message", u.Query().Get("subject"))
}

func TestReplyLinkEscapesAddress(t *testing.T) {
	link := ReplyLink(ContactMessage{Email: "a?b=c#d@x.com"}, "hi")
	assert.True(t, strings.HasPrefix(link, "mailto:a%3Fb=c%23d@x.com?subject="), link)

	u, err := url.Parse(link)
	require.NoError(t, err)
	addr, err := url.PathUnescape(u.Opaque)
	require.NoError(t, err)
	assert.Equal(t, "a?b=c#d@x.com", addr)
	assert.Equal(t, "hi", u.Query().Get("body"))
}

func TestDeleteMessageAndUnreadCount(t *testing.T) {
	svc := NewContacts(newMemStore())
	ctx := context.Background()

	a, err := svc.Create(ctx, validSubmission())
	require.NoError(t, err)
	_, err = svc.Create(ctx, validSubmission())
	require.NoError(t, err)

	cur, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, UnreadCount(cur))

	require.NoError(t, svc.Delete(ctx, a.ID))
	cur, err = svc.Current(ctx)
	require.NoError(t, err)
	assert.Len(t, cur, 1)
	assert.Equal(t, 1, UnreadCount(cur))
}
