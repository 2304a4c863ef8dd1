package content

import (
	"context"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
)

// Contacts is the data-access service for the contact inbox.
type Contacts struct {
	store  ContactStore
	list   *mirror[ContactMessage]
	policy *bluemonday.Policy
}

// NewContacts returns a Contacts service backed by s.
func NewContacts(s ContactStore) *Contacts {
	return &Contacts{
		store:  s,
		list:   newMirror(func(m ContactMessage) string { return m.ID }),
		policy: bluemonday.StrictPolicy(),
	}
}

// List fetches every message, newest first, and refreshes the mirror.
func (s *Contacts) List(ctx context.Context) ([]ContactMessage, error) {
	msgs, err := s.store.ListMessages(ctx)
	if err != nil {
		return nil, storeErr("list messages", err)
	}
	s.list.replace(msgs)
	return msgs, nil
}

// Cached returns a copy of the mirrored list as last loaded or patched.
func (s *Contacts) Cached() []ContactMessage {
	items, _ := s.list.snapshot()
	return items
}

// Current returns the mirrored list, loading it first if needed.
func (s *Contacts) Current(ctx context.Context) ([]ContactMessage, error) {
	if msgs, ok := s.list.snapshot(); ok {
		return msgs, nil
	}
	return s.List(ctx)
}

// Get returns a message by id.
func (s *Contacts) Get(ctx context.Context, id string) (ContactMessage, error) {
	m, err := s.store.GetMessage(ctx, id)
	if err != nil {
		return ContactMessage{}, storeErr("get message", err)
	}
	return m, nil
}

// Create records a visitor's submission as an unread message. Markup is
// stripped from every field; no identity is required.
func (s *Contacts) Create(ctx context.Context, sub ContactSubmission) (ContactMessage, error) {
	sub = ContactSubmission{
		Name:    s.plain(sub.Name),
		Email:   strings.TrimSpace(sub.Email),
		Subject: s.plain(sub.Subject),
		Message: s.plain(sub.Message),
	}
	if err := sub.Validate(); err != nil {
		return ContactMessage{}, err
	}
	saved, err := s.store.InsertMessage(ctx, ContactMessage{
		Name:    sub.Name,
		Email:   sub.Email,
		Subject: StringPtr(sub.Subject),
		Message: sub.Message,
		Status:  MessageUnread,
	})
	if err != nil {
		return ContactMessage{}, storeErr("create message", err)
	}
	s.list.prepend(saved)
	log.Info().Str("message_id", saved.ID).Msg("contact message received")
	return saved, nil
}

// SetStatus moves the message with id to status if the transition is
// allowed.
func (s *Contacts) SetStatus(ctx context.Context, id string, status MessageStatus) (ContactMessage, error) {
	if !status.Valid() {
		return ContactMessage{}, invalid("status", "unknown status "+string(status))
	}
	current, err := s.store.GetMessage(ctx, id)
	if err != nil {
		return ContactMessage{}, storeErr("update message", err)
	}
	if !CanTransition(current.Status, status) {
		return ContactMessage{}, invalid("status", "cannot change "+string(current.Status)+" message to "+string(status))
	}
	if current.Status == status {
		return current, nil
	}
	saved, err := s.store.UpdateMessageStatus(ctx, id, status)
	if err != nil {
		return ContactMessage{}, storeErr("update message", err)
	}
	s.list.put(saved)
	return saved, nil
}

// Reply returns a mailto: link answering the message with body and marks
// the message replied. Sending the mail is left to the admin's client.
func (s *Contacts) Reply(ctx context.Context, id, body string) (string, error) {
	if strings.TrimSpace(body) == "" {
		return "", invalid("reply", "is required")
	}
	msg, err := s.store.GetMessage(ctx, id)
	if err != nil {
		return "", storeErr("reply to message", err)
	}
	link := ReplyLink(msg, body)
	if _, err := s.SetStatus(ctx, id, MessageReplied); err != nil {
		return "", err
	}
	return link, nil
}

// Delete removes the message with id.
func (s *Contacts) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteMessage(ctx, id); err != nil {
		return storeErr("delete message", err)
	}
	s.list.remove(id)
	log.Info().Str("message_id", id).Msg("contact message deleted")
	return nil
}

// plain strips markup from v and returns it as unescaped, trimmed text.
// Entities are decoded before sanitizing so encoded tags are stripped too.
func (s *Contacts) plain(v string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(html.UnescapeString(v))))
}

// UnreadCount counts unread messages in msgs.
func UnreadCount(msgs []ContactMessage) int {
	n := 0
	for _, m := range msgs {
		if m.Status == MessageUnread {
			n++
		}
	}
	return n
}
