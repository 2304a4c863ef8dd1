// Package content holds the portfolio's domain: blog posts, literary works
// and contact messages, the rules that decide what visitors may see, and the
// data-access services the site's handlers call.
package content

import (
	"strings"
	"time"
)

// Status is the lifecycle stage of a post or work.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Statuses lists every content status in display order.
var Statuses = []Status{StatusDraft, StatusPublished, StatusArchived}

// Valid reports whether s is a known content status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// WorkType classifies a literary work.
type WorkType string

const (
	WorkNovel      WorkType = "novel"
	WorkShortStory WorkType = "short_story"
	WorkPoem       WorkType = "poem"
	WorkEssay      WorkType = "essay"
	WorkArticle    WorkType = "article"
)

// WorkTypes lists every work type in display order.
var WorkTypes = []WorkType{WorkNovel, WorkShortStory, WorkPoem, WorkEssay, WorkArticle}

// Valid reports whether t is a known work type.
func (t WorkType) Valid() bool {
	switch t {
	case WorkNovel, WorkShortStory, WorkPoem, WorkEssay, WorkArticle:
		return true
	}
	return false
}

// Label returns a human-readable name, e.g. "Short Story".
func (t WorkType) Label() string {
	words := strings.Split(string(t), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// MessageStatus is the inbox state of a contact message.
type MessageStatus string

const (
	MessageUnread  MessageStatus = "unread"
	MessageRead    MessageStatus = "read"
	MessageReplied MessageStatus = "replied"
)

// MessageStatuses lists every message status in display order.
var MessageStatuses = []MessageStatus{MessageUnread, MessageRead, MessageReplied}

// Valid reports whether s is a known message status.
func (s MessageStatus) Valid() bool {
	switch s {
	case MessageUnread, MessageRead, MessageReplied:
		return true
	}
	return false
}

// BlogPost is a blog entry. PublishedAt is non-nil exactly when Status is
// published.
type BlogPost struct {
	ID            string
	Title         string
	Slug          string
	Excerpt       *string
	Content       string
	FeaturedImage *string
	Status        Status
	Tags          []string
	AuthorID      string
	PublishedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Link returns the public path of the post.
func (p BlogPost) Link() string {
	return "/blog/" + p.Slug + "/"
}

// ExcerptText returns the excerpt or an empty string.
func (p BlogPost) ExcerptText() string {
	return deref(p.Excerpt)
}

// LiteraryWork is a piece in the portfolio. Content may hold the text
// itself, a URL, or a reference to a document.
type LiteraryWork struct {
	ID          string
	Title       string
	Type        WorkType
	Description *string
	Content     *string
	CoverImage  *string
	Status      Status
	Tags        []string
	AuthorID    string
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Link returns the public path of the work.
func (w LiteraryWork) Link() string {
	return "/works/" + w.ID + "/"
}

// DescriptionText returns the description or an empty string.
func (w LiteraryWork) DescriptionText() string {
	return deref(w.Description)
}

// IsExternal reports whether the work's content points at an http(s) URL.
func (w LiteraryWork) IsExternal() bool {
	c := strings.ToLower(strings.TrimSpace(deref(w.Content)))
	return strings.HasPrefix(c, "http://") || strings.HasPrefix(c, "https://")
}

// ContactMessage is a message left by a visitor on the contact page.
type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Subject   *string
	Message   string
	Status    MessageStatus
	CreatedAt time.Time
}

// SubjectText returns the subject or an empty string.
func (m ContactMessage) SubjectText() string {
	return deref(m.Subject)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns a pointer to the trimmed s, or nil when s is blank.
func StringPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
