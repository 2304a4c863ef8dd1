package content

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxTitleLen   = 200
	maxExcerptLen = 1000
	maxNameLen    = 200
	maxSubjectLen = 300
	maxMessageLen = 10000
)

// PostPatch names the post fields a create or update may set. Nil fields
// are left untouched on update and defaulted on create.
type PostPatch struct {
	Title         *string
	Slug          *string
	Excerpt       *string
	Content       *string
	FeaturedImage *string
	Status        *Status
	Tags          []string // nil leaves tags untouched; empty clears them
	PublishedAt   *time.Time
}

// Validate checks the patch. When creating, a title is required.
func (p PostPatch) Validate(creating bool) error {
	if err := validateTitle(p.Title, creating); err != nil {
		return err
	}
	if p.Slug != nil && *p.Slug != "" && !IsValidSlug(*p.Slug) {
		return invalid("slug", "must contain only lowercase letters, digits and single hyphens")
	}
	if p.Excerpt != nil && utf8.RuneCountInString(*p.Excerpt) > maxExcerptLen {
		return invalid("excerpt", "is too long")
	}
	if p.Status != nil && !p.Status.Valid() {
		return invalid("status", "unknown status "+string(*p.Status))
	}
	return validateTags(p.Tags)
}

func (p PostPatch) apply(post *BlogPost) {
	if p.Title != nil {
		post.Title = strings.TrimSpace(*p.Title)
	}
	if p.Slug != nil && *p.Slug != "" {
		post.Slug = *p.Slug
	}
	if p.Excerpt != nil {
		post.Excerpt = StringPtr(*p.Excerpt)
	}
	if p.Content != nil {
		post.Content = *p.Content
	}
	if p.FeaturedImage != nil {
		post.FeaturedImage = StringPtr(*p.FeaturedImage)
	}
	if p.Status != nil {
		post.Status = *p.Status
	}
	if p.Tags != nil {
		post.Tags = NormalizeTags(p.Tags)
	}
}

// validateTags rejects tags the comma-delimited storage encoding would split.
func validateTags(tags []string) error {
	for _, t := range tags {
		if strings.Contains(t, ",") {
			return invalid("tags", "must not contain commas")
		}
	}
	return nil
}

// WorkPatch names the work fields a create or update may set.
type WorkPatch struct {
	Title       *string
	Type        *WorkType
	Description *string
	Content     *string
	CoverImage  *string
	Status      *Status
	Tags        []string
	PublishedAt *time.Time
}

// Validate checks the patch. When creating, a title is required.
func (p WorkPatch) Validate(creating bool) error {
	if err := validateTitle(p.Title, creating); err != nil {
		return err
	}
	if p.Type != nil && !p.Type.Valid() {
		return invalid("type", "unknown work type "+string(*p.Type))
	}
	if p.Status != nil && !p.Status.Valid() {
		return invalid("status", "unknown status "+string(*p.Status))
	}
	return validateTags(p.Tags)
}

func (p WorkPatch) apply(w *LiteraryWork) {
	if p.Title != nil {
		w.Title = strings.TrimSpace(*p.Title)
	}
	if p.Type != nil {
		w.Type = *p.Type
	}
	if p.Description != nil {
		w.Description = StringPtr(*p.Description)
	}
	if p.Content != nil {
		w.Content = StringPtr(*p.Content)
	}
	if p.CoverImage != nil {
		w.CoverImage = StringPtr(*p.CoverImage)
	}
	if p.Status != nil {
		w.Status = *p.Status
	}
	if p.Tags != nil {
		w.Tags = NormalizeTags(p.Tags)
	}
}

func validateTitle(title *string, required bool) error {
	if title == nil {
		if required {
			return invalid("title", "is required")
		}
		return nil
	}
	t := strings.TrimSpace(*title)
	if t == "" {
		return invalid("title", "is required")
	}
	if utf8.RuneCountInString(t) > maxTitleLen {
		return invalid("title", "is too long")
	}
	return nil
}

// ContactSubmission is what a visitor sends from the contact form.
type ContactSubmission struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Validate checks the required fields and their lengths.
func (s ContactSubmission) Validate() error {
	switch {
	case strings.TrimSpace(s.Name) == "":
		return invalid("name", "is required")
	case utf8.RuneCountInString(s.Name) > maxNameLen:
		return invalid("name", "is too long")
	case !validEmail(s.Email):
		return invalid("email", "must be a valid email address")
	case utf8.RuneCountInString(s.Subject) > maxSubjectLen:
		return invalid("subject", "is too long")
	case strings.TrimSpace(s.Message) == "":
		return invalid("message", "is required")
	case utf8.RuneCountInString(s.Message) > maxMessageLen:
		return invalid("message", "is too long")
	}
	return nil
}
