package folio

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
)

// Accepted publish-date inputs: <input type="datetime-local"> and a bare date.
const (
	formDateTime = "2006-01-02T15:04"
	formDate     = "2006-01-02"
)

// PostForm holds the raw post editor fields.
type PostForm struct {
	Title         string
	Slug          string
	Excerpt       string
	Content       string
	FeaturedImage string
	Status        string
	Tags          string
	PublishedAt   string
}

func postFormFrom(p content.BlogPost) PostForm {
	return PostForm{
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.ExcerptText(),
		Content:       p.Content,
		FeaturedImage: derefString(p.FeaturedImage),
		Status:        string(p.Status),
		Tags:          strings.Join(p.Tags, ", "),
		PublishedAt:   formatFormTime(p.PublishedAt),
	}
}

func bindPostForm(c echo.Context) PostForm {
	return PostForm{
		Title:         strings.TrimSpace(c.FormValue("title")),
		Slug:          strings.TrimSpace(c.FormValue("slug")),
		Excerpt:       c.FormValue("excerpt"),
		Content:       c.FormValue("content"),
		FeaturedImage: strings.TrimSpace(c.FormValue("featured_image")),
		Status:        strings.TrimSpace(c.FormValue("status")),
		Tags:          c.FormValue("tags"),
		PublishedAt:   strings.TrimSpace(c.FormValue("published_at")),
	}
}

// Patch converts the form into a PostPatch. An empty slug is left for the
// data-access layer to derive on create, and keeps the current slug on
// update.
func (f PostForm) Patch() (content.PostPatch, error) {
	published, err := parseFormTime(f.PublishedAt)
	if err != nil {
		return content.PostPatch{}, err
	}
	p := content.PostPatch{
		Title:         &f.Title,
		Excerpt:       &f.Excerpt,
		Content:       &f.Content,
		FeaturedImage: &f.FeaturedImage,
		Tags:          content.SplitTags(f.Tags),
		PublishedAt:   published,
	}
	if f.Slug != "" {
		p.Slug = &f.Slug
	}
	if f.Status != "" {
		st := content.Status(f.Status)
		p.Status = &st
	}
	return p, nil
}

// WorkForm holds the raw work editor fields.
type WorkForm struct {
	Title       string
	Type        string
	Description string
	Content     string
	CoverImage  string
	Status      string
	Tags        string
	PublishedAt string
}

func workFormFrom(w content.LiteraryWork) WorkForm {
	return WorkForm{
		Title:       w.Title,
		Type:        string(w.Type),
		Description: w.DescriptionText(),
		Content:     derefString(w.Content),
		CoverImage:  derefString(w.CoverImage),
		Status:      string(w.Status),
		Tags:        strings.Join(w.Tags, ", "),
		PublishedAt: formatFormTime(w.PublishedAt),
	}
}

func bindWorkForm(c echo.Context) WorkForm {
	return WorkForm{
		Title:       strings.TrimSpace(c.FormValue("title")),
		Type:        strings.TrimSpace(c.FormValue("type")),
		Description: c.FormValue("description"),
		Content:     c.FormValue("content"),
		CoverImage:  strings.TrimSpace(c.FormValue("cover_image")),
		Status:      strings.TrimSpace(c.FormValue("status")),
		Tags:        c.FormValue("tags"),
		PublishedAt: strings.TrimSpace(c.FormValue("published_at")),
	}
}

// Patch converts the form into a WorkPatch.
func (f WorkForm) Patch() (content.WorkPatch, error) {
	published, err := parseFormTime(f.PublishedAt)
	if err != nil {
		return content.WorkPatch{}, err
	}
	p := content.WorkPatch{
		Title:       &f.Title,
		Description: &f.Description,
		Content:     &f.Content,
		CoverImage:  &f.CoverImage,
		Tags:        content.SplitTags(f.Tags),
		PublishedAt: published,
	}
	if f.Type != "" {
		t := content.WorkType(f.Type)
		p.Type = &t
	}
	if f.Status != "" {
		st := content.Status(f.Status)
		p.Status = &st
	}
	return p, nil
}

// ContactForm holds the visitor's contact form fields.
type ContactForm struct {
	Name    string
	Email   string
	Subject string
	Message string
}

func bindContactForm(c echo.Context) ContactForm {
	return ContactForm{
		Name:    c.FormValue("name"),
		Email:   c.FormValue("email"),
		Subject: c.FormValue("subject"),
		Message: c.FormValue("message"),
	}
}

func (f ContactForm) submission() content.ContactSubmission {
	return content.ContactSubmission{Name: f.Name, Email: f.Email, Subject: f.Subject, Message: f.Message}
}

// parseFormTime reads a publish date in UTC; empty means none given.
func parseFormTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{formDateTime, formDate, time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return &t, nil
		}
	}
	return nil, &content.ValidationError{Field: "published_at", Message: "use YYYY-MM-DD or YYYY-MM-DDTHH:MM"}
}

func formatFormTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(formDateTime)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
