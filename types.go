package folio

import (
	"github.com/eringen/folio/content"
	"github.com/eringen/folio/dashboard"
	"github.com/eringen/folio/settings"
)

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	JSONLD      string // optional structured data
}

// Site is the chrome every page renders with.
type Site struct {
	Name     string
	URL      string
	Settings settings.Settings
	Meta     PageMeta
	Path     string
	CSRF     string
	IsAdmin  bool
	Flash    string
}

// HomePage is the landing page.
type HomePage struct {
	Site
	FeaturedWorks []content.LiteraryWork
	RecentPosts   []content.BlogPost
}

// AboutPage renders the author biography.
type AboutPage struct {
	Site
	WorkCounts []TypeCount
	PostCount  int
}

// TypeCount is the number of published works of one type.
type TypeCount struct {
	Type  content.WorkType
	Count int
}

// WorksPage lists published works.
type WorksPage struct {
	Site
	Works    []content.LiteraryWork
	Query    content.Query
	Page     content.Page
	Total    int
	Tagged   int
	External int
}

// WorkPage shows a single work.
type WorkPage struct {
	Site
	Work    content.LiteraryWork
	Related []content.LiteraryWork
}

// BlogPage lists published posts.
type BlogPage struct {
	Site
	Posts []content.BlogPost
	Tags  []string
	Query content.Query
	Page  content.Page
}

// PostPage shows a single post.
type PostPage struct {
	Site
	Post    content.BlogPost
	Related []content.BlogPost
}

// ContactPage is the contact form.
type ContactPage struct {
	Site
	Form  ContactForm
	Error string
	Sent  bool
}

// LoginPage is the admin sign-in form.
type LoginPage struct {
	Site
	Failed  bool
	Limited bool
}

// DashboardPage is the admin landing page.
type DashboardPage struct {
	Site
	Stats *dashboard.Stats
}

// AdminPostsPage lists every post for management.
type AdminPostsPage struct {
	Site
	Posts []content.BlogPost
	Tags  []string
	Query content.Query
	Total int
}

// PostFormPage edits or creates a post.
type PostFormPage struct {
	Site
	ID    string
	Form  PostForm
	IsNew bool
	Error string
}

// AdminWorksPage lists every work for management.
type AdminWorksPage struct {
	Site
	Works []content.LiteraryWork
	Query content.Query
	Total int
}

// WorkFormPage edits or creates a work.
type WorkFormPage struct {
	Site
	ID    string
	Form  WorkForm
	IsNew bool
	Error string
}

// AdminContactsPage is the contact inbox.
type AdminContactsPage struct {
	Site
	Messages  []content.ContactMessage
	Query     content.Query
	Total     int
	Unread    int
	Error     string
	ReplyTo   string // message id the reply link belongs to
	ReplyLink string
}

// SettingsPage edits the site settings.
type SettingsPage struct {
	Site
	Settings settings.Settings
	Error    string
}
