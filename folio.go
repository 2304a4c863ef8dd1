// Package folio is a literary-portfolio site with an admin CMS, built with
// Echo, templ and SQLite. It serves the public pages (home, about, works,
// blog, contact), an RSS feed and sitemap, and a session-protected admin
// area for posts, works, the contact inbox and site settings.
//
// Callers provide the page components via ViewFuncs; folio owns handlers,
// middleware, storage and caching.
package folio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/eringen/folio/auth"
	"github.com/eringen/folio/content"
	"github.com/eringen/folio/dashboard"
	"github.com/eringen/folio/settings"
	"github.com/eringen/folio/store"
)

// ViewFuncs holds the page components folio renders. Every field must be
// set; views.Default() provides a complete set.
type ViewFuncs struct {
	Home    func(HomePage) templ.Component
	About   func(AboutPage) templ.Component
	Works   func(WorksPage) templ.Component
	Work    func(WorkPage) templ.Component
	Blog    func(BlogPage) templ.Component
	Post    func(PostPage) templ.Component
	Contact func(ContactPage) templ.Component

	AdminLogin     func(LoginPage) templ.Component
	AdminDashboard func(DashboardPage) templ.Component
	AdminPosts     func(AdminPostsPage) templ.Component
	AdminPostForm  func(PostFormPage) templ.Component
	AdminWorks     func(AdminWorksPage) templ.Component
	AdminWorkForm  func(WorkFormPage) templ.Component
	AdminContacts  func(AdminContactsPage) templ.Component
	AdminSettings  func(SettingsPage) templ.Component

	NotFound    func(Site) templ.Component
	ServerError func(Site) templ.Component
}

func (v ViewFuncs) missing() []string {
	var out []string
	for name, set := range map[string]bool{
		"Home": v.Home != nil, "About": v.About != nil, "Works": v.Works != nil, "Work": v.Work != nil,
		"Blog": v.Blog != nil, "Post": v.Post != nil, "Contact": v.Contact != nil,
		"AdminLogin": v.AdminLogin != nil, "AdminDashboard": v.AdminDashboard != nil,
		"AdminPosts": v.AdminPosts != nil, "AdminPostForm": v.AdminPostForm != nil,
		"AdminWorks": v.AdminWorks != nil, "AdminWorkForm": v.AdminWorkForm != nil,
		"AdminContacts": v.AdminContacts != nil, "AdminSettings": v.AdminSettings != nil,
		"NotFound": v.NotFound != nil, "ServerError": v.ServerError != nil,
	} {
		if !set {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

// App wires together the store, data-access services, cache, handlers,
// middleware and page components.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Views  ViewFuncs

	Store     *store.Store
	Posts     *content.Posts
	Works     *content.Works
	Contacts  *content.Contacts
	Settings  *settings.Service
	Dashboard *dashboard.Dashboard
	Cache     *PublishedCache

	credential     *auth.Credential
	loginLimiter   *LoginLimiter
	contactLimiter *ContactLimiter
	customRoutes   []func(*App)
	staticDir      string
	ready          bool
}

// New creates an App with the given configuration and page components.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	a := &App{
		Config:    cfg,
		Echo:      e,
		Views:     views,
		staticDir: "public",
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Init validates the configuration, opens the database and registers
// middleware and routes. Start calls it if it has not run yet.
func (a *App) Init(ctx context.Context) error {
	if a.ready {
		return nil
	}
	if err := a.Config.validate(); err != nil {
		return fmt.Errorf("folio: %w", err)
	}
	if missing := a.Views.missing(); len(missing) > 0 {
		return fmt.Errorf("folio: views not set: %v", missing)
	}
	cred, err := auth.NewCredential(a.Config.AdminPassword, a.Config.AdminPasswordHash)
	if err != nil {
		return fmt.Errorf("folio: admin credential: %w", err)
	}
	a.credential = cred

	st, err := store.Open(ctx, a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("folio: init store: %w", err)
	}
	a.Store = st

	a.Posts = content.NewPosts(st)
	a.Works = content.NewWorks(st)
	a.Contacts = content.NewContacts(st)
	a.Settings = settings.NewService(st.Settings())
	a.Dashboard = dashboard.New(a.Posts, a.Works, a.Contacts)
	a.Cache = NewPublishedCache(a.Posts, a.Works, a.Config.CacheTTL)

	a.loginLimiter = NewLoginLimiter(a.Config.LoginMaxAttempts, a.Config.LoginWindow)
	a.contactLimiter = NewContactLimiter(a.Config.ContactPerHour, time.Hour)

	if _, err := a.Settings.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("loading settings, using defaults")
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// Start initializes the app if needed and serves HTTP until the server is
// shut down.
func (a *App) Start() error {
	if err := a.Init(context.Background()); err != nil {
		return err
	}
	log.Info().Str("addr", a.Config.Addr).Str("url", a.Config.URL).Msg("folio listening")
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully and releases resources.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	return errors.Join(err, a.Close())
}

// Close releases the limiters and the database.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.contactLimiter != nil {
		a.contactLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/healthz", a.handleHealth)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	// Public pages
	e.GET("/", a.handleHome)
	e.GET("/about/", a.handleAbout)
	e.GET("/works/", a.handleWorks)
	e.GET("/works/:id/", a.handleWork)
	e.GET("/blog/", a.handleBlog)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/contact/", a.handleContact)
	e.POST("/contact/", a.handleContactSubmit)

	// Admin
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", a.handleAdminLogout)

	g := e.Group("/admin", a.requireAdmin)
	g.GET("/posts/", a.handleAdminPosts)
	g.GET("/posts/new/", a.handleAdminPostNew)
	g.GET("/posts/:id/", a.handleAdminPostEdit)
	g.POST("/posts/", a.handleAdminPostCreate)
	g.POST("/posts/:id/", a.handleAdminPostUpdate)
	g.DELETE("/posts/:id/", a.handleAdminPostDelete)

	g.GET("/works/", a.handleAdminWorks)
	g.GET("/works/new/", a.handleAdminWorkNew)
	g.GET("/works/:id/", a.handleAdminWorkEdit)
	g.POST("/works/", a.handleAdminWorkCreate)
	g.POST("/works/:id/", a.handleAdminWorkUpdate)
	g.DELETE("/works/:id/", a.handleAdminWorkDelete)

	g.GET("/contacts/", a.handleAdminContacts)
	g.POST("/contacts/:id/status/", a.handleAdminContactStatus)
	g.POST("/contacts/:id/reply/", a.handleAdminContactReply)
	g.DELETE("/contacts/:id/", a.handleAdminContactDelete)

	g.GET("/settings/", a.handleAdminSettings)
	g.POST("/settings/", a.handleAdminSettingsSave)
	g.POST("/settings/reset/", a.handleAdminSettingsReset)
}
