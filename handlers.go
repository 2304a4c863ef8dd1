package folio

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/eringen/folio/content"
)

const (
	homeFeatured = 3
	relatedLimit = 3
)

func (a *App) handleHome(c echo.Context) error {
	ctx := c.Request().Context()
	posts, err := a.Cache.Posts(ctx)
	if err != nil {
		return err
	}
	works, err := a.Cache.Works(ctx)
	if err != nil {
		return err
	}
	s := a.Settings.Current(ctx)
	site := a.site(c, PageMeta{JSONLD: WebsiteJSONLD(a.Config, s.SiteDescription, s.DisplayName)})
	return Render(c, a.Views.Home(HomePage{
		Site:          site,
		FeaturedWorks: firstN(works, homeFeatured),
		RecentPosts:   firstN(posts, homeFeatured),
	}))
}

func (a *App) handleAbout(c echo.Context) error {
	ctx := c.Request().Context()
	posts, err := a.Cache.Posts(ctx)
	if err != nil {
		return err
	}
	works, err := a.Cache.Works(ctx)
	if err != nil {
		return err
	}
	var counts []TypeCount
	for _, t := range content.WorkTypes {
		n := len(content.Filter(works, content.Query{Category: string(t)}))
		if n > 0 {
			counts = append(counts, TypeCount{Type: t, Count: n})
		}
	}
	return Render(c, a.Views.About(AboutPage{
		Site:       a.site(c, PageMeta{Title: "About", OGType: "profile"}),
		WorkCounts: counts,
		PostCount:  len(posts),
	}))
}

func (a *App) handleWorks(c echo.Context) error {
	ctx := c.Request().Context()
	works, err := a.Cache.Works(ctx)
	if err != nil {
		return err
	}
	q := listQuery(c, "type")
	q.Status = ""
	matched := content.Filter(works, q)
	pageItems, page := content.Paginate(matched, pageParam(c), a.Settings.Current(ctx).WorksPerPage)

	var tagged, external int
	for _, w := range works {
		if len(w.Tags) > 0 {
			tagged++
		}
		if w.IsExternal() {
			external++
		}
	}
	return Render(c, a.Views.Works(WorksPage{
		Site:     a.site(c, PageMeta{Title: "Works"}),
		Works:    pageItems,
		Query:    q,
		Page:     page,
		Total:    len(works),
		Tagged:   tagged,
		External: external,
	}))
}

func (a *App) handleWork(c echo.Context) error {
	ctx := c.Request().Context()
	work, err := a.Cache.Work(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	works, err := a.Cache.Works(ctx)
	if err != nil {
		return err
	}
	var related []content.LiteraryWork
	for _, w := range works {
		if w.ID != work.ID && w.Type == work.Type {
			related = append(related, w)
		}
	}
	s := a.Settings.Current(ctx)
	return Render(c, a.Views.Work(WorkPage{
		Site: a.site(c, PageMeta{
			Title:       work.Title,
			Description: work.DescriptionText(),
			OGType:      "article",
			JSONLD:      CreativeWorkJSONLD(work, a.Config, s.DisplayName),
		}),
		Work:    work,
		Related: firstN(related, relatedLimit),
	}))
}

func (a *App) handleBlog(c echo.Context) error {
	ctx := c.Request().Context()
	posts, err := a.Cache.Posts(ctx)
	if err != nil {
		return err
	}
	tags, err := a.Cache.Tags(ctx)
	if err != nil {
		return err
	}
	q := listQuery(c, "tag")
	q.Status = ""
	pageItems, page := content.Paginate(content.Filter(posts, q), pageParam(c), a.Settings.Current(ctx).PostsPerPage)
	return Render(c, a.Views.Blog(BlogPage{
		Site:  a.site(c, PageMeta{Title: "Blog"}),
		Posts: pageItems,
		Tags:  tags,
		Query: q,
		Page:  page,
	}))
}

func (a *App) handlePost(c echo.Context) error {
	ctx := c.Request().Context()
	post, err := a.Cache.Post(ctx, c.Param("slug"))
	if err != nil {
		return err
	}
	posts, err := a.Cache.Posts(ctx)
	if err != nil {
		return err
	}
	s := a.Settings.Current(ctx)
	return Render(c, a.Views.Post(PostPage{
		Site: a.site(c, PageMeta{
			Title:       post.Title,
			Description: post.ExcerptText(),
			OGType:      "article",
			JSONLD:      BlogPostingJSONLD(post, a.Config, s.DisplayName),
		}),
		Post:    post,
		Related: firstN(content.Related(post, posts), relatedLimit),
	}))
}

func (a *App) handleContact(c echo.Context) error {
	return Render(c, a.Views.Contact(ContactPage{
		Site: a.site(c, PageMeta{Title: "Contact"}),
		Sent: c.QueryParam("sent") == "1",
	}))
}

func (a *App) handleContactSubmit(c echo.Context) error {
	form := bindContactForm(c)
	if !a.contactLimiter.Allow(c.RealIP()) {
		return RenderStatus(c, http.StatusTooManyRequests, a.Views.Contact(ContactPage{
			Site:  a.site(c, PageMeta{Title: "Contact"}),
			Form:  form,
			Error: "Too many messages. Please try again later.",
		}))
	}
	if _, err := a.Contacts.Create(c.Request().Context(), form.submission()); err != nil {
		if content.IsValidation(err) {
			return RenderStatus(c, http.StatusUnprocessableEntity, a.Views.Contact(ContactPage{
				Site:  a.site(c, PageMeta{Title: "Contact"}),
				Form:  form,
				Error: err.Error(),
			}))
		}
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/contact/?sent=1")
}

func (a *App) handleSitemap(c echo.Context) error {
	ctx := c.Request().Context()
	if !a.Settings.Current(ctx).EnableSitemap {
		return echo.ErrNotFound
	}
	posts, err := a.Cache.Posts(ctx)
	if err != nil {
		return err
	}
	works, err := a.Cache.Works(ctx)
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts, works)
}

func (a *App) handleFeed(c echo.Context) error {
	ctx := c.Request().Context()
	posts, err := a.Cache.Posts(ctx)
	if err != nil {
		return err
	}
	s := a.Settings.Current(ctx)
	return a.renderRSS(c, s.SiteTitle, s.SiteDescription, posts)
}

func (a *App) handleRobots(c echo.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\nDisallow: /admin/\n")
	if a.Settings.Current(c.Request().Context()).EnableSitemap {
		b.WriteString("\nSitemap: " + strings.TrimSuffix(BuildURL(a.Config.URL), "/") + "/sitemap.xml\n")
	}
	return c.String(http.StatusOK, b.String())
}

func (a *App) handleHealth(c echo.Context) error {
	if err := a.Store.Ping(c.Request().Context()); err != nil {
		log.Error().Err(err).Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	site := func() Site { return a.site(c, PageMeta{Title: "Error"}) }

	switch {
	case errors.Is(err, content.ErrNotAuthenticated):
		if c.Request().Method == http.MethodGet {
			_ = c.Redirect(http.StatusSeeOther, "/admin/")
			return
		}
		_ = c.String(http.StatusUnauthorized, "Unauthorized")
		return
	case content.IsNotFound(err):
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(site()))
		return
	case content.IsValidation(err):
		_ = c.String(http.StatusUnprocessableEntity, err.Error())
		return
	}

	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(site()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("server error")
		_ = RenderStatus(c, code, a.Views.ServerError(site()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
