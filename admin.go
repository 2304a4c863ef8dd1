package folio

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/settings"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(LoginPage{Site: a.site(c, PageMeta{Title: "Sign in"})}))
	}
	stats, err := a.Dashboard.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(DashboardPage{
		Site:  a.site(c, PageMeta{Title: "Dashboard"}),
		Stats: stats,
	}))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return RenderStatus(c, http.StatusTooManyRequests, a.Views.AdminLogin(LoginPage{
			Site:    a.site(c, PageMeta{Title: "Sign in"}),
			Limited: true,
		}))
	}
	if !a.credential.Check(c.FormValue("password")) {
		a.loginLimiter.Record(ip)
		log.Warn().Str("ip", ip).Msg("admin login failed")
		return RenderStatus(c, http.StatusUnauthorized, a.Views.AdminLogin(LoginPage{
			Site:   a.site(c, PageMeta{Title: "Sign in"}),
			Failed: true,
		}))
	}
	a.loginLimiter.Reset(ip)
	if err := a.setAdminSession(c, a.Config.AdminID); err != nil {
		return err
	}
	log.Info().Str("ip", ip).Msg("admin signed in")
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// Posts

func (a *App) handleAdminPosts(c echo.Context) error {
	posts, err := a.Posts.Current(c.Request().Context())
	if err != nil {
		return err
	}
	q := listQuery(c, "tag")
	return Render(c, a.Views.AdminPosts(AdminPostsPage{
		Site:  a.site(c, PageMeta{Title: "Posts"}),
		Posts: content.Filter(posts, q),
		Tags:  content.CollectTags(posts),
		Query: q,
		Total: len(posts),
	}))
}

func (a *App) handleAdminPostNew(c echo.Context) error {
	return a.renderPostForm(c, http.StatusOK, "", PostForm{Status: string(content.StatusDraft)}, "")
}

func (a *App) handleAdminPostEdit(c echo.Context) error {
	post, err := a.Posts.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return a.renderPostForm(c, http.StatusOK, post.ID, postFormFrom(post), "")
}

func (a *App) handleAdminPostCreate(c echo.Context) error {
	form := bindPostForm(c)
	patch, err := form.Patch()
	if err == nil {
		_, err = a.Posts.Create(c.Request().Context(), patch)
	}
	if err != nil {
		return a.postFormError(c, "", form, err)
	}
	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/admin/posts/?msg=created")
}

func (a *App) handleAdminPostUpdate(c echo.Context) error {
	id := c.Param("id")
	form := bindPostForm(c)
	patch, err := form.Patch()
	if err == nil {
		_, err = a.Posts.Update(c.Request().Context(), id, patch)
	}
	if err != nil {
		return a.postFormError(c, id, form, err)
	}
	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/admin/posts/?msg=saved")
}

func (a *App) handleAdminPostDelete(c echo.Context) error {
	if err := a.Posts.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/admin/posts/?msg=deleted")
}

func (a *App) postFormError(c echo.Context, id string, form PostForm, err error) error {
	if !content.IsValidation(err) {
		return err
	}
	return a.renderPostForm(c, http.StatusUnprocessableEntity, id, form, err.Error())
}

func (a *App) renderPostForm(c echo.Context, code int, id string, form PostForm, msg string) error {
	title := "Edit post"
	if id == "" {
		title = "New post"
	}
	return RenderStatus(c, code, a.Views.AdminPostForm(PostFormPage{
		Site:  a.site(c, PageMeta{Title: title}),
		ID:    id,
		Form:  form,
		IsNew: id == "",
		Error: msg,
	}))
}

// Works

func (a *App) handleAdminWorks(c echo.Context) error {
	works, err := a.Works.Current(c.Request().Context())
	if err != nil {
		return err
	}
	q := listQuery(c, "type")
	return Render(c, a.Views.AdminWorks(AdminWorksPage{
		Site:  a.site(c, PageMeta{Title: "Works"}),
		Works: content.Filter(works, q),
		Query: q,
		Total: len(works),
	}))
}

func (a *App) handleAdminWorkNew(c echo.Context) error {
	form := WorkForm{Type: string(content.WorkArticle), Status: string(content.StatusDraft)}
	return a.renderWorkForm(c, http.StatusOK, "", form, "")
}

func (a *App) handleAdminWorkEdit(c echo.Context) error {
	work, err := a.Works.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return a.renderWorkForm(c, http.StatusOK, work.ID, workFormFrom(work), "")
}

func (a *App) handleAdminWorkCreate(c echo.Context) error {
	form := bindWorkForm(c)
	patch, err := form.Patch()
	if err == nil {
		_, err = a.Works.Create(c.Request().Context(), patch)
	}
	if err != nil {
		return a.workFormError(c, "", form, err)
	}
	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/admin/works/?msg=created")
}

func (a *App) handleAdminWorkUpdate(c echo.Context) error {
	id := c.Param("id")
	form := bindWorkForm(c)
	patch, err := form.Patch()
	if err == nil {
		_, err = a.Works.Update(c.Request().Context(), id, patch)
	}
	if err != nil {
		return a.workFormError(c, id, form, err)
	}
	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/admin/works/?msg=saved")
}

func (a *App) handleAdminWorkDelete(c echo.Context) error {
	if err := a.Works.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/admin/works/?msg=deleted")
}

func (a *App) workFormError(c echo.Context, id string, form WorkForm, err error) error {
	if !content.IsValidation(err) {
		return err
	}
	return a.renderWorkForm(c, http.StatusUnprocessableEntity, id, form, err.Error())
}

func (a *App) renderWorkForm(c echo.Context, code int, id string, form WorkForm, msg string) error {
	title := "Edit work"
	if id == "" {
		title = "New work"
	}
	return RenderStatus(c, code, a.Views.AdminWorkForm(WorkFormPage{
		Site:  a.site(c, PageMeta{Title: title}),
		ID:    id,
		Form:  form,
		IsNew: id == "",
		Error: msg,
	}))
}

// Contacts

func (a *App) handleAdminContacts(c echo.Context) error {
	return a.renderContacts(c, http.StatusOK, func(*AdminContactsPage) {})
}

func (a *App) handleAdminContactStatus(c echo.Context) error {
	status := content.MessageStatus(c.FormValue("status"))
	if _, err := a.Contacts.SetStatus(c.Request().Context(), c.Param("id"), status); err != nil {
		return a.contactsError(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/admin/contacts/?msg=updated")
}

func (a *App) handleAdminContactReply(c echo.Context) error {
	id := c.Param("id")
	link, err := a.Contacts.Reply(c.Request().Context(), id, c.FormValue("body"))
	if err != nil {
		return a.contactsError(c, err)
	}
	return a.renderContacts(c, http.StatusOK, func(p *AdminContactsPage) {
		p.ReplyTo = id
		p.ReplyLink = link
	})
}

func (a *App) handleAdminContactDelete(c echo.Context) error {
	if err := a.Contacts.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/contacts/?msg=deleted")
}

func (a *App) contactsError(c echo.Context, err error) error {
	if !content.IsValidation(err) {
		return err
	}
	return a.renderContacts(c, http.StatusUnprocessableEntity, func(p *AdminContactsPage) {
		p.Error = err.Error()
	})
}

func (a *App) renderContacts(c echo.Context, code int, with func(*AdminContactsPage)) error {
	msgs, err := a.Contacts.Current(c.Request().Context())
	if err != nil {
		return err
	}
	q := listQuery(c, "status")
	q.Status = ""
	page := AdminContactsPage{
		Site:     a.site(c, PageMeta{Title: "Messages"}),
		Messages: content.Filter(msgs, q),
		Query:    q,
		Total:    len(msgs),
		Unread:   content.UnreadCount(msgs),
	}
	with(&page)
	return RenderStatus(c, code, a.Views.AdminContacts(page))
}

// Settings

func (a *App) handleAdminSettings(c echo.Context) error {
	return a.renderSettings(c, http.StatusOK, a.Settings.Current(c.Request().Context()), "")
}

func (a *App) handleAdminSettingsSave(c echo.Context) error {
	ctx := c.Request().Context()
	form, err := c.FormParams()
	if err != nil {
		return err
	}
	values := make(map[string]string, len(form))
	for _, key := range settings.Keys() {
		if form.Has(key) {
			values[key] = form.Get(key)
		}
	}
	// Unchecked boxes are not submitted.
	values["enable_sitemap"] = strconv.FormatBool(form.Get("enable_sitemap") != "")

	next, err := settings.FromForm(a.Settings.Current(ctx), values)
	if err == nil {
		err = a.Settings.Save(ctx, next)
	}
	if err != nil {
		if content.IsValidation(err) {
			return a.renderSettings(c, http.StatusUnprocessableEntity, next, err.Error())
		}
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/settings/?msg=saved")
}

func (a *App) handleAdminSettingsReset(c echo.Context) error {
	if _, err := a.Settings.Reset(c.Request().Context()); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/settings/?msg=reset")
}

func (a *App) renderSettings(c echo.Context, code int, s settings.Settings, msg string) error {
	return RenderStatus(c, code, a.Views.AdminSettings(SettingsPage{
		Site:     a.site(c, PageMeta{Title: "Settings"}),
		Settings: s,
		Error:    msg,
	}))
}
