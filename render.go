package folio

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// site builds the page chrome for the current request.
func (a *App) site(c echo.Context, meta PageMeta) Site {
	s := a.Settings.Current(c.Request().Context())
	if meta.Title == "" {
		meta.Title = s.SiteTitle
	} else {
		meta.Title += " | " + s.SiteTitle
	}
	if meta.Description == "" {
		meta.Description = s.SiteDescription
	}
	if meta.Description == "" {
		meta.Description = a.Config.Description
	}
	if meta.URL == "" {
		meta.URL = BuildURL(a.Config.URL, c.Request().URL.Path)
	}
	if meta.OGType == "" {
		meta.OGType = "website"
	}
	return Site{
		Name:     a.Config.Name,
		URL:      a.Config.URL,
		Settings: s,
		Meta:     meta,
		Path:     c.Request().URL.Path,
		CSRF:     CsrfToken(c),
		IsAdmin:  IsAdmin(c),
		Flash:    flashMessage(c.QueryParam("msg")),
	}
}

// flashMessage maps the ?msg= codes set by admin redirects to text.
func flashMessage(code string) string {
	switch code {
	case "created":
		return "Created."
	case "saved":
		return "Saved."
	case "deleted":
		return "Deleted."
	case "updated":
		return "Status updated."
	case "reset":
		return "Settings restored to defaults."
	case "sent":
		return "Thank you, your message has been sent."
	}
	return ""
}
