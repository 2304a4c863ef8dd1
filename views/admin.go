package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/folio"
	"github.com/eringen/folio/content"
	"github.com/eringen/folio/settings"
)

// AdminLogin renders the sign-in form.
func AdminLogin(p folio.LoginPage) templ.Component {
	return layout(p.Site, func(b *buf) {
		b.el("h1", "", "Sign in")
		switch {
		case p.Limited:
			errorBox(b, "Too many login attempts. Try again later.")
		case p.Failed:
			errorBox(b, "Incorrect password.")
		}
		b.raw(`<form method="post" action="/admin/login/">`)
		b.csrf(p.CSRF)
		b.input("password", "password", "Password", "", true)
		b.raw(`<button type="submit">Sign in</button></form>`)
	})
}

// AdminDashboard renders totals, monthly progress and recent activity.
func AdminDashboard(p folio.DashboardPage) templ.Component {
	return adminLayout(p.Site, func(b *buf) {
		s := p.Stats
		b.el("h1", "", "Dashboard")
		b.raw(`<dl class="stats">`)
		stat := func(label string, value string) {
			b.el("dt", "", label)
			b.el("dd", "", value)
		}
		stat("Content", strconv.Itoa(s.TotalContent()))
		stat("Published posts", strconv.Itoa(s.PublishedPosts))
		stat("Drafts", strconv.Itoa(s.DraftPosts))
		stat("Published works", strconv.Itoa(s.PublishedWorks))
		stat("External works", strconv.Itoa(s.ExternalWorks))
		stat("Unread messages", strconv.Itoa(s.UnreadMessages))
		stat("Average read time", s.AvgReadTimeLabel())
		b.raw("</dl>")

		progress := func(label string, n, pct int) {
			b.raw(`<p class="progress">`)
			b.textf("%s: %d this month", label, n)
			b.raw(`<progress max="100"`)
			b.attr("value", strconv.Itoa(pct))
			b.raw("></progress></p>")
		}
		progress("Posts", s.PostsThisMonth, s.PostProgress())
		progress("Works", s.WorksThisMonth, s.WorkProgress())

		b.raw("<section><h2>Recent posts</h2><ul>")
		for _, post := range s.RecentPosts {
			b.raw("<li>")
			b.link("/admin/posts/"+post.ID+"/", post.Title)
			b.raw(" ")
			b.el("span", "meta", formatDate(post.PublishedAt))
			b.raw("</li>")
		}
		b.raw("</ul></section><section><h2>Recent messages</h2><ul>")
		for _, m := range s.RecentMessages {
			b.raw("<li>")
			b.text(m.Name)
			b.raw(" ")
			b.el("span", "status "+string(m.Status), string(m.Status))
			b.raw("</li>")
		}
		b.raw(`</ul><p><a href="/admin/contacts/">Inbox</a></p></section>`)
	})
}

// AdminPosts renders the post management table.
func AdminPosts(p folio.AdminPostsPage) templ.Component {
	return adminLayout(p.Site, func(b *buf) {
		b.el("h1", "", "Posts")
		b.raw(`<p><a class="button" href="/admin/posts/new/">New post</a></p>`)
		b.raw(`<form method="get" action="/admin/posts/" class="filters">`)
		b.input("search", "q", "Search", p.Query.Search, false)
		b.selectBox("status", "Status", p.Query.Status, statusOptions(true))
		tagOpts := []option{{"", "All tags"}}
		for _, t := range p.Tags {
			tagOpts = append(tagOpts, option{t, t})
		}
		b.selectBox("tag", "Tag", p.Query.Category, tagOpts)
		b.raw(`<button type="submit">Filter</button></form>`)
		b.el("p", "summary", strconv.Itoa(len(p.Posts))+" of "+strconv.Itoa(p.Total)+" posts")
		b.raw("<table><thead><tr><th>Title</th><th>Status</th><th>Published</th><th>Read time</th><th></th></tr></thead><tbody>")
		for _, post := range p.Posts {
			b.raw("<tr><td>")
			b.link("/admin/posts/"+post.ID+"/", post.Title)
			b.raw("</td><td>")
			b.el("span", "status "+string(post.Status), string(post.Status))
			b.raw("</td><td>")
			b.text(formatDate(post.PublishedAt))
			b.raw("</td><td>")
			b.text(content.ReadTimeLabel(post.Content))
			b.raw("</td><td>")
			b.deleteButton("/admin/posts/"+post.ID+"/", p.CSRF, "Delete")
			b.raw("</td></tr>")
		}
		b.raw("</tbody></table>")
	})
}

// AdminPostForm renders the post editor.
func AdminPostForm(p folio.PostFormPage) templ.Component {
	return adminLayout(p.Site, func(b *buf) {
		action := "/admin/posts/"
		if p.IsNew {
			b.el("h1", "", "New post")
		} else {
			b.el("h1", "", "Edit post")
			action += p.ID + "/"
		}
		errorBox(b, p.Error)
		f := p.Form
		b.raw(`<form method="post" action="`)
		b.href(action)
		b.raw(`">`)
		b.csrf(p.CSRF)
		b.input("text", "title", "Title", f.Title, true)
		b.input("text", "slug", "Slug (leave empty to derive from the title)", f.Slug, false)
		b.textarea("excerpt", "Excerpt", f.Excerpt, 3)
		b.textarea("content", "Content", f.Content, 20)
		b.input("url", "featured_image", "Featured image URL", f.FeaturedImage, false)
		b.selectBox("status", "Status", f.Status, statusOptions(false))
		b.input("text", "tags", "Tags (comma separated)", f.Tags, false)
		b.input("datetime-local", "published_at", "Publish date (UTC)", f.PublishedAt, false)
		b.raw(`<button type="submit">Save</button> <a href="/admin/posts/">Cancel</a></form>`)
	})
}

// AdminWorks renders the work management table.
func AdminWorks(p folio.AdminWorksPage) templ.Component {
	return adminLayout(p.Site, func(b *buf) {
		b.el("h1", "", "Works")
		b.raw(`<p><a class="button" href="/admin/works/new/">New work</a></p>`)
		b.raw(`<form method="get" action="/admin/works/" class="filters">`)
		b.input("search", "q", "Search", p.Query.Search, false)
		b.selectBox("status", "Status", p.Query.Status, statusOptions(true))
		b.selectBox("type", "Type", p.Query.Category, workTypeOptions(true))
		b.raw(`<button type="submit">Filter</button></form>`)
		b.el("p", "summary", strconv.Itoa(len(p.Works))+" of "+strconv.Itoa(p.Total)+" works")
		b.raw("<table><thead><tr><th>Title</th><th>Type</th><th>Status</th><th>Published</th><th></th></tr></thead><tbody>")
		for _, w := range p.Works {
			b.raw("<tr><td>")
			b.link("/admin/works/"+w.ID+"/", w.Title)
			b.raw("</td><td>")
			b.text(w.Type.Label())
			b.raw("</td><td>")
			b.el("span", "status "+string(w.Status), string(w.Status))
			b.raw("</td><td>")
			b.text(formatDate(w.PublishedAt))
			b.raw("</td><td>")
			b.deleteButton("/admin/works/"+w.ID+"/", p.CSRF, "Delete")
			b.raw("</td></tr>")
		}
		b.raw("</tbody></table>")
	})
}

// AdminWorkForm renders the work editor.
func AdminWorkForm(p folio.WorkFormPage) templ.Component {
	return adminLayout(p.Site, func(b *buf) {
		action := "/admin/works/"
		if p.IsNew {
			b.el("h1", "", "New work")
		} else {
			b.el("h1", "", "Edit work")
			action += p.ID + "/"
		}
		errorBox(b, p.Error)
		f := p.Form
		b.raw(`<form method="post" action="`)
		b.href(action)
		b.raw(`">`)
		b.csrf(p.CSRF)
		b.input("text", "title", "Title", f.Title, true)
		b.selectBox("type", "Type", f.Type, workTypeOptions(false))
		b.textarea("description", "Description", f.Description, 4)
		b.textarea("content", "Content, link or document reference", f.Content, 16)
		b.input("url", "cover_image", "Cover image URL", f.CoverImage, false)
		b.selectBox("status", "Status", f.Status, statusOptions(false))
		b.input("text", "tags", "Tags (comma separated)", f.Tags, false)
		b.input("datetime-local", "published_at", "Publish date (UTC)", f.PublishedAt, false)
		b.raw(`<button type="submit">Save</button> <a href="/admin/works/">Cancel</a></form>`)
	})
}

// AdminContacts renders the inbox with per-message status, reply and
// delete controls.
func AdminContacts(p folio.AdminContactsPage) templ.Component {
	return adminLayout(p.Site, func(b *buf) {
		b.el("h1", "", "Messages")
		b.el("p", "summary", strconv.Itoa(p.Unread)+" unread of "+strconv.Itoa(p.Total))
		errorBox(b, p.Error)
		b.raw(`<form method="get" action="/admin/contacts/" class="filters">`)
		b.input("search", "q", "Search", p.Query.Search, false)
		b.selectBox("status", "Status", p.Query.Category, messageStatusOptions(true))
		b.raw(`<button type="submit">Filter</button></form>`)
		if len(p.Messages) == 0 {
			b.el("p", "empty", "No messages.")
		}
		for _, m := range p.Messages {
			b.raw("<article")
			b.attr("class", "message "+string(m.Status))
			b.raw("><header>")
			b.el("strong", "", m.Name)
			b.raw(" &lt;")
			b.text(m.Email)
			b.raw("&gt; ")
			b.el("span", "meta", m.CreatedAt.Format(dateLayout))
			b.raw("</header>")
			if subj := m.SubjectText(); subj != "" {
				b.el("h3", "", subj)
			}
			b.paragraphs(m.Message)

			b.raw(`<form method="post" class="inline" action="`)
			b.href("/admin/contacts/" + m.ID + "/status/")
			b.raw(`">`)
			b.csrf(p.CSRF)
			b.selectBox("status", "Status", string(m.Status), messageStatusOptions(false))
			b.raw(`<button type="submit">Update</button></form>`)

			b.raw(`<form method="post" action="`)
			b.href("/admin/contacts/" + m.ID + "/reply/")
			b.raw(`">`)
			b.csrf(p.CSRF)
			b.textarea("body", "Reply", "", 4)
			b.raw(`<button type="submit">Prepare reply</button></form>`)
			if p.ReplyTo == m.ID && p.ReplyLink != "" {
				b.raw(`<p class="flash"><a class="button" href="`)
				b.href(p.ReplyLink)
				b.raw(`">Open reply in mail client</a></p>`)
			}
			b.deleteButton("/admin/contacts/"+m.ID+"/", p.CSRF, "Delete")
			b.raw("</article>")
		}
	})
}

// AdminSettings renders the settings form.
func AdminSettings(p folio.SettingsPage) templ.Component {
	return adminLayout(p.Site, func(b *buf) {
		s := p.Settings
		b.el("h1", "", "Settings")
		errorBox(b, p.Error)
		b.raw(`<form method="post" action="/admin/settings/">`)
		b.csrf(p.CSRF)
		b.raw("<fieldset><legend>Personal</legend>")
		b.input("text", "display_name", "Display name", s.DisplayName, true)
		b.input("email", "email", "Email", s.Email, false)
		b.input("email", "secondary_email", "Secondary email", s.SecondaryEmail, false)
		b.textarea("bio", "Biography", s.Bio, 8)
		b.raw("</fieldset><fieldset><legend>Site</legend>")
		b.input("text", "site_title", "Site title", s.SiteTitle, true)
		b.textarea("site_description", "Site description", s.SiteDescription, 3)
		b.raw("</fieldset><fieldset><legend>Social</legend>")
		b.input("url", "instagram", "Instagram", s.Instagram, false)
		b.input("url", "facebook", "Facebook", s.Facebook, false)
		b.input("url", "linkedin", "LinkedIn", s.LinkedIn, false)
		b.raw("</fieldset><fieldset><legend>Behaviour</legend>")
		b.selectBox("session_timeout_minutes", "Session timeout (minutes)",
			strconv.Itoa(s.SessionTimeoutMinutes), intOptions(settings.SessionTimeouts))
		b.selectBox("posts_per_page", "Posts per page", strconv.Itoa(s.PostsPerPage), intOptions(settings.PostsPerPageOptions))
		b.selectBox("works_per_page", "Works per page", strconv.Itoa(s.WorksPerPage), intOptions(settings.WorksPerPageOptions))
		b.raw(`<label><input type="checkbox" name="enable_sitemap" value="true"`)
		if s.EnableSitemap {
			b.raw(" checked")
		}
		b.raw(`> Publish sitemap.xml</label></fieldset><button type="submit">Save settings</button></form>`)

		b.raw(`<form method="post" action="/admin/settings/reset/">`)
		b.csrf(p.CSRF)
		b.raw(`<button type="submit" class="danger">Restore defaults</button></form>`)
	})
}

func statusOptions(withAll bool) []option {
	var opts []option
	if withAll {
		opts = append(opts, option{"", "All statuses"})
	}
	for _, s := range content.Statuses {
		opts = append(opts, option{string(s), string(s)})
	}
	return opts
}

func messageStatusOptions(withAll bool) []option {
	var opts []option
	if withAll {
		opts = append(opts, option{"", "All"})
	}
	for _, s := range content.MessageStatuses {
		opts = append(opts, option{string(s), string(s)})
	}
	return opts
}

func intOptions(ns []int) []option {
	opts := make([]option, len(ns))
	for i, n := range ns {
		opts[i] = option{strconv.Itoa(n), strconv.Itoa(n)}
	}
	return opts
}
