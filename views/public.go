package views

import (
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/folio"
	"github.com/eringen/folio/content"
)

func Home(p folio.HomePage) templ.Component {
	return layout(p.Site, func(b *buf) {
		s := p.Settings
		b.raw(`<section class="hero">`)
		b.el("h1", "", s.DisplayName)
		b.el("p", "lead", s.SiteDescription)
		b.raw(`</section><section><h2>Featured works</h2>`)
		if len(p.FeaturedWorks) == 0 {
			b.el("p", "empty", "No works published yet.")
		}
		for _, w := range p.FeaturedWorks {
			workCard(b, w)
		}
		b.raw(`<p><a href="/works/">All works</a></p></section><section><h2>Recent posts</h2>`)
		if len(p.RecentPosts) == 0 {
			b.el("p", "empty", "No posts published yet.")
		}
		for _, post := range p.RecentPosts {
			postCard(b, post)
		}
		b.raw(`<p><a href="/blog/">All posts</a></p></section>`)
	})
}

func About(p folio.AboutPage) templ.Component {
	return layout(p.Site, func(b *buf) {
		s := p.Settings
		b.el("h1", "", "About "+s.DisplayName)
		b.paragraphs(s.Bio)
		if len(p.WorkCounts) > 0 || p.PostCount > 0 {
			b.raw(`<ul class="counts">`)
			for _, tc := range p.WorkCounts {
				b.raw("<li>")
				b.textf("%d %s", tc.Count, tc.Type.Label())
				b.raw("</li>")
			}
			b.raw("<li>")
			b.textf("%d blog posts", p.PostCount)
			b.raw("</li></ul>")
		}
		if s.Email != "" {
			b.raw("<p>")
			b.link("mailto:"+s.Email, s.Email)
			b.raw("</p>")
		}
	})
}

func Works(p folio.WorksPage) templ.Component {
	return layout(p.Site, func(b *buf) {
		b.el("h1", "", "Works")
		b.raw(`<p class="summary">`)
		b.textf("%d works, %d tagged, %d published elsewhere", p.Total, p.Tagged, p.External)
		b.raw(`</p><form method="get" action="/works/" class="filters">`)
		b.input("search", "q", "Search", p.Query.Search, false)
		b.selectBox("type", "Type", p.Query.Category, workTypeOptions(true))
		b.raw(`<button type="submit">Filter</button></form>`)
		if len(p.Works) == 0 {
			b.el("p", "empty", "No works match.")
		}
		for _, w := range p.Works {
			workCard(b, w)
		}
		pagination(b, "/works/", p.Page, url.Values{"q": {p.Query.Search}, "type": {p.Query.Category}})
	})
}

func Work(p folio.WorkPage) templ.Component {
	return layout(p.Site, func(b *buf) {
		w := p.Work
		b.raw("<article>")
		if w.CoverImage != nil {
			b.raw(`<img class="cover" alt="" src="`)
			b.href(*w.CoverImage)
			b.raw(`">`)
		}
		b.el("h1", "", w.Title)
		b.raw(`<p class="meta">`)
		b.text(w.Type.Label())
		if d := formatDate(w.PublishedAt); d != "" {
			b.raw(" &middot; ")
			b.text(d)
		}
		b.raw("</p>")
		b.paragraphs(w.DescriptionText())
		switch {
		case w.IsExternal():
			b.raw(`<p><a rel="noopener" href="`)
			b.href(*w.Content)
			b.raw(`">Read the full work</a></p>`)
		case w.Content != nil:
			b.raw(`<div class="body">`)
			b.paragraphs(*w.Content)
			b.raw("</div>")
		}
		b.tags(w.Tags, "/works/")
		b.raw("</article>")
		if len(p.Related) > 0 {
			b.raw("<aside><h2>More ")
			b.text(w.Type.Label())
			b.raw("</h2>")
			for _, r := range p.Related {
				workCard(b, r)
			}
			b.raw("</aside>")
		}
	})
}

func Blog(p folio.BlogPage) templ.Component {
	return layout(p.Site, func(b *buf) {
		b.el("h1", "", "Blog")
		b.raw(`<form method="get" action="/blog/" class="filters">`)
		b.input("search", "q", "Search", p.Query.Search, false)
		if p.Query.Category != "" {
			b.raw(`<input type="hidden" name="tag" value="`)
			b.text(p.Query.Category)
			b.raw(`">`)
		}
		b.raw(`<button type="submit">Search</button></form>`)
		if len(p.Tags) > 0 {
			b.raw(`<ul class="tags"><li`)
			if p.Query.Category == "" {
				b.raw(` class="active"`)
			}
			b.raw(`><a href="/blog/">All</a></li>`)
			for _, t := range p.Tags {
				b.raw("<li")
				if t == p.Query.Category {
					b.raw(` class="active"`)
				}
				b.raw(">")
				b.link("/blog/?tag="+url.QueryEscape(t), t)
				b.raw("</li>")
			}
			b.raw("</ul>")
		}
		if len(p.Posts) == 0 {
			b.el("p", "empty", "No posts match.")
		}
		for _, post := range p.Posts {
			postCard(b, post)
		}
		pagination(b, "/blog/", p.Page, url.Values{"q": {p.Query.Search}, "tag": {p.Query.Category}})
	})
}

func Post(p folio.PostPage) templ.Component {
	return layout(p.Site, func(b *buf) {
		post := p.Post
		b.raw("<article>")
		if post.FeaturedImage != nil {
			b.raw(`<img class="cover" alt="" src="`)
			b.href(*post.FeaturedImage)
			b.raw(`">`)
		}
		b.el("h1", "", post.Title)
		b.raw(`<p class="meta">`)
		b.text(formatDate(post.PublishedAt))
		b.raw(" &middot; ")
		b.text(content.ReadTimeLabel(post.Content))
		b.raw("</p>")
		if ex := post.ExcerptText(); ex != "" {
			b.el("p", "lead", ex)
		}
		b.raw(`<div class="body">`)
		b.paragraphs(post.Content)
		b.raw("</div>")
		b.tags(post.Tags, "/blog/")
		b.raw("</article>")
		if len(p.Related) > 0 {
			b.raw("<aside><h2>Related posts</h2>")
			for _, r := range p.Related {
				postCard(b, r)
			}
			b.raw("</aside>")
		}
	})
}

func Contact(p folio.ContactPage) templ.Component {
	return layout(p.Site, func(b *buf) {
		b.el("h1", "", "Contact")
		if p.Sent {
			b.el("p", "flash", "Thank you, your message has been sent.")
		}
		errorBox(b, p.Error)
		b.raw(`<form method="post" action="/contact/">`)
		b.csrf(p.CSRF)
		b.input("text", "name", "Name", p.Form.Name, true)
		b.input("email", "email", "Email", p.Form.Email, true)
		b.input("text", "subject", "Subject", p.Form.Subject, false)
		b.textarea("message", "Message", p.Form.Message, 8)
		b.raw(`<button type="submit">Send</button></form>`)
	})
}

func NotFound(site folio.Site) templ.Component {
	return layout(site, func(b *buf) {
		b.el("h1", "", "Page not found")
		b.raw(`<p>The page you are looking for does not exist. <a href="/">Go home</a>.</p>`)
	})
}

func ServerError(site folio.Site) templ.Component {
	return layout(site, func(b *buf) {
		b.el("h1", "", "Something went wrong")
		b.el("p", "", "Please try again in a moment.")
	})
}

func postCard(b *buf, p content.BlogPost) {
	b.raw(`<article class="card"><h3>`)
	b.link(p.Link(), p.Title)
	b.raw(`</h3><p class="meta">`)
	b.text(formatDate(p.PublishedAt))
	b.raw(" &middot; ")
	b.text(content.ReadTimeLabel(p.Content))
	b.raw("</p>")
	if ex := p.ExcerptText(); ex != "" {
		b.el("p", "", ex)
	}
	b.raw("</article>")
}

func workCard(b *buf, w content.LiteraryWork) {
	b.raw(`<article class="card"><h3>`)
	b.link(w.Link(), w.Title)
	b.raw(`</h3><p class="meta">`)
	b.text(w.Type.Label())
	b.raw("</p>")
	if d := w.DescriptionText(); d != "" {
		b.el("p", "", d)
	}
	b.raw("</article>")
}

func pagination(b *buf, base string, page content.Page, q url.Values) {
	if page.TotalPages <= 1 {
		return
	}
	for k, v := range q {
		if len(v) == 0 || v[0] == "" {
			q.Del(k)
		}
	}
	pageURL := func(n int) string {
		q.Set("page", strconv.Itoa(n))
		return base + "?" + q.Encode()
	}
	b.raw(`<nav class="pagination">`)
	if page.HasPrev() {
		b.link(pageURL(page.Number-1), "Newer")
	}
	b.raw("<span>")
	b.textf("Page %d of %d", page.Number, page.TotalPages)
	b.raw("</span>")
	if page.HasNext() {
		b.link(pageURL(page.Number+1), "Older")
	}
	b.raw("</nav>")
}

func workTypeOptions(withAll bool) []option {
	var opts []option
	if withAll {
		opts = append(opts, option{"", "All types"})
	}
	for _, t := range content.WorkTypes {
		opts = append(opts, option{string(t), t.Label()})
	}
	return opts
}
