package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/folio"
)

var publicNav = []struct{ Path, Label string }{
	{"/", "Home"},
	{"/works/", "Works"},
	{"/blog/", "Blog"},
	{"/about/", "About"},
	{"/contact/", "Contact"},
}

var adminNav = []struct{ Path, Label string }{
	{"/admin/", "Dashboard"},
	{"/admin/posts/", "Posts"},
	{"/admin/works/", "Works"},
	{"/admin/contacts/", "Messages"},
	{"/admin/settings/", "Settings"},
}

func head(b *buf, site folio.Site) {
	m := site.Meta
	b.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
	b.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	b.raw("<title>")
	b.text(m.Title)
	b.raw(`</title><meta name="description" content="`)
	b.text(m.Description)
	b.raw(`"><link rel="canonical" href="`)
	b.href(m.URL)
	b.raw(`"><meta property="og:title" content="`)
	b.text(m.Title)
	b.raw(`"><meta property="og:description" content="`)
	b.text(m.Description)
	b.raw(`"><meta property="og:type" content="`)
	b.text(m.OGType)
	b.raw(`"><meta property="og:url" content="`)
	b.href(m.URL)
	b.raw(`"><link rel="alternate" type="application/rss+xml" title="`)
	b.text(site.Settings.SiteTitle)
	b.raw(`" href="/feed.xml"><link rel="stylesheet" href="/public/styles.css">`)
	if m.JSONLD != "" {
		b.jsonLD(m.JSONLD)
	}
	b.raw("</head>")
}

func nav(b *buf, site folio.Site, items []struct{ Path, Label string }) {
	b.raw(`<nav><a class="brand" href="/">`)
	b.text(site.Settings.DisplayName)
	b.raw("</a><ul>")
	for _, it := range items {
		b.raw("<li")
		if it.Path == site.Path {
			b.raw(` class="active"`)
		}
		b.raw(">")
		b.link(it.Path, it.Label)
		b.raw("</li>")
	}
	b.raw("</ul></nav>")
}

func flash(b *buf, site folio.Site) {
	if site.Flash != "" {
		b.el("p", "flash", site.Flash)
	}
}

func errorBox(b *buf, msg string) {
	if msg != "" {
		b.raw(`<p class="error" role="alert">`)
		b.text(msg)
		b.raw("</p>")
	}
}

// layout wraps a public page body.
func layout(site folio.Site, body func(b *buf)) templ.Component {
	return component(func(b *buf) {
		head(b, site)
		b.raw("<body><header>")
		nav(b, site, publicNav)
		b.raw("</header><main>")
		flash(b, site)
		body(b)
		b.raw("</main><footer>")
		if socials := site.Settings.Socials(); len(socials) > 0 {
			b.raw(`<ul class="socials">`)
			for _, s := range socials {
				b.raw("<li>")
				b.link(s.URL, s.Name)
				b.raw("</li>")
			}
			b.raw("</ul>")
		}
		b.raw("<p>&copy; ")
		b.text(site.Settings.DisplayName)
		b.raw(` &middot; <a href="/feed.xml">RSS</a></p></footer></body></html>`)
	})
}

// adminLayout wraps an admin page body.
func adminLayout(site folio.Site, body func(b *buf)) templ.Component {
	return component(func(b *buf) {
		head(b, site)
		b.raw(`<body class="admin"><header>`)
		nav(b, site, adminNav)
		b.raw(`<form method="post" action="/admin/logout/">`)
		b.csrf(site.CSRF)
		b.raw(`<button type="submit">Sign out</button></form></header><main>`)
		flash(b, site)
		body(b)
		b.raw("</main></body></html>")
	})
}
