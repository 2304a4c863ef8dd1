package views

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
)

const dateLayout = "January 2, 2006"

// markup is literal HTML written by this package. Untyped string
// constants convert to it implicitly; a string variable does not, so data
// can only reach the page through the escaping methods below.
type markup string

// buf accumulates a page. Every method that takes user data escapes it.
type buf struct {
	bytes.Buffer
}

func (b *buf) raw(parts ...markup) {
	for _, p := range parts {
		b.WriteString(string(p))
	}
}

// attr writes ` name="value"` with value attribute-escaped.
func (b *buf) attr(name markup, value string) {
	b.raw(" ", name, `="`)
	b.text(value)
	b.raw(`"`)
}

func (b *buf) text(s string) {
	b.WriteString(templ.EscapeString(s))
}

func (b *buf) textf(format string, args ...any) {
	b.text(fmt.Sprintf(format, args...))
}

// href writes a sanitized, escaped attribute value for a link target.
func (b *buf) href(u string) {
	b.text(string(templ.URL(u)))
}

// el writes <tag class="...">text</tag>.
func (b *buf) el(tag markup, class, text string) {
	b.raw("<", tag)
	if class != "" {
		b.attr("class", class)
	}
	b.raw(">")
	b.text(text)
	b.raw("</", tag, ">")
}

func (b *buf) link(u, text string) {
	b.raw(`<a href="`)
	b.href(u)
	b.raw(`">`)
	b.text(text)
	b.raw("</a>")
}

func (b *buf) csrf(token string) {
	b.raw(`<input type="hidden" name="_csrf"`)
	b.attr("value", token)
	b.raw(">")
}

// jsonLD writes a structured-data script. s must come from encoding/json,
// which escapes <, > and &; any remaining "</" is broken up so the
// payload cannot close the script element.
func (b *buf) jsonLD(s string) {
	b.raw(`<script type="application/ld+json">`)
	b.WriteString(strings.ReplaceAll(s, "</", `<\/`))
	b.raw("</script>")
}

// deleteButton writes a form that submits DELETE through the _method field.
func (b *buf) deleteButton(action, token, label string) {
	b.raw(`<form method="post" action="`)
	b.href(action)
	b.raw(`" class="inline">`)
	b.csrf(token)
	b.raw(`<input type="hidden" name="_method" value="DELETE"><button type="submit" class="danger">`)
	b.text(label)
	b.raw("</button></form>")
}

func (b *buf) input(kind, name, label, value string, required bool) {
	b.raw(`<label>`)
	b.text(label)
	b.raw("<input")
	b.attr("type", kind)
	b.attr("name", name)
	b.attr("value", value)
	if required {
		b.raw(" required")
	}
	b.raw("></label>")
}

func (b *buf) textarea(name, label, value string, rows int) {
	b.raw(`<label>`)
	b.text(label)
	b.raw("<textarea")
	b.attr("name", name)
	b.attr("rows", strconv.Itoa(rows))
	b.raw(">")
	b.text(value)
	b.raw("</textarea></label>")
}

// option is one <option> of a select.
type option struct {
	Value, Label string
}

func (b *buf) selectBox(name, label, selected string, opts []option) {
	b.raw(`<label>`)
	b.text(label)
	b.raw("<select")
	b.attr("name", name)
	b.raw(">")
	for _, o := range opts {
		b.raw("<option")
		b.attr("value", o.Value)
		if o.Value == selected {
			b.raw(" selected")
		}
		b.raw(">")
		b.text(o.Label)
		b.raw("</option>")
	}
	b.raw("</select></label>")
}

func (b *buf) tags(tags []string, base string) {
	if len(tags) == 0 {
		return
	}
	b.raw(`<ul class="tags">`)
	for _, t := range tags {
		b.raw("<li>")
		b.link(base+"?tag="+url.QueryEscape(t), t)
		b.raw("</li>")
	}
	b.raw("</ul>")
}

// paragraphs writes text as escaped paragraphs split on blank lines, with
// single newlines kept as line breaks.
func (b *buf) paragraphs(s string) {
	for _, p := range Paragraphs(s) {
		b.raw("<p>")
		for i, line := range strings.Split(p, "\n") {
			if i > 0 {
				b.raw("<br>")
			}
			b.text(line)
		}
		b.raw("</p>")
	}
}

// Paragraphs splits s on blank lines, dropping empty blocks.
func Paragraphs(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	var out []string
	for _, block := range strings.Split(s, "\n\n") {
		if block = strings.TrimSpace(block); block != "" {
			out = append(out, block)
		}
	}
	return out
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func component(fn func(b *buf)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b buf
		fn(&b)
		_, err := w.Write(b.Bytes())
		return err
	})
}
