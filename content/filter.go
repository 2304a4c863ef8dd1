package content

import (
	"slices"
	"strings"
	"time"
)

// FilterAll is the selector value meaning "no filter".
const FilterAll = "all"

// Publishable is implemented by entities with a content status.
type Publishable interface {
	PublicationStatus() Status
	PublishedTime() *time.Time
}

// Searchable is implemented by entities that can be narrowed by a Query.
type Searchable interface {
	// SearchText returns the lowercased text free-text search matches against.
	SearchText() string
	// HasCategory reports whether the entity belongs to category c.
	HasCategory(c string) bool
	// StatusName returns the entity's status as a string.
	StatusName() string
}

// Query narrows a list by free-text search, category and status. Empty
// or "all" fields match everything; set fields are combined with AND.
type Query struct {
	Search   string
	Category string
	Status   string
}

// IsZero reports whether q filters nothing.
func (q Query) IsZero() bool {
	return strings.TrimSpace(q.Search) == "" && isAll(q.Category) && isAll(q.Status)
}

// Matches reports whether item satisfies every set criterion of q.
func (q Query) Matches(item Searchable) bool {
	if s := strings.ToLower(strings.TrimSpace(q.Search)); s != "" {
		if !strings.Contains(item.SearchText(), s) {
			return false
		}
	}
	if !isAll(q.Category) && !item.HasCategory(strings.TrimSpace(q.Category)) {
		return false
	}
	if !isAll(q.Status) && item.StatusName() != strings.TrimSpace(q.Status) {
		return false
	}
	return true
}

func isAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, FilterAll)
}

// PublishedOnly returns the items whose status is published, in their
// original order.
func PublishedOnly[T Publishable](items []T) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.PublicationStatus() == StatusPublished {
			out = append(out, it)
		}
	}
	return out
}

// Filter returns the items matching q, in their original order.
func Filter[T Searchable](items []T, q Query) []T {
	if q.IsZero() {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if q.Matches(it) {
			out = append(out, it)
		}
	}
	return out
}

// SortPublishedDesc orders items newest publish date first. Items without a
// publish date sort last; ties keep their relative order.
func SortPublishedDesc[T Publishable](items []T) {
	slices.SortStableFunc(items, func(a, b T) int {
		ta, tb := a.PublishedTime(), b.PublishedTime()
		switch {
		case ta == nil && tb == nil:
			return 0
		case ta == nil:
			return 1
		case tb == nil:
			return -1
		}
		return tb.Compare(*ta)
	})
}

// Related returns the posts other than current sharing at least one tag
// with it.
func Related(current BlogPost, posts []BlogPost) []BlogPost {
	tags := make(map[string]struct{}, len(current.Tags))
	for _, t := range current.Tags {
		if t = normalizeTag(t); t != "" {
			tags[t] = struct{}{}
		}
	}
	var related []BlogPost
	for _, p := range posts {
		if p.ID == current.ID {
			continue
		}
		for _, t := range p.Tags {
			if _, ok := tags[normalizeTag(t)]; ok {
				related = append(related, p)
				break
			}
		}
	}
	return related
}

// CollectTags returns the sorted, deduplicated tags of posts.
func CollectTags(posts []BlogPost) []string {
	set := make(map[string]struct{})
	for _, p := range posts {
		for _, t := range p.Tags {
			if t = normalizeTag(t); t != "" {
				set[t] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// Page describes one page of a paginated list.
type Page struct {
	Number     int
	TotalPages int
	TotalItems int
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// Paginate returns the slice for page number (1-based) of size perPage.
// Out-of-range page numbers are clamped.
func Paginate[T any](items []T, number, perPage int) ([]T, Page) {
	if perPage <= 0 {
		perPage = len(items)
		if perPage == 0 {
			perPage = 1
		}
	}
	total := max(1, (len(items)+perPage-1)/perPage)
	number = min(max(number, 1), total)
	start := (number - 1) * perPage
	end := min(start+perPage, len(items))
	return items[start:end], Page{Number: number, TotalPages: total, TotalItems: len(items)}
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

// NormalizeTags lowercases and trims tags, dropping empty and duplicate
// entries while keeping first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = normalizeTag(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// SplitTags parses a comma-separated tag field.
func SplitTags(s string) []string {
	return NormalizeTags(strings.Split(s, ","))
}

func (p BlogPost) PublicationStatus() Status { return p.Status }
func (p BlogPost) PublishedTime() *time.Time { return p.PublishedAt }
func (p BlogPost) StatusName() string { return string(p.Status) }
func (p BlogPost) HasCategory(c string) bool { return slices.Contains(p.Tags, normalizeTag(c)) }
func (p BlogPost) SearchText() string {
	return strings.ToLower(p.Title + "\n" + p.ExcerptText())
}

func (w LiteraryWork) PublicationStatus() Status { return w.Status }
func (w LiteraryWork) PublishedTime() *time.Time { return w.PublishedAt }
func (w LiteraryWork) StatusName() string { return string(w.Status) }
func (w LiteraryWork) HasCategory(c string) bool { return string(w.Type) == c }
func (w LiteraryWork) SearchText() string {
	return strings.ToLower(w.Title + "\n" + w.DescriptionText())
}

func (m ContactMessage) StatusName() string { return string(m.Status) }

// HasCategory treats the message status as its category.
func (m ContactMessage) HasCategory(c string) bool { return string(m.Status) == c }
func (m ContactMessage) SearchText() string {
	return strings.ToLower(strings.Join([]string{m.Name, m.Email, m.SubjectText(), m.Message}, "\n"))
}
