// Package settings holds the site-wide settings edited in the admin area.
//
// Settings are persisted as string key/value pairs. Loading merges stored
// values over Defaults: unknown keys are ignored and a stored value that no
// longer parses or validates falls back to its default with a warning.
package settings

import (
	"net/mail"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/eringen/folio/content"
)

// SchemaVersion is written alongside saved settings. Bump it when a key is
// renamed or its encoding changes.
const SchemaVersion = 1

const versionKey = "schema_version"

// Choices offered by the admin form.
var (
	SessionTimeouts     = []int{15, 30, 60, 120, 480}
	PostsPerPageOptions = []int{6, 9, 12, 15}
	WorksPerPageOptions = []int{8, 12, 16, 20}
)

// Settings is the full set of site settings.
type Settings struct {
	// Personal
	DisplayName    string
	Email          string
	SecondaryEmail string
	Bio            string

	// Site
	SiteTitle       string
	SiteDescription string

	// Social profile URLs
	Instagram string
	Facebook  string
	LinkedIn  string

	SessionTimeoutMinutes int
	PostsPerPage          int
	WorksPerPage          int
	EnableSitemap         bool
}

// Defaults returns the settings used when nothing has been saved.
func Defaults() Settings {
	return Settings{
		DisplayName:           "Writer",
		SiteTitle:             "Writer & Literary Critic",
		SiteDescription:       "Literary works, essays and notes on writing.",
		SessionTimeoutMinutes: 30,
		PostsPerPage:          9,
		WorksPerPage:          12,
		EnableSitemap:         true,
	}
}

// field binds a stored key to a Settings member.
type field struct {
	key string
	get func(*Settings) string
	set func(*Settings, string) error
}

func text(key string, p func(*Settings) *string, check func(string) error) field {
	return field{
		key: key,
		get: func(s *Settings) string { return *p(s) },
		set: func(s *Settings, v string) error {
			v = strings.TrimSpace(v)
			if check != nil {
				if err := check(v); err != nil {
					return err
				}
			}
			*p(s) = v
			return nil
		},
	}
}

func choice(key string, p func(*Settings) *int, options []int) field {
	return field{
		key: key,
		get: func(s *Settings) string { return strconv.Itoa(*p(s)) },
		set: func(s *Settings, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return invalid(key, "must be a number")
			}
			if !slices.Contains(options, n) {
				return invalid(key, "must be one of "+joinInts(options))
			}
			*p(s) = n
			return nil
		},
	}
}

func flag(key string, p func(*Settings) *bool) field {
	return field{
		key: key,
		get: func(s *Settings) string { return strconv.FormatBool(*p(s)) },
		set: func(s *Settings, v string) error {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return invalid(key, "must be true or false")
			}
			*p(s) = b
			return nil
		},
	}
}

var fields = []field{
	text("display_name", func(s *Settings) *string { return &s.DisplayName }, required("display_name")),
	text("email", func(s *Settings) *string { return &s.Email }, optionalEmail("email")),
	text("secondary_email", func(s *Settings) *string { return &s.SecondaryEmail }, optionalEmail("secondary_email")),
	text("bio", func(s *Settings) *string { return &s.Bio }, nil),
	text("site_title", func(s *Settings) *string { return &s.SiteTitle }, required("site_title")),
	text("site_description", func(s *Settings) *string { return &s.SiteDescription }, nil),
	text("instagram", func(s *Settings) *string { return &s.Instagram }, optionalURL("instagram")),
	text("facebook", func(s *Settings) *string { return &s.Facebook }, optionalURL("facebook")),
	text("linkedin", func(s *Settings) *string { return &s.LinkedIn }, optionalURL("linkedin")),
	choice("session_timeout_minutes", func(s *Settings) *int { return &s.SessionTimeoutMinutes }, SessionTimeouts),
	choice("posts_per_page", func(s *Settings) *int { return &s.PostsPerPage }, PostsPerPageOptions),
	choice("works_per_page", func(s *Settings) *int { return &s.WorksPerPage }, WorksPerPageOptions),
	flag("enable_sitemap", func(s *Settings) *bool { return &s.EnableSitemap }),
}

// Keys lists every recognized settings key.
func Keys() []string {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.key
	}
	return keys
}

// Encode returns s as stored key/value pairs, including the schema version.
func (s Settings) Encode() map[string]string {
	out := make(map[string]string, len(fields)+1)
	for _, f := range fields {
		out[f.key] = f.get(&s)
	}
	out[versionKey] = strconv.Itoa(SchemaVersion)
	return out
}

// Problem describes a stored value that was replaced by its default.
type Problem struct {
	Key   string
	Value string
	Err   error
}

// Decode merges stored values over Defaults. Unknown keys are ignored;
// invalid values keep the default and are reported as problems.
func Decode(values map[string]string) (Settings, []Problem) {
	s := Defaults()
	var problems []Problem
	for _, f := range fields {
		v, ok := values[f.key]
		if !ok {
			continue
		}
		if err := f.set(&s, v); err != nil {
			problems = append(problems, Problem{Key: f.key, Value: v, Err: err})
		}
	}
	return s, problems
}

// FromForm builds Settings from submitted form values, starting from base
// for keys that are absent. The first invalid value is returned as a
// *content.ValidationError.
func FromForm(base Settings, values map[string]string) (Settings, error) {
	s := base
	for _, f := range fields {
		v, ok := values[f.key]
		if !ok {
			continue
		}
		if err := f.set(&s, v); err != nil {
			return base, err
		}
	}
	return s, nil
}

// Validate checks every field of s.
func (s Settings) Validate() error {
	var scratch Settings
	for _, f := range fields {
		if err := f.set(&scratch, f.get(&s)); err != nil {
			return err
		}
	}
	return nil
}

// Socials returns the configured social profile links in display order.
func (s Settings) Socials() []Social {
	var out []Social
	for _, sc := range []Social{{"Instagram", s.Instagram}, {"Facebook", s.Facebook}, {"LinkedIn", s.LinkedIn}} {
		if sc.URL != "" {
			out = append(out, sc)
		}
	}
	return out
}

// Social is a named profile link.
type Social struct {
	Name string
	URL  string
}

func invalid(key, msg string) error {
	return &content.ValidationError{Field: key, Message: msg}
}

func required(key string) func(string) error {
	return func(v string) error {
		if v == "" {
			return invalid(key, "is required")
		}
		return nil
	}
}

func optionalEmail(key string) func(string) error {
	return func(v string) error {
		if v == "" {
			return nil
		}
		addr, err := mail.ParseAddress(v)
		if err != nil || addr.Address != v {
			return invalid(key, "must be a valid email address")
		}
		return nil
	}
}

func optionalURL(key string) func(string) error {
	return func(v string) error {
		if v == "" {
			return nil
		}
		u, err := url.Parse(v)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return invalid(key, "must be an http(s) URL")
		}
		return nil
	}
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
