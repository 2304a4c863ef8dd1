package content

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	slugStrip      = regexp.MustCompile(`[^a-z0-9\s-]+`)
	slugWhitespace = regexp.MustCompile(`\s+`)
	slugHyphens    = regexp.MustCompile(`-{2,}`)
)

// Slugify converts a title to a URL-safe slug. Characters outside
// [a-z0-9], whitespace and hyphen are dropped after lowercasing, so
// accented letters disappear rather than being transliterated. Any Unicode
// space, NBSP included, separates words.
func Slugify(title string) string {
	s := strings.Map(spaceToASCII, strings.ToLower(title))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugWhitespace.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// IsValidSlug reports whether s is a non-empty slug in canonical form.
func IsValidSlug(s string) bool {
	return s != "" && Slugify(s) == s
}

// uniqueSlug returns base, or base with the first free "-N" suffix, using
// taken to test availability.
func uniqueSlug(base string, taken func(string) (bool, error)) (string, error) {
	candidate := base
	for counter := 2; ; counter++ {
		used, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !used {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(counter)
	}
}

func spaceToASCII(r rune) rune {
	if unicode.IsSpace(r) {
		return ' '
	}
	return r
}
