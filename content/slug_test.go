package content

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"My First Post", "my-first-post"},
		{"Hello, World!", "hello-world"},
		{"  leading and trailing  ", "leading-and-trailing"},
		{"multiple   spaces", "multiple-spaces"},
		{"already-a-slug", "already-a-slug"},
		{"dash -- dash", "dash-dash"},
		{"Café au lait", "caf-au-lait"},
		{"2024 Review", "2024-review"},
		{"Hello\u00a0World", "hello-world"},
		{"Hello\vWorld", "hello-world"},
		{"Hello\u3000\u2003World", "hello-world"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestSlugifyIsIdempotent(t *testing.T) {
	for _, in := range []string{"My First Post", "a -- b", "Ünïcödé title", "x"} {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once))
	}
}

func TestIsValidSlug(t *testing.T) {
	assert.True(t, IsValidSlug("my-first-post"))
	assert.True(t, IsValidSlug("a1"))
	assert.False(t, IsValidSlug(""))
	assert.False(t, IsValidSlug("My-Post"))
	assert.False(t, IsValidSlug("a--b"))
	assert.False(t, IsValidSlug("-a"))
	assert.False(t, IsValidSlug("with space"))
}

func TestUniqueSlug(t *testing.T) {
	used := map[string]bool{"post": true, "post-2": true}
	got, err := uniqueSlug("post", func(s string) (bool, error) { return used[s], nil })
	require.NoError(t, err)
	assert.Equal(t, "post-3", got)

	got, err = uniqueSlug("fresh", func(s string) (bool, error) { return used[s], nil })
	require.NoError(t, err)
	assert.Equal(t, "fresh", got)
}

func TestUniqueSlugPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := uniqueSlug("post", func(string) (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)
}
