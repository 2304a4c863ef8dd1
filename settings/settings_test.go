package settings

import (
	"context"
	"errors"
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio/content"
)

type memKV struct {
	values map[string]string
	fail   error
}

func (m *memKV) All(context.Context) (map[string]string, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	return maps.Clone(m.values), nil
}

func (m *memKV) SetMany(_ context.Context, values map[string]string) error {
	if m.fail != nil {
		return m.fail
	}
	if m.values == nil {
		m.values = map[string]string{}
	}
	maps.Copy(m.values, values)
	return nil
}

func (m *memKV) Clear(context.Context) error {
	m.values = nil
	return nil
}

func TestDefaultsAreValid(t *testing.T) {
	require.NoError(t, Defaults().Validate())
}

func TestDecodeMergesOverDefaults(t *testing.T) {
	s, problems := Decode(map[string]string{
		"site_title":      "My Folio",
		"posts_per_page":  "12",
		"enable_sitemap":  "false",
		"enable_comments": "true",
	})
	assert.Empty(t, problems)
	assert.Equal(t, "My Folio", s.SiteTitle)
	assert.Equal(t, 12, s.PostsPerPage)
	assert.False(t, s.EnableSitemap)
	assert.Equal(t, Defaults().WorksPerPage, s.WorksPerPage)
}

func TestDecodeInvalidFallsBackToDefault(t *testing.T) {
	s, problems := Decode(map[string]string{
		"posts_per_page": "seven",
		"works_per_page": "13",
		"email":          "nope",
		"instagram":      "ftp://example.com",
	})
	def := Defaults()
	assert.Equal(t, def.PostsPerPage, s.PostsPerPage)
	assert.Equal(t, def.WorksPerPage, s.WorksPerPage)
	assert.Equal(t, def.Email, s.Email)
	assert.Equal(t, def.Instagram, s.Instagram)
	assert.Len(t, problems, 4)
}

func TestEncodeDecodeKeepsValues(t *testing.T) {
	in := Defaults()
	in.Email = "writer@example.com"
	in.LinkedIn = "https://linkedin.com/in/writer"
	in.SessionTimeoutMinutes = 120

	enc := in.Encode()
	assert.Equal(t, "1", enc["schema_version"])
	out, problems := Decode(enc)
	assert.Empty(t, problems)
	assert.Equal(t, in, out)
}

func TestFromForm(t *testing.T) {
	base := Defaults()

	s, err := FromForm(base, map[string]string{"display_name": "  Ada  ", "works_per_page": "16"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", s.DisplayName)
	assert.Equal(t, 16, s.WorksPerPage)

	_, err = FromForm(base, map[string]string{"site_title": " "})
	var ve *content.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "site_title", ve.Field)
}

func TestServiceSaveLoadReset(t *testing.T) {
	kv := &memKV{}
	svc := NewService(kv)
	ctx := context.Background()

	assert.Equal(t, Defaults(), svc.Current(ctx))

	next := Defaults()
	next.SiteTitle = "Saved"
	require.NoError(t, svc.Save(ctx, next))
	assert.Equal(t, "Saved", kv.values["site_title"])

	fresh := NewService(kv)
	loaded, err := fresh.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Saved", loaded.SiteTitle)

	bad := next
	bad.PostsPerPage = 7
	assert.True(t, content.IsValidation(svc.Save(ctx, bad)))
	assert.Equal(t, "Saved", svc.Current(ctx).SiteTitle)

	def, err := svc.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), def)
	assert.Empty(t, kv.values)
	assert.Equal(t, Defaults(), svc.Current(ctx))
}

func TestServiceCurrentOnLoadFailure(t *testing.T) {
	svc := NewService(&memKV{fail: errors.New("disk gone")})
	assert.Equal(t, Defaults(), svc.Current(context.Background()))
}

func TestSocials(t *testing.T) {
	s := Defaults()
	assert.Empty(t, s.Socials())
	s.Facebook = "https://facebook.com/writer"
	assert.Equal(t, []Social{{Name: "Facebook", URL: "https://facebook.com/writer"}}, s.Socials())
}
