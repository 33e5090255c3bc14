package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "https://graph.facebook.com", s.GraphBaseURL)
	assert.Equal(t, "v4.0", s.GraphVersion)
	assert.Equal(t, "https://m.facebook.com", s.PagesBaseURL)
	assert.Equal(t, 30*time.Second, s.RequestTimeout())
	assert.Equal(t, "cache", s.CacheDir)
	assert.Equal(t, FormatTree, s.Format)
	assert.Equal(t, DefaultMaxPages, s.MaxPages)

	// Without a profile id the defaults cannot drive a run.
	assert.Error(t, s.Validate())
	s.ProfileID = 1597675905
	assert.NoError(t, s.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "gig-list.json5"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoad_Json5WithLocalOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gig-list.json5")

	main := `{
  // crawl target
  "profile_id": 1597675905,
  "cache_dir": "/var/cache/gig-list",
  "max_pages": 20,
  "format": "table",
}`
	local := `{
  "max_pages": 5,
  "selectors": {"venue": {"index": 2}},
}`
	require.NoError(t, os.WriteFile(path, []byte(main), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gig-list.local.json5"), []byte(local), 0644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(1597675905), s.ProfileID)
	assert.Equal(t, "/var/cache/gig-list", s.CacheDir)
	assert.Equal(t, 5, s.MaxPages)
	assert.Equal(t, FormatTable, s.Format)
	assert.Equal(t, "https://m.facebook.com", s.PagesBaseURL)
	require.Contains(t, s.Selectors, "venue")
	require.NotNil(t, s.Selectors["venue"].Index)
	assert.Equal(t, 2, *s.Selectors["venue"].Index)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gig-list.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{"profile_id": `), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "gig-list.json5")
	s := DefaultSettings()
	s.ProfileID = 42
	s.Limit = 3

	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestLocalPath(t *testing.T) {
	assert.Equal(t, "gig-list.local.json5", LocalPath("gig-list.json5"))
	assert.Equal(t, filepath.Join("etc", "cfg.local.json"), LocalPath(filepath.Join("etc", "cfg.json")))
	assert.Equal(t, "noext.local", LocalPath("noext"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"no profile", func(s *Settings) { s.ProfileID = 0 }},
		{"bad format", func(s *Settings) { s.Format = "yaml" }},
		{"negative pages", func(s *Settings) { s.MaxPages = -1 }},
		{"negative limit", func(s *Settings) { s.Limit = -1 }},
		{"zero timeout", func(s *Settings) { s.RequestTimeoutSeconds = 0 }},
		{"no cache dir", func(s *Settings) { s.CacheDir = "" }},
		{"no graph host", func(s *Settings) { s.GraphBaseURL = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			s.ProfileID = 1
			tt.modify(s)
			assert.Error(t, s.Validate())
		})
	}
}

func TestCredentialsFromEnv(t *testing.T) {
	t.Setenv(EnvToken, "tok")
	t.Setenv(EnvCookie, " c_user=1 ")

	creds, err := CredentialsFromEnv()
	require.NoError(t, err)
	assert.Equal(t, Credentials{Token: "tok", Cookie: "c_user=1"}, creds)
}

func TestCredentialsFromEnv_Missing(t *testing.T) {
	t.Setenv(EnvToken, "")
	t.Setenv(EnvCookie, "  ")

	_, err := CredentialsFromEnv()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Contains(t, err.Error(), EnvToken)
	assert.Contains(t, err.Error(), EnvCookie)
}

func TestRefresh(t *testing.T) {
	assert.False(t, Refresh{}.Any())
	assert.True(t, Refresh{EventHTML: true}.Any())
	assert.Equal(t, Refresh{Bands: true, EventIDs: true, EventDetails: true, EventHTML: true}, RefreshAll())
}
