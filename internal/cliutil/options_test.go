package cliutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZimbiX/gig-list-en/internal/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) *Options {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	o := Bind(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return o
}

func TestRefresh(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want config.Refresh
	}{
		{"none", nil, config.Refresh{}},
		{"bands", []string{"--refresh-bands"}, config.Refresh{Bands: true}},
		{"mixed with other flags", []string{"--limit", "2", "--refresh-event-html", "--format=json", "--refresh-event-details"},
			config.Refresh{EventDetails: true, EventHTML: true}},
		{"all", []string{"--refresh-all", "--refresh-bands"}, config.RefreshAll()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parse(t, tt.args...).Refresh())
		})
	}
}

func TestSettings_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gig-list.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{"profile_id": 1, "limit": 5, "format": "table",}`), 0644))

	o := parse(t, "--config", path, "--profile", "99", "--cache-dir", "/tmp/gigs")
	s, err := o.Settings()
	require.NoError(t, err)

	assert.Equal(t, int64(99), s.ProfileID)
	assert.Equal(t, "/tmp/gigs", s.CacheDir)
	assert.Equal(t, 5, s.Limit)
	assert.Equal(t, config.FormatTable, s.Format)
}

func TestSettings_Invalid(t *testing.T) {
	o := parse(t, "--config", filepath.Join(t.TempDir(), "missing.json5"), "--format", "yaml", "--profile", "1")
	_, err := o.Settings()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format")
}

func TestWriteMetrics(t *testing.T) {
	assert.NoError(t, parse(t).WriteMetrics())

	path := filepath.Join(t.TempDir(), "gig-list.prom")
	require.NoError(t, parse(t, "--metrics-file", path).WriteMetrics())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "go_goroutines"))
}
