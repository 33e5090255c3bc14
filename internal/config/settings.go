package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	ioutils "github.com/ZimbiX/gig-list-en/internal/io"
	"github.com/titanous/json5"
)

// Output formats accepted by Settings.Format.
const (
	FormatTree  = "tree"
	FormatTable = "table"
	FormatJSON  = "json"
)

// SelectorOverride replaces the CSS selector or match index used for one
// event detail field.
type SelectorOverride struct {
	Selector string `json:"selector,omitempty"`
	Index    *int   `json:"index,omitempty"`
}

// Settings holds all configuration options.
type Settings struct {
	// Crawl target
	ProfileID int64 `json:"profile_id"`

	// Hosts
	GraphBaseURL string `json:"graph_base_url"`
	GraphVersion string `json:"graph_version"`
	PagesBaseURL string `json:"pages_base_url"`

	// HTTP
	RequestTimeoutSeconds float64 `json:"request_timeout_seconds"`
	UserAgent             string  `json:"user_agent"`

	// Paging
	MaxPages int `json:"max_pages"` // 0 = no cap

	// Cache
	CacheDir string `json:"cache_dir"`

	// Run scope
	Limit int `json:"limit"` // bands; 0 = all

	// Output
	Format string `json:"format"` // tree, table, json

	// Selector overrides keyed by field: title, date, venue, address, status
	Selectors map[string]SelectorOverride `json:"selectors,omitempty"`
}

// DefaultMaxPages caps each paginated listing unless configured otherwise.
const DefaultMaxPages = 50

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		GraphBaseURL: "https://graph.facebook.com",
		GraphVersion: "v4.0",
		PagesBaseURL: "https://m.facebook.com",

		RequestTimeoutSeconds: 30,
		MaxPages:              DefaultMaxPages,

		CacheDir: "cache",

		Format: FormatTree,
	}
}

// RequestTimeout returns the per-request timeout.
func (s *Settings) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSeconds * float64(time.Second))
}

// Validate checks that the settings can drive a run.
func (s *Settings) Validate() error {
	var errs []error
	if s.ProfileID <= 0 {
		errs = append(errs, errors.New("profile_id must be set to a positive page id"))
	}
	if s.GraphBaseURL == "" {
		errs = append(errs, errors.New("graph_base_url is required"))
	}
	if s.PagesBaseURL == "" {
		errs = append(errs, errors.New("pages_base_url is required"))
	}
	if s.CacheDir == "" {
		errs = append(errs, errors.New("cache_dir is required"))
	}
	if s.RequestTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("request_timeout_seconds must be positive"))
	}
	if s.MaxPages < 0 {
		errs = append(errs, errors.New("max_pages cannot be negative"))
	}
	if s.Limit < 0 {
		errs = append(errs, errors.New("limit cannot be negative"))
	}
	switch s.Format {
	case FormatTree, FormatTable, FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("format %q must be one of tree, table, json", s.Format))
	}
	return errors.Join(errs...)
}

// LocalPath returns the override file read alongside path:
// "gig-list.json5" -> "gig-list.local.json5".
func LocalPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".local" + ext
}

// Load reads settings from a json5 file and merges its local override.
//
// Missing files are not an error; defaults fill anything not set. Values in
// the local file replace those in the main file, except that zero values
// (false, 0, "") cannot unset a value.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	if err := readInto(path, settings); err != nil {
		return nil, err
	}

	var local Settings
	localPath := LocalPath(path)
	if err := readInto(localPath, &local); err != nil {
		return nil, err
	}
	if err := mergo.Merge(settings, local, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("merge %s: %w", localPath, err)
	}

	return settings, nil
}

func readInto(path string, out *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := json5.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Save writes settings to a file. JSON output is valid json5.
func (s *Settings) Save(path string) error {
	if err := ioutils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return ioutils.WriteFileAtomic(path, data)
}
