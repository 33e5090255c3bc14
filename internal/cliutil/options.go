package cliutil

import (
	"fmt"

	"github.com/ZimbiX/gig-list-en/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// DefaultConfigPath is read when --config is not given.
const DefaultConfigPath = "gig-list.json5"

// Options are the flags shared by the gig-list binaries.
type Options struct {
	ConfigPath  string
	ProfileID   int64
	CacheDir    string
	Format      string
	MaxPages    int
	Limit       int
	Verbose     bool
	MetricsFile string

	RefreshBands        bool
	RefreshEventIDs     bool
	RefreshEventDetails bool
	RefreshEventHTML    bool
	RefreshAll          bool

	cmd *cobra.Command
}

// Bind registers the shared flags on cmd.
//
// Flags may appear anywhere in the argument list. Settings-backed flags
// only override the config file when given explicitly.
func Bind(cmd *cobra.Command) *Options {
	o := &Options{cmd: cmd}
	f := cmd.Flags()

	f.StringVar(&o.ConfigPath, "config", DefaultConfigPath, "path to the json5 config file (a .local override is merged)")
	f.Int64Var(&o.ProfileID, "profile", 0, "profile id whose liked pages are crawled")
	f.StringVar(&o.CacheDir, "cache-dir", "", "cache directory")
	f.StringVar(&o.Format, "format", "", "report format: tree, table or json")
	f.IntVar(&o.MaxPages, "max-pages", 0, "maximum pages per listing, 0 for no limit")
	f.IntVar(&o.Limit, "limit", 0, "only crawl the first N bands, 0 for all")
	f.BoolVarP(&o.Verbose, "verbose", "v", false, "show verbose progress and debug logs")
	f.StringVar(&o.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file when the run ends")

	f.BoolVar(&o.RefreshBands, "refresh-bands", false, "recompute the liked pages list")
	f.BoolVar(&o.RefreshEventIDs, "refresh-event-ids", false, "recompute every band's event listing")
	f.BoolVar(&o.RefreshEventDetails, "refresh-event-details", false, "re-extract event details")
	f.BoolVar(&o.RefreshEventHTML, "refresh-event-html", false, "refetch event pages and re-extract their details")
	f.BoolVar(&o.RefreshAll, "refresh-all", false, "recompute every stage")

	return o
}

// Settings loads the config file and applies explicitly set flags on top.
func (o *Options) Settings() (*config.Settings, error) {
	settings, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	f := o.cmd.Flags()
	if f.Changed("profile") {
		settings.ProfileID = o.ProfileID
	}
	if f.Changed("cache-dir") {
		settings.CacheDir = o.CacheDir
	}
	if f.Changed("format") {
		settings.Format = o.Format
	}
	if f.Changed("max-pages") {
		settings.MaxPages = o.MaxPages
	}
	if f.Changed("limit") {
		settings.Limit = o.Limit
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

// Refresh returns the stages to recompute.
func (o *Options) Refresh() config.Refresh {
	if o.RefreshAll {
		return config.RefreshAll()
	}
	return config.Refresh{
		Bands:        o.RefreshBands,
		EventIDs:     o.RefreshEventIDs,
		EventDetails: o.RefreshEventDetails,
		EventHTML:    o.RefreshEventHTML,
	}
}

// WriteMetrics writes the default registry to MetricsFile, if set.
func (o *Options) WriteMetrics() error {
	if o.MetricsFile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(o.MetricsFile, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
