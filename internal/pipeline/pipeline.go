package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ZimbiX/gig-list-en/internal/cache"
	"github.com/ZimbiX/gig-list-en/internal/config"
	"github.com/ZimbiX/gig-list-en/internal/extract"
	"github.com/ZimbiX/gig-list-en/internal/facebook"
	gighttp "github.com/ZimbiX/gig-list-en/internal/http"
	"github.com/ZimbiX/gig-list-en/internal/logging"
	"github.com/ZimbiX/gig-list-en/internal/model"
	"github.com/rs/zerolog"
)

// BandSource lists the bands of a profile.
type BandSource interface {
	LikedPages(ctx context.Context, profileID int64) ([]model.Band, error)
}

// EventSource lists a band's events and serves event pages.
type EventSource interface {
	EventIDs(ctx context.Context, pageID int64) ([]model.EventRef, error)
	EventPage(ctx context.Context, eventID int64) (string, error)
}

// Deps are the collaborators of a Pipeline.
type Deps struct {
	ProfileID int64
	Bands     BandSource
	Events    EventSource
	Chain     *extract.Chain
	Store     *cache.Store

	// Limit caps the number of bands crawled; 0 means all.
	Limit int

	Logger     zerolog.Logger
	OnProgress func(ProgressEvent)
}

// Pipeline crawls a profile's bands and their events into a Report.
//
// Every unit of work goes through the cache, so a run interrupted by an
// error or a cancelled context resumes where it stopped.
type Pipeline struct {
	profileID int64
	bands     BandSource
	events    EventSource
	chain     *extract.Chain
	store     *cache.Store
	limit     int

	logger     zerolog.Logger
	onProgress func(ProgressEvent)

	closers   []func()
	closeOnce sync.Once
}

// New creates a Pipeline from explicit dependencies. It owns nothing;
// Close is a no-op.
func New(d Deps) *Pipeline {
	chain := d.Chain
	if chain == nil {
		chain = extract.NewDefaultChain(extract.DefaultRules())
	}
	return &Pipeline{
		profileID:  d.ProfileID,
		bands:      d.Bands,
		events:     d.Events,
		chain:      chain,
		store:      d.Store,
		limit:      d.Limit,
		logger:     d.Logger,
		onProgress: d.OnProgress,
	}
}

// Open creates a Pipeline talking to the configured hosts.
//
// It opens the cache directory and one HTTP client per host. Component
// loggers derive from the global logger configured by logging.Setup. The
// caller must call Close when the run is over, whatever its outcome.
//
// Example:
//
//	p, err := pipeline.Open(settings, creds, func(e pipeline.ProgressEvent) {
//	    fmt.Fprintln(os.Stderr, e.Message)
//	})
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	report, err := p.Run(ctx, config.Refresh{})
func Open(settings *config.Settings, creds config.Credentials, onProgress func(ProgressEvent)) (*Pipeline, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	rules, err := extract.ApplyOverrides(extract.DefaultRules(), selectorOverrides(settings.Selectors))
	if err != nil {
		return nil, err
	}

	store, err := cache.Open(settings.CacheDir, logging.NewLogger("cache"))
	if err != nil {
		return nil, err
	}

	httpLogger := logging.NewLogger("http")
	apiClient, err := gighttp.NewClient(gighttp.Options{
		BaseURL:   settings.GraphBaseURL,
		Timeout:   settings.RequestTimeout(),
		UserAgent: settings.UserAgent,
		Logger:    httpLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("graph client: %w", err)
	}
	htmlClient, err := gighttp.NewClient(gighttp.Options{
		BaseURL:   settings.PagesBaseURL,
		Timeout:   settings.RequestTimeout(),
		UserAgent: settings.UserAgent,
		Cookie:    creds.Cookie,
		Logger:    httpLogger,
	})
	if err != nil {
		apiClient.Close()
		return nil, fmt.Errorf("pages client: %w", err)
	}

	sourceLogger := logging.NewLogger("facebook")
	p := New(Deps{
		ProfileID: settings.ProfileID,
		Bands: facebook.NewGraphClient(apiClient, creds.Token, facebook.GraphOptions{
			Version:  settings.GraphVersion,
			MaxPages: settings.MaxPages,
			Logger:   sourceLogger,
		}),
		Events: facebook.NewPageClient(htmlClient, facebook.PageOptions{
			MaxPages: settings.MaxPages,
			Logger:   sourceLogger,
		}),
		Chain:      extract.NewDefaultChain(rules),
		Store:      store,
		Limit:      settings.Limit,
		Logger:     logging.NewLogger("pipeline"),
		OnProgress: onProgress,
	})
	p.closers = []func(){apiClient.Close, htmlClient.Close}
	p.logger.Debug().
		Str("graph_host", apiClient.Host()).
		Str("pages_host", htmlClient.Host()).
		Str("cache_dir", store.Dir()).
		Msg("Pipeline opened")
	return p, nil
}

// Close releases the HTTP clients opened by Open. Safe to call more than once.
func (p *Pipeline) Close() {
	p.closeOnce.Do(func() {
		for _, c := range p.closers {
			c()
		}
	})
}

// Run crawls bands, their event listings and event details, in that
// order, and folds the results into a Report.
//
// Bands keep API order and events keep listing order. The first failing
// unit stops the run with a *StageError.
func (p *Pipeline) Run(ctx context.Context, refresh config.Refresh) (*model.Report, error) {
	bands, err := p.fetchBands(ctx, refresh)
	if err != nil {
		return nil, err
	}

	listings, err := p.fetchEventIDs(ctx, bands, refresh)
	if err != nil {
		return nil, err
	}

	report, err := p.fetchDetails(ctx, bands, listings, refresh)
	if err != nil {
		return nil, err
	}

	p.progress(ProgressEvent{
		Message: fmt.Sprintf("Done: %d bands, %d events, %d with details",
			len(report.Bands), report.EventCount(), report.DetailedCount()),
		Level: LevelSuccess,
	})
	return report, nil
}

func (p *Pipeline) fetchBands(ctx context.Context, refresh config.Refresh) ([]model.Band, error) {
	key := BandsKey(p.profileID)
	p.logger.Info().Str("stage", string(StageBands)).Int64("profile", p.profileID).Msg("Stage started")

	bands, err := cache.Cached(p.store, key, refresh.Bands, func() ([]model.Band, error) {
		return p.bands.LikedPages(ctx, p.profileID)
	})
	if err != nil {
		return nil, &StageError{Stage: StageBands, Key: key, Err: err}
	}

	if p.limit > 0 && len(bands) > p.limit {
		p.progress(ProgressEvent{
			Stage:   StageBands,
			Message: fmt.Sprintf("Limiting run to the first %d of %d bands", p.limit, len(bands)),
			Level:   LevelWarning,
		})
		bands = bands[:p.limit]
	}

	p.progress(ProgressEvent{
		Stage:   StageBands,
		Done:    1,
		Total:   1,
		Key:     key,
		Message: fmt.Sprintf("Found %d bands", len(bands)),
		Level:   LevelInfo,
	})
	return bands, nil
}

func (p *Pipeline) fetchEventIDs(ctx context.Context, bands []model.Band, refresh config.Refresh) ([][]model.EventRef, error) {
	p.logger.Info().Str("stage", string(StageEventIDs)).Int("bands", len(bands)).Msg("Stage started")

	listings := make([][]model.EventRef, len(bands))
	for i, band := range bands {
		key := EventIDsKey(band.ID)
		if err := ctx.Err(); err != nil {
			return nil, &StageError{Stage: StageEventIDs, Key: key, Err: err}
		}

		refs, err := cache.Cached(p.store, key, refresh.EventIDs, func() ([]model.EventRef, error) {
			return p.events.EventIDs(ctx, band.ID)
		})
		if err != nil {
			return nil, &StageError{Stage: StageEventIDs, Key: key, Err: err}
		}
		listings[i] = refs

		p.progress(ProgressEvent{
			Stage:   StageEventIDs,
			Done:    i + 1,
			Total:   len(bands),
			Key:     key,
			Message: fmt.Sprintf("%s: %d events", band.Name, len(refs)),
			Level:   LevelVerbose,
		})
	}
	return listings, nil
}

func (p *Pipeline) fetchDetails(ctx context.Context, bands []model.Band, listings [][]model.EventRef, refresh config.Refresh) (*model.Report, error) {
	total := 0
	for _, refs := range listings {
		total += len(refs)
	}
	p.logger.Info().Str("stage", string(StageEventDetails)).Int("events", total).Msg("Stage started")

	report := &model.Report{Bands: make([]model.BandEvents, 0, len(bands))}
	done := 0
	for i, band := range bands {
		be := model.BandEvents{Band: band, Events: make([]model.Event, 0, len(listings[i]))}

		for _, ref := range listings[i] {
			key := EventDetailsKey(ref.ID)
			if err := ctx.Err(); err != nil {
				return nil, &StageError{Stage: StageEventDetails, Key: key, Err: err}
			}

			detail, err := p.eventDetail(ctx, ref.ID, refresh)
			if err != nil {
				var se *StageError
				if errors.As(err, &se) {
					return nil, se
				}
				return nil, &StageError{Stage: StageEventDetails, Key: key, Err: err}
			}
			be.Events = append(be.Events, model.Event{ID: ref.ID, Details: detail})

			done++
			ev := ProgressEvent{
				Stage: StageEventDetails,
				Done:  done,
				Total: total,
				Key:   key,
				Level: LevelVerbose,
			}
			if detail == nil {
				ev.Message = fmt.Sprintf("%s: no details found for event %d", band.Name, ref.ID)
				ev.Level = LevelWarning
			} else {
				ev.Message = fmt.Sprintf("%s: %s", band.Name, model.Value(detail.Title, fmt.Sprint(ref.ID)))
			}
			p.progress(ev)
		}

		report.Bands = append(report.Bands, be)
	}
	return report, nil
}

// eventDetail extracts the detail of one event. The page HTML is cached on
// its own so extraction can be redone without refetching. A refetched page
// is always re-extracted.
func (p *Pipeline) eventDetail(ctx context.Context, eventID int64, refresh config.Refresh) (*model.EventDetail, error) {
	recompute := refresh.EventDetails || refresh.EventHTML
	return cache.Cached(p.store, EventDetailsKey(eventID), recompute, func() (*model.EventDetail, error) {
		htmlKey := EventHTMLKey(eventID)
		html, err := cache.Cached(p.store, htmlKey, refresh.EventHTML, func() (string, error) {
			return p.events.EventPage(ctx, eventID)
		})
		if err != nil {
			return nil, &StageError{Stage: StageEventHTML, Key: htmlKey, Err: err}
		}

		detail, strategy, err := p.chain.Extract(html)
		if err != nil {
			return nil, err
		}
		p.logger.Debug().Int64("event", eventID).Str("strategy", strategy).Bool("found", detail != nil).Msg("Extracted event")
		return detail, nil
	})
}

func (p *Pipeline) progress(event ProgressEvent) {
	if p.onProgress != nil {
		p.onProgress(event)
	}
}

func selectorOverrides(in map[string]config.SelectorOverride) map[extract.Field]extract.Override {
	if len(in) == 0 {
		return nil
	}
	out := make(map[extract.Field]extract.Override, len(in))
	for field, o := range in {
		out[extract.Field(field)] = extract.Override{Selector: o.Selector, Index: o.Index}
	}
	return out
}

