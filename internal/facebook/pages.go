package facebook

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/ZimbiX/gig-list-en/internal/model"
	"github.com/ZimbiX/gig-list-en/internal/paginate"
	"github.com/rs/zerolog"
)

const (
	moreEventsPath = "/pages/events/more/"
	moreQueryType  = "upcoming_exclude_recurring"
	moreSeeMoreID  = "u_0_2j"
)

var (
	// eventLinkPattern matches event links in the listing HTML.
	eventLinkPattern = regexp.MustCompile(`/events/([0-9]+)`)

	// moreEventLinkPattern matches event links in the JSONStream
	// continuation, where markup is embedded in JS strings with escaped
	// quotes and slashes. The unescaped form is accepted too.
	moreEventLinkPattern = regexp.MustCompile(`(?:href=\\"\\/events\\/|/events/)([0-9]+)`)

	cursorPattern = regexp.MustCompile(`serialized_cursor=([A-Za-z0-9_-]+)`)
)

// PageClient scrapes the mobile site for a page's events.
//
// Example usage:
//
//	pages := NewPageClient(htmlClient, PageOptions{})
//	refs, err := pages.EventIDs(ctx, 19814903445)
//	html, err := pages.EventPage(ctx, refs[0].ID)
type PageClient struct {
	fetcher  Fetcher
	maxPages int
	logger   zerolog.Logger
}

// PageOptions tunes a PageClient. The zero value is usable.
type PageOptions struct {
	// MaxPages caps the number of listing pages per band; 0 means no cap.
	MaxPages int

	Logger zerolog.Logger
}

// NewPageClient creates a PageClient.
func NewPageClient(fetcher Fetcher, opts PageOptions) *PageClient {
	return &PageClient{
		fetcher:  fetcher,
		maxPages: opts.MaxPages,
		logger:   opts.Logger,
	}
}

// EventIDs returns the upcoming events listed for a page.
//
// The first page is the HTML listing; later pages come from the "see more"
// endpoint until no serialized_cursor is found. IDs seen on more than one
// page are kept once, at their first position.
func (p *PageClient) EventIDs(ctx context.Context, pageID int64) ([]model.EventRef, error) {
	first := func(ctx context.Context, _ string) ([]string, string, error) {
		body, err := p.fetcher.Get(ctx, fmt.Sprintf("/%d/events/", pageID), nil, nil)
		if err != nil {
			return nil, "", err
		}
		return scanEventIDs(eventLinkPattern, body), scanCursor(body), nil
	}

	next := func(ctx context.Context, cursor string) ([]string, string, error) {
		query := map[string]string{
			"page_id":           strconv.FormatInt(pageID, 10),
			"query_type":        moreQueryType,
			"see_more_id":       moreSeeMoreID,
			"serialized_cursor": cursor,
		}
		headers := map[string]string{"X-Response-Format": "JSONStream"}

		body, err := p.fetcher.Get(ctx, moreEventsPath, query, headers)
		if err != nil {
			return nil, "", err
		}
		return scanEventIDs(moreEventLinkPattern, body), scanCursor(body), nil
	}

	ids, err := paginate.Collect(ctx, first, next, paginate.Options{
		MaxPages: p.maxPages,
		Logger:   p.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("events of page %d: %w", pageID, err)
	}

	refs := make([]model.EventRef, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, raw := range ids {
		id, err := model.ParseID(raw)
		if err != nil {
			return nil, fmt.Errorf("events of page %d: %w", pageID, err)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		refs = append(refs, model.EventRef{ID: id})
	}
	return refs, nil
}

// EventPage returns the HTML of an event page.
func (p *PageClient) EventPage(ctx context.Context, eventID int64) (string, error) {
	body, err := p.fetcher.Get(ctx, fmt.Sprintf("/events/%d", eventID), nil, nil)
	if err != nil {
		return "", fmt.Errorf("event page %d: %w", eventID, err)
	}
	return string(body), nil
}

func scanEventIDs(pattern *regexp.Regexp, body []byte) []string {
	matches := pattern.FindAllSubmatch(body, -1)
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, string(m[1]))
	}
	return ids
}

// scanCursor returns the first serialized_cursor in body, or "".
func scanCursor(body []byte) string {
	m := cursorPattern.FindSubmatch(body)
	if m == nil {
		return ""
	}
	return string(m[1])
}
