package facebook

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ZimbiX/gig-list-en/internal/facebook/dto"
	"github.com/ZimbiX/gig-list-en/internal/model"
	"github.com/ZimbiX/gig-list-en/internal/paginate"
	"github.com/rs/zerolog"
)

// DefaultGraphVersion is the Graph API version used when none is configured.
const DefaultGraphVersion = "v4.0"

// graphPageSize is the largest page the music edge accepts.
const graphPageSize = 100

// GraphClient lists the pages a profile has liked through the Graph API.
//
// Example usage:
//
//	graph := NewGraphClient(apiClient, token, GraphOptions{})
//	bands, err := graph.LikedPages(ctx, 1597675905)
type GraphClient struct {
	fetcher  Fetcher
	token    string
	version  string
	maxPages int
	logger   zerolog.Logger
}

// GraphOptions tunes a GraphClient. The zero value is usable.
type GraphOptions struct {
	// Version is the API version path segment, e.g. "v4.0".
	Version string

	// MaxPages caps the number of pages fetched; 0 means no cap.
	MaxPages int

	Logger zerolog.Logger
}

// NewGraphClient creates a GraphClient that authenticates with token.
func NewGraphClient(fetcher Fetcher, token string, opts GraphOptions) *GraphClient {
	version := opts.Version
	if version == "" {
		version = DefaultGraphVersion
	}
	return &GraphClient{
		fetcher:  fetcher,
		token:    token,
		version:  version,
		maxPages: opts.MaxPages,
		logger:   opts.Logger,
	}
}

// LikedPages returns every page liked by the profile, in API order.
//
// Pages are followed while the response has a truthy paging.next and a
// non-empty after cursor.
func (g *GraphClient) LikedPages(ctx context.Context, profileID int64) ([]model.Band, error) {
	path := fmt.Sprintf("/%s/%d/music", g.version, profileID)

	fetch := func(ctx context.Context, cursor string) ([]model.Band, string, error) {
		query := map[string]string{
			"access_token": g.token,
			"fields":       "name",
			"limit":        strconv.Itoa(graphPageSize),
		}
		if cursor != "" {
			query["after"] = cursor
		}

		body, err := g.fetcher.Get(ctx, path, query, nil)
		if err != nil {
			return nil, "", err
		}
		return parseMusicPage(body)
	}

	bands, err := paginate.All(ctx, fetch, paginate.Options{
		MaxPages: g.maxPages,
		Logger:   g.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("liked pages of %d: %w", profileID, err)
	}
	return bands, nil
}

func parseMusicPage(body []byte) ([]model.Band, string, error) {
	var page dto.MusicPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrMalformedPage, err)
	}
	if page.Data == nil {
		return nil, "", fmt.Errorf("%w: missing data", ErrMalformedPage)
	}
	if page.Paging == nil {
		return nil, "", fmt.Errorf("%w: missing paging", ErrMalformedPage)
	}

	bands := make([]model.Band, 0, len(*page.Data))
	for _, entry := range *page.Data {
		band, err := model.NewBand(entry.ID, entry.Name)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrMalformedPage, err)
		}
		bands = append(bands, band)
	}

	if !page.Paging.HasNext() {
		return bands, "", nil
	}
	if page.Paging.Cursors == nil {
		return nil, "", fmt.Errorf("%w: next page without cursors", ErrMalformedPage)
	}
	return bands, page.Paging.Cursors.After, nil
}
