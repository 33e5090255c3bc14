package paginate

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ErrTooManyPages is returned when a listing still has a continuation cursor
// after Options.MaxPages pages were fetched.
var ErrTooManyPages = errors.New("page limit reached before end of listing")

// PageFunc fetches the page addressed by cursor and returns its items and
// the cursor of the following page. An empty next cursor ends the listing.
type PageFunc[T any] func(ctx context.Context, cursor string) (items []T, next string, err error)

// Options configures a pagination run.
type Options struct {
	// MaxPages caps the number of fetched pages. Zero means unbounded.
	MaxPages int

	// Logger receives a debug line per page. The zero value discards.
	Logger zerolog.Logger
}

// All fetches every page using the same function for the first page and for
// continuations.
func All[T any](ctx context.Context, fetch PageFunc[T], opts Options) ([]T, error) {
	return Collect(ctx, fetch, fetch, opts)
}

// Collect fetches the first page with first, then keeps calling next while
// a continuation cursor is returned.
//
// The first call receives the empty cursor. Items are returned in the order
// pages were fetched, and within a page in the order the source returned them.
// Any page error aborts the whole listing.
//
// Example:
//
//	ids, err := paginate.Collect(ctx, fetchRoot, fetchMore, paginate.Options{MaxPages: 50})
func Collect[T any](ctx context.Context, first, next PageFunc[T], opts Options) ([]T, error) {
	var all []T
	fetch := first
	cursor := ""

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if opts.MaxPages > 0 && page > opts.MaxPages {
			return nil, fmt.Errorf("%w (%d pages)", ErrTooManyPages, opts.MaxPages)
		}

		items, nextCursor, err := fetch(ctx, cursor)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		all = append(all, items...)

		opts.Logger.Debug().
			Int("page", page).
			Int("items", len(items)).
			Bool("has_next", nextCursor != "").
			Msg("Fetched page")

		if nextCursor == "" {
			return all, nil
		}
		cursor = nextCursor
		fetch = next
	}
}
