// Package paginate provides the cursor pagination loop shared by every
// paginated source.
//
// A source supplies one PageFunc for the first page and one for
// continuations (they may be the same function). The loop does not look
// inside cursors: a non-empty cursor means "there is another page".
//
//	bands, err := paginate.All(ctx, graphPage, paginate.Options{})
//	events, err := paginate.Collect(ctx, rootPage, morePage, paginate.Options{MaxPages: 100})
//
// Fetching is sequential; page N+1 is requested only after page N returned.
package paginate
