// Package facebook provides the page sources the pipeline crawls.
//
// Two hosts are involved:
//
//   - The Graph API (GraphClient) lists the pages a profile has liked. It
//     is a JSON listing paginated by an "after" cursor.
//   - The mobile site (PageClient) lists a page's upcoming events and
//     serves event pages. The listing is scraped: event links and the
//     serialized_cursor continuation token are found by pattern matching.
//
// Both listings are driven by the paginate package. Neither client owns
// its transport; callers pass a Fetcher and close it themselves.
//
// # Example
//
//	graph := facebook.NewGraphClient(apiClient, creds.Token, facebook.GraphOptions{})
//	pages := facebook.NewPageClient(htmlClient, facebook.PageOptions{})
//
//	bands, err := graph.LikedPages(ctx, profileID)
//	for _, band := range bands {
//	    refs, err := pages.EventIDs(ctx, band.ID)
//	    ...
//	}
package facebook
