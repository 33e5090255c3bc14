// Package cache provides the on-disk memoisation used by every pipeline stage.
//
// Each cached unit of work is addressed by a deterministic, human readable
// task name such as "event-ids-for-band-19814903445". The value is stored as
// JSON in one file per name under the cache directory:
//
//	store, err := cache.Open("cache", logger)
//	ids, err := cache.Cached(store, cache.Key("event-ids-for-band", id), refresh, func() ([]model.EventRef, error) {
//	    return pages.EventIDs(ctx, id)
//	})
//
// # Invalidation
//
// There is no expiry. Passing refresh=true recomputes and overwrites an
// entry; deleting the file has the same effect on the next run. Corrupt
// files are recomputed rather than reported.
//
// # Metrics
//
// Hits, misses (by reason), writes and errors are exported as Prometheus
// counters (giglist_cache_*).
package cache
