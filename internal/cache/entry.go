package cache

import (
	"encoding/json"
	"time"
)

// Entry is the on-disk form of a cached value.
//
// Entries are self-describing: the key is stored alongside the value so a
// file can be inspected by hand, and so two keys that sanitise to the same
// filename are never confused.
type Entry struct {
	// Key is the task name the value was computed for.
	Key string `json:"key"`

	// CachedAt is when the value was written.
	CachedAt time.Time `json:"cached_at"`

	// Value is the JSON encoding of the cached result.
	Value json.RawMessage `json:"value"`
}
