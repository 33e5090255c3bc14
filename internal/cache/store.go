package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ioutils "github.com/ZimbiX/gig-list-en/internal/io"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// ErrCorruptEntry indicates a cache file exists but cannot be decoded.
// Cached treats it as a miss; it is exported for callers of Load.
var ErrCorruptEntry = errors.New("corrupt cache entry")

// errAbsent is returned by load when no file exists for a key.
var errAbsent = errors.New("cache entry absent")

const fileExt = ".json"

// Store persists one JSON file per task name under a directory.
//
// Entries never expire; the operator invalidates them with refresh flags or
// by deleting files. Within one process, concurrent Cached calls for the same
// name share a single producer run. Separate processes using the same
// directory are not coordinated.
type Store struct {
	dir    string
	logger zerolog.Logger
	flight singleflight.Group
}

// Open returns a Store rooted at dir, creating the directory if needed.
func Open(dir string, logger zerolog.Logger) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache directory cannot be empty")
	}
	if err := ioutils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file path used for name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, ioutils.SanitizeFileName(name)+fileExt)
}

// Has reports whether an entry file exists for name. It does not validate it.
func (s *Store) Has(name string) bool {
	return ioutils.FileExists(s.Path(name))
}

// Delete removes the entry for name. Deleting a missing entry is not an error.
func (s *Store) Delete(name string) error {
	err := os.Remove(s.Path(name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		CacheErrors.WithLabelValues("delete").Inc()
		return fmt.Errorf("delete cache entry %s: %w", name, err)
	}
	return nil
}

// Load decodes the entry for name into out.
//
// Returns os.ErrNotExist (wrapped) if there is no entry and ErrCorruptEntry
// (wrapped) if the file cannot be read or decoded.
func (s *Store) Load(name string, out any) error {
	err := s.load(name, out)
	if errors.Is(err, errAbsent) {
		return fmt.Errorf("%s: %w", name, os.ErrNotExist)
	}
	return err
}

// Save writes value as the entry for name, replacing any previous entry.
func (s *Store) Save(name string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		CacheErrors.WithLabelValues("write").Inc()
		return fmt.Errorf("encode cache value %s: %w", name, err)
	}

	data, err := json.MarshalIndent(Entry{
		Key:      name,
		CachedAt: time.Now().UTC(),
		Value:    raw,
	}, "", "  ")
	if err != nil {
		CacheErrors.WithLabelValues("write").Inc()
		return fmt.Errorf("encode cache entry %s: %w", name, err)
	}

	if err := ioutils.WriteFileAtomic(s.Path(name), data); err != nil {
		CacheErrors.WithLabelValues("write").Inc()
		return fmt.Errorf("write cache entry %s: %w", name, err)
	}

	CacheWrites.Inc()
	return nil
}

func (s *Store) load(name string, out any) error {
	data, err := os.ReadFile(s.Path(name))
	if errors.Is(err, os.ErrNotExist) {
		return errAbsent
	}
	if err != nil {
		CacheErrors.WithLabelValues("read").Inc()
		return fmt.Errorf("%w: %s: %v", ErrCorruptEntry, name, err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptEntry, name, err)
	}
	if entry.Key != name {
		return fmt.Errorf("%w: %s: file holds key %q", ErrCorruptEntry, name, entry.Key)
	}
	if len(entry.Value) == 0 {
		return fmt.Errorf("%w: %s: no value", ErrCorruptEntry, name)
	}
	if err := json.Unmarshal(entry.Value, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptEntry, name, err)
	}
	return nil
}

// Cached returns the stored value for name, computing it with produce when
// there is no usable entry or refresh is set.
//
// A hit never calls produce. On a miss the produced value is persisted
// before it is returned; if produce fails nothing is written. Unreadable or
// undecodable entries count as misses and are overwritten.
//
// Example:
//
//	bands, err := cache.Cached(store, "bands-for-profile-42", refresh, func() ([]model.Band, error) {
//	    return graph.LikedPages(ctx, 42)
//	})
func Cached[T any](s *Store, name string, refresh bool, produce func() (T, error)) (T, error) {
	v, err, _ := s.flight.Do(name, func() (any, error) {
		reason := missRefresh
		if !refresh {
			var cached T
			err := s.load(name, &cached)
			switch {
			case err == nil:
				CacheHits.Inc()
				s.logger.Debug().Str("key", name).Msg("Cache hit")
				return cached, nil
			case errors.Is(err, errAbsent):
				reason = missAbsent
			default:
				reason = missCorrupt
				s.logger.Warn().Err(err).Str("key", name).Msg("Discarding unreadable cache entry")
			}
		}

		CacheMisses.WithLabelValues(reason).Inc()
		s.logger.Debug().Str("key", name).Str("reason", reason).Msg("Cache miss")

		value, err := produce()
		if err != nil {
			return nil, err
		}
		if err := s.Save(name, value); err != nil {
			return nil, err
		}
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Key joins parts into a task name, e.g. Key("event-details-for-event", 42)
// returns "event-details-for-event-42".
func Key(parts ...any) string {
	strs := make([]string, 0, len(parts))
	for _, p := range parts {
		strs = append(strs, fmt.Sprint(p))
	}
	return strings.Join(strs, "-")
}
