package cache

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ZimbiX/gig-list-en/internal/model"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	return s
}

func TestOpen_CreatesDirectory(t *testing.T) {
	dir := t.TempDir() + "/nested/cache"

	s, err := Open(dir, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpen_EmptyDir(t *testing.T) {
	_, err := Open("", zerolog.Nop())
	assert.Error(t, err)
}

func TestCached_HitSkipsProducer(t *testing.T) {
	s := newTestStore(t)
	calls := 0
	produce := func() ([]model.Band, error) {
		calls++
		return []model.Band{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}, nil
	}

	hitsBefore := testutil.ToFloat64(CacheHits)

	first, err := Cached(s, "bands-for-profile-7", false, produce)
	require.NoError(t, err)
	second, err := Cached(s, "bands-for-profile-7", false, produce)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.Equal(t, hitsBefore+1, testutil.ToFloat64(CacheHits))
	assert.True(t, s.Has("bands-for-profile-7"))
}

func TestCached_RefreshOverwrites(t *testing.T) {
	s := newTestStore(t)
	n := 0
	produce := func() (int, error) {
		n++
		return n, nil
	}

	refreshBefore := testutil.ToFloat64(CacheMisses.WithLabelValues(missRefresh))

	v, err := Cached(s, "counter", false, produce)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = Cached(s, "counter", true, produce)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	v, err = Cached(s, "counter", true, produce)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	// The last refresh is what a later non-refresh call sees.
	v, err = Cached(s, "counter", false, produce)
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	assert.Equal(t, 3, n)
	assert.Equal(t, refreshBefore+2, testutil.ToFloat64(CacheMisses.WithLabelValues(missRefresh)))
}

func TestCached_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	want := &model.EventDetail{
		Title:   model.Text("Warped Tour"),
		Date:    model.Text("2019-11-30T19:00:00+11:00"),
		Address: model.Text("Smith St, Collingwood"),
	}

	_, err := Cached(s, "event-details-for-event-1", false, func() (*model.EventDetail, error) {
		return want, nil
	})
	require.NoError(t, err)

	got, err := Cached(s, "event-details-for-event-1", false, func() (*model.EventDetail, error) {
		t.Fatal("producer called on hit")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Nil(t, got.Venue)
	assert.Nil(t, got.Status)
}

func TestCached_NilValueIsCached(t *testing.T) {
	s := newTestStore(t)
	calls := 0
	produce := func() (*model.EventDetail, error) {
		calls++
		return nil, nil
	}

	for i := 0; i < 2; i++ {
		got, err := Cached(s, "event-details-for-event-2", false, produce)
		require.NoError(t, err)
		assert.Nil(t, got)
	}
	assert.Equal(t, 1, calls)
}

func TestCached_CorruptEntryRecomputed(t *testing.T) {
	tests := map[string]string{
		"garbage":     "{not json",
		"empty":       "",
		"wrong key":   `{"key": "something-else", "value": "x"}`,
		"no value":    `{"key": "event-html-for-event-9"}`,
		"wrong shape": `{"key": "event-html-for-event-9", "value": [1, 2]}`,
	}

	for name, contents := range tests {
		t.Run(name, func(t *testing.T) {
			s := newTestStore(t)
			key := "event-html-for-event-9"
			require.NoError(t, os.WriteFile(s.Path(key), []byte(contents), 0644))

			corruptBefore := testutil.ToFloat64(CacheMisses.WithLabelValues(missCorrupt))
			calls := 0
			got, err := Cached(s, key, false, func() (string, error) {
				calls++
				return "<html></html>", nil
			})
			require.NoError(t, err)
			assert.Equal(t, "<html></html>", got)
			assert.Equal(t, 1, calls)
			assert.Equal(t, corruptBefore+1, testutil.ToFloat64(CacheMisses.WithLabelValues(missCorrupt)))

			var stored string
			require.NoError(t, s.Load(key, &stored))
			assert.Equal(t, "<html></html>", stored)
		})
	}
}

func TestCached_ProducerErrorWritesNothing(t *testing.T) {
	s := newTestStore(t)
	boom := errors.New("boom")

	_, err := Cached(s, "event-ids-for-band-3", false, func() ([]model.EventRef, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, s.Has("event-ids-for-band-3"))
}

func TestCached_ProducerErrorKeepsPreviousEntry(t *testing.T) {
	s := newTestStore(t)
	_, err := Cached(s, "k", false, func() (string, error) { return "old", nil })
	require.NoError(t, err)

	_, err = Cached(s, "k", true, func() (string, error) { return "", errors.New("offline") })
	require.Error(t, err)

	var stored string
	require.NoError(t, s.Load("k", &stored))
	assert.Equal(t, "old", stored)
}

func TestCached_SingleProducerPerKey(t *testing.T) {
	s := newTestStore(t)
	var calls atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Cached(s, "shared", false, func() (string, error) {
				calls.Add(1)
				<-release
				return "value", nil
			})
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	close(release)
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "value", r)
	}
	// Goroutines that arrive after the first flight finishes hit the file.
	assert.Equal(t, int32(1), calls.Load())
}

func TestLoad_Absent(t *testing.T) {
	s := newTestStore(t)
	var v string
	err := s.Load("missing", &v)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Corrupt(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path("bad"), []byte("nope"), 0644))
	var v string
	err := s.Load("bad", &v)
	assert.ErrorIs(t, err, ErrCorruptEntry)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save("gone", 1))
	require.True(t, s.Has("gone"))

	require.NoError(t, s.Delete("gone"))
	assert.False(t, s.Has("gone"))

	// Missing entries are not an error.
	assert.NoError(t, s.Delete("gone"))
}

func TestPath_Sanitised(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, filepath.Join(s.Dir(), "a_b.json"), s.Path("a/b"))
}

func TestKey(t *testing.T) {
	tests := []struct {
		parts []any
		want  string
	}{
		{[]any{"bands-for-profile", int64(42)}, "bands-for-profile-42"},
		{[]any{"event-ids-for-band", int64(19814903445)}, "event-ids-for-band-19814903445"},
		{[]any{"solo"}, "solo"},
		{nil, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Key(tt.parts...))
	}
}
