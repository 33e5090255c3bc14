package paginate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixturePage struct {
	items []string
	next  string
}

// fixtureFetcher serves pages keyed by the cursor they are requested with.
func fixtureFetcher(t *testing.T, pages map[string]fixturePage, calls *[]string) PageFunc[string] {
	t.Helper()
	return func(_ context.Context, cursor string) ([]string, string, error) {
		*calls = append(*calls, cursor)
		page, ok := pages[cursor]
		if !ok {
			return nil, "", errors.New("unexpected cursor " + cursor)
		}
		return page.items, page.next, nil
	}
}

func TestAll_ConcatenatesPagesInOrder(t *testing.T) {
	var calls []string
	fetch := fixtureFetcher(t, map[string]fixturePage{
		"":   {items: []string{"a", "b"}, next: "c3"},
		"c3": {items: []string{"c", "d"}, next: "c2"},
		"c2": {items: []string{"e"}, next: ""},
	}, &calls)

	items, err := All(context.Background(), fetch, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, items)
	assert.Equal(t, []string{"", "c3", "c2"}, calls)
}

func TestAll_SinglePageWithoutContinuation(t *testing.T) {
	var calls []string
	fetch := fixtureFetcher(t, map[string]fixturePage{
		"": {items: []string{"only", "page"}},
	}, &calls)

	items, err := All(context.Background(), fetch, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"only", "page"}, items)
	assert.Len(t, calls, 1)
}

func TestCollect_UsesSeparateFirstAndNext(t *testing.T) {
	var firstCalls, nextCalls []string
	first := func(_ context.Context, cursor string) ([]int, string, error) {
		firstCalls = append(firstCalls, cursor)
		return []int{1, 2}, "more", nil
	}
	next := func(_ context.Context, cursor string) ([]int, string, error) {
		nextCalls = append(nextCalls, cursor)
		if cursor == "more" {
			return []int{3}, "last", nil
		}
		return []int{4}, "", nil
	}

	items, err := Collect(context.Background(), first, next, Options{})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, items)
	assert.Equal(t, []string{""}, firstCalls)
	assert.Equal(t, []string{"more", "last"}, nextCalls)
}

func TestCollect_PageErrorAborts(t *testing.T) {
	boom := errors.New("unparsable body")
	fetch := func(_ context.Context, cursor string) ([]int, string, error) {
		if cursor == "" {
			return []int{1}, "next", nil
		}
		return nil, "", boom
	}

	items, err := All(context.Background(), fetch, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "page 2")
	assert.Nil(t, items)
}

func TestCollect_MaxPages(t *testing.T) {
	calls := 0
	endless := func(_ context.Context, _ string) ([]int, string, error) {
		calls++
		return []int{calls}, "again", nil
	}

	_, err := All(context.Background(), endless, Options{MaxPages: 3})
	require.ErrorIs(t, err, ErrTooManyPages)
	assert.Equal(t, 3, calls)
}

func TestCollect_MaxPagesNotHitWhenListingEnds(t *testing.T) {
	fetch := func(_ context.Context, cursor string) ([]int, string, error) {
		if cursor == "" {
			return []int{1}, "x", nil
		}
		return []int{2}, "", nil
	}

	items, err := All(context.Background(), fetch, Options{MaxPages: 2})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, items)
}

func TestCollect_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fetch := func(_ context.Context, _ string) ([]int, string, error) {
		cancel()
		return []int{1}, "next", nil
	}

	_, err := All(ctx, fetch, Options{})
	require.ErrorIs(t, err, context.Canceled)
}
