package source

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksparrot/jsp/internal/cache"
)

type stubFetcher struct {
	body  string
	err   error
	calls int
	url   string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.calls++
	f.url = url
	return f.body, f.err
}

type failingStore struct {
	getErr error
	setErr error
}

func (s failingStore) Get(string) (string, bool, error) { return "", false, s.getErr }
func (s failingStore) Set(string, string) error         { return s.setErr }

func TestLoadFetchesWhenCacheEmpty(t *testing.T) {
	fetcher := &stubFetcher{body: "A,urlA,rev1"}
	store := cache.NewMemoryStore()
	src := New(fetcher, store, "https://example.com/manifest", nil)

	result, err := src.Load(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "A,urlA,rev1", result.Raw)
	assert.False(t, result.FromCache)
	assert.False(t, result.HadPrevious)
	assert.True(t, result.Changed())
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, "https://example.com/manifest", fetcher.url)

	cached, ok, err := store.Get(cache.ManifestKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "A,urlA,rev1", cached)
}

func TestLoadUsesCacheWithoutRefresh(t *testing.T) {
	fetcher := &stubFetcher{body: "new"}
	store := cache.NewMemoryStore()
	require.NoError(t, store.Set(cache.ManifestKey, "old"))

	result, err := New(fetcher, store, "u", nil).Load(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "old", result.Raw)
	assert.True(t, result.FromCache)
	assert.False(t, result.Changed())
	assert.Zero(t, fetcher.calls)
}

func TestLoadRefreshReplacesCache(t *testing.T) {
	fetcher := &stubFetcher{body: "new"}
	store := cache.NewMemoryStore()
	require.NoError(t, store.Set(cache.ManifestKey, "old"))

	result, err := New(fetcher, store, "u", nil).Load(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, "new", result.Raw)
	assert.Equal(t, "old", result.Previous)
	assert.True(t, result.HadPrevious)
	assert.True(t, result.Changed())

	cached, _, _ := store.Get(cache.ManifestKey)
	assert.Equal(t, "new", cached)
}

func TestLoadRefreshFailureKeepsCache(t *testing.T) {
	fetchErr := errors.New("offline")
	store := cache.NewMemoryStore()
	require.NoError(t, store.Set(cache.ManifestKey, "old"))

	_, err := New(&stubFetcher{err: fetchErr}, store, "u", nil).Load(context.Background(), true)
	require.ErrorIs(t, err, fetchErr)
	cached, _, _ := store.Get(cache.ManifestKey)
	assert.Equal(t, "old", cached)
}

func TestLoadStoreErrors(t *testing.T) {
	_, err := New(&stubFetcher{}, failingStore{getErr: errors.New("read")}, "u", nil).Load(context.Background(), false)
	require.Error(t, err)

	_, err = New(&stubFetcher{body: "x"}, failingStore{setErr: errors.New("write")}, "u", nil).Load(context.Background(), false)
	require.Error(t, err)

	_, err = New(nil, cache.NewMemoryStore(), "u", nil).Load(context.Background(), false)
	require.Error(t, err)
}

func TestLoadValidatorRejectsWithoutCaching(t *testing.T) {
	invalid := errors.New("bad manifest")
	validate := func(raw string) error {
		if raw == "broken" {
			return invalid
		}
		return nil
	}
	store := cache.NewMemoryStore()
	require.NoError(t, store.Set(cache.ManifestKey, "good"))
	fetcher := &stubFetcher{body: "broken"}
	src := New(fetcher, store, "u", nil, WithValidator(validate))

	_, err := src.Load(context.Background(), true)
	require.ErrorIs(t, err, invalid)
	cached, _, _ := store.Get(cache.ManifestKey)
	assert.Equal(t, "good", cached)

	fetcher.body = "fixed"
	result, err := src.Load(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, "fixed", result.Raw)
	assert.Equal(t, "good", result.Previous)
	cached, _, _ = store.Get(cache.ManifestKey)
	assert.Equal(t, "fixed", cached)
}

func TestLoadValidatorSkippedForCachedText(t *testing.T) {
	store := cache.NewMemoryStore()
	require.NoError(t, store.Set(cache.ManifestKey, "cached"))
	calls := 0
	src := New(&stubFetcher{}, store, "u", nil, WithValidator(func(string) error {
		calls++
		return nil
	}))

	result, err := src.Load(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, result.FromCache)
	assert.Zero(t, calls)
}
