package cache

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/pocket-planner/internal/interceptor"
	"github.com/carson-networks/pocket-planner/internal/localdb"
)

func newTestBucket(t *testing.T, name string) *Bucket {
	t.Helper()
	db, err := localdb.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	bucket, err := Open(context.Background(), db, name)
	require.NoError(t, err)
	return bucket
}

func staticFetcher(responses map[string]*interceptor.Response) Fetcher {
	return func(_ context.Context, url string) (*interceptor.Response, error) {
		resp, ok := responses[url]
		if !ok {
			return nil, errors.New("no route to " + url)
		}
		return resp, nil
	}
}

func TestBucket_PutMatchRoundTrip(t *testing.T) {
	ctx := context.Background()
	bucket := newTestBucket(t, "pp_cache")
	stored := &interceptor.Response{
		Status: http.StatusOK,
		Header: http.Header{"Content-Type": {"text/html"}, "X-Next-Offset": {"50"}},
		Body:   []byte("<ul><li>Lunch</li></ul>"),
	}

	require.NoError(t, bucket.Put(ctx, "http://shell/fragments/transaction", stored))

	got, err := bucket.Match(ctx, "http://shell/fragments/transaction")
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestBucket_MatchMissIsNil(t *testing.T) {
	got, err := newTestBucket(t, "pp_cache").Match(context.Background(), "http://shell/none")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestBucket_PutReplaces(t *testing.T) {
	ctx := context.Background()
	bucket := newTestBucket(t, "pp_cache")

	require.NoError(t, bucket.Put(ctx, "k", &interceptor.Response{Status: 200, Body: []byte("old")}))
	require.NoError(t, bucket.Put(ctx, "k", &interceptor.Response{Status: 200, Body: []byte("new")}))

	got, err := bucket.Match(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "new", string(got.Body))

	keys, err := bucket.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, keys)
}

func TestBucket_NamesAreIsolated(t *testing.T) {
	ctx := context.Background()
	first := newTestBucket(t, "pp_cache")
	second, err := Open(ctx, first.db, "other")
	require.NoError(t, err)

	require.NoError(t, first.Put(ctx, "k", &interceptor.Response{Status: 200, Body: []byte("x")}))

	got, err := second.Match(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, second.Clear(ctx))
	got, err = first.Match(ctx, "k")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestBucket_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	bucket := newTestBucket(t, "pp_cache")
	for _, key := range []string{"a", "b", "c"} {
		require.NoError(t, bucket.Put(ctx, key, &interceptor.Response{Status: 200, Body: []byte(key)}))
	}

	require.NoError(t, bucket.Delete(ctx, "b"))
	keys, err := bucket.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "c"}, keys)

	require.NoError(t, bucket.Clear(ctx))
	keys, err = bucket.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestBucket_AddAllIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	bucket := newTestBucket(t, "pp_cache")
	fetch := staticFetcher(map[string]*interceptor.Response{
		"/app.js":      {Status: 200, Body: []byte("js")},
		"/favicon.ico": {Status: 200, Body: []byte("ico")},
		"/gone.png":    {Status: 404, Body: []byte("missing")},
	})

	err := bucket.AddAll(ctx, fetch, []string{"/app.js", "/gone.png"})
	assert.ErrorIs(t, err, ErrFetchFailed)

	err = bucket.AddAll(ctx, fetch, []string{"/app.js", "/unreachable"})
	assert.ErrorIs(t, err, ErrFetchFailed)

	keys, err := bucket.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, bucket.AddAll(ctx, fetch, []string{"/app.js", "/favicon.ico"}))
	keys, err = bucket.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"/app.js", "/favicon.ico"}, keys)
}

func TestBucket_ActivateClearsAndRepopulates(t *testing.T) {
	ctx := context.Background()
	bucket := newTestBucket(t, "pp_cache")
	fetch := staticFetcher(map[string]*interceptor.Response{
		"/app.js": {Status: 200, Body: []byte("v2")},
	})

	require.NoError(t, bucket.Put(ctx, "http://shell/api/card", &interceptor.Response{Status: 200, Body: []byte("stale")}))
	require.NoError(t, bucket.Put(ctx, "/app.js", &interceptor.Response{Status: 200, Body: []byte("v1")}))

	require.NoError(t, bucket.Activate(ctx, fetch, []string{"/app.js"}))

	keys, err := bucket.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/app.js"}, keys)
	got, err := bucket.Match(ctx, "/app.js")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got.Body))
}

func TestBucket_ActivateWithEmptyManifest(t *testing.T) {
	ctx := context.Background()
	bucket := newTestBucket(t, "pp_cache")
	require.NoError(t, bucket.Put(ctx, "http://shell/api/card", &interceptor.Response{Status: 200, Body: []byte("stale")}))

	require.NoError(t, bucket.Activate(ctx, staticFetcher(nil), nil))

	keys, err := bucket.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/javascript")
		_, _ = w.Write([]byte("console.log(1)"))
	}))
	defer srv.Close()

	resp, err := HTTPFetcher(srv.Client())(context.Background(), srv.URL+"/app.js")
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Equal(t, "application/javascript", resp.Header.Get("Content-Type"))
	assert.Empty(t, resp.Header.Get("Content-Length"))
	assert.Equal(t, "console.log(1)", string(resp.Body))
}
