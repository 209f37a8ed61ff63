package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/pocket-planner/internal/config"
)

func TestUpstreamFetcher_MapsShellKeysToUpstream(t *testing.T) {
	var gotPath string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte("icon"))
	}))
	defer upstream.Close()
	upstreamURL, _ := url.Parse(upstream.URL)

	fetch := upstreamFetcher(upstream.Client(), "http://localhost:9447/", upstreamURL)
	resp, err := fetch(context.Background(), "http://localhost:9447/favicon.ico")
	require.NoError(t, err)

	assert.Equal(t, "/favicon.ico", gotPath)
	assert.True(t, resp.OK())
	assert.Equal(t, "icon", string(resp.Body))
}

func TestAssetManifest(t *testing.T) {
	assert.Empty(t, assetManifest("http://localhost:9447", nil))
	assert.Equal(t,
		[]string{"http://localhost:9447/favicon.ico", "http://localhost:9447/app.js"},
		assetManifest("http://localhost:9447/", []string{"/favicon.ico", " app.js", ""}),
	)
}

func TestAssetOriginURL(t *testing.T) {
	upstream, _ := url.Parse("http://localhost:9446")

	origin, err := assetOriginURL(&config.Config{}, upstream)
	require.NoError(t, err)
	assert.Same(t, upstream, origin)

	origin, err = assetOriginURL(&config.Config{AssetOrigin: "http://static.local"}, upstream)
	require.NoError(t, err)
	assert.Equal(t, "static.local", origin.Host)
}
