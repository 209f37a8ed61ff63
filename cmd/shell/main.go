package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/pocket-planner/internal/cache"
	"github.com/carson-networks/pocket-planner/internal/client"
	"github.com/carson-networks/pocket-planner/internal/config"
	"github.com/carson-networks/pocket-planner/internal/fragments"
	"github.com/carson-networks/pocket-planner/internal/interceptor"
	"github.com/carson-networks/pocket-planner/internal/localdb"
	"github.com/carson-networks/pocket-planner/internal/logging"
	"github.com/carson-networks/pocket-planner/internal/securestore"
)

func main() {
	logger := logging.SetupLogging("shell")
	logrus.Info("pocket-planner shell starting")

	env, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}
	logging.SetLevel(logger, env.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	upstream, err := url.Parse(env.UpstreamURL)
	if err != nil {
		logger.WithError(err).Fatal("url.Parse UPSTREAM_URL")
		return
	}
	httpClient := &http.Client{Timeout: time.Duration(env.UpstreamTimeout) * time.Second}

	cacheDB, err := localdb.Open(env.CacheDBPath)
	if err != nil {
		logger.WithError(err).Fatal("localdb.Open cache")
		return
	}
	defer cacheDB.Close()

	bucket, err := cache.Open(ctx, cacheDB, env.CacheName)
	if err != nil {
		logger.WithError(err).Fatal("cache.Open")
		return
	}

	assetOrigin, err := assetOriginURL(env, upstream)
	if err != nil {
		logger.WithError(err).Fatal("url.Parse ASSET_ORIGIN")
		return
	}
	manifest := assetManifest(env.ShellOrigin, env.CacheAssets)
	if len(manifest) == 0 {
		logger.Info("main.CACHE_ASSETS is empty, only network responses will be cached")
	}
	if err = bucket.Activate(ctx, upstreamFetcher(httpClient, env.ShellOrigin, assetOrigin), manifest); err != nil {
		logger.WithError(err).Warn("cache.Bucket.Activate")
	}

	localDB, err := localdb.Open(env.LocalDBPath)
	if err != nil {
		logger.WithError(err).Fatal("localdb.Open local")
		return
	}
	defer localDB.Close()

	renderer, err := fragments.New(ctx, localDB, logger)
	if err != nil {
		logger.WithError(err).Fatal("fragments.New")
		return
	}
	mirror(ctx, logger, env, httpClient, renderer)

	network := interceptor.NewNetworkProvider(httpClient, upstream, bucket, logger)
	handler := interceptor.New(logger,
		&interceptor.CacheProvider{Bucket: bucket},
		&interceptor.RenderProvider{Renderer: renderer},
		network,
	)

	serve(ctx, logger, env.ShellPort, handler)
	network.Wait()
}

// assetManifest turns asset paths into the shell URLs used as cache keys.
func assetManifest(shellOrigin string, assets []string) []string {
	manifest := make([]string, 0, len(assets))
	for _, asset := range assets {
		asset = strings.TrimSpace(asset)
		if asset == "" {
			continue
		}
		manifest = append(manifest, strings.TrimRight(shellOrigin, "/")+"/"+strings.TrimLeft(asset, "/"))
	}
	return manifest
}

// assetOriginURL is where manifest assets are fetched from. The API upstream
// serves no static files, so a deployment with a manifest sets ASSET_ORIGIN.
func assetOriginURL(env *config.Config, upstream *url.URL) (*url.URL, error) {
	if env.AssetOrigin == "" {
		return upstream, nil
	}
	return url.Parse(env.AssetOrigin)
}

// upstreamFetcher fetches shell URLs of the asset manifest from the upstream origin.
func upstreamFetcher(httpClient *http.Client, shellOrigin string, upstream *url.URL) cache.Fetcher {
	fetch := cache.HTTPFetcher(httpClient)
	return func(ctx context.Context, key string) (*interceptor.Response, error) {
		path := strings.TrimPrefix(key, strings.TrimRight(shellOrigin, "/"))
		return fetch(ctx, upstream.JoinPath(path).String())
	}
}

// mirror copies cards and categories into the local database when a session
// token is stored. Failures only mean the local fragments are stale.
func mirror(ctx context.Context, logger *logrus.Logger, env *config.Config, httpClient *http.Client, renderer *fragments.Renderer) {
	if env.TokenStoreKey == "" {
		return
	}
	secure, err := securestore.Open(env.TokenStoreDir, env.TokenStoreKey)
	if err != nil {
		logger.WithError(err).Warn("mirror.securestore.Open")
		return
	}
	var session securestore.Session
	if found, err := secure.Get(securestore.SessionKey, &session); err != nil || !found {
		return
	}

	api := client.New(env.APIBaseURL, httpClient)
	api.SetToken(session.Token)

	cards, err := api.FetchCards(ctx)
	if err == nil {
		err = renderer.MirrorCards(ctx, cards)
	}
	if err != nil {
		logger.WithError(err).Warn("mirror.cards")
	}

	categories, err := api.FetchCategories(ctx)
	if err == nil {
		err = renderer.MirrorCategories(ctx, categories)
	}
	if err != nil {
		logger.WithError(err).Warn("mirror.categories")
	}
}

func serve(ctx context.Context, logger *logrus.Logger, port string, handler http.Handler) {
	server := http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.WithField("port", port).Info("Shell.Serve.listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Error("Shell.Serve.listen error")
	}
	logger.Info("Shell.Serve.shutting down")
}
