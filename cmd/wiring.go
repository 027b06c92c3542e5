package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/carlot/internal/app"
	"github.com/zjrosen/carlot/internal/cachemanager"
	"github.com/zjrosen/carlot/internal/car"
	"github.com/zjrosen/carlot/internal/catalog"
	"github.com/zjrosen/carlot/internal/config"
	"github.com/zjrosen/carlot/internal/log"
	"github.com/zjrosen/carlot/internal/pubsub"
	"github.com/zjrosen/carlot/internal/repository"
	"github.com/zjrosen/carlot/internal/seed"
	"github.com/zjrosen/carlot/internal/tracing"
	"github.com/zjrosen/carlot/internal/watcher"
)

// initLogging installs the file logger when logging is on. The returned func is always safe to call.
func initLogging(c config.Config, debug bool) (func(), error) {
	if !debug && !c.Log.Enabled {
		return func() {}, nil
	}

	path := c.Log.Path
	if debug && path == "" {
		path = defaultDebugLog
	}
	cleanup, err := log.Init(path)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}

	if debug {
		log.SetMinLevel(log.LevelDebug)
	} else if level, err := log.ParseLevel(c.Log.Level); err == nil {
		log.SetMinLevel(level)
	}
	return func() {
		cleanup()
		log.Reset()
	}, nil
}

// newTracingProvider fills in the default trace file before building the provider.
func newTracingProvider(c config.Config) (*tracing.Provider, error) {
	tc := c.Tracing
	if tc.Exporter == tracing.ExporterFile && tc.FilePath == "" {
		tc.FilePath = config.DefaultTracesFilePath()
	}
	provider, err := tracing.NewProvider(tc)
	if err != nil {
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}
	if provider.Enabled() {
		log.Info(log.CatTrace, "tracing enabled", "exporter", tc.Exporter, "sampleRate", tc.SampleRate)
	}
	return provider, nil
}

// newCatalog builds the repository, query cache and catalog, then loads the seed file if one is set.
// events may be nil.
func newCatalog(ctx context.Context, c config.Config, tracer trace.Tracer, events *pubsub.Broker[car.Car]) (*catalog.Service, error) {
	var repoOpts []repository.Option
	if events != nil {
		repoOpts = append(repoOpts, repository.WithPublisher(events))
	}
	repo := repository.NewMemoryCarRepository(repoOpts...)

	opts := []catalog.Option{catalog.WithTracer(tracer)}
	if c.Cache.Enabled {
		cache := cachemanager.NewInMemoryCacheManager[string, []car.Car](
			"catalog", c.Cache.TTL, cachemanager.DefaultCleanupInterval)
		opts = append(opts, catalog.WithCache(cache), catalog.WithCacheTTL(c.Cache.TTL))
	}
	svc := catalog.New(repo, opts...)

	if c.SeedFile != "" {
		cars, err := seed.LoadFile(c.SeedFile)
		if err != nil {
			return nil, err
		}
		stored := svc.Seed(ctx, cars)
		log.Info(log.CatSeed, "loaded seed file", "path", c.SeedFile, "cars", len(stored))
	}
	return svc, nil
}

// watchConfig reloads the county code allow-list whenever the config file at path is saved.
// Watch failures are logged and leave the menu without live reload.
func watchConfig(path string, appCfg *app.Config) (stop func()) {
	w, err := watcher.New(watcher.DefaultConfig(path))
	if err != nil {
		log.ErrorErr(log.CatConfig, "creating config watcher", err)
		return func() {}
	}
	changes, err := w.Start()
	if err != nil {
		log.ErrorErr(log.CatConfig, "starting config watcher", err)
		_ = w.Stop()
		return func() {}
	}

	appCfg.ConfigChanges = changes
	appCfg.ReloadCodes = func() ([]string, error) { return reloadCountyCodes(path) }
	return func() { _ = w.Stop() }
}

// reloadCountyCodes rereads path with the usual defaults and environment overrides.
func reloadCountyCodes(path string) ([]string, error) {
	c, err := loadConfig(viper.New(), path)
	if err != nil {
		return nil, err
	}
	if err := config.ValidateCountyCodes(c.Registration.CountyCodes); err != nil {
		return nil, err
	}
	return c.Registration.CountyCodes, nil
}
