package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zjrosen/carlot/internal/cachemanager"
	"github.com/zjrosen/carlot/internal/car"
	"github.com/zjrosen/carlot/internal/repository"
	"github.com/zjrosen/carlot/internal/testutil"
	"github.com/zjrosen/carlot/internal/tracing"
)

func newCache() *cachemanager.InMemoryCacheManager[string, []car.Car] {
	return cachemanager.NewInMemoryCacheManager[string, []car.Car]("test", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
}

// setupService seeds a mixed lot: 1 Toyota Corolla, 2 Ford Focus, 3 toyota Yaris,
// 4 Volkswagen Golf, 5 BMW 320d, 6 Skoda Octavia.
func setupService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	repo := repository.NewMemoryCarRepository()
	testutil.NewBuilder(t).WithMixedLot().Build(repo)
	return New(repo, opts...)
}

func carIDs(cars []car.Car) []int {
	out := make([]int, 0, len(cars))
	for _, c := range cars {
		out = append(out, c.ID)
	}
	return out
}

func TestService_Queries(t *testing.T) {
	for name, opts := range map[string][]Option{
		"uncached": nil,
		"cached":   {WithCache(newCache())},
	} {
		t.Run(name, func(t *testing.T) {
			svc := setupService(t, opts...)
			ctx := context.Background()

			require.Equal(t, []int{1, 2, 3, 4, 5, 6}, carIDs(svc.List(ctx)))
			require.Equal(t, []int{1, 3}, carIDs(svc.ByMake(ctx, "TOYOTA")))
			require.Equal(t, []int{4}, carIDs(svc.ByModel(ctx, "golf")))
			require.Equal(t, []int{3, 4}, carIDs(svc.ByPriceAndType(ctx, 15500, "HATCHBACK")))
			require.Equal(t, []int{6}, carIDs(svc.ByCounty(ctx, "WX")))
			require.Equal(t, []int{3}, carIDs(svc.ByCounty(ctx, "C")))
			require.Equal(t, 6, svc.Count(ctx))

			got, ok := svc.Get(ctx, 5)
			require.True(t, ok)
			require.Equal(t, "BMW", got.Make)

			_, ok = svc.Get(ctx, 42)
			require.False(t, ok)
		})
	}
}

func TestService_EmptyResultsAreNonNil(t *testing.T) {
	svc := New(repository.NewMemoryCarRepository(), WithCache(newCache()))
	ctx := context.Background()

	require.NotNil(t, svc.List(ctx))
	require.Empty(t, svc.List(ctx))
	require.NotNil(t, svc.ByMake(ctx, "Lada"))
}

func TestService_ResultsAreCopies(t *testing.T) {
	svc := setupService(t, WithCache(newCache()))
	ctx := context.Background()

	cars := svc.List(ctx)
	cars[0].Make = "Changed"

	again := svc.List(ctx)
	require.Equal(t, "Toyota", again[0].Make)
}

func TestService_CacheHitsAndFlushOnMutation(t *testing.T) {
	cache := newCache()
	svc := setupService(t, WithCache(cache))
	ctx := context.Background()

	require.Len(t, svc.ByMake(ctx, "toyota"), 2)
	require.Len(t, svc.ByMake(ctx, "Toyota"), 2)
	stats := svc.CacheStats()
	require.EqualValues(t, 1, stats.Hits)
	require.EqualValues(t, 1, stats.Misses)

	added := svc.Add(ctx, car.Car{Make: "Toyota", Model: "Prius", CarType: "Hatchback", Price: 21000})
	require.Equal(t, 7, added.ID)
	require.Equal(t, []int{1, 3, 7}, carIDs(svc.ByMake(ctx, "toyota")))

	_, err := svc.Update(ctx, 7, car.Changes{Make: car.Ptr("Lexus")})
	require.NoError(t, err)
	require.Equal(t, []int{1, 3}, carIDs(svc.ByMake(ctx, "toyota")))

	require.NoError(t, svc.Remove(ctx, 1))
	require.Equal(t, []int{3}, carIDs(svc.ByMake(ctx, "toyota")))
	_, ok := svc.Get(ctx, 1)
	require.False(t, ok)

	require.EqualValues(t, 3, svc.CacheStats().Flushes)
}

func TestService_CacheStatsWithoutCache(t *testing.T) {
	svc := setupService(t)
	require.Equal(t, cachemanager.Stats{}, svc.CacheStats())
}

func TestService_CachedMatchesUncachedAcrossFoldPairs(t *testing.T) {
	repo := repository.NewMemoryCarRepository()
	repo.Create(car.New("İzmir", "Ka", "SUV", 9000, "", 2019))
	repo.Create(car.New("Izmir", "\u212Aa", "Saloon", 8000, "", 2018))

	cached := New(repo, WithCache(newCache()))
	uncached := New(repo)
	ctx := context.Background()

	makes := []string{"İzmir", "izmir", "IZMIR", "i̇zmir"}
	for _, m := range makes {
		want := carIDs(uncached.ByMake(ctx, m))
		require.Equal(t, want, carIDs(cached.ByMake(ctx, m)), "make %q", m)
	}
	require.Equal(t, []int{1}, carIDs(cached.ByMake(ctx, "İzmir")))
	require.Equal(t, []int{2}, carIDs(cached.ByMake(ctx, "izmir")))

	models := []string{"ka", "\u212AA", "KA"}
	for _, m := range models {
		require.Equal(t, []int{1, 2}, carIDs(cached.ByModel(ctx, m)), "model %q", m)
		require.Equal(t, []int{1, 2}, carIDs(uncached.ByModel(ctx, m)), "model %q", m)
	}

	for _, ty := range []string{"suv", "ſuv", "SUV"} {
		require.Equal(t, []int{1}, carIDs(cached.ByPriceAndType(ctx, 10000, ty)), "type %q", ty)
	}
}

func TestFoldKey(t *testing.T) {
	require.Equal(t, foldKey("toyota"), foldKey("TOYOTA"))
	require.Equal(t, foldKey("k"), foldKey("\u212A"))
	require.Equal(t, foldKey("s"), foldKey("ſ"))
	require.NotEqual(t, foldKey("izmir"), foldKey("İzmir"))
}

func TestService_AddIgnoresID(t *testing.T) {
	svc := New(repository.NewMemoryCarRepository())
	ctx := context.Background()

	added := svc.Add(ctx, car.Car{ID: 99, Make: "Ford", Model: "Fiesta"})
	require.Equal(t, 1, added.ID)

	got, ok := svc.Get(ctx, 1)
	require.True(t, ok)
	require.Equal(t, added, got)
}

func TestService_UpdateAndRemoveNotFound(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, 42, car.Changes{Price: car.Ptr(1.0)})
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Remove(ctx, 2))
	require.ErrorIs(t, svc.Remove(ctx, 2), ErrNotFound)
	require.Equal(t, 5, svc.Count(ctx))
}

func TestService_UpdatePreservesID(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	updated, err := svc.Update(ctx, 2, car.Changes{Price: car.Ptr(14500.0), Year: car.Ptr(2020)})
	require.NoError(t, err)
	require.Equal(t, 2, updated.ID)
	require.Equal(t, "Ford", updated.Make)
	require.InDelta(t, 14500.0, updated.Price, 1e-9)
	require.Equal(t, 2020, updated.Year)
}

func TestService_Seed(t *testing.T) {
	svc := New(repository.NewMemoryCarRepository(), WithCache(newCache()))
	ctx := context.Background()

	require.Empty(t, svc.List(ctx))

	stored := svc.Seed(ctx, testutil.NewBuilder(t).WithStandardCars().Cars())
	require.Equal(t, []int{1, 2}, carIDs(stored))
	require.Equal(t, []int{1, 2}, carIDs(svc.List(ctx)), "seed flushes the cached empty list")
}

func TestService_Spans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	svc := setupService(t, WithTracer(provider.Tracer("test")), WithCache(newCache()))
	ctx := context.Background()

	svc.ByMake(ctx, "toyota")
	svc.ByMake(ctx, "toyota")
	_ = svc.Remove(ctx, 99)

	spans := recorder.Ended()
	require.Len(t, spans, 3)

	names := make([]string, 0, len(spans))
	for _, s := range spans {
		names = append(names, s.Name())
	}
	require.Equal(t, []string{"catalog.ByMake", "catalog.ByMake", "catalog.Remove"}, names)

	attrs := func(s sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
		m := make(map[attribute.Key]attribute.Value)
		for _, kv := range s.Attributes() {
			m[kv.Key] = kv.Value
		}
		return m
	}

	first := attrs(spans[0])
	require.Equal(t, "toyota", first[tracing.AttrCarMake].AsString())
	require.EqualValues(t, 2, first[tracing.AttrResultCount].AsInt64())
	require.False(t, first[tracing.AttrCacheHit].AsBool())
	require.True(t, attrs(spans[1])[tracing.AttrCacheHit].AsBool())

	require.Equal(t, codes.Error, spans[2].Status().Code)
	require.Len(t, spans[2].Events(), 1)
	require.Equal(t, tracing.EventNotFound, spans[2].Events()[0].Name)
}
