// Package catalog is the application service between the menu and the car repository.
//
// Queries are memoised in a read-through cache keyed by the normalised query and
// every mutation flushes that cache before returning, so a read after a write
// never observes stale results. Results are value copies; callers never hold
// pointers into the repository.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/carlot/internal/cachemanager"
	"github.com/zjrosen/carlot/internal/car"
	"github.com/zjrosen/carlot/internal/log"
	"github.com/zjrosen/carlot/internal/repository"
	"github.com/zjrosen/carlot/internal/tracing"
)

// ErrNotFound is returned by Update and Remove when no car has the given id.
var ErrNotFound = errors.New("car not found")

// loader runs a repository query on a cache miss.
type loader func() []*car.Car

// Service exposes the car operations the menu needs.
type Service struct {
	repo     repository.CarRepository
	cache    cachemanager.CacheManager[string, []car.Car]
	cacheTTL time.Duration
	queries  *cachemanager.ReadThroughCache[string, []car.Car, loader]
	tracer   trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithCache memoises query results in cache.
func WithCache(cache cachemanager.CacheManager[string, []car.Car]) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithCacheTTL sets how long a memoised query stays valid. Zero uses the cache default.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.cacheTTL = ttl
	}
}

// WithTracer records a span per operation.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// New creates a Service over repo.
func New(repo repository.CarRepository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		tracer: noop.NewTracerProvider().Tracer("catalog"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.queries = cachemanager.NewReadThroughCache(s.cache, s.cacheTTL,
		func(_ context.Context, load loader) ([]car.Car, error) {
			return values(load()), nil
		})
	return s
}

// Add stores a copy of c under a newly assigned id and returns the stored value.
func (s *Service) Add(ctx context.Context, c car.Car) car.Car {
	ctx, span := s.start(ctx, "Add",
		attribute.String(tracing.AttrCarMake, c.Make),
		attribute.String(tracing.AttrCarModel, c.Model),
	)
	defer span.End()

	stored := *s.repo.Create(&c)
	s.invalidate(ctx, span)

	span.SetAttributes(attribute.Int(tracing.AttrCarID, stored.ID))
	span.SetStatus(codes.Ok, "")
	log.Info(log.CatCatalog, "car added", "id", stored.ID, "make", stored.Make, "model", stored.Model)
	return stored
}

// Seed adds every car in order and returns the stored values.
func (s *Service) Seed(ctx context.Context, cars []car.Car) []car.Car {
	ctx, span := s.start(ctx, "Seed", attribute.Int(tracing.AttrResultCount, len(cars)))
	defer span.End()

	stored := make([]car.Car, 0, len(cars))
	for _, c := range cars {
		stored = append(stored, *s.repo.Create(&c))
	}
	s.invalidate(ctx, span)

	span.SetStatus(codes.Ok, "")
	log.Info(log.CatCatalog, "cars seeded", "count", len(stored))
	return stored
}

// List returns every car in storage order.
func (s *Service) List(ctx context.Context) []car.Car {
	ctx, span := s.start(ctx, "List")
	defer span.End()

	return s.query(ctx, span, "all", s.repo.FindAll)
}

// Get returns the car with id.
func (s *Service) Get(ctx context.Context, id int) (car.Car, bool) {
	ctx, span := s.start(ctx, "Get", attribute.Int(tracing.AttrCarID, id))
	defer span.End()

	found := s.query(ctx, span, "id:"+strconv.Itoa(id), func() []*car.Car {
		if c, ok := s.repo.FindOne(id); ok {
			return []*car.Car{c}
		}
		return nil
	})
	if len(found) == 0 {
		span.AddEvent(tracing.EventNotFound)
		return car.Car{}, false
	}
	return found[0], true
}

// ByMake returns cars whose make equals carMake, ignoring case.
func (s *Service) ByMake(ctx context.Context, carMake string) []car.Car {
	ctx, span := s.start(ctx, "ByMake", attribute.String(tracing.AttrCarMake, carMake))
	defer span.End()

	return s.query(ctx, span, "make:"+foldKey(carMake), func() []*car.Car {
		return s.repo.FindByMake(carMake)
	})
}

// ByModel returns cars whose model equals model, ignoring case.
func (s *Service) ByModel(ctx context.Context, model string) []car.Car {
	ctx, span := s.start(ctx, "ByModel", attribute.String(tracing.AttrCarModel, model))
	defer span.End()

	return s.query(ctx, span, "model:"+foldKey(model), func() []*car.Car {
		return s.repo.FindByModel(model)
	})
}

// ByPriceAndType returns cars priced at most maxPrice whose type equals carType, ignoring case.
func (s *Service) ByPriceAndType(ctx context.Context, maxPrice float64, carType string) []car.Car {
	ctx, span := s.start(ctx, "ByPriceAndType",
		attribute.Float64(tracing.AttrMaxPrice, maxPrice),
		attribute.String(tracing.AttrCarType, carType),
	)
	defer span.End()

	key := fmt.Sprintf("price-type:%s:%s", strconv.FormatFloat(maxPrice, 'f', -1, 64), foldKey(carType))
	return s.query(ctx, span, key, func() []*car.Car {
		return s.repo.FindByPriceAndType(maxPrice, carType)
	})
}

// ByCounty returns cars whose registration county code equals code exactly.
// Callers normalise and validate code first.
func (s *Service) ByCounty(ctx context.Context, code string) []car.Car {
	ctx, span := s.start(ctx, "ByCounty", attribute.String(tracing.AttrCountyCode, code))
	defer span.End()

	return s.query(ctx, span, "county:"+code, func() []*car.Car {
		return s.repo.FindByCountyCode(code)
	})
}

// Update applies ch to the car with id and returns the updated value.
func (s *Service) Update(ctx context.Context, id int, ch car.Changes) (car.Car, error) {
	ctx, span := s.start(ctx, "Update",
		attribute.Int(tracing.AttrCarID, id),
		attribute.StringSlice(tracing.AttrChangeFields, ch.Fields()),
	)
	defer span.End()

	updated, ok := s.repo.Update(id, ch)
	if !ok {
		return car.Car{}, s.notFound(span, "update", id)
	}
	s.invalidate(ctx, span)

	span.SetStatus(codes.Ok, "")
	log.Info(log.CatCatalog, "car updated", "id", id, "fields", strings.Join(ch.Fields(), ","))
	return *updated, nil
}

// Remove deletes the car with id.
func (s *Service) Remove(ctx context.Context, id int) error {
	ctx, span := s.start(ctx, "Remove", attribute.Int(tracing.AttrCarID, id))
	defer span.End()

	if !s.repo.Delete(id) {
		return s.notFound(span, "remove", id)
	}
	s.invalidate(ctx, span)

	span.SetStatus(codes.Ok, "")
	log.Info(log.CatCatalog, "car removed", "id", id)
	return nil
}

// Count returns the number of stored cars.
func (s *Service) Count(ctx context.Context) int {
	_, span := s.start(ctx, "Count")
	defer span.End()

	n := s.repo.Len()
	span.SetAttributes(attribute.Int(tracing.AttrResultCount, n))
	return n
}

// CacheStats reports query cache counters. Zero when caching is disabled.
func (s *Service) CacheStats() cachemanager.Stats {
	if s.cache == nil {
		return cachemanager.Stats{}
	}
	return s.cache.Stats()
}

func (s *Service) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, tracing.SpanPrefixCatalog+op,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

func (s *Service) query(ctx context.Context, span trace.Span, key string, load loader) []car.Car {
	loaded := false
	result, err := s.queries.Get(ctx, key, func() []*car.Car {
		loaded = true
		return load()
	})
	if err != nil {
		// The loader never fails; a cache error falls back to the repository.
		log.ErrorErr(log.CatCache, "query cache failed", err, "key", key)
		result = values(load())
	}

	span.SetAttributes(
		attribute.Bool(tracing.AttrCacheHit, s.cache != nil && !loaded),
		attribute.Int(tracing.AttrResultCount, len(result)),
	)
	return slices.Clone(result)
}

func (s *Service) invalidate(ctx context.Context, span trace.Span) {
	if s.cache == nil {
		return
	}
	if err := s.queries.Invalidate(ctx); err != nil {
		log.ErrorErr(log.CatCache, "query cache flush failed", err)
		span.RecordError(err)
		return
	}
	span.AddEvent(tracing.EventCacheFlushed)
}

func (s *Service) notFound(span trace.Span, op string, id int) error {
	err := fmt.Errorf("%s car %d: %w", op, id, ErrNotFound)
	span.AddEvent(tracing.EventNotFound)
	span.SetStatus(codes.Error, err.Error())
	log.Warn(log.CatCatalog, "car not found", "op", op, "id", id)
	return err
}

func values(cars []*car.Car) []car.Car {
	out := make([]car.Car, 0, len(cars))
	for _, c := range cars {
		out = append(out, *c)
	}
	return out
}

// foldKey maps every rune to the smallest rune of its case-fold orbit, so two
// strings share a key exactly when strings.EqualFold reports them equal.
func foldKey(s string) string {
	return strings.Map(func(r rune) rune {
		least := r
		for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
			least = min(least, f)
		}
		return least
	}, s)
}
