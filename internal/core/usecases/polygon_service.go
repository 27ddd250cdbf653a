package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/paulmach/orb"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/listingmap/internal/core/domain"
	"github.com/samirrijal/listingmap/internal/core/ports"
	"github.com/samirrijal/listingmap/internal/pkg/geospatial"
	"github.com/samirrijal/listingmap/internal/pkg/metrics"
	"github.com/samirrijal/listingmap/internal/pkg/telemetry"
)

// Stored polygons never change, so cached text stays valid for the TTL.
const polygonCacheTTL = 3600

// PolygonService validates, stores and resolves drawn polygons.
type PolygonService struct {
	polygons  ports.PolygonRepository
	cache     ports.CacheService
	publisher ports.EventPublisher
	now       func() time.Time

	mu     sync.Mutex
	lastID int64
}

// NewPolygonService creates a new PolygonService. cache and publisher may be nil.
func NewPolygonService(
	polygons ports.PolygonRepository,
	cache ports.CacheService,
	publisher ports.EventPublisher,
) *PolygonService {
	return &PolygonService{polygons: polygons, cache: cache, publisher: publisher, now: time.Now}
}

// WithClock replaces the time source used for ids and timestamps.
func (s *PolygonService) WithClock(now func() time.Time) *PolygonService {
	s.now = now
	return s
}

// Draw validates a client polygon string, stores its canonical text under a
// new id and returns the record.
func (s *PolygonService) Draw(ctx context.Context, raw string) (*domain.DrawnPolygon, error) {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanDrawPolygon)
	defer span.End()

	rings, err := geospatial.ParseDrawn(raw)
	if err != nil {
		metrics.PolygonsDrawn.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPolygon, err)
	}

	return s.store(ctx, rings)
}

// Import stores rings read from another source, such as a shapefile, under
// a new id. The rings must pass the same rules as a drawn polygon.
func (s *PolygonService) Import(ctx context.Context, rings []orb.Ring) (*domain.DrawnPolygon, error) {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanDrawPolygon)
	defer span.End()

	if err := geospatial.ValidateRings(rings); err != nil {
		metrics.PolygonsDrawn.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPolygon, err)
	}
	return s.store(ctx, rings)
}

func (s *PolygonService) store(ctx context.Context, rings []orb.Ring) (*domain.DrawnPolygon, error) {
	id, createdAt := s.nextID()
	p := &domain.DrawnPolygon{
		ID:        id,
		Polygon:   geospatial.Canonicalize(rings),
		CreatedAt: createdAt,
	}
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String(telemetry.AttrPolygonID, id),
		attribute.Int(telemetry.AttrRingCount, len(rings)),
	)

	if err := s.polygons.Save(ctx, p.ID, p.Polygon); err != nil {
		return nil, fmt.Errorf("save polygon %s: %w", p.ID, err)
	}
	metrics.PolygonsDrawn.WithLabelValues("accepted").Inc()

	if s.publisher != nil {
		if err := s.publisher.PublishPolygonDrawn(ctx, p); err != nil {
			slog.Warn("publish polygon drawn", "id", p.ID, "error", err)
		}
	}

	return p, nil
}

// nextID returns a millisecond timestamp id. Ids issued by this process are
// strictly increasing even when two polygons land in the same millisecond.
func (s *PolygonService) nextID() (string, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	ms := now.UnixMilli()
	if ms <= s.lastID {
		ms = s.lastID + 1
	}
	s.lastID = ms
	return strconv.FormatInt(ms, 10), now.UTC()
}

// Get returns a stored polygon, or domain.ErrPolygonNotFound.
func (s *PolygonService) Get(ctx context.Context, id string) (*domain.DrawnPolygon, error) {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanLoadPolygon)
	defer span.End()
	span.SetAttributes(attribute.String(telemetry.AttrPolygonID, id))

	text, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	p := &domain.DrawnPolygon{ID: id, Polygon: text}
	if ms, err := strconv.ParseInt(id, 10, 64); err == nil {
		p.CreatedAt = time.UnixMilli(ms).UTC()
	}
	return p, nil
}

// Region resolves a region id to its stored text and rings. An unknown id
// yields domain.ErrInvalidRegion; stored text that cannot be parsed is an
// internal error.
func (s *PolygonService) Region(ctx context.Context, id string) (string, []orb.Ring, error) {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanResolveRegion)
	defer span.End()
	span.SetAttributes(attribute.String(telemetry.AttrRegionID, id))

	text, err := s.load(ctx, id)
	if errors.Is(err, domain.ErrPolygonNotFound) {
		metrics.RegionLookups.WithLabelValues("miss").Inc()
		return "", nil, fmt.Errorf("%w: %s", domain.ErrInvalidRegion, id)
	}
	if err != nil {
		return "", nil, err
	}
	metrics.RegionLookups.WithLabelValues("hit").Inc()

	rings, err := geospatial.ParseRegion(text)
	if err != nil {
		return "", nil, fmt.Errorf("parse region %s: %w", id, err)
	}
	span.SetAttributes(attribute.Int(telemetry.AttrRingCount, len(rings)))
	return text, rings, nil
}

// load reads polygon text through the cache.
func (s *PolygonService) load(ctx context.Context, id string) (string, error) {
	cacheKey := "polygon:" + id
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			metrics.CacheHits.WithLabelValues("polygon").Inc()
			return string(data), nil
		}
		metrics.CacheMisses.WithLabelValues("polygon").Inc()
	}

	text, err := s.polygons.Load(ctx, id)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, []byte(text), polygonCacheTTL)
	}
	return text, nil
}
