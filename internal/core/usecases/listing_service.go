package usecases

import (
	"context"
	"fmt"
	"math"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samirrijal/listingmap/internal/core/domain"
	"github.com/samirrijal/listingmap/internal/core/ports"
	"github.com/samirrijal/listingmap/internal/pkg/geospatial"
	"github.com/samirrijal/listingmap/internal/pkg/metrics"
	"github.com/samirrijal/listingmap/internal/pkg/telemetry"
)

// ListingService runs listing queries against the static dataset.
type ListingService struct {
	listings ports.ListingRepository
	regions  *PolygonService
}

// NewListingService creates a new ListingService.
func NewListingService(listings ports.ListingRepository, regions *PolygonService) *ListingService {
	return &ListingService{listings: listings, regions: regions}
}

// Query filters the dataset through status, viewport, region, zoom sampling,
// price and bed/bath filters, in that order. Pagination is reported but the
// content is returned whole.
func (s *ListingService) Query(ctx context.Context, q domain.ListingQuery) (*domain.ListingResult, error) {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanQueryListings)
	defer span.End()

	all, err := s.listings.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load listings: %w", err)
	}
	span.SetAttributes(attribute.Int(telemetry.AttrCandidates, len(all)))

	result := all

	if q.ListingType != "" {
		span.SetAttributes(attribute.String(telemetry.AttrListingType, q.ListingType))
		result = filter(result, func(l *domain.Listing) bool {
			return l.ListingStatus == q.ListingType
		})
	}

	if q.MapBounds != nil {
		bound, ok := q.MapBounds.Bound()
		result = filter(result, func(l *domain.Listing) bool {
			return ok && bound.Contains(l.Location.Point())
		})
	}

	var polygon *string
	if id := q.RegionID(); id != "" {
		text, rings, err := s.regions.Region(ctx, id)
		if err != nil {
			return nil, err
		}
		polygon = &text
		result = filter(result, func(l *domain.Listing) bool {
			return geospatial.RegionContains(l.Location.Point(), rings)
		})
	}

	if zoom, ok := q.MapZoom.Float(); ok {
		result = result[:sampleSize(len(result), zoom)]
	}

	if pf := q.PropertyFilter; pf != nil {
		if pf.Price != nil {
			if lo, ok := pf.Price.Min.Float(); ok {
				result = filter(result, func(l *domain.Listing) bool { return l.SalePrice >= lo })
			}
			if hi, ok := pf.Price.Max.Float(); ok {
				result = filter(result, func(l *domain.Listing) bool { return l.SalePrice <= hi })
			}
		}
		if pf.Beds != nil {
			if beds, ok := pf.Beds.Min.Float(); ok {
				result = filter(result, func(l *domain.Listing) bool { return l.Beds >= beds })
			}
		}
		if pf.Baths != nil {
			if baths, ok := pf.Baths.Min.Float(); ok {
				result = filter(result, func(l *domain.Listing) bool { return l.Baths >= baths })
			}
		}
	}

	page := q.Page.IntOr(domain.DefaultPage)
	if page < 1 {
		page = domain.DefaultPage
	}
	size := q.Size.IntOr(domain.DefaultSize)
	if size < 1 {
		size = domain.DefaultSize
	}

	// Never hand the shared dataset slice to callers.
	content := make([]domain.Listing, len(result))
	copy(content, result)

	span.SetAttributes(attribute.Int(telemetry.AttrResultCount, len(content)))
	metrics.ListingResultSize.Observe(float64(len(content)))

	return &domain.ListingResult{
		Polygon:    polygon,
		Content:    content,
		Pagination: domain.NewPageInfo(page, size, len(content)),
	}, nil
}

// GetByID returns the listing with the given listingId.
func (s *ListingService) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanGetListing)
	defer span.End()

	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrListingNotFound
	}
	return l, nil
}

// Count returns the size of the loaded dataset.
func (s *ListingService) Count() int {
	return s.listings.Count()
}

// sampleSize returns how many leading listings survive at the given zoom:
// none below 5, ceil(10%) below 10, ceil(20%) below 18, all from 18 up.
func sampleSize(n int, zoom float64) int {
	var fraction float64
	switch {
	case zoom < 5:
		fraction = 0
	case zoom < 10:
		fraction = 0.1
	case zoom < 18:
		fraction = 0.2
	default:
		return n
	}
	return int(math.Ceil(float64(n) * fraction))
}

func filter(in []domain.Listing, keep func(*domain.Listing) bool) []domain.Listing {
	out := make([]domain.Listing, 0, len(in))
	for i := range in {
		if keep(&in[i]) {
			out = append(out, in[i])
		}
	}
	return out
}
