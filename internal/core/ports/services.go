package ports

import (
	"context"

	"github.com/samirrijal/listingmap/internal/core/domain"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishPolygonDrawn(ctx context.Context, p *domain.DrawnPolygon) error
	PublishSavedSearchEvent(ctx context.Context, event *domain.SavedSearchEvent) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
