package http

import (
	"context"

	natsadapter "github.com/samirrijal/listingmap/internal/adapters/nats"
	"github.com/samirrijal/listingmap/internal/core/usecases"
)

// Pinger is a backing service probed by the readiness check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies holds all services needed by HTTP handlers. Events, Store and
// Cache are optional.
type Dependencies struct {
	Listings      *usecases.ListingService
	Polygons      *usecases.PolygonService
	SavedSearches *usecases.SavedSearchService
	Events        *natsadapter.Subscriber
	Store         Pinger
	Cache         Pinger

	// RateLimit is the per-IP request budget per minute; 0 disables limiting.
	RateLimit int
	// OpenAPIPath locates the document served at /docs/openapi.yaml.
	OpenAPIPath string
}
