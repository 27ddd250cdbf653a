package ports

import (
	"context"

	"github.com/samirrijal/listingmap/internal/core/domain"
)

// ListingRepository exposes the read-only listing dataset.
type ListingRepository interface {
	All(ctx context.Context) ([]domain.Listing, error)
	GetByID(ctx context.Context, listingID string) (*domain.Listing, error)
	Count() int
}

// PolygonRepository persists drawn polygons as canonical text keyed by id.
// Records are never updated or deleted.
type PolygonRepository interface {
	Save(ctx context.Context, id, wkt string) error
	// Load returns domain.ErrPolygonNotFound whenever the id cannot be
	// resolved, including storage failures; those are logged by the store.
	Load(ctx context.Context, id string) (string, error)
}

// SavedSearchRepository persists the saved-search list.
type SavedSearchRepository interface {
	List(ctx context.Context) ([]domain.SavedSearch, error)
	Create(ctx context.Context, search domain.SavedSearch) (domain.SavedSearch, error)
	Update(ctx context.Context, patch domain.SavedSearch) (domain.SavedSearch, error)
	Delete(ctx context.Context, savedSearchID string) error
}
