// Package dataset serves the static listing table loaded at startup.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/samirrijal/listingmap/internal/core/domain"
)

// ListingRepo implements ports.ListingRepository over an immutable slice.
type ListingRepo struct {
	listings []domain.Listing
	byID     map[string]int
}

// NewListingRepo indexes listings by listingId. The first listing wins when
// ids repeat.
func NewListingRepo(listings []domain.Listing) *ListingRepo {
	byID := make(map[string]int, len(listings))
	for i, l := range listings {
		if _, dup := byID[l.ListingID]; !dup {
			byID[l.ListingID] = i
		}
	}
	return &ListingRepo{listings: listings, byID: byID}
}

// Load reads a JSON array of listings from path.
func Load(path string) (*ListingRepo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read listings: %w", err)
	}

	var listings []domain.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("decode listings %s: %w", path, err)
	}
	return NewListingRepo(listings), nil
}

// All returns the shared table; callers must not modify it.
func (r *ListingRepo) All(ctx context.Context) ([]domain.Listing, error) {
	return r.listings, nil
}

// GetByID returns nil when no listing has the id.
func (r *ListingRepo) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	l := r.listings[i]
	return &l, nil
}

func (r *ListingRepo) Count() int {
	return len(r.listings)
}
