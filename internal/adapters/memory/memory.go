// Package memory holds process-local stores for the ephemeral backend and
// for tests. Nothing survives a restart.
package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/samirrijal/listingmap/internal/core/domain"
)

// PolygonRepo implements ports.PolygonRepository in memory.
type PolygonRepo struct {
	mu    sync.RWMutex
	table map[string]string
}

func NewPolygonRepo() *PolygonRepo {
	return &PolygonRepo{table: make(map[string]string)}
}

func (r *PolygonRepo) Save(ctx context.Context, id, wkt string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.table[id] = wkt
	return nil
}

func (r *PolygonRepo) Load(ctx context.Context, id string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wkt, ok := r.table[id]
	if !ok {
		return "", domain.ErrPolygonNotFound
	}
	return wkt, nil
}

// Ping always succeeds.
func (r *PolygonRepo) Ping(ctx context.Context) error { return nil }

// SavedSearchRepo implements ports.SavedSearchRepository in memory.
type SavedSearchRepo struct {
	mu    sync.Mutex
	items []domain.SavedSearch
}

func NewSavedSearchRepo() *SavedSearchRepo {
	return &SavedSearchRepo{items: []domain.SavedSearch{}}
}

func (r *SavedSearchRepo) List(ctx context.Context) ([]domain.SavedSearch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.SavedSearch, len(r.items))
	for i, s := range r.items {
		out[i] = s.Clone()
	}
	return out, nil
}

func (r *SavedSearchRepo) Create(ctx context.Context, s domain.SavedSearch) (domain.SavedSearch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := s.Clone()
	created[domain.SavedSearchIDKey] = strconv.Itoa(len(r.items) + 1)
	r.items = append(r.items, created)
	return created.Clone(), nil
}

func (r *SavedSearchRepo) Update(ctx context.Context, patch domain.SavedSearch) (domain.SavedSearch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if item.ID() == patch.ID() {
			item.Merge(patch)
			return item.Clone(), nil
		}
	}
	return nil, domain.ErrSavedSearchNotFound
}

func (r *SavedSearchRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]domain.SavedSearch, 0, len(r.items))
	for _, item := range r.items {
		if item.ID() != id {
			kept = append(kept, item)
		}
	}
	r.items = kept
	return nil
}
