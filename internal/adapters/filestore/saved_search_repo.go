package filestore

import (
	"context"
	"strconv"
	"sync"

	"github.com/samirrijal/listingmap/internal/core/domain"
)

// SavedSearchRepo implements ports.SavedSearchRepository on a JSON array file.
type SavedSearchRepo struct {
	path string
	mu   sync.Mutex
}

// NewSavedSearchRepo creates a new SavedSearchRepo backed by path.
func NewSavedSearchRepo(path string) *SavedSearchRepo {
	return &SavedSearchRepo{path: path}
}

// List returns every stored search. A missing file is an empty list; a
// corrupt one is an error.
func (r *SavedSearchRepo) List(ctx context.Context) ([]domain.SavedSearch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read()
}

// Create appends s with savedSearchId set to the list length plus one.
func (r *SavedSearchRepo) Create(ctx context.Context, s domain.SavedSearch) (domain.SavedSearch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.read()
	if err != nil {
		return nil, err
	}

	created := s.Clone()
	created[domain.SavedSearchIDKey] = strconv.Itoa(len(items) + 1)
	items = append(items, created)

	if err := writeJSON(r.path, items); err != nil {
		return nil, err
	}
	return created, nil
}

// Update merges patch into the first search whose id matches.
func (r *SavedSearchRepo) Update(ctx context.Context, patch domain.SavedSearch) (domain.SavedSearch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.read()
	if err != nil {
		return nil, err
	}

	id := patch.ID()
	for _, item := range items {
		if item.ID() != id {
			continue
		}
		item.Merge(patch)
		if err := writeJSON(r.path, items); err != nil {
			return nil, err
		}
		return item, nil
	}
	return nil, domain.ErrSavedSearchNotFound
}

// Delete drops every search whose id matches.
func (r *SavedSearchRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.read()
	if err != nil {
		return err
	}

	kept := make([]domain.SavedSearch, 0, len(items))
	for _, item := range items {
		if item.ID() != id {
			kept = append(kept, item)
		}
	}
	return writeJSON(r.path, kept)
}

func (r *SavedSearchRepo) read() ([]domain.SavedSearch, error) {
	items := []domain.SavedSearch{}
	if _, err := readJSON(r.path, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.SavedSearch{}
	}
	return items, nil
}
