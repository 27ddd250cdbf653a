package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samirrijal/listingmap/internal/core/domain"
	"github.com/samirrijal/listingmap/internal/core/ports"
	"github.com/samirrijal/listingmap/internal/pkg/telemetry"
)

// createdAt layout: UTC with millisecond precision, e.g. 2024-05-01T09:30:00.000Z.
const createdAtLayout = "2006-01-02T15:04:05.000Z"

// SavedSearchService manages the saved-search list.
type SavedSearchService struct {
	searches  ports.SavedSearchRepository
	publisher ports.EventPublisher
	now       func() time.Time
}

// NewSavedSearchService creates a new SavedSearchService. publisher may be nil.
func NewSavedSearchService(searches ports.SavedSearchRepository, publisher ports.EventPublisher) *SavedSearchService {
	return &SavedSearchService{searches: searches, publisher: publisher, now: time.Now}
}

// WithClock replaces the time source used for createdAt.
func (s *SavedSearchService) WithClock(now func() time.Time) *SavedSearchService {
	s.now = now
	return s
}

// List returns every saved search.
func (s *SavedSearchService) List(ctx context.Context) ([]domain.SavedSearch, error) {
	return s.searches.List(ctx)
}

// Create stores body as a new saved search. The store assigns savedSearchId;
// any id or createdAt sent by the client is overwritten.
func (s *SavedSearchService) Create(ctx context.Context, body domain.SavedSearch) (domain.SavedSearch, error) {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanSavedSearchSave)
	defer span.End()

	search := body.Clone()
	delete(search, domain.SavedSearchIDKey)
	search[domain.CreatedAtKey] = s.now().UTC().Format(createdAtLayout)

	created, err := s.searches.Create(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("create saved search: %w", err)
	}
	span.SetAttributes(
		attribute.String(telemetry.AttrSavedSearch, created.ID()),
		attribute.String(telemetry.AttrSearchAction, domain.SavedSearchCreated),
	)

	s.publish(ctx, domain.SavedSearchCreated, created.ID(), created)
	return created, nil
}

// Update merges patch into the saved search named by its savedSearchId.
func (s *SavedSearchService) Update(ctx context.Context, patch domain.SavedSearch) (domain.SavedSearch, error) {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanSavedSearchSave)
	defer span.End()

	id := patch.ID()
	span.SetAttributes(
		attribute.String(telemetry.AttrSavedSearch, id),
		attribute.String(telemetry.AttrSearchAction, domain.SavedSearchUpdated),
	)
	if id == "" {
		return nil, domain.ErrSavedSearchNotFound
	}

	updated, err := s.searches.Update(ctx, patch)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.SavedSearchUpdated, id, updated)
	return updated, nil
}

// Delete removes every saved search with the given id. Unknown ids are not
// an error.
func (s *SavedSearchService) Delete(ctx context.Context, id string) error {
	if err := s.searches.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete saved search %s: %w", id, err)
	}
	s.publish(ctx, domain.SavedSearchDeleted, id, nil)
	return nil
}

func (s *SavedSearchService) publish(ctx context.Context, action, id string, search domain.SavedSearch) {
	if s.publisher == nil {
		return
	}
	event := &domain.SavedSearchEvent{
		Action:        action,
		SavedSearchID: id,
		Search:        search,
		Time:          s.now().UTC(),
	}
	if err := s.publisher.PublishSavedSearchEvent(ctx, event); err != nil {
		slog.Warn("publish saved search event", "action", action, "id", id, "error", err)
	}
}
