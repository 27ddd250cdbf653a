package usecases_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/paulmach/orb"

	"github.com/samirrijal/listingmap/internal/core/domain"
	"github.com/samirrijal/listingmap/internal/core/usecases"
)

// --- Mock PolygonRepository ---

type mockPolygonRepo struct {
	mu     sync.Mutex
	saved  map[string]string
	saveFn func(ctx context.Context, id, wkt string) error
	loads  int
}

func newMockPolygonRepo() *mockPolygonRepo {
	return &mockPolygonRepo{saved: make(map[string]string)}
}

func (m *mockPolygonRepo) Save(ctx context.Context, id, wkt string) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, id, wkt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved[id] = wkt
	return nil
}

func (m *mockPolygonRepo) Load(ctx context.Context, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	text, ok := m.saved[id]
	if !ok {
		return "", domain.ErrPolygonNotFound
	}
	return text, nil
}

// --- Mock CacheService ---

type mockCache struct {
	data map[string][]byte
}

func newMockCache() *mockCache { return &mockCache{data: make(map[string][]byte)} }

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, errors.New("miss")
	}
	return v, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	polygons []*domain.DrawnPolygon
	searches []*domain.SavedSearchEvent
	err      error
}

func (m *mockPublisher) PublishPolygonDrawn(ctx context.Context, p *domain.DrawnPolygon) error {
	m.polygons = append(m.polygons, p)
	return m.err
}

func (m *mockPublisher) PublishSavedSearchEvent(ctx context.Context, event *domain.SavedSearchEvent) error {
	m.searches = append(m.searches, event)
	return m.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// --- Tests ---

const squarePolygon = "0,0|0,10|10,10|10,0|0,0"

func TestPolygonService_Draw(t *testing.T) {
	repo := newMockPolygonRepo()
	pub := &mockPublisher{}
	now := time.UnixMilli(1700000000000)
	svc := usecases.NewPolygonService(repo, nil, pub).WithClock(fixedClock(now))

	p, err := svc.Draw(context.Background(), squarePolygon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "1700000000000" {
		t.Errorf("expected id 1700000000000, got %s", p.ID)
	}
	want := "POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))"
	if repo.saved[p.ID] != want {
		t.Errorf("expected stored %q, got %q", want, repo.saved[p.ID])
	}
	if len(pub.polygons) != 1 || pub.polygons[0].ID != p.ID {
		t.Errorf("expected one published polygon, got %v", pub.polygons)
	}
}

func TestPolygonService_Draw_Invalid(t *testing.T) {
	repo := newMockPolygonRepo()
	svc := usecases.NewPolygonService(repo, nil, nil)

	_, err := svc.Draw(context.Background(), "0,0|0,10|0,0")
	if !errors.Is(err, domain.ErrInvalidPolygon) {
		t.Fatalf("expected ErrInvalidPolygon, got %v", err)
	}
	if len(repo.saved) != 0 {
		t.Errorf("expected nothing stored, got %v", repo.saved)
	}
}

func TestPolygonService_Draw_SameMillisecond(t *testing.T) {
	repo := newMockPolygonRepo()
	svc := usecases.NewPolygonService(repo, nil, nil).WithClock(fixedClock(time.UnixMilli(5000)))

	first, err := svc.Draw(context.Background(), squarePolygon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Draw(context.Background(), squarePolygon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct ids, both %s", first.ID)
	}
	if second.ID != "5001" {
		t.Errorf("expected second id 5001, got %s", second.ID)
	}
}

func TestPolygonService_Draw_SaveError(t *testing.T) {
	repo := newMockPolygonRepo()
	repo.saveFn = func(ctx context.Context, id, wkt string) error { return errors.New("disk full") }
	pub := &mockPublisher{}
	svc := usecases.NewPolygonService(repo, nil, pub)

	if _, err := svc.Draw(context.Background(), squarePolygon); err == nil {
		t.Fatal("expected error")
	}
	if len(pub.polygons) != 0 {
		t.Error("expected no event for a failed save")
	}
}

func TestPolygonService_Draw_PublishErrorIgnored(t *testing.T) {
	pub := &mockPublisher{err: errors.New("nats down")}
	svc := usecases.NewPolygonService(newMockPolygonRepo(), nil, pub)

	if _, err := svc.Draw(context.Background(), squarePolygon); err != nil {
		t.Fatalf("expected publish failure to be ignored, got %v", err)
	}
}

func TestPolygonService_Get(t *testing.T) {
	repo := newMockPolygonRepo()
	repo.saved["1700000000000"] = "POLYGON ((0 0, 1 0, 1 1, 0 0))"
	svc := usecases.NewPolygonService(repo, nil, nil)

	p, err := svc.Get(context.Background(), "1700000000000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.CreatedAt.Equal(time.UnixMilli(1700000000000)) {
		t.Errorf("expected createdAt from id, got %v", p.CreatedAt)
	}

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrPolygonNotFound) {
		t.Errorf("expected ErrPolygonNotFound, got %v", err)
	}
}

func TestPolygonService_Region_Unknown(t *testing.T) {
	svc := usecases.NewPolygonService(newMockPolygonRepo(), nil, nil)

	_, _, err := svc.Region(context.Background(), "nope")
	if !errors.Is(err, domain.ErrInvalidRegion) {
		t.Fatalf("expected ErrInvalidRegion, got %v", err)
	}
}

func TestPolygonService_Region_Malformed(t *testing.T) {
	repo := newMockPolygonRepo()
	repo.saved["1"] = "garbage"
	svc := usecases.NewPolygonService(repo, nil, nil)

	_, _, err := svc.Region(context.Background(), "1")
	if err == nil || errors.Is(err, domain.ErrInvalidRegion) {
		t.Fatalf("expected internal parse error, got %v", err)
	}
}

func TestPolygonService_Region_Cached(t *testing.T) {
	repo := newMockPolygonRepo()
	repo.saved["1"] = "POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))"
	cache := newMockCache()
	svc := usecases.NewPolygonService(repo, cache, nil)

	for i := 0; i < 3; i++ {
		_, rings, err := svc.Region(context.Background(), "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rings) != 1 || len(rings[0]) != 5 {
			t.Fatalf("unexpected rings: %v", rings)
		}
	}
	if repo.loads != 1 {
		t.Errorf("expected 1 repo load, got %d", repo.loads)
	}
}

func TestPolygonService_Import(t *testing.T) {
	repo := newMockPolygonRepo()
	now := time.UnixMilli(1700000000000)
	svc := usecases.NewPolygonService(repo, nil, nil).WithClock(fixedClock(now))

	rings := []orb.Ring{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		{{20, 20}, {30, 20}, {30, 30}, {20, 20}},
	}
	p, err := svc.Import(context.Background(), rings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "MULTIPOLYGON (((0 0, 10 0, 10 10, 0 10, 0 0)), ((20 20, 30 20, 30 30, 20 20)))"
	if repo.saved[p.ID] != want {
		t.Errorf("expected stored %q, got %q", want, repo.saved[p.ID])
	}

	_, err = svc.Import(context.Background(), []orb.Ring{{{0, 0}, {1, 1}, {2, 2}, {3, 3}}})
	if !errors.Is(err, domain.ErrInvalidPolygon) {
		t.Errorf("expected ErrInvalidPolygon for open ring, got %v", err)
	}
}
